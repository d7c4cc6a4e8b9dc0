package domain

import "time"

// CallOutcome is the terminal result of a call.
type CallOutcome string

const (
	OutcomeCompleted   CallOutcome = "completed"
	OutcomeTransferred CallOutcome = "transferred"
	OutcomeAborted     CallOutcome = "aborted" // line dropped or context cancelled
)

// CallRecord is what the history store keeps about a finished call: the
// transcript and how it ended. Booking and order slots are deliberately
// not part of the record; the engine does not persist bookings.
type CallRecord struct {
	ID        string      `json:"id"`
	StartedAt time.Time   `json:"startedAt"`
	EndedAt   time.Time   `json:"endedAt"`
	Outcome   CallOutcome `json:"outcome"`
	Turns     []Turn      `json:"turns,omitempty"`
}
