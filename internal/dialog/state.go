package dialog

import (
	"time"

	"github.com/tavolahq/tavola/internal/domain"
	"github.com/tavolahq/tavola/internal/nlu"
)

// CallState is the full working memory of one call. Only the engine
// mutates it; handlers read it and propose changes through a Result.
type CallState struct {
	ID         string
	Node       Node
	StartedAt  time.Time
	Restaurant domain.Restaurant

	// Transcript is the log of the current dialogue phase. It resets on
	// intent handoff and on reservation modification rounds so the NLU
	// context stays focused on the exchange at hand.
	Transcript domain.Transcript

	// Record accumulates every turn of the call, resets included. It is
	// what gets persisted when the call ends.
	Record domain.Transcript

	Booking domain.BookingSlots
	Order   domain.OrderSlots

	// Pending holds a caller utterance that has been heard but not yet
	// resolved to an intent. Disambiguation reads it, and the caller's
	// clarifying reply replaces it for the next classification pass.
	Pending string

	// UnclearRounds counts consecutive failed classification attempts.
	// It relaxes the confidence threshold after the first round and
	// bounds how long the call can stay stuck before escalation.
	UnclearRounds int
}

// Result is a handler's proposed delta against the call state. The
// engine applies it: transcript turns first, then slot merges, then the
// node move. Slot deltas merge monotonically, they never clear fields.
type Result struct {
	// Next is the nominal next node, checked against the transition
	// table. Override, when set, wins and skips the check (operator
	// escalation and intent switches are allowed from anywhere).
	Next     Node
	Override Node

	// Turns are appended to both the phase transcript and the call
	// record. ResetLog clears the phase transcript after the append.
	Turns    []domain.Turn
	ResetLog bool

	Booking *domain.BookingSlots
	Order   *domain.OrderSlots

	// Pending, when non-nil, replaces the pending utterance. An empty
	// string clears it.
	Pending *string

	BumpUnclear  bool
	ResetUnclear bool
}

func pendingNone() *string {
	s := ""
	return &s
}

func pendingUtterance(u string) *string {
	return &u
}

// convContext is the NLU context for the current phase.
func convContext(state CallState) nlu.ConvContext {
	return nlu.ConvContext{Transcript: state.Transcript, Now: state.StartedAt}
}
