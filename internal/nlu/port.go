// Package nlu defines the understanding/extraction boundary the dialogue
// engine talks to. The engine owns this interface; the LLM-backed
// implementation lives behind it and is injected, never reached for
// globally.
package nlu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tavolahq/tavola/internal/domain"
)

// ConvContext carries the conversational context an operation may ground
// itself in: the transcript of the current phase and the call-start clock
// snapshot used to resolve relative dates ("tomorrow", "next Monday").
type ConvContext struct {
	Transcript domain.Transcript
	Now        time.Time
}

// IntentResult is the outcome of intent classification.
type IntentResult struct {
	Intent     domain.Intent `json:"intent"`
	Confidence float64       `json:"confidence"`
	Reasoning  string        `json:"reasoning,omitempty"`
}

// CountResult is the outcome of order-count extraction.
type CountResult struct {
	Number int  `json:"number"`
	Found  bool `json:"found"`
}

// ConfirmationResult is the ternary outcome of a confirmation reply:
// confirmed, denied with new data in the same utterance, or denied bare.
type ConfirmationResult struct {
	Confirmed  bool `json:"confirmed"`
	HasNewData bool `json:"hasModificationData"`
}

// AmbiguityKind classifies what is unclear about a request.
type AmbiguityKind string

const (
	AmbiguityOrderChannel AmbiguityKind = "orderChannel" // wants to order, channel unknown
	AmbiguityGeneral      AmbiguityKind = "general"      // too generic to tell
)

// AmbiguityAnalysis suggests the clarifying question to ask.
type AmbiguityAnalysis struct {
	Kind     AmbiguityKind `json:"ambiguityType"`
	Question string        `json:"question"`
}

// Port is the contract to the external understanding collaborator. Every
// operation may, instead of its nominal result, return a *TransferSignal
// or *RedirectSignal error; those always take priority. A provider fault
// is absorbed by the implementation and surfaces as an unclear or empty
// result, never as an error the caller has to translate for the caller on
// the phone.
type Port interface {
	ClassifyIntent(ctx context.Context, utterance string, cc ConvContext) (IntentResult, error)
	ExtractBookingSlots(ctx context.Context, utterance string, cc ConvContext, current domain.BookingSlots) (domain.BookingSlots, error)
	ExtractOrderCount(ctx context.Context, utterance string, cc ConvContext) (CountResult, error)
	ClassifyConfirmation(ctx context.Context, utterance string, cc ConvContext) (ConfirmationResult, error)
	AnswerGeneralInfo(ctx context.Context, question string, info domain.Restaurant) (string, error)
	AnalyzeAmbiguity(ctx context.Context, utterance string) (AmbiguityAnalysis, error)
}

// TransferSignal reports that the collaborator decided the caller must be
// handed to a human operator. It preempts whatever the operation would
// nominally return.
type TransferSignal struct {
	Reason string
}

func (s *TransferSignal) Error() string {
	if s.Reason == "" {
		return "nlu: transfer to operator"
	}
	return fmt.Sprintf("nlu: transfer to operator: %s", s.Reason)
}

// RedirectSignal reports that, mid-extraction, the caller turned out to
// want a different fulfillment flow.
type RedirectSignal struct {
	Target domain.Intent
}

func (s *RedirectSignal) Error() string {
	return fmt.Sprintf("nlu: redirect to %s", s.Target)
}

// ErrNoAction is returned when the collaborator produced no usable signal
// for a turn. The engine treats it as fatal for the turn and escalates;
// retrying an unrecognized response risks an infinite prompt loop.
var ErrNoAction = errors.New("nlu: no actionable signal")

// IsTransfer reports whether err carries a transfer signal.
func IsTransfer(err error) bool {
	var s *TransferSignal
	return errors.As(err, &s)
}

// AsRedirect extracts a redirect signal from err, if present.
func AsRedirect(err error) (*RedirectSignal, bool) {
	var s *RedirectSignal
	if errors.As(err, &s) {
		return s, true
	}
	return nil, false
}
