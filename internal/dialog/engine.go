package dialog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tavolahq/tavola/internal/channel"
	"github.com/tavolahq/tavola/internal/domain"
	"github.com/tavolahq/tavola/internal/logging"
	"github.com/tavolahq/tavola/internal/nlu"
)

// maxUnclearRounds bounds consecutive failed classification attempts
// before the caller is handed to a human.
const maxUnclearRounds = 3

const transferMessage = "I'll put you in touch with our staff right away, please stay on the line."

// handler runs one sub-dialogue step for the node it owns.
type handler interface {
	handle(ctx context.Context, state CallState) (Result, error)
}

// deps is what every handler gets: the NLU port, the caller line, a
// logger and a clock.
type deps struct {
	port nlu.Port
	line channel.CallerLine
	log  *logging.Logger
	now  func() time.Time
}

// Engine drives one call from Start to a terminal node.
type Engine struct {
	deps
	handlers   map[Node]handler
	restaurant domain.Restaurant
	callID     string
}

// Option tweaks an Engine at construction.
type Option func(*Engine)

// WithClock replaces the engine's clock. Callers use it to pin the
// call-start snapshot to the business's time zone, tests to freeze it.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithCallID fixes the call ID instead of generating one.
func WithCallID(id string) Option {
	return func(e *Engine) { e.callID = id }
}

// NewEngine wires the handlers and validates the transition table.
func NewEngine(port nlu.Port, line channel.CallerLine, restaurant domain.Restaurant, log *logging.Logger, opts ...Option) (*Engine, error) {
	if err := validateTransitions(transitions); err != nil {
		return nil, err
	}
	e := &Engine{
		deps: deps{
			port: port,
			line: line,
			log:  log,
			now:  time.Now,
		},
		restaurant: restaurant,
		callID:     uuid.NewString(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithCall(e.callID)
	e.handlers = map[Node]handler{
		NodeStart:               &startHandler{deps: e.deps},
		NodeUnderstand:          &understandHandler{deps: e.deps},
		NodeDisambiguation:      &disambiguationHandler{deps: e.deps},
		NodeReservationSlotFill: &reservationHandler{deps: e.deps},
		NodeReservationConfirm:  &confirmHandler{deps: e.deps},
		NodeTakeAway:            &orderHandler{deps: e.deps, delivery: false},
		NodeDelivery:            &orderHandler{deps: e.deps, delivery: true},
	}
	return e, nil
}

// Run takes the call from greeting to hang-up and returns its record.
// The error is non-nil only when the line fails mid-call (hang-up,
// cancelled context); the partial record is still returned.
func (e *Engine) Run(ctx context.Context) (domain.CallRecord, error) {
	state := CallState{
		ID:         e.callID,
		Node:       NodeStart,
		StartedAt:  e.now(),
		Restaurant: e.restaurant,
	}
	e.log.Info().Str("restaurant", e.restaurant.Name).Msg("call started")

	for !state.Node.Terminal() {
		h, ok := e.handlers[state.Node]
		if !ok {
			return e.record(state, domain.OutcomeAborted),
				fmt.Errorf("dialog: no handler for node %q", state.Node)
		}
		res, err := h.handle(ctx, state)
		if err != nil {
			e.log.Warn().Str("node", string(state.Node)).Err(err).Msg("call aborted")
			e.apply(&state, res)
			return e.record(state, domain.OutcomeAborted), err
		}
		e.apply(&state, res)
	}

	outcome := domain.OutcomeCompleted
	if state.Node == NodeTransferToOperator {
		outcome = domain.OutcomeTransferred
		if err := e.line.Say(ctx, transferMessage); err != nil {
			return e.record(state, outcome), err
		}
		state.Record = state.Record.Append(domain.AgentTurn(transferMessage, e.now()))
	}
	e.log.Info().Str("outcome", string(outcome)).Int("turns", len(state.Record)).Msg("call ended")
	return e.record(state, outcome), nil
}

// apply folds a handler result into the state. Order matters: turns go
// to both logs, the phase log resets, slots merge, counters and the
// pending utterance update, and the node moves last.
func (e *Engine) apply(state *CallState, res Result) {
	if len(res.Turns) > 0 {
		state.Record = state.Record.Append(res.Turns...)
		state.Transcript = state.Transcript.Append(res.Turns...)
	}
	if res.ResetLog {
		state.Transcript = nil
	}
	if res.Booking != nil {
		state.Booking = state.Booking.Merge(*res.Booking)
	}
	if res.Order != nil {
		state.Order = state.Order.Merge(*res.Order)
	}
	if res.Pending != nil {
		state.Pending = *res.Pending
	}
	if res.ResetUnclear {
		state.UnclearRounds = 0
	}
	if res.BumpUnclear {
		state.UnclearRounds++
	}

	next := res.Next
	if res.Override != "" {
		next = res.Override
		e.switchFlow(state, next)
	} else if next != "" && !allowed(transitions, state.Node, next) {
		// A handler proposing an undeclared move is a bug. Fail safe
		// toward a human instead of wedging the call.
		e.log.Error().Str("from", string(state.Node)).Str("to", string(next)).Msg("illegal transition")
		next = NodeTransferToOperator
	}
	if next == "" {
		next = state.Node
	}
	if next != state.Node {
		e.log.Debug().Str("from", string(state.Node)).Str("to", string(next)).Msg("transition")
	}
	state.Node = next
}

// switchFlow discards the slots of whichever flow the caller just
// abandoned. Switching back later starts that flow from scratch.
func (e *Engine) switchFlow(state *CallState, target Node) {
	switch target {
	case NodeTakeAway, NodeDelivery:
		if !state.Booking.Empty() {
			e.log.Info().Msg("intent switch, dropping reservation slots")
			state.Booking = domain.BookingSlots{}
		}
	case NodeReservationSlotFill:
		if !state.Order.Empty() {
			e.log.Info().Msg("intent switch, dropping order slots")
			state.Order = domain.OrderSlots{}
		}
	}
}

func (e *Engine) record(state CallState, outcome domain.CallOutcome) domain.CallRecord {
	return domain.CallRecord{
		ID:        state.ID,
		StartedAt: state.StartedAt,
		EndedAt:   e.now(),
		Outcome:   outcome,
		Turns:     state.Record,
	}
}
