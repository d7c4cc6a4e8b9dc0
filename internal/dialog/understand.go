package dialog

import (
	"context"

	"github.com/tavolahq/tavola/internal/domain"
)

// Confidence thresholds for acting on a classified intent. The bar
// starts high and relaxes once a clarifying exchange has happened,
// because the classifier then has a direct answer to work with. A
// confidence exactly at the threshold is still not enough.
const (
	thresholdCold      = 0.9
	thresholdClarified = 0.7
)

// understandHandler classifies what the caller wants and routes to the
// matching flow. General questions are answered in place; anything the
// classifier is not sure about goes through disambiguation.
type understandHandler struct {
	deps
}

func (h *understandHandler) handle(ctx context.Context, state CallState) (Result, error) {
	utterance := state.Pending
	var turns []domain.Turn
	if utterance == "" {
		u, err := h.line.Prompt(ctx, "")
		if err != nil {
			return Result{}, err
		}
		utterance = u
		turns = append(turns, domain.CallerTurn(u, h.now()))
	}

	res, err := h.port.ClassifyIntent(ctx, utterance, convContext(state))
	if err != nil {
		return routeSignal(err, turns, h.log), nil
	}

	threshold := thresholdCold
	if state.UnclearRounds > 0 {
		threshold = thresholdClarified
	}
	h.log.Debug().
		Str("intent", string(res.Intent)).
		Float64("confidence", res.Confidence).
		Float64("threshold", threshold).
		Msg("intent classified")

	if res.Intent == domain.IntentUnclear || res.Confidence <= threshold {
		if state.UnclearRounds >= maxUnclearRounds {
			h.log.Info().Int("rounds", state.UnclearRounds).Msg("still unclear, escalating")
			return Result{Override: NodeTransferToOperator, Turns: turns, Pending: pendingNone()}, nil
		}
		return Result{
			Next:    NodeDisambiguation,
			Turns:   turns,
			Pending: pendingUtterance(utterance),
		}, nil
	}

	if res.Intent == domain.IntentGeneralInfo {
		return h.answerInfo(ctx, state, utterance, turns)
	}

	node, ok := nodeForIntent(res.Intent)
	if !ok {
		return Result{Override: NodeTransferToOperator, Turns: turns, Pending: pendingNone()}, nil
	}
	out := Result{
		Next:         node,
		Turns:        turns,
		Pending:      pendingNone(),
		ResetLog:     true,
		ResetUnclear: true,
	}

	// The intent-bearing utterance often already carries flow data
	// ("a table for 4 tomorrow at 8pm"). Harvest it now so the flow
	// does not ask for what the caller just said.
	cc := convContext(state)
	cc.Transcript = cc.Transcript.Append(turns...)
	switch res.Intent {
	case domain.IntentReservation:
		slots, err := h.port.ExtractBookingSlots(ctx, utterance, cc, state.Booking)
		if err != nil {
			return routeSignal(err, turns, h.log), nil
		}
		out.Booking = &slots
	case domain.IntentTakeAway, domain.IntentDelivery:
		count, err := h.port.ExtractOrderCount(ctx, utterance, cc)
		if err != nil {
			return routeSignal(err, turns, h.log), nil
		}
		if count.Found && count.Number >= 1 {
			n := count.Number
			out.Order = &domain.OrderSlots{Items: &n}
		}
	}
	return out, nil
}

// answerInfo replies to a general question and keeps listening. The
// exchange stays in the phase transcript so a follow-up request can be
// classified with the question as context.
func (h *understandHandler) answerInfo(ctx context.Context, state CallState, question string, turns []domain.Turn) (Result, error) {
	answer, err := h.port.AnswerGeneralInfo(ctx, question, state.Restaurant)
	if err != nil {
		return routeSignal(err, turns, h.log), nil
	}
	if err := h.line.Say(ctx, answer); err != nil {
		return Result{Turns: turns}, err
	}
	turns = append(turns, domain.AgentTurn(answer, h.now()))
	return Result{
		Next:         NodeUnderstand,
		Turns:        turns,
		Pending:      pendingNone(),
		ResetUnclear: true,
	}, nil
}
