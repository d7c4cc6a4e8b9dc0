package dialog

import (
	"context"
	"fmt"

	"github.com/tavolahq/tavola/internal/domain"
)

// confirmHandler reads the collected reservation back and closes the
// loop: confirm ends the call, a denial starts a modification round.
type confirmHandler struct {
	deps
}

func (h *confirmHandler) handle(ctx context.Context, state CallState) (Result, error) {
	b := state.Booking
	if !b.Complete() {
		// Reaching confirmation with holes in the slot set means a
		// routing bug upstream. Hand off rather than read back garbage.
		h.log.Error().Msg("confirmation reached with incomplete slots")
		return Result{Override: NodeTransferToOperator}, nil
	}

	summary := fmt.Sprintf(
		"Registered %d people on %s at %s under the name %s. Is that correct?",
		*b.People, *b.Date, *b.Time, *b.Name,
	)
	reply, err := h.line.Prompt(ctx, summary)
	if err != nil {
		return Result{Turns: []domain.Turn{domain.AgentTurn(summary, h.now())}}, err
	}
	turns := []domain.Turn{
		domain.AgentTurn(summary, h.now()),
		domain.CallerTurn(reply, h.now()),
	}

	cc := convContext(state)
	cc.Transcript = cc.Transcript.Append(turns...)
	verdict, err := h.port.ClassifyConfirmation(ctx, reply, cc)
	if err != nil {
		return routeSignal(err, turns, h.log), nil
	}

	if verdict.Confirmed {
		bye := "Thank you, your table is booked. We look forward to seeing you, goodbye!"
		if err := h.line.Say(ctx, bye); err != nil {
			return Result{Turns: turns}, err
		}
		turns = append(turns, domain.AgentTurn(bye, h.now()))
		return Result{Next: NodeEnd, Turns: turns}, nil
	}

	// Denied. If the correction was not in the same breath, ask for it.
	correction := reply
	if !verdict.HasNewData {
		follow, err := h.line.Prompt(ctx, "What would you like to change?")
		if err != nil {
			turns = append(turns, domain.AgentTurn("What would you like to change?", h.now()))
			return Result{Turns: turns}, err
		}
		turns = append(turns,
			domain.AgentTurn("What would you like to change?", h.now()),
			domain.CallerTurn(follow, h.now()),
		)
		correction = follow
	}

	cc.Transcript = convContext(state).Transcript.Append(turns...)
	slots, err := h.port.ExtractBookingSlots(ctx, correction, cc, state.Booking)
	if err != nil {
		return routeSignal(err, turns, h.log), nil
	}
	return Result{
		Next:     NodeReservationConfirm,
		Turns:    turns,
		Booking:  &slots,
		ResetLog: true,
	}, nil
}
