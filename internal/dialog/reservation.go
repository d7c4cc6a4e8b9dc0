package dialog

import (
	"context"
	"fmt"
	"strings"

	"github.com/tavolahq/tavola/internal/domain"
)

// reservationHandler fills the booking slots one question at a time.
// Each pass asks only for what is still missing, merges whatever the
// caller volunteered and loops until the set is complete.
type reservationHandler struct {
	deps
}

func (h *reservationHandler) handle(ctx context.Context, state CallState) (Result, error) {
	missing := state.Booking.Missing()
	if len(missing) == 0 {
		return Result{Next: NodeReservationConfirm}, nil
	}

	question := missingFieldsQuestion(missing)
	reply, err := h.line.Prompt(ctx, question)
	if err != nil {
		return Result{Turns: []domain.Turn{domain.AgentTurn(question, h.now())}}, err
	}
	turns := []domain.Turn{
		domain.AgentTurn(question, h.now()),
		domain.CallerTurn(reply, h.now()),
	}

	cc := convContext(state)
	cc.Transcript = cc.Transcript.Append(turns...)
	slots, err := h.port.ExtractBookingSlots(ctx, reply, cc, state.Booking)
	if err != nil {
		return routeSignal(err, turns, h.log), nil
	}
	return Result{Next: NodeReservationSlotFill, Turns: turns, Booking: &slots}, nil
}

var fieldPhrases = map[domain.BookingField]string{
	domain.FieldPeople: "the number of people",
	domain.FieldDate:   "the date",
	domain.FieldTime:   "the time",
	domain.FieldName:   "the name",
}

// missingFieldsQuestion builds a single natural question covering every
// missing slot, in the fixed asking order, with "and" before the last.
func missingFieldsQuestion(missing []domain.BookingField) string {
	phrases := make([]string, 0, len(missing))
	for _, f := range missing {
		phrases = append(phrases, fieldPhrases[f])
	}
	return fmt.Sprintf("Could you tell me %s for the reservation?", joinAnd(phrases))
}

func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
