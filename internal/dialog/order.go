package dialog

import (
	"context"
	"fmt"
	"strings"

	"github.com/tavolahq/tavola/internal/domain"
)

// orderHandler runs both order flows. Delivery additionally collects
// the drop-off address, taken verbatim, before the count. An answer
// with no usable number is re-asked until the caller gives one.
type orderHandler struct {
	deps
	delivery bool
}

func (h *orderHandler) handle(ctx context.Context, state CallState) (Result, error) {
	var turns []domain.Turn
	order := state.Order

	if h.delivery && order.Address == nil {
		prompt := "What address should we deliver to?"
		for {
			reply, err := h.line.Prompt(ctx, prompt)
			if err != nil {
				turns = append(turns, domain.AgentTurn(prompt, h.now()))
				return Result{Turns: turns, Order: &order}, err
			}
			turns = append(turns,
				domain.AgentTurn(prompt, h.now()),
				domain.CallerTurn(reply, h.now()),
			)
			if addr := strings.TrimSpace(reply); addr != "" {
				order.Address = &addr
				break
			}
			prompt = "Sorry, I did not catch the address. Where should we deliver?"
		}
	}

	prompt := "How many pizzas would you like to order?"
	for order.Items == nil {
		reply, err := h.line.Prompt(ctx, prompt)
		if err != nil {
			turns = append(turns, domain.AgentTurn(prompt, h.now()))
			return Result{Turns: turns, Order: &order}, err
		}
		turns = append(turns,
			domain.AgentTurn(prompt, h.now()),
			domain.CallerTurn(reply, h.now()),
		)

		cc := convContext(state)
		cc.Transcript = cc.Transcript.Append(turns...)
		count, err := h.port.ExtractOrderCount(ctx, reply, cc)
		if err != nil {
			res := routeSignal(err, turns, h.log)
			res.Order = &order
			return res, nil
		}
		if !count.Found || count.Number < 1 {
			prompt = "Sorry, I need a number of pizzas to register the order. How many would you like?"
			continue
		}
		n := count.Number
		order.Items = &n
	}

	var done string
	if h.delivery {
		done = fmt.Sprintf(
			"Perfect, I have registered your delivery of %d pizzas to %s. Thank you, goodbye!",
			*order.Items, *order.Address,
		)
	} else {
		done = fmt.Sprintf(
			"Perfect, I have registered your take-away order for %d pizzas. Thank you, goodbye!",
			*order.Items,
		)
	}
	if err := h.line.Say(ctx, done); err != nil {
		return Result{Turns: turns, Order: &order}, err
	}
	turns = append(turns, domain.AgentTurn(done, h.now()))
	return Result{Next: NodeEnd, Turns: turns, Order: &order}, nil
}
