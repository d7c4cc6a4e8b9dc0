package dialog

import (
	"context"
	"fmt"

	"github.com/tavolahq/tavola/internal/domain"
)

// startHandler greets the caller and hands over to intent understanding.
type startHandler struct {
	deps
}

func (h *startHandler) handle(ctx context.Context, state CallState) (Result, error) {
	greeting := "Good evening! How can I help you?"
	if state.Restaurant.Name != "" {
		greeting = fmt.Sprintf("Good evening, this is %s. How can I help you?", state.Restaurant.Name)
	}
	if err := h.line.Say(ctx, greeting); err != nil {
		return Result{}, err
	}
	return Result{
		Next:  NodeUnderstand,
		Turns: []domain.Turn{domain.AgentTurn(greeting, h.now())},
	}, nil
}
