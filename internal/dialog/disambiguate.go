package dialog

import (
	"context"

	"github.com/tavolahq/tavola/internal/domain"
)

// disambiguationHandler asks one clarifying question about the pending
// utterance and sends the caller's answer back for re-classification.
type disambiguationHandler struct {
	deps
}

func (h *disambiguationHandler) handle(ctx context.Context, state CallState) (Result, error) {
	analysis, err := h.port.AnalyzeAmbiguity(ctx, state.Pending)
	if err != nil {
		return routeSignal(err, nil, h.log), nil
	}
	h.log.Debug().Str("kind", string(analysis.Kind)).Msg("ambiguity analyzed")

	reply, err := h.line.Prompt(ctx, analysis.Question)
	if err != nil {
		return Result{Turns: []domain.Turn{domain.AgentTurn(analysis.Question, h.now())}}, err
	}
	return Result{
		Next: NodeUnderstand,
		Turns: []domain.Turn{
			domain.AgentTurn(analysis.Question, h.now()),
			domain.CallerTurn(reply, h.now()),
		},
		Pending:     pendingUtterance(reply),
		BumpUnclear: true,
	}, nil
}
