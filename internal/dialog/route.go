package dialog

import (
	"github.com/tavolahq/tavola/internal/domain"
	"github.com/tavolahq/tavola/internal/logging"
	"github.com/tavolahq/tavola/internal/nlu"
)

// routeSignal maps an error coming back from an NLU operation to a
// routing decision. Redirects jump straight to the requested flow;
// transfers, no-action verdicts and anything unexpected all escalate.
// Escalation beats every nominal transition, so these come back as
// overrides.
func routeSignal(err error, turns []domain.Turn, log *logging.Logger) Result {
	if red, ok := nlu.AsRedirect(err); ok {
		if node, ok := nodeForIntent(red.Target); ok {
			log.Info().Str("target", string(red.Target)).Msg("redirect signal")
			return Result{
				Override:     node,
				Turns:        turns,
				Pending:      pendingNone(),
				ResetLog:     true,
				ResetUnclear: true,
			}
		}
	}
	if nlu.IsTransfer(err) {
		log.Info().Err(err).Msg("transfer signal")
	} else {
		log.Warn().Err(err).Msg("escalating after nlu error")
	}
	return Result{Override: NodeTransferToOperator, Turns: turns, Pending: pendingNone()}
}

// nodeForIntent maps a fulfillment intent to its flow entry node.
func nodeForIntent(i domain.Intent) (Node, bool) {
	switch i {
	case domain.IntentReservation:
		return NodeReservationSlotFill, true
	case domain.IntentTakeAway:
		return NodeTakeAway, true
	case domain.IntentDelivery:
		return NodeDelivery, true
	}
	return "", false
}
