// Package dialog is the dialogue orchestration engine: an explicit state
// machine that tracks the data a call has accumulated, decides which
// sub-dialogue runs next, merges what the NLU layer extracts from each
// utterance, and applies interrupts (operator escalation, intent switches)
// ahead of any nominal transition.
package dialog

import "fmt"

// Node is a state of the dialogue machine.
type Node string

const (
	NodeStart               Node = "start"
	NodeUnderstand          Node = "understandRequest"
	NodeDisambiguation      Node = "disambiguation"
	NodeReservationSlotFill Node = "reservationSlotFill"
	NodeReservationConfirm  Node = "reservationConfirm"
	NodeTakeAway            Node = "takeAway"
	NodeDelivery            Node = "delivery"
	NodeTransferToOperator  Node = "transferToOperator"
	NodeEnd                 Node = "end"
)

// Terminal reports whether the call is over once n is reached.
func (n Node) Terminal() bool {
	return n == NodeTransferToOperator || n == NodeEnd
}

// transitions is the allowed next-node set per node. Overrides (transfer,
// intent switch) bypass it; everything else must be listed here.
var transitions = map[Node][]Node{
	NodeStart: {NodeUnderstand},
	NodeUnderstand: {
		NodeUnderstand, NodeDisambiguation, NodeReservationSlotFill,
		NodeTakeAway, NodeDelivery, NodeTransferToOperator, NodeEnd,
	},
	NodeDisambiguation: {NodeUnderstand},
	NodeReservationSlotFill: {
		NodeReservationSlotFill, NodeReservationConfirm,
		NodeTakeAway, NodeDelivery, NodeTransferToOperator,
	},
	NodeReservationConfirm: {
		NodeReservationConfirm, NodeEnd,
		NodeTakeAway, NodeDelivery, NodeTransferToOperator,
	},
	NodeTakeAway: {NodeEnd, NodeTransferToOperator},
	NodeDelivery: {NodeEnd, NodeTransferToOperator},
}

// allNodes lists every declared node, terminals included.
var allNodes = []Node{
	NodeStart, NodeUnderstand, NodeDisambiguation,
	NodeReservationSlotFill, NodeReservationConfirm,
	NodeTakeAway, NodeDelivery,
	NodeTransferToOperator, NodeEnd,
}

// validateTransitions checks the table is complete and closed: every
// non-terminal node has an outgoing set and every target is a declared
// node. Run at engine construction so a bad table cannot take a call.
func validateTransitions(table map[Node][]Node) error {
	declared := make(map[Node]bool, len(allNodes))
	for _, n := range allNodes {
		declared[n] = true
	}

	for _, n := range allNodes {
		if n.Terminal() {
			if _, ok := table[n]; ok {
				return fmt.Errorf("dialog: terminal node %q has outgoing transitions", n)
			}
			continue
		}
		targets, ok := table[n]
		if !ok || len(targets) == 0 {
			return fmt.Errorf("dialog: node %q has no outgoing transitions", n)
		}
		for _, t := range targets {
			if !declared[t] {
				return fmt.Errorf("dialog: node %q transitions to undeclared node %q", n, t)
			}
		}
	}

	for n := range table {
		if !declared[n] {
			return fmt.Errorf("dialog: transition table mentions undeclared node %q", n)
		}
	}
	return nil
}

// allowed reports whether the table permits from → to.
func allowed(table map[Node][]Node, from, to Node) bool {
	for _, t := range table[from] {
		if t == to {
			return true
		}
	}
	return false
}
