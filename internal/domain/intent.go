package domain

// Intent is the caller's top-level goal as classified by the NLU layer.
type Intent string

const (
	IntentReservation Intent = "reservation"
	IntentTakeAway    Intent = "takeAway"
	IntentDelivery    Intent = "delivery"
	IntentGeneralInfo Intent = "generalInfo"
	IntentUnclear     Intent = "unclear"
)

// Valid reports whether i is one of the known intents.
func (i Intent) Valid() bool {
	switch i {
	case IntentReservation, IntentTakeAway, IntentDelivery, IntentGeneralInfo, IntentUnclear:
		return true
	}
	return false
}

// Fulfillment reports whether i names one of the three fulfillment flows.
func (i Intent) Fulfillment() bool {
	switch i {
	case IntentReservation, IntentTakeAway, IntentDelivery:
		return true
	}
	return false
}
