package domain

// Slot date/time formats used everywhere a slot value crosses a boundary.
const (
	SlotDateFormat = "02/01/2006" // DD/MM/YYYY
	SlotTimeFormat = "15:04"      // HH:MM, 24h
)

// BookingField names a single reservation slot.
type BookingField string

// Reservation slots, in the order they are asked for.
const (
	FieldPeople BookingField = "people"
	FieldDate   BookingField = "date"
	FieldTime   BookingField = "time"
	FieldName   BookingField = "name"
)

// bookingFieldOrder fixes the order missing fields are enumerated in.
var bookingFieldOrder = []BookingField{FieldPeople, FieldDate, FieldTime, FieldName}

// BookingSlots is the structured data collected for a table reservation.
// A nil field means the caller has not provided it yet.
type BookingSlots struct {
	People *int    `json:"people"`
	Date   *string `json:"date"` // DD/MM/YYYY
	Time   *string `json:"time"` // HH:MM
	Name   *string `json:"name"`
}

// Merge returns a new slot set with every non-nil field of other applied
// on top of s. A nil field in other never clears a known value, so partial
// extraction results can be folded in without losing information. The same
// rule covers the modification path, where the extractor is required to
// return the complete updated set: known fields arrive repeated, changed
// fields arrive with their new value, and an (out-of-contract) omission
// still cannot null out a field.
func (s BookingSlots) Merge(other BookingSlots) BookingSlots {
	out := s
	if other.People != nil {
		out.People = intPtr(*other.People)
	}
	if other.Date != nil {
		out.Date = strPtr(*other.Date)
	}
	if other.Time != nil {
		out.Time = strPtr(*other.Time)
	}
	if other.Name != nil {
		out.Name = strPtr(*other.Name)
	}
	return out
}

// Missing returns the unfilled fields in fixed order [people, date, time, name].
func (s BookingSlots) Missing() []BookingField {
	var missing []BookingField
	for _, f := range bookingFieldOrder {
		if !s.has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Complete reports whether every reservation slot is filled.
func (s BookingSlots) Complete() bool {
	return len(s.Missing()) == 0
}

// Empty reports whether no reservation slot is filled yet.
func (s BookingSlots) Empty() bool {
	return s.People == nil && s.Date == nil && s.Time == nil && s.Name == nil
}

func (s BookingSlots) has(f BookingField) bool {
	switch f {
	case FieldPeople:
		return s.People != nil
	case FieldDate:
		return s.Date != nil
	case FieldTime:
		return s.Time != nil
	case FieldName:
		return s.Name != nil
	}
	return false
}

// OrderSlots is the structured data collected for a take-away or delivery
// order. Address is only used for delivery.
type OrderSlots struct {
	Items   *int    `json:"items"`
	Address *string `json:"address"`
}

// Merge returns a new order slot set with non-nil fields of other applied.
func (s OrderSlots) Merge(other OrderSlots) OrderSlots {
	out := s
	if other.Items != nil {
		out.Items = intPtr(*other.Items)
	}
	if other.Address != nil {
		out.Address = strPtr(*other.Address)
	}
	return out
}

// Empty reports whether no order slot is filled yet.
func (s OrderSlots) Empty() bool {
	return s.Items == nil && s.Address == nil
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
