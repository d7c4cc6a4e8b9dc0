package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ip(v int) *int       { return &v }
func sp(v string) *string { return &v }

func TestBookingMergeKeepsKnownFields(t *testing.T) {
	base := BookingSlots{People: ip(4), Date: sp("25/12/2024")}

	// partial result with only a time; people and date must survive
	merged := base.Merge(BookingSlots{Time: sp("20:00")})

	require.NotNil(t, merged.People)
	assert.Equal(t, 4, *merged.People)
	require.NotNil(t, merged.Date)
	assert.Equal(t, "25/12/2024", *merged.Date)
	require.NotNil(t, merged.Time)
	assert.Equal(t, "20:00", *merged.Time)
	assert.Nil(t, merged.Name)
}

func TestBookingMergeNeverNullsOnNil(t *testing.T) {
	base := BookingSlots{People: ip(2), Date: sp("01/01/2025"), Time: sp("19:30"), Name: sp("Rossi")}

	merged := base.Merge(BookingSlots{})

	assert.Equal(t, base, merged)
}

func TestBookingMergeReplacesValues(t *testing.T) {
	base := BookingSlots{People: ip(4), Date: sp("25/12/2024"), Time: sp("20:00"), Name: sp("Rossi")}

	// modification round: full set with a changed people count
	merged := base.Merge(BookingSlots{People: ip(3), Date: sp("25/12/2024"), Time: sp("20:00"), Name: sp("Rossi")})

	assert.Equal(t, 3, *merged.People)
	assert.Equal(t, "25/12/2024", *merged.Date)
	assert.Equal(t, "20:00", *merged.Time)
	assert.Equal(t, "Rossi", *merged.Name)
}

func TestBookingMergeDoesNotAliasSource(t *testing.T) {
	src := BookingSlots{People: ip(5)}
	merged := BookingSlots{}.Merge(src)

	*src.People = 99
	assert.Equal(t, 5, *merged.People)
}

func TestMissingFixedOrder(t *testing.T) {
	s := BookingSlots{Date: sp("25/12/2024")}
	assert.Equal(t, []BookingField{FieldPeople, FieldTime, FieldName}, s.Missing())

	s = BookingSlots{}
	assert.Equal(t, []BookingField{FieldPeople, FieldDate, FieldTime, FieldName}, s.Missing())

	s = BookingSlots{People: ip(2), Date: sp("x"), Time: sp("y"), Name: sp("z")}
	assert.Empty(t, s.Missing())
	assert.True(t, s.Complete())
}

func TestOrderMerge(t *testing.T) {
	base := OrderSlots{Address: sp("Via Roma 1")}
	merged := base.Merge(OrderSlots{Items: ip(3)})

	assert.Equal(t, 3, *merged.Items)
	assert.Equal(t, "Via Roma 1", *merged.Address)

	// nil never clears
	merged = merged.Merge(OrderSlots{})
	assert.Equal(t, 3, *merged.Items)
	assert.Equal(t, "Via Roma 1", *merged.Address)
}

func TestTranscriptAppendIsValueSemantics(t *testing.T) {
	at := time.Date(2024, 12, 20, 18, 0, 0, 0, time.UTC)
	base := Transcript{}.Append(CallerTurn("hello", at))

	a := base.Append(AgentTurn("good evening", at))
	b := base.Append(AgentTurn("something else", at))

	require.Len(t, base, 1)
	require.Len(t, a, 2)
	require.Len(t, b, 2)
	assert.Equal(t, "good evening", a[1].Text)
	assert.Equal(t, "something else", b[1].Text)
}

func TestTranscriptPreservesOrder(t *testing.T) {
	at := time.Now()
	tr := Transcript{}.
		Append(CallerTurn("one", at)).
		Append(AgentTurn("two", at)).
		Append(CallerTurn("three", at))

	require.Len(t, tr, 3)
	assert.Equal(t, "one", tr[0].Text)
	assert.Equal(t, "two", tr[1].Text)
	assert.Equal(t, "three", tr[2].Text)
}

func TestTranscriptRender(t *testing.T) {
	at := time.Now()
	tr := Transcript{}.
		Append(CallerTurn("I'd like a table", at)).
		Append(AgentTurn("For how many people?", at))

	assert.Equal(t, "caller: I'd like a table\nagent: For how many people?", tr.Render())
	assert.Equal(t, "", Transcript{}.Render())
}

func TestIntentHelpers(t *testing.T) {
	assert.True(t, IntentReservation.Valid())
	assert.True(t, IntentUnclear.Valid())
	assert.False(t, Intent("pizza").Valid())

	assert.True(t, IntentDelivery.Fulfillment())
	assert.True(t, IntentTakeAway.Fulfillment())
	assert.False(t, IntentUnclear.Fulfillment())
	assert.False(t, IntentGeneralInfo.Fulfillment())
}

func TestRestaurantDescribe(t *testing.T) {
	r := Restaurant{
		Name:    "Al Fornareto",
		Address: "Via Garibaldi 12",
		Hours:   map[string]string{"monday": "closed", "friday": "19:00-23:30"},
		Services: Services{
			Reservations: true,
			TakeAway:     true,
		},
		Menu: []MenuSection{
			{Name: "Pizzas", Items: []MenuItem{{Name: "Margherita", Price: 7.5}}},
		},
	}

	out := r.Describe()
	assert.Contains(t, out, "Name: Al Fornareto")
	assert.Contains(t, out, "monday: closed")
	assert.Contains(t, out, "friday: 19:00-23:30")
	assert.Contains(t, out, "Reservations: yes")
	assert.Contains(t, out, "Delivery: no")
	assert.Contains(t, out, "Margherita (7.50)")
}
