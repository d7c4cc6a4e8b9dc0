package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolahq/tavola/internal/domain"
)

func TestTransitionTableIsValid(t *testing.T) {
	require.NoError(t, validateTransitions(transitions))
}

func TestValidateTransitionsRejectsBadTables(t *testing.T) {
	t.Run("missing outgoing set", func(t *testing.T) {
		table := map[Node][]Node{}
		for k, v := range transitions {
			table[k] = v
		}
		delete(table, NodeDisambiguation)
		err := validateTransitions(table)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no outgoing transitions")
	})

	t.Run("undeclared target", func(t *testing.T) {
		table := map[Node][]Node{}
		for k, v := range transitions {
			table[k] = v
		}
		table[NodeTakeAway] = []Node{NodeEnd, Node("limbo")}
		err := validateTransitions(table)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "undeclared node")
	})

	t.Run("terminal with outgoing", func(t *testing.T) {
		table := map[Node][]Node{}
		for k, v := range transitions {
			table[k] = v
		}
		table[NodeEnd] = []Node{NodeStart}
		err := validateTransitions(table)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "terminal")
	})
}

func TestTerminalNodes(t *testing.T) {
	assert.True(t, NodeEnd.Terminal())
	assert.True(t, NodeTransferToOperator.Terminal())
	assert.False(t, NodeUnderstand.Terminal())
	assert.False(t, NodeReservationConfirm.Terminal())
}

func TestMissingFieldsQuestion(t *testing.T) {
	cases := []struct {
		name    string
		missing []domain.BookingField
		want    string
	}{
		{
			name:    "all four",
			missing: []domain.BookingField{domain.FieldPeople, domain.FieldDate, domain.FieldTime, domain.FieldName},
			want:    "Could you tell me the number of people, the date, the time and the name for the reservation?",
		},
		{
			name:    "three remaining",
			missing: []domain.BookingField{domain.FieldPeople, domain.FieldTime, domain.FieldName},
			want:    "Could you tell me the number of people, the time and the name for the reservation?",
		},
		{
			name:    "two remaining",
			missing: []domain.BookingField{domain.FieldDate, domain.FieldName},
			want:    "Could you tell me the date and the name for the reservation?",
		},
		{
			name:    "only name",
			missing: []domain.BookingField{domain.FieldName},
			want:    "Could you tell me the name for the reservation?",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, missingFieldsQuestion(tc.missing))
		})
	}
}
