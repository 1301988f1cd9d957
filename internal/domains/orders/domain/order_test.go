package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{"", StatusPlaced, true},
		{"", StatusUnfulfillable, true},
		{"", StatusInvoiced, false},
		{"", StatusCancelled, false},
		{StatusPlaced, StatusPlaced, true},
		{StatusPlaced, StatusCancelled, true},
		{StatusPlaced, StatusInvoiced, true},
		{StatusPlaced, StatusUnfulfillable, false},
		{StatusUnfulfillable, StatusPlaced, true},
		{StatusUnfulfillable, StatusUnfulfillable, true},
		{StatusUnfulfillable, StatusCancelled, true},
		{StatusUnfulfillable, StatusInvoiced, false},
		{StatusInvoiced, StatusCancelled, false},
		{StatusInvoiced, StatusPlaced, false},
		{StatusCancelled, StatusPlaced, false},
		{StatusCancelled, StatusCancelled, false},
	}
	for _, tc := range cases {
		require.Equalf(t, tc.allowed, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStatusTerminal(t *testing.T) {
	require.True(t, StatusInvoiced.Terminal())
	require.True(t, StatusCancelled.Terminal())
	require.False(t, StatusPlaced.Terminal())
	require.False(t, StatusUnfulfillable.Terminal())
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("PLACED")
	require.NoError(t, err)
	require.Equal(t, StatusPlaced, status)

	_, err = ParseStatus("placed")
	require.ErrorIs(t, err, ErrUnknownStatus)
	_, err = ParseStatus("SHIPPED")
	require.ErrorIs(t, err, ErrUnknownStatus)
}

func TestNewLineValidation(t *testing.T) {
	_, err := NewLine("p1", 0, 10.0)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = NewLine("p1", -1, 10.0)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = NewLine("p1", 1, 0)
	require.ErrorIs(t, err, ErrInvalidUnitPrice)

	line, err := NewLine("p1", 3, 2.5)
	require.NoError(t, err)
	require.InDelta(t, 7.5, line.LineTotal, 1e-9)
}

func TestOrderTransitionRejectsIllegalMove(t *testing.T) {
	line, err := NewLine("p1", 1, 1.0)
	require.NoError(t, err)
	order, err := NewOrder("id-1", "ORD-000001", []Line{*line})
	require.NoError(t, err)

	require.Error(t, order.Transition(StatusInvoiced))
	require.NoError(t, order.Transition(StatusPlaced))
	require.NoError(t, order.Transition(StatusInvoiced))
	err = order.Transition(StatusCancelled)
	require.ErrorIs(t, err, ErrIllegalTransition)
}

func TestReplaceLinesRecomputesTotals(t *testing.T) {
	first, err := NewLine("p1", 2, 10.0)
	require.NoError(t, err)
	order, err := NewOrder("id-1", "ORD-000001", []Line{*first})
	require.NoError(t, err)
	require.Equal(t, int64(2), order.TotalItems)
	require.InDelta(t, 20.0, order.TotalAmount, 1e-9)
	require.Equal(t, "ORD-000001", order.Lines[0].OrderNumber)

	second, err := NewLine("p2", 3, 5.0)
	require.NoError(t, err)
	third, err := NewLine("p3", 1, 7.0)
	require.NoError(t, err)
	order.ReplaceLines([]Line{*second, *third})
	require.Equal(t, int64(4), order.TotalItems)
	require.InDelta(t, 22.0, order.TotalAmount, 1e-9)
	require.Len(t, order.Lines, 2)
}

func TestNewOrderRequiresLines(t *testing.T) {
	_, err := NewOrder("id-1", "ORD-000001", nil)
	require.ErrorIs(t, err, ErrEmptyLines)
}
