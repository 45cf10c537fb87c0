package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeCommission(t *testing.T) {
	cases := []struct {
		total, rate, want string
	}{
		{"100", "15", "15"},
		{"99.99", "12.5", "12.5"},
		{"10.01", "10", "1"},
		{"0", "20", "0"},
	}

	for _, tc := range cases {
		got := ComputeCommission(decimal.RequireFromString(tc.total), decimal.RequireFromString(tc.rate))
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "%s x %s%% = %s", tc.total, tc.rate, got)
	}
}

func TestBookingTransitions(t *testing.T) {
	allowed := []struct{ from, to BookingStatus }{
		{BookingPending, BookingConfirmed},
		{BookingPending, BookingCompleted},
		{BookingConfirmed, BookingInProgress},
		{BookingInProgress, BookingCompleted},
		{BookingPending, BookingCancelled},
		{BookingInProgress, BookingCancelled},
		{BookingCompleted, BookingRefunded},
		{BookingConfirmed, BookingRefunded},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to BookingStatus }{
		{BookingCompleted, BookingInProgress},
		{BookingCompleted, BookingPending},
		{BookingConfirmed, BookingPending},
		{BookingCompleted, BookingCancelled},
		{BookingCancelled, BookingConfirmed},
		{BookingRefunded, BookingCompleted},
		{BookingPending, BookingPending},
		{BookingPending, BookingStatus("archived")},
	}
	for _, tc := range denied {
		assert.False(t, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}
