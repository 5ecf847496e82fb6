package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/movira/vehicle_rental_app/internal/core/domain"
)

func TestBookingStatusTransitions(t *testing.T) {
	testCases := []struct {
		name    string
		from    domain.BookingStatus
		to      domain.BookingStatus
		allowed bool
	}{
		{"pending to confirmed", domain.BookingPending, domain.BookingConfirmed, true},
		{"pending to cancelled", domain.BookingPending, domain.BookingCancelled, true},
		{"pending to active", domain.BookingPending, domain.BookingActive, false},
		{"pending to completed", domain.BookingPending, domain.BookingCompleted, false},
		{"confirmed to active", domain.BookingConfirmed, domain.BookingActive, true},
		{"confirmed to cancelled", domain.BookingConfirmed, domain.BookingCancelled, true},
		{"confirmed to completed", domain.BookingConfirmed, domain.BookingCompleted, false},
		{"active to completed", domain.BookingActive, domain.BookingCompleted, true},
		{"active to cancelled", domain.BookingActive, domain.BookingCancelled, true},
		{"active to pending", domain.BookingActive, domain.BookingPending, false},
		{"completed is terminal", domain.BookingCompleted, domain.BookingCancelled, false},
		{"cancelled is terminal", domain.BookingCancelled, domain.BookingPending, false},
		{"cancelled cannot be confirmed", domain.BookingCancelled, domain.BookingConfirmed, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.True(t, domain.BookingCompleted.IsTerminal())
	assert.True(t, domain.BookingCancelled.IsTerminal())
	assert.False(t, domain.BookingPending.IsTerminal())
	assert.False(t, domain.BookingConfirmed.IsTerminal())
	assert.False(t, domain.BookingActive.IsTerminal())
}

func TestBookingStatusIsValid(t *testing.T) {
	assert.True(t, domain.BookingPending.IsValid())
	assert.False(t, domain.BookingStatus("RESERVED").IsValid())
	assert.False(t, domain.BookingStatus("").IsValid())
}

func TestBookingOverlaps(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC)
	}
	booking := domain.Booking{StartDate: day(5), EndDate: day(10)}

	testCases := []struct {
		name     string
		start    time.Time
		end      time.Time
		overlaps bool
	}{
		{"fully before", day(1), day(4), false},
		{"fully after", day(11), day(14), false},
		{"contained", day(6), day(9), true},
		{"containing", day(1), day(14), true},
		{"partial front", day(3), day(6), true},
		{"partial back", day(9), day(12), true},
		{"touching start endpoint", day(1), day(5), true},
		{"touching end endpoint", day(10), day(14), true},
		{"identical interval", day(5), day(10), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, booking.Overlaps(tc.start, tc.end))
		})
	}
}
