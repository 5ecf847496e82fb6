package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus indicates where a booking sits in its lifecycle.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingActive    BookingStatus = "ACTIVE"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// bookingTransitions is the single source of truth for permitted booking
// status changes. CONFIRMED -> ACTIVE and ACTIVE -> COMPLETED are driven by
// a time-based trigger outside this core, but stay in the table so the
// repository layer can enforce the same rules.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingActive, BookingCancelled},
	BookingActive:    {BookingCompleted, BookingCancelled},
	BookingCompleted: {},
	BookingCancelled: {},
}

// IsValid reports whether the value is a known booking status.
func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// IsTerminal reports whether no further transitions leave this status.
func (s BookingStatus) IsTerminal() bool {
	next, ok := bookingTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether the transition s -> target is permitted.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Booking represents a reservation of one vehicle over one closed date
// interval [StartDate, EndDate]. A booking is never deleted; it is only
// status-transitioned, so cancelled bookings remain for audit.
type Booking struct {
	BookingID      string          `json:"bookingID"` // Primary Key (UUID)
	VehicleID      string          `json:"vehicleID"` // FK -> vehicles.vehicle_id
	RenterID       string          `json:"renterID"`  // Authenticated caller who placed the booking
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"` // Never before StartDate; may equal it for a one-day rental
	PickupLocation string          `json:"pickupLocation"`
	ReturnLocation string          `json:"returnLocation"`
	Amount         decimal.Decimal `json:"amount"` // Computed from vehicle daily rate, never client supplied
	Status         BookingStatus   `json:"status"`
	AuditFields
}

// Overlaps reports whether the booking's interval overlaps [start, end]
// under closed-interval semantics: touching endpoints count as overlap, so
// a same-day handoff between two bookings is not permitted.
func (b Booking) Overlaps(start, end time.Time) bool {
	return !b.StartDate.After(end) && !b.EndDate.Before(start)
}
