package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus mirrors the status enum stored in the bookings table.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingActive    BookingStatus = "ACTIVE"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking represents a row of the bookings table.
type Booking struct {
	BookingID      string          `db:"booking_id"`
	VehicleID      string          `db:"vehicle_id"`
	RenterID       string          `db:"renter_id"`
	StartDate      time.Time       `db:"start_date"`
	EndDate        time.Time       `db:"end_date"`
	PickupLocation string          `db:"pickup_location"`
	ReturnLocation string          `db:"return_location"`
	Amount         decimal.Decimal `db:"amount"`
	Status         BookingStatus   `db:"status"`
	AuditFields
}
