package domain

import (
	"github.com/shopspring/decimal"
)

// VehicleAvailability tracks whether a vehicle can accept new bookings.
type VehicleAvailability string

const (
	Available   VehicleAvailability = "AVAILABLE"
	Reserved    VehicleAvailability = "RESERVED"
	Maintenance VehicleAvailability = "MAINTENANCE"
	Deactivated VehicleAvailability = "DEACTIVATED"
)

// IsValid reports whether the value is a known availability state.
func (a VehicleAvailability) IsValid() bool {
	switch a {
	case Available, Reserved, Maintenance, Deactivated:
		return true
	}
	return false
}

// Vehicle represents a bookable rental vehicle within the core domain.
// Availability is mutated only by the booking service, in lockstep with
// booking creation and cancellation.
type Vehicle struct {
	VehicleID    string              `json:"vehicleID"` // Primary Key (UUID)
	OwnerID      string              `json:"ownerID"`   // FK -> users.user_id
	Make         string              `json:"make"`
	Model        string              `json:"model"`
	Year         int                 `json:"year"`
	PlateNumber  string              `json:"plateNumber"` // Unique registration plate
	DailyRate    decimal.Decimal     `json:"dailyRate"`   // Price per billable day
	Availability VehicleAvailability `json:"availability"`
	AuditFields
}
