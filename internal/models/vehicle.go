package models

import (
	"github.com/shopspring/decimal"
)

// VehicleAvailability mirrors the availability enum stored in the vehicles table.
type VehicleAvailability string

const (
	Available   VehicleAvailability = "AVAILABLE"
	Reserved    VehicleAvailability = "RESERVED"
	Maintenance VehicleAvailability = "MAINTENANCE"
	Deactivated VehicleAvailability = "DEACTIVATED"
)

// Vehicle represents a row of the vehicles table.
type Vehicle struct {
	VehicleID    string              `db:"vehicle_id"`
	OwnerID      string              `db:"owner_id"`
	Make         string              `db:"make"`
	Model        string              `db:"model"`
	Year         int                 `db:"year"`
	PlateNumber  string              `db:"plate_number"`
	DailyRate    decimal.Decimal     `db:"daily_rate"`
	Availability VehicleAvailability `db:"availability"`
	AuditFields
}
