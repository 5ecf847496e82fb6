package dto

import (
	"time"

	"github.com/movira/vehicle_rental_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVehicleRequest defines the data needed to register a new vehicle.
type CreateVehicleRequest struct {
	Make        string          `json:"make" binding:"required"`
	Model       string          `json:"model" binding:"required"`
	Year        int             `json:"year" binding:"required,gte=1950"`
	PlateNumber string          `json:"plateNumber" binding:"required"`
	DailyRate   decimal.Decimal `json:"dailyRate" binding:"required"`
}

// UpdateVehicleRequest defines the data allowed for updating a vehicle.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateVehicleRequest struct {
	Make      *string          `json:"make"`
	Model     *string          `json:"model"`
	Year      *int             `json:"year"`
	DailyRate *decimal.Decimal `json:"dailyRate"`
}

// SetMaintenanceRequest toggles a vehicle's maintenance state.
// A pointer so that an omitted flag fails binding instead of reading as false.
type SetMaintenanceRequest struct {
	UnderMaintenance *bool `json:"underMaintenance" binding:"required"`
}

// VehicleResponse defines the data returned for a vehicle.
type VehicleResponse struct {
	VehicleID    string                     `json:"vehicleID"`
	OwnerID      string                     `json:"ownerID"`
	Make         string                     `json:"make"`
	Model        string                     `json:"model"`
	Year         int                        `json:"year"`
	PlateNumber  string                     `json:"plateNumber"`
	DailyRate    decimal.Decimal            `json:"dailyRate"`
	Availability domain.VehicleAvailability `json:"availability"`
	CreatedAt    time.Time                  `json:"createdAt"`
	LastUpdated  time.Time                  `json:"lastUpdatedAt"`
}

// ToVehicleResponse converts a domain.Vehicle to VehicleResponse DTO
func ToVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		VehicleID:    v.VehicleID,
		OwnerID:      v.OwnerID,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		PlateNumber:  v.PlateNumber,
		DailyRate:    v.DailyRate,
		Availability: v.Availability,
		CreatedAt:    v.CreatedAt,
		LastUpdated:  v.LastUpdatedAt,
	}
}

// ListVehiclesParams defines query parameters for listing vehicles.
type ListVehiclesParams struct {
	Limit         int     `form:"limit,default=20"`
	NextToken     *string `form:"nextToken"`
	OnlyAvailable bool    `form:"onlyAvailable,default=false"`
}

// ListVehiclesResponse wraps a page of vehicles with the next-page token.
type ListVehiclesResponse struct {
	Vehicles  []VehicleResponse `json:"vehicles"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListVehiclesResponse converts a slice of domain.Vehicle to a page response.
func ToListVehiclesResponse(vehicles []domain.Vehicle, nextToken *string) *ListVehiclesResponse {
	res := make([]VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		res[i] = ToVehicleResponse(&v)
	}
	return &ListVehiclesResponse{Vehicles: res, NextToken: nextToken}
}
