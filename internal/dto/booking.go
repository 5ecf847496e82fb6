package dto

import (
	"time"

	"github.com/movira/vehicle_rental_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBookingRequest defines the data needed to reserve a vehicle.
// The booking amount is computed server-side and is never part of the request.
type CreateBookingRequest struct {
	VehicleID      string    `json:"vehicleID" binding:"required"`
	StartDate      time.Time `json:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate        time.Time `json:"endDate" binding:"required" time_format:"2006-01-02"`
	PickupLocation string    `json:"pickupLocation" binding:"required"`
	ReturnLocation string    `json:"returnLocation" binding:"required"`
}

// BookingResponse defines the data returned for a booking.
type BookingResponse struct {
	BookingID      string               `json:"bookingID"`
	VehicleID      string               `json:"vehicleID"`
	RenterID       string               `json:"renterID"`
	StartDate      time.Time            `json:"startDate"`
	EndDate        time.Time            `json:"endDate"`
	PickupLocation string               `json:"pickupLocation"`
	ReturnLocation string               `json:"returnLocation"`
	Amount         decimal.Decimal      `json:"amount"`
	Status         domain.BookingStatus `json:"status"`
	CreatedAt      time.Time            `json:"createdAt"`
	LastUpdated    time.Time            `json:"lastUpdatedAt"`
}

// ToBookingResponse converts a domain.Booking to BookingResponse DTO
func ToBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		BookingID:      b.BookingID,
		VehicleID:      b.VehicleID,
		RenterID:       b.RenterID,
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
		PickupLocation: b.PickupLocation,
		ReturnLocation: b.ReturnLocation,
		Amount:         b.Amount,
		Status:         b.Status,
		CreatedAt:      b.CreatedAt,
		LastUpdated:    b.LastUpdatedAt,
	}
}

// ListBookingsParams defines query parameters for listing bookings.
type ListBookingsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListBookingsResponse wraps a page of bookings with the next-page token.
type ListBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListBookingsResponse converts a slice of domain.Booking to a page response.
func ToListBookingsResponse(bookings []domain.Booking, nextToken *string) *ListBookingsResponse {
	res := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		res[i] = ToBookingResponse(&b)
	}
	return &ListBookingsResponse{Bookings: res, NextToken: nextToken}
}
