package mapping

import (
	"github.com/movira/vehicle_rental_app/internal/core/domain"
	"github.com/movira/vehicle_rental_app/internal/models"
)

// ToModelBooking converts a domain Booking to a model Booking
func ToModelBooking(d domain.Booking) models.Booking {
	return models.Booking{
		BookingID:      d.BookingID,
		VehicleID:      d.VehicleID,
		RenterID:       d.RenterID,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		PickupLocation: d.PickupLocation,
		ReturnLocation: d.ReturnLocation,
		Amount:         d.Amount,
		Status:         models.BookingStatus(d.Status),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBooking converts a model Booking to a domain Booking
func ToDomainBooking(m models.Booking) domain.Booking {
	return domain.Booking{
		BookingID:      m.BookingID,
		VehicleID:      m.VehicleID,
		RenterID:       m.RenterID,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		PickupLocation: m.PickupLocation,
		ReturnLocation: m.ReturnLocation,
		Amount:         m.Amount,
		Status:         domain.BookingStatus(m.Status),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBookingSlice converts a slice of model Bookings to a slice of domain Bookings
func ToDomainBookingSlice(ms []models.Booking) []domain.Booking {
	ds := make([]domain.Booking, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBooking(m)
	}
	return ds
}
