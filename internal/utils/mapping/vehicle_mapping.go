package mapping

import (
	"github.com/movira/vehicle_rental_app/internal/core/domain"
	"github.com/movira/vehicle_rental_app/internal/models"
)

// ToModelVehicle converts a domain Vehicle to a model Vehicle
func ToModelVehicle(d domain.Vehicle) models.Vehicle {
	return models.Vehicle{
		VehicleID:    d.VehicleID,
		OwnerID:      d.OwnerID,
		Make:         d.Make,
		Model:        d.Model,
		Year:         d.Year,
		PlateNumber:  d.PlateNumber,
		DailyRate:    d.DailyRate,
		Availability: models.VehicleAvailability(d.Availability),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVehicle converts a model Vehicle to a domain Vehicle
func ToDomainVehicle(m models.Vehicle) domain.Vehicle {
	return domain.Vehicle{
		VehicleID:    m.VehicleID,
		OwnerID:      m.OwnerID,
		Make:         m.Make,
		Model:        m.Model,
		Year:         m.Year,
		PlateNumber:  m.PlateNumber,
		DailyRate:    m.DailyRate,
		Availability: domain.VehicleAvailability(m.Availability),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVehicleSlice converts a slice of model Vehicles to a slice of domain Vehicles
func ToDomainVehicleSlice(ms []models.Vehicle) []domain.Vehicle {
	ds := make([]domain.Vehicle, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVehicle(m)
	}
	return ds
}
