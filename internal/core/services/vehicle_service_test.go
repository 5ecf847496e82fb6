package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/movira/vehicle_rental_app/internal/apperrors"
	"github.com/movira/vehicle_rental_app/internal/core/domain"
	portssvc "github.com/movira/vehicle_rental_app/internal/core/ports/services"
	"github.com/movira/vehicle_rental_app/internal/core/services"
	"github.com/movira/vehicle_rental_app/internal/dto"
)

type VehicleServiceTestSuite struct {
	suite.Suite
	mockVehicleRepo *MockVehicleRepository
	service         portssvc.VehicleSvcFacade
}

func (suite *VehicleServiceTestSuite) SetupTest() {
	suite.mockVehicleRepo = new(MockVehicleRepository)
	suite.service = services.NewVehicleService(suite.mockVehicleRepo)
}

func (suite *VehicleServiceTestSuite) TestCreateVehicle_Success() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	req := dto.CreateVehicleRequest{
		Make:        "Honda",
		Model:       "Civic",
		Year:        2023,
		PlateNumber: "XYZ-789",
		DailyRate:   decimal.NewFromInt(60),
	}

	suite.mockVehicleRepo.On("SaveVehicle", ctx, mock.MatchedBy(func(v domain.Vehicle) bool {
		return v.OwnerID == ownerID &&
			v.PlateNumber == req.PlateNumber &&
			v.Availability == domain.Available
	})).Return(nil).Once()

	vehicle, err := suite.service.CreateVehicle(ctx, ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(vehicle)
	suite.Equal(domain.Available, vehicle.Availability)
	suite.mockVehicleRepo.AssertExpectations(suite.T())
}

func (suite *VehicleServiceTestSuite) TestCreateVehicle_NonPositiveRateRejected() {
	ctx := context.Background()
	req := dto.CreateVehicleRequest{
		Make:        "Honda",
		Model:       "Civic",
		Year:        2023,
		PlateNumber: "XYZ-789",
		DailyRate:   decimal.Zero,
	}

	vehicle, err := suite.service.CreateVehicle(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(vehicle)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockVehicleRepo.AssertNotCalled(suite.T(), "SaveVehicle")
}

func (suite *VehicleServiceTestSuite) TestUpdateVehicle_ForeignVehicleReadsAsNotFound() {
	ctx := context.Background()
	vehicleID := uuid.NewString()
	stored := &domain.Vehicle{
		VehicleID:    vehicleID,
		OwnerID:      uuid.NewString(),
		Availability: domain.Available,
	}

	suite.mockVehicleRepo.On("FindVehicleByID", ctx, vehicleID).Return(stored, nil).Once()

	newMake := "Ford"
	vehicle, err := suite.service.UpdateVehicle(ctx, uuid.NewString(), vehicleID, dto.UpdateVehicleRequest{Make: &newMake})

	suite.Require().Error(err)
	suite.Nil(vehicle)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockVehicleRepo.AssertNotCalled(suite.T(), "UpdateVehicle")
}

func (suite *VehicleServiceTestSuite) TestSetVehicleMaintenance_ReservedVehicleRejected() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	vehicleID := uuid.NewString()
	stored := &domain.Vehicle{
		VehicleID:    vehicleID,
		OwnerID:      ownerID,
		Availability: domain.Reserved,
	}

	suite.mockVehicleRepo.On("FindVehicleByID", ctx, vehicleID).Return(stored, nil).Once()

	vehicle, err := suite.service.SetVehicleMaintenance(ctx, ownerID, vehicleID, true)

	suite.Require().Error(err)
	suite.Nil(vehicle)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockVehicleRepo.AssertNotCalled(suite.T(), "UpdateVehicleAvailability")
}

func (suite *VehicleServiceTestSuite) TestSetVehicleMaintenance_RoundTrip() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	vehicleID := uuid.NewString()

	stored := &domain.Vehicle{
		VehicleID:    vehicleID,
		OwnerID:      ownerID,
		Availability: domain.Available,
	}
	suite.mockVehicleRepo.On("FindVehicleByID", ctx, vehicleID).Return(stored, nil).Once()
	suite.mockVehicleRepo.On("UpdateVehicleAvailability", ctx, vehicleID, domain.Maintenance, ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	vehicle, err := suite.service.SetVehicleMaintenance(ctx, ownerID, vehicleID, true)
	suite.Require().NoError(err)
	suite.Equal(domain.Maintenance, vehicle.Availability)

	backStored := &domain.Vehicle{
		VehicleID:    vehicleID,
		OwnerID:      ownerID,
		Availability: domain.Maintenance,
	}
	suite.mockVehicleRepo.On("FindVehicleByID", ctx, vehicleID).Return(backStored, nil).Once()
	suite.mockVehicleRepo.On("UpdateVehicleAvailability", ctx, vehicleID, domain.Available, ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	vehicle, err = suite.service.SetVehicleMaintenance(ctx, ownerID, vehicleID, false)
	suite.Require().NoError(err)
	suite.Equal(domain.Available, vehicle.Availability)
	suite.mockVehicleRepo.AssertExpectations(suite.T())
}

func (suite *VehicleServiceTestSuite) TestDeactivateVehicle_ReservedRejected() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	vehicleID := uuid.NewString()
	stored := &domain.Vehicle{
		VehicleID:    vehicleID,
		OwnerID:      ownerID,
		Availability: domain.Reserved,
	}

	suite.mockVehicleRepo.On("FindVehicleByID", ctx, vehicleID).Return(stored, nil).Once()

	err := suite.service.DeactivateVehicle(ctx, ownerID, vehicleID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockVehicleRepo.AssertNotCalled(suite.T(), "UpdateVehicleAvailability")
}

func TestVehicleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VehicleServiceTestSuite))
}
