package services_test

import (
	"context"
	"testing"
	"time"

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

type BookingServiceTestSuite struct {
	suite.Suite
	mockBookingRepo *MockBookingRepository
	mockVehicleRepo *MockVehicleRepository
	mockNotifier    *MockNotifier
	service         portssvc.BookingSvcFacade
}

func (suite *BookingServiceTestSuite) SetupTest() {
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.mockVehicleRepo = new(MockVehicleRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewBookingService(suite.mockBookingRepo, suite.mockVehicleRepo, suite.mockNotifier)
}

func availableVehicle(ownerID string) *domain.Vehicle {
	return &domain.Vehicle{
		VehicleID:    uuid.NewString(),
		OwnerID:      ownerID,
		Make:         "Toyota",
		Model:        "Corolla",
		Year:         2022,
		PlateNumber:  "ABC-123",
		DailyRate:    decimal.NewFromInt(50),
		Availability: domain.Available,
	}
}

func bookingRequest(vehicleID string, start, end time.Time) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		VehicleID:      vehicleID,
		StartDate:      start,
		EndDate:        end,
		PickupLocation: "Airport",
		ReturnLocation: "Downtown",
	}
}

func (suite *BookingServiceTestSuite) TestCreateBooking_Success() {
	ctx := context.Background()
	renterID := uuid.NewString()
	vehicle := availableVehicle(uuid.NewString())
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC)
	req := bookingRequest(vehicle.VehicleID, start, end)

	suite.mockVehicleRepo.On("FindVehicleByID", ctx, vehicle.VehicleID).Return(vehicle, nil).Once()
	suite.mockBookingRepo.On("FindOverlappingBookings", ctx, vehicle.VehicleID, start, end, mock.Anything).Return([]domain.Booking{}, nil).Once()
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.MatchedBy(func(b domain.Booking) bool {
		return b.VehicleID == vehicle.VehicleID &&
			b.RenterID == renterID &&
			b.Status == domain.BookingPending &&
			b.Amount.Equal(decimal.NewFromInt(150)) // 3 days at 50
	})).Return(nil).Once()
	suite.mockNotifier.On("BookingCreated", ctx, mock.AnythingOfType("*domain.Booking")).Return().Once()

	booking, err := suite.service.CreateBooking(ctx, renterID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(booking)
	suite.Equal(domain.BookingPending, booking.Status)
	suite.True(booking.Amount.Equal(decimal.NewFromInt(150)))
	suite.mockBookingRepo.AssertExpectations(suite.T())
	suite.mockVehicleRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCreateBooking_SameDayChargesOneDay() {
	ctx := context.Background()
	renterID := uuid.NewString()
	vehicle := availableVehicle(uuid.NewString())
	day := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	req := bookingRequest(vehicle.VehicleID, day, day)

	suite.mockVehicleRepo.On("FindVehicleByID", ctx, vehicle.VehicleID).Return(vehicle, nil).Once()
	suite.mockBookingRepo.On("FindOverlappingBookings", ctx, vehicle.VehicleID, day, day, mock.Anything).Return([]domain.Booking{}, nil).Once()
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.MatchedBy(func(b domain.Booking) bool {
		return b.Amount.Equal(decimal.NewFromInt(50)) // minimum one billable day
	})).Return(nil).Once()
	suite.mockNotifier.On("BookingCreated", ctx, mock.AnythingOfType("*domain.Booking")).Return().Once()

	booking, err := suite.service.CreateBooking(ctx, renterID, req)

	suite.Require().NoError(err)
	suite.True(booking.Amount.Equal(decimal.NewFromInt(50)))
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCreateBooking_EndBeforeStart() {
	ctx := context.Background()
	start := time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	req := bookingRequest(uuid.NewString(), start, end)

	booking, err := suite.service.CreateBooking(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(booking)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockVehicleRepo.AssertNotCalled(suite.T(), "FindVehicleByID")
}

func (suite *BookingServiceTestSuite) TestCreateBooking_VehicleNotFound() {
	ctx := context.Background()
	vehicleID := uuid.NewString()
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC)
	req := bookingRequest(vehicleID, start, end)

	suite.mockVehicleRepo.On("FindVehicleByID", ctx, vehicleID).Return(nil, apperrors.ErrNotFound).Once()

	booking, err := suite.service.CreateBooking(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(booking)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_VehicleNotAvailable() {
	ctx := context.Background()
	vehicle := availableVehicle(uuid.NewString())
	vehicle.Availability = domain.Maintenance
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC)
	req := bookingRequest(vehicle.VehicleID, start, end)

	suite.mockVehicleRepo.On("FindVehicleByID", ctx, vehicle.VehicleID).Return(vehicle, nil).Once()

	booking, err := suite.service.CreateBooking(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(booking)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "SaveBooking")
}

func (suite *BookingServiceTestSuite) TestCreateBooking_TouchingEndpointConflicts() {
	ctx := context.Background()
	vehicle := availableVehicle(uuid.NewString())
	// Existing booking ends on the 4th; new request starts on the 4th.
	start := time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 7, 0, 0, 0, 0, time.UTC)
	req := bookingRequest(vehicle.VehicleID, start, end)

	existing := domain.Booking{
		BookingID: uuid.NewString(),
		VehicleID: vehicle.VehicleID,
		StartDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   start,
		Status:    domain.BookingConfirmed,
	}

	suite.mockVehicleRepo.On("FindVehicleByID", ctx, vehicle.VehicleID).Return(vehicle, nil).Once()
	suite.mockBookingRepo.On("FindOverlappingBookings", ctx, vehicle.VehicleID, start, end, mock.Anything).Return([]domain.Booking{existing}, nil).Once()

	booking, err := suite.service.CreateBooking(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(booking)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "SaveBooking")
}

func (suite *BookingServiceTestSuite) TestCreateBooking_RaceLoserGetsConflict() {
	ctx := context.Background()
	vehicle := availableVehicle(uuid.NewString())
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC)
	req := bookingRequest(vehicle.VehicleID, start, end)

	// Pre-checks pass, but the serialized check inside SaveBooking sees the
	// winner's booking and rejects.
	suite.mockVehicleRepo.On("FindVehicleByID", ctx, vehicle.VehicleID).Return(vehicle, nil).Once()
	suite.mockBookingRepo.On("FindOverlappingBookings", ctx, vehicle.VehicleID, start, end, mock.Anything).Return([]domain.Booking{}, nil).Once()
	suite.mockBookingRepo.On("SaveBooking", ctx, mock.AnythingOfType("domain.Booking")).Return(apperrors.ErrConflict).Once()

	booking, err := suite.service.CreateBooking(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(booking)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockNotifier.AssertNotCalled(suite.T(), "BookingCreated")
}

func (suite *BookingServiceTestSuite) TestCancelBooking_FromPendingLeavesVehicleReserved() {
	ctx := context.Background()
	renterID := uuid.NewString()
	booking := &domain.Booking{
		BookingID: uuid.NewString(),
		VehicleID: uuid.NewString(),
		RenterID:  renterID,
		Status:    domain.BookingPending,
	}

	suite.mockBookingRepo.On("FindBookingByRenterAndID", ctx, renterID, booking.BookingID).Return(booking, nil).Once()
	suite.mockBookingRepo.On("UpdateBookingStatusAndAvailability", ctx, booking.BookingID, domain.BookingCancelled, false, renterID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockNotifier.On("BookingCancelled", ctx, mock.AnythingOfType("*domain.Booking")).Return().Once()

	cancelled, err := suite.service.CancelBooking(ctx, renterID, booking.BookingID)

	suite.Require().NoError(err)
	suite.Equal(domain.BookingCancelled, cancelled.Status)
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCancelBooking_FromConfirmedRevertsAvailability() {
	ctx := context.Background()
	renterID := uuid.NewString()
	booking := &domain.Booking{
		BookingID: uuid.NewString(),
		VehicleID: uuid.NewString(),
		RenterID:  renterID,
		Status:    domain.BookingConfirmed,
	}

	suite.mockBookingRepo.On("FindBookingByRenterAndID", ctx, renterID, booking.BookingID).Return(booking, nil).Once()
	suite.mockBookingRepo.On("UpdateBookingStatusAndAvailability", ctx, booking.BookingID, domain.BookingCancelled, true, renterID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockNotifier.On("BookingCancelled", ctx, mock.AnythingOfType("*domain.Booking")).Return().Once()

	cancelled, err := suite.service.CancelBooking(ctx, renterID, booking.BookingID)

	suite.Require().NoError(err)
	suite.Equal(domain.BookingCancelled, cancelled.Status)
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCancelBooking_TerminalStatusRejected() {
	ctx := context.Background()
	renterID := uuid.NewString()

	for _, status := range []domain.BookingStatus{domain.BookingCompleted, domain.BookingCancelled} {
		booking := &domain.Booking{
			BookingID: uuid.NewString(),
			RenterID:  renterID,
			Status:    status,
		}
		suite.mockBookingRepo.On("FindBookingByRenterAndID", ctx, renterID, booking.BookingID).Return(booking, nil).Once()

		cancelled, err := suite.service.CancelBooking(ctx, renterID, booking.BookingID)

		suite.Require().Error(err)
		suite.Nil(cancelled)
		suite.ErrorIs(err, apperrors.ErrInvalidState)
	}
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "UpdateBookingStatusAndAvailability")
}

func (suite *BookingServiceTestSuite) TestCancelBooking_NotOwnedReadsAsNotFound() {
	ctx := context.Background()
	renterID := uuid.NewString()
	bookingID := uuid.NewString()

	suite.mockBookingRepo.On("FindBookingByRenterAndID", ctx, renterID, bookingID).Return(nil, apperrors.ErrNotFound).Once()

	cancelled, err := suite.service.CancelBooking(ctx, renterID, bookingID)

	suite.Require().Error(err)
	suite.Nil(cancelled)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BookingServiceTestSuite) TestListBookings_PassesToken() {
	ctx := context.Background()
	renterID := uuid.NewString()
	token := "next-page"
	params := dto.ListBookingsParams{Limit: 10, NextToken: &token}
	newToken := "page-after"

	suite.mockBookingRepo.On("ListBookingsByRenter", ctx, renterID, 10, &token).Return([]domain.Booking{{BookingID: uuid.NewString(), RenterID: renterID}}, &newToken, nil).Once()

	resp, err := suite.service.ListBookings(ctx, renterID, params)

	suite.Require().NoError(err)
	suite.Len(resp.Bookings, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(newToken, *resp.NextToken)
}

func TestBookingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}
