package services_test

import (
	"context"
	"strings"
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

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockBookingRepo *MockBookingRepository
	mockNotifier    *MockNotifier
	service         portssvc.PaymentSvcFacade
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewPaymentService(suite.mockPaymentRepo, suite.mockBookingRepo, suite.mockNotifier)
}

func pendingBooking(renterID string) *domain.Booking {
	return &domain.Booking{
		BookingID: uuid.NewString(),
		VehicleID: uuid.NewString(),
		RenterID:  renterID,
		Amount:    decimal.NewFromInt(200),
		Status:    domain.BookingPending,
	}
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_Success() {
	ctx := context.Background()
	renterID := uuid.NewString()
	booking := pendingBooking(renterID)
	req := dto.CreatePaymentRequest{BookingID: booking.BookingID, Method: "CARD"}

	suite.mockBookingRepo.On("FindBookingByRenterAndID", ctx, renterID, booking.BookingID).Return(booking, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByBookingID", ctx, booking.BookingID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPaymentRepo.On("SavePaymentAndConfirmBooking", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.BookingID == booking.BookingID &&
			p.Amount.Equal(booking.Amount) &&
			p.Status == domain.PaymentCompleted &&
			p.PaidAt != nil &&
			strings.HasPrefix(p.TransactionRef, "TXN-")
	})).Return(nil).Once()
	suite.mockNotifier.On("PaymentCompleted", ctx, mock.AnythingOfType("*domain.Payment")).Return().Once()

	payment, err := suite.service.CreatePayment(ctx, renterID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal(domain.PaymentCompleted, payment.Status)
	suite.True(payment.Amount.Equal(booking.Amount))
	suite.NotNil(payment.PaidAt)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_KeepsProvidedTransactionRef() {
	ctx := context.Background()
	renterID := uuid.NewString()
	booking := pendingBooking(renterID)
	req := dto.CreatePaymentRequest{BookingID: booking.BookingID, Method: "WALLET", TransactionRef: "EXT-REF-42"}

	suite.mockBookingRepo.On("FindBookingByRenterAndID", ctx, renterID, booking.BookingID).Return(booking, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByBookingID", ctx, booking.BookingID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPaymentRepo.On("SavePaymentAndConfirmBooking", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.TransactionRef == "EXT-REF-42"
	})).Return(nil).Once()
	suite.mockNotifier.On("PaymentCompleted", ctx, mock.AnythingOfType("*domain.Payment")).Return().Once()

	payment, err := suite.service.CreatePayment(ctx, renterID, req)

	suite.Require().NoError(err)
	suite.Equal("EXT-REF-42", payment.TransactionRef)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_SecondAttemptConflicts() {
	ctx := context.Background()
	renterID := uuid.NewString()
	booking := pendingBooking(renterID)
	booking.Status = domain.BookingConfirmed
	req := dto.CreatePaymentRequest{BookingID: booking.BookingID, Method: "CARD"}

	existing := &domain.Payment{
		PaymentID: uuid.NewString(),
		BookingID: booking.BookingID,
		Status:    domain.PaymentCompleted,
	}

	suite.mockBookingRepo.On("FindBookingByRenterAndID", ctx, renterID, booking.BookingID).Return(booking, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByBookingID", ctx, booking.BookingID).Return(existing, nil).Once()

	payment, err := suite.service.CreatePayment(ctx, renterID, req)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePaymentAndConfirmBooking")
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_RaceLoserGetsConflict() {
	ctx := context.Background()
	renterID := uuid.NewString()
	booking := pendingBooking(renterID)
	req := dto.CreatePaymentRequest{BookingID: booking.BookingID, Method: "CARD"}

	// Pre-check sees nothing, but the UNIQUE constraint catches the race.
	suite.mockBookingRepo.On("FindBookingByRenterAndID", ctx, renterID, booking.BookingID).Return(booking, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByBookingID", ctx, booking.BookingID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPaymentRepo.On("SavePaymentAndConfirmBooking", ctx, mock.AnythingOfType("domain.Payment")).Return(apperrors.ErrConflict).Once()

	payment, err := suite.service.CreatePayment(ctx, renterID, req)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockNotifier.AssertNotCalled(suite.T(), "PaymentCompleted")
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_CancelledBookingRejected() {
	ctx := context.Background()
	renterID := uuid.NewString()
	booking := pendingBooking(renterID)
	booking.Status = domain.BookingCancelled
	req := dto.CreatePaymentRequest{BookingID: booking.BookingID, Method: "CARD"}

	suite.mockBookingRepo.On("FindBookingByRenterAndID", ctx, renterID, booking.BookingID).Return(booking, nil).Once()

	payment, err := suite.service.CreatePayment(ctx, renterID, req)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "FindPaymentByBookingID")
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_ForeignBookingReadsAsNotFound() {
	ctx := context.Background()
	renterID := uuid.NewString()
	bookingID := uuid.NewString()
	req := dto.CreatePaymentRequest{BookingID: bookingID, Method: "CARD"}

	suite.mockBookingRepo.On("FindBookingByRenterAndID", ctx, renterID, bookingID).Return(nil, apperrors.ErrNotFound).Once()

	payment, err := suite.service.CreatePayment(ctx, renterID, req)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_UnknownMethodRejected() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{BookingID: uuid.NewString(), Method: "CRYPTO"}

	payment, err := suite.service.CreatePayment(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "FindBookingByRenterAndID")
}

func (suite *PaymentServiceTestSuite) TestUpdatePaymentStatus_CompletedToRefunded() {
	ctx := context.Background()
	paidAt := time.Now().Add(-time.Hour)
	payment := &domain.Payment{
		PaymentID: uuid.NewString(),
		BookingID: uuid.NewString(),
		Status:    domain.PaymentCompleted,
		PaidAt:    &paidAt,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("UpdatePaymentStatus", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Status == domain.PaymentRefunded
	}), false).Return(nil).Once()

	updated, err := suite.service.UpdatePaymentStatus(ctx, payment.PaymentID, "REFUNDED")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentRefunded, updated.Status)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestUpdatePaymentStatus_PendingToCompletedSetsPaidAtAndConfirms() {
	ctx := context.Background()
	payment := &domain.Payment{
		PaymentID: uuid.NewString(),
		BookingID: uuid.NewString(),
		Status:    domain.PaymentPending,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("UpdatePaymentStatus", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Status == domain.PaymentCompleted && p.PaidAt != nil
	}), true).Return(nil).Once()

	updated, err := suite.service.UpdatePaymentStatus(ctx, payment.PaymentID, "COMPLETED")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentCompleted, updated.Status)
	suite.NotNil(updated.PaidAt)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestUpdatePaymentStatus_IllegalTransitionRejected() {
	ctx := context.Background()
	payment := &domain.Payment{
		PaymentID: uuid.NewString(),
		Status:    domain.PaymentFailed,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

	updated, err := suite.service.UpdatePaymentStatus(ctx, payment.PaymentID, "COMPLETED")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UpdatePaymentStatus")
}

func (suite *PaymentServiceTestSuite) TestUpdatePaymentStatus_UnknownStatusRejected() {
	ctx := context.Background()

	updated, err := suite.service.UpdatePaymentStatus(ctx, uuid.NewString(), "SETTLED")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "FindPaymentByID")
}

func (suite *PaymentServiceTestSuite) TestGetPaymentByBookingID_ChecksOwnership() {
	ctx := context.Background()
	renterID := uuid.NewString()
	bookingID := uuid.NewString()

	suite.mockBookingRepo.On("FindBookingByRenterAndID", ctx, renterID, bookingID).Return(nil, apperrors.ErrNotFound).Once()

	payment, err := suite.service.GetPaymentByBookingID(ctx, renterID, bookingID)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "FindPaymentByBookingID")
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
