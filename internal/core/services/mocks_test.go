package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/movira/vehicle_rental_app/internal/core/domain"
)

// --- Mock VehicleRepository ---

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) FindVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListVehicles(ctx context.Context, limit int, nextToken *string, onlyAvailable bool) ([]domain.Vehicle, *string, error) {
	args := m.Called(ctx, limit, nextToken, onlyAvailable)
	var vehicles []domain.Vehicle
	if args.Get(0) != nil {
		vehicles = args.Get(0).([]domain.Vehicle)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return vehicles, token, args.Error(2)
}

func (m *MockVehicleRepository) ListVehiclesByOwner(ctx context.Context, ownerID string) ([]domain.Vehicle, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) UpdateVehicleAvailability(ctx context.Context, vehicleID string, availability domain.VehicleAvailability, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, vehicleID, availability, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockVehicleRepository) FindVehicleByIDForUpdate(ctx context.Context, tx pgx.Tx, vehicleID string) (*domain.Vehicle, error) {
	args := m.Called(ctx, tx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) UpdateVehicleAvailabilityInTx(ctx context.Context, tx pgx.Tx, vehicleID string, availability domain.VehicleAvailability, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, vehicleID, availability, updatedByUserID, updatedAt)
	return args.Error(0)
}

// --- Mock BookingRepository ---

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindBookingByRenterAndID(ctx context.Context, renterID, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, renterID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindOverlappingBookings(ctx context.Context, vehicleID string, start, end time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	args := m.Called(ctx, vehicleID, start, end, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListBookingsByRenter(ctx context.Context, renterID string, limit int, nextToken *string) ([]domain.Booking, *string, error) {
	args := m.Called(ctx, renterID, limit, nextToken)
	var bookings []domain.Booking
	if args.Get(0) != nil {
		bookings = args.Get(0).([]domain.Booking)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return bookings, token, args.Error(2)
}

func (m *MockBookingRepository) SaveBooking(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateBookingStatusAndAvailability(ctx context.Context, bookingID string, status domain.BookingStatus, revertAvailability bool, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, bookingID, status, revertAvailability, updatedByUserID, updatedAt)
	return args.Error(0)
}

// --- Mock PaymentRepository ---

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SavePaymentAndConfirmBooking(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePaymentStatus(ctx context.Context, payment domain.Payment, confirmBooking bool) error {
	args := m.Called(ctx, payment, confirmBooking)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshTokenDetails(ctx context.Context, userID string, refreshTokenHash *string, refreshTokenExpiryTime *time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock Notifier ---

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingCreated(ctx context.Context, booking *domain.Booking) {
	m.Called(ctx, booking)
}

func (m *MockNotifier) BookingCancelled(ctx context.Context, booking *domain.Booking) {
	m.Called(ctx, booking)
}

func (m *MockNotifier) PaymentCompleted(ctx context.Context, payment *domain.Payment) {
	m.Called(ctx, payment)
}
