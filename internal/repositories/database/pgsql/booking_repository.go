package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/movira/vehicle_rental_app/internal/apperrors"
	"github.com/movira/vehicle_rental_app/internal/core/domain"
	portsrepo "github.com/movira/vehicle_rental_app/internal/core/ports/repositories"
	"github.com/movira/vehicle_rental_app/internal/middleware"
	"github.com/movira/vehicle_rental_app/internal/models"
	"github.com/movira/vehicle_rental_app/internal/utils/mapping"
	"github.com/movira/vehicle_rental_app/internal/utils/pagination"
)

type PgxBookingRepository struct {
	BaseRepository
	vehicleRepo portsrepo.VehicleLocker
}

// newPgxBookingRepository creates a new repository for booking data.
func newPgxBookingRepository(pool *pgxpool.Pool, vehicleRepo portsrepo.VehicleLocker) portsrepo.BookingRepositoryWithTx {
	return &PgxBookingRepository{
		BaseRepository: BaseRepository{Pool: pool},
		vehicleRepo:    vehicleRepo,
	}
}

// Ensure PgxBookingRepository implements portsrepo.BookingRepositoryWithTx
var _ portsrepo.BookingRepositoryWithTx = (*PgxBookingRepository)(nil)

const bookingColumns = `booking_id, vehicle_id, renter_id, start_date, end_date, pickup_location, return_location,
	amount, status, created_at, created_by, last_updated_at, last_updated_by`

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var m models.Booking
	err := row.Scan(
		&m.BookingID,
		&m.VehicleID,
		&m.RenterID,
		&m.StartDate,
		&m.EndDate,
		&m.PickupLocation,
		&m.ReturnLocation,
		&m.Amount,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveBooking persists a new booking and flips the vehicle to RESERVED as one
// atomic unit. It locks the vehicle row first, then re-runs the availability
// and overlap checks under the lock, so concurrent attempts on the same
// vehicle serialize. The losing call sees the winner's committed booking and
// returns ErrConflict without any partial write.
func (r *PgxBookingRepository) SaveBooking(ctx context.Context, booking domain.Booking) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	m := mapping.ToModelBooking(booking)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			logger.Error("failed to rollback booking transaction", "error", rbErr)
		}
	}()

	vehicle, err := r.vehicleRepo.FindVehicleByIDForUpdate(ctx, tx, m.VehicleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("vehicle " + m.VehicleID + " not found")
		}
		return err
	}

	if vehicle.Availability != domain.Available {
		return fmt.Errorf("%w: vehicle %s is not available for booking", apperrors.ErrConflict, m.VehicleID)
	}

	overlapQuery := `
		SELECT COUNT(*)
		FROM bookings
		WHERE vehicle_id = $1
		  AND status = ANY($2)
		  AND start_date <= $3
		  AND end_date >= $4;
	`
	activeStatuses := []string{
		string(domain.BookingPending),
		string(domain.BookingConfirmed),
		string(domain.BookingActive),
	}
	var overlapCount int
	err = tx.QueryRow(ctx, overlapQuery, m.VehicleID, activeStatuses, m.EndDate, m.StartDate).Scan(&overlapCount)
	if err != nil {
		return apperrors.NewAppError(500, "failed to check overlapping bookings for vehicle "+m.VehicleID, err)
	}
	if overlapCount > 0 {
		return fmt.Errorf("%w: vehicle %s already booked for the requested dates", apperrors.ErrConflict, m.VehicleID)
	}

	insertQuery := `
		INSERT INTO bookings (booking_id, vehicle_id, renter_id, start_date, end_date, pickup_location, return_location, amount, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.BookingID,
		m.VehicleID,
		m.RenterID,
		m.StartDate,
		m.EndDate,
		m.PickupLocation,
		m.ReturnLocation,
		m.Amount,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert booking "+m.BookingID, err)
	}

	err = r.vehicleRepo.UpdateVehicleAvailabilityInTx(ctx, tx, m.VehicleID, domain.Reserved, m.CreatedBy, m.CreatedAt)
	if err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("booking saved", "bookingID", m.BookingID, "vehicleID", m.VehicleID)
	return nil
}

// FindBookingByID retrieves a booking by its ID.
func (r *PgxBookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1;`

	m, err := scanBooking(r.Pool.QueryRow(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find booking by ID "+bookingID, err)
	}

	b := mapping.ToDomainBooking(*m)
	return &b, nil
}

// FindBookingByRenterAndID retrieves a booking scoped to the renter who made it.
func (r *PgxBookingRepository) FindBookingByRenterAndID(ctx context.Context, renterID, bookingID string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1 AND renter_id = $2;`

	m, err := scanBooking(r.Pool.QueryRow(ctx, query, bookingID, renterID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find booking "+bookingID+" for renter "+renterID, err)
	}

	b := mapping.ToDomainBooking(*m)
	return &b, nil
}

// FindOverlappingBookings retrieves bookings for a vehicle whose closed date
// interval overlaps [start, end]. Touching endpoints count as overlap.
func (r *PgxBookingRepository) FindOverlappingBookings(ctx context.Context, vehicleID string, start, end time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE vehicle_id = $1
		  AND status = ANY($2)
		  AND start_date <= $3
		  AND end_date >= $4
		ORDER BY start_date ASC;
	`
	statusStrings := make([]string, 0, len(statuses))
	for _, s := range statuses {
		statusStrings = append(statusStrings, string(s))
	}

	rows, err := r.Pool.Query(ctx, query, vehicleID, statusStrings, end, start)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query overlapping bookings for vehicle "+vehicleID, err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		m, scanErr := scanBooking(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan booking row for vehicle "+vehicleID, scanErr)
		}
		bookings = append(bookings, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating booking rows for vehicle "+vehicleID, err)
	}

	return mapping.ToDomainBookingSlice(bookings), nil
}

// ListBookingsByRenter retrieves a paginated list of the renter's bookings.
// Ordering is by created_at DESC.
func (r *PgxBookingRepository) ListBookingsByRenter(ctx context.Context, renterID string, limit int, nextToken *string) ([]domain.Booking, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + bookingColumns + ` FROM bookings WHERE renter_id = $1`
	orderByClause := `ORDER BY created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{renterID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		query := baseQuery + " AND created_at < $2 " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query bookings for renter "+renterID, err)
	}
	defer rows.Close()

	modelBookings := make([]models.Booking, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanBooking(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan booking row", scanErr)
		}
		modelBookings = append(modelBookings, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating booking rows", err)
	}

	var nextTokenVal *string
	results := modelBookings
	if len(modelBookings) > limit {
		lastBooking := modelBookings[limit-1]
		newToken := pagination.EncodeDateBasedToken(lastBooking.CreatedAt)
		nextTokenVal = &newToken
		results = modelBookings[:limit]
	}

	return mapping.ToDomainBookingSlice(results), nextTokenVal, nil
}

// UpdateBookingStatusAndAvailability transitions a booking's status and, when
// revertAvailability is set, flips the vehicle back to AVAILABLE in the same
// transaction.
func (r *PgxBookingRepository) UpdateBookingStatusAndAvailability(ctx context.Context, bookingID string, status domain.BookingStatus, revertAvailability bool, updatedByUserID string, updatedAt time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			logger.Error("failed to rollback booking status transaction", "error", rbErr)
		}
	}()

	updateQuery := `
		UPDATE bookings
		SET status = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE booking_id = $1
		RETURNING vehicle_id;
	`
	var vehicleID string
	err = tx.QueryRow(ctx, updateQuery, bookingID, status, updatedAt, updatedByUserID).Scan(&vehicleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("booking " + bookingID + " not found for status update")
		}
		return apperrors.NewAppError(500, "failed to update status for booking "+bookingID, err)
	}

	if revertAvailability {
		err = r.vehicleRepo.UpdateVehicleAvailabilityInTx(ctx, tx, vehicleID, domain.Available, updatedByUserID, updatedAt)
		if err != nil {
			return err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("booking status updated", "bookingID", bookingID, "status", status)
	return nil
}
