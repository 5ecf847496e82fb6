package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/movira/vehicle_rental_app/internal/apperrors"
	"github.com/movira/vehicle_rental_app/internal/core/domain"
	portsrepo "github.com/movira/vehicle_rental_app/internal/core/ports/repositories"
	"github.com/movira/vehicle_rental_app/internal/middleware"
	"github.com/movira/vehicle_rental_app/internal/models"
	"github.com/movira/vehicle_rental_app/internal/utils/mapping"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, booking_id, amount, method, status, transaction_ref, paid_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.BookingID,
		&m.Amount,
		&m.Method,
		&m.Status,
		&m.TransactionRef,
		&m.PaidAt,
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

// SavePaymentAndConfirmBooking persists the payment and cascades the bound
// booking PENDING -> CONFIRMED in one transaction. The UNIQUE constraint on
// booking_id backs the one-payment-per-booking rule. A second payment for the
// same booking hits the constraint, the transaction rolls back, and the caller
// gets ErrConflict with no partial effect.
func (r *PgxPaymentRepository) SavePaymentAndConfirmBooking(ctx context.Context, payment domain.Payment) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	m := mapping.ToModelPayment(payment)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			logger.Error("failed to rollback payment transaction", "error", rbErr)
		}
	}()

	insertQuery := `
		INSERT INTO payments (payment_id, booking_id, amount, method, status, transaction_ref, paid_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.PaymentID,
		m.BookingID,
		m.Amount,
		m.Method,
		m.Status,
		m.TransactionRef,
		m.PaidAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: booking %s already has a payment", apperrors.ErrConflict, m.BookingID)
		}
		return apperrors.NewAppError(500, "failed to insert payment "+m.PaymentID, err)
	}

	if err := r.confirmBookingInTx(ctx, tx, m.BookingID, m.CreatedBy, m.CreatedAt); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("payment saved", "paymentID", m.PaymentID, "bookingID", m.BookingID)
	return nil
}

// UpdatePaymentStatus updates the payment's status and paidAt. When
// confirmBooking is set the bound booking is cascaded to CONFIRMED in the
// same transaction.
func (r *PgxPaymentRepository) UpdatePaymentStatus(ctx context.Context, payment domain.Payment, confirmBooking bool) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	m := mapping.ToModelPayment(payment)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			logger.Error("failed to rollback payment status transaction", "error", rbErr)
		}
	}()

	updateQuery := `
		UPDATE payments
		SET status = $2,
		    paid_at = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE payment_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery, m.PaymentID, m.Status, m.PaidAt, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for payment "+m.PaymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("payment " + m.PaymentID + " not found for status update")
	}

	if confirmBooking {
		if err := r.confirmBookingInTx(ctx, tx, m.BookingID, m.LastUpdatedBy, m.LastUpdatedAt); err != nil {
			return err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("payment status updated", "paymentID", m.PaymentID, "status", m.Status)
	return nil
}

// confirmBookingInTx cascades the booking to CONFIRMED. The PENDING guard
// makes the cascade a no-op for bookings that were already confirmed.
func (r *PgxPaymentRepository) confirmBookingInTx(ctx context.Context, tx pgx.Tx, bookingID, updatedByUserID string, updatedAt time.Time) error {
	cascadeQuery := `
		UPDATE bookings
		SET status = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE booking_id = $1
		  AND status = $5;
	`
	_, err := tx.Exec(ctx, cascadeQuery, bookingID, domain.BookingConfirmed, updatedAt, updatedByUserID, domain.BookingPending)
	if err != nil {
		return apperrors.NewAppError(500, "failed to confirm booking "+bookingID, err)
	}
	return nil
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`

	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment by ID "+paymentID, err)
	}

	p := mapping.ToDomainPayment(*m)
	return &p, nil
}

// FindPaymentByBookingID retrieves the payment bound to a booking.
func (r *PgxPaymentRepository) FindPaymentByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1;`

	m, err := scanPayment(r.Pool.QueryRow(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment for booking "+bookingID, err)
	}

	p := mapping.ToDomainPayment(*m)
	return &p, nil
}
