package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// PaymentStatus mirrors the status enum stored in the payments table.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// Payment represents a row of the payments table.
// BookingID carries a UNIQUE constraint; the database is the final arbiter
// of the one-booking-one-payment invariant.
type Payment struct {
	PaymentID      string          `db:"payment_id"`
	BookingID      string          `db:"booking_id"`
	Amount         decimal.Decimal `db:"amount"`
	Method         string          `db:"method"`
	Status         PaymentStatus   `db:"status"`
	TransactionRef string          `db:"transaction_ref"`
	PaidAt         sql.NullTime    `db:"paid_at"`
	AuditFields
}
