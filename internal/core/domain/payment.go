package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus indicates the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// paymentTransitions is the single source of truth for permitted payment
// status changes. COMPLETED -> REFUNDED is reserved for privileged callers.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:   {PaymentCompleted, PaymentFailed},
	PaymentCompleted: {PaymentRefunded},
	PaymentFailed:    {},
	PaymentRefunded:  {},
}

// IsValid reports whether the value is a known payment status.
func (s PaymentStatus) IsValid() bool {
	_, ok := paymentTransitions[s]
	return ok
}

// IsTerminal reports whether no further transitions leave this status.
func (s PaymentStatus) IsTerminal() bool {
	next, ok := paymentTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether the transition s -> target is permitted.
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// PaymentMethod is the instrument used to settle a booking.
type PaymentMethod string

const (
	MethodCard         PaymentMethod = "CARD"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodWallet       PaymentMethod = "WALLET"
)

// IsValid reports whether the value is a known payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCard, MethodBankTransfer, MethodWallet:
		return true
	}
	return false
}

// Payment is the settlement record bound 1:1 to a booking. At most one
// payment ever exists per booking; Amount always equals the bound booking's
// amount at creation time.
type Payment struct {
	PaymentID      string          `json:"paymentID"` // Primary Key (UUID)
	BookingID      string          `json:"bookingID"` // Unique FK -> bookings.booking_id
	Amount         decimal.Decimal `json:"amount"`
	Method         PaymentMethod   `json:"method"`
	Status         PaymentStatus   `json:"status"`
	TransactionRef string          `json:"transactionRef"`   // External reference, generated when absent
	PaidAt         *time.Time      `json:"paidAt,omitempty"` // Set when the payment completes
	AuditFields
}
