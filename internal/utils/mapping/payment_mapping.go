package mapping

import (
	"database/sql"
	"time"

	"github.com/movira/vehicle_rental_app/internal/core/domain"
	"github.com/movira/vehicle_rental_app/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	var paidAt sql.NullTime
	if d.PaidAt != nil {
		paidAt = sql.NullTime{Time: *d.PaidAt, Valid: true}
	}
	return models.Payment{
		PaymentID:      d.PaymentID,
		BookingID:      d.BookingID,
		Amount:         d.Amount,
		Method:         string(d.Method),
		Status:         models.PaymentStatus(d.Status),
		TransactionRef: d.TransactionRef,
		PaidAt:         paidAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	var paidAt *time.Time
	if m.PaidAt.Valid {
		t := m.PaidAt.Time
		paidAt = &t
	}
	return domain.Payment{
		PaymentID:      m.PaymentID,
		BookingID:      m.BookingID,
		Amount:         m.Amount,
		Method:         domain.PaymentMethod(m.Method),
		Status:         domain.PaymentStatus(m.Status),
		TransactionRef: m.TransactionRef,
		PaidAt:         paidAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
