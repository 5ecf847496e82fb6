package services

import (
	"context"

	"github.com/movira/vehicle_rental_app/internal/core/domain"
)

// Notifier delivers best-effort signals about state changes in the core.
// Implementations must never block the caller or fail the originating
// operation; delivery is fire-and-forget.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *domain.Booking)
	BookingCancelled(ctx context.Context, booking *domain.Booking)
	PaymentCompleted(ctx context.Context, payment *domain.Payment)
}
