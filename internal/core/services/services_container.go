package services

import (
	portsrepo "github.com/movira/vehicle_rental_app/internal/core/ports/repositories"
	portssvc "github.com/movira/vehicle_rental_app/internal/core/ports/services"
	"github.com/movira/vehicle_rental_app/pkg/config"
)

// NewServiceContainer wires up all application services from the repository
// provider and configuration.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	notifier := NewWebhookNotifier(cfg.NotificationWebhookURL)
	userSvc := NewUserService(repos.UserRepo)

	return &portssvc.ServiceContainer{
		User:         userSvc,
		Vehicle:      NewVehicleService(repos.VehicleRepo),
		Booking:      NewBookingService(repos.BookingRepo, repos.VehicleRepo, notifier),
		Payment:      NewPaymentService(repos.PaymentRepo, repos.BookingRepo, notifier),
		TokenService: NewTokenService(cfg, userSvc),
		Notifier:     notifier,
	}
}
