package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/movira/vehicle_rental_app/internal/core/domain"
	portssvc "github.com/movira/vehicle_rental_app/internal/core/ports/services"
)

// webhookNotifier delivers state-change events to a configured webhook URL.
// Delivery is fire-and-forget: each event is posted from its own goroutine
// and failures are logged, never propagated to the originating operation.
type webhookNotifier struct {
	BaseService
	webhookURL string
	client     *http.Client
}

// NewWebhookNotifier creates a notifier posting to webhookURL. An empty URL
// yields a notifier that silently drops all events.
func NewWebhookNotifier(webhookURL string) portssvc.Notifier {
	return &webhookNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

var _ portssvc.Notifier = (*webhookNotifier)(nil)

type webhookEvent struct {
	Event     string      `json:"event"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func (n *webhookNotifier) BookingCreated(ctx context.Context, booking *domain.Booking) {
	n.dispatch(ctx, "booking.created", booking)
}

func (n *webhookNotifier) BookingCancelled(ctx context.Context, booking *domain.Booking) {
	n.dispatch(ctx, "booking.cancelled", booking)
}

func (n *webhookNotifier) PaymentCompleted(ctx context.Context, payment *domain.Payment) {
	n.dispatch(ctx, "payment.completed", payment)
}

func (n *webhookNotifier) dispatch(ctx context.Context, event string, data interface{}) {
	if n.webhookURL == "" {
		return
	}
	logger := n.GetLogger(ctx)

	payload := webhookEvent{
		Event:     event,
		Timestamp: time.Now(),
		Data:      data,
	}

	go func() {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			logger.Error("failed to marshal webhook payload", "event", event, "error", err.Error())
			return
		}

		req, err := http.NewRequest(http.MethodPost, n.webhookURL, bytes.NewBuffer(jsonData))
		if err != nil {
			logger.Error("failed to build webhook request", "event", event, "error", err.Error())
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "VehicleRental-Webhook/1.0")

		resp, err := n.client.Do(req)
		if err != nil {
			logger.Warn("webhook delivery failed", "event", event, "error", err.Error())
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			logger.Warn("webhook endpoint returned error", "event", event, "status", resp.StatusCode)
		}
	}()
}
