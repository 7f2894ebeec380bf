package notification

import (
	"context"
	"errors"
	"time"

	"churchapp/models"
)

// NotificationService defines methods for dispatching scheduled and manual
// FCM pushes.
type NotificationService interface {
	// DispatchAt sends the scheduled push to every subscriber whose push time
	// matches the "HH:mm" of now, and records one delivery log per recipient.
	DispatchAt(ctx context.Context, now time.Time) ([]models.DeliveryLog, error)
	// DispatchTo runs the identical per-recipient logic against a single
	// explicit subscriber, for manual testing.
	DispatchTo(ctx context.Context, uuid string, now time.Time) (*models.DeliveryLog, error)
}

// Sender sends a single push message. The production implementation wraps the
// FCM messaging client; tests substitute a fake.
type Sender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

var (
	// ErrUnregistered marks a delivery failure whose token is permanently
	// invalid. The dispatcher reacts by clearing the subscriber's token.
	ErrUnregistered = errors.New("fcm token unregistered")
	// ErrPushDisabled is returned by DispatchTo when the subscriber exists but
	// has push turned off.
	ErrPushDisabled = errors.New("push not enabled for subscriber")
)
