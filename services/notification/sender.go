package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// FCMSender implements Sender on top of the Firebase messaging client.
type FCMSender struct {
	Client *messaging.Client
}

// Send delivers one push message. Provider errors that mean the token will
// never succeed again are wrapped with ErrUnregistered for classification.
func (f *FCMSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := f.Client.Send(ctx, msg); err != nil {
		if messaging.IsUnregistered(err) {
			return fmt.Errorf("%w: %v", ErrUnregistered, err)
		}
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
