package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	pushlogRepo "churchapp/database/repository/pushlog"
	subscriberRepo "churchapp/database/repository/subscriber"
	"churchapp/models"

	"go.uber.org/zap"
)

// Push content for the scheduled daily reminder.
const (
	pushTitle = "Today's Word"
	pushBody  = "Today's sermon and notices are ready. Take a moment to read them."
	pushRoute = "/daily"
)

// DateKeyFormat is the delivery-log partition key layout (sorts in date order).
const DateKeyFormat = "20060102"

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Subscribers subscriberRepo.SubscriberRepository
	Logs        pushlogRepo.PushLogRepository
	Sender      Sender
}

// DispatchAt queries every subscriber due at now ("HH:mm"), attempts one send
// per recipient sequentially, then commits all outcome records as one batch.
func (s *DefaultNotificationService) DispatchAt(ctx context.Context, now time.Time) ([]models.DeliveryLog, error) {
	hhmm := now.Format("15:04")
	subs, err := s.Subscribers.FindDue(hhmm)
	if err != nil {
		return nil, fmt.Errorf("DispatchAt: failed to query due subscribers: %w", err)
	}

	logger := zap.L().Sugar()
	logger.Infof("DispatchAt: %d subscriber(s) due at %s", len(subs), hhmm)

	logs := make([]models.DeliveryLog, 0, len(subs))
	for i := range subs {
		logs = append(logs, s.sendOne(ctx, &subs[i], now, false))
	}

	if err := s.Logs.WriteBatch(logs); err != nil {
		return logs, fmt.Errorf("DispatchAt: failed to write delivery logs: %w", err)
	}
	return logs, nil
}

// DispatchTo sends the push to one explicit subscriber and records its log.
// It returns ErrPushDisabled when the subscriber has push turned off.
func (s *DefaultNotificationService) DispatchTo(ctx context.Context, uuid string, now time.Time) (*models.DeliveryLog, error) {
	sub, err := s.Subscribers.GetByUUID(uuid)
	if err != nil {
		return nil, err
	}
	if !sub.PushEnabled {
		return nil, ErrPushDisabled
	}

	outcome := s.sendOne(ctx, sub, now, true)
	if err := s.Logs.WriteBatch([]models.DeliveryLog{outcome}); err != nil {
		return &outcome, fmt.Errorf("DispatchTo: failed to write delivery log: %w", err)
	}
	return &outcome, nil
}

// sendOne attempts one delivery and classifies the outcome. A failure whose
// token is permanently invalid additionally clears the subscriber's token so
// later runs skip it instead of failing again.
func (s *DefaultNotificationService) sendOne(ctx context.Context, sub *models.Subscriber, now time.Time, isTest bool) models.DeliveryLog {
	logger := zap.L().Sugar()
	outcome := models.DeliveryLog{
		Date:     now.Format(DateKeyFormat),
		UUID:     sub.UUID,
		TimeSent: now,
	}

	if sub.FCMToken == "" {
		outcome.Status = models.DeliverySkippedNoToken
		logger.Infof("sendOne: subscriber %s has no token, skipping", sub.UUID)
		return outcome
	}

	data := map[string]string{"route": pushRoute}
	if isTest {
		data["isTest"] = "true"
	}

	if err := s.Sender.Send(ctx, sub.FCMToken, pushTitle, pushBody, data); err != nil {
		outcome.Status = models.DeliveryFailed
		outcome.Error = err.Error()
		if errors.Is(err, ErrUnregistered) {
			if clearErr := s.Subscribers.ClearToken(sub.UUID); clearErr != nil {
				logger.Errorf("sendOne: failed to clear invalid token for %s: %v", sub.UUID, clearErr)
			} else {
				logger.Infof("sendOne: cleared invalid token for %s", sub.UUID)
			}
		}
		return outcome
	}

	outcome.Status = models.DeliverySuccess
	return outcome
}
