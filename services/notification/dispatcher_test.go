package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	subscriberRepo "churchapp/database/repository/subscriber"
	"churchapp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriberRepo struct {
	subs          []models.Subscriber
	clearedTokens []string
}

func (f *fakeSubscriberRepo) GetByUUID(uuid string) (*models.Subscriber, error) {
	for i := range f.subs {
		if f.subs[i].UUID == uuid {
			return &f.subs[i], nil
		}
	}
	return nil, subscriberRepo.ErrNotFound
}

func (f *fakeSubscriberRepo) List() ([]models.Subscriber, error) { return f.subs, nil }

func (f *fakeSubscriberRepo) FindDue(pushTime string) ([]models.Subscriber, error) {
	var due []models.Subscriber
	for _, s := range f.subs {
		if s.PushEnabled && s.PushTime == pushTime {
			due = append(due, s)
		}
	}
	return due, nil
}

func (f *fakeSubscriberRepo) Upsert(sub *models.Subscriber) error { return nil }

func (f *fakeSubscriberRepo) ClearToken(uuid string) error {
	f.clearedTokens = append(f.clearedTokens, uuid)
	return nil
}

func (f *fakeSubscriberRepo) Delete(uuid string) error { return nil }

type fakePushLogRepo struct {
	batches [][]models.DeliveryLog
}

func (f *fakePushLogRepo) WriteBatch(logs []models.DeliveryLog) error {
	f.batches = append(f.batches, logs)
	return nil
}

func (f *fakePushLogRepo) ListByDate(date string) ([]models.DeliveryLog, error) { return nil, nil }
func (f *fakePushLogRepo) PurgeBefore(cutoff string) (int64, error)             { return 0, nil }

type fakeSender struct {
	sentTokens []string
	sentData   []map[string]string
	failWith   map[string]error
}

func (f *fakeSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	f.sentTokens = append(f.sentTokens, token)
	f.sentData = append(f.sentData, data)
	if err, ok := f.failWith[token]; ok {
		return err
	}
	return nil
}

func newService(subs []models.Subscriber, sender *fakeSender) (*DefaultNotificationService, *fakeSubscriberRepo, *fakePushLogRepo) {
	subRepo := &fakeSubscriberRepo{subs: subs}
	logRepo := &fakePushLogRepo{}
	svc := &DefaultNotificationService{Subscribers: subRepo, Logs: logRepo, Sender: sender}
	return svc, subRepo, logRepo
}

func TestDispatchAtOneLogPerDueSubscriber(t *testing.T) {
	now := time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC)
	subs := []models.Subscriber{
		{UUID: "dev-1", FCMToken: "tok-1", PushEnabled: true, PushTime: "07:30"},
		{UUID: "dev-2", FCMToken: "tok-2", PushEnabled: true, PushTime: "07:30"},
		{UUID: "dev-3", FCMToken: "tok-3", PushEnabled: true, PushTime: "21:00"},
		{UUID: "dev-4", FCMToken: "tok-4", PushEnabled: false, PushTime: "07:30"},
	}
	sender := &fakeSender{}
	svc, _, logRepo := newService(subs, sender)

	logs, err := svc.DispatchAt(context.Background(), now)
	require.NoError(t, err)

	// Only the two enabled subscribers due at 07:30 get a send and a log.
	require.Len(t, logs, 2)
	assert.Equal(t, []string{"tok-1", "tok-2"}, sender.sentTokens)
	for _, l := range logs {
		assert.Equal(t, "20260310", l.Date)
		assert.Equal(t, models.DeliverySuccess, l.Status)
		assert.Empty(t, l.Error)
	}

	// All outcomes commit as a single batch.
	require.Len(t, logRepo.batches, 1)
	assert.Len(t, logRepo.batches[0], 2)
}

func TestDispatchAtSkipsTokenlessWithoutSending(t *testing.T) {
	now := time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC)
	subs := []models.Subscriber{
		{UUID: "dev-1", FCMToken: "", PushEnabled: true, PushTime: "07:30"},
		{UUID: "dev-2", FCMToken: "tok-2", PushEnabled: true, PushTime: "07:30"},
	}
	sender := &fakeSender{}
	svc, _, _ := newService(subs, sender)

	logs, err := svc.DispatchAt(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, models.DeliverySkippedNoToken, logs[0].Status)
	assert.Equal(t, models.DeliverySuccess, logs[1].Status)
	// The tokenless device never reaches the sender.
	assert.Equal(t, []string{"tok-2"}, sender.sentTokens)
}

func TestDispatchAtClearsUnregisteredTokens(t *testing.T) {
	now := time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC)
	subs := []models.Subscriber{
		{UUID: "dev-stale", FCMToken: "tok-stale", PushEnabled: true, PushTime: "07:30"},
		{UUID: "dev-flaky", FCMToken: "tok-flaky", PushEnabled: true, PushTime: "07:30"},
		{UUID: "dev-ok", FCMToken: "tok-ok", PushEnabled: true, PushTime: "07:30"},
	}
	sender := &fakeSender{failWith: map[string]error{
		"tok-stale": ErrUnregistered,
		"tok-flaky": errors.New("fcm: service unavailable"),
	}}
	svc, subRepo, _ := newService(subs, sender)

	logs, err := svc.DispatchAt(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, logs, 3)

	assert.Equal(t, models.DeliveryFailed, logs[0].Status)
	assert.Equal(t, models.DeliveryFailed, logs[1].Status)
	assert.Equal(t, models.DeliverySuccess, logs[2].Status)
	assert.NotEmpty(t, logs[0].Error)
	assert.NotEmpty(t, logs[1].Error)

	// Only the permanently invalid token gets cleared; transient failures
	// keep their token for the next run.
	assert.Equal(t, []string{"dev-stale"}, subRepo.clearedTokens)
}

func TestDispatchToKnownSubscriber(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 45, 0, 0, time.UTC)
	subs := []models.Subscriber{
		{UUID: "dev-1", FCMToken: "tok-1", PushEnabled: true, PushTime: "07:30"},
	}
	sender := &fakeSender{}
	svc, _, logRepo := newService(subs, sender)

	log, err := svc.DispatchTo(context.Background(), "dev-1", now)
	require.NoError(t, err)

	// Push time does not gate a manual send.
	assert.Equal(t, models.DeliverySuccess, log.Status)
	assert.Equal(t, "dev-1", log.UUID)
	assert.Equal(t, "20260310", log.Date)
	require.Len(t, sender.sentData, 1)
	assert.Equal(t, "true", sender.sentData[0]["isTest"])
	require.Len(t, logRepo.batches, 1)
}

func TestDispatchToUnknownSubscriber(t *testing.T) {
	svc, _, _ := newService(nil, &fakeSender{})

	_, err := svc.DispatchTo(context.Background(), "no-such-device", time.Now())
	assert.ErrorIs(t, err, subscriberRepo.ErrNotFound)
}

func TestDispatchToDisabledSubscriber(t *testing.T) {
	subs := []models.Subscriber{
		{UUID: "dev-1", FCMToken: "tok-1", PushEnabled: false, PushTime: "07:30"},
	}
	sender := &fakeSender{}
	svc, _, logRepo := newService(subs, sender)

	_, err := svc.DispatchTo(context.Background(), "dev-1", time.Now())
	assert.ErrorIs(t, err, ErrPushDisabled)
	assert.Empty(t, sender.sentTokens)
	assert.Empty(t, logRepo.batches)
}
