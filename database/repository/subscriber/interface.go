package subscriberRepo

import (
	"errors"

	"churchapp/models"
)

// ErrNotFound is returned when no subscriber matches the requested uuid.
var ErrNotFound = errors.New("subscriber not found")

// SubscriberRepository defines data access for per-device push settings.
type SubscriberRepository interface {
	GetByUUID(uuid string) (*models.Subscriber, error)
	List() ([]models.Subscriber, error)
	FindDue(pushTime string) ([]models.Subscriber, error)
	Upsert(sub *models.Subscriber) error
	ClearToken(uuid string) error
	Delete(uuid string) error
}
