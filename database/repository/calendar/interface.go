package calendarRepo

import (
	"errors"

	"churchapp/models"
)

// ErrNotFound is returned when no calendar entry matches the requested id.
var ErrNotFound = errors.New("calendar entry not found")

// CalendarRepository defines data access for church calendar entries.
type CalendarRepository interface {
	Create(entry *models.CalendarEntry) error
	Update(entry *models.CalendarEntry) error
	Delete(id string) error
	GetByID(id string) (*models.CalendarEntry, error)
	ListByMonth(yearMonth string) ([]models.CalendarEntry, error)
}
