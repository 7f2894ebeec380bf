package pushlogRepo

import "churchapp/models"

// PushLogRepository defines data access for per-recipient delivery logs,
// partitioned by yyyyMMdd date key.
type PushLogRepository interface {
	WriteBatch(logs []models.DeliveryLog) error
	ListByDate(date string) ([]models.DeliveryLog, error)
	PurgeBefore(cutoff string) (int64, error)
}
