package janitor

import (
	"fmt"
	"time"

	pushlogRepo "churchapp/database/repository/pushlog"

	"go.uber.org/zap"
)

// DateKeyFormat matches the delivery-log partition key layout.
const DateKeyFormat = "20060102"

// JanitorService deletes delivery logs older than the retention window.
type JanitorService interface {
	Purge(now time.Time) (int64, error)
}

// DefaultJanitorService is the production implementation.
type DefaultJanitorService struct {
	Logs          pushlogRepo.PushLogRepository
	RetentionDays int
}

// Cutoff returns the first date key still retained: now minus the retention
// window, formatted yyyyMMdd. Everything strictly before it is purged.
func (s *DefaultJanitorService) Cutoff(now time.Time) string {
	days := s.RetentionDays
	if days <= 0 {
		days = 7
	}
	return now.AddDate(0, 0, -days).Format(DateKeyFormat)
}

// Purge deletes every delivery log dated before the cutoff in one batch.
func (s *DefaultJanitorService) Purge(now time.Time) (int64, error) {
	cutoff := s.Cutoff(now)
	deleted, err := s.Logs.PurgeBefore(cutoff)
	if err != nil {
		return 0, fmt.Errorf("janitor: %w", err)
	}
	zap.L().Sugar().Infof("janitor: purged %d delivery log(s) before %s", deleted, cutoff)
	return deleted, nil
}
