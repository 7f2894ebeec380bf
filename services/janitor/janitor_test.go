package janitor

import (
	"errors"
	"sort"
	"testing"
	"time"

	"churchapp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePushLogRepo struct {
	dates   []string
	failErr error
}

func (f *fakePushLogRepo) WriteBatch(logs []models.DeliveryLog) error { return nil }

func (f *fakePushLogRepo) ListByDate(date string) ([]models.DeliveryLog, error) { return nil, nil }

func (f *fakePushLogRepo) PurgeBefore(cutoff string) (int64, error) {
	if f.failErr != nil {
		return 0, f.failErr
	}
	var kept []string
	var deleted int64
	for _, d := range f.dates {
		if d < cutoff {
			deleted++
			continue
		}
		kept = append(kept, d)
	}
	f.dates = kept
	return deleted, nil
}

func TestCutoff(t *testing.T) {
	tests := []struct {
		name      string
		retention int
		now       time.Time
		want      string
	}{
		{
			name:      "default retention when unset",
			retention: 0,
			now:       time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC),
			want:      "20260303",
		},
		{
			name:      "explicit retention",
			retention: 30,
			now:       time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC),
			want:      "20260208",
		},
		{
			name:      "crosses a month boundary",
			retention: 7,
			now:       time.Date(2026, 1, 3, 3, 0, 0, 0, time.UTC),
			want:      "20251227",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &DefaultJanitorService{Logs: &fakePushLogRepo{}, RetentionDays: tt.retention}
			assert.Equal(t, tt.want, svc.Cutoff(tt.now))
		})
	}
}

func TestPurgeDeletesOnlyExpiredDates(t *testing.T) {
	repo := &fakePushLogRepo{dates: []string{
		"20260225", "20260301", "20260302", "20260303", "20260309",
	}}
	svc := &DefaultJanitorService{Logs: repo, RetentionDays: 7}
	now := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)

	deleted, err := svc.Purge(now)
	require.NoError(t, err)

	// Cutoff is 20260303; the strictly older partitions go, the cutoff day
	// itself stays.
	assert.Equal(t, int64(3), deleted)
	sort.Strings(repo.dates)
	assert.Equal(t, []string{"20260303", "20260309"}, repo.dates)
}

func TestPurgeWrapsRepositoryError(t *testing.T) {
	repo := &fakePushLogRepo{failErr: errors.New("connection reset")}
	svc := &DefaultJanitorService{Logs: repo, RetentionDays: 7}

	_, err := svc.Purge(time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "janitor")
}
