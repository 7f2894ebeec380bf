package views

import (
	"context"
	"fmt"

	contentRepo "churchapp/database/repository/content"
	"churchapp/models"

	"github.com/google/uuid"
)

// ViewService records view markers and keeps parent view counters in sync.
type ViewService interface {
	RecordView(kind, contentID, viewer string) (*models.ViewMarker, error)
	Sync(ctx context.Context, kind, contentID string) error
}

// DefaultViewService is the production implementation.
type DefaultViewService struct {
	Repo contentRepo.ContentRepository
}

// RecordView appends a view-marker document for the given content item.
// The counter is not touched here; a sync task does that afterwards.
func (s *DefaultViewService) RecordView(kind, contentID, viewer string) (*models.ViewMarker, error) {
	if !models.ValidKind(kind) {
		return nil, fmt.Errorf("RecordView: unknown content kind %q", kind)
	}
	marker := &models.ViewMarker{
		ID:        uuid.NewString(),
		Kind:      kind,
		ContentID: contentID,
		Viewer:    viewer,
	}
	if err := s.Repo.InsertViewMarker(marker); err != nil {
		return nil, fmt.Errorf("RecordView: %w", err)
	}
	return marker, nil
}

// Sync increments the parent content's view counter by one, transactionally.
// One call per marker; a missing parent is a logged no-op inside the repo.
func (s *DefaultViewService) Sync(ctx context.Context, kind, contentID string) error {
	if !models.ValidKind(kind) {
		return fmt.Errorf("Sync: unknown content kind %q", kind)
	}
	if err := s.Repo.IncrementViews(ctx, kind, contentID); err != nil {
		return fmt.Errorf("Sync: %w", err)
	}
	return nil
}
