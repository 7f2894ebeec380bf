package content

import (
	"context"
	"fmt"

	contentRepo "churchapp/database/repository/content"
	"churchapp/models"
	"churchapp/services/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContentService defines admin-console operations over content items.
type ContentService interface {
	List(kind string) ([]models.Content, error)
	Get(kind, id string) (*models.Content, []models.ContentDetail, error)
	Create(item *models.Content, details []models.ContentDetail) (*models.Content, error)
	Update(item *models.Content) error
	Delete(ctx context.Context, kind, id string) error
	SaveDetail(detail *models.ContentDetail) error
}

// DefaultContentService is the production implementation.
type DefaultContentService struct {
	Repo  contentRepo.ContentRepository
	Store storage.BlobStore
}

func (s *DefaultContentService) List(kind string) ([]models.Content, error) {
	if !models.ValidKind(kind) {
		return nil, fmt.Errorf("unknown content kind %q", kind)
	}
	return s.Repo.List(kind)
}

func (s *DefaultContentService) Get(kind, id string) (*models.Content, []models.ContentDetail, error) {
	item, err := s.Repo.GetByID(kind, id)
	if err != nil {
		return nil, nil, err
	}
	details, err := s.Repo.GetDetails(id)
	if err != nil {
		return nil, nil, err
	}
	return item, details, nil
}

func (s *DefaultContentService) Create(item *models.Content, details []models.ContentDetail) (*models.Content, error) {
	if !models.ValidKind(item.Kind) {
		return nil, fmt.Errorf("unknown content kind %q", item.Kind)
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.Views = 0
	item.Active = true
	if err := s.Repo.Create(item, details); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *DefaultContentService) Update(item *models.Content) error {
	if !models.ValidKind(item.Kind) {
		return fmt.Errorf("unknown content kind %q", item.Kind)
	}
	return s.Repo.Update(item)
}

// Delete removes a content item with its details. Deleting a photo album also
// removes its bucket objects (originals and thumbnails); a cleanup failure is
// logged but does not undo the document delete.
func (s *DefaultContentService) Delete(ctx context.Context, kind, id string) error {
	if err := s.Repo.Delete(kind, id); err != nil {
		return err
	}
	if kind == models.KindPhoto && s.Store != nil {
		if err := s.Store.DeletePrefix(ctx, "photo/"+id+"/"); err != nil {
			zap.L().Warn("failed to clean up album objects",
				zap.String("id", id), zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultContentService) SaveDetail(detail *models.ContentDetail) error {
	return s.Repo.UpsertDetail(detail)
}
