package contentRepo

import (
	"context"
	"errors"

	"churchapp/models"
)

// ErrNotFound is returned when no content matches the requested kind and id.
var ErrNotFound = errors.New("content not found")

// ContentRepository defines data access for content items, their detail
// sidecars and view markers.
type ContentRepository interface {
	Create(content *models.Content, details []models.ContentDetail) error
	Update(content *models.Content) error
	Delete(kind, id string) error
	GetByID(kind, id string) (*models.Content, error)
	List(kind string) ([]models.Content, error)

	GetDetails(contentID string) ([]models.ContentDetail, error)
	UpsertDetail(detail *models.ContentDetail) error
	SetDetailThumbURL(contentID, pictureID, url string) error
	SetThumbURL(kind, id, url string) error

	InsertViewMarker(marker *models.ViewMarker) error
	IncrementViews(ctx context.Context, kind, id string) error
}
