package views

import (
	"context"
	"testing"

	"churchapp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContentRepo struct {
	markers    []models.ViewMarker
	increments []string // kind/id pairs
}

func (f *fakeContentRepo) Create(item *models.Content, details []models.ContentDetail) error {
	return nil
}
func (f *fakeContentRepo) Update(item *models.Content) error                { return nil }
func (f *fakeContentRepo) Delete(kind, id string) error                     { return nil }
func (f *fakeContentRepo) GetByID(kind, id string) (*models.Content, error) { return nil, nil }
func (f *fakeContentRepo) List(kind string) ([]models.Content, error)       { return nil, nil }
func (f *fakeContentRepo) GetDetails(contentID string) ([]models.ContentDetail, error) {
	return nil, nil
}
func (f *fakeContentRepo) UpsertDetail(detail *models.ContentDetail) error          { return nil }
func (f *fakeContentRepo) SetDetailThumbURL(contentID, pictureID, url string) error { return nil }
func (f *fakeContentRepo) SetThumbURL(kind, id, url string) error                   { return nil }

func (f *fakeContentRepo) InsertViewMarker(marker *models.ViewMarker) error {
	f.markers = append(f.markers, *marker)
	return nil
}

func (f *fakeContentRepo) IncrementViews(ctx context.Context, kind, id string) error {
	f.increments = append(f.increments, kind+"/"+id)
	return nil
}

func TestRecordViewStoresMarker(t *testing.T) {
	repo := &fakeContentRepo{}
	svc := &DefaultViewService{Repo: repo}

	marker, err := svc.RecordView(models.KindNotice, "n-1", "device-9")
	require.NoError(t, err)

	assert.NotEmpty(t, marker.ID)
	assert.Equal(t, models.KindNotice, marker.Kind)
	assert.Equal(t, "n-1", marker.ContentID)
	assert.Equal(t, "device-9", marker.Viewer)
	require.Len(t, repo.markers, 1)

	// Recording never touches the counter directly.
	assert.Empty(t, repo.increments)
}

func TestRecordViewRejectsUnknownKind(t *testing.T) {
	repo := &fakeContentRepo{}
	svc := &DefaultViewService{Repo: repo}

	_, err := svc.RecordView("podcast", "n-1", "device-9")
	require.Error(t, err)
	assert.Empty(t, repo.markers)
}

func TestSyncIncrementsOncePerCall(t *testing.T) {
	repo := &fakeContentRepo{}
	svc := &DefaultViewService{Repo: repo}

	require.NoError(t, svc.Sync(context.Background(), models.KindWeekly, "w-3"))
	require.NoError(t, svc.Sync(context.Background(), models.KindWeekly, "w-3"))

	assert.Equal(t, []string{"weekly/w-3", "weekly/w-3"}, repo.increments)
}

func TestSyncRejectsUnknownKind(t *testing.T) {
	repo := &fakeContentRepo{}
	svc := &DefaultViewService{Repo: repo}

	require.Error(t, svc.Sync(context.Background(), "podcast", "w-3"))
	assert.Empty(t, repo.increments)
}
