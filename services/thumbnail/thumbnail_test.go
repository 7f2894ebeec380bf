package thumbnail

import (
	"bytes"
	"context"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"churchapp/models"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlobStore struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeBlobStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[objectPath] = data
	f.types[objectPath] = contentType
	return nil
}

func (f *fakeBlobStore) Download(ctx context.Context, objectPath string) ([]byte, error) {
	return f.objects[objectPath], nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, objectPath string) error {
	delete(f.objects, objectPath)
	return nil
}

func (f *fakeBlobStore) DeletePrefix(ctx context.Context, prefix string) error {
	for name := range f.objects {
		if strings.HasPrefix(name, prefix) {
			delete(f.objects, name)
		}
	}
	return nil
}

func (f *fakeBlobStore) PublicURL(objectPath string) string {
	return "https://example.test/" + objectPath
}

func (f *fakeBlobStore) SignedURL(objectPath string, expires time.Duration) (string, error) {
	return f.PublicURL(objectPath), nil
}

func (f *fakeBlobStore) Bucket() string { return "test-bucket" }

type fakeContentRepo struct {
	detailThumbs map[string]string // contentID/pictureID -> url
	albumThumbs  map[string]string // contentID -> url
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{detailThumbs: map[string]string{}, albumThumbs: map[string]string{}}
}

func (f *fakeContentRepo) Create(item *models.Content, details []models.ContentDetail) error {
	return nil
}
func (f *fakeContentRepo) Update(item *models.Content) error { return nil }
func (f *fakeContentRepo) Delete(kind, id string) error      { return nil }
func (f *fakeContentRepo) GetByID(kind, id string) (*models.Content, error) {
	return nil, nil
}
func (f *fakeContentRepo) List(kind string) ([]models.Content, error) { return nil, nil }
func (f *fakeContentRepo) GetDetails(contentID string) ([]models.ContentDetail, error) {
	return nil, nil
}
func (f *fakeContentRepo) UpsertDetail(detail *models.ContentDetail) error { return nil }

func (f *fakeContentRepo) SetDetailThumbURL(contentID, pictureID, url string) error {
	f.detailThumbs[contentID+"/"+pictureID] = url
	return nil
}

func (f *fakeContentRepo) SetThumbURL(kind, id, url string) error {
	f.albumThumbs[id] = url
	return nil
}

func (f *fakeContentRepo) InsertViewMarker(marker *models.ViewMarker) error { return nil }
func (f *fakeContentRepo) IncrementViews(ctx context.Context, kind, id string) error {
	return nil
}

// encodeTestJPEG renders a solid image and returns its JPEG bytes.
func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 120, G: 80, B: 40, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG))
	return buf.Bytes()
}

func TestShouldProcess(t *testing.T) {
	tests := []struct {
		name string
		obj  models.StorageObject
		want bool
	}{
		{
			name: "plain image",
			obj:  models.StorageObject{Name: "photo/a1/images/001.jpg", ContentType: "image/jpeg"},
			want: true,
		},
		{
			name: "non-image upload",
			obj:  models.StorageObject{Name: "photo/a1/images/notes.pdf", ContentType: "application/pdf"},
			want: false,
		},
		{
			name: "missing content type",
			obj:  models.StorageObject{Name: "photo/a1/images/001.jpg", ContentType: ""},
			want: false,
		},
		{
			name: "already a thumbnail",
			obj:  models.StorageObject{Name: "photo/a1/thumbs/thumb_001.jpg", ContentType: "image/jpeg"},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldProcess(tt.obj))
		})
	}
}

func TestThumbObjectPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "album picture",
			in:   "photo/a1/images/001.jpg",
			want: "photo/a1/thumbs/thumb_001.jpg",
		},
		{
			name: "no images segment",
			in:   "misc/banner.png",
			want: "misc/thumb_banner.png",
		},
		{
			name: "basename repeats a segment",
			in:   "photo/001/images/001.jpg",
			want: "photo/001/thumbs/thumb_001.jpg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ThumbObjectPath(tt.in))
		})
	}
}

func TestParsePhotoPath(t *testing.T) {
	tests := []struct {
		name          string
		in            string
		wantPhotoID   string
		wantPictureID string
		wantOK        bool
	}{
		{"album picture", "photo/a1/images/002.jpg", "a1", "002", true},
		{"extension stripped", "photo/a1/images/002.jpeg", "a1", "002", true},
		{"not a photo path", "notice/a1/images/002.jpg", "", "", false},
		{"wrong depth", "photo/a1/002.jpg", "", "", false},
		{"empty basename", "photo/a1/images/.jpg", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photoID, pictureID, ok := ParsePhotoPath(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPhotoID, photoID)
			assert.Equal(t, tt.wantPictureID, pictureID)
		})
	}
}

func TestResizeScalesToFixedWidth(t *testing.T) {
	dir := t.TempDir()
	origPath := filepath.Join(dir, "orig.jpg")
	require.NoError(t, os.WriteFile(origPath, encodeTestJPEG(t, 1200, 900), 0o600))

	data, err := Resize(origPath)
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	// Aspect ratio is preserved.
	assert.Equal(t, 225, img.Bounds().Dy())
}

func TestGenerateFirstPictureSetsAlbumThumb(t *testing.T) {
	store := newFakeBlobStore()
	repo := newFakeContentRepo()
	svc := &DefaultThumbnailService{Store: store, Repo: repo}

	store.objects["photo/a1/images/001.jpg"] = encodeTestJPEG(t, 800, 600)
	obj := models.StorageObject{
		Bucket:      "test-bucket",
		Name:        "photo/a1/images/001.jpg",
		ContentType: "image/jpeg",
	}

	require.NoError(t, svc.Generate(context.Background(), obj))

	thumbPath := "photo/a1/thumbs/thumb_001.jpg"
	require.Contains(t, store.objects, thumbPath)
	assert.Equal(t, "image/jpeg", store.types[thumbPath])

	wantURL := "https://example.test/" + thumbPath
	assert.Equal(t, wantURL, repo.detailThumbs["a1/001"])
	// Picture 001 doubles as the album's representative thumbnail.
	assert.Equal(t, wantURL, repo.albumThumbs["a1"])
}

func TestGenerateLaterPictureLeavesAlbumThumb(t *testing.T) {
	store := newFakeBlobStore()
	repo := newFakeContentRepo()
	svc := &DefaultThumbnailService{Store: store, Repo: repo}

	store.objects["photo/a1/images/002.jpg"] = encodeTestJPEG(t, 800, 600)
	obj := models.StorageObject{
		Bucket:      "test-bucket",
		Name:        "photo/a1/images/002.jpg",
		ContentType: "image/jpeg",
	}

	require.NoError(t, svc.Generate(context.Background(), obj))

	assert.Contains(t, repo.detailThumbs, "a1/002")
	assert.Empty(t, repo.albumThumbs)
}

func TestGenerateSkipsNonTargets(t *testing.T) {
	tests := []struct {
		name string
		obj  models.StorageObject
	}{
		{
			name: "non-image",
			obj:  models.StorageObject{Name: "photo/a1/images/doc.pdf", ContentType: "application/pdf"},
		},
		{
			name: "generated thumbnail",
			obj:  models.StorageObject{Name: "photo/a1/thumbs/thumb_001.jpg", ContentType: "image/jpeg"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeBlobStore()
			repo := newFakeContentRepo()
			svc := &DefaultThumbnailService{Store: store, Repo: repo}

			require.NoError(t, svc.Generate(context.Background(), tt.obj))
			assert.Empty(t, store.objects)
			assert.Empty(t, repo.detailThumbs)
		})
	}
}
