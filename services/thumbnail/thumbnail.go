package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	contentRepo "churchapp/database/repository/content"
	"churchapp/models"
	"churchapp/services/storage"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// thumbWidth is the fixed thumbnail width; height follows the aspect ratio.
const thumbWidth = 300

// thumbPrefix marks generated files so re-finalization of a thumbnail never
// triggers another generation.
const thumbPrefix = "thumb_"

// ThumbnailService turns finalized image uploads into resized copies and
// records their URLs on the owning documents.
type ThumbnailService interface {
	Generate(ctx context.Context, obj models.StorageObject) error
}

// DefaultThumbnailService is the production implementation.
type DefaultThumbnailService struct {
	Store storage.BlobStore
	Repo  contentRepo.ContentRepository
}

// Generate processes one finalized storage object. Non-images and files that
// are already thumbnails are skipped. Any error aborts the invocation; the
// task queue's retry semantics govern redelivery.
func (s *DefaultThumbnailService) Generate(ctx context.Context, obj models.StorageObject) error {
	logger := zap.L().Sugar()

	if !ShouldProcess(obj) {
		logger.Infof("thumbnail: skipping %s (type %q)", obj.Name, obj.ContentType)
		return nil
	}

	data, err := s.Store.Download(ctx, obj.Name)
	if err != nil {
		return fmt.Errorf("thumbnail: failed to download %s: %w", obj.Name, err)
	}

	// Scratch space, removed unconditionally.
	tempDir, err := os.MkdirTemp("", "thumbs")
	if err != nil {
		return fmt.Errorf("thumbnail: failed to create scratch dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	origPath := tempDir + "/" + path.Base(obj.Name)
	if err := os.WriteFile(origPath, data, 0o600); err != nil {
		return fmt.Errorf("thumbnail: failed to stage %s: %w", obj.Name, err)
	}

	thumbData, err := Resize(origPath)
	if err != nil {
		return fmt.Errorf("thumbnail: failed to resize %s: %w", obj.Name, err)
	}

	thumbPath := ThumbObjectPath(obj.Name)
	if err := s.Store.Upload(ctx, thumbPath, obj.ContentType, bytes.NewReader(thumbData)); err != nil {
		return fmt.Errorf("thumbnail: failed to upload %s: %w", thumbPath, err)
	}
	logger.Infof("thumbnail: created %s", thumbPath)

	thumbURL := s.Store.PublicURL(thumbPath)

	photoID, pictureID, ok := ParsePhotoPath(obj.Name)
	if !ok {
		return nil
	}

	if err := s.Repo.SetDetailThumbURL(photoID, pictureID, thumbURL); err != nil {
		return fmt.Errorf("thumbnail: failed to update detail %s/%s: %w", photoID, pictureID, err)
	}

	// The first picture's thumbnail doubles as the album's representative one.
	if pictureID == "001" {
		if err := s.Repo.SetThumbURL(models.KindPhoto, photoID, thumbURL); err != nil {
			return fmt.Errorf("thumbnail: failed to update album thumb for %s: %w", photoID, err)
		}
	}
	return nil
}

// ShouldProcess reports whether a finalized object qualifies for thumbnail
// generation: image content type, and not itself a generated thumbnail.
func ShouldProcess(obj models.StorageObject) bool {
	if !strings.HasPrefix(obj.ContentType, "image/") {
		return false
	}
	return !strings.HasPrefix(path.Base(obj.Name), thumbPrefix)
}

// ThumbObjectPath derives the sibling path of a thumbnail: the "/images/"
// segment becomes "/thumbs/" and the basename gains the thumb_ prefix.
func ThumbObjectPath(name string) string {
	out := strings.Replace(name, "/images/", "/thumbs/", 1)
	return path.Join(path.Dir(out), thumbPrefix+path.Base(out))
}

// ParsePhotoPath splits "photo/<albumId>/images/<pic>.<ext>" into its album
// and picture ids. ok is false for any other layout.
func ParsePhotoPath(name string) (photoID, pictureID string, ok bool) {
	segments := strings.Split(name, "/")
	if len(segments) != 4 || segments[0] != models.KindPhoto || segments[2] != "images" {
		return "", "", false
	}
	base := segments[3]
	pictureID = strings.TrimSuffix(base, path.Ext(base))
	if pictureID == "" {
		return "", "", false
	}
	return segments[1], pictureID, true
}

// Resize loads an image file and returns it re-encoded at the fixed thumbnail
// width, preserving aspect ratio and format.
func Resize(filePath string) ([]byte, error) {
	img, err := imaging.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)

	format, err := imaging.FormatFromFilename(filePath)
	if err != nil {
		format = imaging.JPEG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, format); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
