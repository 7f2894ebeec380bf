package handlers

import (
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"

	contentRepo "churchapp/database/repository/content"
	"churchapp/models"
	"churchapp/services/storage"
	"churchapp/services/tasks"
	"churchapp/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// maxUploadBytes caps a single picture upload at 10 MiB.
const maxUploadBytes = 10 << 20

// StorageHandler serves album picture uploads. Uploaded originals land under
// photo/<id>/images/ in the bucket; the worker writes the matching thumbnail
// under photo/<id>/thumbs/.
type StorageHandler struct {
	Store      storage.BlobStore
	Repo       contentRepo.ContentRepository
	TaskClient *asynq.Client
}

// NewStorageHandler creates a new StorageHandler.
func NewStorageHandler(store storage.BlobStore, repo contentRepo.ContentRepository, taskClient *asynq.Client) *StorageHandler {
	return &StorageHandler{Store: store, Repo: repo, TaskClient: taskClient}
}

// UploadHandler accepts a multipart picture for a photo album. The form must
// carry the file under "file" and the zero-padded sequence under "pictureId"
// (for example "001").
func (h *StorageHandler) UploadHandler(c *gin.Context) {
	albumID := c.Param("id")
	pictureID := c.PostForm("pictureId")
	if pictureID == "" {
		utils.JSONError(c, http.StatusBadRequest, "pictureId is required", "")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "file is required", "")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		utils.JSONError(c, http.StatusBadRequest, "file exceeds the 10MB limit", "")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	ext := strings.ToLower(path.Ext(fileHeader.Filename))
	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}
	if !strings.HasPrefix(contentType, "image/") {
		utils.JSONError(c, http.StatusBadRequest, "only image uploads are accepted", "")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		zap.L().Error("Failed to open uploaded file", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to read upload", "")
		return
	}
	defer src.Close()

	objectPath := fmt.Sprintf("photo/%s/images/%s%s", albumID, pictureID, ext)
	ctx := c.Request.Context()
	if err := h.Store.Upload(ctx, objectPath, contentType, src); err != nil {
		zap.L().Error("Failed to upload picture",
			zap.String("object", objectPath), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to store picture", "")
		return
	}

	fileURL := h.Store.PublicURL(objectPath)
	detail := &models.ContentDetail{
		ContentID: albumID,
		PictureID: pictureID,
		FileURL:   fileURL,
	}
	if err := h.Repo.UpsertDetail(detail); err != nil {
		zap.L().Error("Failed to save picture record",
			zap.String("object", objectPath), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to save picture record", "")
		return
	}

	obj := models.StorageObject{
		Bucket:      h.Store.Bucket(),
		Name:        objectPath,
		ContentType: contentType,
	}
	if err := tasks.EnqueueThumbnail(h.TaskClient, obj); err != nil {
		// The bucket notification listener retries the thumbnail anyway.
		zap.L().Warn("Failed to queue thumbnail task",
			zap.String("object", objectPath), zap.Error(err))
	}

	c.JSON(http.StatusCreated, gin.H{
		"contentId": albumID,
		"pictureId": pictureID,
		"fileUrl":   fileURL,
	})
}
