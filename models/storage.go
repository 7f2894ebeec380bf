// File: churchapp/models/storage.go
package models

// StorageObject describes a finalized object in the blob store, as delivered
// by the storage notification or synthesized after a direct upload.
type StorageObject struct {
	Bucket      string `json:"bucket"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
}

// ViewSyncPayload is the task payload enqueued when a view marker is created.
type ViewSyncPayload struct {
	Kind      string `json:"kind"`
	ContentID string `json:"contentId"`
}

// ThumbnailPayload is the task payload for thumbnail generation.
type ThumbnailPayload struct {
	Object StorageObject `json:"object"`
}
