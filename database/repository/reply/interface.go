package replyRepo

import (
	"errors"

	"churchapp/models"
)

// ErrNotFound is returned when no reply matches the requested id.
var ErrNotFound = errors.New("reply not found")

// ReplyRepository defines data access for member comments on notices and
// photo albums.
type ReplyRepository interface {
	Create(reply *models.Reply) error
	// ListThreads summarizes the commented content items of one kind,
	// newest comment first.
	ListThreads(kind string) ([]models.ReplyThread, error)
	// ListByContent returns one content item's comments, oldest first.
	ListByContent(kind, contentID string) ([]models.Reply, error)
	Delete(kind, id string) error
}
