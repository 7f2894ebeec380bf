// File: churchapp/models/content.go
package models

import "time"

// Content kinds shown in the admin console.
const (
	KindNotice = "notice"
	KindWeekly = "weekly"
	KindPhoto  = "photo"
)

// ValidKind reports whether kind is one of the known content kinds.
func ValidKind(kind string) bool {
	switch kind {
	case KindNotice, KindWeekly, KindPhoto:
		return true
	}
	return false
}

// Content is a notice, weekly sermon post or photo album document.
type Content struct {
	ID        string    `bson:"id" json:"id"`
	Kind      string    `bson:"kind" json:"kind"`
	Title     string    `bson:"title" json:"title"`
	Author    string    `bson:"author" json:"author"`
	Active    bool      `bson:"active" json:"active"`
	Views     int       `bson:"views" json:"views"`
	ThumbURL  string    `bson:"thumbUrl,omitempty" json:"thumbUrl,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ContentDetail is the sidecar document holding body text and attachment URLs.
// For photo albums there is one detail per picture, keyed by the zero-padded
// picture id ("001", "002", ...); for text kinds a single detail with
// PictureID "body".
type ContentDetail struct {
	ContentID string    `bson:"contentId" json:"contentId"`
	PictureID string    `bson:"pictureId" json:"pictureId"`
	Body      string    `bson:"body,omitempty" json:"body,omitempty"`
	FileURL   string    `bson:"fileUrl,omitempty" json:"fileUrl,omitempty"`
	ThumbURL  string    `bson:"thumbUrl,omitempty" json:"thumbUrl,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ViewMarker is an append-only record whose creation signals that someone
// viewed a piece of content. Markers are never updated or deleted here.
type ViewMarker struct {
	ID        string    `bson:"id" json:"id"`
	Kind      string    `bson:"kind" json:"kind"`
	ContentID string    `bson:"contentId" json:"contentId"`
	Viewer    string    `bson:"viewer" json:"viewer"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
