// File: churchapp/models/reply.go
package models

import "time"

// ValidReplyKind reports whether kind is a content kind that carries member
// comments. Weekly posts have no comment thread.
func ValidReplyKind(kind string) bool {
	return kind == KindNotice || kind == KindPhoto
}

// Reply is a member comment on a notice or photo album. The member app writes
// them; the admin console only lists and hard-deletes.
type Reply struct {
	ID           string    `bson:"id" json:"id"`
	Kind         string    `bson:"kind" json:"kind"`
	ContentID    string    `bson:"contentId" json:"contentId"`
	UserName     string    `bson:"userName" json:"userName"`
	UserUID      string    `bson:"userUid" json:"userUid"`
	Body         string    `bson:"content" json:"content"`
	Active       bool      `bson:"isActive" json:"isActive"`
	RegisteredAt time.Time `bson:"registeredAt" json:"registeredAt"`
}

// ReplyThread is one row of the moderation overview: a commented content item
// with its comment count and the newest comment time. Title and Author are
// filled in from the parent content item.
type ReplyThread struct {
	ContentID    string    `bson:"_id" json:"contentId"`
	CommentCount int       `bson:"count" json:"commentCount"`
	LatestAt     time.Time `bson:"latestAt" json:"latestAt"`
	Title        string    `bson:"-" json:"title,omitempty"`
	Author       string    `bson:"-" json:"author,omitempty"`
}
