// File: churchapp/models/subscriber.go
package models

import "time"

// Subscriber holds one device's push configuration.
type Subscriber struct {
	UUID        string    `bson:"uuid" json:"uuid"`
	FCMToken    string    `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
	PushEnabled bool      `bson:"pushEnabled" json:"pushEnabled"`
	PushTime    string    `bson:"pushTime" json:"pushTime"` // "HH:mm"
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Delivery statuses recorded per recipient after a dispatch run.
const (
	DeliverySuccess        = "success"
	DeliveryFailed         = "failed"
	DeliverySkippedNoToken = "skipped_no_token"
)

// DeliveryLog is the per-recipient outcome record of a push send attempt,
// partitioned by date key (yyyyMMdd, sorts in date order as a string).
type DeliveryLog struct {
	Date     string    `bson:"date" json:"date"`
	UUID     string    `bson:"uuid" json:"uuid"`
	Status   string    `bson:"status" json:"status"`
	TimeSent time.Time `bson:"timeSent" json:"timeSent"`
	Error    string    `bson:"error,omitempty" json:"error,omitempty"`
}
