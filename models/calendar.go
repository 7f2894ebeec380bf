// File: churchapp/models/calendar.go
package models

import "time"

// CalendarEntry is a church calendar event shown in the admin console.
type CalendarEntry struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Date      string    `bson:"date" json:"date"` // "2006-01-02"
	StartTime string    `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime   string    `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Place     string    `bson:"place,omitempty" json:"place,omitempty"`
	Memo      string    `bson:"memo,omitempty" json:"memo,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
