// File: churchapp/handlers/handler.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates every endpoint handler so routes can be registered
// in one place.
type HandlerBundle struct {
	// Auth endpoints.
	LoginHandler gin.HandlerFunc

	// Content endpoints (notice / weekly / photo).
	ListContentsHandler  gin.HandlerFunc
	GetContentHandler    gin.HandlerFunc
	CreateContentHandler gin.HandlerFunc
	UpdateContentHandler gin.HandlerFunc
	DeleteContentHandler gin.HandlerFunc
	SaveDetailHandler    gin.HandlerFunc

	// Calendar endpoints.
	ListCalendarHandler   gin.HandlerFunc
	GetCalendarHandler    gin.HandlerFunc
	CreateCalendarHandler gin.HandlerFunc
	UpdateCalendarHandler gin.HandlerFunc
	DeleteCalendarHandler gin.HandlerFunc

	// Account request endpoints.
	ListRequestsHandler   gin.HandlerFunc
	GetRequestHandler     gin.HandlerFunc
	ApproveRequestHandler gin.HandlerFunc
	DeleteRequestHandler  gin.HandlerFunc

	// Comment moderation endpoints.
	CreateReplyHandler      gin.HandlerFunc
	ListReplyThreadsHandler gin.HandlerFunc
	ListRepliesHandler      gin.HandlerFunc
	DeleteReplyHandler      gin.HandlerFunc

	// Subscriber / push endpoints.
	ListSubscribersHandler  gin.HandlerFunc
	UpsertSubscriberHandler gin.HandlerFunc
	DeleteSubscriberHandler gin.HandlerFunc
	TestPushHandler         gin.HandlerFunc
	ListPushLogsHandler     gin.HandlerFunc

	// View marker endpoint.
	RecordViewHandler gin.HandlerFunc

	// Storage endpoints.
	UploadPictureHandler gin.HandlerFunc
}
