package routes

import (
	"net/http"
	"time"

	"churchapp/handlers"
	"churchapp/middleware"
	"churchapp/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers admin console login.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.LoginHandler)
	}
}

// RegisterContentRoutes registers the admin content CRUD endpoints. All of
// them require a console token.
func RegisterContentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/contents")
	{
		api.Use(middleware.JWTAuthAdminMiddleware())
		api.GET("/:kind", hb.ListContentsHandler)
		api.GET("/:kind/:id", hb.GetContentHandler)
		api.POST("/:kind", hb.CreateContentHandler)
		api.PUT("/:kind/:id", hb.UpdateContentHandler)
		api.DELETE("/:kind/:id", hb.DeleteContentHandler)
		api.PUT("/:kind/:id/details", hb.SaveDetailHandler)
		api.POST("/:kind/:id/pictures", hb.UploadPictureHandler)
	}
}

// RegisterCalendarRoutes registers the church calendar endpoints.
func RegisterCalendarRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/calendar")
	{
		api.Use(middleware.JWTAuthAdminMiddleware())
		api.GET("", hb.ListCalendarHandler)
		api.GET("/:id", hb.GetCalendarHandler)
		api.POST("", hb.CreateCalendarHandler)
		api.PUT("/:id", hb.UpdateCalendarHandler)
		api.DELETE("/:id", hb.DeleteCalendarHandler)
	}
}

// RegisterRequestRoutes registers the account approval queue endpoints.
func RegisterRequestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/requests")
	{
		api.Use(middleware.JWTAuthAdminMiddleware())
		api.GET("", hb.ListRequestsHandler)
		api.GET("/:id", hb.GetRequestHandler)
		api.POST("/:id/approve", hb.ApproveRequestHandler)
		api.DELETE("/:id", hb.DeleteRequestHandler)
	}
}

// RegisterReplyRoutes registers member comments and their moderation.
// Posting a comment is public (the member app writes them); the thread
// overview, per-post listing and delete belong to the console.
func RegisterReplyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/replies")
	{
		api.POST("", hb.CreateReplyHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthAdminMiddleware())
		protected.GET("/:kind", hb.ListReplyThreadsHandler)
		protected.GET("/:kind/:id", hb.ListRepliesHandler)
		protected.DELETE("/:kind/:id", hb.DeleteReplyHandler)
	}
}

// RegisterSubscriberRoutes registers device registration and the push test
// trigger. Device upsert is public (the app registers itself on install);
// the list and the test trigger belong to the console.
func RegisterSubscriberRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/subscribers")
	{
		api.POST("", hb.UpsertSubscriberHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthAdminMiddleware())
		protected.GET("", hb.ListSubscribersHandler)
		protected.DELETE("/:uuid", hb.DeleteSubscriberHandler)
		protected.GET("/test", hb.TestPushHandler)
		protected.POST("/test/:uuid", hb.TestPushHandler)
	}
}

// RegisterPushLogRoutes registers the console's delivery-log lookup.
func RegisterPushLogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/push")
	{
		api.Use(middleware.JWTAuthAdminMiddleware())
		api.GET("/logs", hb.ListPushLogsHandler)
	}
}

// RegisterViewRoutes registers the public read-marker endpoint.
func RegisterViewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/views")
	{
		api.POST("", hb.RecordViewHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterContentRoutes(r, hb)
	RegisterCalendarRoutes(r, hb)
	RegisterRequestRoutes(r, hb)
	RegisterReplyRoutes(r, hb)
	RegisterSubscriberRoutes(r, hb)
	RegisterPushLogRoutes(r, hb)
	RegisterViewRoutes(r, hb)
	RegisterHealthRoute(r)
}
