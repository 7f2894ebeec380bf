// File: churchapp/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"churchapp/config"
	"churchapp/cron"
	"churchapp/database"
	calendarRepoPkg "churchapp/database/repository/calendar"
	contentRepoPkg "churchapp/database/repository/content"
	pushlogRepoPkg "churchapp/database/repository/pushlog"
	replyRepoPkg "churchapp/database/repository/reply"
	requestRepoPkg "churchapp/database/repository/request"
	subscriberRepoPkg "churchapp/database/repository/subscriber"
	"churchapp/handlers"
	"churchapp/middleware"
	"churchapp/routes"
	"churchapp/services/content"
	"churchapp/services/janitor"
	"churchapp/services/notification"
	"churchapp/services/storage"
	"churchapp/services/tasks"
	"churchapp/services/thumbnail"
	"churchapp/services/views"
	"churchapp/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	storageService, err := storage.NewFirebaseStorageService(
		config.AppConfig.FirebaseCredentials, config.AppConfig.StorageBucket)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize bucket storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	contentRepo := contentRepoPkg.NewMongoContentRepo()
	subscriberRepo := subscriberRepoPkg.NewMongoSubscriberRepo()
	pushlogRepo := pushlogRepoPkg.NewMongoPushLogRepo()
	requestRepo := requestRepoPkg.NewMongoRequestRepo()
	calendarRepo := calendarRepoPkg.NewMongoCalendarRepo()
	replyRepo := replyRepoPkg.NewMongoReplyRepo()

	// services.
	contentService := &content.DefaultContentService{
		Repo:  contentRepo,
		Store: storageService,
	}
	viewService := &views.DefaultViewService{
		Repo: contentRepo,
	}
	thumbnailService := &thumbnail.DefaultThumbnailService{
		Store: storageService,
		Repo:  contentRepo,
	}
	notificationService := &notification.DefaultNotificationService{
		Subscribers: subscriberRepo,
		Logs:        pushlogRepo,
		Sender:      &notification.FCMSender{Client: utils.FCMClient},
	}
	janitorService := &janitor.DefaultJanitorService{
		Logs:          pushlogRepo,
		RetentionDays: config.AppConfig.PushLogRetention,
	}

	taskClient := tasks.NewClient()
	defer taskClient.Close()

	// handlers.
	authHandler := handlers.NewAuthHandler(requestRepo)
	contentHandler := handlers.NewContentHandler(contentService)
	calendarHandler := handlers.NewCalendarHandler(calendarRepo)
	requestHandler := handlers.NewRequestHandler(requestRepo)
	replyHandler := handlers.NewReplyHandler(replyRepo, contentRepo)
	pushHandler := handlers.NewPushHandler(subscriberRepo, pushlogRepo, notificationService)
	viewHandler := handlers.NewViewHandler(viewService, taskClient)
	storageHandler := handlers.NewStorageHandler(storageService, contentRepo, taskClient)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		LoginHandler: authHandler.LoginHandler,

		ListContentsHandler:  contentHandler.ListHandler,
		GetContentHandler:    contentHandler.GetHandler,
		CreateContentHandler: contentHandler.CreateHandler,
		UpdateContentHandler: contentHandler.UpdateHandler,
		DeleteContentHandler: contentHandler.DeleteHandler,
		SaveDetailHandler:    contentHandler.SaveDetailHandler,

		ListCalendarHandler:   calendarHandler.ListHandler,
		GetCalendarHandler:    calendarHandler.GetHandler,
		CreateCalendarHandler: calendarHandler.CreateHandler,
		UpdateCalendarHandler: calendarHandler.UpdateHandler,
		DeleteCalendarHandler: calendarHandler.DeleteHandler,

		ListRequestsHandler:   requestHandler.ListHandler,
		GetRequestHandler:     requestHandler.GetHandler,
		ApproveRequestHandler: requestHandler.ApproveHandler,
		DeleteRequestHandler:  requestHandler.DeleteHandler,

		CreateReplyHandler:      replyHandler.CreateHandler,
		ListReplyThreadsHandler: replyHandler.ListThreadsHandler,
		ListRepliesHandler:      replyHandler.ListHandler,
		DeleteReplyHandler:      replyHandler.DeleteHandler,

		ListSubscribersHandler:  pushHandler.ListHandler,
		UpsertSubscriberHandler: pushHandler.UpsertHandler,
		DeleteSubscriberHandler: pushHandler.DeleteHandler,
		TestPushHandler:         pushHandler.TestHandler,
		ListPushLogsHandler:     pushHandler.LogsHandler,

		RecordViewHandler: viewHandler.RecordHandler,

		UploadPictureHandler: storageHandler.UploadHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background workers: the task worker consumes queued view syncs and
	// thumbnail jobs, the listener feeds bucket events into the queue, the
	// scheduler fires the hourly dispatch and the nightly janitor.
	go cron.InitEventWorker(viewService, thumbnailService)

	listenerCtx, stopListener := context.WithCancel(context.Background())
	defer stopListener()
	storageListener, err := cron.NewStorageListener(taskClient)
	if err != nil {
		logger.Sugar().Warnf("main: bucket event listener disabled: %v", err)
	} else {
		go storageListener.Start(listenerCtx)
	}

	scheduler, err := cron.StartScheduler(notificationService, janitorService)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to start scheduler: %v", err)
	}

	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	stopListener()
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
