package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"churchapp/config"
	"churchapp/models"
	"churchapp/services/tasks"
	"churchapp/services/thumbnail"
	"churchapp/services/views"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitEventWorker runs the async worker in background. It consumes view-sync
// and thumbnail tasks enqueued by the HTTP handlers and the storage listener.
func InitEventWorker(viewSvc views.ViewService, thumbSvc thumbnail.ThumbnailService) {
	srv := asynq.NewServer(
		tasks.RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeViewSync, handleViewSyncTask(viewSvc))
	mux.HandleFunc(tasks.TypeThumbnailGenerate, handleThumbnailTask(thumbSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[EventWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[EventWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[EventWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleViewSyncTask(viewSvc views.ViewService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ViewSyncPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ViewSync] invalid payload: %v", err)
			return err
		}

		if err := viewSvc.Sync(ctx, p.Kind, p.ContentID); err != nil {
			log.Printf("[ViewSync] failed for %s/%s: %v", p.Kind, p.ContentID, err)
			return err
		}
		return nil
	}
}

func handleThumbnailTask(thumbSvc thumbnail.ThumbnailService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ThumbnailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[Thumbnail] invalid payload: %v", err)
			return err
		}

		if err := thumbSvc.Generate(ctx, p.Object); err != nil {
			log.Printf("[Thumbnail] failed for %s: %v", p.Object.Name, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[EventWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
