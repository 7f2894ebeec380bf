package tasks

import (
	"encoding/json"
	"fmt"

	"churchapp/config"
	"churchapp/models"

	"github.com/hibiken/asynq"
)

const (
	TypeViewSync          = "views:sync"
	TypeThumbnailGenerate = "thumbnail:generate"
)

// RedisOpt returns the asynq Redis connection settings from config.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}
}

// NewClient creates an asynq client on the task-queue Redis DB.
func NewClient() *asynq.Client {
	return asynq.NewClient(RedisOpt())
}

// NewViewSyncTask builds a task that bumps a content item's view counter.
func NewViewSyncTask(payload models.ViewSyncPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeViewSync, b), nil
}

// NewThumbnailTask builds a task that generates a thumbnail for a finalized
// storage object.
func NewThumbnailTask(payload models.ThumbnailPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeThumbnailGenerate, b), nil
}

// EnqueueViewSync enqueues a view-counter sync for one marker.
func EnqueueViewSync(client *asynq.Client, payload models.ViewSyncPayload) error {
	task, err := NewViewSyncTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build view sync task: %w", err)
	}
	if _, err := client.Enqueue(task); err != nil {
		return fmt.Errorf("failed to enqueue view sync task: %w", err)
	}
	return nil
}

// EnqueueThumbnail enqueues thumbnail generation for one storage object.
func EnqueueThumbnail(client *asynq.Client, obj models.StorageObject) error {
	task, err := NewThumbnailTask(models.ThumbnailPayload{Object: obj})
	if err != nil {
		return fmt.Errorf("failed to build thumbnail task: %w", err)
	}
	if _, err := client.Enqueue(task); err != nil {
		return fmt.Errorf("failed to enqueue thumbnail task: %w", err)
	}
	return nil
}
