package cron

import (
	"context"
	"encoding/json"
	"log"

	"churchapp/config"
	"churchapp/models"
	"churchapp/services/tasks"

	"cloud.google.com/go/pubsub"
	"github.com/hibiken/asynq"
	"google.golang.org/api/option"
)

// gcsNotification is the object metadata payload of a Cloud Storage
// OBJECT_FINALIZE notification delivered over Pub/Sub.
type gcsNotification struct {
	Bucket      string `json:"bucket"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
}

// StorageListener consumes storage finalize notifications and turns them into
// thumbnail tasks.
type StorageListener struct {
	pubsubClient *pubsub.Client
	taskClient   *asynq.Client
	subName      string
}

// NewStorageListener creates a listener on the configured subscription.
func NewStorageListener(taskClient *asynq.Client) (*StorageListener, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if config.AppConfig.FirebaseCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(config.AppConfig.FirebaseCredentials))
	}

	client, err := pubsub.NewClient(ctx, config.AppConfig.PubSubProject, opts...)
	if err != nil {
		return nil, err
	}

	return &StorageListener{
		pubsubClient: client,
		taskClient:   taskClient,
		subName:      config.AppConfig.PubSubSubscription,
	}, nil
}

// Start blocks receiving messages until ctx is cancelled. Run it in its own
// goroutine.
func (l *StorageListener) Start(ctx context.Context) {
	sub := l.pubsubClient.Subscription(l.subName)
	log.Printf("[StorageListener] listening on subscription: %s", l.subName)

	err := sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		l.handleMessage(msg)
		msg.Ack()
	})
	if err != nil {
		log.Printf("[StorageListener] error receiving messages: %v", err)
	}
}

func (l *StorageListener) handleMessage(msg *pubsub.Message) {
	// Only object finalization is of interest; other lifecycle events are
	// acked and dropped.
	if evt := msg.Attributes["eventType"]; evt != "" && evt != "OBJECT_FINALIZE" {
		return
	}

	var n gcsNotification
	if err := json.Unmarshal(msg.Data, &n); err != nil {
		log.Printf("[StorageListener] failed to unmarshal notification: %v", err)
		return
	}

	obj := models.StorageObject{
		Bucket:      n.Bucket,
		Name:        n.Name,
		ContentType: n.ContentType,
	}
	if err := tasks.EnqueueThumbnail(l.taskClient, obj); err != nil {
		log.Printf("[StorageListener] failed to enqueue thumbnail for %s: %v", n.Name, err)
	}
}
