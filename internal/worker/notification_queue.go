package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/lms-backend/internal/config"
	"github.com/stemsi/lms-backend/internal/model"
)

// NotificationQueue pushes notifications onto the Redis list drained by
// NotificationWorker.
type NotificationQueue struct {
	rdb *redis.Client
	key string
}

// NewNotificationQueue creates a new NotificationQueue.
func NewNotificationQueue(rdb *redis.Client) *NotificationQueue {
	return &NotificationQueue{rdb: rdb, key: config.WorkerKey.PersistNotificationsQueue}
}

// Enqueue appends n to the persist queue.
func (q *NotificationQueue) Enqueue(ctx context.Context, n model.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := q.rdb.RPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}
	return nil
}
