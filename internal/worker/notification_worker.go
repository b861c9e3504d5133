package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/lms-backend/internal/config"
	"github.com/stemsi/lms-backend/internal/model"
)

var errUndecodable = errors.New("undecodable notification payload")

// NotificationWriter persists a notification.
type NotificationWriter interface {
	Create(ctx context.Context, n *model.Notification) error
}

// NotificationWorker consumes persist_notifications_queue, INSERTs each
// notification and publishes it on the recipient's live channel.
type NotificationWorker struct {
	store      NotificationWriter
	rdb        *redis.Client
	key        string
	retryDelay time.Duration
	log        zerolog.Logger
}

// NewNotificationWorker creates a new NotificationWorker.
func NewNotificationWorker(store NotificationWriter, rdb *redis.Client, log zerolog.Logger) *NotificationWorker {
	return &NotificationWorker{
		store:      store,
		rdb:        rdb,
		key:        config.WorkerKey.PersistNotificationsQueue,
		retryDelay: 5 * time.Second,
		log:        log.With().Str("component", "notification_worker").Logger(),
	}
}

// Start begins the worker loop. Call in a goroutine.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining items before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *NotificationWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or the 1s timeout passes.
	result, err := w.rdb.BLPop(ctx, time.Second, w.key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}
	if len(result) < 2 {
		return
	}

	if err := w.deliver(ctx, result[1]); err != nil {
		if errors.Is(err, errUndecodable) {
			w.log.Error().Err(err).Msg("Dropping undecodable notification")
			return
		}

		w.log.Error().Err(err).Dur("retry_in", w.retryDelay).Msg("Persist error, requeueing")
		w.rdb.RPush(context.Background(), w.key, result[1])

		select {
		case <-ctx.Done():
		case <-time.After(w.retryDelay):
		}
	}
}

// deliver stores one queued notification and fans it out to live listeners.
// A failed publish only means nobody sees it live; the inbox still has it.
func (w *NotificationWorker) deliver(ctx context.Context, raw string) error {
	var n model.Notification
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return fmt.Errorf("%w: %v", errUndecodable, err)
	}
	if !n.RecipientRole.Valid() {
		return fmt.Errorf("%w: recipient role %q", errUndecodable, n.RecipientRole)
	}

	if err := w.store.Create(ctx, &n); err != nil {
		return fmt.Errorf("persist notification: %w", err)
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return nil
	}
	channel := config.CacheKey.UserNotificationChannel(string(n.RecipientRole), n.UserID)
	if err := w.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		w.log.Warn().Err(err).Int64("user_id", n.UserID).Str("role", string(n.RecipientRole)).Msg("Live publish failed")
	}
	return nil
}

// drain processes whatever is left in the queue before shutdown.
func (w *NotificationWorker) drain(ctx context.Context) {
	drained := 0
	for {
		raw, err := w.rdb.LPop(ctx, w.key).Result()
		if err != nil {
			break
		}

		if err := w.deliver(ctx, raw); err != nil {
			if errors.Is(err, errUndecodable) {
				w.log.Error().Err(err).Msg("Drain unmarshal error")
				continue
			}
			w.log.Error().Err(err).Msg("Drain persist error")
			w.rdb.RPush(ctx, w.key, raw)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}
