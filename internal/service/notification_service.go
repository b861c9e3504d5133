package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/lms-backend/internal/metrics"
	"github.com/stemsi/lms-backend/internal/model"
	"github.com/stemsi/lms-backend/internal/repository"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationQueue hands a notification to the background writer.
type NotificationQueue interface {
	Enqueue(ctx context.Context, n model.Notification) error
}

// NotificationService is the notification sink and the user inbox.
type NotificationService struct {
	store NotificationStore
	queue NotificationQueue
	log   zerolog.Logger
	now   func() time.Time
}

// NewNotificationService creates a new NotificationService. A nil queue
// makes Notify write synchronously.
func NewNotificationService(store NotificationStore, queue NotificationQueue, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		store: store,
		queue: queue,
		log:   log.With().Str("component", "notification_service").Logger(),
		now:   time.Now,
	}
}

// Notify queues a notification for the recipient, writing it directly if
// the queue is unavailable.
func (s *NotificationService) Notify(ctx context.Context, to model.Recipient, message, kind string) error {
	if !to.Role.Valid() {
		return fmt.Errorf("notify user %d: unknown recipient role %q", to.UserID, to.Role)
	}
	n := model.Notification{
		UserID:        to.UserID,
		RecipientRole: to.Role,
		Message:       message,
		Kind:          kind,
		CreatedAt:     s.now(),
	}

	if s.queue != nil {
		err := s.queue.Enqueue(ctx, n)
		if err == nil {
			metrics.NotificationDelivered(metrics.NotificationQueued)
			return nil
		}
		s.log.Warn().Err(err).Int64("user_id", to.UserID).Str("role", string(to.Role)).
			Msg("Notification enqueue failed, writing directly")
	}

	if err := s.store.Create(ctx, &n); err != nil {
		metrics.NotificationDelivered(metrics.NotificationFailed)
		return fmt.Errorf("create notification: %w", err)
	}
	metrics.NotificationDelivered(metrics.NotificationDirect)
	return nil
}

// ListByUser returns a recipient's notifications, newest first.
func (s *NotificationService) ListByUser(ctx context.Context, to model.Recipient) ([]model.Notification, error) {
	return s.store.ListByUser(ctx, to)
}

func (s *NotificationService) UnreadCount(ctx context.Context, to model.Recipient) (int64, error) {
	return s.store.CountUnread(ctx, to)
}

// MarkAsRead flags notification id as read. A non-nil owner limits it to
// that recipient's inbox; anyone else's notification reads as not found.
func (s *NotificationService) MarkAsRead(ctx context.Context, id int64, owner *model.Recipient) (*model.Notification, error) {
	n, err := s.store.MarkRead(ctx, id, owner)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return n, nil
}

// MarkAllAsRead returns how many notifications changed.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, to model.Recipient) (int64, error) {
	return s.store.MarkAllRead(ctx, to)
}

// PurgeRead deletes read notifications older than retention.
func (s *NotificationService) PurgeRead(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().Add(-retention)
	n, err := s.store.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge notifications: %w", err)
	}
	return n, nil
}
