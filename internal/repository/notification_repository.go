package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/lms-backend/internal/model"
)

const notificationColumns = `id, user_id, recipient_role, message, kind, is_read, created_at`

// NotificationRepository handles notification data access. Every inbox
// query is keyed by user id and recipient role together.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func scanNotification(row pgx.Row, n *model.Notification) error {
	return row.Scan(&n.ID, &n.UserID, &n.RecipientRole, &n.Message, &n.Kind, &n.IsRead, &n.CreatedAt)
}

// Create inserts a notification. A zero CreatedAt is set by the database.
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	var createdAt *time.Time
	if !n.CreatedAt.IsZero() {
		createdAt = &n.CreatedAt
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO notifications (user_id, recipient_role, message, kind, is_read, created_at)
		 VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))
		 RETURNING id, created_at`,
		n.UserID, n.RecipientRole, n.Message, n.Kind, n.IsRead, createdAt,
	).Scan(&n.ID, &n.CreatedAt)
}

// ListByUser retrieves a recipient's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, to model.Recipient) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+notificationColumns+`
		 FROM notifications WHERE user_id = $1 AND recipient_role = $2
		 ORDER BY created_at DESC, id DESC`, to.UserID, to.Role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		if err := scanNotification(rows, &n); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// CountUnread counts a recipient's unread notifications.
func (r *NotificationRepository) CountUnread(ctx context.Context, to model.Recipient) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications
		 WHERE user_id = $1 AND recipient_role = $2 AND is_read = FALSE`, to.UserID, to.Role,
	).Scan(&count)
	return count, err
}

// MarkRead flags one notification as read and returns it. A non-nil owner
// restricts the update to that recipient's notifications.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64, owner *model.Recipient) (*model.Notification, error) {
	var (
		ownerID   int64
		ownerRole string
	)
	if owner != nil {
		ownerID, ownerRole = owner.UserID, string(owner.Role)
	}

	n := &model.Notification{}
	err := scanNotification(r.pool.QueryRow(ctx,
		`UPDATE notifications SET is_read = TRUE
		 WHERE id = $1 AND ($3::TEXT = '' OR (user_id = $2 AND recipient_role = $3))
		 RETURNING `+notificationColumns, id, ownerID, ownerRole,
	), n)
	if err != nil {
		return nil, notFound(err)
	}
	return n, nil
}

// MarkAllRead flags every unread notification of a recipient and returns how many changed.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, to model.Recipient) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE
		 WHERE user_id = $1 AND recipient_role = $2 AND is_read = FALSE`, to.UserID, to.Role)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteReadBefore removes read notifications created before cutoff.
func (r *NotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM notifications WHERE is_read = TRUE AND created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
