package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hivedesk/helpdesk/internal/domain"
)

// UserNotification is a notification joined with one recipient's link,
// as listed in a user's inbox.
type UserNotification struct {
	domain.Notification
	RecipientRead bool
}

// NotificationRepository persists notification rows and recipient links.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *domain.Notification) error
	CreateRecipientLink(ctx context.Context, link *domain.RecipientLink) error
	ListForUser(ctx context.Context, userID string, limit, offset int) ([]UserNotification, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository constructs repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, notification *domain.Notification) error {
	const query = `
        INSERT INTO notifications (id, ticket_id, responsible_user_id, message, read, sent_at)
        VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := r.pool.Exec(ctx, query,
		notification.ID,
		notification.TicketID,
		notification.ResponsibleID,
		notification.Message,
		notification.Read,
		notification.SentAt,
	)
	return err
}

func (r *notificationRepository) CreateRecipientLink(ctx context.Context, link *domain.RecipientLink) error {
	const query = `
        INSERT INTO user_notifications (notification_id, user_id, read)
        VALUES ($1,$2,$3)`
	_, err := r.pool.Exec(ctx, query,
		link.NotificationID,
		link.UserID,
		link.Read,
	)
	return err
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID string, limit, offset int) ([]UserNotification, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT n.id, n.ticket_id, n.responsible_user_id, n.message, n.read, n.sent_at, un.read
        FROM notifications n
        JOIN user_notifications un ON un.notification_id = n.id
        WHERE un.user_id=$1
        ORDER BY n.sent_at DESC
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []UserNotification
	for rows.Next() {
		var item UserNotification
		if err := rows.Scan(
			&item.ID,
			&item.TicketID,
			&item.ResponsibleID,
			&item.Message,
			&item.Read,
			&item.SentAt,
			&item.RecipientRead,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, notificationID, userID string) error {
	const query = `
        UPDATE user_notifications SET read=TRUE
        WHERE notification_id=$1 AND user_id=$2`
	cmd, err := r.pool.Exec(ctx, query, notificationID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	const query = `
        SELECT COUNT(*) FROM user_notifications WHERE user_id=$1 AND read=FALSE`
	var count int64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
