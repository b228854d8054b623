package sqlite

import (
	"context"
	"database/sql"

	"pet-care-tracker/internal/domain/notifications"
)

type NotificationsRepo struct {
	db *sql.DB
}

func NewNotificationsRepo(db *sql.DB) *NotificationsRepo {
	return &NotificationsRepo{db: db}
}

func (r *NotificationsRepo) Create(ctx context.Context, n notifications.Notification) error {
	read := 0
	if n.Read {
		read = 1
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, type, title, message, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, read, encodeTime(n.CreatedAt),
	)
	return err
}

func (r *NotificationsRepo) ListByUser(ctx context.Context, userID string) ([]notifications.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, type, title, message, read, created_at
		FROM notifications WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []notifications.Notification
	for rows.Next() {
		var n notifications.Notification
		var read int
		var createdAt string
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &read, &createdAt); err != nil {
			return nil, err
		}
		n.Read = read != 0
		n.CreatedAt = decodeTime(createdAt)
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationsRepo) MarkRead(ctx context.Context, notificationID, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET read = 1 WHERE id = ? AND user_id = ?`,
		notificationID, userID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notifications.ErrNotFound
	}
	return nil
}
