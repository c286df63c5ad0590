package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"newsmarketplace/internal/models"
)

const notificationColumns = `id, user_id, type, title, message, related_id, is_read, created_at, updated_at`

// CreateNotification inserts an in-app notification and fills in its id and
// timestamps.
func (d *DB) CreateNotification(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO user_notifications (user_id, type, title, message, related_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_read, created_at, updated_at
	`
	err := d.Pool.QueryRow(ctx, query, n.UserID, n.Type, n.Title, n.Message, n.RelatedID).
		Scan(&n.ID, &n.IsRead, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListNotifications returns one page of a user's notifications, newest first.
func (d *DB) ListNotifications(ctx context.Context, userID int64, unreadOnly bool, page PageRequest) (*models.Page[models.Notification], error) {
	where, err := BuildFilter(Filter{Scope: ScopeAll, Exact: map[string]any{"user_id": userID}})
	if err != nil {
		return nil, err
	}
	if unreadOnly {
		if err := where.Eq("is_read", false); err != nil {
			return nil, err
		}
	}
	return List[models.Notification](ctx, d.Pool, Listing{
		Table:   "user_notifications",
		Columns: notificationColumns,
		Where:   where,
		Page:    page,
	})
}

// CountUnreadNotifications returns the number of unread notifications of a user.
func (d *DB) CountUnreadNotifications(ctx context.Context, userID int64) (int, error) {
	var count int
	err := d.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_notifications WHERE user_id = $1 AND is_read = false`,
		userID,
	).Scan(&count)
	return count, err
}

// MarkNotificationRead marks one of the user's notifications as read.
func (d *DB) MarkNotificationRead(ctx context.Context, userID, id int64) (*models.Notification, error) {
	query := `
		UPDATE user_notifications SET is_read = true, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + notificationColumns

	rows, err := d.Pool.Query(ctx, query, id, userID)
	if err != nil {
		return nil, err
	}
	n, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Notification])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// MarkAllNotificationsRead marks every unread notification of the user as
// read and returns how many changed.
func (d *DB) MarkAllNotificationsRead(ctx context.Context, userID int64) (int64, error) {
	tag, err := d.Pool.Exec(ctx,
		`UPDATE user_notifications SET is_read = true, updated_at = NOW() WHERE user_id = $1 AND is_read = false`,
		userID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
