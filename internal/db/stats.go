package db

import (
	"context"
	"fmt"

	"newsmarketplace/internal/models"
)

// StatusCounts maps a moderation status to the number of active records in it.
type StatusCounts map[string]int

// CountByStatus returns the active records of a kind grouped by status.
func (d *DB) CountByStatus(ctx context.Context, kind models.Kind) (StatusCounts, error) {
	if err := checkColumn(kind.Table); err != nil {
		return nil, err
	}
	query := `SELECT status, COUNT(*) FROM ` + kind.Table + ` WHERE is_active = true GROUP BY status`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count %s by status: %w", kind.Table, err)
	}
	defer rows.Close()

	counts := StatusCounts{
		models.StatusPending:  0,
		models.StatusApproved: 0,
		models.StatusRejected: 0,
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

// GetUserCount returns the total number of end-users.
func (d *DB) GetUserCount(ctx context.Context) (int, error) {
	var count int
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// GetUnreadNotificationCount returns the number of unread notifications across all users.
func (d *DB) GetUnreadNotificationCount(ctx context.Context) (int, error) {
	var count int
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM user_notifications WHERE is_read = false`).Scan(&count)
	return count, err
}
