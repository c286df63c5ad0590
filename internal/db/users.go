package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"newsmarketplace/internal/models"
)

// GetUserByID retrieves an end-user by id.
func (d *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, email, first_name, last_name, created_at FROM users WHERE id = $1`

	rows, err := d.Pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.User])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts an end-user and fills in its id.
func (d *DB) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, first_name, last_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return d.Pool.QueryRow(ctx, query, user.Email, user.FirstName, user.LastName).
		Scan(&user.ID, &user.CreatedAt)
}

// CreateAdmin inserts an admin account and returns its id.
func (d *DB) CreateAdmin(ctx context.Context, email, name, role string) (int64, error) {
	var id int64
	err := d.Pool.QueryRow(ctx, `
		INSERT INTO admins (email, name, role)
		VALUES ($1, $2, $3)
		RETURNING id
	`, email, name, role).Scan(&id)
	return id, err
}

// GetAdminEmails returns the email addresses of every admin account.
func (d *DB) GetAdminEmails(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT email FROM admins WHERE email != '' ORDER BY email`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
