package db

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"newsmarketplace/internal/models"
)

// Store persists one moderated kind. T is the entity struct, PT its pointer,
// which carries the models.Entity methods.
type Store[T any, PT interface {
	*T
	models.Entity
}] struct {
	db   *DB
	kind models.Kind
	cols string
}

// NewStore returns the store for kind. The kind's table and columns must be
// plain identifiers; they are interpolated into SQL.
func NewStore[T any, PT interface {
	*T
	models.Entity
}](d *DB, kind models.Kind) *Store[T, PT] {
	return &Store[T, PT]{db: d, kind: kind, cols: kind.SelectColumns()}
}

// Kind returns the kind this store persists.
func (s *Store[T, PT]) Kind() models.Kind {
	return s.kind
}

func (s *Store[T, PT]) one(ctx context.Context, sql string, args ...any) (PT, error) {
	rows, err := s.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	e, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return PT(e), nil
}

// Get retrieves a record by id regardless of status or is_active.
func (s *Store[T, PT]) Get(ctx context.Context, id int64) (PT, error) {
	query := `SELECT ` + s.cols + ` FROM ` + s.kind.Table + ` WHERE id = $1`
	return s.one(ctx, query, id)
}

// GetApproved retrieves a record only if it is approved and active.
func (s *Store[T, PT]) GetApproved(ctx context.Context, id int64) (PT, error) {
	query := `SELECT ` + s.cols + ` FROM ` + s.kind.Table + `
		WHERE id = $1 AND status = $2 AND is_active = true`
	return s.one(ctx, query, id, models.StatusApproved)
}

// Create inserts e with its moderation fields and entity attributes and
// refreshes e from the inserted row.
func (s *Store[T, PT]) Create(ctx context.Context, e PT) error {
	m := e.Record()
	args := pgx.NamedArgs{
		"status":             m.Status,
		"submitted_by":       m.SubmittedBy,
		"submitted_by_admin": m.SubmittedByAdmin,
		"approved_at":        m.ApprovedAt,
		"approved_by":        m.ApprovedBy,
		"rejected_at":        m.RejectedAt,
		"rejected_by":        m.RejectedBy,
		"rejection_reason":   m.RejectionReason,
		"admin_comments":     m.AdminComments,
	}
	for col, v := range e.Attributes() {
		args[col] = v
	}

	cols := make([]string, 0, len(args))
	for col := range args {
		if err := checkColumn(col); err != nil {
			return err
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	query := `INSERT INTO ` + s.kind.Table + ` (` + strings.Join(cols, ", ") + `)
		VALUES (@` + strings.Join(cols, ", @") + `)
		RETURNING ` + s.cols

	created, err := s.one(ctx, query, args)
	if err != nil {
		return fmt.Errorf("insert %s: %w", s.kind.Name, err)
	}
	*e = *created
	return nil
}

// UpdateAttributes overwrites the entity-specific columns of a record.
// Moderation fields are never touched here. A non-empty status makes the
// write conditional on the row still being in that status; a row that has
// moved on yields ErrNotFound.
func (s *Store[T, PT]) UpdateAttributes(ctx context.Context, id int64, attrs map[string]any, status string) (PT, error) {
	if len(attrs) == 0 {
		return s.Get(ctx, id)
	}

	args := pgx.NamedArgs{"id": id}
	cols := make([]string, 0, len(attrs))
	for col, v := range attrs {
		if err := checkColumn(col); err != nil {
			return nil, err
		}
		cols = append(cols, col)
		args[col] = v
	}
	sort.Strings(cols)

	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = col + ` = @` + col
	}

	where := `id = @id`
	if status != "" {
		where += ` AND status = @only_status`
		args["only_status"] = status
	}

	query := `UPDATE ` + s.kind.Table + `
		SET ` + strings.Join(sets, ", ") + `, updated_at = NOW()
		WHERE ` + where + `
		RETURNING ` + s.cols
	return s.one(ctx, query, args)
}

// SaveModeration persists the moderation fields of m for record id in a
// single UPDATE. Concurrent writers race at row level; the last one wins.
func (s *Store[T, PT]) SaveModeration(ctx context.Context, id int64, m *models.Moderation) (PT, error) {
	query := `UPDATE ` + s.kind.Table + `
		SET status = @status,
			approved_at = @approved_at,
			approved_by = @approved_by,
			rejected_at = @rejected_at,
			rejected_by = @rejected_by,
			rejection_reason = @rejection_reason,
			admin_comments = @admin_comments,
			updated_at = NOW()
		WHERE id = @id
		RETURNING ` + s.cols

	return s.one(ctx, query, pgx.NamedArgs{
		"id":               id,
		"status":           m.Status,
		"approved_at":      m.ApprovedAt,
		"approved_by":      m.ApprovedBy,
		"rejected_at":      m.RejectedAt,
		"rejected_by":      m.RejectedBy,
		"rejection_reason": m.RejectionReason,
		"admin_comments":   m.AdminComments,
	})
}

// SoftDelete hides a record from every listing by clearing is_active. A
// non-empty status is checked in the same statement, as in UpdateAttributes.
func (s *Store[T, PT]) SoftDelete(ctx context.Context, id int64, status string) error {
	query := `UPDATE ` + s.kind.Table + ` SET is_active = false, updated_at = NOW() WHERE id = $1`
	args := []any{id}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	tag, err := s.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of records matching where. page must already be
// normalised.
func (s *Store[T, PT]) List(ctx context.Context, where *Where, page PageRequest) (*models.Page[T], error) {
	return List[T](ctx, s.db.Pool, Listing{
		Table:   s.kind.Table,
		Columns: s.cols,
		Where:   where,
		Page:    page,
	})
}
