package db

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/jackc/pgx/v5"

	"newsmarketplace/internal/models"
)

// Listing defaults.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100

	// defaultOrder breaks created_at ties on id so pages never overlap.
	defaultOrder = "created_at DESC, id DESC"
)

// PageRequest is a requested page before normalisation.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize coerces page to >= 1 and limit into (0, max]. A non-positive
// limit becomes def. Page is capped so that Offset cannot overflow.
func (p PageRequest) Normalize(def, max int) PageRequest {
	if max <= 0 {
		max = MaxPageLimit
	}
	if def <= 0 || def > max {
		def = min(DefaultPageLimit, max)
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = def
	}
	if p.Limit > max {
		p.Limit = max
	}
	p.Page = min(p.Page, math.MaxInt/p.Limit)
	return p
}

// Offset returns the row offset of the page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NewPagination computes the pagination block for a normalised page.
func NewPagination(p PageRequest, total int) models.Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return models.Pagination{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: pages,
	}
}

// Listing describes one paginated SELECT.
type Listing struct {
	Table   string
	Columns string
	Where   *Where
	OrderBy string // optional, defaults to created_at DESC, id DESC
	Page    PageRequest
}

// TxBeginner is satisfied by *pgxpool.Pool and pgx.Tx.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// List runs the count and page queries of l inside one read-only
// repeatable-read transaction, so both see the same snapshot. l.Page must
// already be normalised.
func List[T any](ctx context.Context, conn TxBeginner, l Listing) (*models.Page[T], error) {
	if err := checkColumn(l.Table); err != nil {
		return nil, err
	}
	where := l.Where
	if where == nil {
		var err error
		if where, err = BuildFilter(Filter{}); err != nil {
			return nil, err
		}
	}
	order := l.OrderBy
	if order == "" {
		order = defaultOrder
	}

	tx, err := conn.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("begin listing: %w", err)
	}
	defer tx.Rollback(ctx)

	var total int
	countSQL := `SELECT COUNT(*) FROM ` + l.Table + ` WHERE ` + where.SQL()
	if err := tx.QueryRow(ctx, countSQL, where.Args()...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count %s: %w", l.Table, err)
	}

	next := where.Next()
	pageSQL := `SELECT ` + l.Columns + ` FROM ` + l.Table +
		` WHERE ` + where.SQL() +
		` ORDER BY ` + order +
		` LIMIT $` + strconv.Itoa(next) + ` OFFSET $` + strconv.Itoa(next+1)
	args := append(append([]any{}, where.Args()...), l.Page.Limit, l.Page.Offset())

	rows, err := tx.Query(ctx, pageSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", l.Table, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", l.Table, err)
	}
	if items == nil {
		items = []T{}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit listing: %w", err)
	}

	return &models.Page[T]{
		Items:      items,
		Pagination: NewPagination(l.Page, total),
	}, nil
}
