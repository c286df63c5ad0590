package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsmarketplace/internal/db"
	"newsmarketplace/internal/middleware"
	"newsmarketplace/internal/models"
	"newsmarketplace/internal/moderation"
)

// professionalsQueries only records the listing queries it receives.
type professionalsQueries struct {
	lastWhere *db.Where
}

func (r *professionalsQueries) Get(context.Context, int64) (*models.RealEstateProfessional, error) {
	return nil, db.ErrNotFound
}

func (r *professionalsQueries) GetApproved(context.Context, int64) (*models.RealEstateProfessional, error) {
	return nil, db.ErrNotFound
}

func (r *professionalsQueries) Create(context.Context, *models.RealEstateProfessional) error {
	return nil
}

func (r *professionalsQueries) UpdateAttributes(context.Context, int64, map[string]any, string) (*models.RealEstateProfessional, error) {
	return nil, db.ErrNotFound
}

func (r *professionalsQueries) SaveModeration(context.Context, int64, *models.Moderation) (*models.RealEstateProfessional, error) {
	return nil, db.ErrNotFound
}

func (r *professionalsQueries) SoftDelete(context.Context, int64, string) error {
	return db.ErrNotFound
}

func (r *professionalsQueries) List(_ context.Context, where *db.Where, page db.PageRequest) (*models.Page[models.RealEstateProfessional], error) {
	r.lastWhere = where
	return &models.Page[models.RealEstateProfessional]{
		Items:      []models.RealEstateProfessional{},
		Pagination: db.NewPagination(page, 0),
	}, nil
}

func newProfessionalsApp(t *testing.T) (*fiber.App, *professionalsQueries) {
	t.Helper()
	store := &professionalsQueries{}
	svc := moderation.NewService[*models.RealEstateProfessional](models.RealEstateProfessionalKind, store, moderation.Options{
		Logger: slogDiscard(),
	})
	h := NewListingHandler[models.RealEstateProfessional](svc, store, Limits{Public: 12, Default: 10, Max: 50})

	app := fiber.New()
	h.Register(app.Group("/api"), middleware.NewAuthMiddleware(testSecret, ""))
	return app, store
}

func TestBoolFilters(t *testing.T) {
	app, store := newProfessionalsApp(t)

	status, _ := do(t, app, http.MethodGet, "/api/real-estate-professionals/approved?verified_tick=true&real_estate_agent=0&gender=female", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t,
		"is_active = true AND status = $1 AND gender = $2 AND real_estate_agent = $3 AND verified_tick = $4",
		store.lastWhere.SQL())
	assert.Equal(t, []any{models.StatusApproved, "female", false, true}, store.lastWhere.Args())
}

func TestBoolFilters_RejectMalformedValues(t *testing.T) {
	app, store := newProfessionalsApp(t)

	tests := []struct {
		name  string
		path  string
		param string
	}{
		{"public listing", "/api/real-estate-professionals/approved?verified_tick=maybe", "verified_tick"},
		{"admin listing", "/api/real-estate-professionals/admin?developer_employee=yes", "developer_employee"},
	}

	admin := &models.Principal{ID: 5, Role: models.RoleAdmin, Permissions: []string{models.RealEstateProfessionalKind.Permission}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store.lastWhere = nil
			status, body := do(t, app, http.MethodGet, tt.path, admin, "")
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "validation failed", body["error"])
			assert.Equal(t, []any{tt.param + " must be true or false"}, body["details"])
			assert.Nil(t, store.lastWhere, "malformed filter must not reach the store")
		})
	}
}
