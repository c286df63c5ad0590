package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsmarketplace/internal/db"
	"newsmarketplace/internal/middleware"
	"newsmarketplace/internal/models"
)

type memNotifications struct {
	rows       []models.Notification
	lastUnread bool
	lastPage   db.PageRequest
}

func (m *memNotifications) ListNotifications(_ context.Context, userID int64, unreadOnly bool, page db.PageRequest) (*models.Page[models.Notification], error) {
	m.lastUnread = unreadOnly
	m.lastPage = page
	items := []models.Notification{}
	for _, n := range m.rows {
		if n.UserID == userID && (!unreadOnly || !n.IsRead) {
			items = append(items, n)
		}
	}
	return &models.Page[models.Notification]{Items: items, Pagination: db.NewPagination(page, len(items))}, nil
}

func (m *memNotifications) CountUnreadNotifications(_ context.Context, userID int64) (int, error) {
	n := 0
	for _, row := range m.rows {
		if row.UserID == userID && !row.IsRead {
			n++
		}
	}
	return n, nil
}

func (m *memNotifications) MarkNotificationRead(_ context.Context, userID, id int64) (*models.Notification, error) {
	for i := range m.rows {
		if m.rows[i].ID == id && m.rows[i].UserID == userID {
			m.rows[i].IsRead = true
			return &m.rows[i], nil
		}
	}
	return nil, db.ErrNotificationNotFound
}

func (m *memNotifications) MarkAllNotificationsRead(_ context.Context, userID int64) (int64, error) {
	var n int64
	for i := range m.rows {
		if m.rows[i].UserID == userID && !m.rows[i].IsRead {
			m.rows[i].IsRead = true
			n++
		}
	}
	return n, nil
}

func newNotificationsApp(store NotificationStore) *fiber.App {
	app := fiber.New()
	auth := middleware.NewAuthMiddleware(testSecret, "")
	NewNotificationHandler(store, Limits{Default: 20, Max: 50}).Register(app.Group("/api"), auth.RequireAuth)
	return app
}

func TestNotificationHandler(t *testing.T) {
	store := &memNotifications{rows: []models.Notification{
		{ID: 1, UserID: ownerID, Type: "career_approved", Title: "Career Listing Approved!"},
		{ID: 2, UserID: ownerID, Type: "career_rejected", Title: "Career Listing Review Update", IsRead: true},
		{ID: 3, UserID: strangerID, Type: "radio_approved", Title: "Radio Station Approved!"},
	}}
	app := newNotificationsApp(store)

	status, body := do(t, app, http.MethodGet, "/api/notifications?unread=true&limit=5", owner, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 1)
	assert.True(t, store.lastUnread)
	assert.Equal(t, db.PageRequest{Page: 1, Limit: 5}, store.lastPage)

	status, body = do(t, app, http.MethodGet, "/api/notifications", owner, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 2)
	assert.Equal(t, 20, store.lastPage.Limit)

	status, body = do(t, app, http.MethodGet, "/api/notifications/unread-count", owner, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])

	status, body = do(t, app, http.MethodPut, "/api/notifications/3/read", owner, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "notification not found", body["error"])

	status, body = do(t, app, http.MethodPut, "/api/notifications/1/read", owner, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["is_read"])

	status, body = do(t, app, http.MethodPut, "/api/notifications/read-all", stranger, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["updated"])

	status, _ = do(t, app, http.MethodGet, "/api/notifications", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

type failingNotifications struct{ memNotifications }

func (failingNotifications) CountUnreadNotifications(context.Context, int64) (int, error) {
	return 0, errors.New("connection reset")
}

func TestNotificationHandler_InternalError(t *testing.T) {
	app := newNotificationsApp(&failingNotifications{})

	status, body := do(t, app, http.MethodGet, "/api/notifications/unread-count", owner, "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body["error"])
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthz(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"database up", nil, http.StatusOK, "ok"},
		{"database down", errors.New("dial tcp: refused"), http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/healthz", NewHealthHandler(stubPinger{err: tt.err}).Healthz)

			status, body := do(t, app, http.MethodGet, "/healthz", nil, "")
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantBody, body["status"])
		})
	}
}
