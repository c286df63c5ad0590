package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsmarketplace/internal/email"
	"newsmarketplace/internal/models"
	"newsmarketplace/internal/testutil"
)

func call(t *testing.T, s *Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := s.App.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestSubmissionLifecycle(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	cfg := testConfig()
	templates, err := email.NewTemplates(cfg)
	require.NoError(t, err)
	notifier := email.NewNotifier(cfg, nil, database, email.NewService(cfg, nil), templates)

	s := New(cfg)
	s.RegisterRoutes(Deps{DB: database, Dispatcher: notifier})

	user := testutil.Token(t, cfg.JWTSecret, testutil.CreateTestUser(t, database, "writer@example.com"))
	admin := testutil.Token(t, cfg.JWTSecret,
		testutil.CreateTestAdmin(t, database, "mod@example.com", models.RoleAdmin, models.CareerKind.Permission))

	code, created := call(t, s, http.MethodPost, "/api/careers", user, map[string]any{
		"title":   "Staff Reporter",
		"company": "Daily Ledger",
		"type":    "full-time",
	})
	require.Equal(t, http.StatusCreated, code, created)
	assert.Equal(t, models.StatusPending, created["status"])
	id := int64(created["id"].(float64))

	code, body := call(t, s, http.MethodGet, "/api/careers/approved", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["items"])

	code, body = call(t, s, http.MethodPut, fmt.Sprintf("/api/careers/admin/%d/approve", id), admin,
		map[string]any{"admin_comments": "welcome aboard"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Career listing approved successfully", body["message"])

	code, body = call(t, s, http.MethodPut, fmt.Sprintf("/api/careers/admin/%d/approve", id), admin, nil)
	assert.Equal(t, http.StatusBadRequest, code, body)

	code, body = call(t, s, http.MethodGet, "/api/careers/approved?q=ledger", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["items"], 1)

	code, body = call(t, s, http.MethodGet, "/api/notifications/unread-count", user, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["count"])

	code, body = call(t, s, http.MethodPut, "/api/notifications/read-all", user, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["updated"])

	code, _ = call(t, s, http.MethodDelete, fmt.Sprintf("/api/careers/%d", id), user, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, s, http.MethodDelete, fmt.Sprintf("/api/careers/%d", id), admin, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = call(t, s, http.MethodGet, fmt.Sprintf("/api/careers/approved/%d", id), "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHealthz_Database(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	s := New(testConfig())
	s.RegisterRoutes(Deps{DB: database})

	code, body := call(t, s, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["database"])
}
