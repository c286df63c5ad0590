package api

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"newsmarketplace/internal/db"
	"newsmarketplace/internal/models"
	"newsmarketplace/internal/moderation"
	"newsmarketplace/internal/validation"
)

const dateLayout = "2006-01-02"

// Reader serves the read side of one kind. *db.Store satisfies it.
type Reader[T any, PT interface {
	*T
	models.Entity
}] interface {
	List(ctx context.Context, where *db.Where, page db.PageRequest) (*models.Page[T], error)
	GetApproved(ctx context.Context, id int64) (PT, error)
}

// Limits are the page sizes of one kind.
type Limits struct {
	Public  int // page size of the public approved listing
	Default int // page size of the owner and admin listings
	Max     int
}

// ListingHandler serves the JSON API of one moderated kind.
type ListingHandler[T any, PT interface {
	*T
	models.Entity
}] struct {
	kind   models.Kind
	svc    *moderation.Service[PT]
	reader Reader[T, PT]
	limits Limits
}

// NewListingHandler creates the handler of svc's kind.
func NewListingHandler[T any, PT interface {
	*T
	models.Entity
}](svc *moderation.Service[PT], reader Reader[T, PT], limits Limits) *ListingHandler[T, PT] {
	return &ListingHandler[T, PT]{
		kind:   svc.Kind(),
		svc:    svc,
		reader: reader,
		limits: limits,
	}
}

func (h *ListingHandler[T, PT]) notFound() string {
	return h.kind.Label + " not found"
}

func (h *ListingHandler[T, PT]) page(c fiber.Ctx, def int) db.PageRequest {
	return db.PageRequest{
		Page:  fiber.Query[int](c, "page", 1),
		Limit: fiber.Query[int](c, "limit", 0),
	}.Normalize(def, h.limits.Max)
}

// applyFilters adds the kind's per-field query parameters to w.
func (h *ListingHandler[T, PT]) applyFilters(c fiber.Ctx, w *db.Where) error {
	for _, param := range slices.Sorted(maps.Keys(h.kind.ExactFilters)) {
		if v := strings.TrimSpace(c.Query(param)); v != "" {
			if err := w.Eq(h.kind.ExactFilters[param], v); err != nil {
				return err
			}
		}
	}
	for _, param := range slices.Sorted(maps.Keys(h.kind.BoolFilters)) {
		v := strings.TrimSpace(c.Query(param))
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return validation.NewError(param + " must be true or false")
		}
		if err := w.Eq(h.kind.BoolFilters[param], b); err != nil {
			return err
		}
	}
	for _, param := range slices.Sorted(maps.Keys(h.kind.ContainsFilters)) {
		if err := w.Contains(h.kind.ContainsFilters[param], c.Query(param)); err != nil {
			return err
		}
	}
	return nil
}

// statusFilter returns the status query parameter as an exact filter.
func statusFilter(c fiber.Ctx, exact map[string]any) error {
	status := strings.TrimSpace(c.Query("status"))
	if status == "" || status == "all" {
		return nil
	}
	if !models.ValidStatus(status) {
		return moderation.ErrInvalidStatus
	}
	exact["status"] = status
	return nil
}

// dateRange restricts created_at to [date_from, date_to], both whole days.
func dateRange(c fiber.Ctx, w *db.Where) error {
	if v := c.Query("date_from"); v != "" {
		from, err := time.Parse(dateLayout, v)
		if err != nil {
			return validation.NewError("date_from must be a date in YYYY-MM-DD format")
		}
		if err := w.Since("created_at", from); err != nil {
			return err
		}
	}
	if v := c.Query("date_to"); v != "" {
		to, err := time.Parse(dateLayout, v)
		if err != nil {
			return validation.NewError("date_to must be a date in YYYY-MM-DD format")
		}
		if err := w.Before("created_at", to.AddDate(0, 0, 1)); err != nil {
			return err
		}
	}
	return nil
}

func (h *ListingHandler[T, PT]) list(c fiber.Ctx, f db.Filter, def int, dates bool) error {
	w, err := db.BuildFilter(f)
	if err != nil {
		return writeError(c, err, h.notFound())
	}
	if err := h.applyFilters(c, w); err != nil {
		return writeError(c, err, h.notFound())
	}
	if dates {
		if err := dateRange(c, w); err != nil {
			return writeError(c, err, h.notFound())
		}
	}

	page, err := h.reader.List(c.Context(), w, h.page(c, def))
	if err != nil {
		return writeError(c, err, h.notFound())
	}
	return c.JSON(page)
}

// ListApproved returns approved, active records with filters and pagination.
func (h *ListingHandler[T, PT]) ListApproved(c fiber.Ctx) error {
	return h.list(c, db.Filter{
		Scope:        db.ScopeActive,
		Exact:        map[string]any{"status": models.StatusApproved},
		SearchFields: h.kind.SearchFields,
		SearchTerm:   c.Query("q"),
	}, h.limits.Public, false)
}

// GetApproved returns one approved, active record.
func (h *ListingHandler[T, PT]) GetApproved(c fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	e, err := h.reader.GetApproved(c.Context(), id)
	if err != nil {
		return writeError(c, err, h.notFound())
	}
	return c.JSON(e)
}

// ListMine returns the caller's own active submissions in any status.
func (h *ListingHandler[T, PT]) ListMine(c fiber.Ctx) error {
	user, ok := currentPrincipal(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	exact := map[string]any{"submitted_by": user.ID}
	if err := statusFilter(c, exact); err != nil {
		return writeError(c, err, h.notFound())
	}
	return h.list(c, db.Filter{
		Scope:        db.ScopeActive,
		Exact:        exact,
		SearchFields: h.kind.SearchFields,
		SearchTerm:   c.Query("q"),
	}, h.limits.Default, true)
}

// ListAdmin returns every record of the kind. is_active selects active
// (default), inactive ("false") or all rows.
func (h *ListingHandler[T, PT]) ListAdmin(c fiber.Ctx) error {
	admin, ok := currentPrincipal(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if err := moderation.CanModerate(admin, h.kind); err != nil {
		return writeError(c, err, h.notFound())
	}

	exact := map[string]any{}
	if err := statusFilter(c, exact); err != nil {
		return writeError(c, err, h.notFound())
	}
	return h.list(c, db.Filter{
		Scope:        db.ParseScope(c.Query("is_active")),
		Exact:        exact,
		SearchFields: h.kind.SearchFields,
		SearchTerm:   c.Query("q"),
	}, h.limits.Default, true)
}

func decodeEntity[T any, PT interface {
	*T
	models.Entity
}](body []byte) (PT, error) {
	e := PT(new(T))
	if err := json.Unmarshal(body, e); err != nil {
		return nil, validation.NewError("invalid request body")
	}
	return e, nil
}

// Create stores a user submission as pending.
func (h *ListingHandler[T, PT]) Create(c fiber.Ctx) error {
	user, ok := currentPrincipal(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	e, err := decodeEntity[T, PT](c.Body())
	if err != nil {
		return writeError(c, err, h.notFound())
	}
	created, err := h.svc.Create(c.Context(), user, e)
	if err != nil {
		return writeError(c, err, h.notFound())
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

type adminCreateRequest struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason"`
	AdminComments   string `json:"admin_comments"`
}

// CreateAsAdmin stores a record on behalf of the platform in any initial status.
func (h *ListingHandler[T, PT]) CreateAsAdmin(c fiber.Ctx) error {
	admin, ok := currentPrincipal(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req adminCreateRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	e, err := decodeEntity[T, PT](c.Body())
	if err != nil {
		return writeError(c, err, h.notFound())
	}

	created, err := h.svc.CreateAsAdmin(c.Context(), admin, e, req.Status, req.RejectionReason, req.AdminComments)
	if err != nil {
		return writeError(c, err, h.notFound())
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

type decisionRequest struct {
	RejectionReason string  `json:"rejection_reason"`
	AdminComments   string  `json:"admin_comments"`
	IDs             []int64 `json:"ids"`
}

func parseDecision(c fiber.Ctx) (decisionRequest, error) {
	var req decisionRequest
	if len(c.Body()) == 0 {
		return req, nil
	}
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return req, validation.NewError("invalid request body")
	}
	return req, nil
}

type decisionResponse struct {
	Message string `json:"message"`
	Item    any    `json:"item"`
}

// Approve approves one record.
func (h *ListingHandler[T, PT]) Approve(c fiber.Ctx) error {
	admin, ok := currentPrincipal(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	req, err := parseDecision(c)
	if err != nil {
		return writeError(c, err, h.notFound())
	}

	e, err := h.svc.Approve(c.Context(), admin, id, req.AdminComments)
	if err != nil {
		return writeError(c, err, h.notFound())
	}
	return c.JSON(decisionResponse{Message: h.kind.Label + " approved successfully", Item: e})
}

// Reject rejects one record. rejection_reason is required.
func (h *ListingHandler[T, PT]) Reject(c fiber.Ctx) error {
	admin, ok := currentPrincipal(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	req, err := parseDecision(c)
	if err != nil {
		return writeError(c, err, h.notFound())
	}

	e, err := h.svc.Reject(c.Context(), admin, id, req.RejectionReason, req.AdminComments)
	if err != nil {
		return writeError(c, err, h.notFound())
	}
	return c.JSON(decisionResponse{Message: h.kind.Label + " rejected successfully", Item: e})
}

func bulkResponse[E any](verb string, kind models.Kind, total int, r *models.BulkResult[E]) models.BulkResponse[E] {
	n := len(r.Succeeded)
	resp := models.BulkResponse[E]{
		Message:   fmt.Sprintf("%d of %d %s records %s", n, total, strings.ToLower(kind.Label), verb),
		Succeeded: n,
		Items:     r.Succeeded,
		Errors:    r.Errors,
	}
	switch verb {
	case models.StatusApproved:
		resp.Approved = &n
	case models.StatusRejected:
		resp.Rejected = &n
	}
	return resp
}

// BulkApprove approves every id in the body independently.
func (h *ListingHandler[T, PT]) BulkApprove(c fiber.Ctx) error {
	admin, ok := currentPrincipal(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	req, err := parseDecision(c)
	if err != nil {
		return writeError(c, err, h.notFound())
	}

	result, err := h.svc.BulkApprove(c.Context(), admin, req.IDs)
	if err != nil {
		return writeError(c, err, h.notFound())
	}
	return c.JSON(bulkResponse("approved", h.kind, len(req.IDs), result))
}

// BulkReject rejects every id in the body with the same reason.
func (h *ListingHandler[T, PT]) BulkReject(c fiber.Ctx) error {
	admin, ok := currentPrincipal(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	req, err := parseDecision(c)
	if err != nil {
		return writeError(c, err, h.notFound())
	}

	result, err := h.svc.BulkReject(c.Context(), admin, req.IDs, req.RejectionReason, req.AdminComments)
	if err != nil {
		return writeError(c, err, h.notFound())
	}
	return c.JSON(bulkResponse("rejected", h.kind, len(req.IDs), result))
}

// Get returns one record of any status to its owner or an admin.
func (h *ListingHandler[T, PT]) Get(c fiber.Ctx) error {
	actor, ok := currentPrincipal(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	e, err := h.svc.Get(c.Context(), actor, id)
	if err != nil {
		return writeError(c, err, h.notFound())
	}
	return c.JSON(e)
}

// Update edits the entity fields of a record. Owners may only edit while
// the record is pending.
func (h *ListingHandler[T, PT]) Update(c fiber.Ctx) error {
	actor, ok := currentPrincipal(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	body := c.Body()
	e, err := h.svc.Update(c.Context(), actor, id, func(e PT) error {
		if err := json.Unmarshal(body, e); err != nil {
			return validation.NewError("invalid request body")
		}
		return nil
	})
	if err != nil {
		return writeError(c, err, h.notFound())
	}
	return c.JSON(decisionResponse{Message: h.kind.Label + " updated successfully", Item: e})
}

// Delete soft-deletes a record.
func (h *ListingHandler[T, PT]) Delete(c fiber.Ctx) error {
	actor, ok := currentPrincipal(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.svc.SoftDelete(c.Context(), actor, id); err != nil {
		return writeError(c, err, h.notFound())
	}
	return c.JSON(fiber.Map{"message": h.kind.Label + " deleted successfully"})
}

// Register mounts the kind's routes on r. Static segments are registered
// before the :id routes so they take precedence.
func (h *ListingHandler[T, PT]) Register(r fiber.Router, auth Authenticator) {
	g := r.Group("/" + h.kind.Slug)

	g.Get("/approved", h.ListApproved)
	g.Get("/approved/:id", h.GetApproved)

	g.Get("/my", auth.RequireAuth, h.ListMine)
	g.Post("/", auth.RequireAuth, h.Create)

	g.Get("/admin", auth.RequireAdmin, h.ListAdmin)
	g.Post("/admin", auth.RequireAdmin, h.CreateAsAdmin)
	g.Put("/admin/:id/approve", auth.RequireAdmin, h.Approve)
	g.Put("/admin/:id/reject", auth.RequireAdmin, h.Reject)
	g.Put("/bulk-approve", auth.RequireAdmin, h.BulkApprove)
	g.Put("/bulk-reject", auth.RequireAdmin, h.BulkReject)

	g.Get("/:id", auth.RequireAny, h.Get)
	g.Put("/:id", auth.RequireAny, h.Update)
	g.Delete("/:id", auth.RequireAny, h.Delete)
}

// Authenticator provides the route guards. *middleware.AuthMiddleware
// satisfies it.
type Authenticator interface {
	RequireAuth(c fiber.Ctx) error
	RequireAdmin(c fiber.Ctx) error
	RequireAny(c fiber.Ctx) error
}
