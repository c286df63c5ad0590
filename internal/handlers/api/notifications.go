package api

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"newsmarketplace/internal/db"
	"newsmarketplace/internal/models"
)

// NotificationStore is the in-app notification storage. *db.DB satisfies it.
type NotificationStore interface {
	ListNotifications(ctx context.Context, userID int64, unreadOnly bool, page db.PageRequest) (*models.Page[models.Notification], error)
	CountUnreadNotifications(ctx context.Context, userID int64) (int, error)
	MarkNotificationRead(ctx context.Context, userID, id int64) (*models.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID int64) (int64, error)
}

// NotificationHandler serves the caller's in-app notifications.
type NotificationHandler struct {
	store  NotificationStore
	limits Limits
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(store NotificationStore, limits Limits) *NotificationHandler {
	return &NotificationHandler{store: store, limits: limits}
}

const notificationNotFound = "notification not found"

// List returns the caller's notifications, newest first. unread=true
// restricts to unread ones.
func (h *NotificationHandler) List(c fiber.Ctx) error {
	user, ok := currentPrincipal(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))
	page := db.PageRequest{
		Page:  fiber.Query[int](c, "page", 1),
		Limit: fiber.Query[int](c, "limit", 0),
	}.Normalize(h.limits.Default, h.limits.Max)

	notes, err := h.store.ListNotifications(c.Context(), user.ID, unreadOnly, page)
	if err != nil {
		return writeError(c, err, notificationNotFound)
	}
	return c.JSON(notes)
}

// UnreadCount returns the number of unread notifications.
func (h *NotificationHandler) UnreadCount(c fiber.Ctx) error {
	user, ok := currentPrincipal(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	n, err := h.store.CountUnreadNotifications(c.Context(), user.ID)
	if err != nil {
		return writeError(c, err, notificationNotFound)
	}
	return c.JSON(models.UnreadCountResponse{Count: n})
}

// MarkRead marks one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(c fiber.Ctx) error {
	user, ok := currentPrincipal(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	note, err := h.store.MarkNotificationRead(c.Context(), user.ID, id)
	if err != nil {
		return writeError(c, err, notificationNotFound)
	}
	return c.JSON(note)
}

// MarkAllRead marks every notification of the caller as read.
func (h *NotificationHandler) MarkAllRead(c fiber.Ctx) error {
	user, ok := currentPrincipal(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	n, err := h.store.MarkAllNotificationsRead(c.Context(), user.ID)
	if err != nil {
		return writeError(c, err, notificationNotFound)
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read", "updated": n})
}

// Register mounts the notification routes on r behind requireUser.
func (h *NotificationHandler) Register(r fiber.Router, requireUser fiber.Handler) {
	g := r.Group("/notifications", requireUser)
	g.Get("/", h.List)
	g.Get("/unread-count", h.UnreadCount)
	g.Put("/read-all", h.MarkAllRead)
	g.Put("/:id/read", h.MarkRead)
}
