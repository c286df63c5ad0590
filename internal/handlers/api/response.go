package api

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"newsmarketplace/internal/db"
	"newsmarketplace/internal/models"
	"newsmarketplace/internal/moderation"
	"newsmarketplace/internal/validation"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorResponse{Error: message})
}

// writeError maps a service or store error onto its HTTP status. notFound is
// the message used for missing records.
func writeError(c fiber.Ctx, err error, notFound string) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "validation failed", Details: verr.Details})
	case errors.Is(err, db.ErrNotFound), errors.Is(err, db.ErrNotificationNotFound):
		return jsonError(c, fiber.StatusNotFound, notFound)
	case errors.Is(err, moderation.ErrForbidden):
		return jsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, moderation.ErrAlreadyApproved),
		errors.Is(err, moderation.ErrAlreadyRejected),
		errors.Is(err, moderation.ErrReasonRequired),
		errors.Is(err, moderation.ErrNotPending),
		errors.Is(err, moderation.ErrInvalidStatus),
		errors.Is(err, moderation.ErrIDsRequired),
		errors.Is(err, db.ErrInvalidColumn):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return jsonError(c, fiber.StatusInternalServerError, "internal server error")
}

var errInvalidID = errors.New("invalid id")

func paramID(c fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

func currentPrincipal(c fiber.Ctx) (*models.Principal, bool) {
	p, ok := c.Locals("user").(*models.Principal)
	return p, ok && p != nil
}
