package models

import "time"

// Moderation status constants.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidStatus reports whether s is one of the moderation statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ModerationColumns is the column list shared by every moderated table.
var ModerationColumns = []string{
	"id", "status", "submitted_by", "submitted_by_admin", "is_active",
	"approved_at", "approved_by", "rejected_at", "rejected_by",
	"rejection_reason", "admin_comments", "created_at", "updated_at",
}

// Moderation is the lifecycle and audit record embedded in every moderated entity.
// Only one of the approved trail and the rejected trail is ever set.
type Moderation struct {
	ID               int64      `db:"id" json:"id"`
	Status           string     `db:"status" json:"status"`
	SubmittedBy      *int64     `db:"submitted_by" json:"submitted_by"`
	SubmittedByAdmin *int64     `db:"submitted_by_admin" json:"submitted_by_admin"`
	IsActive         bool       `db:"is_active" json:"is_active"`
	ApprovedAt       *time.Time `db:"approved_at" json:"approved_at"`
	ApprovedBy       *int64     `db:"approved_by" json:"approved_by"`
	RejectedAt       *time.Time `db:"rejected_at" json:"rejected_at"`
	RejectedBy       *int64     `db:"rejected_by" json:"rejected_by"`
	RejectionReason  *string    `db:"rejection_reason" json:"rejection_reason"`
	AdminComments    *string    `db:"admin_comments" json:"admin_comments"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// Record returns the moderation record itself. Entities embedding Moderation
// inherit it, which is how generic code reaches the shared fields.
func (m *Moderation) Record() *Moderation {
	return m
}

// IsPending returns true if the entity is awaiting review.
func (m *Moderation) IsPending() bool {
	return m.Status == StatusPending
}

// IsOwnedBy returns true if the given end-user submitted the entity.
func (m *Moderation) IsOwnedBy(userID int64) bool {
	return m.SubmittedBy != nil && *m.SubmittedBy == userID
}

// Entity is implemented by every moderated directory listing.
type Entity interface {
	Record() *Moderation
	// DisplayName is the human readable name used in notifications.
	DisplayName() string
	// Attributes returns the entity-specific writable columns and their values.
	Attributes() map[string]any
}
