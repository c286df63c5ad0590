package moderation

import (
	"strings"
	"time"

	"newsmarketplace/internal/models"
)

// ApplyApproval returns m moved to approved by adminID. It is legal from
// pending and rejected. The rejected trail is cleared; comments replace the
// admin comments only when non-blank.
func ApplyApproval(m models.Moderation, adminID int64, comments string, now time.Time) (models.Moderation, error) {
	if m.Status == models.StatusApproved {
		return m, ErrAlreadyApproved
	}

	m.Status = models.StatusApproved
	m.ApprovedAt = &now
	m.ApprovedBy = &adminID
	m.RejectedAt = nil
	m.RejectedBy = nil
	m.RejectionReason = nil
	setComments(&m, comments)
	return m, nil
}

// ApplyRejection returns m moved to rejected by adminID with the trimmed
// reason. It is legal from pending and approved. The approved trail is
// cleared.
func ApplyRejection(m models.Moderation, adminID int64, reason, comments string, now time.Time) (models.Moderation, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return m, ErrReasonRequired
	}
	if m.Status == models.StatusRejected {
		return m, ErrAlreadyRejected
	}

	m.Status = models.StatusRejected
	m.RejectedAt = &now
	m.RejectedBy = &adminID
	m.RejectionReason = &reason
	m.ApprovedAt = nil
	m.ApprovedBy = nil
	setComments(&m, comments)
	return m, nil
}

// InitialForUser returns the moderation record of a new user submission.
func InitialForUser(userID int64) models.Moderation {
	return models.Moderation{
		Status:      models.StatusPending,
		SubmittedBy: &userID,
		IsActive:    true,
	}
}

// InitialForAdmin returns the moderation record of a record created by an
// admin. Admins may skip review by creating it approved or rejected directly;
// an empty status means pending.
func InitialForAdmin(adminID int64, status, reason, comments string, now time.Time) (models.Moderation, error) {
	m := models.Moderation{
		Status:           models.StatusPending,
		SubmittedByAdmin: &adminID,
		IsActive:         true,
	}
	setComments(&m, comments)

	switch status {
	case "", models.StatusPending:
		return m, nil
	case models.StatusApproved:
		return ApplyApproval(m, adminID, "", now)
	case models.StatusRejected:
		return ApplyRejection(m, adminID, reason, "", now)
	}
	return m, ErrInvalidStatus
}

func setComments(m *models.Moderation, comments string) {
	if c := strings.TrimSpace(comments); c != "" {
		m.AdminComments = &c
	}
}
