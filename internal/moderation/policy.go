package moderation

import "newsmarketplace/internal/models"

// CanView reports whether p may read a record of kind regardless of its
// status: admins holding the kind permission, and the submitting user.
func CanView(p *models.Principal, kind models.Kind, m *models.Moderation) error {
	if p == nil {
		return ErrForbidden
	}
	if p.IsAdmin() {
		if p.Can(kind.Permission) {
			return nil
		}
		return ErrForbidden
	}
	if m.IsOwnedBy(p.ID) {
		return nil
	}
	return ErrForbidden
}

// CanEdit reports whether p may change the entity attributes of a record.
// Admins with the kind permission always may; the owner only while pending.
func CanEdit(p *models.Principal, kind models.Kind, m *models.Moderation) error {
	if err := CanView(p, kind, m); err != nil {
		return err
	}
	if p.IsAdmin() || m.IsPending() {
		return nil
	}
	return ErrNotPending
}

// CanSoftDelete follows the same rule as CanEdit.
func CanSoftDelete(p *models.Principal, kind models.Kind, m *models.Moderation) error {
	return CanEdit(p, kind, m)
}

// CanModerate reports whether p may approve, reject or create records of kind
// on behalf of the platform.
func CanModerate(p *models.Principal, kind models.Kind) error {
	if p.Can(kind.Permission) {
		return nil
	}
	return ErrForbidden
}
