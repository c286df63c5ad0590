package moderation

import (
	"errors"
	"testing"

	"newsmarketplace/internal/models"
)

func TestPolicy(t *testing.T) {
	kind := models.PodcasterKind
	owner := &models.Principal{ID: 7, Role: models.RoleUser}
	stranger := &models.Principal{ID: 8, Role: models.RoleUser}
	moderator := &models.Principal{ID: 3, Role: models.RoleAdmin, Permissions: []string{kind.Permission}}
	otherAdmin := &models.Principal{ID: 7, Role: models.RoleAdmin, Permissions: []string{"careers.manage"}}

	pending := &models.Moderation{Status: models.StatusPending, SubmittedBy: ptr(int64(7))}
	approved := &models.Moderation{Status: models.StatusApproved, SubmittedBy: ptr(int64(7))}

	tests := []struct {
		name     string
		p        *models.Principal
		m        *models.Moderation
		wantView error
		wantEdit error
	}{
		{"owner pending", owner, pending, nil, nil},
		{"owner approved", owner, approved, nil, ErrNotPending},
		{"stranger", stranger, pending, ErrForbidden, ErrForbidden},
		{"moderator approved", moderator, approved, nil, nil},
		{"admin without permission sharing the owner id", otherAdmin, pending, ErrForbidden, ErrForbidden},
		{"anonymous", nil, pending, ErrForbidden, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CanView(tt.p, kind, tt.m); !errors.Is(err, tt.wantView) {
				t.Errorf("CanView() = %v, want %v", err, tt.wantView)
			}
			if err := CanEdit(tt.p, kind, tt.m); !errors.Is(err, tt.wantEdit) {
				t.Errorf("CanEdit() = %v, want %v", err, tt.wantEdit)
			}
			if err := CanSoftDelete(tt.p, kind, tt.m); !errors.Is(err, tt.wantEdit) {
				t.Errorf("CanSoftDelete() = %v, want %v", err, tt.wantEdit)
			}
		})
	}
}

func TestCanModerate(t *testing.T) {
	kind := models.RadioKind
	if err := CanModerate(&models.Principal{Role: models.RoleSuperAdmin}, kind); err != nil {
		t.Errorf("super admin: %v", err)
	}
	if err := CanModerate(&models.Principal{Role: models.RoleAdmin, Permissions: []string{kind.Permission}}, kind); err != nil {
		t.Errorf("admin with permission: %v", err)
	}
	if err := CanModerate(&models.Principal{Role: models.RoleUser, Permissions: []string{kind.Permission}}, kind); !errors.Is(err, ErrForbidden) {
		t.Errorf("user: %v", err)
	}
	if err := CanModerate(nil, kind); !errors.Is(err, ErrForbidden) {
		t.Errorf("nil: %v", err)
	}
}
