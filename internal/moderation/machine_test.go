package moderation

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"newsmarketplace/internal/models"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func TestApplyApproval(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantErr error
	}{
		{"from pending", models.StatusPending, nil},
		{"from rejected", models.StatusRejected, nil},
		{"from approved", models.StatusApproved, ErrAlreadyApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := models.Moderation{
				ID:              1,
				Status:          tt.status,
				RejectedAt:      ptr(testNow.Add(-time.Hour)),
				RejectedBy:      ptr(int64(2)),
				RejectionReason: ptr("spam"),
			}
			got, err := ApplyApproval(in, 3, "looks good", testNow)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ApplyApproval() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if !reflect.DeepEqual(got, in) {
					t.Errorf("failed transition changed the record: %+v", got)
				}
				return
			}
			if got.Status != models.StatusApproved {
				t.Errorf("Status = %q", got.Status)
			}
			if got.ApprovedBy == nil || *got.ApprovedBy != 3 || got.ApprovedAt == nil || !got.ApprovedAt.Equal(testNow) {
				t.Errorf("approved trail = %v %v", got.ApprovedBy, got.ApprovedAt)
			}
			if got.RejectedAt != nil || got.RejectedBy != nil || got.RejectionReason != nil {
				t.Error("rejected trail should be cleared")
			}
			if got.AdminComments == nil || *got.AdminComments != "looks good" {
				t.Errorf("AdminComments = %v", got.AdminComments)
			}
		})
	}
}

func TestApplyApprovalKeepsCommentsWhenBlank(t *testing.T) {
	in := models.Moderation{Status: models.StatusPending, AdminComments: ptr("earlier note")}
	got, err := ApplyApproval(in, 3, "  ", testNow)
	if err != nil {
		t.Fatal(err)
	}
	if got.AdminComments == nil || *got.AdminComments != "earlier note" {
		t.Errorf("AdminComments = %v, want earlier note", got.AdminComments)
	}
}

func TestApplyRejection(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		reason  string
		wantErr error
	}{
		{"from pending", models.StatusPending, "low quality", nil},
		{"from approved", models.StatusApproved, "outdated", nil},
		{"from rejected", models.StatusRejected, "again", ErrAlreadyRejected},
		{"blank reason", models.StatusPending, "   ", ErrReasonRequired},
		{"empty reason on rejected", models.StatusRejected, "", ErrReasonRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := models.Moderation{
				Status:     tt.status,
				ApprovedAt: ptr(testNow.Add(-time.Hour)),
				ApprovedBy: ptr(int64(5)),
			}
			got, err := ApplyRejection(in, 3, tt.reason, "", testNow)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ApplyRejection() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if !reflect.DeepEqual(got, in) {
					t.Errorf("failed transition changed the record: %+v", got)
				}
				return
			}
			if got.ApprovedAt != nil || got.ApprovedBy != nil {
				t.Error("approved trail should be cleared")
			}
			if got.RejectedBy == nil || *got.RejectedBy != 3 {
				t.Errorf("RejectedBy = %v", got.RejectedBy)
			}
		})
	}
}

func TestRejectTrimsReason(t *testing.T) {
	got, err := ApplyRejection(models.Moderation{Status: models.StatusPending}, 3, "  low quality \n", "", testNow)
	if err != nil {
		t.Fatal(err)
	}
	if *got.RejectionReason != "low quality" {
		t.Errorf("RejectionReason = %q", *got.RejectionReason)
	}
}

func TestAlternatingTransitionsKeepTrailsExclusive(t *testing.T) {
	m := models.Moderation{Status: models.StatusPending}
	var err error

	for i := 0; i < 6; i++ {
		at := testNow.Add(time.Duration(i) * time.Minute)
		if i%2 == 0 {
			m, err = ApplyApproval(m, int64(i+1), "", at)
		} else {
			m, err = ApplyRejection(m, int64(i+1), "reason", "", at)
		}
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}

		approvedSet := m.ApprovedAt != nil && m.ApprovedBy != nil
		approvedClear := m.ApprovedAt == nil && m.ApprovedBy == nil
		rejectedSet := m.RejectedAt != nil && m.RejectedBy != nil && m.RejectionReason != nil
		rejectedClear := m.RejectedAt == nil && m.RejectedBy == nil && m.RejectionReason == nil

		switch m.Status {
		case models.StatusApproved:
			if !approvedSet || !rejectedClear {
				t.Errorf("step %d: approved record has trails %+v", i, m)
			}
		case models.StatusRejected:
			if !rejectedSet || !approvedClear {
				t.Errorf("step %d: rejected record has trails %+v", i, m)
			}
		}
	}
}

func TestInitialForAdmin(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		reason     string
		wantStatus string
		wantErr    error
	}{
		{"default pending", "", "", models.StatusPending, nil},
		{"pending", models.StatusPending, "", models.StatusPending, nil},
		{"approved", models.StatusApproved, "", models.StatusApproved, nil},
		{"rejected", models.StatusRejected, "duplicate", models.StatusRejected, nil},
		{"rejected without reason", models.StatusRejected, "", "", ErrReasonRequired},
		{"unknown", "archived", "", "", ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := InitialForAdmin(9, tt.status, tt.reason, "note", testNow)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("InitialForAdmin() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if m.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", m.Status, tt.wantStatus)
			}
			if m.SubmittedByAdmin == nil || *m.SubmittedByAdmin != 9 || m.SubmittedBy != nil {
				t.Errorf("submitter = %v / %v", m.SubmittedBy, m.SubmittedByAdmin)
			}
			if m.AdminComments == nil || *m.AdminComments != "note" {
				t.Errorf("AdminComments = %v", m.AdminComments)
			}
		})
	}
}

func TestInitialForUser(t *testing.T) {
	m := InitialForUser(7)
	if m.Status != models.StatusPending || m.SubmittedBy == nil || *m.SubmittedBy != 7 || m.SubmittedByAdmin != nil {
		t.Errorf("InitialForUser() = %+v", m)
	}
}
