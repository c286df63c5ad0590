package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsmarketplace/internal/config"
	"newsmarketplace/internal/models"
	"newsmarketplace/internal/moderation"
)

type fakeStore struct {
	users         map[int64]*models.User
	adminEmails   []string
	notifications []*models.Notification
	userErr       error
}

func (f *fakeStore) CreateNotification(_ context.Context, n *models.Notification) error {
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (f *fakeStore) GetAdminEmails(context.Context) ([]string, error) {
	return f.adminEmails, nil
}

type sent struct {
	to  []string
	msg *Message
}

type fakeSender struct {
	enabled bool
	sent    []sent
}

func (f *fakeSender) IsEnabled() bool { return f.enabled }

func (f *fakeSender) Send(_ context.Context, to []string, msg *Message) error {
	f.sent = append(f.sent, sent{to: to, msg: msg})
	return nil
}

func newTestNotifier(t *testing.T, cfg *config.Config, kinds *config.YAMLConfig) (*Notifier, *fakeStore, *fakeSender) {
	t.Helper()
	if cfg.SiteTitle == "" {
		cfg.SiteTitle = "News Marketplace"
	}
	tmpl, err := NewTemplates(cfg)
	require.NoError(t, err)

	store := &fakeStore{users: map[int64]*models.User{
		1: {ID: 1, Email: "owner@example.com", FirstName: "Olive"},
		2: {ID: 2},
	}}
	sender := &fakeSender{enabled: true}
	return NewNotifier(cfg, kinds, store, sender, tmpl), store, sender
}

func decision(userID int64, status string) moderation.Decision {
	c := &models.Career{Title: "Reporter"}
	c.ID = 9
	return moderation.Decision{
		Kind:   models.CareerKind,
		Entity: c,
		UserID: userID,
		Status: status,
		Reason: "missing salary",
	}
}

func TestNotifier_Notify(t *testing.T) {
	n, store, _ := newTestNotifier(t, &config.Config{}, nil)

	note := &models.Notification{UserID: 1, Type: "careers", Title: "Career Listing Approved!"}
	require.NoError(t, n.Notify(context.Background(), note))
	assert.Equal(t, []*models.Notification{note}, store.notifications)
}

func TestNotifier_SendDecisionEmail(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.Config
		kinds       *config.YAMLConfig
		disabled    bool
		userID      int64
		status      string
		wantSent    bool
		wantErr     error
		wantSubject string
	}{
		{
			name:        "approval sent",
			cfg:         config.Config{EmailNotifyUserOnApproval: true},
			userID:      1,
			status:      models.StatusApproved,
			wantSent:    true,
			wantSubject: "[News Marketplace] Your career listing has been approved",
		},
		{
			name:        "rejection sent",
			cfg:         config.Config{EmailNotifyUserOnRejection: true},
			userID:      1,
			status:      models.StatusRejected,
			wantSent:    true,
			wantSubject: "[News Marketplace] Update on your career listing",
		},
		{
			name:   "approval toggle off",
			cfg:    config.Config{EmailNotifyUserOnRejection: true},
			userID: 1,
			status: models.StatusApproved,
		},
		{
			name:   "rejection toggle off",
			cfg:    config.Config{EmailNotifyUserOnApproval: true},
			userID: 1,
			status: models.StatusRejected,
		},
		{
			name:     "sender disabled",
			cfg:      config.Config{EmailNotifyUserOnApproval: true},
			disabled: true,
			userID:   1,
			status:   models.StatusApproved,
		},
		{
			name: "kind opted out",
			cfg:  config.Config{EmailNotifyUserOnApproval: true},
			kinds: &config.YAMLConfig{Kinds: map[string]config.KindSettings{
				"careers": {DisableEmailNotice: true},
			}},
			userID: 1,
			status: models.StatusApproved,
		},
		{
			name:    "recipient without email",
			cfg:     config.Config{EmailNotifyUserOnApproval: true},
			userID:  2,
			status:  models.StatusApproved,
			wantErr: ErrNoRecipientEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			n, _, sender := newTestNotifier(t, &cfg, tt.kinds)
			sender.enabled = !tt.disabled

			err := n.SendDecisionEmail(context.Background(), decision(tt.userID, tt.status))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			if !tt.wantSent {
				assert.Empty(t, sender.sent)
				return
			}
			require.Len(t, sender.sent, 1)
			assert.Equal(t, []string{"owner@example.com"}, sender.sent[0].to)
			assert.Equal(t, tt.wantSubject, sender.sent[0].msg.Subject)
		})
	}
}

func TestNotifier_SendDecisionEmail_RejectionCarriesReason(t *testing.T) {
	n, _, sender := newTestNotifier(t, &config.Config{EmailNotifyUserOnRejection: true}, nil)

	require.NoError(t, n.SendDecisionEmail(context.Background(), decision(1, models.StatusRejected)))
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].msg.HTML, "missing salary")
	assert.Contains(t, sender.sent[0].msg.Text, "Reason: missing salary")
}

func TestNotifier_SendDecisionEmail_UserLookupFails(t *testing.T) {
	n, store, sender := newTestNotifier(t, &config.Config{EmailNotifyUserOnApproval: true}, nil)
	store.userErr = errors.New("db down")

	err := n.SendDecisionEmail(context.Background(), decision(1, models.StatusApproved))
	require.Error(t, err)
	assert.Empty(t, sender.sent)
}

func TestNotifier_SendSubmissionEmail(t *testing.T) {
	cfg := &config.Config{ModeratorEmails: []string{"mod@example.com", "boss@example.com"}}
	n, store, sender := newTestNotifier(t, cfg, nil)
	store.adminEmails = []string{"boss@example.com", "admin@example.com"}

	c := &models.Career{Title: "Reporter"}
	c.ID = 9
	require.NoError(t, n.SendSubmissionEmail(context.Background(), models.CareerKind, c))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"admin@example.com", "boss@example.com", "mod@example.com"}, sender.sent[0].to)
	assert.Equal(t, "[News Marketplace] New career listing pending review: Reporter", sender.sent[0].msg.Subject)
}

func TestNotifier_SendSubmissionEmail_NoRecipients(t *testing.T) {
	n, _, sender := newTestNotifier(t, &config.Config{}, nil)

	require.NoError(t, n.SendSubmissionEmail(context.Background(), models.CareerKind, &models.Career{Title: "x"}))
	assert.Empty(t, sender.sent)
}
