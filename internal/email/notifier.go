package email

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"newsmarketplace/internal/config"
	"newsmarketplace/internal/models"
	"newsmarketplace/internal/moderation"
)

// ErrNoRecipientEmail is returned when the submitter has no email address.
var ErrNoRecipientEmail = errors.New("recipient has no email address")

// Store is the data the notifier needs. *db.DB satisfies it.
type Store interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAdminEmails(ctx context.Context) ([]string, error)
}

// Sender delivers rendered messages. *Service satisfies it.
type Sender interface {
	IsEnabled() bool
	Send(ctx context.Context, to []string, msg *Message) error
}

// Notifier delivers moderation notifications: in-app rows through the store
// and emails through the sender.
type Notifier struct {
	cfg       *config.Config
	kinds     *config.YAMLConfig
	store     Store
	sender    Sender
	templates *Templates
}

var _ moderation.Dispatcher = (*Notifier)(nil)

// NewNotifier creates a new notifier. kinds may be nil.
func NewNotifier(cfg *config.Config, kinds *config.YAMLConfig, store Store, sender Sender, templates *Templates) *Notifier {
	return &Notifier{
		cfg:       cfg,
		kinds:     kinds,
		store:     store,
		sender:    sender,
		templates: templates,
	}
}

// Notify stores an in-app notification.
func (n *Notifier) Notify(ctx context.Context, note *models.Notification) error {
	return n.store.CreateNotification(ctx, note)
}

// SendDecisionEmail emails the submitter about an approval or rejection.
// Disabled email, or a decision type switched off in config, is not an error.
func (n *Notifier) SendDecisionEmail(ctx context.Context, d moderation.Decision) error {
	if !n.sender.IsEnabled() || n.kinds.Kind(d.Kind.Slug).DisableEmailNotice {
		return nil
	}
	switch d.Status {
	case models.StatusApproved:
		if !n.cfg.EmailNotifyUserOnApproval {
			return nil
		}
	case models.StatusRejected:
		if !n.cfg.EmailNotifyUserOnRejection {
			return nil
		}
	default:
		return fmt.Errorf("no decision email for status %q", d.Status)
	}

	user, err := n.store.GetUserByID(ctx, d.UserID)
	if err != nil {
		return fmt.Errorf("load recipient %d: %w", d.UserID, err)
	}
	if user.Email == "" {
		return ErrNoRecipientEmail
	}

	var msg *Message
	if d.Status == models.StatusApproved {
		msg, err = n.templates.Approved(d.Kind, d.Entity, user, d.Comments)
	} else {
		msg, err = n.templates.Rejected(d.Kind, d.Entity, user, d.Reason, d.Comments)
	}
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, []string{user.Email}, msg)
}

// SendSubmissionEmail tells the configured moderator addresses and every
// admin account about a new user submission.
func (n *Notifier) SendSubmissionEmail(ctx context.Context, kind models.Kind, e models.Entity) error {
	if !n.sender.IsEnabled() {
		return nil
	}

	admins, err := n.store.GetAdminEmails(ctx)
	if err != nil {
		return fmt.Errorf("load admin emails: %w", err)
	}
	to := append(slices.Clone(n.cfg.ModeratorEmails), admins...)
	slices.Sort(to)
	to = slices.Compact(to)
	if len(to) == 0 {
		return nil
	}

	msg, err := n.templates.Submitted(kind, e)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, to, msg)
}
