package moderation

import (
	"context"

	"newsmarketplace/internal/models"
)

// Decision describes a completed approve or reject for the decision email.
type Decision struct {
	Kind     models.Kind
	Entity   models.Entity
	UserID   int64 // recipient, the submitting user
	Status   string
	Reason   string
	Comments string
}

// Dispatcher delivers the side effects of moderation. Every method is best
// effort: the service logs and counts failures but never returns them.
type Dispatcher interface {
	// Notify stores an in-app notification.
	Notify(ctx context.Context, n *models.Notification) error
	// SendDecisionEmail emails the submitter about an approval or rejection.
	SendDecisionEmail(ctx context.Context, d Decision) error
	// SendSubmissionEmail tells the moderators about a new user submission.
	SendSubmissionEmail(ctx context.Context, kind models.Kind, e models.Entity) error
}

// Recorder counts moderation events.
type Recorder interface {
	Transition(kind, status string)
	NotificationFailure(kind, channel string)
}

type nopRecorder struct{}

func (nopRecorder) Transition(string, string)          {}
func (nopRecorder) NotificationFailure(string, string) {}

// Validator checks an entity before it is written.
type Validator interface {
	Validate(out any) error
}
