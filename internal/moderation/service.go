package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"newsmarketplace/internal/db"
	"newsmarketplace/internal/models"
	"newsmarketplace/internal/validation"
)

// Notification delivery channels, used as a metrics label.
const (
	ChannelInApp = "in_app"
	ChannelEmail = "email"
)

// Repository persists one kind. *db.Store satisfies it.
type Repository[E models.Entity] interface {
	Get(ctx context.Context, id int64) (E, error)
	Create(ctx context.Context, e E) error
	// UpdateAttributes and SoftDelete only write while the row is still in
	// status, unless status is empty, and return db.ErrNotFound otherwise.
	UpdateAttributes(ctx context.Context, id int64, attrs map[string]any, status string) (E, error)
	SaveModeration(ctx context.Context, id int64, m *models.Moderation) (E, error)
	SoftDelete(ctx context.Context, id int64, status string) error
}

// Options configures a Service. Only Dispatcher is required.
type Options struct {
	Dispatcher       Dispatcher
	Validator        Validator
	Metrics          Recorder
	Logger           *slog.Logger
	NotifyModerators bool
	Now              func() time.Time
}

// Service runs the moderation lifecycle of one kind: creation, review,
// owner edits and soft deletion.
type Service[E models.Entity] struct {
	kind             models.Kind
	repo             Repository[E]
	dispatcher       Dispatcher
	validator        Validator
	metrics          Recorder
	logger           *slog.Logger
	notifyModerators bool
	now              func() time.Time
}

// NewService creates the service of kind.
func NewService[E models.Entity](kind models.Kind, repo Repository[E], opts Options) *Service[E] {
	s := &Service[E]{
		kind:             kind,
		repo:             repo,
		dispatcher:       opts.Dispatcher,
		validator:        opts.Validator,
		metrics:          opts.Metrics,
		logger:           opts.Logger,
		notifyModerators: opts.NotifyModerators,
		now:              opts.Now,
	}
	if s.validator == nil {
		s.validator = validation.New()
	}
	if s.metrics == nil {
		s.metrics = nopRecorder{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.logger = s.logger.With("kind", kind.Name)
	return s
}

// Kind returns the kind this service moderates.
func (s *Service[E]) Kind() models.Kind {
	return s.kind
}

// load fetches a record. Soft-deleted records are only visible to admins.
func (s *Service[E]) load(ctx context.Context, actor *models.Principal, id int64) (E, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		var zero E
		return zero, err
	}
	if !e.Record().IsActive && !actor.IsAdmin() {
		var zero E
		return zero, db.ErrNotFound
	}
	return e, nil
}

// Get returns a record of any status to its owner or to an admin.
func (s *Service[E]) Get(ctx context.Context, actor *models.Principal, id int64) (E, error) {
	var zero E
	e, err := s.load(ctx, actor, id)
	if err != nil {
		return zero, err
	}
	if err := CanView(actor, s.kind, e.Record()); err != nil {
		return zero, err
	}
	return e, nil
}

// Create stores a user submission as pending.
func (s *Service[E]) Create(ctx context.Context, user *models.Principal, e E) (E, error) {
	var zero E
	if user == nil || user.IsAdmin() {
		return zero, ErrForbidden
	}
	if err := s.validator.Validate(e); err != nil {
		return zero, err
	}

	*e.Record() = InitialForUser(user.ID)
	if err := s.repo.Create(ctx, e); err != nil {
		return zero, err
	}
	s.metrics.Transition(s.kind.Name, models.StatusPending)

	if s.notifyModerators && s.dispatcher != nil {
		if err := s.dispatcher.SendSubmissionEmail(ctx, s.kind, e); err != nil {
			s.notificationFailed(ChannelEmail, e.Record().ID, "failed to send submission email", err)
		}
	}
	return e, nil
}

// CreateAsAdmin stores a record created by an admin, optionally already
// approved or rejected.
func (s *Service[E]) CreateAsAdmin(ctx context.Context, admin *models.Principal, e E, status, reason, comments string) (E, error) {
	var zero E
	if err := CanModerate(admin, s.kind); err != nil {
		return zero, err
	}
	if err := s.validator.Validate(e); err != nil {
		return zero, err
	}

	m, err := InitialForAdmin(admin.ID, strings.TrimSpace(status), reason, comments, s.now())
	if err != nil {
		return zero, err
	}
	*e.Record() = m
	if err := s.repo.Create(ctx, e); err != nil {
		return zero, err
	}
	s.metrics.Transition(s.kind.Name, m.Status)
	return e, nil
}

// Update applies patch to the stored record, validates the result and saves
// its entity attributes. Moderation fields set by patch are ignored.
func (s *Service[E]) Update(ctx context.Context, actor *models.Principal, id int64, patch func(E) error) (E, error) {
	var zero E
	e, err := s.load(ctx, actor, id)
	if err != nil {
		return zero, err
	}
	if err := CanEdit(actor, s.kind, e.Record()); err != nil {
		return zero, err
	}

	if err := patch(e); err != nil {
		return zero, err
	}
	if err := s.validator.Validate(e); err != nil {
		return zero, err
	}

	guard := ownerGuard(actor)
	updated, err := s.repo.UpdateAttributes(ctx, id, e.Attributes(), guard)
	if guard != "" && errors.Is(err, db.ErrNotFound) {
		return zero, ErrNotPending
	}
	return updated, err
}

// SoftDelete hides a record from every listing.
func (s *Service[E]) SoftDelete(ctx context.Context, actor *models.Principal, id int64) error {
	e, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := CanSoftDelete(actor, s.kind, e.Record()); err != nil {
		return err
	}

	guard := ownerGuard(actor)
	err = s.repo.SoftDelete(ctx, id, guard)
	if guard != "" && errors.Is(err, db.ErrNotFound) {
		return ErrNotPending
	}
	return err
}

// ownerGuard is the status a non-admin's write must still find the row in.
// The check in CanEdit can be overtaken by a concurrent moderation decision.
func ownerGuard(actor *models.Principal) string {
	if actor.IsAdmin() {
		return ""
	}
	return models.StatusPending
}

// Approve moves a pending or rejected record to approved, then notifies the
// submitter.
func (s *Service[E]) Approve(ctx context.Context, admin *models.Principal, id int64, comments string) (E, error) {
	var zero E
	if err := CanModerate(admin, s.kind); err != nil {
		return zero, err
	}
	return s.approve(ctx, admin.ID, id, comments)
}

func (s *Service[E]) approve(ctx context.Context, adminID, id int64, comments string) (E, error) {
	var zero E
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	next, err := ApplyApproval(*e.Record(), adminID, comments, s.now())
	if err != nil {
		return zero, fmt.Errorf("%s is %w", s.kind.Label, err)
	}
	saved, err := s.repo.SaveModeration(ctx, id, &next)
	if err != nil {
		return zero, err
	}

	s.metrics.Transition(s.kind.Name, models.StatusApproved)
	s.logger.Info("record approved", "id", id, "admin_id", adminID)
	s.notifyDecision(ctx, saved, Decision{
		Kind:     s.kind,
		Entity:   saved,
		Status:   models.StatusApproved,
		Comments: strings.TrimSpace(comments),
	})
	return saved, nil
}

// Reject moves a pending or approved record to rejected with a mandatory
// reason, then notifies the submitter.
func (s *Service[E]) Reject(ctx context.Context, admin *models.Principal, id int64, reason, comments string) (E, error) {
	var zero E
	if err := CanModerate(admin, s.kind); err != nil {
		return zero, err
	}
	if strings.TrimSpace(reason) == "" {
		return zero, ErrReasonRequired
	}
	return s.reject(ctx, admin.ID, id, reason, comments)
}

func (s *Service[E]) reject(ctx context.Context, adminID, id int64, reason, comments string) (E, error) {
	var zero E
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	next, err := ApplyRejection(*e.Record(), adminID, reason, comments, s.now())
	if errors.Is(err, ErrAlreadyRejected) {
		return zero, fmt.Errorf("%s is %w", s.kind.Label, err)
	}
	if err != nil {
		return zero, err
	}
	saved, err := s.repo.SaveModeration(ctx, id, &next)
	if err != nil {
		return zero, err
	}

	s.metrics.Transition(s.kind.Name, models.StatusRejected)
	s.logger.Info("record rejected", "id", id, "admin_id", adminID)
	s.notifyDecision(ctx, saved, Decision{
		Kind:     s.kind,
		Entity:   saved,
		Status:   models.StatusRejected,
		Reason:   *next.RejectionReason,
		Comments: strings.TrimSpace(comments),
	})
	return saved, nil
}

// BulkApprove approves each id independently. Failures are collected per
// item and never stop the batch.
func (s *Service[E]) BulkApprove(ctx context.Context, admin *models.Principal, ids []int64) (*models.BulkResult[E], error) {
	if err := CanModerate(admin, s.kind); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrIDsRequired
	}
	return s.bulk(ids, func(id int64) (E, error) {
		return s.approve(ctx, admin.ID, id, "")
	}), nil
}

// BulkReject rejects each id independently with the same reason.
func (s *Service[E]) BulkReject(ctx context.Context, admin *models.Principal, ids []int64, reason, comments string) (*models.BulkResult[E], error) {
	if err := CanModerate(admin, s.kind); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrIDsRequired
	}
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}
	return s.bulk(ids, func(id int64) (E, error) {
		return s.reject(ctx, admin.ID, id, reason, comments)
	}), nil
}

func (s *Service[E]) bulk(ids []int64, apply func(int64) (E, error)) *models.BulkResult[E] {
	result := &models.BulkResult[E]{
		Succeeded: []E{},
		Errors:    []models.BulkError{},
	}
	for i, id := range ids {
		e, err := apply(id)
		if err != nil {
			result.Errors = append(result.Errors, models.BulkError{
				Index: i,
				ID:    id,
				Error: s.itemError(id, err),
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, e)
	}
	return result
}

// itemError turns a per-item failure into the message reported to the caller.
func (s *Service[E]) itemError(id int64, err error) string {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return s.kind.Label + " not found"
	case errors.Is(err, ErrAlreadyApproved), errors.Is(err, ErrAlreadyRejected), errors.Is(err, ErrReasonRequired):
		return err.Error()
	}
	s.logger.Error("bulk item failed", "id", id, "error", err)
	return "internal server error"
}

// notifyDecision writes the in-app notification and sends the decision
// email. Email failure falls back to a second in-app notification. Nothing
// here can fail the transition.
func (s *Service[E]) notifyDecision(ctx context.Context, e E, d Decision) {
	m := e.Record()
	if s.dispatcher == nil || m.SubmittedBy == nil {
		return
	}
	d.UserID = *m.SubmittedBy

	if err := s.dispatcher.Notify(ctx, decisionNotification(d, m.ID)); err != nil {
		s.notificationFailed(ChannelInApp, m.ID, "failed to create decision notification", err)
	}

	if err := s.dispatcher.SendDecisionEmail(ctx, d); err != nil {
		s.notificationFailed(ChannelEmail, m.ID, "failed to send decision email", err)
		if err := s.dispatcher.Notify(ctx, emailIssueNotification(d, m.ID)); err != nil {
			s.notificationFailed(ChannelInApp, m.ID, "failed to create email failure notification", err)
		}
	}
}

func (s *Service[E]) notificationFailed(channel string, id int64, msg string, err error) {
	s.metrics.NotificationFailure(s.kind.Name, channel)
	s.logger.Warn(msg, "id", id, "channel", channel, "error", err)
}

func decisionNotification(d Decision, id int64) *models.Notification {
	label := strings.ToLower(d.Kind.Label)
	name := d.Entity.DisplayName()
	n := &models.Notification{UserID: d.UserID, RelatedID: &id}

	if d.Status == models.StatusApproved {
		n.Type = d.Kind.ApprovedEvent()
		n.Title = titleCase(d.Kind.Label) + " Approved!"
		n.Message = fmt.Sprintf("Your %s for %q has been approved and is now live on our platform.", label, name)
		return n
	}
	n.Type = d.Kind.RejectedEvent()
	n.Title = titleCase(d.Kind.Label) + " Review Update"
	n.Message = fmt.Sprintf("Your %s for %q has been reviewed and was not approved. Reason: %s", label, name, d.Reason)
	return n
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func emailIssueNotification(d Decision, id int64) *models.Notification {
	label := strings.ToLower(d.Kind.Label)
	verb := "approved"
	if d.Status == models.StatusRejected {
		verb = "reviewed"
	}
	return &models.Notification{
		UserID:    d.UserID,
		Type:      models.NotificationSystem,
		Title:     "Email Delivery Issue",
		Message:   fmt.Sprintf("We were unable to send you an email about your %s %s. Please check your notifications for details.", verb, label),
		RelatedID: &id,
	}
}
