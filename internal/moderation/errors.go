package moderation

import "errors"

// Transition and guard errors. Handlers map them to HTTP statuses.
var (
	ErrAlreadyApproved = errors.New("already approved")
	ErrAlreadyRejected = errors.New("already rejected")
	ErrReasonRequired  = errors.New("rejection reason is required")
	ErrInvalidStatus   = errors.New("status must be one of: pending, approved, rejected")
	ErrIDsRequired     = errors.New("ids array is required")

	// ErrForbidden means the caller may not act on the record at all.
	ErrForbidden = errors.New("access denied")
	// ErrNotPending means the owner tried to change a reviewed record.
	ErrNotPending = errors.New("cannot change approved or rejected submissions")
)
