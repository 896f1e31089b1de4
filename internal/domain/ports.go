package domain

import (
	"context"
	"time"
)

// Transport defines how the core application sends messages back to the chat
// platform. All sends are best-effort from the workflows' perspective: callers
// log failures and move on.
type Transport interface {
	SendText(ctx context.Context, to UserID, text string) error
	SendMenu(ctx context.Context, to UserID, prompt string, buttons []string) error

	// SendPhotoForReview forwards a photo to the reviewer and returns the
	// identifier of the reviewer-facing message. Actions are attached
	// afterwards because their callback payload embeds that identifier.
	SendPhotoForReview(ctx context.Context, reviewer UserID, photo PhotoRef, caption string) (RequestID, error)

	// AttachReviewActions adds inline action buttons to a reviewer-facing
	// message previously created by SendPhotoForReview.
	AttachReviewActions(ctx context.Context, reviewer UserID, id RequestID, actions []ReviewAction) error

	// EditReviewCaption rewrites the caption of a reviewer-facing message,
	// used to mark a request approved or rejected.
	EditReviewCaption(ctx context.Context, reviewer UserID, id RequestID, caption string) error

	// AnswerCallback acknowledges an inline-button press.
	AnswerCallback(ctx context.Context, callbackID string, text string) error
}

// ReviewRegistry tracks which pending review request belongs to which
// submitter. It is the single source of truth for "is this request still
// pending".
type ReviewRegistry interface {
	// Register inserts a pending entry. Last write wins; replaced reports
	// whether an existing entry for the same id was overwritten.
	Register(id RequestID, submitter UserID) (replaced bool)

	// Resolve looks up and removes the entry in one indivisible step, so a
	// concurrent second resolution of the same id observes a miss.
	Resolve(id RequestID) (submitter UserID, ok bool)

	Pending() int
}

// SessionTracker holds per-user session-start timestamps.
type SessionTracker interface {
	// Touch creates or overwrites the user's session.
	Touch(user UserID, at time.Time)

	// Expire removes the user's session if one is present, reporting whether
	// anything was removed. Check and delete are a single critical section.
	Expire(user UserID) bool

	StartedAt(user UserID) (time.Time, bool)
}

// FeatureGate is the process-wide photo-intake switch, mutable only by the
// reviewer.
type FeatureGate interface {
	// Toggle flips the flag and returns the new state. Non-reviewer callers
	// get ErrNotReviewer and no state change.
	Toggle(acting UserID) (enabled bool, err error)

	// EnabledFor is always true for the reviewer regardless of the flag.
	EnabledFor(user UserID) bool
}
