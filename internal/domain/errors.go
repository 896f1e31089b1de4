package domain

import "errors"

var (
	// ErrNotReviewer marks a reviewer-only action attempted by someone else.
	ErrNotReviewer = errors.New("not the reviewer")

	// ErrRequestNotFound marks a decision for an unknown or already-resolved
	// review request.
	ErrRequestNotFound = errors.New("review request not found")

	// ErrInvalidDecision marks a decision token outside {approve, reject}.
	ErrInvalidDecision = errors.New("invalid decision")
)
