package domain

import "time"

// UserID is a chat-platform user/chat identifier.
type UserID int64

// RequestID identifies an outstanding review request. It is the identifier of
// the message shown to the reviewer, so it is transport-generated and unique
// per forwarded photo.
type RequestID int64

// PhotoRef is an opaque transport reference to an uploaded photo.
type PhotoRef string

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Session marks a user's last code submission. It exists only to drive a
// delayed cleanup notice.
type Session struct {
	UserID    UserID
	StartedAt time.Time
}

// ReviewRequest is a pending photo submission awaiting the reviewer's decision.
type ReviewRequest struct {
	ID        RequestID
	Submitter UserID
	CreatedAt time.Time
}

// CodeTable is the static code → link lookup, read-only at runtime.
type CodeTable map[string]string

// ReviewAction is an inline affordance attached to the reviewer-facing message.
type ReviewAction struct {
	Label string
	Data  string
}
