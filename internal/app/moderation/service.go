package moderation

import (
	"context"
	"fmt"

	"proofgate/internal/domain"
	"proofgate/internal/observability"
)

const (
	msgPhotoDisabled      = "Photo intake is temporarily disabled by the administrator."
	msgPhotoForwardFailed = "Could not forward your photo to the reviewer."
	msgPhotoUnderReview   = "Your photo has been sent for review."
	msgTaskRejected       = "Your task was not completed ❌"

	captionApproved = "Approved ✔️"
	captionRejected = "Rejected ❌"

	labelApprove = "Approve"
	labelReject  = "Reject"
)

// Service is the moderation workflow: photo intake on one side, reviewer
// decisions on the other. It owns the review registry.
type Service struct {
	transport domain.Transport
	registry  domain.ReviewRegistry
	gate      domain.FeatureGate

	reviewer     domain.UserID
	approvalCode string
}

func NewService(
	transport domain.Transport,
	registry domain.ReviewRegistry,
	gate domain.FeatureGate,
	reviewer domain.UserID,
	approvalCode string,
) *Service {
	return &Service{
		transport:    transport,
		registry:     registry,
		gate:         gate,
		reviewer:     reviewer,
		approvalCode: approvalCode,
	}
}

type PhotoInput struct {
	User     domain.UserID
	Username string
	Photo    domain.PhotoRef
}

// SubmitPhoto forwards a photo to the reviewer and registers the resulting
// review request. When intake is disabled (and the submitter is not the
// reviewer) the photo is declined up front and nothing is registered.
func (s *Service) SubmitPhoto(ctx context.Context, in PhotoInput) {
	log := observability.LoggerFromContext(ctx).With(
		"user_id", in.User,
		"username", in.Username,
	)

	if !s.gate.EnabledFor(in.User) {
		log.Info("photo declined, intake disabled")
		s.send(ctx, in.User, msgPhotoDisabled)
		return
	}

	caption := fmt.Sprintf("Photo from @%s (id: %d)", displayUsername(in.Username), in.User)

	id, err := s.transport.SendPhotoForReview(ctx, s.reviewer, in.Photo, caption)
	if err != nil {
		log.Error("failed to forward photo to reviewer", "error", err)
		s.send(ctx, in.User, msgPhotoForwardFailed)
		return
	}

	if replaced := s.registry.Register(id, in.User); replaced {
		log.Warn("review request id reused, previous entry overwritten", "request_id", id)
	}

	actions := []domain.ReviewAction{
		{Label: labelApprove, Data: domain.ReviewCallbackData(domain.DecisionApprove, id)},
		{Label: labelReject, Data: domain.ReviewCallbackData(domain.DecisionReject, id)},
	}
	if err := s.transport.AttachReviewActions(ctx, s.reviewer, id, actions); err != nil {
		log.Warn("failed to attach review actions", "request_id", id, "error", err)
	}

	s.send(ctx, in.User, msgPhotoUnderReview)
	log.Info("photo forwarded for review", "request_id", id)
}

// Outcome is the terminal state of one decision attempt.
type Outcome string

const (
	OutcomeApproved       Outcome = "approved"
	OutcomeRejected       Outcome = "rejected"
	OutcomeAlreadyHandled Outcome = "already_handled"
	OutcomeDenied         Outcome = "denied"
	OutcomeInvalid        Outcome = "invalid"
)

type DecisionInput struct {
	RequestID domain.RequestID
	Decision  domain.Decision
	Acting    domain.UserID
}

// HandleDecision applies a reviewer decision to a pending review request.
// Resolution is at-most-once: a replayed or stale decision lands on
// OutcomeAlreadyHandled and performs no side effects.
func (s *Service) HandleDecision(ctx context.Context, in DecisionInput) Outcome {
	log := observability.LoggerFromContext(ctx).With(
		"request_id", in.RequestID,
		"decision", in.Decision,
		"acting_user_id", in.Acting,
	)

	if in.Acting != s.reviewer {
		log.Warn("decision denied, not the reviewer")
		return OutcomeDenied
	}

	if in.Decision != domain.DecisionApprove && in.Decision != domain.DecisionReject {
		log.Warn("invalid decision token")
		return OutcomeInvalid
	}

	submitter, ok := s.registry.Resolve(in.RequestID)
	if !ok {
		log.Info("review request not found or already handled")
		return OutcomeAlreadyHandled
	}

	// The two sends below are independent best-effort deliveries. The
	// request is already consumed, so neither failure re-queues it.
	if in.Decision == domain.DecisionApprove {
		s.send(ctx, submitter, "Your code: "+s.approvalCode)
		s.editCaption(ctx, in.RequestID, captionApproved)
		log.Info("request approved", "submitter_id", submitter)
		return OutcomeApproved
	}

	s.send(ctx, submitter, msgTaskRejected)
	s.editCaption(ctx, in.RequestID, captionRejected)
	log.Info("request rejected", "submitter_id", submitter)
	return OutcomeRejected
}

func (s *Service) send(ctx context.Context, to domain.UserID, text string) {
	if err := s.transport.SendText(ctx, to, text); err != nil {
		observability.LoggerFromContext(ctx).Warn("outbound send failed",
			"to", to, "error", err)
	}
}

func (s *Service) editCaption(ctx context.Context, id domain.RequestID, caption string) {
	if err := s.transport.EditReviewCaption(ctx, s.reviewer, id, caption); err != nil {
		observability.LoggerFromContext(ctx).Warn("reviewer caption update failed",
			"request_id", id, "error", err)
	}
}

func displayUsername(username string) string {
	if username == "" {
		return "no username"
	}
	return username
}
