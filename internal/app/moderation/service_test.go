package moderation_test

import (
	"context"
	"strings"
	"testing"

	"proofgate/internal/adapters/storage/memory"
	"proofgate/internal/adapters/transport"
	"proofgate/internal/app/moderation"
	"proofgate/internal/domain"
)

const (
	reviewerID = domain.UserID(1)
	aliceID    = domain.UserID(42)
)

func newService(mock *transport.Mock, gateEnabled bool) (*moderation.Service, *memory.ReviewRegistry) {
	registry := memory.NewReviewRegistry()
	gate := memory.NewFeatureGate(reviewerID, gateEnabled)
	svc := moderation.NewService(mock, registry, gate, reviewerID, "7w0G")
	return svc, registry
}

func submitPhoto(t *testing.T, svc *moderation.Service, mock *transport.Mock) domain.RequestID {
	t.Helper()

	svc.SubmitPhoto(context.Background(), moderation.PhotoInput{
		User:     aliceID,
		Username: "alice",
		Photo:    domain.PhotoRef("photo-file-id"),
	})

	if len(mock.Photos) != 1 {
		t.Fatalf("expected 1 forwarded photo, got %d", len(mock.Photos))
	}
	return mock.Photos[0].ID
}

func TestSubmitPhotoForwardsAndRegisters(t *testing.T) {
	mock := transport.NewMock()
	svc, registry := newService(mock, true)

	id := submitPhoto(t, svc, mock)

	photo := mock.Photos[0]
	if photo.Reviewer != reviewerID {
		t.Fatalf("photo forwarded to %d, expected reviewer", photo.Reviewer)
	}
	if !strings.Contains(photo.Caption, "@alice") || !strings.Contains(photo.Caption, "42") {
		t.Fatalf("caption missing submitter tag: %q", photo.Caption)
	}
	if len(photo.Actions) != 2 {
		t.Fatalf("expected 2 review actions, got %d", len(photo.Actions))
	}
	if registry.Pending() != 1 {
		t.Fatalf("expected 1 pending request, got %d", registry.Pending())
	}

	texts := mock.TextsTo(aliceID)
	if len(texts) != 1 || !strings.Contains(texts[0], "review") {
		t.Fatalf("expected under-review confirmation, got %v", texts)
	}

	// action payloads round-trip to the same request id
	decision, parsedID, err := domain.ParseReviewCallback(photo.Actions[0].Data)
	if err != nil {
		t.Fatalf("bad action payload %q: %v", photo.Actions[0].Data, err)
	}
	if decision != domain.DecisionApprove || parsedID != id {
		t.Fatalf("unexpected action payload: %s %d", decision, parsedID)
	}
}

func TestSubmitPhotoDeclinedWhenIntakeDisabled(t *testing.T) {
	mock := transport.NewMock()
	svc, registry := newService(mock, false)

	svc.SubmitPhoto(context.Background(), moderation.PhotoInput{
		User:  aliceID,
		Photo: domain.PhotoRef("photo-file-id"),
	})

	if len(mock.Photos) != 0 {
		t.Fatalf("photo was forwarded with intake disabled")
	}
	if registry.Pending() != 0 {
		t.Fatalf("review request created with intake disabled")
	}
	texts := mock.TextsTo(aliceID)
	if len(texts) != 1 || !strings.Contains(texts[0], "disabled") {
		t.Fatalf("expected disabled notice, got %v", texts)
	}
}

func TestSubmitPhotoForwardFailure(t *testing.T) {
	mock := transport.NewMock()
	mock.FailPhotos = true
	svc, registry := newService(mock, true)

	svc.SubmitPhoto(context.Background(), moderation.PhotoInput{
		User:  aliceID,
		Photo: domain.PhotoRef("photo-file-id"),
	})

	if registry.Pending() != 0 {
		t.Fatalf("review request registered despite forward failure")
	}
	texts := mock.TextsTo(aliceID)
	if len(texts) != 1 || !strings.Contains(texts[0], "Could not forward") {
		t.Fatalf("expected forward-failure apology, got %v", texts)
	}
}

func TestApproveDeliversCodeOnce(t *testing.T) {
	mock := transport.NewMock()
	svc, registry := newService(mock, true)
	id := submitPhoto(t, svc, mock)

	outcome := svc.HandleDecision(context.Background(), moderation.DecisionInput{
		RequestID: id,
		Decision:  domain.DecisionApprove,
		Acting:    reviewerID,
	})
	if outcome != moderation.OutcomeApproved {
		t.Fatalf("expected approved, got %s", outcome)
	}

	texts := mock.TextsTo(aliceID)
	if len(texts) == 0 || texts[len(texts)-1] != "Your code: 7w0G" {
		t.Fatalf("expected delivery code, got %v", texts)
	}
	if len(mock.Edits) != 1 || !strings.Contains(mock.Edits[0].Caption, "Approved") {
		t.Fatalf("expected approved caption edit, got %v", mock.Edits)
	}
	if registry.Pending() != 0 {
		t.Fatalf("request still pending after approval")
	}

	// replaying the same decision is a no-op
	outcome = svc.HandleDecision(context.Background(), moderation.DecisionInput{
		RequestID: id,
		Decision:  domain.DecisionApprove,
		Acting:    reviewerID,
	})
	if outcome != moderation.OutcomeAlreadyHandled {
		t.Fatalf("expected already_handled on replay, got %s", outcome)
	}
	if got := mock.TextsTo(aliceID); len(got) != len(texts) {
		t.Fatalf("replay produced extra sends: %v", got)
	}
}

func TestRejectNotifiesSubmitter(t *testing.T) {
	mock := transport.NewMock()
	svc, _ := newService(mock, true)
	id := submitPhoto(t, svc, mock)

	outcome := svc.HandleDecision(context.Background(), moderation.DecisionInput{
		RequestID: id,
		Decision:  domain.DecisionReject,
		Acting:    reviewerID,
	})
	if outcome != moderation.OutcomeRejected {
		t.Fatalf("expected rejected, got %s", outcome)
	}

	texts := mock.TextsTo(aliceID)
	if len(texts) == 0 || !strings.Contains(texts[len(texts)-1], "not completed") {
		t.Fatalf("expected rejection notice, got %v", texts)
	}
	if len(mock.Edits) != 1 || !strings.Contains(mock.Edits[0].Caption, "Rejected") {
		t.Fatalf("expected rejected caption edit, got %v", mock.Edits)
	}
}

func TestDecisionByNonReviewerIsDenied(t *testing.T) {
	mock := transport.NewMock()
	svc, registry := newService(mock, true)
	id := submitPhoto(t, svc, mock)

	outcome := svc.HandleDecision(context.Background(), moderation.DecisionInput{
		RequestID: id,
		Decision:  domain.DecisionApprove,
		Acting:    domain.UserID(99),
	})
	if outcome != moderation.OutcomeDenied {
		t.Fatalf("expected denied, got %s", outcome)
	}
	if registry.Pending() != 1 {
		t.Fatalf("denied decision consumed the request")
	}
}

func TestInvalidDecisionToken(t *testing.T) {
	mock := transport.NewMock()
	svc, registry := newService(mock, true)
	id := submitPhoto(t, svc, mock)

	outcome := svc.HandleDecision(context.Background(), moderation.DecisionInput{
		RequestID: id,
		Decision:  domain.Decision("maybe"),
		Acting:    reviewerID,
	})
	if outcome != moderation.OutcomeInvalid {
		t.Fatalf("expected invalid, got %s", outcome)
	}
	if registry.Pending() != 1 {
		t.Fatalf("invalid decision consumed the request")
	}
}

func TestApprovalSurvivesBlockedSubmitter(t *testing.T) {
	mock := transport.NewMock()
	svc, registry := newService(mock, true)
	id := submitPhoto(t, svc, mock)

	// submitter blocked the bot after submitting
	mock.FailTextTo[aliceID] = true

	outcome := svc.HandleDecision(context.Background(), moderation.DecisionInput{
		RequestID: id,
		Decision:  domain.DecisionApprove,
		Acting:    reviewerID,
	})
	if outcome != moderation.OutcomeApproved {
		t.Fatalf("expected approved despite blocked submitter, got %s", outcome)
	}

	// the reviewer-facing update is independent of the failed send
	if len(mock.Edits) != 1 {
		t.Fatalf("caption edit skipped after submitter send failure")
	}
	if registry.Pending() != 0 {
		t.Fatalf("request re-queued after send failure")
	}
}
