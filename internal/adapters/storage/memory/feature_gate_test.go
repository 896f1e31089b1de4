package memory_test

import (
	"errors"
	"testing"

	"proofgate/internal/adapters/storage/memory"
	"proofgate/internal/domain"
)

const reviewer = domain.UserID(1)

func TestToggleByReviewer(t *testing.T) {
	gate := memory.NewFeatureGate(reviewer, true)

	enabled, err := gate.Toggle(reviewer)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if enabled {
		t.Fatalf("expected flag disabled after toggle")
	}

	enabled, err = gate.Toggle(reviewer)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !enabled {
		t.Fatalf("expected flag enabled after second toggle")
	}
}

func TestToggleByNonReviewerIsDenied(t *testing.T) {
	gate := memory.NewFeatureGate(reviewer, true)

	_, err := gate.Toggle(domain.UserID(99))
	if !errors.Is(err, domain.ErrNotReviewer) {
		t.Fatalf("expected ErrNotReviewer, got %v", err)
	}

	// no state change
	if !gate.EnabledFor(domain.UserID(99)) {
		t.Fatalf("denied toggle mutated the flag")
	}
}

func TestReviewerBypassesFlag(t *testing.T) {
	gate := memory.NewFeatureGate(reviewer, false)

	if gate.EnabledFor(domain.UserID(99)) {
		t.Fatalf("expected intake disabled for regular user")
	}
	if !gate.EnabledFor(reviewer) {
		t.Fatalf("expected intake always enabled for the reviewer")
	}
}
