package memory_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"proofgate/internal/adapters/storage/memory"
	"proofgate/internal/domain"
)

func TestRegisterAndResolveOnce(t *testing.T) {
	reg := memory.NewReviewRegistry()

	if replaced := reg.Register(domain.RequestID(10), domain.UserID(42)); replaced {
		t.Fatalf("first Register reported a replaced entry")
	}

	submitter, ok := reg.Resolve(domain.RequestID(10))
	if !ok {
		t.Fatalf("Resolve failed for a registered request")
	}
	if submitter != domain.UserID(42) {
		t.Fatalf("expected submitter 42, got %d", submitter)
	}

	if _, ok := reg.Resolve(domain.RequestID(10)); ok {
		t.Fatalf("second Resolve succeeded, expected miss")
	}
}

func TestRegisterReportsReplacement(t *testing.T) {
	reg := memory.NewReviewRegistry()

	reg.Register(domain.RequestID(7), domain.UserID(1))
	if replaced := reg.Register(domain.RequestID(7), domain.UserID(2)); !replaced {
		t.Fatalf("Register did not report replacement of an existing entry")
	}

	// last write wins
	submitter, ok := reg.Resolve(domain.RequestID(7))
	if !ok || submitter != domain.UserID(2) {
		t.Fatalf("expected submitter 2 after overwrite, got %d (ok=%v)", submitter, ok)
	}
}

func TestResolveAtMostOnceUnderConcurrency(t *testing.T) {
	reg := memory.NewReviewRegistry()
	reg.Register(domain.RequestID(99), domain.UserID(7))

	const resolvers = 64

	var wg sync.WaitGroup
	var successes atomic.Int32

	for i := 0; i < resolvers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := reg.Resolve(domain.RequestID(99)); ok {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := successes.Load(); got != 1 {
		t.Fatalf("expected exactly 1 successful resolution, got %d", got)
	}
	if reg.Pending() != 0 {
		t.Fatalf("expected empty registry, got %d pending", reg.Pending())
	}
}
