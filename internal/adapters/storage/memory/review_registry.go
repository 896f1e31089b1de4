package memory

import (
	"sync"
	"time"

	"proofgate/internal/domain"
)

// ReviewRegistry is an in-memory implementation of domain.ReviewRegistry.
// Entries are intentionally volatile: they live until resolved or process exit.
type ReviewRegistry struct {
	mu      sync.Mutex
	pending map[domain.RequestID]*domain.ReviewRequest
}

func NewReviewRegistry() *ReviewRegistry {
	return &ReviewRegistry{
		pending: make(map[domain.RequestID]*domain.ReviewRequest),
	}
}

func (r *ReviewRegistry) Register(id domain.RequestID, submitter domain.UserID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, replaced := r.pending[id]
	r.pending[id] = &domain.ReviewRequest{
		ID:        id,
		Submitter: submitter,
		CreatedAt: time.Now(),
	}
	return replaced
}

// Resolve removes and returns the entry for id. Lookup and delete share one
// critical section so that of two concurrent resolutions of the same id,
// exactly one succeeds.
func (r *ReviewRegistry) Resolve(id domain.RequestID) (domain.UserID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.pending[id]
	if !ok {
		return 0, false
	}
	delete(r.pending, id)
	return req.Submitter, true
}

func (r *ReviewRegistry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
