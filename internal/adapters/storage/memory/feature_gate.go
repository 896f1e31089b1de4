package memory

import (
	"sync"

	"proofgate/internal/domain"
)

// FeatureGate is the process-wide photo-intake switch. It only gates a UX
// message, but it is mutex-guarded anyway to keep every shared structure
// under the same rule: owned, lock-guarded, no package globals.
type FeatureGate struct {
	mu       sync.Mutex
	reviewer domain.UserID
	enabled  bool
}

func NewFeatureGate(reviewer domain.UserID, enabled bool) *FeatureGate {
	return &FeatureGate{
		reviewer: reviewer,
		enabled:  enabled,
	}
}

// Toggle flips the flag and returns the new state. Only the reviewer may
// toggle; anyone else gets domain.ErrNotReviewer and no state change.
func (g *FeatureGate) Toggle(acting domain.UserID) (bool, error) {
	if acting != g.reviewer {
		return false, domain.ErrNotReviewer
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.enabled = !g.enabled
	return g.enabled, nil
}

// EnabledFor reports whether photo intake is open for user. The reviewer
// bypasses the flag entirely.
func (g *FeatureGate) EnabledFor(user domain.UserID) bool {
	if user == g.reviewer {
		return true
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.enabled
}
