package submission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"proofgate/internal/domain"
	"proofgate/internal/observability"
)

const (
	msgWrongCode      = "❌ Wrong code!"
	msgSessionCleared = "🧹 Chat cleared."
)

// Service is the code resolution workflow. It owns the session tracker and
// drives the deferred session expiry.
type Service struct {
	transport domain.Transport
	codes     domain.CodeTable
	tracker   domain.SessionTracker

	reviewer   domain.UserID
	sessionTTL time.Duration

	now func() time.Time
}

func NewService(
	transport domain.Transport,
	codes domain.CodeTable,
	tracker domain.SessionTracker,
	reviewer domain.UserID,
	sessionTTL time.Duration,
) *Service {
	return &Service{
		transport:  transport,
		codes:      codes,
		tracker:    tracker,
		reviewer:   reviewer,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

type CodeInput struct {
	User     domain.UserID
	Username string
	Text     string
}

type CodeOutput struct {
	Matched bool
	Link    string
}

// SubmitCode resolves a code attempt. The reviewer is notified of every
// attempt, valid or not, and a session is (re)started for the user either
// way. Lookup is exact-match and case-sensitive.
func (s *Service) SubmitCode(ctx context.Context, in CodeInput) CodeOutput {
	code := strings.TrimSpace(in.Text)

	log := observability.LoggerFromContext(ctx).With(
		"user_id", in.User,
		"username", in.Username,
	)
	log.Info("code attempt")

	notice := fmt.Sprintf("🔥 New code from @%s (id: %d): %s",
		displayUsername(in.Username), in.User, code)
	if err := s.transport.SendText(ctx, s.reviewer, notice); err != nil {
		log.Warn("reviewer attempt notice failed", "error", err)
	}

	out := CodeOutput{}
	if link, ok := s.codes[code]; ok {
		out = CodeOutput{Matched: true, Link: link}
		s.send(ctx, in.User, "Your link: "+link)
		log.Info("code matched")
	} else {
		s.send(ctx, in.User, msgWrongCode)
		log.Info("code rejected")
	}

	s.tracker.Touch(in.User, s.now())
	s.scheduleExpiry(in.User)

	return out
}

// scheduleExpiry arms an independent, uncancelled timer for the user. A
// resubmission does NOT extend the cleanup window: earlier timers keep their
// original deadline and the first one to fire clears whichever session is
// current. ExpireSession is a safe no-op once the session is gone, so the
// stacked timers only ever produce one cleanup notice per live session.
func (s *Service) scheduleExpiry(user domain.UserID) {
	time.AfterFunc(s.sessionTTL, func() {
		s.ExpireSession(context.Background(), user)
	})
}

// ExpireSession clears the user's session if one is still present and sends
// the cleanup notice. With no current session it does nothing.
func (s *Service) ExpireSession(ctx context.Context, user domain.UserID) {
	if !s.tracker.Expire(user) {
		return
	}

	observability.LoggerFromContext(ctx).Info("session expired", "user_id", user)
	s.send(ctx, user, msgSessionCleared)
}

func (s *Service) send(ctx context.Context, to domain.UserID, text string) {
	if err := s.transport.SendText(ctx, to, text); err != nil {
		observability.LoggerFromContext(ctx).Warn("outbound send failed",
			"to", to, "error", err)
	}
}

func displayUsername(username string) string {
	if username == "" {
		return "no username"
	}
	return username
}
