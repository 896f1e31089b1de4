package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"proofgate/internal/adapters/storage/memory"
	"proofgate/internal/adapters/transport"
	"proofgate/internal/app/dispatch"
	"proofgate/internal/app/moderation"
	"proofgate/internal/app/submission"
	"proofgate/internal/config"
	"proofgate/internal/observability"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	tg, err := transport.NewTelegram(cfg.BotToken)
	if err != nil {
		log.Fatalf("error initializing Telegram transport: %v", err)
	}

	registry := memory.NewReviewRegistry()
	tracker := memory.NewSessionTracker()
	gate := memory.NewFeatureGate(cfg.ReviewerID, cfg.PhotoIntake)

	submissionSvc := submission.NewService(tg, cfg.Codes, tracker, cfg.ReviewerID, cfg.SessionTTL)
	moderationSvc := moderation.NewService(tg, registry, gate, cfg.ReviewerID, cfg.ApprovalCode)

	dispatcher := dispatch.New(tg, submissionSvc, moderationSvc, gate)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	observability.Logger().Info("proofgate starting",
		"reviewer_id", cfg.ReviewerID,
		"codes", len(cfg.Codes),
		"photo_intake", cfg.PhotoIntake,
		"session_ttl", cfg.SessionTTL.String(),
	)

	listener := transport.NewListener(tg, dispatcher)
	if err := listener.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal(err)
	}
}
