package transport

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"proofgate/internal/domain"
	"proofgate/internal/observability"
)

// Handler receives inbound events translated from transport updates.
type Handler interface {
	HandleStart(ctx context.Context, user domain.UserID)
	HandleText(ctx context.Context, user domain.UserID, username, text string)
	HandlePhoto(ctx context.Context, user domain.UserID, username string, photo domain.PhotoRef)
	HandleCallback(ctx context.Context, acting domain.UserID, callbackID, data string)
	HandleCommand(ctx context.Context, user domain.UserID, command string)
}

// Listener long-polls the Bot API and feeds updates to the handler one at a
// time. Handler failures never stop the loop.
type Listener struct {
	bot     *tgbotapi.BotAPI
	handler Handler
}

func NewListener(t *Telegram, handler Handler) *Listener {
	return &Listener{
		bot:     t.bot,
		handler: handler,
	}
}

// Run blocks until ctx is cancelled or the update channel closes.
func (l *Listener) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := l.bot.GetUpdatesChan(u)
	log := observability.Logger()
	log.Info("listening for updates")

	for {
		select {
		case <-ctx.Done():
			l.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			l.dispatch(ctx, update)
		}
	}
}

func (l *Listener) dispatch(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		if cq.From == nil {
			return
		}
		l.handler.HandleCallback(ctx, domain.UserID(cq.From.ID), cq.ID, cq.Data)

	case update.Message != nil:
		msg := update.Message
		if msg.From == nil {
			return
		}
		user := domain.UserID(msg.From.ID)
		username := msg.From.UserName

		switch {
		case msg.IsCommand():
			if msg.Command() == "start" {
				l.handler.HandleStart(ctx, user)
				return
			}
			l.handler.HandleCommand(ctx, user, msg.Command())
		case len(msg.Photo) > 0:
			// sizes are ordered smallest to largest; take the largest
			largest := msg.Photo[len(msg.Photo)-1]
			l.handler.HandlePhoto(ctx, user, username, domain.PhotoRef(largest.FileID))
		case msg.Text != "":
			l.handler.HandleText(ctx, user, username, msg.Text)
		}
	}
}
