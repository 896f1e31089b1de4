package transport

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"proofgate/internal/domain"
	"proofgate/internal/observability"
)

// Telegram implements domain.Transport over the Telegram Bot API.
type Telegram struct {
	bot *tgbotapi.BotAPI
}

func NewTelegram(token string) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating bot client: %w", err)
	}
	return &Telegram{bot: bot}, nil
}

func (t *Telegram) SendText(ctx context.Context, to domain.UserID, text string) error {
	_, err := t.bot.Send(tgbotapi.NewMessage(int64(to), text))
	return err
}

func (t *Telegram) SendMenu(ctx context.Context, to domain.UserID, prompt string, buttons []string) error {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(buttons))
	for _, label := range buttons {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(label)))
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true

	msg := tgbotapi.NewMessage(int64(to), prompt)
	msg.ReplyMarkup = kb
	_, err := t.bot.Send(msg)
	return err
}

func (t *Telegram) SendPhotoForReview(ctx context.Context, reviewer domain.UserID, photo domain.PhotoRef, caption string) (domain.RequestID, error) {
	cfg := tgbotapi.NewPhoto(int64(reviewer), tgbotapi.FileID(string(photo)))
	cfg.Caption = caption

	sent, err := t.bot.Send(cfg)
	if err != nil {
		return 0, err
	}
	return domain.RequestID(sent.MessageID), nil
}

// AttachReviewActions edits the forwarded photo's reply markup. If the edit is
// refused the buttons are delivered on a separate message instead, so the
// reviewer can always act.
func (t *Telegram) AttachReviewActions(ctx context.Context, reviewer domain.UserID, id domain.RequestID, actions []domain.ReviewAction) error {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(actions))
	for _, a := range actions {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(a.Label, a.Data))
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(row)

	edit := tgbotapi.NewEditMessageReplyMarkup(int64(reviewer), int(id), markup)
	if _, err := t.bot.Request(edit); err != nil {
		observability.LoggerFromContext(ctx).Warn("reply markup edit failed, sending fallback message",
			"request_id", id, "error", err)
		msg := tgbotapi.NewMessage(int64(reviewer), "Choose an action:")
		msg.ReplyMarkup = markup
		_, err = t.bot.Send(msg)
		return err
	}
	return nil
}

// EditReviewCaption rewrites the forwarded photo's caption; when the edit is
// refused the new status is sent as a plain message.
func (t *Telegram) EditReviewCaption(ctx context.Context, reviewer domain.UserID, id domain.RequestID, caption string) error {
	edit := tgbotapi.NewEditMessageCaption(int64(reviewer), int(id), caption)
	if _, err := t.bot.Request(edit); err != nil {
		observability.LoggerFromContext(ctx).Warn("caption edit failed, sending fallback message",
			"request_id", id, "error", err)
		_, err = t.bot.Send(tgbotapi.NewMessage(int64(reviewer), caption))
		return err
	}
	return nil
}

func (t *Telegram) AnswerCallback(ctx context.Context, callbackID string, text string) error {
	_, err := t.bot.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}
