package transport

import (
	"context"
	"errors"
	"sync"

	"proofgate/internal/domain"
)

// Mock is a recording transport for tests. It assigns sequential request ids
// to forwarded photos and can simulate delivery failures per recipient.
type Mock struct {
	mu     sync.Mutex
	nextID domain.RequestID

	Texts   []SentText
	Menus   []SentMenu
	Photos  []SentPhoto
	Edits   []CaptionEdit
	Answers []CallbackAnswer

	// FailTextTo simulates recipients who blocked the bot.
	FailTextTo map[domain.UserID]bool
	// FailPhotos makes SendPhotoForReview fail.
	FailPhotos bool
}

type SentText struct {
	To   domain.UserID
	Text string
}

type SentMenu struct {
	To      domain.UserID
	Prompt  string
	Buttons []string
}

type SentPhoto struct {
	Reviewer domain.UserID
	Photo    domain.PhotoRef
	Caption  string
	ID       domain.RequestID
	Actions  []domain.ReviewAction
}

type CaptionEdit struct {
	Reviewer domain.UserID
	ID       domain.RequestID
	Caption  string
}

type CallbackAnswer struct {
	CallbackID string
	Text       string
}

func NewMock() *Mock {
	return &Mock{
		nextID:     1000,
		FailTextTo: make(map[domain.UserID]bool),
	}
}

func (m *Mock) SendText(ctx context.Context, to domain.UserID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailTextTo[to] {
		return errors.New("mock transport: recipient unreachable")
	}
	m.Texts = append(m.Texts, SentText{To: to, Text: text})
	return nil
}

func (m *Mock) SendMenu(ctx context.Context, to domain.UserID, prompt string, buttons []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Menus = append(m.Menus, SentMenu{To: to, Prompt: prompt, Buttons: buttons})
	return nil
}

func (m *Mock) SendPhotoForReview(ctx context.Context, reviewer domain.UserID, photo domain.PhotoRef, caption string) (domain.RequestID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailPhotos {
		return 0, errors.New("mock transport: photo send failed")
	}
	m.nextID++
	m.Photos = append(m.Photos, SentPhoto{
		Reviewer: reviewer,
		Photo:    photo,
		Caption:  caption,
		ID:       m.nextID,
	})
	return m.nextID, nil
}

func (m *Mock) AttachReviewActions(ctx context.Context, reviewer domain.UserID, id domain.RequestID, actions []domain.ReviewAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.Photos {
		if m.Photos[i].ID == id {
			m.Photos[i].Actions = actions
		}
	}
	return nil
}

func (m *Mock) EditReviewCaption(ctx context.Context, reviewer domain.UserID, id domain.RequestID, caption string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Edits = append(m.Edits, CaptionEdit{Reviewer: reviewer, ID: id, Caption: caption})
	return nil
}

func (m *Mock) AnswerCallback(ctx context.Context, callbackID string, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Answers = append(m.Answers, CallbackAnswer{CallbackID: callbackID, Text: text})
	return nil
}

// TextsTo returns every text sent to a single recipient, in order.
func (m *Mock) TextsTo(user domain.UserID) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []string
	for _, t := range m.Texts {
		if t.To == user {
			out = append(out, t.Text)
		}
	}
	return out
}
