package dispatch

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"proofgate/internal/app/moderation"
	"proofgate/internal/app/submission"
	"proofgate/internal/domain"
	"proofgate/internal/observability"
)

// Control button labels. Inbound text is matched against these exactly
// before falling through to a code attempt.
const (
	ButtonEnterCode = "Enter code"
	ButtonSendPhoto = "📸 Send photo proof"
)

const (
	CommandStart       = "start"
	CommandTogglePhoto = "toggle_photo"
)

const (
	msgChooseAction   = "Choose an action:"
	msgEnterCode      = "Enter your code:"
	msgSendPhoto      = "Please send a photo as proof."
	msgPhotoDisabled  = "Photo intake is temporarily disabled by the administrator."
	msgReviewerOnly   = "This command is for the reviewer only."
	ackReviewerOnly   = "Only the reviewer can do this."
	ackAlreadyHandled = "User not found or the request was already handled."
	ackMalformed      = "Malformed request."
)

// Dispatcher routes inbound transport events to the workflows. Every event is
// tagged with a fresh update id for log correlation, and no handler failure
// ever escapes: the listener loop must keep running.
type Dispatcher struct {
	transport   domain.Transport
	submissions *submission.Service
	moderations *moderation.Service
	gate        domain.FeatureGate
}

func New(
	transport domain.Transport,
	submissions *submission.Service,
	moderations *moderation.Service,
	gate domain.FeatureGate,
) *Dispatcher {
	return &Dispatcher{
		transport:   transport,
		submissions: submissions,
		moderations: moderations,
		gate:        gate,
	}
}

func (d *Dispatcher) HandleStart(ctx context.Context, user domain.UserID) {
	ctx = tag(ctx)

	buttons := []string{ButtonEnterCode, ButtonSendPhoto}
	if err := d.transport.SendMenu(ctx, user, msgChooseAction, buttons); err != nil {
		observability.LoggerFromContext(ctx).Warn("menu send failed",
			"user_id", user, "error", err)
	}
}

// HandleText resolves the raw text against the control labels first; anything
// else is a code attempt.
func (d *Dispatcher) HandleText(ctx context.Context, user domain.UserID, username, text string) {
	ctx = tag(ctx)

	switch text {
	case ButtonEnterCode:
		d.send(ctx, user, msgEnterCode)
	case ButtonSendPhoto:
		if !d.gate.EnabledFor(user) {
			d.send(ctx, user, msgPhotoDisabled)
			return
		}
		d.send(ctx, user, msgSendPhoto)
	default:
		d.submissions.SubmitCode(ctx, submission.CodeInput{
			User:     user,
			Username: username,
			Text:     text,
		})
	}
}

func (d *Dispatcher) HandlePhoto(ctx context.Context, user domain.UserID, username string, photo domain.PhotoRef) {
	ctx = tag(ctx)

	d.moderations.SubmitPhoto(ctx, moderation.PhotoInput{
		User:     user,
		Username: username,
		Photo:    photo,
	})
}

func (d *Dispatcher) HandleCallback(ctx context.Context, acting domain.UserID, callbackID, data string) {
	ctx = tag(ctx)

	decision, requestID, err := domain.ParseReviewCallback(data)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("malformed callback data",
			"data", data, "error", err)
		d.answer(ctx, callbackID, ackMalformed)
		return
	}

	outcome := d.moderations.HandleDecision(ctx, moderation.DecisionInput{
		RequestID: requestID,
		Decision:  decision,
		Acting:    acting,
	})

	d.answer(ctx, callbackID, ackText(outcome))
}

func (d *Dispatcher) HandleCommand(ctx context.Context, user domain.UserID, command string) {
	ctx = tag(ctx)

	switch command {
	case CommandStart:
		d.HandleStart(ctx, user)
	case CommandTogglePhoto:
		enabled, err := d.gate.Toggle(user)
		if errors.Is(err, domain.ErrNotReviewer) {
			d.send(ctx, user, msgReviewerOnly)
			return
		}
		if enabled {
			d.send(ctx, user, "Photo intake: ENABLED")
		} else {
			d.send(ctx, user, "Photo intake: DISABLED")
		}
	default:
		observability.LoggerFromContext(ctx).Info("unknown command ignored",
			"command", command, "user_id", user)
	}
}

func ackText(outcome moderation.Outcome) string {
	switch outcome {
	case moderation.OutcomeApproved:
		return "Approved"
	case moderation.OutcomeRejected:
		return "Rejected"
	case moderation.OutcomeAlreadyHandled:
		return ackAlreadyHandled
	case moderation.OutcomeDenied:
		return ackReviewerOnly
	default:
		return ackMalformed
	}
}

func (d *Dispatcher) send(ctx context.Context, to domain.UserID, text string) {
	if err := d.transport.SendText(ctx, to, text); err != nil {
		observability.LoggerFromContext(ctx).Warn("outbound send failed",
			"to", to, "error", err)
	}
}

func (d *Dispatcher) answer(ctx context.Context, callbackID, text string) {
	if err := d.transport.AnswerCallback(ctx, callbackID, text); err != nil {
		observability.LoggerFromContext(ctx).Warn("callback answer failed",
			"callback_id", callbackID, "error", err)
	}
}

// tag attaches a fresh update id to the context for log correlation.
func tag(ctx context.Context) context.Context {
	return observability.WithUpdateID(ctx, uuid.NewString())
}
