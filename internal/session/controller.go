package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/maxgpt/maxgpt/internal/ingest"
	"github.com/maxgpt/maxgpt/internal/logger"
)

const (
	sendApology = "Sorry, something went wrong while sending your message. Please try again shortly."
	fileApology = "Sorry, something went wrong while analyzing the file. Please try again shortly."
)

var (
	// ErrBusy means a request is already in flight; the submission is
	// rejected, not queued.
	ErrBusy         = errors.New("a request is already in flight")
	ErrEmptyMessage = errors.New("message is empty")
)

// Completer sends one message with its prior context to the completion
// proxy and returns the generated reply.
type Completer interface {
	Complete(ctx context.Context, message string, prior []Message) (string, error)
}

// Controller mediates between user input and the completion proxy. At most
// one request is in flight at a time; both the plain-text and the file
// path share the same gate.
type Controller struct {
	completer Completer

	mu      sync.Mutex
	busy    bool
	history []Turn
}

func NewController(completer Completer) *Controller {
	return &Controller{completer: completer}
}

// Busy reports whether a request is currently in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// History returns a copy of the turns so far.
func (c *Controller) History() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Turn(nil), c.history...)
}

// acquire flips the busy gate. The check-and-set is atomic so two rapid
// triggers cannot both pass. Callers must release on every exit path.
func (c *Controller) acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	return nil
}

func (c *Controller) release() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

func (c *Controller) appendTurn(t Turn) {
	c.mu.Lock()
	c.history = append(c.history, t)
	c.mu.Unlock()
}

func (c *Controller) wirePrior() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Wire(c.history)
}

// Send submits one plain-text message. The user turn is appended before the
// proxy call; prior context is the history as it stood before that turn. A
// proxy failure still appends an assistant turn, carrying a fixed apology.
func (c *Controller) Send(ctx context.Context, text string) (Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Turn{}, ErrEmptyMessage
	}
	if err := c.acquire(); err != nil {
		return Turn{}, err
	}
	defer c.release()

	prior := c.wirePrior()
	c.appendTurn(newTurn(OriginUser, text, ""))

	reply, err := c.completer.Complete(ctx, text, prior)
	if err != nil {
		logger.Warnf("send failed: %v", err)
		reply = sendApology
	}
	turn := newTurn(OriginAssistant, reply, "")
	c.appendTurn(turn)
	return turn, nil
}

// UploadFile ingests one selected file and submits the synthesized analysis
// request. Validation failures return before any state change. The history
// shows only the filename marker turn; the analysis prompt is discarded
// after the call.
func (c *Controller) UploadFile(ctx context.Context, sel ingest.Selection) (Turn, error) {
	// size and type checks precede the busy bracket; the read happens inside
	if sel.Size > ingest.MaxFileSize {
		return Turn{}, ingest.ErrTooLarge
	}
	if !ingest.Supported(sel.Name, sel.ContentType) {
		return Turn{}, ingest.ErrUnsupportedType
	}
	if err := c.acquire(); err != nil {
		return Turn{}, err
	}
	defer c.release()

	res, err := ingest.Ingest(sel)
	if err != nil {
		return Turn{}, err
	}

	prior := c.wirePrior()
	c.appendTurn(newTurn(OriginUser, res.Label(), res.Name))

	reply, err := c.completer.Complete(ctx, res.AnalysisPrompt(), prior)
	if err != nil {
		logger.Warnf("file analysis failed: %v", err)
		reply = fileApology
	}
	turn := newTurn(OriginAssistant, reply, "")
	c.appendTurn(turn)
	return turn, nil
}
