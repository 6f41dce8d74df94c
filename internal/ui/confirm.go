package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dnsdeck/internal/actions"
)

// ErrUIClosed is returned by Confirm when the UI has shut down.
var ErrUIClosed = errors.New("ui closed")

type confirmRequest struct {
	prompt string
	reply  chan bool
}

// confirmRequestMsg asks the model to show a yes/no dialog.
type confirmRequestMsg confirmRequest

// ConfirmBridge lets code running outside the Bubble Tea loop ask the
// operator a question. The model picks requests up with waitConfirmCmd and
// answers them from its confirm dialog.
type ConfirmBridge struct {
	requests chan confirmRequest
	closed   chan struct{}
}

var _ actions.Confirmer = (*ConfirmBridge)(nil)

// NewConfirmBridge creates a bridge.
func NewConfirmBridge() *ConfirmBridge {
	return &ConfirmBridge{
		requests: make(chan confirmRequest),
		closed:   make(chan struct{}),
	}
}

// Confirm blocks until the operator answers, ctx is cancelled, or the UI
// closes.
func (b *ConfirmBridge) Confirm(ctx context.Context, prompt string) (bool, error) {
	req := confirmRequest{prompt: prompt, reply: make(chan bool, 1)}
	select {
	case b.requests <- req:
	case <-ctx.Done():
		return false, ctx.Err()
	case <-b.closed:
		return false, ErrUIClosed
	}
	select {
	case yes := <-req.reply:
		return yes, nil
	case <-ctx.Done():
		return false, ctx.Err()
	case <-b.closed:
		return false, ErrUIClosed
	}
}

// Close releases every pending and future Confirm call. It must be called once.
func (b *ConfirmBridge) Close() {
	close(b.closed)
}

// waitConfirmCmd waits for the next confirmation request.
func waitConfirmCmd(b *ConfirmBridge) tea.Cmd {
	if b == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case req := <-b.requests:
			return confirmRequestMsg(req)
		case <-b.closed:
			return nil
		}
	}
}
