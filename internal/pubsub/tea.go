package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd creates a Bubble Tea command that waits for one event on ch.
// It resolves to the event as a tea.Msg, or to nil if the context is
// cancelled or the channel closes.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			return event
		}
	}
}

// Listener holds a broker subscription for use inside a Bubble Tea
// update loop. Call Next after handling each event to re-arm the wait.
type Listener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewListener subscribes to the broker. The subscription is cleaned up
// when ctx is cancelled.
func NewListener[T any](ctx context.Context, broker *Broker[T]) *Listener[T] {
	return &Listener[T]{
		ctx: ctx,
		ch:  broker.Subscribe(ctx),
	}
}

// Next returns a tea.Cmd that waits for the next event.
func (l *Listener[T]) Next() tea.Cmd {
	return ListenCmd(l.ctx, l.ch)
}
