package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd adapts a subscription channel to the Bubble Tea update loop:
// the returned command blocks for the next event and delivers it as a
// tea.Msg. Re-issue the command after handling an event to keep
// listening. It resolves to nil once ctx is cancelled or the channel
// closes.
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
