// Package dispatcher bridges the event bus to the Bubble Tea runtime.
package dispatcher

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atlaschat/atlaschat/internal/eventbus"
)

// CoreEventMsg wraps a core event as a Bubble Tea message.
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// EventDispatcher routes core events into the UI loop.
type EventDispatcher struct {
	eventBus *eventbus.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewEventDispatcher(eventBus *eventbus.EventBus) *EventDispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventDispatcher{
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// ListenForCoreEvents returns a command that delivers the next core event.
// The UI re-issues it after each delivery to keep the pipe flowing.
func (ed *EventDispatcher) ListenForCoreEvents() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ed.ctx.Done():
			return nil
		case event, ok := <-ed.eventBus.CoreToUI():
			if !ok {
				return nil
			}
			return CoreEventMsg{Event: event}
		}
	}
}

func (ed *EventDispatcher) Stop() {
	ed.cancel()
}

func (ed *EventDispatcher) GetEventBus() *eventbus.EventBus {
	return ed.eventBus
}
