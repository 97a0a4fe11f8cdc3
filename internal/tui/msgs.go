package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/sprout/internal/stream"
	"github.com/thenoetrevino/sprout/internal/viewmodel"
)

// snackbarTimeout is how long a write result stays on screen undismissed.
const snackbarTimeout = 4 * time.Second

// valueMsg carries one value from a view-model subscription. sub identifies
// the subscription so values from a closed screen are ignored.
type valueMsg[T any] struct {
	sub   *stream.Subscription[T]
	value T
}

// listen waits for the next value of sub. The returned command yields nil
// once the subscription is closed.
func listen[T any](sub *stream.Subscription[T]) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-sub.C()
		if !ok {
			return nil
		}
		return valueMsg[T]{sub: sub, value: v}
	}
}

// eventSource is the part of a view-model that posts one-shot UI events.
type eventSource interface {
	Events() <-chan struct{}
	PeekEvent() (viewmodel.UIEvent, bool)
	DismissSnackbar()
	DismissEvent(e viewmodel.UIEvent) bool
	Status() viewmodel.Status
}

// uiEventMsg tells the model that source has a new UI event.
type uiEventMsg struct {
	source eventSource
}

// listenEvents waits for source to post an event or for done to close.
func listenEvents(source eventSource, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-source.Events():
			return uiEventMsg{source: source}
		case <-done:
			return nil
		}
	}
}

// expireSnackbarMsg dismisses event if it is still the one showing.
type expireSnackbarMsg struct {
	source eventSource
	event  viewmodel.UIEvent
}

func expireSnackbar(source eventSource, e viewmodel.UIEvent) tea.Cmd {
	return tea.Tick(snackbarTimeout, func(time.Time) tea.Msg {
		return expireSnackbarMsg{source: source, event: e}
	})
}

// daemonNotice is a connection status message from the daemon client.
type daemonNotice struct {
	level   string
	message string
}

type noticeMsg daemonNotice

type clearNoticeMsg struct {
	seq int
}

func listenNotices(notices <-chan daemonNotice, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case n := <-notices:
			return noticeMsg(n)
		case <-done:
			return nil
		}
	}
}
