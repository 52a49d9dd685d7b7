package event_test

import (
	"errors"
	"testing"
	"time"

	"github.com/probeherd/probeherd/internal/event"
	"github.com/stretchr/testify/assert"
)

func TestEventManager(t *testing.T) {
	t.Run("registers event listener and sends event", func(st *testing.T) {
		eventManager := event.NewEventManager()

		listener := make(chan event.Event)

		eventManager.RegisterListener("test-event", listener)

		eventManager.Send(event.Event{
			Type:    "a-different-type",
			Payload: struct{}{},
		})

		eventManager.Send(event.Event{
			Type:    "test-event",
			Payload: true,
		})

		result := <-listener

		assert.Equal(st, event.EventType("test-event"), result.Type)
	})

	t.Run("removes event listener", func(st *testing.T) {
		eventManager := event.NewEventManager()

		listener := make(chan event.Event)

		id := eventManager.RegisterListener("test-event", listener)

		removedId := eventManager.RemoveListener(id)

		assert.Equal(st, id, removedId)
	})

	t.Run("abandons pending dispatches when listener is removed", func(st *testing.T) {
		eventManager := event.NewEventManager()

		listener := make(chan event.Event)

		id := eventManager.RegisterListener("test-event", listener)

		// no receiver yet, dispatch goroutine is parked
		eventManager.Send(event.Event{
			Type:    "test-event",
			Payload: true,
		})

		eventManager.RemoveListener(id)

		// give the parked dispatch time to observe the removal
		time.Sleep(50 * time.Millisecond)

		select {
		case <-listener:
			st.Fatal("received event after listener removal")
		default:
		}
	})

	t.Run("reports fatal error event", func(st *testing.T) {
		eventManager := event.NewEventManager()

		listener := make(chan event.Event)

		eventManager.RegisterListener(event.FatalErrorEventType, listener)

		eventManager.ReportFatalError(errors.New("fatal test error"))

		result := <-listener

		assert.Equal(st, event.FatalErrorEventType, result.Type)
	})

	t.Run("reports error event", func(st *testing.T) {
		eventManager := event.NewEventManager()

		listener := make(chan event.Event)

		eventManager.RegisterListener(event.ErrorEventType, listener)

		eventManager.ReportError(errors.New("test error"))

		result := <-listener

		assert.Equal(st, event.ErrorEventType, result.Type)
	})
}
