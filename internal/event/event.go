package event

import "sync"

type listener struct {
	id        int
	eventType EventType
	channel   chan Event
	removed   chan struct{}
}

// EventManager dispatches events to registered listeners
type EventManager struct {
	listeners      []*listener
	nextListenerID int
	mux            sync.Mutex
}

// NewEventManager returns a new event manager
func NewEventManager() *EventManager {
	return &EventManager{
		listeners:      []*listener{},
		nextListenerID: 1,
		mux:            sync.Mutex{},
	}
}

// RegisterListener registers a channel to receive events of the given type
func (m *EventManager) RegisterListener(eventType EventType, channel chan Event) int {
	m.mux.Lock()
	defer m.mux.Unlock()

	id := m.nextListenerID
	m.nextListenerID++

	m.listeners = append(m.listeners, &listener{
		id:        id,
		eventType: eventType,
		channel:   channel,
		removed:   make(chan struct{}),
	})

	return id
}

// RemoveListener removes a previously registered listener
func (m *EventManager) RemoveListener(id int) int {
	m.mux.Lock()
	defer m.mux.Unlock()

	listeners := []*listener{}

	for _, l := range m.listeners {
		if l.id != id {
			listeners = append(listeners, l)
			continue
		}

		// unblocks any dispatch still waiting on this listener
		close(l.removed)
	}

	m.listeners = listeners

	return id
}

// Send dispatches an event to all listeners registered for its type
func (m *EventManager) Send(evt Event) {
	m.mux.Lock()
	defer m.mux.Unlock()

	for _, l := range m.listeners {
		if l.eventType == evt.Type {
			// dispatch without blocking event producers, giving up
			// once the listener is removed
			go func(l *listener) {
				select {
				case l.channel <- evt:
				case <-l.removed:
				}
			}(l)
		}
	}
}

// ReportFatalError sends a fatal error event
func (m *EventManager) ReportFatalError(err error) {
	m.Send(Event{
		Type:    FatalErrorEventType,
		Payload: err,
	})
}

// ReportError sends a non-fatal error event
func (m *EventManager) ReportError(err error) {
	m.Send(Event{
		Type:    ErrorEventType,
		Payload: err,
	})
}
