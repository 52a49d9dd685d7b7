package event

type EventType string

const (
	// ProbeStartedEventType emitted before a target's probe begins
	ProbeStartedEventType EventType = "probe-started"
	// ProbeCompletedEventType emitted after a target's probe completes,
	// payload is the target's result
	ProbeCompletedEventType EventType = "probe-completed"
	// ErrorEventType emitted for recoverable errors
	ErrorEventType EventType = "error"
	// FatalErrorEventType emitted for unrecoverable errors
	FatalErrorEventType EventType = "fatal-error"
)

// Event data structure representing any event we may want to react to
type Event struct {
	Type    EventType
	Payload any
}
