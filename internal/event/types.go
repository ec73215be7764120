package event

import "time"

// Event type names, following the "category.action" convention.
const (
	TypeLoadingShown    = "loading.shown"
	TypeLoadingHidden   = "loading.hidden"
	TypeOperationFailed = "operation.failed"
	TypeConfigReloaded  = "config.reloaded"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a "category.action" identifier for this event.
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// LoadingShownEvent is emitted when a coordinator's busy signal turns on.
type LoadingShownEvent struct {
	baseEvent
	Coordinator string // Name of the coordinator
	Active      int    // Operations in flight when the signal turned on
}

// NewLoadingShownEvent creates a LoadingShownEvent.
func NewLoadingShownEvent(coordinator string, active int) LoadingShownEvent {
	return LoadingShownEvent{
		baseEvent:   newBaseEvent(TypeLoadingShown),
		Coordinator: coordinator,
		Active:      active,
	}
}

// LoadingHiddenEvent is emitted when a coordinator's busy signal turns off.
type LoadingHiddenEvent struct {
	baseEvent
	Coordinator string        // Name of the coordinator
	Shown       time.Duration // How long the signal stayed on
}

// NewLoadingHiddenEvent creates a LoadingHiddenEvent.
func NewLoadingHiddenEvent(coordinator string, shown time.Duration) LoadingHiddenEvent {
	return LoadingHiddenEvent{
		baseEvent:   newBaseEvent(TypeLoadingHidden),
		Coordinator: coordinator,
		Shown:       shown,
	}
}

// OperationFailedEvent hands an operation failure to error reporting.
// Screens publish it after the coordinator has returned the error to them.
type OperationFailedEvent struct {
	baseEvent
	Coordinator string
	Label       string // Human-readable operation name
	Err         error
}

// NewOperationFailedEvent creates an OperationFailedEvent.
func NewOperationFailedEvent(coordinator, label string, err error) OperationFailedEvent {
	return OperationFailedEvent{
		baseEvent:   newBaseEvent(TypeOperationFailed),
		Coordinator: coordinator,
		Label:       label,
		Err:         err,
	}
}

// ConfigReloadedEvent is emitted after a config file change has been
// validated and applied.
type ConfigReloadedEvent struct {
	baseEvent
	Path string
}

// NewConfigReloadedEvent creates a ConfigReloadedEvent.
func NewConfigReloadedEvent(path string) ConfigReloadedEvent {
	return ConfigReloadedEvent{
		baseEvent: newBaseEvent(TypeConfigReloaded),
		Path:      path,
	}
}
