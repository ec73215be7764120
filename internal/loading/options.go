package loading

import (
	"time"

	"github.com/Iron-Ham/loadcoord/internal/event"
	"github.com/Iron-Ham/loadcoord/internal/logging"
)

// Default timing applied when no option overrides it.
const (
	DefaultShowAfter      = 400 * time.Millisecond
	DefaultMinDisplayTime = 300 * time.Millisecond
)

// Timing holds the two durations that shape a show cycle.
type Timing struct {
	// ShowAfter is how long operations must be in flight before the
	// signal turns on. Zero shows it immediately.
	ShowAfter time.Duration

	// MinDisplayTime is the minimum time the signal stays on once shown.
	// Zero allows hiding as soon as the last operation ends.
	MinDisplayTime time.Duration
}

// DefaultTiming returns the default show-after and min-display durations.
func DefaultTiming() Timing {
	return Timing{
		ShowAfter:      DefaultShowAfter,
		MinDisplayTime: DefaultMinDisplayTime,
	}
}

func (t Timing) mustValidate() {
	if t.ShowAfter < 0 {
		panic("loading: show-after must be non-negative")
	}
	if t.MinDisplayTime < 0 {
		panic("loading: min-display time must be non-negative")
	}
}

type options struct {
	timing Timing
	name   string
	logger *logging.Logger
	bus    *event.Bus
}

// Option configures a [Coordinator].
type Option func(*options)

func defaultOptions() options {
	return options{
		timing: DefaultTiming(),
		name:   "default",
	}
}

// WithShowAfter sets the coordinator's default show-after delay.
// It panics if d is negative.
func WithShowAfter(d time.Duration) Option {
	if d < 0 {
		panic("loading: show-after must be non-negative")
	}
	return func(o *options) {
		o.timing.ShowAfter = d
	}
}

// WithMinDisplayTime sets the coordinator's default minimum display time.
// It panics if d is negative.
func WithMinDisplayTime(d time.Duration) Option {
	if d < 0 {
		panic("loading: min-display time must be non-negative")
	}
	return func(o *options) {
		o.timing.MinDisplayTime = d
	}
}

// WithTiming sets both default durations at once.
// It panics if either duration is negative.
func WithTiming(t Timing) Option {
	t.mustValidate()
	return func(o *options) {
		o.timing = t
	}
}

// WithName names the coordinator in logs and events.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger used for operation and visibility records.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithBus publishes [event.LoadingShownEvent] and [event.LoadingHiddenEvent]
// on b for every visibility transition. Events are published from a
// goroutine owned by the coordinator, so handlers may call back into it.
func WithBus(b *event.Bus) Option {
	return func(o *options) {
		o.bus = b
	}
}

// CallOption overrides the coordinator's timing for a single call.
//
// Overrides only take effect when the call starts a show cycle, i.e. when
// it takes the active count from zero to one. Calls that join a cycle in
// progress run under the timing of the call that started it.
type CallOption func(*Timing)

// ShowAfter overrides the show-after delay for one call.
// It panics if d is negative.
func ShowAfter(d time.Duration) CallOption {
	if d < 0 {
		panic("loading: show-after must be non-negative")
	}
	return func(t *Timing) {
		t.ShowAfter = d
	}
}

// MinDisplayTime overrides the minimum display time for one call.
// It panics if d is negative.
func MinDisplayTime(d time.Duration) CallOption {
	if d < 0 {
		panic("loading: min-display time must be non-negative")
	}
	return func(t *Timing) {
		t.MinDisplayTime = d
	}
}
