package tui

import (
	"context"
	"time"

	"github.com/Iron-Ham/loadcoord/internal/event"
	"github.com/Iron-Ham/loadcoord/internal/loading"
	"github.com/Iron-Ham/loadcoord/internal/logging"
	"github.com/Iron-Ham/loadcoord/internal/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
)

// DefaultHistoryLines is used when Options.HistoryLines is not positive.
const DefaultHistoryLines = 8

// Options configures the screen.
type Options struct {
	// Bus receives operation.failed events. Optional.
	Bus *event.Bus

	// Logger for screen-level messages. Defaults to a no-op logger.
	Logger *logging.Logger

	// HistoryLines caps how many finished operations stay on screen.
	HistoryLines int
}

// historyEntry is one finished operation shown in the history list
type historyEntry struct {
	label   string
	elapsed time.Duration
	err     error
}

// Model holds the TUI application state
type Model struct {
	ctx    context.Context
	coord  *loading.Coordinator
	bus    *event.Bus
	logger *logging.Logger

	// Loading signal
	visibility  <-chan bool
	unsubscribe func()
	spinner     spinner.Model
	visible     bool
	closed      bool

	// Operations in flight, keyed by token ID
	running map[string]string

	history      []historyEntry
	historyLines int

	// UI state
	width        int
	height       int
	quitting     bool
	errorMessage string
	infoMessage  string
}

// NewModel creates a screen bound to c. The subscription to c's visible
// signal is taken here so no transition between construction and Init is
// lost; it is released when the user quits or c's scope ends.
func NewModel(ctx context.Context, c *loading.Coordinator, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	lines := opts.HistoryLines
	if lines <= 0 {
		lines = DefaultHistoryLines
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(styles.Spinner),
	)
	ch, unsubscribe := c.Subscribe(4)

	return Model{
		ctx:          ctx,
		coord:        c,
		bus:          opts.Bus,
		logger:       logger,
		visibility:   ch,
		unsubscribe:  unsubscribe,
		spinner:      sp,
		visible:      c.Visible(),
		running:      make(map[string]string),
		historyLines: lines,
	}
}

// recordFinished appends a finished operation and trims the history.
func (m *Model) recordFinished(e historyEntry) {
	m.history = append(m.history, e)
	m.trimHistory()
}

// trimHistory keeps the newest historyLines entries in a fresh slice.
func (m *Model) trimHistory() {
	if over := len(m.history) - m.historyLines; over > 0 {
		m.history = append([]historyEntry(nil), m.history[over:]...)
	}
}

// reportFailure shows err in the status line and hands it to error reporting.
func (m *Model) reportFailure(label string, err error) {
	m.errorMessage = label + ": " + err.Error()
	m.logger.Warn("operation failed", "label", label, "error", err.Error())
	if m.bus != nil {
		m.bus.Publish(event.NewOperationFailedEvent(m.coord.Name(), label, err))
	}
}
