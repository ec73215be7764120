package tui

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Iron-Ham/loadcoord/internal/event"
	"github.com/Iron-Ham/loadcoord/internal/loading"
	"github.com/Iron-Ham/loadcoord/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
)

// App wraps the Bubbletea program
type App struct {
	mu      sync.Mutex
	program *tea.Program
	model   Model
	bus     *event.Bus
	logger  *logging.Logger
}

// New creates a new TUI application bound to c.
func New(ctx context.Context, c *loading.Coordinator, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	return &App{
		model:  NewModel(ctx, c, opts),
		bus:    opts.Bus,
		logger: opts.Logger,
	}
}

// Run starts the TUI application and blocks until the user quits or ctx
// is done.
func (a *App) Run(ctx context.Context) error {
	program := tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	a.mu.Lock()
	a.program = program
	a.mu.Unlock()

	if a.bus != nil {
		id := a.bus.Subscribe(event.TypeOperationFailed, a.logFailure)
		defer a.bus.Unsubscribe(id)
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			program.Send(tea.Quit())
		case <-ctx.Done():
		}
	}()

	_, err := program.Run()
	return err
}

// Reload notifies a running screen that a new config was applied. It is a
// no-op before Run.
func (a *App) Reload(path string, historyLines int) {
	a.mu.Lock()
	p := a.program
	a.mu.Unlock()
	if p == nil {
		return
	}
	p.Send(ConfigReloadedMsg{Path: path, HistoryLines: historyLines})
}

// logFailure is the error-reporting subscriber for operation.failed.
func (a *App) logFailure(e event.Event) {
	f, ok := e.(event.OperationFailedEvent)
	if !ok {
		return
	}
	a.logger.Error("operation failed",
		"coordinator", f.Coordinator,
		"label", f.Label,
		"error", f.Err.Error(),
	)
}
