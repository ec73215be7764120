package tui

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Iron-Ham/loadcoord/internal/loading"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sourcegraph/conc"
)

// ErrOperationFailed is returned by the simulated failing operation.
var ErrOperationFailed = errors.New("simulated failure")

// opKind describes one kind of simulated operation bound to a key.
type opKind struct {
	key      string
	label    string
	duration time.Duration
	fail     bool
}

var opKinds = []opKind{
	{key: "f", label: "fast", duration: 100 * time.Millisecond},
	{key: "s", label: "slow", duration: time.Second},
	{key: "d", label: "straddle", duration: 450 * time.Millisecond},
	{key: "e", label: "failing", duration: 50 * time.Millisecond, fail: true},
}

// Burst parameters
const (
	burstSize     = 8
	burstDuration = 120 * time.Millisecond
)

func lookupOp(key string) (opKind, bool) {
	for _, k := range opKinds {
		if k.key == key {
			return k, true
		}
	}
	return opKind{}, false
}

// runOp waits out the operation and ends its token. The token was begun
// in Update so the active count is already raised when the key is handled.
func runOp(ctx context.Context, tok *loading.Token, kind opKind) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		err := wait(ctx, kind.duration)
		if err == nil && kind.fail {
			err = fmt.Errorf("%s operation: %w", kind.label, ErrOperationFailed)
		}
		tok.End()
		return opDoneMsg{
			id:      tok.ID(),
			label:   kind.label,
			elapsed: time.Since(start),
			err:     err,
		}
	}
}

// runBurst starts size operations in parallel through the coordinator and
// reports once all of them have ended. Every third operation fails.
func runBurst(ctx context.Context, c *loading.Coordinator, size int, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		var failed atomic.Int32
		var wg conc.WaitGroup
		for i := range size {
			wg.Go(func() {
				err := c.Do(ctx, func(ctx context.Context) error {
					if err := wait(ctx, d); err != nil {
						return err
					}
					if i%3 == 2 {
						return ErrOperationFailed
					}
					return nil
				})
				if err != nil {
					failed.Add(1)
				}
			})
		}
		wg.Wait()
		return burstDoneMsg{
			size:    size,
			failed:  int(failed.Load()),
			elapsed: time.Since(start),
		}
	}
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
