package loading

import (
	"context"
	"sync"
	"time"

	"github.com/Iron-Ham/loadcoord/internal/logging"
	"github.com/google/uuid"
)

// Token is a scoped busy marker: the operation it stands for counts as in
// flight from [Coordinator.Begin] until [Token.End].
type Token struct {
	c       *Coordinator
	id      string
	started time.Time
	logger  *logging.Logger
	once    sync.Once
}

// Begin registers the start of an operation. The active count reflects it
// before Begin returns. Every Begin must be paired with exactly one End;
// extra End calls on the same token are ignored.
func (c *Coordinator) Begin(opts ...CallOption) *Token {
	id := uuid.NewString()
	active := c.begin(opts)

	tok := &Token{
		c:       c,
		id:      id,
		started: time.Now(),
		logger:  c.logger.WithOperation(id),
	}
	tok.logger.Debug("operation started", "active", active)
	return tok
}

// ID returns the operation ID used in logs.
func (t *Token) ID() string {
	return t.id
}

// End registers the end of the operation. It is safe to call more than once.
func (t *Token) End() {
	t.finish(nil)
}

func (t *Token) finish(err error) {
	t.once.Do(func() {
		active := t.c.end()
		args := []any{"active", active, "duration_ms", time.Since(t.started).Milliseconds()}
		if err != nil {
			args = append(args, "error", err.Error())
		}
		t.logger.Debug("operation finished", args...)
	})
}

// Run executes op while it counts as an in-flight operation of c.
//
// The operation is registered before op is called and unregistered on
// every exit path, including a returned error, a cancelled ctx, and a
// panic (which is re-raised unchanged). Run returns op's result and error
// unchanged and does not wait for the minimum display time.
func Run[T any](ctx context.Context, c *Coordinator, op func(context.Context) (T, error), opts ...CallOption) (result T, err error) {
	tok := c.Begin(opts...)
	defer func() { tok.finish(err) }()
	return op(ctx)
}

// Do is [Run] for operations that only return an error.
func (c *Coordinator) Do(ctx context.Context, op func(context.Context) error, opts ...CallOption) error {
	_, err := Run(ctx, c, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	}, opts...)
	return err
}
