package loading

import (
	"sync"
	"time"

	"github.com/Iron-Ham/loadcoord/internal/event"
)

// transition is one change of the visible signal.
type transition struct {
	visible bool
	at      time.Time
	active  int
	shown   time.Duration // set when visible turns false
}

type subscriber struct {
	deliver func(transition)
	close   func()
}

// mailbox is a bounded channel whose sender never blocks: when the buffer
// is full the oldest value is dropped to make room for the newest one.
// There is exactly one sender, which holds the coordinator lock.
type mailbox[T any] struct {
	ch chan T
}

func newMailbox[T any](buffer int) mailbox[T] {
	if buffer < 1 {
		buffer = 1
	}
	return mailbox[T]{ch: make(chan T, buffer)}
}

func (m mailbox[T]) offer(v T) {
	for {
		select {
		case m.ch <- v:
			return
		default:
		}
		select {
		case <-m.ch:
		default:
		}
	}
}

// Subscribe returns a channel receiving every change of the visible signal,
// in order. The coordinator never blocks on a slow reader: once buffer
// values are pending, the oldest is dropped, so the last value received is
// always the current state. A buffer below 1 is treated as 1.
//
// The returned function unsubscribes and closes the channel. The channel is
// also closed when the coordinator's context is done; subscribing after
// that returns an already closed channel.
func (c *Coordinator) Subscribe(buffer int) (<-chan bool, func()) {
	mb := newMailbox[bool](buffer)
	id, ok := c.addSubscriber(&subscriber{
		deliver: func(tr transition) { mb.offer(tr.visible) },
		close:   func() { close(mb.ch) },
	})
	if !ok {
		close(mb.ch)
		return mb.ch, func() {}
	}
	return mb.ch, func() { c.removeSubscriber(id) }
}

func (c *Coordinator) addSubscriber(s *subscriber) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, false
	}
	c.nextSubID++
	c.subs[c.nextSubID] = s
	return c.nextSubID, true
}

func (c *Coordinator) removeSubscriber(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.subs[id]; ok {
		delete(c.subs, id)
		s.close()
	}
}

// eventQueue is an unbounded FIFO of transitions with a single consumer.
// Unlike mailbox it never drops values.
type eventQueue struct {
	mu     sync.Mutex
	items  []transition
	closed bool
	wake   chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{wake: make(chan struct{}, 1)}
}

func (q *eventQueue) push(tr transition) {
	q.mu.Lock()
	q.items = append(q.items, tr)
	q.mu.Unlock()
	q.notify()
}

func (q *eventQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.notify()
}

func (q *eventQueue) notify() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// drain hands every queued transition to fn in order and returns once the
// queue is closed and empty.
func (q *eventQueue) drain(fn func(transition)) {
	for {
		q.mu.Lock()
		items, closed := q.items, q.closed
		q.items = nil
		q.mu.Unlock()

		for _, tr := range items {
			fn(tr)
		}
		if len(items) > 0 {
			continue
		}
		if closed {
			return
		}
		<-q.wake
	}
}

// bridge republishes every transition on bus, in order, from a dedicated
// goroutine that exits when the coordinator shuts down.
func (c *Coordinator) bridge(bus *event.Bus) {
	q := newEventQueue()
	if _, ok := c.addSubscriber(&subscriber{
		deliver: q.push,
		close:   q.close,
	}); !ok {
		return
	}

	go q.drain(func(tr transition) {
		if tr.visible {
			bus.Publish(event.NewLoadingShownEvent(c.name, tr.active))
		} else {
			bus.Publish(event.NewLoadingHiddenEvent(c.name, tr.shown))
		}
	})
}
