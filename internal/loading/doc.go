// Package loading coordinates a flicker-free "busy" signal for screens that
// run asynchronous work.
//
// A [Coordinator] counts in-flight operations and turns a single boolean
// signal on and off:
//
//   - The signal only turns on after operations have been in flight for
//     [Timing.ShowAfter] without the count dropping back to zero, so fast
//     operations never flash a spinner.
//   - Once on, the signal stays on for at least [Timing.MinDisplayTime],
//     even if the last operation finishes right after it appeared.
//   - Any number of concurrent operations share one show cycle. Only the
//     first start schedules the show timer and only the last end decides
//     when to hide.
//
// # State Machine
//
//	Idle --start--> PendingShow --timer fired--> Visible
//	PendingShow --count reached 0--> Idle (timer cancelled)
//	Visible --count reached 0, min time elapsed--> Idle
//	Visible --count reached 0, min time pending--> Visible --timer--> Idle
//
// A start during the pending hide keeps the signal on and cancels the hide.
//
// # Basic Usage
//
//	coord := loading.New(ctx, loading.WithName("settings"))
//
//	changes, unsubscribe := coord.Subscribe(1)
//	defer unsubscribe()
//	go func() {
//	    for visible := range changes {
//	        render(visible)
//	    }
//	}()
//
//	profile, err := loading.Run(ctx, coord, fetchProfile)
//
// Per-call overrides apply when the call starts a new cycle:
//
//	err := coord.Do(ctx, save, loading.ShowAfter(0))
//
// # Lifetime
//
// The context given to [New] is the coordinator's owning scope. Cancelling
// it stops pending timers, turns the signal off and closes every
// subscription channel. Cancelling the context passed to [Run] only affects
// that operation; the coordinator still sees it end.
//
// # Errors
//
// The package defines no errors. [Run] returns the operation's error
// unchanged after unregistering it.
package loading
