package simulate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Iron-Ham/loadcoord/internal/loading"
	"github.com/Iron-Ham/loadcoord/internal/logging"
	"github.com/sourcegraph/conc"
)

// ErrSimulated is returned by steps marked Fail.
var ErrSimulated = errors.New("simulated failure")

// OpResult records how one step ran.
type OpResult struct {
	Label   string
	Started time.Duration
	Ended   time.Duration
	Err     error
}

// Result is the observed outcome of a scenario.
type Result struct {
	Scenario    Scenario
	Transitions []Transition
	Ops         []OpResult
	Elapsed     time.Duration
}

// Run plays s against a fresh coordinator and records every transition of
// its busy signal. It returns once all steps have finished and the signal
// is off again, or when ctx is done.
func Run(ctx context.Context, s Scenario, logger *logging.Logger) (Result, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}

	scope, cancel := context.WithCancel(ctx)
	defer cancel()

	coord := loading.New(scope,
		loading.WithName(s.Name),
		loading.WithTiming(s.Timing),
		loading.WithLogger(logger))
	changes, unsubscribe := coord.Subscribe(64)
	defer unsubscribe()

	start := time.Now()
	res := Result{Scenario: s, Ops: make([]OpResult, len(s.Steps))}
	record := func(visible bool) {
		res.Transitions = append(res.Transitions, Transition{At: time.Since(start), Visible: visible})
	}

	var mu sync.Mutex
	var wg conc.WaitGroup
	for i, step := range s.Steps {
		wg.Go(func() {
			if !sleep(scope, step.Start) {
				return
			}
			began := time.Since(start)
			err := coord.Do(scope, func(ctx context.Context) error {
				if !sleep(ctx, step.Duration) {
					return ctx.Err()
				}
				if step.Fail {
					return fmt.Errorf("%s: %w", step.Label, ErrSimulated)
				}
				return nil
			}, step.Options...)

			mu.Lock()
			res.Ops[i] = OpResult{Label: step.Label, Started: began, Ended: time.Since(start), Err: err}
			mu.Unlock()
		})
	}

	allDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(allDone)
	}()

	opsDone := allDone
	for finished := false; !finished; {
		select {
		case v, ok := <-changes:
			if !ok {
				<-allDone
				return res, ctx.Err()
			}
			record(v)
			finished = !v && isClosed(allDone)
		case <-opsDone:
			opsDone = nil
			finished = !coord.Visible()
		case <-ctx.Done():
			<-allDone
			return res, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		<-allDone
		return res, err
	}
	// A hide may have been delivered after Visible was read.
	for drained := false; !drained; {
		select {
		case v, ok := <-changes:
			if ok {
				record(v)
			} else {
				drained = true
			}
		default:
			drained = true
		}
	}

	res.Elapsed = time.Since(start)
	logger.Info("scenario finished",
		"scenario", s.Name,
		"transitions", len(res.Transitions),
		"elapsed_ms", res.Elapsed.Milliseconds())
	return res, nil
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// Check compares the observed transitions with the scenario's expectation.
// Each transition may be off by at most tolerance.
func (r Result) Check(tolerance time.Duration) error {
	want := r.Scenario.Expect
	if len(r.Transitions) != len(want) {
		return fmt.Errorf("%s: expected %d transitions %s, got %d %s",
			r.Scenario.Name, len(want), formatTransitions(want), len(r.Transitions), formatTransitions(r.Transitions))
	}

	var problems []string
	for i, got := range r.Transitions {
		exp := want[i]
		if got.Visible != exp.Visible {
			problems = append(problems, fmt.Sprintf("transition %d: expected visible=%v, got %v", i, exp.Visible, got.Visible))
			continue
		}
		if diff := (got.At - exp.At).Abs(); diff > tolerance {
			problems = append(problems, fmt.Sprintf("transition %d: expected at %v, got %v", i, exp.At, got.At))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s: %s", r.Scenario.Name, strings.Join(problems, "; "))
	}
	return nil
}

// Timeline renders the observed transitions, e.g. "[show@400ms hide@1s]".
func (r Result) Timeline() string {
	return formatTransitions(r.Transitions)
}

func formatTransitions(trs []Transition) string {
	parts := make([]string, len(trs))
	for i, tr := range trs {
		state := "hide"
		if tr.Visible {
			state = "show"
		}
		parts[i] = fmt.Sprintf("%s@%v", state, tr.At.Round(time.Millisecond))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
