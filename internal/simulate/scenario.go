package simulate

import (
	"time"

	"github.com/Iron-Ham/loadcoord/internal/loading"
)

// Step is one simulated operation inside a scenario.
type Step struct {
	Label    string
	Start    time.Duration // offset from the scenario start
	Duration time.Duration
	Fail     bool                 // return ErrSimulated instead of a result
	Options  []loading.CallOption // per-call timing overrides
}

// Transition is a change of the busy signal at an offset from the start.
type Transition struct {
	At      time.Duration
	Visible bool
}

// Scenario is a scripted set of operations run against one coordinator,
// together with the signal transitions it is expected to produce.
type Scenario struct {
	Name        string
	Description string
	Timing      loading.Timing
	Steps       []Step
	Expect      []Transition
}

const ms = time.Millisecond

// Scenarios returns the built-in scenarios in presentation order.
func Scenarios() []Scenario {
	def := loading.DefaultTiming()
	return []Scenario{
		{
			Name:        "fast",
			Description: "a 100ms operation finishes before the spinner may appear",
			Timing:      def,
			Steps:       []Step{{Label: "fetch", Duration: 100 * ms}},
		},
		{
			Name:        "slow",
			Description: "a 1s operation shows the spinner at 400ms and hides it when done",
			Timing:      def,
			Steps:       []Step{{Label: "sync", Duration: 1000 * ms}},
			Expect:      []Transition{{400 * ms, true}, {1000 * ms, false}},
		},
		{
			Name:        "straddle",
			Description: "a 450ms operation keeps the spinner up for the 300ms minimum",
			Timing:      def,
			Steps:       []Step{{Label: "save", Duration: 450 * ms}},
			Expect:      []Transition{{400 * ms, true}, {700 * ms, false}},
		},
		{
			Name:        "overlap",
			Description: "100ms and 1s operations started together follow the longer one",
			Timing:      def,
			Steps: []Step{
				{Label: "avatar", Duration: 100 * ms},
				{Label: "feed", Duration: 1000 * ms},
			},
			Expect: []Transition{{400 * ms, true}, {1000 * ms, false}},
		},
		{
			Name:        "failure",
			Description: "an operation failing after 50ms never shows the spinner",
			Timing:      def,
			Steps:       []Step{{Label: "login", Duration: 50 * ms, Fail: true}},
		},
		{
			Name:        "burst",
			Description: "ten immediate operations with show-after 0 produce a single cycle",
			Timing:      loading.Timing{ShowAfter: 0, MinDisplayTime: 300 * ms},
			Steps:       burst(10, 5*ms),
			Expect:      []Transition{{0, true}, {300 * ms, false}},
		},
		{
			Name:        "resume",
			Description: "work starting during the minimum display time keeps the spinner up",
			Timing:      def,
			Steps: []Step{
				{Label: "save", Duration: 450 * ms},
				{Label: "refresh", Start: 500 * ms, Duration: 400 * ms},
			},
			Expect: []Transition{{400 * ms, true}, {900 * ms, false}},
		},
	}
}

func burst(n int, d time.Duration) []Step {
	steps := make([]Step, n)
	for i := range steps {
		steps[i] = Step{Label: "burst", Duration: d}
	}
	return steps
}

// Lookup returns the built-in scenario with the given name.
func Lookup(name string) (Scenario, bool) {
	for _, s := range Scenarios() {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// Names returns the names of the built-in scenarios.
func Names() []string {
	all := Scenarios()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	return names
}

// Scale returns a copy of s with every duration multiplied by f.
// Per-call options are kept as they are.
func (s Scenario) Scale(f float64) Scenario {
	scale := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * f)
	}

	out := s
	out.Timing = loading.Timing{
		ShowAfter:      scale(s.Timing.ShowAfter),
		MinDisplayTime: scale(s.Timing.MinDisplayTime),
	}
	out.Steps = make([]Step, len(s.Steps))
	for i, step := range s.Steps {
		step.Start = scale(step.Start)
		step.Duration = scale(step.Duration)
		out.Steps[i] = step
	}
	out.Expect = make([]Transition, len(s.Expect))
	for i, tr := range s.Expect {
		out.Expect[i] = Transition{At: scale(tr.At), Visible: tr.Visible}
	}
	return out
}
