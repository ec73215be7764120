// Package simulate plays scripted operation timelines against a loading
// coordinator and records when its busy signal turns on and off.
//
// The built-in [Scenarios] cover the fast, slow, straddling, overlapping,
// failing, burst and resumed cases. [Result.Check] compares what happened
// with what each scenario expects, within a tolerance that absorbs
// scheduler jitter on real clocks.
package simulate
