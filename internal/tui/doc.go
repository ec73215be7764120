// Package tui provides the terminal screen for the loading coordinator demo.
//
// The screen subscribes to a [loading.Coordinator]'s visible signal and
// renders a spinner overlay while it is on. Keys start simulated
// operations of different lengths so the show delay and the minimum
// display time can be watched live: a fast operation never shows the
// spinner, a slow one shows it after the delay, and a failing one reports
// its error in the status line and on the event bus.
package tui
