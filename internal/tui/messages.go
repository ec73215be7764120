package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// visibilityMsg carries one value of the coordinator's visible signal.
type visibilityMsg struct {
	visible bool
}

// visibilityClosedMsg is sent once the coordinator closes the subscription.
type visibilityClosedMsg struct{}

// opDoneMsg is sent when a single simulated operation has ended
type opDoneMsg struct {
	id      string
	label   string
	elapsed time.Duration
	err     error
}

// burstDoneMsg is sent when every operation of a burst has ended
type burstDoneMsg struct {
	size    int
	failed  int
	elapsed time.Duration
}

// ConfigReloadedMsg tells the screen that a new config file was applied.
type ConfigReloadedMsg struct {
	Path         string
	HistoryLines int
}

// waitForVisibility blocks on the subscription until the next value arrives.
func waitForVisibility(ch <-chan bool) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return visibilityClosedMsg{}
		}
		return visibilityMsg{visible: v}
	}
}
