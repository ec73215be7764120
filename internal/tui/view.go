package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Iron-Ham/loadcoord/internal/tui/styles"
	"github.com/Iron-Ham/loadcoord/internal/util"
	"github.com/charmbracelet/lipgloss"
)

// View renders the screen
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("loadcoord"))
	b.WriteString("\n")

	t := m.coord.Timing()
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf(
		"show after %s, min display %s", t.ShowAfter, t.MinDisplayTime)))
	b.WriteString("\n\n")

	b.WriteString(m.renderSignal())
	b.WriteString("\n")
	if len(m.running) > 0 {
		labels := make([]string, 0, len(m.running))
		for _, label := range m.running {
			labels = append(labels, label)
		}
		slices.Sort(labels)
		b.WriteString(styles.Muted.Render("in flight: " + strings.Join(labels, ", ")))
		b.WriteString("\n")
	}
	b.WriteString(m.renderHistory())
	b.WriteString("\n")

	if m.errorMessage != "" {
		b.WriteString(util.FitLine(styles.ErrorMsg.Render("Error: "+m.errorMessage), m.width))
		b.WriteString("\n")
	} else if m.infoMessage != "" {
		b.WriteString(util.FitLine(styles.Muted.Render(m.infoMessage), m.width))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

// renderSignal draws the spinner overlay or the idle line
func (m Model) renderSignal() string {
	active := m.coord.Active()
	if m.visible {
		return styles.Overlay.Render(fmt.Sprintf("%s Loading (%d active)", m.spinner.View(), active))
	}
	state := m.coord.Phase().String()
	if m.closed {
		state = "stopped"
	}
	return styles.StatusBar.Render(fmt.Sprintf("%s (%d active)", state, active))
}

// labelWidth is the history column reserved for operation labels
const labelWidth = 10

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return styles.ContentBox.Render(styles.Muted.Render("no finished operations"))
	}
	lines := make([]string, 0, len(m.history))
	for _, e := range m.history {
		status := "ok"
		if e.err != nil {
			status = "failed"
		}
		icon := lipgloss.NewStyle().Foreground(styles.StatusColor(status)).Render(styles.StatusIcon(status))
		line := fmt.Sprintf("%s %-10s %6s", icon, util.TruncateString(e.label, labelWidth), e.elapsed.Round(time.Millisecond))
		if e.err != nil {
			line += " " + styles.Error.Render(e.err.Error())
		}
		// Border and padding take four columns
		lines = append(lines, util.FitLine(line, m.width-4))
	}
	return styles.ContentBox.Render(strings.Join(lines, "\n"))
}

func (m Model) renderHelp() string {
	keys := []struct{ key, desc string }{
		{"f", "fast"},
		{"s", "slow"},
		{"d", "straddle"},
		{"e", "fail"},
		{"b", "burst"},
		{"c", "clear"},
		{"q", "quit"},
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, styles.HelpKey.Render(k.key)+" "+k.desc)
	}
	return styles.HelpBar.Render(strings.Join(parts, "  "))
}
