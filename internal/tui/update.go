package tui

import (
	"fmt"

	"github.com/Iron-Ham/loadcoord/internal/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts listening to the loading signal
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForVisibility(m.visibility)}
	if m.visible {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeypress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case visibilityMsg:
		wasVisible := m.visible
		m.visible = msg.visible
		next := waitForVisibility(m.visibility)
		if m.visible && !wasVisible {
			return m, tea.Batch(next, m.spinner.Tick)
		}
		return m, next

	case visibilityClosedMsg:
		m.visible = false
		m.closed = true
		return m, nil

	case spinner.TickMsg:
		// Letting the tick chain lapse stops the animation while hidden.
		if !m.visible {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case opDoneMsg:
		delete(m.running, msg.id)
		m.recordFinished(historyEntry{label: msg.label, elapsed: msg.elapsed, err: msg.err})
		if msg.err != nil {
			m.reportFailure(msg.label, msg.err)
		}
		return m, nil

	case burstDoneMsg:
		label := fmt.Sprintf("burst x%d", msg.size)
		var err error
		if msg.failed > 0 {
			err = fmt.Errorf("%d of %d operations: %w", msg.failed, msg.size, ErrOperationFailed)
		}
		m.recordFinished(historyEntry{label: label, elapsed: msg.elapsed, err: err})
		if err != nil {
			m.reportFailure(label, err)
		}
		return m, nil

	case ConfigReloadedMsg:
		if msg.HistoryLines > 0 {
			m.historyLines = msg.HistoryLines
			m.trimHistory()
		}
		m.spinner.Style = styles.Spinner
		m.infoMessage = "config reloaded from " + msg.Path
		return m, nil
	}

	return m, nil
}

// handleKeypress processes keyboard input
func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		m.unsubscribe()
		return m, tea.Quit

	case "b":
		m.infoMessage = fmt.Sprintf("burst of %d started", burstSize)
		return m, runBurst(m.ctx, m.coord, burstSize, burstDuration)

	case "c":
		m.history = nil
		m.errorMessage = ""
		m.infoMessage = ""
		return m, nil
	}

	kind, ok := lookupOp(key)
	if !ok {
		return m, nil
	}
	tok := m.coord.Begin()
	m.running[tok.ID()] = kind.label
	m.errorMessage = ""
	m.infoMessage = kind.label + " operation started"
	return m, runOp(m.ctx, tok, kind)
}
