package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/open-cli-collective/opencli-mcp/internal/tools"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			if m.busy || m.pending > 0 {
				return m, nil
			}
			m.pending = len(m.order)
			m.rows = make(map[tools.ToolID]tools.ToolStatus, len(m.order))
			m.notes = make(map[tools.ToolID]string)
			m.notice = ""
			return m, checkAllCmd(m.rec)
		case "u":
			if m.busy || m.pending > 0 {
				return m, nil
			}
			m.busy = true
			m.notice = "updating..."
			return m, updateAllCmd(m.rec)
		case "i":
			if m.busy || m.pending > 0 {
				return m, nil
			}
			m.busy = true
			m.notice = "installing missing tools..."
			return m, installMissingCmd(m.rec)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case statusMsg:
		m.rows[msg.status.ID] = msg.status
		if m.pending > 0 {
			m.pending--
		}
		if m.pending == 0 {
			m.updatedAt = time.Now()
		}
		return m, nil

	case updateDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.notice = fmt.Sprintf("update failed: %v", msg.err)
			return m, nil
		}
		updated := m.absorbResults(msg.results)
		if updated > 0 {
			m.notice = fmt.Sprintf("updated %d tool(s)", updated)
		} else {
			m.notice = "all tools up to date"
		}
		return m, m.refreshAfterPass()

	case installDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.notice = fmt.Sprintf("install failed: %v", msg.err)
			return m, nil
		}
		if len(msg.results) == 0 {
			m.notice = "nothing to install"
			return m, nil
		}
		m.absorbResults(msg.results)
		m.notice = fmt.Sprintf("installed %d tool(s)", len(msg.results))
		return m, m.refreshAfterPass()

	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(msg)
		return m, cmd
	}
	return m, nil
}

// absorbResults records per-tool notes from an update or install pass
// and reports how many tools actually changed.
func (m *model) absorbResults(results []tools.UpdateCandidate) int {
	updated := 0
	for _, c := range results {
		if c.Detail != "" {
			m.notes[c.ID] = c.Detail
		} else {
			m.notes[c.ID] = string(c.State)
		}
		if c.State == tools.StateUpdated {
			updated++
		}
	}
	return updated
}

// refreshAfterPass reprobes everything so the table reflects the new
// binaries.
func (m *model) refreshAfterPass() tea.Cmd {
	m.pending = len(m.order)
	m.rows = make(map[tools.ToolID]tools.ToolStatus, len(m.order))
	return checkAllCmd(m.rec)
}
