package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/open-cli-collective/opencli-mcp/internal/tools"
)

// Commands
func checkAllCmd(rec *tools.Reconciler) tea.Cmd {
	ds := rec.Registry().Descriptors()
	cmds := make([]tea.Cmd, 0, len(ds))
	for _, d := range ds {
		cmds = append(cmds, func() tea.Msg {
			st, _ := rec.Status(context.Background(), d.ID, true)
			return statusMsg{status: st}
		})
	}
	return tea.Batch(cmds...)
}

func updateAllCmd(rec *tools.Reconciler) tea.Cmd {
	return func() tea.Msg {
		res, err := rec.ApplyUpdates(context.Background(), nil)
		return updateDoneMsg{results: res, err: err}
	}
}

func installMissingCmd(rec *tools.Reconciler) tea.Cmd {
	return func() tea.Msg {
		res, err := rec.InstallMissing(context.Background())
		return installDoneMsg{results: res, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}
