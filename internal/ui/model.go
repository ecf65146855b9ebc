package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/open-cli-collective/opencli-mcp/internal/tools"
)

// Model for the status dashboard
type model struct {
	rec   *tools.Reconciler
	order []tools.ToolID
	rows  map[tools.ToolID]tools.ToolStatus
	notes map[tools.ToolID]string

	pending int  // probes still in flight
	busy    bool // an update or install pass is running

	sp        spinner.Model
	notice    string
	updatedAt time.Time
	now       time.Time
	width     int
	quitting  bool
}

func initialModel(rec *tools.Reconciler) model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = AccentBold()
	return model{
		rec:     rec,
		order:   rec.Registry().IDs(),
		rows:    make(map[tools.ToolID]tools.ToolStatus, rec.Registry().Len()),
		notes:   make(map[tools.ToolID]string),
		pending: rec.Registry().Len(),
		sp:      sp,
		now:     time.Now(),
	}
}

// InitialModel is the public constructor for the dashboard.
func InitialModel(rec *tools.Reconciler) tea.Model { return initialModel(rec) }

func (m model) Init() tea.Cmd {
	return tea.Batch(checkAllCmd(m.rec), m.sp.Tick, tickCmd())
}

// Run starts the dashboard and blocks until the user quits.
func Run(rec *tools.Reconciler) error {
	p := tea.NewProgram(InitialModel(rec), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
