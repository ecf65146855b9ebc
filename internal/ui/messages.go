package ui

import (
	"time"

	"github.com/open-cli-collective/opencli-mcp/internal/tools"
)

// Bubble Tea messages
type statusMsg struct {
	status tools.ToolStatus
}

// update flow messages
type updateDoneMsg struct {
	results []tools.UpdateCandidate
	err     error
}

type installDoneMsg struct {
	results []tools.UpdateCandidate
	err     error
}

// periodic tick for the refreshed-at clock
type tickMsg time.Time
