package tools

import (
	"encoding/json"
	"strings"
)

// Tool identifiers and metadata
type ToolID string

const (
	ToolJira     ToolID = "jira-ticket-cli"
	ToolSlack    ToolID = "slck"
	ToolConfl    ToolID = "cfl"
	ToolNewRelic ToolID = "newrelic-cli"
	ToolGoogle   ToolID = "gro"
)

// Source identifies the package manager that owns a tool's install and
// update lifecycle.
type Source string

const (
	SourceCask Source = "cask"
	SourceNpm  Source = "npm"
)

// ToolDescriptor is one row of the static registry: everything needed to
// resolve, invoke, probe and update a wrapped CLI.
type ToolDescriptor struct {
	ID          ToolID
	DisplayName string
	Binary      string   // binary name resolved via PATH
	Summary     string   // one-line description exposed to clients
	VersionArgs []string // argv appended for a version probe
	JSONArgs    []string // argv appended to request machine-readable output
	Source      Source
	Cask        string // fully qualified cask name (tap/name); cask source only
	Package     string // npm package name; npm source only
}

// ExecutionResult is the outcome of one subprocess run. A timed-out run
// carries whatever output was captured before the kill.
type ExecutionResult struct {
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout,omitempty"`
	Stderr   string `json:"stderr,omitempty"`
	TimedOut bool   `json:"timed_out,omitempty"`
}

// ToolStatus is a point-in-time report for one tool.
type ToolStatus struct {
	ID        ToolID `json:"id"`
	Source    Source `json:"source"`
	Installed bool   `json:"installed"`
	Path      string `json:"path,omitempty"`
	Version   string `json:"version,omitempty"`
	Latest    string `json:"latest,omitempty"`
	Err       string `json:"error,omitempty"`
}

// UpdateState tracks a tool through one check/update pass.
type UpdateState string

const (
	StateRequested    UpdateState = "requested"
	StateChecking     UpdateState = "checking"
	StateUpToDate     UpdateState = "up-to-date"
	StateNeedsUpdate  UpdateState = "needs-update"
	StateUpdating     UpdateState = "updating"
	StateUpdated      UpdateState = "updated"
	StateUpdateFailed UpdateState = "update-failed"
)

// Terminal reports whether no further transition can happen in this pass.
func (s UpdateState) Terminal() bool {
	switch s {
	case StateUpToDate, StateUpdated, StateUpdateFailed:
		return true
	}
	return false
}

// UpdateCandidate is the per-tool outcome of a check or update pass.
// Installed reflects the version present after the pass completed.
type UpdateCandidate struct {
	ID        ToolID      `json:"id"`
	Installed string      `json:"installed,omitempty"`
	Latest    string      `json:"latest,omitempty"`
	State     UpdateState `json:"state"`
	Detail    string      `json:"detail,omitempty"`
}

// CLIResult is the structured payload returned to protocol clients for a
// CLI invocation. When stdout parses as JSON it is carried in Data and
// Output stays empty, so structured tool output passes through untouched.
type CLIResult struct {
	OK       bool            `json:"success"`
	ExitCode int             `json:"exit_code"`
	Data     json.RawMessage `json:"data,omitempty"`
	Output   string          `json:"output,omitempty"`
	Stderr   string          `json:"stderr,omitempty"`
	TimedOut bool            `json:"timed_out,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// ResultFrom converts an executor outcome into the client payload.
func ResultFrom(res ExecutionResult) CLIResult {
	out := CLIResult{
		OK:       res.ExitCode == 0 && !res.TimedOut,
		ExitCode: res.ExitCode,
		Stderr:   strings.TrimSpace(res.Stderr),
		TimedOut: res.TimedOut,
	}
	trimmed := strings.TrimSpace(res.Stdout)
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		out.Data = json.RawMessage(trimmed)
	} else {
		out.Output = trimmed
	}
	if res.TimedOut {
		out.Error = "command timed out"
	}
	return out
}
