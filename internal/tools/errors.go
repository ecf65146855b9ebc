package tools

import (
	"errors"
	"fmt"
	"strings"
)

// ErrVersionUnavailable means the binary ran but no version could be
// recognized in its probe output.
var ErrVersionUnavailable = errors.New("version unavailable")

// UnknownToolError reports a tool ID that is not in the registry.
type UnknownToolError struct {
	ID          ToolID
	Suggestions []ToolID
}

func (e *UnknownToolError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("unknown tool: %s (did you mean %s?)", e.ID, joinIDs(e.Suggestions))
	}
	return fmt.Sprintf("unknown tool: %s", e.ID)
}

// NotInstalledError reports a registered tool whose binary is missing
// from PATH.
type NotInstalledError struct {
	ID     ToolID
	Binary string
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("%s is not installed (binary %q not found in PATH)", e.ID, e.Binary)
}

// LaunchError reports a subprocess that could not be started at all, as
// opposed to one that ran and failed.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

func joinIDs(ids []ToolID) string {
	ss := make([]string, 0, len(ids))
	for _, id := range ids {
		ss = append(ss, string(id))
	}
	return strings.Join(ss, ", ")
}
