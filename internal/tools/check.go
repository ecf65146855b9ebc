package tools

import (
	"context"
	"strings"
	"time"
)

// probeRun is swapped in tests to fake subprocess probes.
var probeRun = Run

// InstalledVersion resolves a tool's binary and probes its version.
// Returns a NotInstalledError when the binary is missing and
// ErrVersionUnavailable when the probe output carries no version.
func InstalledVersion(ctx context.Context, d ToolDescriptor, timeout time.Duration) (string, error) {
	path, err := Resolve(d)
	if err != nil {
		return "", err
	}
	return versionAt(ctx, path, d, timeout)
}

// versionAt probes the binary at path. Some CLIs print their version to
// stderr, so both streams are tried, stdout first. The exit code is
// ignored: a tool that prints a version while exiting non-zero still
// counts.
func versionAt(ctx context.Context, path string, d ToolDescriptor, timeout time.Duration) (string, error) {
	res, err := probeRun(ctx, Options{Path: path, Args: d.VersionArgs, Timeout: timeout})
	if err != nil {
		return "", err
	}
	if res.TimedOut {
		return "", ErrVersionUnavailable
	}
	if v := ParseVersion(res.Stdout); v != "" {
		return v, nil
	}
	if v := ParseVersion(res.Stderr); v != "" {
		return v, nil
	}
	// keep the first non-empty line for tools with unusual version shapes
	if line := firstLine(res.Stdout); line != "" {
		return line, nil
	}
	if line := firstLine(res.Stderr); line != "" {
		return line, nil
	}
	return "", ErrVersionUnavailable
}

// CheckTool resolves a tool and probes its version, producing one status
// row. Latest stays empty here; the reconciler fills it when asked.
func CheckTool(ctx context.Context, d ToolDescriptor, timeout time.Duration) ToolStatus {
	st := ToolStatus{ID: d.ID, Source: d.Source}
	path, err := Resolve(d)
	if err != nil {
		st.Err = err.Error()
		return st
	}
	st.Installed = true
	st.Path = path
	v, err := versionAt(ctx, path, d, timeout)
	if err != nil {
		// installed but unprobeable is a report, not a failure
		st.Err = err.Error()
		return st
	}
	st.Version = v
	return st
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.Split(s, "\n")[0]
}
