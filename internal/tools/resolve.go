package tools

import "os/exec"

// Resolve finds the absolute path of a tool's binary in PATH. A missing
// binary yields a NotInstalledError; callers decide whether that is
// fatal or just a status to report.
func Resolve(d ToolDescriptor) (string, error) {
	path, err := exec.LookPath(d.Binary)
	if err != nil {
		return "", &NotInstalledError{ID: d.ID, Binary: d.Binary}
	}
	return path, nil
}
