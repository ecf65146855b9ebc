package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Npm drives the npm registry for npm-sourced tools. The built-in
// registry ships cask tools only, but the reconciler dispatches on
// Source, so an npm descriptor works out of the box.
type Npm struct {
	run func(ctx context.Context, name string, args ...string) (string, error)
}

// NewNpm returns an Npm that shells out to the npm binary in PATH.
func NewNpm() *Npm {
	return &Npm{run: runCmd}
}

// GlobalVersion queries npm for the globally installed package version.
func (n *Npm) GlobalVersion(ctx context.Context, pkg string) (string, error) {
	out, err := n.run(ctx, "npm", "ls", "-g", "--depth=0", pkg, "--json")
	if err != nil && out == "" {
		return "", err
	}
	var data struct {
		Dependencies map[string]struct {
			Version string `json:"version"`
		} `json:"dependencies"`
	}
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		return "", err
	}
	if d, ok := data.Dependencies[pkg]; ok {
		return d.Version, nil
	}
	return "", fmt.Errorf("package not found: %s", pkg)
}

// LatestVersion queries the npm registry for the latest dist-tag.
func (n *Npm) LatestVersion(ctx context.Context, pkg string) (string, error) {
	out, err := n.run(ctx, "npm", "view", pkg, "version", "--json")
	if err != nil && out == "" {
		return "", err
	}
	s := strings.TrimSpace(out)
	// npm may return a bare JSON string like "1.2.3" or plain 1.2.3
	if strings.HasPrefix(s, "\"") && strings.HasSuffix(s, "\"") {
		return strings.Trim(s, "\""), nil
	}
	var v string
	if json.Unmarshal([]byte(s), &v) == nil && v != "" {
		return v, nil
	}
	return strings.Split(s, "\n")[0], nil
}

// UpgradeLatest installs the latest version globally.
func (n *Npm) UpgradeLatest(ctx context.Context, pkg string) (string, error) {
	// --no-fund and --no-audit cut noise and time
	return n.run(ctx, "npm", "install", "-g", fmt.Sprintf("%s@latest", pkg), "--no-fund", "--no-audit")
}

// Latest implements PackageManager.
func (n *Npm) Latest(ctx context.Context, d ToolDescriptor) (string, error) {
	return n.LatestVersion(ctx, d.Package)
}

// Upgrade implements PackageManager.
func (n *Npm) Upgrade(ctx context.Context, d ToolDescriptor) (string, error) {
	return n.UpgradeLatest(ctx, d.Package)
}

// Install implements PackageManager. npm has no separate install verb
// for globals; installing latest covers both cases.
func (n *Npm) Install(ctx context.Context, d ToolDescriptor) (string, error) {
	return n.UpgradeLatest(ctx, d.Package)
}
