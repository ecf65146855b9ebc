package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Brew drives Homebrew for cask-sourced tools. run is swappable in
// tests so no real brew is needed.
type Brew struct {
	path string
	run  func(ctx context.Context, name string, args ...string) (string, error)
}

// NewBrew locates the brew binary: PATH first, then the standard Apple
// silicon and Intel prefixes.
func NewBrew() (*Brew, error) {
	p, err := brewPath()
	if err != nil {
		return nil, err
	}
	return &Brew{path: p, run: runCmd}, nil
}

// NewBrewAt uses the given brew binary without any discovery. Settings
// point here when brew lives outside the standard prefixes.
func NewBrewAt(path string) *Brew {
	return &Brew{path: path, run: runCmd}
}

func brewPath() (string, error) {
	if p, err := exec.LookPath("brew"); err == nil {
		return p, nil
	}
	for _, p := range []string{"/opt/homebrew/bin/brew", "/usr/local/bin/brew"} {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, nil
		}
	}
	return "", errors.New("brew not found; install Homebrew from https://brew.sh")
}

// TapOf returns the tap portion of a fully qualified cask name, or ""
// for a core cask.
func TapOf(cask string) string {
	i := strings.LastIndex(cask, "/")
	if i < 0 {
		return ""
	}
	return cask[:i]
}

// caskToken is the bare cask name brew reports in its JSON output.
func caskToken(cask string) string {
	return cask[strings.LastIndex(cask, "/")+1:]
}

// LatestCaskVersion asks the index for the newest published version of a
// cask via brew's JSON interface.
func (b *Brew) LatestCaskVersion(ctx context.Context, cask string) (string, error) {
	out, err := b.run(ctx, b.path, "info", "--cask", "--json=v2", cask)
	if err != nil && strings.TrimSpace(out) == "" {
		return "", err
	}
	var data struct {
		Casks []struct {
			Token   string `json:"token"`
			Version string `json:"version"`
		} `json:"casks"`
	}
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		return "", fmt.Errorf("parse brew info for %s: %w", cask, err)
	}
	for _, c := range data.Casks {
		if c.Token == cask || c.Token == caskToken(cask) {
			return c.Version, nil
		}
	}
	return "", fmt.Errorf("cask not found: %s", cask)
}

// UpgradeCask upgrades an installed cask to its latest version.
func (b *Brew) UpgradeCask(ctx context.Context, cask string) (string, error) {
	out, err := b.run(ctx, b.path, "upgrade", "--cask", cask)
	if err != nil {
		return out, fmt.Errorf("brew upgrade %s: %w: %s", cask, err, lastLine(out))
	}
	return out, nil
}

// InstallCask installs a cask.
func (b *Brew) InstallCask(ctx context.Context, cask string) (string, error) {
	out, err := b.run(ctx, b.path, "install", "--cask", cask)
	if err != nil {
		return out, fmt.Errorf("brew install %s: %w: %s", cask, err, lastLine(out))
	}
	return out, nil
}

// EnsureTap registers a third-party tap so its casks resolve. Tapping an
// already-tapped repository is a no-op for brew.
func (b *Brew) EnsureTap(ctx context.Context, tap string) error {
	out, err := b.run(ctx, b.path, "tap", tap)
	if err != nil {
		return fmt.Errorf("brew tap %s: %w: %s", tap, err, lastLine(out))
	}
	return nil
}

// Latest implements PackageManager.
func (b *Brew) Latest(ctx context.Context, d ToolDescriptor) (string, error) {
	return b.LatestCaskVersion(ctx, d.Cask)
}

// Upgrade implements PackageManager.
func (b *Brew) Upgrade(ctx context.Context, d ToolDescriptor) (string, error) {
	return b.UpgradeCask(ctx, d.Cask)
}

// Install implements PackageManager. The tool's tap is registered first
// so a fresh machine can install straight away.
func (b *Brew) Install(ctx context.Context, d ToolDescriptor) (string, error) {
	if tap := TapOf(d.Cask); tap != "" {
		if err := b.EnsureTap(ctx, tap); err != nil {
			return "", err
		}
	}
	return b.InstallCask(ctx, d.Cask)
}

// lastLine trims brew's output to its final non-empty line, which is
// where brew puts the actual error.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
