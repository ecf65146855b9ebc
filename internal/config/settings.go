package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const settingsFile = "settings.json"

// Defaults applied when the corresponding field is unset in settings.json.
const (
	DefaultDispatchTimeout = 60 * time.Second
	DefaultVersionTimeout  = 5 * time.Second
	DefaultIndexTimeout    = 30 * time.Second
	DefaultUpdateTimeout   = 300 * time.Second
	DefaultOpsAddr         = "127.0.0.1:8787"
)

// Settings is the on-disk structure of settings.json. Timeouts are whole
// seconds; zero means "use the default".
type Settings struct {
	// DispatchTimeoutSec bounds a single wrapped CLI invocation.
	DispatchTimeoutSec int `json:"dispatch_timeout_sec,omitempty"`
	// VersionTimeoutSec bounds a local --version probe.
	VersionTimeoutSec int `json:"version_timeout_sec,omitempty"`
	// IndexTimeoutSec bounds a package index lookup (brew info).
	IndexTimeoutSec int `json:"index_timeout_sec,omitempty"`
	// UpdateTimeoutSec bounds an install or upgrade of one tool.
	UpdateTimeoutSec int `json:"update_timeout_sec,omitempty"`
	// OpsAddr is the listen address of the HTTP ops endpoint.
	OpsAddr string `json:"ops_addr,omitempty"`
	// BrewPath overrides brew discovery for nonstandard installs.
	BrewPath string `json:"brew_path,omitempty"`
	// Disabled lists tool IDs that must not be exposed or dispatched.
	Disabled []string `json:"disabled,omitempty"`
}

// LoadSettings reads settings.json from the config dir. A missing file
// yields zero settings (all defaults).
func LoadSettings() (Settings, error) {
	p, err := SettingsPath()
	if err != nil {
		return Settings{}, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, err
	}
	var s Settings
	if err := json.Unmarshal(b, &s); err != nil {
		return Settings{}, err
	}
	s.normalize()
	return s, nil
}

// SaveSettings writes settings.json, creating the directory if needed.
func SaveSettings(s Settings) error {
	p, err := SettingsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	s.normalize()
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o644)
}

// normalize clamps negative timeouts and dedupes the disabled list for
// stable output.
func (s *Settings) normalize() {
	if s.DispatchTimeoutSec < 0 {
		s.DispatchTimeoutSec = 0
	}
	if s.VersionTimeoutSec < 0 {
		s.VersionTimeoutSec = 0
	}
	if s.IndexTimeoutSec < 0 {
		s.IndexTimeoutSec = 0
	}
	if s.UpdateTimeoutSec < 0 {
		s.UpdateTimeoutSec = 0
	}
	s.OpsAddr = strings.TrimSpace(s.OpsAddr)
	s.BrewPath = strings.TrimSpace(s.BrewPath)
	m := map[string]bool{}
	for _, id := range s.Disabled {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		m[id] = true
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	if len(out) == 0 {
		out = nil
	}
	s.Disabled = out
}

// DispatchTimeout returns the effective dispatch timeout.
func (s Settings) DispatchTimeout() time.Duration {
	if s.DispatchTimeoutSec > 0 {
		return time.Duration(s.DispatchTimeoutSec) * time.Second
	}
	return DefaultDispatchTimeout
}

// VersionTimeout returns the effective version probe timeout.
func (s Settings) VersionTimeout() time.Duration {
	if s.VersionTimeoutSec > 0 {
		return time.Duration(s.VersionTimeoutSec) * time.Second
	}
	return DefaultVersionTimeout
}

// IndexTimeout returns the effective package index timeout.
func (s Settings) IndexTimeout() time.Duration {
	if s.IndexTimeoutSec > 0 {
		return time.Duration(s.IndexTimeoutSec) * time.Second
	}
	return DefaultIndexTimeout
}

// UpdateTimeout returns the effective install/upgrade timeout.
func (s Settings) UpdateTimeout() time.Duration {
	if s.UpdateTimeoutSec > 0 {
		return time.Duration(s.UpdateTimeoutSec) * time.Second
	}
	return DefaultUpdateTimeout
}

// Addr returns the effective ops endpoint listen address.
func (s Settings) Addr() string {
	if s.OpsAddr != "" {
		return s.OpsAddr
	}
	return DefaultOpsAddr
}

// IsDisabled reports whether the given tool ID is disabled.
func (s Settings) IsDisabled(id string) bool {
	for _, d := range s.Disabled {
		if d == id {
			return true
		}
	}
	return false
}
