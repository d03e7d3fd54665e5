package osd

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/xdg"
	"gopkg.in/yaml.v3"
)

// Settings stores user preferences persisted as YAML under the XDG
// config directory ($XDG_CONFIG_HOME/vosd/settings.yaml).
type Settings struct {
	Theme      string   `yaml:"theme,omitempty"`
	Step       int      `yaml:"step"`
	AutohideMs int      `yaml:"autohide_ms"`
	Devices    []string `yaml:"devices,omitempty"` // explicit event device paths; empty = auto-discover
	LogLevel   string   `yaml:"log_level,omitempty"`
	LogFormat  string   `yaml:"log_format,omitempty"`
}

// DefaultSettings returns default settings.
func DefaultSettings() *Settings {
	return &Settings{
		Step:       DefaultStep,
		AutohideMs: 1600,
	}
}

// settingsFile locates an existing settings file via XDG search paths.
// VOSD_CONFIG overrides the search for testing and portable setups.
func settingsFile() (string, error) {
	paths := xdg.Paths{
		Override:  os.Getenv("VOSD_CONFIG"),
		XDGSuffix: "vosd",
	}
	return paths.ConfigFile("settings.yaml")
}

// savePath is where Save writes: the user-level XDG config home, which
// may not exist yet (unlike settingsFile, which only finds existing
// files).
func savePath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("vosd", "settings.yaml")
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "vosd", "settings.yaml")
}

// LoadSettings loads settings from YAML or returns defaults.
func LoadSettings() *Settings {
	path, err := settingsFile()
	if err != nil {
		return DefaultSettings()
	}
	return loadSettings(path)
}

func loadSettings(path string) *Settings {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		slog.Error("parse settings", "path", path, "err", err)
		return DefaultSettings()
	}
	s.normalize()
	return s
}

// Save writes settings to YAML, creating the config directory if
// needed.
func (s *Settings) Save() error {
	return s.save(savePath())
}

func (s *Settings) save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// normalize clamps out-of-range values back to defaults so a hand-
// edited file cannot wedge the applet.
func (s *Settings) normalize() {
	if s.Step < 1 || s.Step > 50 {
		s.Step = DefaultStep
	}
	if s.AutohideMs < 200 || s.AutohideMs > 60000 {
		s.AutohideMs = 1600
	}
}
