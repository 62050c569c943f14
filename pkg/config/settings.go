package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/kcaldas/tabslimiter/pkg/limiter"
	"github.com/kcaldas/tabslimiter/pkg/logging"
)

// Setting keys, shared by the settings file and the environment.
const (
	KeyTabNumberLimit   = "tab_number_limit"
	KeyLimitTabsByGroup = "limit_tabs_by_group"
	KeyCloseOrder       = "close_order"
	// KeyCloseLastTabFirst is the boolean older settings files use instead
	// of close_order: true means "right", false means "left".
	KeyCloseLastTabFirst = "close_last_tab_first"
)

// SettingsFileName is the file looked for in the settings directory.
const SettingsFileName = "TabsLimiter.yaml"

// FileSettings mirrors the settings file layout
type FileSettings struct {
	TabNumberLimit   int    `yaml:"tab_number_limit"`
	LimitTabsByGroup bool   `yaml:"limit_tabs_by_group"`
	CloseOrder       string `yaml:"close_order"`
}

// FromConfig converts a limiter configuration into its file form.
func FromConfig(cfg limiter.Config) FileSettings {
	return FileSettings{
		TabNumberLimit:   cfg.Limit,
		LimitTabsByGroup: cfg.LimitByGroup,
		CloseOrder:       string(cfg.CloseOrder),
	}
}

// DefaultSettingsPath returns ~/.config/tabslimiter/TabsLimiter.yaml.
func DefaultSettingsPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "tabslimiter", SettingsFileName), nil
}

// LoadDotEnv loads dir/.env into the process environment. Variables that
// are already set win. A missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Settings reads limiter settings from a YAML file with environment
// overrides. It is a limiter.ConfigSource: the file is read again on every
// Reload so edits apply without a restart.
type Settings struct {
	path   string
	logger logging.Logger
}

// NewSettings creates a settings source for path. "~" is expanded; an empty
// path means environment only.
func NewSettings(path string) *Settings {
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}
	return &Settings{
		path:   path,
		logger: logging.NewComponentLogger("config"),
	}
}

// Path returns the settings file location.
func (s *Settings) Path() string {
	return s.path
}

// Load reads the settings file. A missing file yields an environment-only
// manager.
func (s *Settings) Load() (Manager, error) {
	if s.path == "" {
		return NewConfigManager(), nil
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewConfigManager(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", s.path, err)
	}
	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", s.path, err)
	}
	return NewMapManager(values, EnvPrefix), nil
}

// Reload returns the current settings, keeping previous values for keys
// that are absent or invalid.
func (s *Settings) Reload(previous limiter.Config) limiter.Config {
	m, err := s.Load()
	if err != nil {
		s.logger.Debug("settings unreadable, using environment only", "error", err)
		m = NewConfigManager()
	}
	return Resolve(m, previous, s.logger)
}

// Resolve builds a limiter configuration from m.
func Resolve(m Manager, previous limiter.Config, logger logging.Logger) limiter.Config {
	cfg := limiter.Config{
		Limit:        m.GetIntWithDefault(KeyTabNumberLimit, previous.Limit),
		LimitByGroup: m.GetBoolWithDefault(KeyLimitTabsByGroup, previous.LimitByGroup),
		CloseOrder:   previous.CloseOrder,
	}

	switch {
	case m.Has(KeyCloseOrder):
		raw, _ := m.GetString(KeyCloseOrder)
		order, err := limiter.ParseCloseOrder(raw)
		if err != nil {
			logger.Debug("ignoring close order", "error", err)
			break
		}
		cfg.CloseOrder = order
	case m.Has(KeyCloseLastTabFirst):
		lastFirst, err := m.GetBool(KeyCloseLastTabFirst)
		if err != nil {
			logger.Debug("ignoring close order", "error", err)
			break
		}
		if lastFirst {
			cfg.CloseOrder = limiter.CloseRight
		} else {
			cfg.CloseOrder = limiter.CloseLeft
		}
	}
	if cfg.CloseOrder == "" {
		cfg.CloseOrder = limiter.DefaultCloseOrder
	}
	return cfg
}

// Marshal renders cfg as a settings file.
func Marshal(cfg limiter.Config) ([]byte, error) {
	data, err := yaml.Marshal(FromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("error marshalling settings: %w", err)
	}
	return data, nil
}

// MapSettings is a ConfigSource over fixed values, such as the settings
// block of a scenario. The environment is not consulted.
type MapSettings map[string]any

func (m MapSettings) Reload(previous limiter.Config) limiter.Config {
	return Resolve(NewMapManager(m, ""), previous, logging.NewComponentLogger("config"))
}

// ErrSettingsExist is returned by Write when the file is already there.
var ErrSettingsExist = errors.New("settings file already exists")

// Write saves cfg to the settings file, creating its directory. An existing
// file is only replaced when overwrite is set.
func (s *Settings) Write(cfg limiter.Config, overwrite bool) error {
	if s.path == "" {
		return errors.New("no settings path")
	}
	if !overwrite {
		if _, err := os.Stat(s.path); err == nil {
			return fmt.Errorf("%w: %s", ErrSettingsExist, s.path)
		}
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("error writing settings: %w", err)
	}
	return nil
}
