package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is prepended to upper-cased setting keys to form the
// environment variable that overrides them.
const EnvPrefix = "TABSLIMITER_"

// Manager provides configuration management functionality
type Manager interface {
	Has(key string) bool
	GetString(key string) (string, error)
	GetStringWithDefault(key, defaultValue string) string
	GetInt(key string) (int, error)
	GetIntWithDefault(key string, defaultValue int) int
	GetBool(key string) (bool, error)
	GetBoolWithDefault(key string, defaultValue bool) bool
}

// DefaultManager looks keys up in the environment first, then in values
// read from a settings file.
type DefaultManager struct {
	values    map[string]any
	envPrefix string
}

// NewConfigManager creates a manager that only reads the environment.
func NewConfigManager() Manager {
	return NewMapManager(nil, EnvPrefix)
}

// NewMapManager creates a manager over values. An empty envPrefix disables
// environment overrides.
func NewMapManager(values map[string]any, envPrefix string) Manager {
	if values == nil {
		values = map[string]any{}
	}
	return &DefaultManager{values: values, envPrefix: envPrefix}
}

func (m *DefaultManager) lookup(key string) (string, bool) {
	if m.envPrefix != "" {
		if value := os.Getenv(m.envPrefix + strings.ToUpper(key)); value != "" {
			return value, true
		}
	}
	raw, ok := m.values[key]
	if !ok || raw == nil {
		return "", false
	}
	value := fmt.Sprint(raw)
	return value, value != ""
}

// Has reports whether key has a non-empty value
func (m *DefaultManager) Has(key string) bool {
	_, ok := m.lookup(key)
	return ok
}

// GetString gets a configuration value by key, returns error if not found
func (m *DefaultManager) GetString(key string) (string, error) {
	value, ok := m.lookup(key)
	if !ok {
		return "", fmt.Errorf("configuration key %s not found", key)
	}
	return value, nil
}

// GetStringWithDefault gets a configuration value by key, returns default if not found
func (m *DefaultManager) GetStringWithDefault(key, defaultValue string) string {
	value, ok := m.lookup(key)
	if !ok {
		return defaultValue
	}
	return value
}

// GetInt gets an integer configuration value by key, returns error if not found or invalid
func (m *DefaultManager) GetInt(key string) (int, error) {
	value, ok := m.lookup(key)
	if !ok {
		return 0, fmt.Errorf("configuration key %s not found", key)
	}
	intValue, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("configuration key %s has invalid integer value: %s", key, value)
	}
	return intValue, nil
}

// GetIntWithDefault gets an integer configuration value by key, returns default if not found or invalid
func (m *DefaultManager) GetIntWithDefault(key string, defaultValue int) int {
	intValue, err := m.GetInt(key)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// GetBool gets a boolean configuration value by key, returns error if not found or invalid
func (m *DefaultManager) GetBool(key string) (bool, error) {
	value, ok := m.lookup(key)
	if !ok {
		return false, fmt.Errorf("configuration key %s not found", key)
	}
	boolValue, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("configuration key %s has invalid boolean value: %s", key, value)
	}
	return boolValue, nil
}

// GetBoolWithDefault gets a boolean configuration value by key, returns default if not found or invalid
func (m *DefaultManager) GetBoolWithDefault(key string, defaultValue bool) bool {
	boolValue, err := m.GetBool(key)
	if err != nil {
		return defaultValue
	}
	return boolValue
}
