package limiter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCloseOrder is returned when a close order name is not recognised.
var ErrUnknownCloseOrder = errors.New("unknown close order")

// CloseOrder selects which end of the tab list gets closed first
type CloseOrder string

const (
	// CloseLeft scans tabs in their displayed order.
	CloseLeft CloseOrder = "left"
	// CloseRight scans tabs from the last one backwards.
	CloseRight CloseOrder = "right"
	// CloseActive scans the most recently used documents first.
	CloseActive CloseOrder = "active"
	// CloseInactive scans the documents idle for longest first.
	CloseInactive CloseOrder = "inactive"
)

// DefaultCloseOrder is used when no order is configured.
const DefaultCloseOrder = CloseInactive

// ParseCloseOrder converts a settings value into a CloseOrder.
func ParseCloseOrder(s string) (CloseOrder, error) {
	switch o := CloseOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case CloseLeft, CloseRight, CloseActive, CloseInactive:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCloseOrder, s)
	}
}

// Config is a snapshot of the limiter settings
type Config struct {
	// Limit is the tab count that triggers a close. 0 or less disables
	// the limiter.
	Limit int
	// LimitByGroup stops the limiter from falling back to the whole window.
	LimitByGroup bool
	CloseOrder   CloseOrder
}

// DefaultConfig returns a disabled configuration.
func DefaultConfig() Config {
	return Config{CloseOrder: DefaultCloseOrder}
}

// Enabled reports whether the limiter may close anything.
func (c Config) Enabled() bool {
	return c.Limit > 0
}

// ConfigSource produces a fresh Config, falling back to previous for
// anything it cannot read.
type ConfigSource interface {
	Reload(previous Config) Config
}

// StaticConfig is a ConfigSource that always returns the same settings.
type StaticConfig Config

func (s StaticConfig) Reload(Config) Config {
	return Config(s)
}
