package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/adjacent/internal/adjacent"
)

// RecencySource selects where window recency (and so z-order) is read from.
type RecencySource string

const (
	// RecencyStacking ranks windows by their position in
	// _NET_CLIENT_LIST_STACKING.
	RecencyStacking RecencySource = "stacking"
	// RecencyUserTime uses each window's _NET_WM_USER_TIME.
	RecencyUserTime RecencySource = "user_time"
)

// LoggingConfig configures the optional rotating log file.
type LoggingConfig struct {
	// File is the log file path; empty logs to stderr only.
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the size at which the file is rotated (default: 10).
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxBackups is the number of rotated files to keep (default: 3).
	MaxBackups int `yaml:"max_backups,omitempty"`
	// MaxAgeDays removes rotated files older than this; 0 keeps them.
	MaxAgeDays int `yaml:"max_age_days,omitempty"`
}

// Config holds the application configuration.
type Config struct {
	LeftKey              string        `yaml:"left_key"`
	RightKey             string        `yaml:"right_key"`
	UpKey                string        `yaml:"up_key"`
	DownKey              string        `yaml:"down_key"`
	IncludeMinimized     bool          `yaml:"include_minimized"`
	IncludeOtherMonitors bool          `yaml:"include_other_monitors"`
	SelectionPolicy      string        `yaml:"selection_policy"`
	RecencySource        RecencySource `yaml:"recency_source"`
	Display              string        `yaml:"display,omitempty"`
	XAuthority           string        `yaml:"xauthority,omitempty"`
	LogLevel             string        `yaml:"log_level"`
	Logging              LoggingConfig `yaml:"logging,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		LeftKey:              "Mod4-Mod1-Left",
		RightKey:             "Mod4-Mod1-Right",
		UpKey:                "Mod4-Mod1-Up",
		DownKey:              "Mod4-Mod1-Down",
		IncludeMinimized:     false,
		IncludeOtherMonitors: false,
		SelectionPolicy:      adjacent.PolicyClosest.String(),
		RecencySource:        RecencyStacking,
		LogLevel:             "info",
	}
}

// Binding ties a key chord to a direction.
type Binding struct {
	Direction adjacent.Direction
	Chord     string
}

// KeyEnabled reports whether a configured chord should be grabbed. Empty
// chords and the "::" placeholder leave a direction unbound.
func KeyEnabled(chord string) bool {
	chord = strings.TrimSpace(chord)
	return chord != "" && chord != "::"
}

// KeyFor returns the chord configured for d.
func (c *Config) KeyFor(d adjacent.Direction) string {
	switch d {
	case adjacent.Left:
		return c.LeftKey
	case adjacent.Right:
		return c.RightKey
	case adjacent.Up:
		return c.UpKey
	case adjacent.Down:
		return c.DownKey
	}
	return ""
}

// Bindings returns the enabled chord bindings in left, right, up, down order.
func (c *Config) Bindings() []Binding {
	var out []Binding
	for _, d := range adjacent.Directions {
		chord := strings.TrimSpace(c.KeyFor(d))
		if !KeyEnabled(chord) {
			continue
		}
		out = append(out, Binding{Direction: d, Chord: chord})
	}
	return out
}

// SelectionConfig converts the file settings into the selector's view.
// Unknown policies become Closest.
func (c *Config) SelectionConfig() adjacent.SelectionConfig {
	policy, _ := adjacent.ParseSelectionPolicy(c.SelectionPolicy)
	return adjacent.SelectionConfig{
		IncludeMinimized:     c.IncludeMinimized,
		IncludeOtherMonitors: c.IncludeOtherMonitors,
		Policy:               policy,
	}
}

// Validate performs strict validation of the effective configuration.
// selection_policy is deliberately lenient and only reported by Warnings.
func (c *Config) Validate() error {
	var errs []error

	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")})
	}

	switch c.RecencySource {
	case RecencyStacking, RecencyUserTime:
	default:
		errs = append(errs, &ValidationError{Path: "recency_source", Err: fmt.Errorf("recency_source must be one of: stacking, user_time")})
	}

	if c.Logging.MaxSizeMB < 0 {
		errs = append(errs, &ValidationError{Path: "logging.max_size_mb", Err: fmt.Errorf("max_size_mb must be >= 0")})
	}
	if c.Logging.MaxBackups < 0 {
		errs = append(errs, &ValidationError{Path: "logging.max_backups", Err: fmt.Errorf("max_backups must be >= 0")})
	}
	if c.Logging.MaxAgeDays < 0 {
		errs = append(errs, &ValidationError{Path: "logging.max_age_days", Err: fmt.Errorf("max_age_days must be >= 0")})
	}

	seen := make(map[string]adjacent.Direction)
	for _, b := range c.Bindings() {
		key := strings.ToLower(b.Chord)
		if prev, ok := seen[key]; ok {
			errs = append(errs, &ValidationError{
				Path: keyPath(b.Direction),
				Err:  fmt.Errorf("chord %q is already bound to %s", b.Chord, prev),
			})
			continue
		}
		seen[key] = b.Direction
	}

	return errors.Join(errs...)
}

// Warnings lists settings that are accepted but probably not what the user
// meant.
func (c *Config) Warnings() []string {
	var warnings []string
	if _, ok := adjacent.ParseSelectionPolicy(c.SelectionPolicy); !ok {
		warnings = append(warnings, fmt.Sprintf("selection_policy %q is not recognised; using %s", c.SelectionPolicy, adjacent.PolicyClosest))
	}
	if len(c.Bindings()) == 0 {
		warnings = append(warnings, "no direction keys are bound")
	}
	return warnings
}

func keyPath(d adjacent.Direction) string {
	return d.String() + "_key"
}
