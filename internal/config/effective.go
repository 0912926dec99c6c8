package config

import (
	"fmt"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig applies raw on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.LeftKey != nil {
		cfg.LeftKey = *raw.LeftKey
	}
	if raw.RightKey != nil {
		cfg.RightKey = *raw.RightKey
	}
	if raw.UpKey != nil {
		cfg.UpKey = *raw.UpKey
	}
	if raw.DownKey != nil {
		cfg.DownKey = *raw.DownKey
	}
	if raw.IncludeMinimized != nil {
		cfg.IncludeMinimized = *raw.IncludeMinimized
	}
	if raw.IncludeOtherMonitors != nil {
		cfg.IncludeOtherMonitors = *raw.IncludeOtherMonitors
	}
	if raw.SelectionPolicy != nil {
		cfg.SelectionPolicy = *raw.SelectionPolicy
	}
	if raw.RecencySource != nil {
		cfg.RecencySource = *raw.RecencySource
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.XAuthority != nil {
		cfg.XAuthority = *raw.XAuthority
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.Logging != nil {
		cfg.Logging.File = derefString(raw.Logging.File, cfg.Logging.File)
		cfg.Logging.MaxSizeMB = derefInt(raw.Logging.MaxSizeMB, cfg.Logging.MaxSizeMB)
		cfg.Logging.MaxBackups = derefInt(raw.Logging.MaxBackups, cfg.Logging.MaxBackups)
		cfg.Logging.MaxAgeDays = derefInt(raw.Logging.MaxAgeDays, cfg.Logging.MaxAgeDays)
	}

	return cfg
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func derefString(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
