package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawLoggingConfig struct {
	File       *string `yaml:"file"`
	MaxSizeMB  *int    `yaml:"max_size_mb"`
	MaxBackups *int    `yaml:"max_backups"`
	MaxAgeDays *int    `yaml:"max_age_days"`
}

// RawConfig mirrors Config with pointer fields so merges can tell unset
// values from zero values.
type RawConfig struct {
	Include              IncludeList       `yaml:"include"`
	LeftKey              *string           `yaml:"left_key"`
	RightKey             *string           `yaml:"right_key"`
	UpKey                *string           `yaml:"up_key"`
	DownKey              *string           `yaml:"down_key"`
	IncludeMinimized     *bool             `yaml:"include_minimized"`
	IncludeOtherMonitors *bool             `yaml:"include_other_monitors"`
	SelectionPolicy      *string           `yaml:"selection_policy"`
	RecencySource        *RecencySource    `yaml:"recency_source"`
	Display              *string           `yaml:"display"`
	XAuthority           *string           `yaml:"xauthority"`
	LogLevel             *string           `yaml:"log_level"`
	Logging              *RawLoggingConfig `yaml:"logging"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.LeftKey != nil {
		out.LeftKey = overlay.LeftKey
	}
	if overlay.RightKey != nil {
		out.RightKey = overlay.RightKey
	}
	if overlay.UpKey != nil {
		out.UpKey = overlay.UpKey
	}
	if overlay.DownKey != nil {
		out.DownKey = overlay.DownKey
	}
	if overlay.IncludeMinimized != nil {
		out.IncludeMinimized = overlay.IncludeMinimized
	}
	if overlay.IncludeOtherMonitors != nil {
		out.IncludeOtherMonitors = overlay.IncludeOtherMonitors
	}
	if overlay.SelectionPolicy != nil {
		out.SelectionPolicy = overlay.SelectionPolicy
	}
	if overlay.RecencySource != nil {
		out.RecencySource = overlay.RecencySource
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.XAuthority != nil {
		out.XAuthority = overlay.XAuthority
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.Logging != nil {
		merged := RawLoggingConfig{}
		if out.Logging != nil {
			merged = *out.Logging
		}
		if overlay.Logging.File != nil {
			merged.File = overlay.Logging.File
		}
		if overlay.Logging.MaxSizeMB != nil {
			merged.MaxSizeMB = overlay.Logging.MaxSizeMB
		}
		if overlay.Logging.MaxBackups != nil {
			merged.MaxBackups = overlay.Logging.MaxBackups
		}
		if overlay.Logging.MaxAgeDays != nil {
			merged.MaxAgeDays = overlay.Logging.MaxAgeDays
		}
		out.Logging = &merged
	}

	return out
}
