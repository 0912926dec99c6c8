package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and the
// file position that last set it.
//
// Supported paths:
//
//	left_key, right_key, up_key, down_key
//	include_minimized
//	include_other_monitors
//	selection_policy
//	recency_source
//	display
//	xauthority
//	log_level
//	logging.file
//	logging.max_size_mb
//	logging.max_backups
//	logging.max_age_days
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	if parts[0] == "logging" {
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "file":
			return cfg.Logging.File, nil
		case "max_size_mb":
			return cfg.Logging.MaxSizeMB, nil
		case "max_backups":
			return cfg.Logging.MaxBackups, nil
		case "max_age_days":
			return cfg.Logging.MaxAgeDays, nil
		}
		return nil, fmt.Errorf("unknown path: %s", path)
	}

	if len(parts) != 1 {
		return nil, fmt.Errorf("unknown path: %s", path)
	}
	switch parts[0] {
	case "left_key":
		return cfg.LeftKey, nil
	case "right_key":
		return cfg.RightKey, nil
	case "up_key":
		return cfg.UpKey, nil
	case "down_key":
		return cfg.DownKey, nil
	case "include_minimized":
		return cfg.IncludeMinimized, nil
	case "include_other_monitors":
		return cfg.IncludeOtherMonitors, nil
	case "selection_policy":
		return cfg.SelectionPolicy, nil
	case "recency_source":
		return string(cfg.RecencySource), nil
	case "display":
		return cfg.Display, nil
	case "xauthority":
		return cfg.XAuthority, nil
	case "log_level":
		return cfg.LogLevel, nil
	}
	return nil, fmt.Errorf("unknown path: %s", path)
}

// FormatSource renders src for CLI output.
func FormatSource(src Source) string {
	switch src.Kind {
	case SourceFile:
		return fmt.Sprintf("%s:%d:%d", src.File, src.Line, src.Column)
	default:
		return "default"
	}
}
