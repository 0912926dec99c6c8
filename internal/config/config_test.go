package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/1broseidon/adjacent/internal/adjacent"
)

func writeConfig(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if got := len(cfg.Bindings()); got != 4 {
		t.Fatalf("expected 4 default bindings, got %d", got)
	}
	if w := cfg.Warnings(); len(w) != 0 {
		t.Fatalf("expected no warnings for defaults, got %v", w)
	}
	sel := cfg.SelectionConfig()
	if sel.Policy != adjacent.PolicyClosest || sel.IncludeMinimized || sel.IncludeOtherMonitors {
		t.Fatalf("unexpected default selection config: %+v", sel)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.RightKey != "Mod4-Mod1-Right" {
		t.Fatalf("expected default right_key, got %q", res.Config.RightKey)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.RecencySource != RecencyStacking {
		t.Fatalf("expected recency_source stacking, got %q", res.Config.RecencySource)
	}
}

func TestLoadFromPath_AllKeys(t *testing.T) {
	data := strings.Join([]string{
		`left_key: "Control-Mod1-h"`,
		`right_key: "Control-Mod1-l"`,
		`up_key: ""`,
		`down_key: "::"`,
		`include_minimized: true`,
		`include_other_monitors: true`,
		`selection_policy: closest_visible_corner`,
		`recency_source: user_time`,
		`display: ":1"`,
		`xauthority: "/tmp/test-xauth"`,
		`log_level: debug`,
		`logging:`,
		`  file: /tmp/adjacent.log`,
		`  max_size_mb: 5`,
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config

	bindings := cfg.Bindings()
	if len(bindings) != 2 {
		t.Fatalf("expected 2 bindings, got %+v", bindings)
	}
	if bindings[0].Direction != adjacent.Left || bindings[0].Chord != "Control-Mod1-h" {
		t.Fatalf("unexpected first binding %+v", bindings[0])
	}
	if bindings[1].Direction != adjacent.Right {
		t.Fatalf("unexpected second binding %+v", bindings[1])
	}

	sel := cfg.SelectionConfig()
	if !sel.IncludeMinimized || !sel.IncludeOtherMonitors {
		t.Fatalf("expected include flags set, got %+v", sel)
	}
	if sel.Policy != adjacent.PolicyClosestVisibleCorner {
		t.Fatalf("expected closest-visible-corner, got %s", sel.Policy)
	}
	if cfg.RecencySource != RecencyUserTime {
		t.Fatalf("expected user_time, got %q", cfg.RecencySource)
	}
	if cfg.Display != ":1" || cfg.XAuthority != "/tmp/test-xauth" {
		t.Fatalf("unexpected display settings %q %q", cfg.Display, cfg.XAuthority)
	}
	if cfg.Logging.File != "/tmp/adjacent.log" || cfg.Logging.MaxSizeMB != 5 {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}

	val, src, err := Explain(res, "selection_policy")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != "closest_visible_corner" {
		t.Fatalf("explain value = %v", val)
	}
	if src.Kind != SourceFile || src.Line != 7 {
		t.Fatalf("expected file source at line 7, got %+v", src)
	}

	_, src, err = Explain(res, "logging.max_backups")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if src.Kind != SourceDefault {
		t.Fatalf("expected default source, got %+v", src)
	}
}

func TestLoadFromPath_UnknownKeyRejected(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "left_keys: Mod4-h\n")
	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected unknown key to fail")
	}
}

func TestLoadFromPath_UnknownPolicyIsLenient(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "selection_policy: fastest\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.SelectionConfig().Policy != adjacent.PolicyClosest {
		t.Fatalf("expected fallback to closest")
	}
	warnings := res.Config.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "fastest") {
		t.Fatalf("expected a policy warning, got %v", warnings)
	}
}

func TestLoadFromPath_ValidationErrorsCarrySource(t *testing.T) {
	data := strings.Join([]string{
		"log_level: loud",
		"recency_source: focus_history",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected validation failure")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Path != "log_level" || verr.Source.Line != 1 {
		t.Fatalf("unexpected first error %+v", verr)
	}
	if !strings.Contains(err.Error(), "recency_source") {
		t.Fatalf("expected recency_source error in %q", err.Error())
	}
	if !strings.Contains(err.Error(), path) && !strings.Contains(err.Error(), "config.yaml:1:") {
		t.Fatalf("expected file position in %q", err.Error())
	}
}

func TestValidate_DuplicateChords(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UpKey = "mod4-mod1-left"

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected duplicate chord error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != "up_key" {
		t.Fatalf("expected up_key error, got %v", err)
	}
}

func TestValidate_NegativeLogging(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.MaxBackups = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected negative max_backups to fail")
	}
}

func TestKeyEnabled(t *testing.T) {
	tests := []struct {
		chord string
		want  bool
	}{
		{"", false},
		{"   ", false},
		{"::", false},
		{" :: ", false},
		{"Mod4-Left", true},
	}
	for _, tt := range tests {
		if got := KeyEnabled(tt.chord); got != tt.want {
			t.Errorf("KeyEnabled(%q) = %v, want %v", tt.chord, got, tt.want)
		}
	}
}

func TestLoadFromPath_IncludeOverrides(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "conf.d"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, filepath.Join(dir, "conf.d"), "10-policy.yaml", "selection_policy: highest_z_order\ninclude_minimized: true\n")
	path := writeConfig(t, dir, "config.yaml", "include: conf.d\ninclude_minimized: false\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.SelectionConfig().Policy != adjacent.PolicyHighestZOrder {
		t.Fatalf("expected included policy, got %q", res.Config.SelectionPolicy)
	}
	if res.Config.IncludeMinimized {
		t.Fatalf("expected including file to override include_minimized")
	}
	if len(res.Files) != 2 {
		t.Fatalf("expected 2 loaded files, got %v", res.Files)
	}
}

func TestLoadFromPath_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "a.yaml", "include: b.yaml\n")
	writeConfig(t, dir, "b.yaml", "include: a.yaml\n")

	_, err := LoadFromPath(filepath.Join(dir, "a.yaml"))
	if err == nil || !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestFileProvider_ReadsFreshAndKeepsLastGood(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.yaml", "selection_policy: closest\n")

	p := NewFileProvider(path, nil, zerolog.Nop())
	if got := p.SelectionConfig().Policy; got != adjacent.PolicyClosest {
		t.Fatalf("expected closest, got %s", got)
	}

	writeConfig(t, dir, "config.yaml", "selection_policy: highest-z-order\n")
	if got := p.SelectionConfig().Policy; got != adjacent.PolicyHighestZOrder {
		t.Fatalf("expected edit to apply on next call, got %s", got)
	}

	writeConfig(t, dir, "config.yaml", "selection_policy: [broken\n")
	if got := p.SelectionConfig().Policy; got != adjacent.PolicyHighestZOrder {
		t.Fatalf("expected last good config after parse error, got %s", got)
	}
}
