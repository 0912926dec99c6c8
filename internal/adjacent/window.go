package adjacent

import (
	"context"
	"fmt"
	"strings"
)

// WindowID identifies a top-level window (an X11 client window id).
type WindowID uint32

// WindowRef is a snapshot of one window taken at selection time.
type WindowRef struct {
	ID        WindowID `json:"id"`
	Rect      Rect     `json:"rect"`
	MonitorID int      `json:"monitor_id"`
	Minimized bool     `json:"minimized"`
	// UserTime increases with recency; the highest value is topmost.
	UserTime uint64 `json:"user_time"`
	// Interesting is false for desktop, dock, panel and similar surfaces.
	Interesting bool   `json:"interesting"`
	Title       string `json:"title,omitempty"`
	Class       string `json:"class,omitempty"`
}

func (w WindowRef) String() string {
	if w.Title != "" {
		return fmt.Sprintf("0x%x %q", uint32(w.ID), w.Title)
	}
	return fmt.Sprintf("0x%x", uint32(w.ID))
}

// SelectionPolicy chooses how eligible candidates are ranked.
type SelectionPolicy int

const (
	PolicyClosest SelectionPolicy = iota
	PolicyHighestZOrder
	PolicyClosestVisibleCorner
)

func (p SelectionPolicy) String() string {
	switch p {
	case PolicyClosest:
		return "closest"
	case PolicyHighestZOrder:
		return "highest-z-order"
	case PolicyClosestVisibleCorner:
		return "closest-visible-corner"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParseSelectionPolicy maps a configured policy name onto a SelectionPolicy.
// Unknown names yield PolicyClosest and ok=false; callers decide whether to
// warn about it.
func ParseSelectionPolicy(s string) (policy SelectionPolicy, ok bool) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	switch norm {
	case "closest", "":
		return PolicyClosest, norm != ""
	case "highest-z-order", "highest-zorder", "z-order":
		return PolicyHighestZOrder, true
	case "closest-visible-corner", "visible-corner":
		return PolicyClosestVisibleCorner, true
	}
	return PolicyClosest, false
}

// SelectionConfig is the configuration read at the start of every command.
type SelectionConfig struct {
	IncludeMinimized     bool
	IncludeOtherMonitors bool
	Policy               SelectionPolicy
}

// WindowEnumerator provides the snapshot of windows on the active workspace.
type WindowEnumerator interface {
	// Windows lists the windows on the active workspace in enumeration order.
	Windows(ctx context.Context) ([]WindowRef, error)
	// FocusedWindow returns the focused window, if any.
	FocusedWindow(ctx context.Context) (WindowRef, bool, error)
}

// ActivationSink asks the window manager to activate a window.
type ActivationSink interface {
	Activate(ctx context.Context, w WindowRef) error
}

// ConfigProvider returns the current selection configuration. It is called
// once per command so edits take effect immediately.
type ConfigProvider interface {
	SelectionConfig() SelectionConfig
}

// StaticConfig is a ConfigProvider that always returns the same value.
type StaticConfig SelectionConfig

func (c StaticConfig) SelectionConfig() SelectionConfig { return SelectionConfig(c) }
