package mcp

import "github.com/1broseidon/adjacent/internal/ipc"

// DirectionInput is the input for focus_direction and preview_direction.
type DirectionInput struct {
	Direction string `json:"direction" jsonschema:"required,One of left, right, up or down (l, r, u, d also accepted)"`
}

// DirectionOutput is the decision reported by the daemon.
type DirectionOutput struct {
	Direction  string          `json:"direction"`
	Policy     string          `json:"policy"`
	Outcome    string          `json:"outcome"`
	Candidates int             `json:"candidates"`
	Activated  bool            `json:"activated"`
	Focused    *ipc.WindowInfo `json:"focused,omitempty"`
	Target     *ipc.WindowInfo `json:"target,omitempty"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	IncludeMinimized *bool `json:"include_minimized,omitempty" jsonschema:"Include minimized windows (default: true)"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	FocusedID uint32            `json:"focused_id,omitempty"`
	Windows   []ipc.WindowInfo  `json:"windows"`
	Monitors  []ipc.MonitorInfo `json:"monitors,omitempty"`
}

// DaemonStatusInput is the (empty) input for the daemon_status tool.
type DaemonStatusInput struct{}

// DaemonStatusOutput is the output for the daemon_status tool.
type DaemonStatusOutput struct {
	Running         bool              `json:"running"`
	UptimeSeconds   int64             `json:"uptime_seconds,omitempty"`
	SelectionPolicy string            `json:"selection_policy,omitempty"`
	RecencySource   string            `json:"recency_source,omitempty"`
	Bindings        map[string]string `json:"bindings,omitempty"`
	CommandsServed  uint64            `json:"commands_served"`
}
