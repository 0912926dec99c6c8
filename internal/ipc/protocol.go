package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/adjacent/internal/adjacent"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandFocus       CommandType = "FOCUS"
	CommandListWindows CommandType = "LIST_WINDOWS"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandReload      CommandType = "RELOAD"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// FocusPayload is the payload of FOCUS.
type FocusPayload struct {
	Direction string `json:"direction"`
	DryRun    bool   `json:"dry_run,omitempty"`
}

// WindowInfo describes one window in FOCUS and LIST_WINDOWS replies.
type WindowInfo struct {
	ID          uint32                     `json:"id"`
	Title       string                     `json:"title,omitempty"`
	Class       string                     `json:"class,omitempty"`
	X           int                        `json:"x"`
	Y           int                        `json:"y"`
	Width       int                        `json:"width"`
	Height      int                        `json:"height"`
	Monitor     int                        `json:"monitor"`
	Minimized   bool                       `json:"minimized,omitempty"`
	Interesting bool                       `json:"interesting"`
	UserTime    uint64                     `json:"user_time"`
	Focused     bool                       `json:"focused,omitempty"`
	Corners     *adjacent.CornerVisibility `json:"corners,omitempty"`
}

// DecisionData is the reply to FOCUS.
type DecisionData struct {
	Direction  string      `json:"direction"`
	Policy     string      `json:"policy"`
	Outcome    string      `json:"outcome"`
	Candidates int         `json:"candidates"`
	Focused    *WindowInfo `json:"focused,omitempty"`
	Target     *WindowInfo `json:"target,omitempty"`
	Activated  bool        `json:"activated"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// WindowsData is the reply to LIST_WINDOWS. Windows are ordered topmost
// first; minimized windows follow the visible stack.
type WindowsData struct {
	FocusedID uint32        `json:"focused_id,omitempty"`
	Windows   []WindowInfo  `json:"windows"`
	Monitors  []MonitorInfo `json:"monitors,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning   bool              `json:"daemon_running"`
	UptimeSeconds   int64             `json:"uptime_seconds"`
	SelectionPolicy string            `json:"selection_policy"`
	RecencySource   string            `json:"recency_source"`
	Bindings        map[string]string `json:"bindings"`
	CommandsServed  uint64            `json:"commands_served"`
	ConfigPath      string            `json:"config_path,omitempty"`
}

// NewWindowInfo converts a window reference for the wire.
func NewWindowInfo(w adjacent.WindowRef) WindowInfo {
	return WindowInfo{
		ID:          uint32(w.ID),
		Title:       w.Title,
		Class:       w.Class,
		X:           w.Rect.X,
		Y:           w.Rect.Y,
		Width:       w.Rect.Width,
		Height:      w.Rect.Height,
		Monitor:     w.MonitorID,
		Minimized:   w.Minimized,
		Interesting: w.Interesting,
		UserTime:    w.UserTime,
	}
}

// NewDecisionData converts a selection decision for the wire.
func NewDecisionData(d adjacent.Decision) DecisionData {
	out := DecisionData{
		Direction:  d.Direction.String(),
		Policy:     d.Policy.String(),
		Outcome:    d.Outcome.String(),
		Candidates: d.Candidates,
		Activated:  d.Outcome == adjacent.OutcomeActivated,
	}
	if d.Outcome != adjacent.OutcomeNoFocus {
		focused := NewWindowInfo(d.Focused)
		focused.Focused = true
		out.Focused = &focused
	}
	if d.Found() {
		target := NewWindowInfo(d.Target)
		out.Target = &target
	}
	return out
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
