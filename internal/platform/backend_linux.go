//go:build linux

package platform

import (
	"context"
	"fmt"
	"sort"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/rs/zerolog"

	"github.com/1broseidon/adjacent/internal/adjacent"
	"github.com/1broseidon/adjacent/internal/x11"
)

// windowSource is the part of the X11 connection the backend reads from.
type windowSource interface {
	StackingOrder() ([]xproto.Window, error)
	GetActiveWindow() (xproto.Window, error)
	GetCurrentDesktop() (int, error)
	GetWindowDesktop(windowID xproto.Window) (int, error)
	GetMonitors() ([]x11.Monitor, error)
	WindowFrame(windowID xproto.Window) (x, y, width, height int, err error)
	IsNormalWindow(windowID xproto.Window) bool
	IsSkipped(windowID xproto.Window) bool
	IsMinimized(windowID xproto.Window) bool
	UserTime(windowID xproto.Window) (uint64, bool)
	WindowClass(windowID xproto.Window) string
	WindowTitle(windowID xproto.Window) string
	FocusWindow(windowID xproto.Window) error
}

// Options tune how windows are described.
type Options struct {
	// UseUserTime, when set and returning true, ranks windows by
	// _NET_WM_USER_TIME instead of stacking position. It is consulted on
	// every enumeration.
	UseUserTime func() bool
	Logger      zerolog.Logger
}

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
	src  windowSource
	opts Options
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection, opts Options) *LinuxBackend {
	b := &LinuxBackend{conn: conn, opts: opts}
	if conn != nil {
		b.src = conn
	}
	return b
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh
// X11 connection to display ("" means $DISPLAY).
func NewLinuxBackendFromDisplay(display string, opts Options) (*LinuxBackend, error) {
	conn, err := x11.NewConnectionDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return NewLinuxBackend(conn, opts), nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// StopEventLoop makes a running EventLoop return.
func (b *LinuxBackend) StopEventLoop() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Displays returns all active displays.
func (b *LinuxBackend) Displays() ([]Display, error) {
	src, err := b.source()
	if err != nil {
		return nil, err
	}

	monitors, err := src.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, displayFromMonitor(m))
	}

	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})

	return displays, nil
}

// Windows lists the managed windows on the current desktop, bottom of the
// stack first.
func (b *LinuxBackend) Windows(ctx context.Context) ([]adjacent.WindowRef, error) {
	src, err := b.source()
	if err != nil {
		return nil, err
	}

	stack, err := src.StackingOrder()
	if err != nil {
		return nil, err
	}

	monitors := b.monitors(src)
	currentDesktop, desktopErr := src.GetCurrentDesktop()
	hasCurrentDesktop := desktopErr == nil
	useUserTime := b.opts.UseUserTime != nil && b.opts.UseUserTime()

	windows := make([]adjacent.WindowRef, 0, len(stack))
	for rank, windowID := range stack {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if hasCurrentDesktop {
			desktop, err := src.GetWindowDesktop(windowID)
			if err == nil && desktop != -1 && desktop != currentDesktop {
				continue
			}
		}

		ref, ok := b.describe(src, windowID, monitors)
		if !ok {
			continue
		}

		// Windows without _NET_WM_USER_TIME keep their stacking rank.
		ref.UserTime = uint64(rank + 1)
		if useUserTime {
			if t, ok := src.UserTime(windowID); ok {
				ref.UserTime = t
			}
		}
		windows = append(windows, ref)
	}

	return windows, nil
}

// FocusedWindow returns the window named by _NET_ACTIVE_WINDOW.
func (b *LinuxBackend) FocusedWindow(ctx context.Context) (adjacent.WindowRef, bool, error) {
	src, err := b.source()
	if err != nil {
		return adjacent.WindowRef{}, false, err
	}

	active, err := src.GetActiveWindow()
	if err != nil {
		return adjacent.WindowRef{}, false, fmt.Errorf("read active window: %w", err)
	}
	if active == 0 {
		return adjacent.WindowRef{}, false, nil
	}
	if err := ctx.Err(); err != nil {
		return adjacent.WindowRef{}, false, err
	}

	ref, ok := b.describe(src, active, b.monitors(src))
	if !ok {
		return adjacent.WindowRef{}, false, nil
	}
	return ref, true, nil
}

// Activate focuses and raises w.
func (b *LinuxBackend) Activate(_ context.Context, w adjacent.WindowRef) error {
	src, err := b.source()
	if err != nil {
		return err
	}
	if err := src.FocusWindow(xproto.Window(w.ID)); err != nil {
		return fmt.Errorf("focus window 0x%x: %w", uint32(w.ID), err)
	}
	return nil
}

func (b *LinuxBackend) describe(src windowSource, windowID xproto.Window, monitors []x11.Monitor) (adjacent.WindowRef, bool) {
	x, y, width, height, err := src.WindowFrame(windowID)
	if err != nil {
		b.opts.Logger.Debug().Err(err).Msg("skipping window without geometry")
		return adjacent.WindowRef{}, false
	}

	return adjacent.WindowRef{
		ID:          adjacent.WindowID(windowID),
		Rect:        adjacent.Rect{X: x, Y: y, Width: width, Height: height},
		MonitorID:   x11.MonitorForRect(monitors, x, y, width, height),
		Minimized:   src.IsMinimized(windowID),
		Interesting: src.IsNormalWindow(windowID) && !src.IsSkipped(windowID),
		Title:       src.WindowTitle(windowID),
		Class:       src.WindowClass(windowID),
	}, true
}

func (b *LinuxBackend) monitors(src windowSource) []x11.Monitor {
	monitors, err := src.GetMonitors()
	if err != nil {
		b.opts.Logger.Debug().Err(err).Msg("monitor query failed, treating screen as one monitor")
		return nil
	}
	return monitors
}

func (b *LinuxBackend) source() (windowSource, error) {
	if b == nil || b.src == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.src, nil
}

func displayFromMonitor(m x11.Monitor) Display {
	return Display{
		ID:   m.ID,
		Name: m.Name,
		Bounds: adjacent.Rect{
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		},
	}
}
