package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// StackingOrder returns the managed client windows from bottom to top.
// Window managers that only publish _NET_CLIENT_LIST fall back to its
// mapping order.
func (c *Connection) StackingOrder() ([]xproto.Window, error) {
	clients, err := ewmh.ClientListStackingGet(c.XUtil)
	if err == nil && len(clients) > 0 {
		return clients, nil
	}
	clients, listErr := ewmh.ClientListGet(c.XUtil)
	if listErr != nil {
		if err != nil {
			return nil, fmt.Errorf("failed to get client list: %w", err)
		}
		return nil, fmt.Errorf("failed to get client list: %w", listErr)
	}
	return clients, nil
}

// GetFrameExtents returns the window decoration sizes (if available)
func (c *Connection) GetFrameExtents(windowID xproto.Window) (left, right, top, bottom int) {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil {
		return 0, 0, 0, 0
	}
	return int(extents.Left), int(extents.Right), int(extents.Top), int(extents.Bottom)
}

// WindowFrame returns the on-screen rectangle of a client window including
// its decorations, in root coordinates.
func (c *Connection) WindowFrame(windowID xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("get geometry of 0x%x: %w", windowID, err)
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("translate coordinates of 0x%x: %w", windowID, err)
	}

	left, right, top, bottom := c.GetFrameExtents(windowID)
	return int(translate.DstX) - left,
		int(translate.DstY) - top,
		int(geom.Width) + left + right,
		int(geom.Height) + top + bottom,
		nil
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL", "_NET_WM_WINDOW_TYPE_DIALOG":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP",
			"_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION",
			"_NET_WM_WINDOW_TYPE_TOOLBAR",
			"_NET_WM_WINDOW_TYPE_MENU",
			"_NET_WM_WINDOW_TYPE_UTILITY":
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}

// IsSkipped reports windows that ask to be left out of pagers and taskbars.
func (c *Connection) IsSkipped(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_SKIP_PAGER" {
			return true
		}
	}
	return false
}

// IsMinimized reports whether a window is iconified, by either the EWMH
// hidden state or the ICCCM WM_STATE.
func (c *Connection) IsMinimized(windowID xproto.Window) bool {
	if states, err := ewmh.WmStateGet(c.XUtil, windowID); err == nil {
		for _, state := range states {
			if state == "_NET_WM_STATE_HIDDEN" {
				return true
			}
		}
	}
	if st, err := icccm.WmStateGet(c.XUtil, windowID); err == nil && st != nil {
		return st.State == icccm.StateIconic
	}
	return false
}

// UserTime returns the last user interaction timestamp of a window.
// _NET_WM_USER_TIME_WINDOW is consulted first, per EWMH.
func (c *Connection) UserTime(windowID xproto.Window) (uint64, bool) {
	target := windowID
	if tw, err := ewmh.WmUserTimeWindowGet(c.XUtil, windowID); err == nil && tw != 0 {
		target = tw
	}
	t, err := ewmh.WmUserTimeGet(c.XUtil, target)
	if err != nil && target != windowID {
		t, err = ewmh.WmUserTimeGet(c.XUtil, windowID)
	}
	if err != nil {
		return 0, false
	}
	return uint64(t), true
}

// WindowClass returns the WM_CLASS class part.
func (c *Connection) WindowClass(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(c.XUtil, windowID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

// WindowTitle prefers _NET_WM_NAME and falls back to WM_NAME.
func (c *Connection) WindowTitle(windowID xproto.Window) string {
	title, err := ewmh.WmNameGet(c.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(c.XUtil, windowID)
	if err == nil {
		return strings.TrimSpace(title)
	}
	return ""
}

func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}
