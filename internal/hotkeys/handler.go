package hotkeys

import (
	"errors"
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/rs/zerolog"

	"github.com/1broseidon/adjacent/internal/adjacent"
	"github.com/1broseidon/adjacent/internal/config"
)

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// grabber owns the global key grabs on the root window.
type grabber interface {
	Grab(chord string, callback func()) error
	UngrabAll()
}

// Dispatcher maps the four direction chords to a command callback.
// Callbacks run on the X event loop goroutine.
type Dispatcher struct {
	grabs  grabber
	logger zerolog.Logger

	mu    sync.Mutex
	bound []config.Binding
}

// NewDispatcher creates a dispatcher on the backend's X connection.
func NewDispatcher(backend any, logger zerolog.Logger) (*Dispatcher, error) {
	accessor, ok := backend.(x11Accessor)
	if !ok || accessor.XUtil() == nil {
		return nil, fmt.Errorf("global hotkeys need an X11 backend")
	}
	xu := accessor.XUtil()

	// xevent.IgnoreMods is shared by every connection in the process. The
	// masks depend only on the server's modifier map, so setting them again
	// for each dispatcher is harmless.
	xevent.IgnoreMods = ignoreMasks(
		uint16(xproto.ModMaskLock),
		modMaskForKeysym(xu, "Num_Lock"),
		modMaskForKeysym(xu, "Scroll_Lock"),
	)

	g := &xGrabber{xu: xu, root: accessor.RootWindow(), detach: keybind.Detach}
	return newDispatcher(g, logger), nil
}

func newDispatcher(g grabber, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		grabs:  g,
		logger: logger.With().Str("component", "hotkeys").Logger(),
	}
}

// Bind grabs every binding and routes presses to handle. A chord that
// cannot be grabbed is reported but does not stop the others.
func (d *Dispatcher) Bind(bindings []config.Binding, handle func(adjacent.Direction)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	for _, b := range bindings {
		if !config.KeyEnabled(b.Chord) {
			continue
		}
		dir := b.Direction
		if err := d.grabs.Grab(b.Chord, func() { handle(dir) }); err != nil {
			errs = append(errs, fmt.Errorf("bind %s to %q: %w", dir, b.Chord, err))
			continue
		}
		d.bound = append(d.bound, b)
		d.logger.Info().Stringer("direction", dir).Str("chord", b.Chord).Msg("hotkey bound")
	}
	return errors.Join(errs...)
}

// Unbind releases every grab.
func (d *Dispatcher) Unbind() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.bound) == 0 {
		return
	}
	d.grabs.UngrabAll()
	d.bound = nil
}

// Bound returns the active bindings.
func (d *Dispatcher) Bound() []config.Binding {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]config.Binding(nil), d.bound...)
}

type xGrabber struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	detach func(*xgbutil.XUtil, xproto.Window)
}

func (g *xGrabber) Grab(chord string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(g.xu, g.root, chord, true)
}

// UngrabAll drops the root callbacks and their key strings. keybind keeps
// every connected chord in Keystrings and grabs them all again on a
// MappingNotify, so a stale entry would come back as a live hotkey.
func (g *xGrabber) UngrabAll() {
	g.detach(g.xu, g.root)
	forgetKeystrings(g.xu, g.root)
}

func forgetKeystrings(xu *xgbutil.XUtil, win xproto.Window) {
	xu.KeybindsLck.Lock()
	defer xu.KeybindsLck.Unlock()

	kept := xu.Keystrings[:0]
	for _, ks := range xu.Keystrings {
		if ks.Win != win {
			kept = append(kept, ks)
		}
	}
	clear(xu.Keystrings[len(kept):])
	xu.Keystrings = kept
}

// ignoreMasks lists every combination of the lock modifiers, including none.
// CapsLock is always present; a zero numLock or scrollLock means the key is
// not mapped.
func ignoreMasks(caps, numLock, scrollLock uint16) []uint16 {
	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	return ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
