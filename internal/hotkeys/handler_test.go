package hotkeys

import (
	"errors"
	"sync"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/adjacent/internal/adjacent"
	"github.com/1broseidon/adjacent/internal/config"
)

type fakeGrabber struct {
	grabs   map[string]func()
	refuse  map[string]bool
	ungrabs int
}

func newFakeGrabber() *fakeGrabber {
	return &fakeGrabber{grabs: map[string]func(){}, refuse: map[string]bool{}}
}

func (g *fakeGrabber) Grab(chord string, callback func()) error {
	if g.refuse[chord] {
		return errors.New("BadAccess")
	}
	g.grabs[chord] = callback
	return nil
}

func (g *fakeGrabber) UngrabAll() {
	g.ungrabs++
	g.grabs = map[string]func(){}
}

func TestBindRoutesChordsToDirections(t *testing.T) {
	g := newFakeGrabber()
	d := newDispatcher(g, zerolog.Nop())

	var got []adjacent.Direction
	err := d.Bind(config.DefaultConfig().Bindings(), func(dir adjacent.Direction) {
		got = append(got, dir)
	})
	require.NoError(t, err)
	require.Len(t, g.grabs, 4)

	g.grabs["Mod4-Mod1-Up"]()
	g.grabs["Mod4-Mod1-Left"]()
	assert.Equal(t, []adjacent.Direction{adjacent.Up, adjacent.Left}, got)
	assert.Len(t, d.Bound(), 4)
}

func TestBindSkipsDisabledChords(t *testing.T) {
	g := newFakeGrabber()
	d := newDispatcher(g, zerolog.Nop())

	bindings := []config.Binding{
		{Direction: adjacent.Left, Chord: "::"},
		{Direction: adjacent.Right, Chord: ""},
		{Direction: adjacent.Down, Chord: "Mod4-j"},
	}
	require.NoError(t, d.Bind(bindings, func(adjacent.Direction) {}))
	assert.Len(t, g.grabs, 1)
	assert.Contains(t, g.grabs, "Mod4-j")
}

func TestBindContinuesPastRefusedGrab(t *testing.T) {
	g := newFakeGrabber()
	g.refuse["Mod4-Mod1-Left"] = true
	d := newDispatcher(g, zerolog.Nop())

	err := d.Bind(config.DefaultConfig().Bindings(), func(adjacent.Direction) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "left")
	assert.Len(t, g.grabs, 3)
	assert.Len(t, d.Bound(), 3)
}

func TestUnbindReleasesOnce(t *testing.T) {
	g := newFakeGrabber()
	d := newDispatcher(g, zerolog.Nop())

	require.NoError(t, d.Bind(config.DefaultConfig().Bindings(), func(adjacent.Direction) {}))
	d.Unbind()
	d.Unbind()
	assert.Equal(t, 1, g.ungrabs)
	assert.Empty(t, g.grabs)
	assert.Empty(t, d.Bound())
}

func TestNewDispatcherRequiresX11(t *testing.T) {
	_, err := NewDispatcher(struct{}{}, zerolog.Nop())
	require.Error(t, err)
}

func TestUngrabAllForgetsRootKeystrings(t *testing.T) {
	const root, other = xproto.Window(0x100), xproto.Window(0x200)
	xu := &xgbutil.XUtil{
		KeybindsLck: &sync.RWMutex{},
		Keystrings: []xgbutil.KeyString{
			{Str: "Mod4-Mod1-Left", Win: root, Grab: true},
			{Str: "Mod4-x", Win: other, Grab: true},
			{Str: "Mod4-Mod1-Right", Win: root, Grab: true},
		},
	}

	var detached []xproto.Window
	g := &xGrabber{xu: xu, root: root, detach: func(_ *xgbutil.XUtil, win xproto.Window) {
		detached = append(detached, win)
	}}

	g.UngrabAll()
	assert.Equal(t, []xproto.Window{root}, detached)
	require.Len(t, xu.Keystrings, 1)
	assert.Equal(t, "Mod4-x", xu.Keystrings[0].Str)
	assert.Equal(t, other, xu.Keystrings[0].Win)

	g.UngrabAll()
	assert.Len(t, xu.Keystrings, 1)
}

func TestIgnoreMasks(t *testing.T) {
	caps := uint16(xproto.ModMaskLock)

	assert.ElementsMatch(t, []uint16{0, caps}, ignoreMasks(caps, 0, 0))
	assert.ElementsMatch(t, []uint16{0, caps}, ignoreMasks(caps, caps, 0))

	num, scroll := uint16(xproto.ModMask2), uint16(xproto.ModMask5)
	assert.ElementsMatch(t, []uint16{
		0, caps, num, scroll,
		caps | num, caps | scroll, num | scroll,
		caps | num | scroll,
	}, ignoreMasks(caps, num, scroll))

	assert.ElementsMatch(t, []uint16{0, caps, num, caps | num}, ignoreMasks(caps, num, num))
}
