package adjacent

import "sort"

// CornerVisibility records which corner points of a window are not covered
// by any window stacked above it.
type CornerVisibility struct {
	TopLeft     bool `json:"top_left"`
	TopRight    bool `json:"top_right"`
	BottomLeft  bool `json:"bottom_left"`
	BottomRight bool `json:"bottom_right"`
}

// AllVisible is the visibility of a window with nothing above it.
var AllVisible = CornerVisibility{TopLeft: true, TopRight: true, BottomLeft: true, BottomRight: true}

// Any reports whether at least one corner is visible.
func (v CornerVisibility) Any() bool {
	return v.TopLeft || v.TopRight || v.BottomLeft || v.BottomRight
}

// Facing reports whether a corner on the side of the window that faces
// travel in direction d is visible. Moving right we arrive at a window's
// right-hand corners, moving down at its bottom ones, and so on.
func (v CornerVisibility) Facing(d Direction) bool {
	switch d {
	case Left:
		return v.TopLeft || v.BottomLeft
	case Right:
		return v.TopRight || v.BottomRight
	case Up:
		return v.TopLeft || v.TopRight
	case Down:
		return v.BottomLeft || v.BottomRight
	}
	return false
}

// Visibility computes which corners of target are left uncovered by the
// rects in above. A corner is hidden as soon as a single rect covers the
// point; occluders are not merged.
func Visibility(target Rect, above []Rect) CornerVisibility {
	v := AllVisible
	for _, r := range above {
		if v.TopLeft && r.CoversPoint(target.X, target.Y) {
			v.TopLeft = false
		}
		if v.TopRight && r.CoversPoint(target.Right(), target.Y) {
			v.TopRight = false
		}
		if v.BottomLeft && r.CoversPoint(target.X, target.Bottom()) {
			v.BottomLeft = false
		}
		if v.BottomRight && r.CoversPoint(target.Right(), target.Bottom()) {
			v.BottomRight = false
		}
		if !v.Any() {
			break
		}
	}
	return v
}

// StackEntry is one window of a ZStack with its computed corner visibility.
type StackEntry struct {
	Window  WindowRef        `json:"window"`
	Corners CornerVisibility `json:"corners"`
}

// ZStack is an immutable front-to-back ordering of a window snapshot. Index
// 0 is the topmost window. Minimized windows are not drawn and are left out.
type ZStack struct {
	entries []StackEntry
	index   map[WindowID]int
}

// NewZStack orders windows by UserTime, most recent first, keeping the
// enumeration order between equal stamps, and computes each window's corner
// visibility against the windows before it.
func NewZStack(windows []WindowRef) ZStack {
	sorted := make([]WindowRef, 0, len(windows))
	for _, w := range windows {
		if !w.Minimized {
			sorted = append(sorted, w)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UserTime > sorted[j].UserTime
	})

	rects := make([]Rect, len(sorted))
	for i, w := range sorted {
		rects[i] = w.Rect
	}

	z := ZStack{
		entries: make([]StackEntry, len(sorted)),
		index:   make(map[WindowID]int, len(sorted)),
	}
	for i, w := range sorted {
		z.entries[i] = StackEntry{Window: w, Corners: Visibility(w.Rect, rects[:i])}
		z.index[w.ID] = i
	}
	return z
}

// Len returns the number of windows in the stack.
func (z ZStack) Len() int { return len(z.entries) }

// At returns the entry at position i (0 is topmost).
func (z ZStack) At(i int) StackEntry { return z.entries[i] }

// Corners returns the visibility of the window with the given id.
func (z ZStack) Corners(id WindowID) (CornerVisibility, bool) {
	i, ok := z.index[id]
	if !ok {
		return CornerVisibility{}, false
	}
	return z.entries[i].Corners, true
}

// Entries returns a copy of the stack, topmost first.
func (z ZStack) Entries() []StackEntry {
	out := make([]StackEntry, len(z.entries))
	copy(out, z.entries)
	return out
}
