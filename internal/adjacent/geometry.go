// Package adjacent picks the neighbouring window in a direction from the
// focused one and asks the window manager to activate it.
package adjacent

import (
	"fmt"
	"strings"
)

// Rect describes a window frame in screen coordinates, top-left origin.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right returns the x coordinate of the right edge (exclusive).
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int { return r.Y + r.Height }

// CoversPoint reports whether (x, y) lies inside r, edges included.
func (r Rect) CoversPoint(x, y int) bool {
	return r.X <= x && x <= r.Right() && r.Y <= y && y <= r.Bottom()
}

// Center returns the center point of r.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Direction is the direction of travel for a focus command.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Directions lists all directions in binding order.
var Directions = []Direction{Left, Right, Up, Down}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Horizontal reports whether d moves along the x axis.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// ParseDirection converts a direction name (case-insensitive) into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	}
	return 0, fmt.Errorf("unknown direction %q (want left, right, up or down)", s)
}

// leadingEdge returns the coordinate compared for d: x for horizontal moves,
// y for vertical ones.
func leadingEdge(r Rect, d Direction) int {
	if d.Horizontal() {
		return r.X
	}
	return r.Y
}

// LeadingEdgeAhead reports whether w's leading edge lies strictly beyond the
// focused window's in direction d.
func LeadingEdgeAhead(focused, w Rect, d Direction) bool {
	switch d {
	case Left:
		return w.X < focused.X
	case Right:
		return w.X > focused.X
	case Up:
		return w.Y < focused.Y
	case Down:
		return w.Y > focused.Y
	}
	return false
}

// ExtendsPast is LeadingEdgeAhead plus, for Right and Down, the requirement
// that w reaches beyond the focused window's trailing edge.
func ExtendsPast(focused, w Rect, d Direction) bool {
	if !LeadingEdgeAhead(focused, w, d) {
		return false
	}
	switch d {
	case Right:
		return w.Right() > focused.Right()
	case Down:
		return w.Bottom() > focused.Bottom()
	}
	return true
}

// closer reports whether a is nearer than b to the focused window along d,
// assuming both are already ahead of it.
func closer(a, b Rect, d Direction) bool {
	switch d {
	case Left, Up:
		return leadingEdge(a, d) > leadingEdge(b, d)
	default:
		return leadingEdge(a, d) < leadingEdge(b, d)
	}
}
