package adjacent

// Strategy picks one window out of the filtered candidates for a direction.
// Implementations are deterministic and free of side effects.
type Strategy interface {
	Select(focused WindowRef, candidates []WindowRef, d Direction) (WindowRef, bool)
}

// StrategyFor builds the strategy for policy over the given workspace
// snapshot. Unknown policies fall back to Closest.
func StrategyFor(policy SelectionPolicy, snapshot []WindowRef) Strategy {
	switch policy {
	case PolicyHighestZOrder:
		return HighestZOrder{}
	case PolicyClosestVisibleCorner:
		return ClosestVisibleCorner{Stack: NewZStack(snapshot)}
	default:
		return Closest{}
	}
}

// Closest picks the window whose leading edge is nearest in the direction
// of travel. Earlier candidates win ties.
type Closest struct{}

func (Closest) Select(focused WindowRef, candidates []WindowRef, d Direction) (WindowRef, bool) {
	var best WindowRef
	found := false
	for _, w := range candidates {
		if !LeadingEdgeAhead(focused.Rect, w.Rect, d) {
			continue
		}
		if !found || closer(w.Rect, best.Rect, d) {
			best, found = w, true
		}
	}
	return best, found
}

// HighestZOrder picks the most recently used window ahead in the direction
// of travel. Minimized windows never qualify.
type HighestZOrder struct{}

func (HighestZOrder) Select(focused WindowRef, candidates []WindowRef, d Direction) (WindowRef, bool) {
	var best WindowRef
	found := false
	for _, w := range candidates {
		if w.Minimized || !LeadingEdgeAhead(focused.Rect, w.Rect, d) {
			continue
		}
		if !found || isAbove(w, best) {
			best, found = w, true
		}
	}
	return best, found
}

func isAbove(a, b WindowRef) bool {
	return a.UserTime > b.UserTime
}

// ClosestVisibleCorner picks the nearest window that extends past the
// focused one and still shows a corner on the side being travelled to.
// A lone eligible window is returned whatever its visibility. Stack holds
// only the painted windows, so minimized ones never occlude a candidate.
type ClosestVisibleCorner struct {
	Stack ZStack
}

func (c ClosestVisibleCorner) Select(focused WindowRef, candidates []WindowRef, d Direction) (WindowRef, bool) {
	eligible := make([]WindowRef, 0, len(candidates))
	for _, w := range candidates {
		if w.Minimized || !ExtendsPast(focused.Rect, w.Rect, d) {
			continue
		}
		eligible = append(eligible, w)
	}

	switch len(eligible) {
	case 0:
		return WindowRef{}, false
	case 1:
		return eligible[0], true
	}

	var best WindowRef
	found := false
	for _, w := range eligible {
		corners, ok := c.Stack.Corners(w.ID)
		if !ok || !corners.Facing(d) {
			continue
		}
		if !found || closer(w.Rect, best.Rect, d) {
			best, found = w, true
		}
	}
	return best, found
}
