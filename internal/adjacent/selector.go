package adjacent

import (
	"context"
	"fmt"

	"github.com/1broseidon/adjacent/internal/logging"
)

// Outcome describes how a directional command ended.
type Outcome int

const (
	// OutcomeNoFocus means there was no focused window, or it was not an
	// interesting one. The command is a no-op.
	OutcomeNoFocus Outcome = iota
	// OutcomeNoCandidate means nothing qualified in the direction.
	OutcomeNoCandidate
	// OutcomeSelected means a target was chosen but not activated.
	OutcomeSelected
	// OutcomeActivated means a target was chosen and activation was requested.
	OutcomeActivated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoFocus:
		return "no-focus"
	case OutcomeNoCandidate:
		return "no-candidate"
	case OutcomeSelected:
		return "selected"
	case OutcomeActivated:
		return "activated"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Decision is the result of one directional command.
type Decision struct {
	Direction  Direction
	Policy     SelectionPolicy
	Outcome    Outcome
	Focused    WindowRef
	Target     WindowRef
	Candidates int
}

// Found reports whether a target was chosen.
func (d Decision) Found() bool {
	return d.Outcome == OutcomeSelected || d.Outcome == OutcomeActivated
}

// Selector runs directional commands against a window enumerator. It keeps
// no state between calls.
type Selector struct {
	windows WindowEnumerator
	sink    ActivationSink
	config  ConfigProvider
}

// NewSelector wires a selector to its collaborators. A nil config provider
// means the zero SelectionConfig (Closest, no minimized, same monitor).
func NewSelector(windows WindowEnumerator, sink ActivationSink, config ConfigProvider) *Selector {
	if config == nil {
		config = StaticConfig{}
	}
	return &Selector{windows: windows, sink: sink, config: config}
}

// Select takes a fresh snapshot and decides which window lies in direction
// d from the focused one, without activating it.
func (s *Selector) Select(ctx context.Context, d Direction) Decision {
	log := logging.FromContext(ctx)
	cfg := s.config.SelectionConfig()
	decision := Decision{Direction: d, Policy: cfg.Policy, Outcome: OutcomeNoFocus}

	focused, ok, err := s.windows.FocusedWindow(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read focused window")
		return decision
	}
	if !ok || !focused.Interesting {
		log.Debug().Stringer("direction", d).Msg("no interesting focused window")
		return decision
	}
	decision.Focused = focused

	all, err := s.windows.Windows(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to enumerate windows, treating as empty")
		all = nil
	}

	candidates := Filter(focused, all, cfg)
	decision.Candidates = len(candidates)
	decision.Outcome = OutcomeNoCandidate

	target, found := StrategyFor(cfg.Policy, all).Select(focused, candidates, d)
	if !found {
		log.Debug().
			Stringer("direction", d).
			Stringer("policy", cfg.Policy).
			Int("candidates", len(candidates)).
			Msg("no window in direction")
		return decision
	}

	decision.Target = target
	decision.Outcome = OutcomeSelected
	log.Debug().
		Stringer("direction", d).
		Stringer("policy", cfg.Policy).
		Int("candidates", len(candidates)).
		Stringer("target", target).
		Msg("selected adjacent window")
	return decision
}

// OnDirectionalCommand selects the window in direction d and requests its
// activation. Activation is attempted at most once and only when a target
// was found.
func (s *Selector) OnDirectionalCommand(ctx context.Context, d Direction) (Decision, error) {
	decision := s.Select(ctx, d)
	if !decision.Found() {
		return decision, nil
	}
	if err := s.sink.Activate(ctx, decision.Target); err != nil {
		return decision, fmt.Errorf("activate %s: %w", decision.Target, err)
	}
	decision.Outcome = OutcomeActivated
	return decision, nil
}

// WorkspaceSnapshot is the current workspace as the selector sees it.
type WorkspaceSnapshot struct {
	Focused  WindowRef
	HasFocus bool
	// Stack holds the drawn windows, topmost first.
	Stack []StackEntry
	// Minimized holds iconified windows in enumeration order.
	Minimized []WindowRef
}

// Snapshot returns the focused window and the current workspace in
// front-to-back order with corner visibility.
func (s *Selector) Snapshot(ctx context.Context) (WorkspaceSnapshot, error) {
	focused, ok, err := s.windows.FocusedWindow(ctx)
	if err != nil {
		return WorkspaceSnapshot{}, fmt.Errorf("focused window: %w", err)
	}
	all, err := s.windows.Windows(ctx)
	if err != nil {
		return WorkspaceSnapshot{}, fmt.Errorf("enumerate windows: %w", err)
	}

	snap := WorkspaceSnapshot{
		Focused:  focused,
		HasFocus: ok,
		Stack:    NewZStack(all).Entries(),
	}
	for _, w := range all {
		if w.Minimized {
			snap.Minimized = append(snap.Minimized, w)
		}
	}
	return snap, nil
}
