package adjacent

// Filter returns the windows of all that may be selected from focused under
// cfg, in enumeration order. Directional membership is left to the strategy.
func Filter(focused WindowRef, all []WindowRef, cfg SelectionConfig) []WindowRef {
	out := make([]WindowRef, 0, len(all))
	for _, w := range all {
		if w.ID == focused.ID || !w.Interesting {
			continue
		}
		if w.Minimized && !cfg.IncludeMinimized {
			continue
		}
		if w.MonitorID != focused.MonitorID && !cfg.IncludeOtherMonitors {
			continue
		}
		out = append(out, w)
	}
	return out
}
