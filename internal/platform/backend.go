package platform

import "github.com/1broseidon/adjacent/internal/adjacent"

// Display describes a physical display.
type Display struct {
	ID     int           `json:"id"`
	Name   string        `json:"name"`
	Bounds adjacent.Rect `json:"bounds"`
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	adjacent.WindowEnumerator
	adjacent.ActivationSink
	Displays() ([]Display, error)
}
