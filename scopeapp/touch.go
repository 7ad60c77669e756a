package scopeapp

import (
	"time"
)

// touchDebounceInterval suppresses accidental double-activations, the same
// way the resistive panel on the original device was debounced.
const touchDebounceInterval = 250 * time.Millisecond

// Debouncer accepts at most one touch per interval.
type Debouncer struct {
	last     time.Time
	interval time.Duration
}

func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Accept reports whether a touch at the given time should be processed, and
// if so, records it.
func (d *Debouncer) Accept(now time.Time) bool {
	if !d.last.IsZero() && now.Sub(d.last) < d.interval {
		return false
	}
	d.last = now

	return true
}

// buttonKind is the semantic action behind a touch button.
type buttonKind int

const (
	buttonRange buttonKind = iota
	buttonAlert
)

// TouchButton is a rectangular hit region with a label. Buttons are
// ephemeral: the layout pass rebuilds them whenever the window size changes.
type TouchButton struct {
	Label string
	Kind  buttonKind
	X     int
	Y     int
	W     int
	H     int
}

// Contains hit-tests a cell coordinate against the button rectangle.
func (b TouchButton) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// inDisc hit-tests a cell against the radar disc, using the same aspect
// correction as the face rendering.
func inDisc(x, y int, layout faceLayout) bool {
	return cellDistance(x, y, layout.centerX, layout.centerY) <= layout.radius
}
