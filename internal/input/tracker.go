package input

import (
	"time"

	"github.com/sweeney/countdown-timer/internal/logic"
)

// Levels is one raw sample of button levels (true = down).
type Levels [logic.NumButtons]bool

// Tracker turns level samples into press edges and hold durations.
// Not safe for concurrent use.
type Tracker struct {
	down    Levels
	pressed Levels
	since   [logic.NumButtons]time.Time
	now     time.Time
}

// Update records a new level sample taken at now.
func (t *Tracker) Update(levels Levels, now time.Time) {
	t.now = now
	for i := range levels {
		t.pressed[i] = levels[i] && !t.down[i]
		if t.pressed[i] {
			t.since[i] = now
		}
		t.down[i] = levels[i]
	}
}

// WasPressed reports whether b went down in the latest sample.
func (t *Tracker) WasPressed(b logic.Button) bool {
	return t.pressed[b]
}

// HeldFor reports whether b has been down for at least d as of the latest sample.
func (t *Tracker) HeldFor(b logic.Button, d time.Duration) bool {
	return t.down[b] && t.now.Sub(t.since[b]) >= d
}

// IsDown reports the latest level of b.
func (t *Tracker) IsDown(b logic.Button) bool {
	return t.down[b]
}
