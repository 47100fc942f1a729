// Package input provides button sampling with hardware abstraction.
// The GPIO implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package input

import (
	"time"

	"github.com/sweeney/countdown-timer/internal/logic"
)

// Buttons reports button activity for the current loop iteration.
type Buttons interface {
	// WasPressed is true only in the iteration in which b went down.
	WasPressed(b logic.Button) bool

	// HeldFor is true while b has been held down for at least d.
	HeldFor(b logic.Button, d time.Duration) bool
}

// Sampler samples the buttons once per loop iteration.
type Sampler interface {
	Buttons

	// Update samples the hardware. It must be called exactly once per
	// iteration, before WasPressed or HeldFor.
	Update(now time.Time) error

	// Close releases resources.
	Close() error
}

// Default BCM pin numbers for the three buttons (active low).
const (
	DefaultPinMinutes   = 5
	DefaultPinSeconds   = 6
	DefaultPinStartStop = 13
)

// Read samples s and converts the result into a controller input.
func Read(s Sampler, now time.Time, longPress time.Duration) (logic.Input, error) {
	if err := s.Update(now); err != nil {
		return logic.Input{}, err
	}
	return Snapshot(s, now, longPress), nil
}

// Snapshot converts already-sampled button activity into a controller input.
func Snapshot(b Buttons, now time.Time, longPress time.Duration) logic.Input {
	in := logic.Input{Time: now}
	for i := logic.Button(0); i < logic.NumButtons; i++ {
		in.Pressed[i] = b.WasPressed(i)
		in.Held[i] = b.HeldFor(i, longPress)
	}
	return in
}
