package input

import (
	"errors"
	"time"

	"github.com/sweeney/countdown-timer/internal/logic"
)

// FakeSampler is a test double that returns scripted button levels.
type FakeSampler struct {
	// Samples contains scripted levels. Each call to Update consumes the
	// next sample; once exhausted, all buttons read as released.
	Samples []Levels

	// index tracks current position in Samples
	index int

	tracker Tracker

	// Closed tracks if Close was called
	Closed bool

	// UpdateError, if set, will be returned by Update()
	UpdateError error
}

// NewFakeSampler creates a FakeSampler with the given samples.
func NewFakeSampler(samples []Levels) *FakeSampler {
	return &FakeSampler{Samples: samples}
}

// Press returns a sample with only b down.
func Press(b logic.Button) Levels {
	var l Levels
	l[b] = true
	return l
}

// Update consumes the next scripted sample.
func (f *FakeSampler) Update(now time.Time) error {
	if f.UpdateError != nil {
		return f.UpdateError
	}
	if f.Closed {
		return errors.New("sampler closed")
	}

	var levels Levels
	if f.index < len(f.Samples) {
		levels = f.Samples[f.index]
		f.index++
	}
	f.tracker.Update(levels, now)
	return nil
}

// WasPressed reports whether b went down in the latest sample.
func (f *FakeSampler) WasPressed(b logic.Button) bool {
	return f.tracker.WasPressed(b)
}

// HeldFor reports whether b has been down for at least d.
func (f *FakeSampler) HeldFor(b logic.Button, d time.Duration) bool {
	return f.tracker.HeldFor(b, d)
}

// Close marks the sampler as closed.
func (f *FakeSampler) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the sampler to the beginning of samples.
func (f *FakeSampler) Reset() {
	f.index = 0
	f.tracker = Tracker{}
	f.Closed = false
}
