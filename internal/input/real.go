//go:build linux

package input

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/countdown-timer/internal/logic"
)

// GPIOSampler reads the buttons from the Linux GPIO character device.
type GPIOSampler struct {
	chip    *gpiocdev.Chip
	lines   *gpiocdev.Lines
	values  []int
	tracker Tracker
}

// NewGPIOSampler requests the three button lines as active-low inputs with
// pull-ups. Debouncing is done by the kernel.
func NewGPIOSampler(pinMinutes, pinSeconds, pinStartStop int, debounce time.Duration) (*GPIOSampler, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	opts := []gpiocdev.LineReqOption{
		gpiocdev.AsInput,
		gpiocdev.AsActiveLow,
		gpiocdev.WithPullUp,
		gpiocdev.WithConsumer("countdown-timer"),
	}
	if debounce > 0 {
		opts = append(opts, gpiocdev.WithDebounce(debounce))
	}

	// Offsets are ordered by logic.Button.
	lines, err := chip.RequestLines([]int{pinMinutes, pinSeconds, pinStartStop}, opts...)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request button pins %d,%d,%d: %w", pinMinutes, pinSeconds, pinStartStop, err)
	}

	return &GPIOSampler{
		chip:   chip,
		lines:  lines,
		values: make([]int, logic.NumButtons),
	}, nil
}

// Update reads all button levels in one request.
func (s *GPIOSampler) Update(now time.Time) error {
	if err := s.lines.Values(s.values); err != nil {
		return fmt.Errorf("read button pins: %w", err)
	}
	var levels Levels
	for i, v := range s.values {
		levels[i] = v == 1
	}
	s.tracker.Update(levels, now)
	return nil
}

// WasPressed reports whether b went down in the latest sample.
func (s *GPIOSampler) WasPressed(b logic.Button) bool {
	return s.tracker.WasPressed(b)
}

// HeldFor reports whether b has been down for at least d.
func (s *GPIOSampler) HeldFor(b logic.Button, d time.Duration) bool {
	return s.tracker.HeldFor(b, d)
}

// Close releases GPIO resources.
// Lines are returned to plain pull-up inputs before closing.
func (s *GPIOSampler) Close() error {
	var errs []error

	if s.lines != nil {
		if err := s.lines.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullUp); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure button pins: %w", err))
		}
		if err := s.lines.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button pins: %w", err))
		}
	}
	if s.chip != nil {
		if err := s.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
