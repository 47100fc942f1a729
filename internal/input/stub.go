//go:build !linux

package input

import (
	"errors"
	"time"

	"github.com/sweeney/countdown-timer/internal/logic"
)

// GPIOSampler is not available on non-Linux platforms.
type GPIOSampler struct{}

// NewGPIOSampler returns an error on non-Linux platforms.
func NewGPIOSampler(pinMinutes, pinSeconds, pinStartStop int, debounce time.Duration) (*GPIOSampler, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Update is not implemented on non-Linux platforms.
func (s *GPIOSampler) Update(now time.Time) error {
	return errors.New("gpio: not supported")
}

func (s *GPIOSampler) WasPressed(b logic.Button) bool { return false }

func (s *GPIOSampler) HeldFor(b logic.Button, d time.Duration) bool { return false }

// Close is not implemented on non-Linux platforms.
func (s *GPIOSampler) Close() error {
	return nil
}
