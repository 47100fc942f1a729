//go:build !linux

package feedback

import "errors"

// GPIOIndicator is not available on non-Linux platforms.
type GPIOIndicator struct{}

// NewGPIOIndicator returns an error on non-Linux platforms.
func NewGPIOIndicator(pinR, pinG, pinB int) (*GPIOIndicator, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

func (g *GPIOIndicator) SetAll(r, gr, b uint8) {}

func (g *GPIOIndicator) Commit() error { return errors.New("gpio: not supported") }

func (g *GPIOIndicator) Len() int { return PixelCount }

func (g *GPIOIndicator) Close() error { return nil }
