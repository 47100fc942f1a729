//go:build linux

package feedback

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// GPIOIndicator drives a common-cathode RGB LED from three GPIO outputs.
// All logical pixels share the one LED; any non-zero channel lights it.
type GPIOIndicator struct {
	chip    *gpiocdev.Chip
	lines   *gpiocdev.Lines
	pending RGB
}

// NewGPIOIndicator requests the red, green and blue lines as outputs, initially off.
func NewGPIOIndicator(pinR, pinG, pinB int) (*GPIOIndicator, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	lines, err := chip.RequestLines([]int{pinR, pinG, pinB},
		gpiocdev.AsOutput(0, 0, 0),
		gpiocdev.WithConsumer("countdown-timer"))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request led pins %d,%d,%d: %w", pinR, pinG, pinB, err)
	}

	return &GPIOIndicator{chip: chip, lines: lines}, nil
}

func (g *GPIOIndicator) SetAll(r, gr, b uint8) {
	g.pending = RGB{R: r, G: gr, B: b}
}

// Commit writes the pending color to the LED.
func (g *GPIOIndicator) Commit() error {
	if err := g.lines.SetValues([]int{lit(g.pending.R), lit(g.pending.G), lit(g.pending.B)}); err != nil {
		return fmt.Errorf("set led pins: %w", err)
	}
	return nil
}

func (g *GPIOIndicator) Len() int { return PixelCount }

// Close turns the LED off and releases GPIO resources.
func (g *GPIOIndicator) Close() error {
	var errs []error

	if g.lines != nil {
		if err := g.lines.SetValues([]int{0, 0, 0}); err != nil {
			errs = append(errs, fmt.Errorf("clear led pins: %w", err))
		}
		if err := g.lines.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close led pins: %w", err))
		}
	}
	if g.chip != nil {
		if err := g.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func lit(v uint8) int {
	if v > 0 {
		return 1
	}
	return 0
}
