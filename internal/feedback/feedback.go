// Package feedback drives the display, LED indicator and speaker.
// Real implementations talk to hardware; fakes record calls for tests.
package feedback

import (
	"time"

	"github.com/sweeney/countdown-timer/internal/logic"
)

// Display draws text on the screen.
type Display interface {
	Clear()
	SetTextColor(c logic.Color)
	SetTextSize(scale int)
	SetCursor(x, y int)
	Print(s string)
	Printf(format string, args ...any)
}

// Indicator is an LED strip whose pixels all show the same color.
type Indicator interface {
	// SetAll sets every pixel. Nothing changes until Commit.
	SetAll(r, g, b uint8)

	// Commit pushes the pending color to the hardware.
	Commit() error

	// Len returns the number of pixels.
	Len() int
}

// Speaker plays tones on the piezo.
type Speaker interface {
	Tone(freqHz int, d time.Duration)
	Beep()
	Mute()
}

// PixelCount is the number of pixels on the indicator strip.
const PixelCount = 10

// DefaultBrightness is the indicator intensity used for lit states.
const DefaultBrightness = 5

// Beep defaults of the device speaker.
const (
	BeepFreqHz   = 4000
	BeepDuration = 100 * time.Millisecond
)

// RGB is an indicator color.
type RGB struct {
	R, G, B uint8
}

// ColorFor maps an LED state to an indicator color at the given brightness.
func ColorFor(state logic.LEDState, brightness uint8) RGB {
	switch state {
	case logic.LEDWarning:
		return RGB{R: brightness}
	case logic.LEDDone:
		return RGB{G: brightness}
	}
	return RGB{}
}

// Placement is where and how large a region is drawn.
type Placement struct {
	X, Y int
	Size int
}

// Layout maps display regions to placements.
type Layout map[logic.Region]Placement

// DefaultLayout is the layout of the 320x240 device screen: hints along the
// bottom edge under their buttons, the time large in the middle and the
// shutdown warning small in the top-left corner.
func DefaultLayout() Layout {
	return Layout{
		logic.RegionMinutesHint: {X: 45, Y: 225, Size: 2},
		logic.RegionSecondsHint: {X: 142, Y: 225, Size: 2},
		logic.RegionStartHint:   {X: 240, Y: 220, Size: 1},
		logic.RegionPauseHint:   {X: 240, Y: 232, Size: 1},
		logic.RegionResetHint:   {X: 225, Y: 225, Size: 2},
		logic.RegionTime:        {X: 55, Y: 90, Size: 15},
		logic.RegionShutdown:    {X: 1, Y: 1, Size: 1},
	}
}

// ScreenWidth and ScreenHeight are the pixel dimensions DefaultLayout targets.
const (
	ScreenWidth  = 320
	ScreenHeight = 240
)
