// Package logic contains the pure timer/alarm state machine.
// This package has NO external dependencies (no GPIO, display, audio, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import (
	"fmt"
	"time"
)

// Mode is the top-level state of the timer.
type Mode string

const (
	ModeSetting Mode = "SETTING"
	ModeRunning Mode = "RUNNING"
	ModeExpired Mode = "EXPIRED"
)

// LEDState is the indicator color derived from the timer state.
type LEDState string

const (
	LEDOff     LEDState = "OFF"
	LEDWarning LEDState = "WARNING" // red
	LEDDone    LEDState = "DONE"    // green
)

// Color is a text color on the display.
type Color string

const (
	ColorWhite  Color = "WHITE"
	ColorYellow Color = "YELLOW"
	ColorRed    Color = "RED"
	ColorGreen  Color = "GREEN"
	ColorOrange Color = "ORANGE"
)

// Button identifies one of the three device buttons.
type Button int

const (
	ButtonMinutes Button = iota
	ButtonSeconds
	ButtonStartStop

	NumButtons
)

func (b Button) String() string {
	switch b {
	case ButtonMinutes:
		return "MIN"
	case ButtonSeconds:
		return "SEC"
	case ButtonStartStop:
		return "START_STOP"
	}
	return fmt.Sprintf("Button(%d)", int(b))
}

// Input is one control-loop sample of button activity.
type Input struct {
	Time time.Time

	// Pressed is edge-triggered: true only in the iteration the press began.
	Pressed [NumButtons]bool

	// Held is level-triggered: true in every iteration the button has been
	// held for at least the long-press threshold.
	Held [NumButtons]bool
}

// Config holds the timer constants.
type Config struct {
	ShutdownTimeoutSeconds int
	ShutdownWarningSeconds int
	TickInterval           time.Duration
	InitialMinutes         int
	InitialSeconds         int

	// WarningSeconds is the final window (with zero minutes) in which the
	// display turns red and the speaker beeps every tick.
	WarningSeconds int
	// DoubleBeepSeconds is the final window in which a second beep follows.
	DoubleBeepSeconds int
	DoubleBeepGap     time.Duration

	AlarmToneHz       int
	AlarmToneDuration time.Duration
}

// DefaultConfig returns the factory constants of the device.
func DefaultConfig() Config {
	return Config{
		ShutdownTimeoutSeconds: 20,
		ShutdownWarningSeconds: 10,
		TickInterval:           time.Second,
		InitialMinutes:         0,
		InitialSeconds:         10,
		WarningSeconds:         10,
		DoubleBeepSeconds:      3,
		DoubleBeepGap:          250 * time.Millisecond,
		AlarmToneHz:            900,
		AlarmToneDuration:      2 * time.Second,
	}
}

// State is the single source of truth of the timer.
type State struct {
	Mode              Mode
	Minutes           int
	Seconds           int
	IdleSeconds       int
	AlarmAcknowledged bool
	BlinkPhase        bool
	LED               LEDState
}

// Remaining formats the remaining time as MM:SS.
func (s State) Remaining() string {
	return FormatRemaining(s.Minutes, s.Seconds)
}

// FormatRemaining formats minutes and seconds as zero-padded MM:SS.
func FormatRemaining(minutes, seconds int) string {
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Region is a named layout area of the display.
type Region string

const (
	RegionMinutesHint Region = "MINUTES_HINT" // bottom-left, under the minutes button
	RegionSecondsHint Region = "SECONDS_HINT" // bottom-center, under the seconds button
	RegionStartHint   Region = "START_HINT"   // bottom-right, upper line
	RegionPauseHint   Region = "PAUSE_HINT"   // bottom-right, lower line
	RegionResetHint   Region = "RESET_HINT"   // bottom-right
	RegionTime        Region = "TIME"         // large, centered
	RegionShutdown    Region = "SHUTDOWN"     // small, top-left
)

// Text is a string to draw in a region.
type Text struct {
	Region Region
	Color  Color
	Body   string
}

// SoundKind distinguishes the two speaker primitives.
type SoundKind string

const (
	SoundTone SoundKind = "TONE"
	SoundBeep SoundKind = "BEEP"
)

// Sound is a speaker request. Delay is measured from when the frame is applied.
type Sound struct {
	Kind     SoundKind
	FreqHz   int
	Duration time.Duration
	Delay    time.Duration
}

// Transition records a mode change.
type Transition struct {
	Timestamp time.Time
	From      Mode
	To        Mode
	Minutes   int
	Seconds   int
}

// Frame is everything the effect side must do for one loop iteration.
// A zero Frame means nothing to draw.
type Frame struct {
	// Refresh is true when the display is cleared and Texts drawn.
	Refresh bool
	Texts   []Text

	// SetLED is true when LED holds the indicator state for this frame.
	SetLED bool
	LED    LEDState

	Sounds []Sound

	// PowerOff is true exactly once, on the frame that ends the session.
	PowerOff bool

	Transitions []Transition
}
