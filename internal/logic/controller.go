package logic

import (
	"fmt"
	"time"
)

// Controller owns the timer state and advances it one loop iteration at a time.
type Controller struct {
	cfg         Config
	state       State
	lastRefresh time.Time
	halted      bool
}

// NewController creates a controller in SETTING mode with the configured
// initial duration. The start time is the reference for the first tick.
func NewController(cfg Config, start time.Time) *Controller {
	return &Controller{
		cfg: cfg,
		state: State{
			Mode:    ModeSetting,
			Minutes: cfg.InitialMinutes,
			Seconds: cfg.InitialSeconds,
			LED:     LEDOff,
		},
		lastRefresh: start,
	}
}

// State returns a copy of the current timer state.
func (c *Controller) State() State {
	return c.state
}

// Halted reports whether power-off has been issued.
func (c *Controller) Halted() bool {
	return c.halted
}

// Process applies one input sample and returns the frame to render.
// Input is applied first; the refresh cycle runs when a tick interval has
// elapsed since the last refresh or when the user adjusted the duration.
func (c *Controller) Process(in Input) Frame {
	if c.halted {
		return Frame{}
	}

	var frame Frame

	if in.Pressed[ButtonStartStop] {
		if tr, ok := c.toggle(in.Time); ok {
			frame.Transitions = append(frame.Transitions, tr)
		}
	}

	adjusting := false
	if c.state.Mode == ModeSetting {
		adjusting = c.adjust(in)
	}

	tick := in.Time.Sub(c.lastRefresh) >= c.cfg.TickInterval
	if !tick && !adjusting {
		return frame
	}
	c.lastRefresh = in.Time

	switch c.state.Mode {
	case ModeSetting, ModeExpired:
		if !adjusting {
			c.state.IdleSeconds++
		}
	case ModeRunning:
		c.state.IdleSeconds = 0
		if c.countdown() {
			frame.Transitions = append(frame.Transitions, c.transition(in.Time, ModeExpired))
		}
	}

	total := c.cfg.ShutdownTimeoutSeconds + c.cfg.ShutdownWarningSeconds
	if c.state.IdleSeconds >= total {
		c.halted = true
		c.state.LED = LEDOff
		frame.SetLED = true
		frame.LED = LEDOff
		frame.PowerOff = true
		return frame
	}

	c.feedback(&frame, adjusting)

	if c.state.IdleSeconds >= c.cfg.ShutdownTimeoutSeconds {
		frame.Texts = append(frame.Texts, Text{
			Region: RegionShutdown,
			Color:  ColorOrange,
			Body:   fmt.Sprintf("Powering off in %02d...", total-c.state.IdleSeconds),
		})
	}

	return frame
}

// toggle handles the start/stop button.
func (c *Controller) toggle(now time.Time) (Transition, bool) {
	switch c.state.Mode {
	case ModeSetting:
		c.state.IdleSeconds = 0
		return c.transition(now, ModeRunning), true
	case ModeRunning:
		c.state.IdleSeconds = 0
		c.state.AlarmAcknowledged = false
		return c.transition(now, ModeSetting), true
	case ModeExpired:
		c.state.AlarmAcknowledged = false
		c.state.Minutes = 0
		c.state.Seconds = 0
		return c.transition(now, ModeSetting), true
	}
	return Transition{}, false
}

// adjust applies the minutes/seconds buttons. Returns true if anything changed.
func (c *Controller) adjust(in Input) bool {
	adjusting := false

	if in.Held[ButtonMinutes] {
		c.state.Minutes = 0
		adjusting = true
	}
	if in.Pressed[ButtonMinutes] {
		c.state.Minutes++
		adjusting = true
	}

	if in.Held[ButtonSeconds] {
		c.state.Seconds = 0
		adjusting = true
	}
	if in.Pressed[ButtonSeconds] {
		c.state.Seconds++
		if c.state.Seconds > 59 {
			c.state.Seconds = 0
			c.state.Minutes++
		}
		adjusting = true
	}

	if adjusting {
		c.state.IdleSeconds = 0
	}
	return adjusting
}

// countdown removes one second, borrowing from minutes on underflow.
// Returns true when the countdown has reached 0:00.
func (c *Controller) countdown() bool {
	c.state.Seconds--
	if c.state.Seconds < 0 {
		if c.state.Minutes <= 0 {
			c.state.Minutes = 0
			c.state.Seconds = 0
			return true
		}
		c.state.Seconds = 59
		c.state.Minutes--
	}
	return c.state.Minutes == 0 && c.state.Seconds == 0
}

func (c *Controller) transition(now time.Time, to Mode) Transition {
	from := c.state.Mode
	c.state.Mode = to
	if to == ModeExpired {
		c.state.Minutes = 0
		c.state.Seconds = 0
		c.state.AlarmAcknowledged = false
	}
	return Transition{
		Timestamp: now,
		From:      from,
		To:        to,
		Minutes:   c.state.Minutes,
		Seconds:   c.state.Seconds,
	}
}
