// Package status provides a thread-safe view of the timer for the HTTP
// status page and MQTT lifecycle events.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/countdown-timer/internal/logic"
)

// Config contains process configuration for display.
type Config struct {
	TickMs           int64
	LongPressMs      int64
	ShutdownTimeoutS int
	ShutdownWarningS int
	Broker           string
	HTTPAddr         string
	Backend          string // "gpio" or "sim"
}

// Counts tracks mode changes since boot.
type Counts struct {
	Starts int // SETTING -> RUNNING
	Pauses int // RUNNING -> SETTING
	Alarms int // RUNNING -> EXPIRED
	Resets int // EXPIRED -> SETTING
}

// Snapshot is a point-in-time view of the timer.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Timer         logic.State
	Counts        Counts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since boot.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// ShutdownIn returns the seconds left before idle power-off.
func (s Snapshot) ShutdownIn() int {
	left := s.Config.ShutdownTimeoutS + s.Config.ShutdownWarningS - s.Timer.IdleSeconds
	if left < 0 {
		return 0
	}
	return left
}

// Tracker holds the latest timer state behind an RWMutex.
// Written only by the control loop.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
			Timer:     logic.State{Mode: logic.ModeSetting, LED: logic.LEDOff},
		},
		now: time.Now,
	}
}

// Update stores the latest timer state.
func (t *Tracker) Update(state logic.State) {
	t.mu.Lock()
	t.snap.Timer = state
	t.mu.Unlock()
}

// Record counts a mode change.
func (t *Tracker) Record(tr logic.Transition) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c := &t.snap.Counts
	switch {
	case tr.From == logic.ModeSetting && tr.To == logic.ModeRunning:
		c.Starts++
	case tr.From == logic.ModeRunning && tr.To == logic.ModeSetting:
		c.Pauses++
	case tr.To == logic.ModeExpired:
		c.Alarms++
	case tr.From == logic.ModeExpired && tr.To == logic.ModeSetting:
		c.Resets++
	}
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the timer state.
// The Now field is set at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = t.now()
	return s
}
