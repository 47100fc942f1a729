// Package mqtt publishes timer telemetry over MQTT with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/countdown-timer/internal/logic"
)

// Topic is the MQTT topic for timer mode changes.
const Topic = "devices/countdown-timer/events"

// TopicSystem is the MQTT topic for lifecycle events.
const TopicSystem = "devices/countdown-timer/system"

// Publisher publishes timer events to MQTT.
type Publisher interface {
	// Publish sends a mode change to the broker.
	// Returns error if publishing fails (should not stop the timer).
	Publish(tr logic.Transition) error

	// PublishSystem sends a lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// Lifecycle event names.
const (
	EventStartup  = "STARTUP"
	EventShutdown = "SHUTDOWN"
	EventPowerOff = "POWER_OFF"
	EventOffline  = "OFFLINE"
)

// SystemEvent represents a lifecycle event (startup, shutdown, power-off).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "POWER_OFF"
	Reason     string // e.g., "IDLE", "SIGTERM"
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload is the MQTT message for a mode change.
type Payload struct {
	Timer TimerPayload `json:"timer"`
}

// TimerPayload contains the mode change details.
type TimerPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	From      string `json:"from"`
	Remaining string `json:"remaining"`
}

// FormatPayload creates the JSON payload for a mode change.
func FormatPayload(tr logic.Transition) ([]byte, error) {
	payload := Payload{
		Timer: TimerPayload{
			Timestamp: tr.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(tr.To),
			From:      string(tr.From),
			Remaining: logic.FormatRemaining(tr.Minutes, tr.Seconds),
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the MQTT message for simple lifecycle events (e.g. the
// broker-held will) that carry no status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the lifecycle event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a lifecycle event.
// If event.RawPayload is set, it is returned directly.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
