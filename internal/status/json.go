package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Mode          string     `json:"mode"`
	Remaining     string     `json:"remaining"`
	LED           string     `json:"led"`
	IdleSeconds   int        `json:"idle_seconds"`
	ShutdownIn    int        `json:"shutdown_in_seconds"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"counts"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of mode change counts.
type CountsJSON struct {
	Starts int `json:"starts"`
	Pauses int `json:"pauses"`
	Alarms int `json:"alarms"`
	Resets int `json:"resets"`
}

// ConfigJSON is the JSON representation of the process config.
type ConfigJSON struct {
	TickMs           int64  `json:"tick_ms"`
	LongPressMs      int64  `json:"long_press_ms"`
	ShutdownTimeoutS int    `json:"shutdown_timeout_s"`
	ShutdownWarningS int    `json:"shutdown_warning_s"`
	Broker           string `json:"broker,omitempty"`
	HTTPAddr         string `json:"http_addr,omitempty"`
	Backend          string `json:"backend"`
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		Mode:          string(snap.Timer.Mode),
		Remaining:     snap.Timer.Remaining(),
		LED:           string(snap.Timer.LED),
		IdleSeconds:   snap.Timer.IdleSeconds,
		ShutdownIn:    snap.ShutdownIn(),
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Starts: snap.Counts.Starts,
			Pauses: snap.Counts.Pauses,
			Alarms: snap.Counts.Alarms,
			Resets: snap.Counts.Resets,
		},
		Config: ConfigJSON{
			TickMs:           snap.Config.TickMs,
			LongPressMs:      snap.Config.LongPressMs,
			ShutdownTimeoutS: snap.Config.ShutdownTimeoutS,
			ShutdownWarningS: snap.Config.ShutdownWarningS,
			Broker:           snap.Config.Broker,
			HTTPAddr:         snap.Config.HTTPAddr,
			Backend:          snap.Config.Backend,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT lifecycle event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
