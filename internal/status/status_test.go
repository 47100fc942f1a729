package status

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sweeney/countdown-timer/internal/logic"
)

func TestNewTracker(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := Config{TickMs: 1000, LongPressMs: 500, Broker: "tcp://localhost:1883", HTTPAddr: ":8080", Backend: "sim"}
	tr := NewTracker(start, cfg)

	snap := tr.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Errorf("StartTime: got %v, want %v", snap.StartTime, start)
	}
	if snap.Config.HTTPAddr != ":8080" {
		t.Errorf("Config.HTTPAddr: got %q, want %q", snap.Config.HTTPAddr, ":8080")
	}
	if snap.Timer.Mode != logic.ModeSetting {
		t.Errorf("Mode: got %s, want SETTING", snap.Timer.Mode)
	}
	if snap.MQTTConnected {
		t.Error("expected MQTTConnected=false initially")
	}
}

func TestUpdateAndSnapshot(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.Update(logic.State{Mode: logic.ModeRunning, Minutes: 1, Seconds: 5, LED: logic.LEDOff})

	snap := tr.Snapshot()
	if snap.Timer.Mode != logic.ModeRunning {
		t.Errorf("Mode: got %s, want RUNNING", snap.Timer.Mode)
	}
	if snap.Timer.Remaining() != "01:05" {
		t.Errorf("Remaining: got %s, want 01:05", snap.Timer.Remaining())
	}
}

func TestRecordCounts(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	for _, step := range [][2]logic.Mode{
		{logic.ModeSetting, logic.ModeRunning},
		{logic.ModeRunning, logic.ModeSetting},
		{logic.ModeSetting, logic.ModeRunning},
		{logic.ModeRunning, logic.ModeExpired},
		{logic.ModeExpired, logic.ModeSetting},
	} {
		tr.Record(logic.Transition{From: step[0], To: step[1]})
	}

	got := tr.Snapshot().Counts
	want := Counts{Starts: 2, Pauses: 1, Alarms: 1, Resets: 1}
	if got != want {
		t.Errorf("Counts: got %+v, want %+v", got, want)
	}
}

func TestSetMQTTConnected(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.SetMQTTConnected(true)
	if !tr.Snapshot().MQTTConnected {
		t.Error("expected MQTTConnected=true")
	}

	tr.SetMQTTConnected(false)
	if tr.Snapshot().MQTTConnected {
		t.Error("expected MQTTConnected=false")
	}
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		StartTime: start,
		Now:       start.Add(15 * time.Minute),
	}

	if snap.Uptime() != 15*time.Minute {
		t.Errorf("Uptime: got %v, want 15m", snap.Uptime())
	}
}

func TestSnapshotShutdownIn(t *testing.T) {
	tests := []struct {
		idle int
		want int
	}{
		{0, 30},
		{19, 11},
		{30, 0},
		{45, 0},
	}

	for _, tt := range tests {
		snap := Snapshot{
			Timer:  logic.State{IdleSeconds: tt.idle},
			Config: Config{ShutdownTimeoutS: 20, ShutdownWarningS: 10},
		}
		if got := snap.ShutdownIn(); got != tt.want {
			t.Errorf("idle=%d: got %d, want %d", tt.idle, got, tt.want)
		}
	}
}

func TestSnapshotNowIsSet(t *testing.T) {
	tr := NewTracker(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Config{})
	fixed := time.Date(2026, 1, 1, 0, 5, 0, 0, time.UTC)
	tr.now = func() time.Time { return fixed }

	if snap := tr.Snapshot(); !snap.Now.Equal(fixed) {
		t.Errorf("Now: got %v, want %v", snap.Now, fixed)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	tr.Update(logic.State{Mode: logic.ModeRunning, Seconds: 9})

	snap1 := tr.Snapshot()

	tr.Update(logic.State{Mode: logic.ModeExpired})

	if snap1.Timer.Mode != logic.ModeRunning {
		t.Error("snapshot should be a copy; Mode was modified")
	}
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Timer:         logic.State{Mode: logic.ModeRunning, Minutes: 0, Seconds: 7, IdleSeconds: 3, LED: logic.LEDWarning},
		Counts:        Counts{Starts: 5, Pauses: 2, Alarms: 1},
		StartTime:     start,
		Now:           start.Add(15 * time.Minute),
		MQTTConnected: true,
		Config:        Config{TickMs: 1000, LongPressMs: 500, ShutdownTimeoutS: 20, ShutdownWarningS: 10, Broker: "tcp://localhost:1883", Backend: "gpio"},
	}

	data := FormatJSON(snap)

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	s := parsed.Status
	if s.Mode != "RUNNING" {
		t.Errorf("Mode: got %q, want RUNNING", s.Mode)
	}
	if s.Remaining != "00:07" {
		t.Errorf("Remaining: got %q, want 00:07", s.Remaining)
	}
	if s.LED != "WARNING" {
		t.Errorf("LED: got %q, want WARNING", s.LED)
	}
	if s.ShutdownIn != 27 {
		t.Errorf("ShutdownIn: got %d, want 27", s.ShutdownIn)
	}
	if s.UptimeSeconds != 900 {
		t.Errorf("UptimeSeconds: got %d, want 900", s.UptimeSeconds)
	}
	if !s.MQTT.Connected {
		t.Error("expected MQTT.Connected=true")
	}
	if s.Counts.Starts != 5 || s.Counts.Alarms != 1 {
		t.Errorf("Counts: got %+v", s.Counts)
	}
	if s.Config.Backend != "gpio" {
		t.Errorf("Config.Backend: got %q, want gpio", s.Config.Backend)
	}
	// Event and Reason should be omitted
	if s.Event != "" || s.Reason != "" {
		t.Errorf("expected empty event/reason for web format, got %q/%q", s.Event, s.Reason)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Timer:     logic.State{Mode: logic.ModeSetting, Seconds: 10, IdleSeconds: 30},
		StartTime: start,
		Now:       start.Add(30 * time.Minute),
		Config:    Config{ShutdownTimeoutS: 20, ShutdownWarningS: 10},
	}

	data := FormatStatusEvent(snap, "POWER_OFF", "IDLE")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.Event != "POWER_OFF" {
		t.Errorf("Event: got %q, want POWER_OFF", parsed.Status.Event)
	}
	if parsed.Status.Reason != "IDLE" {
		t.Errorf("Reason: got %q, want IDLE", parsed.Status.Reason)
	}
	if parsed.Status.ShutdownIn != 0 {
		t.Errorf("ShutdownIn: got %d, want 0", parsed.Status.ShutdownIn)
	}
}

func TestFormatStatusEventOmitsReasonWhenEmpty(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
	}

	data := FormatStatusEvent(snap, "STARTUP", "")

	var raw map[string]interface{}
	json.Unmarshal(data, &raw)
	status := raw["status"].(map[string]interface{})
	if _, exists := status["reason"]; exists {
		t.Error("reason should be omitted when empty")
	}
	if status["event"] != "STARTUP" {
		t.Errorf("event: got %v, want STARTUP", status["event"])
	}
}

func TestConcurrentAccess(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	var wg sync.WaitGroup

	// Writer
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			tr.Update(logic.State{Mode: logic.ModeRunning, Seconds: i % 60})
			tr.Record(logic.Transition{From: logic.ModeSetting, To: logic.ModeRunning})
			tr.SetMQTTConnected(i%2 == 0)
		}
	}()

	// Reader
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			snap := tr.Snapshot()
			_ = FormatJSON(snap)
		}
	}()

	wg.Wait()
}
