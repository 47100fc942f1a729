package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/countdown-timer/internal/logic"
	"github.com/sweeney/countdown-timer/internal/status"
)

func newTestServer(t *testing.T) (*httptest.Server, *status.Tracker) {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := status.Config{
		TickMs:           1000,
		LongPressMs:      500,
		ShutdownTimeoutS: 20,
		ShutdownWarningS: 10,
		Broker:           "tcp://192.168.1.200:1883",
		HTTPAddr:         ":8080",
		Backend:          "sim",
	}
	tr := status.NewTracker(start, cfg)
	srv := New(":0", tr)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, tr
}

func getJSON(t *testing.T, url string) status.StatusJSON {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	var sj status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&sj); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	return sj
}

func TestJSONEndpoint(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update(logic.State{Mode: logic.ModeRunning, Minutes: 1, Seconds: 30, LED: logic.LEDOff})
	tr.Record(logic.Transition{From: logic.ModeSetting, To: logic.ModeRunning})
	tr.SetMQTTConnected(true)

	resp, err := http.Get(ts.URL + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var sj status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&sj); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}

	if sj.Status.Mode != "RUNNING" {
		t.Errorf("Mode: got %q, want RUNNING", sj.Status.Mode)
	}
	if sj.Status.Remaining != "01:30" {
		t.Errorf("Remaining: got %q, want 01:30", sj.Status.Remaining)
	}
	if !sj.Status.MQTT.Connected {
		t.Error("expected MQTT.Connected=true")
	}
	if sj.Status.MQTT.Broker != "tcp://192.168.1.200:1883" {
		t.Errorf("MQTT.Broker: got %q, want tcp://192.168.1.200:1883", sj.Status.MQTT.Broker)
	}
	if sj.Status.Counts.Starts != 1 {
		t.Errorf("Counts.Starts: got %d, want 1", sj.Status.Counts.Starts)
	}
	if sj.Status.Config.TickMs != 1000 {
		t.Errorf("Config.TickMs: got %d, want 1000", sj.Status.Config.TickMs)
	}
}

func TestJSONInitialState(t *testing.T) {
	ts, _ := newTestServer(t)

	sj := getJSON(t, ts.URL+"/index.json")

	if sj.Status.Mode != "SETTING" {
		t.Errorf("Mode: got %q, want SETTING", sj.Status.Mode)
	}
	if sj.Status.LED != "OFF" {
		t.Errorf("LED: got %q, want OFF", sj.Status.LED)
	}
	if sj.Status.ShutdownIn != 30 {
		t.Errorf("ShutdownIn: got %d, want 30", sj.Status.ShutdownIn)
	}
}

func TestHTMLEndpointRoot(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update(logic.State{Mode: logic.ModeRunning, Seconds: 7, LED: logic.LEDWarning})

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte("00:07")) {
		t.Error("expected remaining time in page")
	}
	if !bytes.Contains(body, []byte(`class="clock running warning"`)) {
		t.Errorf("expected warning clock class in page:\n%s", body)
	}
}

func TestHTMLEndpointIndexHTML(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/index.html")
	if err != nil {
		t.Fatalf("GET /index.html: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
}

func TestHTMLExpired(t *testing.T) {
	var buf bytes.Buffer
	renderHTML(&buf, status.Snapshot{
		Timer:     logic.State{Mode: logic.ModeExpired, LED: logic.LEDDone},
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 1, 2, 3, 0, time.UTC),
	})

	out := buf.String()
	if !strings.Contains(out, `class="clock expired"`) {
		t.Errorf("expected expired clock class:\n%s", out)
	}
	if !strings.Contains(out, "1h 2m 3s") {
		t.Error("expected formatted uptime")
	}
	if !strings.Contains(out, "disabled") {
		t.Error("expected broker shown as disabled")
	}
}

func TestNotFoundForUnknownPath(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nonexistent")
	if err != nil {
		t.Fatalf("GET /nonexistent: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}

func TestStateChangesReflectedInResponse(t *testing.T) {
	ts, tr := newTestServer(t)

	sj1 := getJSON(t, ts.URL+"/index.json")
	if sj1.Status.Mode != "SETTING" {
		t.Errorf("expected SETTING initially, got %q", sj1.Status.Mode)
	}

	tr.Update(logic.State{Mode: logic.ModeExpired, LED: logic.LEDDone, IdleSeconds: 5})
	tr.Record(logic.Transition{From: logic.ModeRunning, To: logic.ModeExpired})
	tr.SetMQTTConnected(true)

	sj2 := getJSON(t, ts.URL+"/index.json")
	if sj2.Status.Mode != "EXPIRED" {
		t.Errorf("Mode: got %q, want EXPIRED", sj2.Status.Mode)
	}
	if sj2.Status.LED != "DONE" {
		t.Errorf("LED: got %q, want DONE", sj2.Status.LED)
	}
	if sj2.Status.Counts.Alarms != 1 {
		t.Errorf("Counts.Alarms: got %d, want 1", sj2.Status.Counts.Alarms)
	}
	if !sj2.Status.MQTT.Connected {
		t.Error("expected MQTT connected after update")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/index.json", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("POST /index.json: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", resp.StatusCode)
	}
	if allow := resp.Header.Get("Allow"); allow != "GET, HEAD" {
		t.Errorf("Allow: got %q", allow)
	}
}

func TestNoStore(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, path := range []string{"/", "/index.json"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if cc := resp.Header.Get("Cache-Control"); cc != "no-store" {
			t.Errorf("%s Cache-Control: got %q, want no-store", path, cc)
		}
	}
}
