package feedback

import (
	"fmt"
	"sync"
	"time"

	"github.com/sweeney/countdown-timer/internal/logic"
)

// Printed is one Print call with the display settings in effect.
type Printed struct {
	X, Y  int
	Size  int
	Color logic.Color
	Text  string
}

// FakeDisplay records what was drawn since the last Clear.
type FakeDisplay struct {
	// Clears counts Clear calls.
	Clears int

	// Screen holds the prints since the last Clear.
	Screen []Printed

	x, y  int
	size  int
	color logic.Color
}

// NewFakeDisplay creates a FakeDisplay.
func NewFakeDisplay() *FakeDisplay {
	return &FakeDisplay{size: 1, color: logic.ColorWhite}
}

func (d *FakeDisplay) Clear() {
	d.Clears++
	d.Screen = nil
}

func (d *FakeDisplay) SetTextColor(c logic.Color) { d.color = c }
func (d *FakeDisplay) SetTextSize(scale int)      { d.size = scale }
func (d *FakeDisplay) SetCursor(x, y int)         { d.x, d.y = x, y }

func (d *FakeDisplay) Print(s string) {
	d.Screen = append(d.Screen, Printed{X: d.x, Y: d.y, Size: d.size, Color: d.color, Text: s})
}

func (d *FakeDisplay) Printf(format string, args ...any) {
	d.Print(fmt.Sprintf(format, args...))
}

// Find returns the first print whose text is s.
func (d *FakeDisplay) Find(s string) (Printed, bool) {
	for _, p := range d.Screen {
		if p.Text == s {
			return p, true
		}
	}
	return Printed{}, false
}

// FakeIndicator records committed colors.
type FakeIndicator struct {
	// Commits contains every committed color, in order.
	Commits []RGB

	// CommitError, if set, will be returned by Commit.
	CommitError error

	pending RGB
}

// NewFakeIndicator creates a FakeIndicator.
func NewFakeIndicator() *FakeIndicator {
	return &FakeIndicator{}
}

func (f *FakeIndicator) SetAll(r, g, b uint8) { f.pending = RGB{r, g, b} }

func (f *FakeIndicator) Commit() error {
	if f.CommitError != nil {
		return f.CommitError
	}
	f.Commits = append(f.Commits, f.pending)
	return nil
}

func (f *FakeIndicator) Len() int { return PixelCount }

// Current returns the last committed color.
func (f *FakeIndicator) Current() RGB {
	if len(f.Commits) == 0 {
		return RGB{}
	}
	return f.Commits[len(f.Commits)-1]
}

// SpeakerCall is one recorded speaker call.
type SpeakerCall struct {
	Kind     string // "TONE", "BEEP" or "MUTE"
	FreqHz   int
	Duration time.Duration
}

// FakeSpeaker records speaker calls. Safe for concurrent use since delayed
// beeps arrive from a timer goroutine.
type FakeSpeaker struct {
	mu    sync.Mutex
	calls []SpeakerCall
}

// NewFakeSpeaker creates a FakeSpeaker.
func NewFakeSpeaker() *FakeSpeaker {
	return &FakeSpeaker{}
}

func (f *FakeSpeaker) Tone(freqHz int, d time.Duration) {
	f.record(SpeakerCall{Kind: "TONE", FreqHz: freqHz, Duration: d})
}

func (f *FakeSpeaker) Beep() {
	f.record(SpeakerCall{Kind: "BEEP", FreqHz: BeepFreqHz, Duration: BeepDuration})
}

func (f *FakeSpeaker) Mute() {
	f.record(SpeakerCall{Kind: "MUTE"})
}

func (f *FakeSpeaker) record(c SpeakerCall) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
}

// Calls returns a copy of all recorded calls.
func (f *FakeSpeaker) Calls() []SpeakerCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]SpeakerCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// Count returns the number of recorded calls of the given kind.
func (f *FakeSpeaker) Count(kind string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Reset clears recorded calls.
func (f *FakeSpeaker) Reset() {
	f.mu.Lock()
	f.calls = nil
	f.mu.Unlock()
}
