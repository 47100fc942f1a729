package feedback

import (
	"fmt"
	"time"

	"github.com/sweeney/countdown-timer/internal/logic"
)

// Renderer applies controller frames to the output devices.
// Calls are best effort: nothing is retried.
type Renderer struct {
	display    Display
	indicator  Indicator
	speaker    Speaker
	layout     Layout
	brightness uint8

	led logic.LEDState

	// Schedule runs fn after d. Defaults to time.AfterFunc.
	Schedule func(d time.Duration, fn func())
}

// NewRenderer creates a renderer. The indicator is assumed dark until Reset.
func NewRenderer(display Display, indicator Indicator, speaker Speaker, layout Layout, brightness uint8) *Renderer {
	return &Renderer{
		display:    display,
		indicator:  indicator,
		speaker:    speaker,
		layout:     layout,
		brightness: brightness,
		led:        logic.LEDOff,
		Schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
}

// Reset silences the speaker, clears the screen and forces the indicator off.
func (r *Renderer) Reset() error {
	r.speaker.Mute()
	r.display.Clear()
	r.led = logic.LEDOff
	return r.writeLED(logic.LEDOff)
}

// Apply renders one frame.
func (r *Renderer) Apply(f logic.Frame) error {
	if f.Refresh {
		r.display.Clear()
		for _, t := range f.Texts {
			r.draw(t)
		}
	}

	var err error
	if f.SetLED && f.LED != r.led {
		r.led = f.LED
		err = r.writeLED(f.LED)
	}

	for _, s := range f.Sounds {
		r.play(s)
	}

	if f.PowerOff {
		r.speaker.Mute()
	}
	return err
}

// LED returns the last indicator state written.
func (r *Renderer) LED() logic.LEDState {
	return r.led
}

func (r *Renderer) draw(t logic.Text) {
	p, ok := r.layout[t.Region]
	if !ok {
		return
	}
	r.display.SetTextSize(p.Size)
	r.display.SetCursor(p.X, p.Y)
	r.display.SetTextColor(t.Color)
	r.display.Print(t.Body)
}

func (r *Renderer) writeLED(state logic.LEDState) error {
	c := ColorFor(state, r.brightness)
	r.indicator.SetAll(c.R, c.G, c.B)
	if err := r.indicator.Commit(); err != nil {
		return fmt.Errorf("commit indicator %s: %w", state, err)
	}
	return nil
}

func (r *Renderer) play(s logic.Sound) {
	fn := func() {
		switch s.Kind {
		case logic.SoundTone:
			r.speaker.Tone(s.FreqHz, s.Duration)
		case logic.SoundBeep:
			r.speaker.Beep()
		}
	}
	if s.Delay > 0 {
		r.Schedule(s.Delay, fn)
		return
	}
	fn()
}
