// Package terminal simulates the device in a terminal: the screen shows the
// display and a row of LED pixels, and the keyboard stands in for the buttons.
//
// Keys: m = MIN+, s = SEC+, space/enter = start/stop.
// M and S are long presses. Esc or Ctrl-C quits.
package terminal

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/sweeney/countdown-timer/internal/feedback"
	"github.com/sweeney/countdown-timer/internal/input"
	"github.com/sweeney/countdown-timer/internal/logic"
)

// queueSize bounds key events buffered between loop iterations.
const queueSize = 64

// Console is a tcell screen acting as display, indicator and button sampler.
// Display and indicator calls must come from one goroutine.
type Console struct {
	screen tcell.Screen

	keys     chan *tcell.EventKey
	quit     chan struct{}
	quitOnce sync.Once

	// display state
	x, y  int
	style tcell.Style

	// indicator state
	pending feedback.RGB
	lit     feedback.RGB

	// input state
	pressed input.Levels
	held    input.Levels
}

// New opens the controlling terminal.
func New() (*Console, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	return NewConsole(screen)
}

// NewConsole initializes screen and starts reading key events.
func NewConsole(screen tcell.Screen) (*Console, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	screen.HideCursor()

	c := &Console{
		screen: screen,
		keys:   make(chan *tcell.EventKey, queueSize),
		quit:   make(chan struct{}),
		style:  tcell.StyleDefault.Foreground(tcell.ColorWhite),
	}
	go c.pollEvents()
	return c, nil
}

// Quit is closed when the user asks to leave the simulator.
func (c *Console) Quit() <-chan struct{} {
	return c.quit
}

// Close restores the terminal.
func (c *Console) Close() error {
	c.screen.Fini()
	return nil
}

func (c *Console) pollEvents() {
	for {
		ev := c.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				c.quitOnce.Do(func() { close(c.quit) })
				continue
			}
			select {
			case c.keys <- ev:
			default:
				// Queue full: the loop is stalled, drop the key.
			}
		case *tcell.EventResize:
			c.screen.Sync()
		}
	}
}

// --- input.Sampler ---

// Update drains key events received since the previous iteration.
func (c *Console) Update(now time.Time) error {
	c.pressed = input.Levels{}
	c.held = input.Levels{}
	for {
		select {
		case ev := <-c.keys:
			c.handleKey(ev)
		default:
			return nil
		}
	}
}

func (c *Console) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		c.pressed[logic.ButtonStartStop] = true
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch ev.Rune() {
	case 'm':
		c.pressed[logic.ButtonMinutes] = true
	case 's':
		c.pressed[logic.ButtonSeconds] = true
	case 'M':
		c.held[logic.ButtonMinutes] = true
	case 'S':
		c.held[logic.ButtonSeconds] = true
	case ' ':
		c.pressed[logic.ButtonStartStop] = true
	}
}

// WasPressed reports a short press received this iteration.
func (c *Console) WasPressed(b logic.Button) bool {
	return c.pressed[b]
}

// HeldFor reports a long-press key received this iteration. Terminals do not
// report key hold, so d is not checked.
func (c *Console) HeldFor(b logic.Button, d time.Duration) bool {
	return c.held[b]
}

// --- feedback.Display ---

func (c *Console) Clear() {
	c.screen.Clear()
	c.drawIndicator()
}

func (c *Console) SetTextColor(col logic.Color) {
	c.style = tcell.StyleDefault.Foreground(termColor(col))
}

// SetTextSize is accepted for compatibility; terminal cells have one size.
func (c *Console) SetTextSize(scale int) {}

// SetCursor maps device pixel coordinates onto terminal cells.
func (c *Console) SetCursor(x, y int) {
	w, h := c.screen.Size()
	c.x = x * w / feedback.ScreenWidth
	c.y = y * h / feedback.ScreenHeight
}

func (c *Console) Print(s string) {
	x := c.x
	for _, r := range s {
		c.screen.SetContent(x, c.y, r, nil, c.style)
		x++
	}
	c.x = x
	c.screen.Show()
}

func (c *Console) Printf(format string, args ...any) {
	c.Print(fmt.Sprintf(format, args...))
}

// --- feedback.Indicator ---

func (c *Console) SetAll(r, g, b uint8) {
	c.pending = feedback.RGB{R: r, G: g, B: b}
}

func (c *Console) Commit() error {
	c.lit = c.pending
	c.drawIndicator()
	c.screen.Show()
	return nil
}

func (c *Console) Len() int { return feedback.PixelCount }

// drawIndicator draws the pixel row in the top-right corner.
func (c *Console) drawIndicator() {
	w, _ := c.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(boost(c.lit.R), boost(c.lit.G), boost(c.lit.B)))
	glyph := '●'
	if c.lit == (feedback.RGB{}) {
		glyph = '○'
		style = tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
	start := w - feedback.PixelCount - 1
	for i := 0; i < feedback.PixelCount; i++ {
		c.screen.SetContent(start+i, 0, glyph, nil, style)
	}
}

// boost lifts dim LED intensities so they are visible on a terminal.
func boost(v uint8) int32 {
	if v == 0 {
		return 0
	}
	b := 80 + int32(v)*4
	if b > 255 {
		b = 255
	}
	return b
}

func termColor(c logic.Color) tcell.Color {
	switch c {
	case logic.ColorYellow:
		return tcell.ColorYellow
	case logic.ColorRed:
		return tcell.ColorRed
	case logic.ColorGreen:
		return tcell.ColorGreen
	case logic.ColorOrange:
		return tcell.ColorOrange
	}
	return tcell.ColorWhite
}
