// Package config loads device settings. Every field has a built-in default;
// an optional YAML file overrides individual fields.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/countdown-timer/internal/feedback"
	"github.com/sweeney/countdown-timer/internal/input"
	"github.com/sweeney/countdown-timer/internal/logic"
)

// Config is the full device configuration.
type Config struct {
	Timer  Timer  `yaml:"timer"`
	Pins   Pins   `yaml:"pins"`
	Output Output `yaml:"output"`
}

// Timer holds the timer constants.
type Timer struct {
	ShutdownTimeoutSeconds int `yaml:"shutdown_timeout_seconds"`
	ShutdownWarningSeconds int `yaml:"shutdown_warning_seconds"`
	LongPressMs            int `yaml:"long_press_ms"`
	TickIntervalMs         int `yaml:"tick_interval_ms"`
	InitialMinutes         int `yaml:"initial_minutes"`
	InitialSeconds         int `yaml:"initial_seconds"`
}

// Pins holds BCM pin numbers.
type Pins struct {
	Minutes    int `yaml:"minutes"`
	Seconds    int `yaml:"seconds"`
	StartStop  int `yaml:"start_stop"`
	DebounceMs int `yaml:"debounce_ms"`
	LEDRed     int `yaml:"led_red"`
	LEDGreen   int `yaml:"led_green"`
	LEDBlue    int `yaml:"led_blue"`
}

// Output holds indicator and speaker settings.
type Output struct {
	IndicatorBrightness uint8   `yaml:"indicator_brightness"`
	Volume              float64 `yaml:"volume"`
}

// Default pins for the RGB LED.
const (
	DefaultPinLEDRed   = 17
	DefaultPinLEDGreen = 27
	DefaultPinLEDBlue  = 22
)

// Default returns the factory configuration.
func Default() Config {
	return Config{
		Timer: Timer{
			ShutdownTimeoutSeconds: 20,
			ShutdownWarningSeconds: 10,
			LongPressMs:            500,
			TickIntervalMs:         1000,
			InitialMinutes:         0,
			InitialSeconds:         10,
		},
		Pins: Pins{
			Minutes:    input.DefaultPinMinutes,
			Seconds:    input.DefaultPinSeconds,
			StartStop:  input.DefaultPinStartStop,
			DebounceMs: 10,
			LEDRed:     DefaultPinLEDRed,
			LEDGreen:   DefaultPinLEDGreen,
			LEDBlue:    DefaultPinLEDBlue,
		},
		Output: Output{
			IndicatorBrightness: feedback.DefaultBrightness,
			Volume:              -2,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes c as YAML in the format Load accepts.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// Validate checks that the values make sense together.
func (c Config) Validate() error {
	var errs []error
	t := c.Timer

	if t.ShutdownTimeoutSeconds < 1 {
		errs = append(errs, fmt.Errorf("timer.shutdown_timeout_seconds must be >= 1, got %d", t.ShutdownTimeoutSeconds))
	}
	if t.ShutdownWarningSeconds < 0 {
		errs = append(errs, fmt.Errorf("timer.shutdown_warning_seconds must be >= 0, got %d", t.ShutdownWarningSeconds))
	}
	if t.LongPressMs < 1 {
		errs = append(errs, fmt.Errorf("timer.long_press_ms must be >= 1, got %d", t.LongPressMs))
	}
	if t.TickIntervalMs < 1 {
		errs = append(errs, fmt.Errorf("timer.tick_interval_ms must be >= 1, got %d", t.TickIntervalMs))
	}
	if t.InitialMinutes < 0 {
		errs = append(errs, fmt.Errorf("timer.initial_minutes must be >= 0, got %d", t.InitialMinutes))
	}
	if t.InitialSeconds < 0 || t.InitialSeconds > 59 {
		errs = append(errs, fmt.Errorf("timer.initial_seconds must be in [0,59], got %d", t.InitialSeconds))
	}

	p := c.Pins
	pins := map[int]string{}
	for _, pin := range []struct {
		name string
		n    int
	}{
		{"minutes", p.Minutes},
		{"seconds", p.Seconds},
		{"start_stop", p.StartStop},
		{"led_red", p.LEDRed},
		{"led_green", p.LEDGreen},
		{"led_blue", p.LEDBlue},
	} {
		if pin.n < 0 {
			errs = append(errs, fmt.Errorf("pins.%s must be >= 0, got %d", pin.name, pin.n))
			continue
		}
		if other, dup := pins[pin.n]; dup {
			errs = append(errs, fmt.Errorf("pins.%s and pins.%s both use pin %d", other, pin.name, pin.n))
			continue
		}
		pins[pin.n] = pin.name
	}
	if p.DebounceMs < 0 {
		errs = append(errs, fmt.Errorf("pins.debounce_ms must be >= 0, got %d", p.DebounceMs))
	}

	return errors.Join(errs...)
}

// LongPress returns the long-press threshold.
func (c Config) LongPress() time.Duration {
	return time.Duration(c.Timer.LongPressMs) * time.Millisecond
}

// Debounce returns the button debounce period.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.Pins.DebounceMs) * time.Millisecond
}

// Logic returns the controller configuration.
func (c Config) Logic() logic.Config {
	lc := logic.DefaultConfig()
	lc.ShutdownTimeoutSeconds = c.Timer.ShutdownTimeoutSeconds
	lc.ShutdownWarningSeconds = c.Timer.ShutdownWarningSeconds
	lc.TickInterval = time.Duration(c.Timer.TickIntervalMs) * time.Millisecond
	lc.InitialMinutes = c.Timer.InitialMinutes
	lc.InitialSeconds = c.Timer.InitialSeconds
	return lc
}
