package feedback

import (
	"fmt"
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// BeepSpeaker plays sine tones on the system audio output.
type BeepSpeaker struct {
	volume float64
}

// NewBeepSpeaker initializes the audio output. volume is in halvings
// relative to full scale (0 = full, -2 = quarter).
func NewBeepSpeaker(volume float64) (*BeepSpeaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &BeepSpeaker{volume: volume}, nil
}

// Tone plays a sine wave at freqHz for d. A new tone does not cut off one
// already playing.
func (s *BeepSpeaker) Tone(freqHz int, d time.Duration) {
	st, err := s.stream(freqHz, d)
	if err != nil {
		log.Printf("speaker: tone %dHz: %v", freqHz, err)
		return
	}
	speaker.Play(st)
}

func (s *BeepSpeaker) stream(freqHz int, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, float64(freqHz))
	if err != nil {
		return nil, err
	}
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(d), sine),
		Base:     2,
		Volume:   s.volume,
	}, nil
}

// Beep plays the short default beep.
func (s *BeepSpeaker) Beep() {
	s.Tone(BeepFreqHz, BeepDuration)
}

// Mute stops everything currently playing.
func (s *BeepSpeaker) Mute() {
	speaker.Clear()
}

// Close releases the audio output.
func (s *BeepSpeaker) Close() error {
	speaker.Clear()
	speaker.Close()
	return nil
}

// Silent is a Speaker that does nothing. Used when no audio output exists.
type Silent struct{}

func (Silent) Tone(freqHz int, d time.Duration) {}
func (Silent) Beep()                            {}
func (Silent) Mute()                            {}
