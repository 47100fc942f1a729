package logic

// feedback selects what to show and play for the settled state.
func (c *Controller) feedback(frame *Frame, adjusting bool) {
	s := &c.state
	frame.Refresh = true
	frame.SetLED = true

	switch s.Mode {
	case ModeSetting:
		s.BlinkPhase = !s.BlinkPhase || adjusting
		s.LED = LEDOff
		frame.Texts = append(frame.Texts,
			Text{Region: RegionMinutesHint, Color: ColorWhite, Body: "MIN+"},
			Text{Region: RegionSecondsHint, Color: ColorWhite, Body: "SEC+"},
			Text{Region: RegionStartHint, Color: ColorWhite, Body: "START"},
			Text{Region: RegionPauseHint, Color: ColorWhite, Body: "PAUSE"},
		)
		if s.BlinkPhase {
			color := ColorWhite
			if adjusting {
				color = ColorYellow
			}
			frame.Texts = append(frame.Texts, c.timeText(color))
		}

	case ModeExpired:
		s.BlinkPhase = true
		s.LED = LEDDone
		frame.Texts = append(frame.Texts,
			Text{Region: RegionResetHint, Color: ColorWhite, Body: "RESET"},
			c.timeText(ColorGreen),
		)
		if !s.AlarmAcknowledged {
			frame.Sounds = append(frame.Sounds, Sound{
				Kind:     SoundTone,
				FreqHz:   c.cfg.AlarmToneHz,
				Duration: c.cfg.AlarmToneDuration,
			})
			s.AlarmAcknowledged = true
		}

	case ModeRunning:
		s.BlinkPhase = true
		if s.Minutes == 0 && s.Seconds <= c.cfg.WarningSeconds {
			s.LED = LEDWarning
			frame.Texts = append(frame.Texts, c.timeText(ColorRed))
			frame.Sounds = append(frame.Sounds, Sound{Kind: SoundBeep})
			if s.Seconds <= c.cfg.DoubleBeepSeconds {
				frame.Sounds = append(frame.Sounds, Sound{Kind: SoundBeep, Delay: c.cfg.DoubleBeepGap})
			}
		} else {
			s.LED = LEDOff
			frame.Texts = append(frame.Texts, c.timeText(ColorWhite))
		}
	}

	frame.LED = s.LED
}

func (c *Controller) timeText(color Color) Text {
	return Text{Region: RegionTime, Color: color, Body: c.state.Remaining()}
}
