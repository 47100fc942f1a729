// Command countdown-timer runs the three-button countdown timer: buttons set
// and start the countdown, the display and LED show progress, the speaker
// sounds the alarm, and the device powers itself off when left idle.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/countdown-timer/internal/config"
	"github.com/sweeney/countdown-timer/internal/feedback"
	"github.com/sweeney/countdown-timer/internal/input"
	"github.com/sweeney/countdown-timer/internal/logic"
	"github.com/sweeney/countdown-timer/internal/mqtt"
	"github.com/sweeney/countdown-timer/internal/power"
	"github.com/sweeney/countdown-timer/internal/status"
	"github.com/sweeney/countdown-timer/internal/terminal"
	"github.com/sweeney/countdown-timer/internal/web"
)

// publishQueueSize bounds the messages waiting for the broker.
const publishQueueSize = 32

func main() {
	configPath := flag.String("config", "", "YAML config file (empty for built-in defaults)")
	sim := flag.Bool("sim", false, "Simulate the device in the terminal (keyboard buttons, no power-off)")
	poll := flag.Duration("poll", 20*time.Millisecond, "Control loop interval")
	broker := flag.String("broker", "", "MQTT broker address (empty to disable)")
	httpAddr := flag.String("http", "", "HTTP status address (empty to disable)")
	printConfig := flag.Bool("print-config", false, "Print effective config and exit")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if *printConfig {
		data, err := cfg.Marshal()
		if err != nil {
			log.Fatalf("fatal: %v", err)
		}
		os.Stdout.Write(data)
		return
	}

	if err := run(cfg, *sim, *poll, *broker, *httpAddr); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg config.Config, sim bool, poll time.Duration, broker, httpAddr string) error {
	// The terminal is the display in both modes. In simulation it also
	// stands in for the buttons and the LED.
	console, err := terminal.New()
	if err != nil {
		return err
	}
	defer console.Close()

	var (
		sampler   input.Sampler
		indicator feedback.Indicator
		pwr       power.Controller
		backend   string
	)
	if sim {
		sampler, indicator, pwr, backend = console, console, power.Exit{}, "sim"
	} else {
		buttons, err := input.NewGPIOSampler(cfg.Pins.Minutes, cfg.Pins.Seconds, cfg.Pins.StartStop, cfg.Debounce())
		if err != nil {
			return fmt.Errorf("init buttons: %w", err)
		}
		defer buttons.Close()

		led, err := feedback.NewGPIOIndicator(cfg.Pins.LEDRed, cfg.Pins.LEDGreen, cfg.Pins.LEDBlue)
		if err != nil {
			return fmt.Errorf("init indicator: %w", err)
		}
		defer led.Close()

		sampler, indicator, pwr, backend = buttons, led, power.System{}, "gpio"
	}

	var speaker feedback.Speaker = feedback.Silent{}
	if s, err := feedback.NewBeepSpeaker(cfg.Output.Volume); err != nil {
		log.Printf("speaker unavailable, running silent: %v", err)
	} else {
		defer s.Close()
		speaker = s
	}

	renderer := feedback.NewRenderer(console, indicator, speaker, feedback.DefaultLayout(), cfg.Output.IndicatorBrightness)

	// Initialize MQTT
	var publisher mqtt.Publisher = mqtt.Discard{}
	var mqttStatus mqtt.ConnectionStatus
	if broker != "" {
		p, err := mqtt.NewRealPublisher(broker, "countdown-timer")
		if err != nil {
			log.Printf("mqtt disabled: %v", err)
		} else {
			defer p.Close()
			publisher, mqttStatus = p, p
		}
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		TickMs:           int64(cfg.Timer.TickIntervalMs),
		LongPressMs:      int64(cfg.Timer.LongPressMs),
		ShutdownTimeoutS: cfg.Timer.ShutdownTimeoutSeconds,
		ShutdownWarningS: cfg.Timer.ShutdownWarningSeconds,
		Broker:           broker,
		HTTPAddr:         httpAddr,
		Backend:          backend,
	})

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      mqtt.EventStartup,
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, mqtt.EventStartup, ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	}

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: backend=%s poll=%v long-press=%v broker=%q", backend, poll, cfg.LongPress(), broker)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go forwardQuit(console.Quit(), sigCh)

	return runLoop(sampler, renderer, pwr, publisher, mqttStatus, tracker, cfg, time.Now, ticker.C, sigCh)
}

// forwardQuit turns a quit request from the terminal into SIGINT. A signal
// already pending is enough, so the send never blocks.
func forwardQuit(quit <-chan struct{}, sig chan<- os.Signal) {
	<-quit
	select {
	case sig <- syscall.SIGINT:
	default:
	}
}

func runLoop(sampler input.Sampler, renderer *feedback.Renderer, pwr power.Controller, broker mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, cfg config.Config, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	ctrl := logic.NewController(cfg.Logic(), now())
	longPress := cfg.LongPress()

	// The loop only enqueues; a slow broker must not delay the countdown.
	publisher := mqtt.NewQueue(broker, publishQueueSize)
	defer closeQueue(publisher)

	if err := renderer.Reset(); err != nil {
		log.Printf("render error: %v", err)
	}

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			publishSystem(publisher, mqttStatus, tracker, now(), mqtt.EventShutdown, signalName)
			return nil

		case <-tick:
			t := now()
			in, err := input.Read(sampler, t, longPress)
			if err != nil {
				// Keep counting down with no button activity.
				log.Printf("input read error: %v", err)
				in = logic.Input{Time: t}
			}

			frame := ctrl.Process(in)

			for _, tr := range frame.Transitions {
				log.Printf("event: %s -> %s (%s)", tr.From, tr.To, logic.FormatRemaining(tr.Minutes, tr.Seconds))
				if tracker != nil {
					tracker.Record(tr)
				}
				if err := publisher.Publish(tr); err != nil {
					log.Printf("publish error: %v", err)
				}
			}

			if err := renderer.Apply(frame); err != nil {
				log.Printf("render error: %v", err)
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				tracker.Update(ctrl.State())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}

			if frame.PowerOff {
				log.Printf("idle for %ds, powering off", ctrl.State().IdleSeconds)
				publishSystem(publisher, mqttStatus, tracker, t, mqtt.EventPowerOff, "IDLE")
				closeQueue(publisher)
				err := pwr.PowerOff()
				if errors.Is(err, power.ErrExit) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("power off: %w", err)
				}
				return nil
			}
		}
	}
}

func closeQueue(q *mqtt.Queue) {
	if err := q.Close(); err != nil {
		log.Printf("mqtt: %v", err)
	}
}

// publishSystem queues a retained lifecycle event carrying the status snapshot.
func publishSystem(publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, t time.Time, event, reason string) {
	ev := mqtt.SystemEvent{
		Timestamp: t,
		Event:     event,
		Reason:    reason,
		Retained:  true,
	}
	if tracker != nil {
		if mqttStatus != nil {
			tracker.SetMQTTConnected(mqttStatus.IsConnected())
		}
		ev.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), event, reason)
	}
	if err := publisher.PublishSystem(ev); err != nil {
		log.Printf("failed to queue %s event: %v", event, err)
	} else {
		log.Printf("queued %s event", event)
	}
}
