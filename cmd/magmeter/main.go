// Command magmeter reads a 3-axis magnetometer, smooths the field magnitude,
// and drives a servo and a blinking indicator LED. Readings and lifecycle
// events are published to MQTT; a JSON status endpoint is served over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/magmeter/internal/actuator"
	"github.com/sweeney/magmeter/internal/mag"
	"github.com/sweeney/magmeter/internal/mqtt"
	"github.com/sweeney/magmeter/internal/pipeline"
	"github.com/sweeney/magmeter/internal/status"
	"github.com/sweeney/magmeter/internal/web"
)

func main() {
	defaults := pipeline.DefaultConfig()

	tick := flag.Duration("tick", 100*time.Millisecond, "Cycle interval")
	calDuration := flag.Duration("cal-duration", defaults.CalibrationDuration, "Calibration pass duration")
	calPoll := flag.Duration("cal-poll", defaults.CalibrationPoll, "Calibration poll interval")
	window := flag.Int("window", defaults.WindowSize, "Moving-average window size")
	spike := flag.Float64("spike-threshold", defaults.SpikeThreshold, "Spike correction threshold (mG)")
	scale := flag.Float64("scale", defaults.Scale, "Sensor resolution (mG per count)")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	readingEvery := flag.Duration("reading-interval", time.Second, "MQTT reading publish interval (0 to disable)")
	i2cBus := flag.String("i2c-bus", mag.DefaultBus, "I2C bus name")
	magAddr := flag.Uint("mag-addr", mag.DefaultAddr, "Magnetometer I2C address")
	servoChannel := flag.Int("servo-channel", actuator.DefaultServoChannel, "PCA9685 channel for the servo")
	ledPin := flag.Int("led-pin", actuator.DefaultLEDPin, "BCM pin number for the indicator LED")
	httpAddr := flag.String("http", ":8080", "HTTP status address (empty to disable)")
	readOnce := flag.Bool("read-once", false, "Read a single raw sample and exit")

	flag.Parse()

	cfg := defaults
	cfg.CalibrationDuration = *calDuration
	cfg.CalibrationPoll = *calPoll
	cfg.WindowSize = *window
	cfg.SpikeThreshold = *spike
	cfg.Scale = *scale

	if err := run(cfg, *tick, *broker, *heartbeat, *readingEvery, *i2cBus, uint16(*magAddr), *servoChannel, *ledPin, *httpAddr, *readOnce); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg pipeline.Config, tick time.Duration, broker string, heartbeat, readingEvery time.Duration, i2cBus string, magAddr uint16, servoChannel, ledPin int, httpAddr string, readOnce bool) error {
	// Initialize the sensor. An identity mismatch here is the one
	// unrecoverable failure: the process halts and does not retry.
	sensor, err := mag.NewRealSensor(i2cBus, magAddr)
	if err != nil {
		return fmt.Errorf("init magnetometer: %w", err)
	}
	defer sensor.Close()

	// Read-once mode
	if readOnce {
		x, y, z, err := sensor.Read()
		if err != nil {
			return fmt.Errorf("read sample: %w", err)
		}
		fmt.Printf("X: %d, Y: %d, Z: %d (counts)\n", x, y, z)
		return nil
	}

	acts, err := actuator.NewRealActuators(i2cBus, servoChannel, ledPin)
	if err != nil {
		return fmt.Errorf("init actuators: %w", err)
	}
	defer acts.Close()

	publisher, err := mqtt.NewRealPublisher(broker)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	startTime := time.Now()
	tracker := status.NewTracker(startTime, status.Config{
		TickMs:        tick.Milliseconds(),
		CalibrationMs: cfg.CalibrationDuration.Milliseconds(),
		WindowSize:    cfg.WindowSize,
		HeartbeatMs:   heartbeat.Milliseconds(),
		Broker:        broker,
		HTTPAddr:      httpAddr,
	})

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
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

	// One-time calibration pass. Blocks the whole pipeline; no actuation
	// happens until it completes.
	log.Printf("calibrating for %v (poll %v)", cfg.CalibrationDuration, cfg.CalibrationPoll)
	slots := cfg.ExpectedSlots()
	calTicker := time.NewTicker(cfg.CalibrationPoll)
	cal := runCalibration(sensor, slots, cfg.CalibrationPoll, calTicker.C, log.Printf)
	calTicker.Stop()

	bias := cal.Bias(slots)
	if cal.Observed() == 0 {
		log.Printf("WARNING: no samples observed during calibration; bias is zero, not measured")
	} else if cal.Observed() != slots {
		log.Printf("WARNING: calibration observed %d of %d expected samples; bias is diluted", cal.Observed(), slots)
	}
	log.Printf("calibrated: bias=(%d, %d, %d) from %d/%d samples", bias.X, bias.Y, bias.Z, cal.Observed(), slots)

	tracker.SetCalibration(status.Calibration{
		Bias:     bias,
		Observed: cal.Observed(),
		Expected: slots,
		Done:     true,
	})
	calEvent := mqtt.SystemEvent{
		Timestamp:  time.Now(),
		Event:      "CALIBRATED",
		RawPayload: status.FormatStatusEvent(tracker.Snapshot(), "CALIBRATED", ""),
	}
	if err := publisher.PublishSystem(calEvent); err != nil {
		log.Printf("failed to publish calibrated event: %v", err)
	}

	log.Printf("started: tick=%v window=%d spike=%v broker=%s heartbeat=%v",
		tick, cfg.WindowSize, cfg.SpikeThreshold, broker, heartbeat)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	l := newLoop(sensor, acts, publisher, publisher, tracker, cfg, bias, heartbeat, readingEvery, time.Now())
	return runLoop(l, publisher, tracker, time.Now, ticker.C, sigCh)
}

// runCalibration polls the sensor once per tick for the given number of
// slots, feeding every ready sample into a Calibrator. Progress is logged
// once per elapsed second. It never fails: a silent sensor just produces an
// empty Calibrator after the window elapses.
func runCalibration(sensor mag.Sensor, slots int, poll time.Duration, tick <-chan time.Time, logf func(string, ...any)) *pipeline.Calibrator {
	cal := pipeline.NewCalibrator()
	total := time.Duration(slots) * poll
	perSecond := int(time.Second / poll)

	for i := 0; i < slots; i++ {
		<-tick

		ready, err := sensor.Ready()
		if err != nil {
			logf("calibration: ready check error: %v", err)
		} else if ready {
			x, y, z, err := sensor.Read()
			if err != nil {
				logf("calibration: read error: %v", err)
			} else {
				cal.Observe(pipeline.Sample{X: x, Y: y, Z: z})
			}
		}

		if perSecond > 0 && (i+1)%perSecond == 0 {
			elapsed := time.Duration(i+1) * poll
			logf("calibration: %v elapsed, %v remaining (%d samples)", elapsed, total-elapsed, cal.Observed())
		}
	}
	return cal
}

// loop holds all process-lifetime pipeline state for the periodic cycle.
// Everything is single-owner: only the goroutine running the cycle mutates
// it.
type loop struct {
	sensor     mag.Sensor
	acts       actuator.Actuators
	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus
	tracker    *status.Tracker

	cfg  pipeline.Config
	bias pipeline.Bias

	smoother  *pipeline.Smoother
	mapper    *pipeline.Mapper
	indicator *pipeline.Indicator
	counters  pipeline.Counters

	heartbeatEvery time.Duration
	readingEvery   time.Duration
	lastHeartbeat  time.Time
	lastReading    time.Time

	outOfTravel bool
}

func newLoop(sensor mag.Sensor, acts actuator.Actuators, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, cfg pipeline.Config, bias pipeline.Bias, heartbeatEvery, readingEvery time.Duration, start time.Time) *loop {
	return &loop{
		sensor:         sensor,
		acts:           acts,
		publisher:      publisher,
		mqttStatus:     mqttStatus,
		tracker:        tracker,
		cfg:            cfg,
		bias:           bias,
		smoother:       pipeline.NewSmoother(cfg.WindowSize, cfg.SpikeThreshold),
		mapper:         pipeline.NewMapper(cfg),
		indicator:      pipeline.NewIndicator(start),
		heartbeatEvery: heartbeatEvery,
		readingEvery:   readingEvery,
		lastHeartbeat:  start,
		lastReading:    start,
	}
}

// cycle runs one read-smooth-actuate iteration at the given time.
func (l *loop) cycle(now time.Time) {
	ready, err := l.sensor.Ready()
	if err != nil {
		log.Printf("sensor ready check error: %v", err)
		return
	}
	if !ready {
		// No sample this tick: skip actuation entirely, previous actuator
		// state persists.
		l.counters.Skipped++
		if l.tracker != nil {
			l.tracker.SetCounts(l.counters)
		}
		return
	}

	x, y, z, err := l.sensor.Read()
	if err != nil {
		log.Printf("sensor read error: %v", err)
		return
	}

	raw := pipeline.Magnitude(pipeline.Sample{X: x, Y: y, Z: z}, l.bias, l.cfg.Scale)
	smoothed, spike := l.smoother.Update(raw)
	if spike {
		l.counters.Spikes++
	}

	pos := l.mapper.Position(smoothed)
	l.warnOutOfTravel(pos)
	if err := l.acts.SetPosition(pos); err != nil {
		log.Printf("set position error: %v", err)
	}

	period := l.mapper.Period(smoothed)
	if l.indicator.Tick(period, now) {
		l.counters.Toggles++
		if err := l.acts.SetIndicator(l.indicator.On()); err != nil {
			log.Printf("set indicator error: %v", err)
		}
	}

	l.counters.Cycles++

	if l.tracker != nil {
		l.tracker.Update(raw, smoothed, pos, period, l.indicator.On(), l.counters)
		if l.mqttStatus != nil {
			l.tracker.SetMQTTConnected(l.mqttStatus.IsConnected())
		}
	}

	if l.readingEvery > 0 && now.Sub(l.lastReading) >= l.readingEvery {
		l.lastReading = now
		reading := mqtt.Reading{
			Timestamp:   now,
			Raw:         raw,
			Smoothed:    smoothed,
			Position:    pos,
			BlinkPeriod: period,
			IndicatorOn: l.indicator.On(),
			Spike:       spike,
		}
		if err := l.publisher.PublishReading(reading); err != nil {
			log.Printf("publish reading error: %v", err)
			// Don't crash on publish failure
		}
	}

	if l.heartbeatEvery > 0 && now.Sub(l.lastHeartbeat) >= l.heartbeatEvery {
		l.lastHeartbeat = now
		hbEvent := mqtt.SystemEvent{
			Timestamp: now,
			Event:     "HEARTBEAT",
		}
		if l.tracker != nil {
			hbEvent.RawPayload = status.FormatStatusEvent(l.tracker.Snapshot(), "HEARTBEAT", "")
		}
		if err := l.publisher.PublishSystem(hbEvent); err != nil {
			log.Printf("heartbeat publish error: %v", err)
		}
	}
}

// warnOutOfTravel logs when the unclamped position mapping leaves the
// physical servo travel, once per excursion rather than every tick.
func (l *loop) warnOutOfTravel(pos float64) {
	out := pos < l.cfg.PositionOutMin || pos > l.cfg.PositionOutMax
	if out && !l.outOfTravel {
		log.Printf("WARNING: position %.1f outside servo travel [%.0f, %.0f]", pos, l.cfg.PositionOutMin, l.cfg.PositionOutMax)
	}
	l.outOfTravel = out
}

func runLoop(l *loop, publisher mqtt.Publisher, tracker *status.Tracker, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			name := signalName(s)
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    name,
				Retained:  true,
			}
			if tracker != nil {
				event.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN", name)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			l.cycle(now())
		}
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	default:
		return "UNKNOWN"
	}
}
