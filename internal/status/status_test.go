package status

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/magmeter/internal/pipeline"
)

func TestTrackerSnapshot(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, Config{
		TickMs:      100,
		WindowSize:  10,
		Broker:      "tcp://localhost:1883",
		HTTPAddr:    ":8080",
		HeartbeatMs: 900000,
	})

	tr.SetCalibration(Calibration{
		Bias:     pipeline.Bias{X: 120, Y: -45, Z: 310},
		Observed: 98,
		Expected: 100,
		Done:     true,
	})
	tr.Update(310.5, 300.1, 54.0, 700*time.Millisecond, true, pipeline.Counters{
		Cycles: 42, Skipped: 3, Spikes: 1, Toggles: 7,
	})
	tr.SetMQTTConnected(true)

	snap := tr.Snapshot()
	if !snap.Calibration.Done || snap.Calibration.Bias.X != 120 {
		t.Errorf("calibration: got %+v", snap.Calibration)
	}
	if snap.Smoothed != 300.1 || snap.Position != 54.0 {
		t.Errorf("reading: got smoothed=%v position=%v", snap.Smoothed, snap.Position)
	}
	if !snap.IndicatorOn {
		t.Error("indicator state lost")
	}
	if snap.Counts.Cycles != 42 || snap.Counts.Toggles != 7 {
		t.Errorf("counts: got %+v", snap.Counts)
	}
	if !snap.MQTTConnected {
		t.Error("mqtt connected flag lost")
	}
	if !snap.StartTime.Equal(start) {
		t.Errorf("start time: got %v, want %v", snap.StartTime, start)
	}
	if snap.Now.IsZero() {
		t.Error("snapshot Now not set")
	}
}

func TestSnapshotUptime(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 12, 30, 0, 0, time.UTC),
	}
	if got := snap.Uptime(); got != 30*time.Minute {
		t.Errorf("uptime: got %v, want 30m", got)
	}
}

func TestFormatJSON(t *testing.T) {
	snap := Snapshot{
		Calibration: Calibration{Bias: pipeline.Bias{X: 5}, Observed: 100, Expected: 100, Done: true},
		Raw:         100,
		Smoothed:    95.5,
		Position:    171.9,
		BlinkPeriod: 912 * time.Millisecond,
		IndicatorOn: true,
		Counts:      pipeline.Counters{Cycles: 10},
		StartTime:   time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		Now:         time.Date(2026, 1, 1, 12, 1, 0, 0, time.UTC),
		Config:      Config{Broker: "tcp://b:1883"},
	}

	var parsed StatusJSON
	if err := json.Unmarshal(FormatJSON(snap), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	s := parsed.Status
	if s.Event != "" {
		t.Errorf("web JSON must not carry an event, got %q", s.Event)
	}
	if !s.Calibration.Done || s.Calibration.BiasX != 5 {
		t.Errorf("calibration: got %+v", s.Calibration)
	}
	if s.SmoothedMG != 95.5 || s.PositionDeg != 171.9 {
		t.Errorf("reading: got %+v", s)
	}
	if s.BlinkPeriodMs != 912 {
		t.Errorf("blink period: got %d, want 912", s.BlinkPeriodMs)
	}
	if s.Indicator != "ON" {
		t.Errorf("indicator: got %q, want ON", s.Indicator)
	}
	if s.UptimeSeconds != 60 {
		t.Errorf("uptime: got %d, want 60", s.UptimeSeconds)
	}
	if s.MQTT.Broker != "tcp://b:1883" {
		t.Errorf("broker: got %q", s.MQTT.Broker)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 12, 1, 0, 0, time.UTC),
	}

	var parsed StatusJSON
	if err := json.Unmarshal(FormatStatusEvent(snap, "SHUTDOWN", "SIGTERM"), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Event != "SHUTDOWN" {
		t.Errorf("event: got %q", parsed.Status.Event)
	}
	if parsed.Status.Reason != "SIGTERM" {
		t.Errorf("reason: got %q", parsed.Status.Reason)
	}
}
