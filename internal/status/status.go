// Package status provides a thread-safe status tracker for the magmeter
// daemon. It is read by the HTTP handlers and by MQTT system events.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/magmeter/internal/pipeline"
)

// Config contains daemon configuration for display.
type Config struct {
	TickMs        int64
	CalibrationMs int64
	WindowSize    int
	HeartbeatMs   int64
	Broker        string
	HTTPAddr      string
}

// Calibration records the outcome of the startup calibration pass.
type Calibration struct {
	Bias     pipeline.Bias
	Observed int
	Expected int
	Done     bool
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Calibration   Calibration
	Raw           float64
	Smoothed      float64
	Position      float64
	BlinkPeriod   time.Duration
	IndicatorOn   bool
	Counts        pipeline.Counters
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// SetCalibration records the calibration outcome. Called once, after the
// startup pass completes.
func (t *Tracker) SetCalibration(c Calibration) {
	t.mu.Lock()
	t.snap.Calibration = c
	t.mu.Unlock()
}

// Update sets the latest reading and actuator commands.
// Called from the run loop on every actuated cycle.
func (t *Tracker) Update(raw, smoothed, position float64, blink time.Duration, indicatorOn bool, counts pipeline.Counters) {
	t.mu.Lock()
	t.snap.Raw = raw
	t.snap.Smoothed = smoothed
	t.snap.Position = position
	t.snap.BlinkPeriod = blink
	t.snap.IndicatorOn = indicatorOn
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetCounts updates only the cycle counters (used on skipped ticks).
func (t *Tracker) SetCounts(counts pipeline.Counters) {
	t.mu.Lock()
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
