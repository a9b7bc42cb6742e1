package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string          `json:"event,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	Calibration   CalibrationJSON `json:"calibration"`
	RawMG         float64         `json:"raw_mg"`
	SmoothedMG    float64         `json:"smoothed_mg"`
	PositionDeg   float64         `json:"position_deg"`
	BlinkPeriodMs int64           `json:"blink_period_ms"`
	Indicator     string          `json:"indicator"`
	UptimeSeconds int64           `json:"uptime_seconds"`
	StartTime     string          `json:"start_time"`
	Timestamp     string          `json:"timestamp"`
	MQTT          MQTTStatus      `json:"mqtt"`
	Counts        CountsJSON      `json:"cycle_counts"`
	Config        ConfigJSON      `json:"config"`
}

// CalibrationJSON is the JSON representation of the calibration outcome.
type CalibrationJSON struct {
	Done     bool `json:"done"`
	BiasX    int  `json:"bias_x"`
	BiasY    int  `json:"bias_y"`
	BiasZ    int  `json:"bias_z"`
	Observed int  `json:"observed_samples"`
	Expected int  `json:"expected_samples"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of cycle counters.
type CountsJSON struct {
	Cycles  int `json:"cycles"`
	Skipped int `json:"skipped"`
	Spikes  int `json:"spikes"`
	Toggles int `json:"toggles"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	TickMs        int64  `json:"tick_ms"`
	CalibrationMs int64  `json:"calibration_ms"`
	WindowSize    int    `json:"window_size"`
	HeartbeatMs   int64  `json:"heartbeat_ms"`
	Broker        string `json:"broker"`
	HTTPAddr      string `json:"http_addr"`
}

func buildInner(snap Snapshot) StatusInner {
	ind := "OFF"
	if snap.IndicatorOn {
		ind = "ON"
	}

	return StatusInner{
		Calibration: CalibrationJSON{
			Done:     snap.Calibration.Done,
			BiasX:    snap.Calibration.Bias.X,
			BiasY:    snap.Calibration.Bias.Y,
			BiasZ:    snap.Calibration.Bias.Z,
			Observed: snap.Calibration.Observed,
			Expected: snap.Calibration.Expected,
		},
		RawMG:         snap.Raw,
		SmoothedMG:    snap.Smoothed,
		PositionDeg:   snap.Position,
		BlinkPeriodMs: snap.BlinkPeriod.Milliseconds(),
		Indicator:     ind,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Cycles:  snap.Counts.Cycles,
			Skipped: snap.Counts.Skipped,
			Spikes:  snap.Counts.Spikes,
			Toggles: snap.Counts.Toggles,
		},
		Config: ConfigJSON{
			TickMs:        snap.Config.TickMs,
			CalibrationMs: snap.Config.CalibrationMs,
			WindowSize:    snap.Config.WindowSize,
			HeartbeatMs:   snap.Config.HeartbeatMs,
			Broker:        snap.Config.Broker,
			HTTPAddr:      snap.Config.HTTPAddr,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
