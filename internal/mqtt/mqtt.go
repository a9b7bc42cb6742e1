// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"
)

// TopicReadings is the MQTT topic for field readings.
const TopicReadings = "field/magmeter/readings"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "field/magmeter/system"

// Publisher publishes readings and lifecycle events to MQTT.
type Publisher interface {
	// PublishReading sends a field reading to the broker.
	// Returns error if publishing fails (should not crash the process).
	PublishReading(r Reading) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// Reading is one smoothed field measurement with the actuator commands it
// produced.
type Reading struct {
	Timestamp   time.Time
	Raw         float64
	Smoothed    float64
	Position    float64
	BlinkPeriod time.Duration
	IndicatorOn bool
	Spike       bool
}

// SystemEvent represents a system lifecycle event
// (e.g. startup, calibrated, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g. "STARTUP", "CALIBRATED", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g. "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// ReadingPayload is the MQTT message payload for a reading.
type ReadingPayload struct {
	Field FieldPayload `json:"field"`
}

// FieldPayload contains the reading details.
type FieldPayload struct {
	Timestamp     string  `json:"timestamp"`
	RawMG         float64 `json:"raw_mg"`
	SmoothedMG    float64 `json:"smoothed_mg"`
	PositionDeg   float64 `json:"position_deg"`
	BlinkPeriodMs int64   `json:"blink_period_ms"`
	Indicator     string  `json:"indicator"`
	Spike         bool    `json:"spike,omitempty"`
}

// FormatReadingPayload creates the JSON payload for a reading.
func FormatReadingPayload(r Reading) ([]byte, error) {
	ind := "OFF"
	if r.IndicatorOn {
		ind = "ON"
	}
	payload := ReadingPayload{
		Field: FieldPayload{
			Timestamp:     r.Timestamp.UTC().Format(time.RFC3339),
			RawMG:         r.Raw,
			SmoothedMG:    r.Smoothed,
			PositionDeg:   r.Position,
			BlinkPeriodMs: r.BlinkPeriod.Milliseconds(),
			Indicator:     ind,
			Spike:         r.Spike,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status
// snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
