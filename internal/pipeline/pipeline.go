// Package pipeline contains the pure signal chain for the magnetometer daemon:
// bias calibration, moving-average smoothing with spike correction, and the
// mapping from a smoothed magnitude to actuator commands.
// This package has NO external dependencies (no I2C, GPIO, MQTT, OS, or
// time.Sleep). Time is always injectable via time.Time parameters.
package pipeline

import "math"

// Sample is a single raw 3-axis magnetometer reading in device counts.
type Sample struct {
	X int16
	Y int16
	Z int16
}

// Bias is the per-axis offset established during calibration. It is computed
// once at startup and read-only afterwards.
type Bias struct {
	X int
	Y int
	Z int
}

// Magnitude returns the Euclidean norm of the bias-corrected sample, with
// each axis scaled by the sensor resolution factor (e.g. mG per count).
func Magnitude(s Sample, b Bias, scale float64) float64 {
	x := (float64(s.X) - float64(b.X)) * scale
	y := (float64(s.Y) - float64(b.Y)) * scale
	z := (float64(s.Z) - float64(b.Z)) * scale
	return math.Sqrt(x*x + y*y + z*z)
}

// Counters tracks per-process cycle statistics since startup.
type Counters struct {
	// Cycles is the number of ticks where a sample was read and actuated.
	Cycles int
	// Skipped is the number of ticks where the sensor had no sample ready.
	Skipped int
	// Spikes is the number of cycles where spike correction fired.
	Spikes int
	// Toggles is the number of indicator state flips.
	Toggles int
}
