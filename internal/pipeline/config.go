package pipeline

import "time"

// Config holds every tuning constant of the signal chain. The zero value is
// not usable; start from DefaultConfig and override.
type Config struct {
	// Scale converts raw device counts to field units (mG per count for the
	// HMC5883L at gain code 1).
	Scale float64

	// CalibrationDuration is the wall-clock length of the one-time startup
	// calibration pass.
	CalibrationDuration time.Duration
	// CalibrationPoll is the delay between sample polls during calibration.
	// CalibrationDuration / CalibrationPoll is the expected slot count the
	// bias divides by.
	CalibrationPoll time.Duration

	// WindowSize is the moving-average window capacity.
	WindowSize int
	// SpikeThreshold is the absolute deviation from the moving average above
	// which spike correction fires.
	SpikeThreshold float64

	// PositionInMin/PositionInMax is the magnitude range mapped onto the
	// servo travel. Inputs outside the range extrapolate linearly.
	PositionInMin float64
	PositionInMax float64
	// PositionOutMin/PositionOutMax is the servo travel in degrees.
	PositionOutMin float64
	PositionOutMax float64

	// MinMagnitude/MaxMagnitude is the magnitude range mapped onto the blink
	// period. Inputs outside the range extrapolate linearly.
	MinMagnitude float64
	MaxMagnitude float64
	// MaxBlinkPeriod is the period at MinMagnitude, MinBlinkPeriod the period
	// at MaxMagnitude (stronger field blinks faster).
	MaxBlinkPeriod time.Duration
	MinBlinkPeriod time.Duration
}

// DefaultConfig returns the tuning the hardware was commissioned with.
func DefaultConfig() Config {
	return Config{
		Scale:               0.92,
		CalibrationDuration: 10 * time.Second,
		CalibrationPoll:     100 * time.Millisecond,
		WindowSize:          10,
		SpikeThreshold:      50,
		PositionInMin:       0,
		PositionInMax:       100,
		PositionOutMin:      0,
		PositionOutMax:      180,
		MinMagnitude:        0,
		MaxMagnitude:        1050,
		MaxBlinkPeriod:      1000 * time.Millisecond,
		MinBlinkPeriod:      50 * time.Millisecond,
	}
}

// ExpectedSlots returns the number of poll slots in the calibration window.
// Non-zero whenever CalibrationDuration >= CalibrationPoll.
func (c Config) ExpectedSlots() int {
	return int(c.CalibrationDuration / c.CalibrationPoll)
}
