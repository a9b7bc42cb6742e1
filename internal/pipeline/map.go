package pipeline

import "time"

// Mapper converts a smoothed magnitude into actuator commands: a continuous
// servo position and a blink period for the indicator.
type Mapper struct {
	cfg Config
}

// NewMapper creates a Mapper using the mapping ranges from cfg.
func NewMapper(cfg Config) *Mapper {
	return &Mapper{cfg: cfg}
}

// Position maps the smoothed magnitude linearly from
// [PositionInMin, PositionInMax] to [PositionOutMin, PositionOutMax] degrees.
// Inputs outside the range extrapolate linearly; the caller owns any clamping
// against physical servo limits.
func (m *Mapper) Position(smoothed float64) float64 {
	c := m.cfg
	return mapRange(smoothed, c.PositionInMin, c.PositionInMax, c.PositionOutMin, c.PositionOutMax)
}

// Period maps the smoothed magnitude linearly from
// [MinMagnitude, MaxMagnitude] to [MaxBlinkPeriod, MinBlinkPeriod]. The range
// is inverted: a stronger field blinks faster. Inputs outside the range
// extrapolate linearly and can produce periods shorter than MinBlinkPeriod or
// even negative for extreme inputs.
func (m *Mapper) Period(smoothed float64) time.Duration {
	c := m.cfg
	p := mapRange(smoothed, c.MinMagnitude, c.MaxMagnitude,
		float64(c.MaxBlinkPeriod), float64(c.MinBlinkPeriod))
	return time.Duration(p)
}

// mapRange is the usual linear interpolation between two ranges, without
// clamping. inMax must differ from inMin.
func mapRange(x, inMin, inMax, outMin, outMax float64) float64 {
	return (x-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// Indicator is the blink state machine. Initial state is off; it toggles
// whenever the elapsed time since the last toggle reaches the current period,
// and runs for the process lifetime.
type Indicator struct {
	on         bool
	lastToggle time.Time
}

// NewIndicator returns an Indicator that is off, with its toggle clock
// starting at now.
func NewIndicator(now time.Time) *Indicator {
	return &Indicator{lastToggle: now}
}

// Tick advances the state machine. It flips the state and resets the toggle
// timestamp when the elapsed time since the last toggle is >= period.
// Returns true if the state changed this tick.
func (i *Indicator) Tick(period time.Duration, now time.Time) bool {
	if now.Sub(i.lastToggle) < period {
		return false
	}
	i.on = !i.on
	i.lastToggle = now
	return true
}

// On reports the current indicator state.
func (i *Indicator) On() bool {
	return i.on
}
