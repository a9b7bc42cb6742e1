package actuator

// FakeActuators records commanded positions and indicator states for test
// assertions.
type FakeActuators struct {
	// Positions contains every commanded servo angle, in order.
	Positions []float64

	// Indicator contains every commanded LED state, in order.
	Indicator []bool

	// Closed tracks whether Close was called.
	Closed bool

	// PositionError, if set, is returned by SetPosition.
	PositionError error

	// IndicatorError, if set, is returned by SetIndicator.
	IndicatorError error
}

// NewFakeActuators creates a FakeActuators.
func NewFakeActuators() *FakeActuators {
	return &FakeActuators{}
}

// SetPosition records the commanded angle.
func (f *FakeActuators) SetPosition(degrees float64) error {
	if f.PositionError != nil {
		return f.PositionError
	}
	f.Positions = append(f.Positions, degrees)
	return nil
}

// SetIndicator records the commanded LED state.
func (f *FakeActuators) SetIndicator(on bool) error {
	if f.IndicatorError != nil {
		return f.IndicatorError
	}
	f.Indicator = append(f.Indicator, on)
	return nil
}

// Close marks the actuators as closed.
func (f *FakeActuators) Close() error {
	f.Closed = true
	return nil
}

// LastPosition returns the most recently commanded angle, or ok=false if no
// position was ever commanded.
func (f *FakeActuators) LastPosition() (float64, bool) {
	if len(f.Positions) == 0 {
		return 0, false
	}
	return f.Positions[len(f.Positions)-1], true
}

// Reset clears recorded commands.
func (f *FakeActuators) Reset() {
	f.Positions = nil
	f.Indicator = nil
	f.Closed = false
	f.PositionError = nil
	f.IndicatorError = nil
}
