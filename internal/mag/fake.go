package mag

import "errors"

// FakeSample is a single scripted sensor state.
type FakeSample struct {
	X, Y, Z int16
	// NotReady makes Ready() report false for this slot and skip to the
	// next one, simulating a poll where the sensor had nothing new.
	NotReady bool
}

// FakeSensor is a test double that returns scripted samples.
type FakeSensor struct {
	// Samples contains the scripted states. Ready consumes NotReady slots;
	// Read consumes ready slots. When exhausted, the last ready sample
	// repeats.
	Samples []FakeSample

	// index tracks the current position in Samples.
	index int

	// Closed tracks whether Close was called.
	Closed bool

	// ReadyError, if set, is returned by Ready().
	ReadyError error

	// ReadError, if set, is returned by Read().
	ReadError error
}

// NewFakeSensor creates a FakeSensor with the given scripted samples.
func NewFakeSensor(samples []FakeSample) *FakeSensor {
	return &FakeSensor{Samples: samples}
}

// Ready reports whether the current scripted slot has a sample. A NotReady
// slot is consumed by this call.
func (f *FakeSensor) Ready() (bool, error) {
	if f.ReadyError != nil {
		return false, f.ReadyError
	}
	if len(f.Samples) == 0 {
		return false, errors.New("no samples configured")
	}
	if f.Samples[f.index].NotReady {
		f.advance()
		return false, nil
	}
	return true, nil
}

// Read returns the current scripted sample and advances.
// If samples are exhausted, the last one repeats.
func (f *FakeSensor) Read() (int16, int16, int16, error) {
	if f.ReadError != nil {
		return 0, 0, 0, f.ReadError
	}
	if len(f.Samples) == 0 {
		return 0, 0, 0, errors.New("no samples configured")
	}
	s := f.Samples[f.index]
	f.advance()
	return s.X, s.Y, s.Z, nil
}

// Close marks the sensor as closed.
func (f *FakeSensor) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the script.
func (f *FakeSensor) Reset() {
	f.index = 0
	f.Closed = false
}

func (f *FakeSensor) advance() {
	if f.index < len(f.Samples)-1 {
		f.index++
	}
}
