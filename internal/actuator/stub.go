//go:build !linux

package actuator

import "errors"

// RealActuators is not available on non-Linux platforms.
type RealActuators struct{}

// NewRealActuators returns an error on non-Linux platforms.
func NewRealActuators(busName string, servoChannel, ledPin int) (*RealActuators, error) {
	return nil, errors.New("actuator: not supported on this platform (requires Linux)")
}

// SetPosition is not implemented on non-Linux platforms.
func (r *RealActuators) SetPosition(degrees float64) error {
	return errors.New("actuator: not supported")
}

// SetIndicator is not implemented on non-Linux platforms.
func (r *RealActuators) SetIndicator(on bool) error {
	return errors.New("actuator: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealActuators) Close() error {
	return nil
}
