//go:build !linux

package mag

import "errors"

// RealSensor is not available on non-Linux platforms.
type RealSensor struct{}

// NewRealSensor returns an error on non-Linux platforms.
func NewRealSensor(busName string, addr uint16) (*RealSensor, error) {
	return nil, errors.New("mag: not supported on this platform (requires Linux)")
}

// Ready is not implemented on non-Linux platforms.
func (s *RealSensor) Ready() (bool, error) {
	return false, errors.New("mag: not supported")
}

// Read is not implemented on non-Linux platforms.
func (s *RealSensor) Read() (int16, int16, int16, error) {
	return 0, 0, 0, errors.New("mag: not supported")
}

// Close is not implemented on non-Linux platforms.
func (s *RealSensor) Close() error {
	return nil
}
