//go:build linux

package mag

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// RealSensor is an HMC5883L on a host I2C bus.
type RealSensor struct {
	*HMC5883L
	bus i2c.BusCloser
}

// NewRealSensor initializes the periph host, opens the named I2C bus, and
// brings up the magnetometer. An identity mismatch from the device is
// returned as-is so the caller can halt.
func NewRealSensor(busName string, addr uint16) (*RealSensor, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	dev, err := NewHMC5883L(bus, addr)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init hmc5883l: %w", err)
	}

	return &RealSensor{HMC5883L: dev, bus: bus}, nil
}

// Close idles the device and releases the bus.
func (s *RealSensor) Close() error {
	devErr := s.HMC5883L.Close()
	busErr := s.bus.Close()
	if devErr != nil {
		return devErr
	}
	return busErr
}
