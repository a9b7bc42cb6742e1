// Package mag provides magnetometer access with hardware abstraction.
// The real implementation drives an HMC5883L over I2C via periph.io.
// The fake implementation allows testing without hardware.
package mag

// Sensor produces raw 3-axis magnetometer samples.
type Sensor interface {
	// Ready reports whether the device has a new sample available.
	Ready() (bool, error)

	// Read returns the next raw sample in device counts (x, y, z).
	Read() (int16, int16, int16, error)

	// Close releases bus resources.
	Close() error
}

// DefaultAddr is the fixed I2C address of the HMC5883L.
const DefaultAddr = 0x1E

// DefaultBus is the I2C bus the sensor is wired to on the Pi.
const DefaultBus = "1"
