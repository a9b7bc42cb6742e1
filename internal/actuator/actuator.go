// Package actuator drives the two outputs of the daemon: a continuous
// position servo behind a PCA9685 PWM controller and an indicator LED on a
// GPIO line. The real implementation requires Linux; the fake implementation
// records commands for test assertions.
package actuator

// Actuators accepts the per-cycle actuator commands.
type Actuators interface {
	// SetPosition commands the servo to the given angle in degrees.
	// Values are passed through unmodified; the PWM driver owns any
	// clamping against the physical travel.
	SetPosition(degrees float64) error

	// SetIndicator switches the indicator LED on or off.
	SetIndicator(on bool) error

	// Close parks the actuators (servo to 0 degrees, LED off) and releases
	// hardware resources.
	Close() error
}

// Default wiring (BCM numbering for the LED, PCA9685 channel for the servo).
const (
	DefaultServoChannel = 0
	DefaultLEDPin       = 17
)
