//go:build linux

package actuator

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/pca9685"
	"periph.io/x/host/v3"
)

// Servo pulse range on the PCA9685 for a standard 50 Hz hobby servo.
const (
	servoMinPwm = 50
	servoMaxPwm = 650
)

// RealActuators drives a servo on a PCA9685 channel and an LED on a GPIO
// line.
type RealActuators struct {
	bus   i2c.BusCloser
	servo *pca9685.Servo
	chip  *gpiocdev.Chip
	led   *gpiocdev.Line
}

// NewRealActuators opens the I2C bus for the PCA9685 and requests the LED
// line from the GPIO character device.
func NewRealActuators(busName string, servoChannel, ledPin int) (*RealActuators, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	pca, err := pca9685.NewI2C(bus, pca9685.I2CAddr)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init pca9685: %w", err)
	}
	if err := pca.SetPwmFreq(50 * physic.Hertz); err != nil {
		bus.Close()
		return nil, fmt.Errorf("set pwm frequency: %w", err)
	}

	servos := pca9685.NewServoGroup(pca, servoMinPwm, servoMaxPwm, 0, 180*physic.Degree)
	servo := servos.GetServo(servoChannel)

	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	// LED off at startup; the indicator state machine starts off too.
	led, err := chip.RequestLine(ledPin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		bus.Close()
		return nil, fmt.Errorf("request LED pin %d: %w", ledPin, err)
	}

	return &RealActuators{bus: bus, servo: servo, chip: chip, led: led}, nil
}

// SetPosition commands the servo. The angle is passed through unmodified.
func (r *RealActuators) SetPosition(degrees float64) error {
	angle := physic.Angle(degrees * float64(physic.Degree))
	if err := r.servo.SetAngle(angle); err != nil {
		return fmt.Errorf("set servo angle: %w", err)
	}
	return nil
}

// SetIndicator switches the LED line.
func (r *RealActuators) SetIndicator(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := r.led.SetValue(v); err != nil {
		return fmt.Errorf("set LED: %w", err)
	}
	return nil
}

// Close parks the servo at 0 degrees, turns the LED off, and releases the
// GPIO line and I2C bus.
func (r *RealActuators) Close() error {
	var errs []error

	if r.servo != nil {
		if err := r.servo.SetAngle(0); err != nil {
			errs = append(errs, fmt.Errorf("park servo: %w", err))
		}
	}
	if r.led != nil {
		if err := r.led.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("LED off: %w", err))
		}
		if err := r.led.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close LED line: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if r.bus != nil {
		if err := r.bus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close i2c bus: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
