package mag

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// HMC5883L register map.
const (
	regConfigA = 0x00
	regConfigB = 0x01
	regMode    = 0x02
	regData    = 0x03 // X MSB, X LSB, Z MSB, Z LSB, Y MSB, Y LSB
	regStatus  = 0x09
	regIdentA  = 0x0A
)

// Identity bytes every HMC5883L reports from registers 0x0A..0x0C.
var identity = [3]byte{'H', '4', '3'}

// Mode register values.
const (
	modeContinuous = 0x00
	modeIdle       = 0x03
)

// statusReady is the RDY bit of the status register: set when a new sample
// has been written to the data registers.
const statusReady = 0x01

// HMC5883L drives the Honeywell HMC5883L 3-axis magnetometer over I2C.
// It is bus-agnostic: tests exercise it against a playback bus.
type HMC5883L struct {
	dev i2c.Dev
}

// NewHMC5883L verifies the device identity and configures it for continuous
// measurement (8-sample averaging, 15 Hz, gain code 1). An identity mismatch
// is a hard failure: the hardware is unusable and the caller is expected to
// halt.
func NewHMC5883L(bus i2c.Bus, addr uint16) (*HMC5883L, error) {
	d := &HMC5883L{dev: i2c.Dev{Addr: addr, Bus: bus}}

	var id [3]byte
	if err := d.readReg(regIdentA, id[:]); err != nil {
		return nil, fmt.Errorf("read identity: %w", err)
	}
	if id != identity {
		return nil, fmt.Errorf("unexpected identity %q, want %q (not an HMC5883L at 0x%X?)", id[:], identity[:], addr)
	}

	// 8-sample averaging, 15 Hz output rate, normal bias.
	if err := d.writeReg(regConfigA, 0x70); err != nil {
		return nil, fmt.Errorf("write config A: %w", err)
	}
	// Gain code 1: ±1.3 Ga range, 0.92 mG/LSB.
	if err := d.writeReg(regConfigB, 0x20); err != nil {
		return nil, fmt.Errorf("write config B: %w", err)
	}
	if err := d.writeReg(regMode, modeContinuous); err != nil {
		return nil, fmt.Errorf("write mode: %w", err)
	}

	return d, nil
}

// Ready reports whether a new sample is waiting in the data registers.
func (d *HMC5883L) Ready() (bool, error) {
	var status [1]byte
	if err := d.readReg(regStatus, status[:]); err != nil {
		return false, fmt.Errorf("read status: %w", err)
	}
	return status[0]&statusReady != 0, nil
}

// Read returns the current raw sample in device counts.
// The device orders the data registers X, Z, Y.
func (d *HMC5883L) Read() (int16, int16, int16, error) {
	var data [6]byte
	if err := d.readReg(regData, data[:]); err != nil {
		return 0, 0, 0, fmt.Errorf("read data: %w", err)
	}
	x := int16(data[0])<<8 | int16(data[1])
	z := int16(data[2])<<8 | int16(data[3])
	y := int16(data[4])<<8 | int16(data[5])
	return x, y, z, nil
}

// Close puts the device into idle mode.
func (d *HMC5883L) Close() error {
	if err := d.writeReg(regMode, modeIdle); err != nil {
		return fmt.Errorf("idle mode: %w", err)
	}
	return nil
}

func (d *HMC5883L) writeReg(reg, val byte) error {
	return d.dev.Tx([]byte{reg, val}, nil)
}

func (d *HMC5883L) readReg(reg byte, out []byte) error {
	return d.dev.Tx([]byte{reg}, out)
}
