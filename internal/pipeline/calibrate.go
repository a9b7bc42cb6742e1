package pipeline

// Calibrator accumulates raw samples during the startup calibration pass and
// derives the per-axis bias. It never weights or discards a sample.
type Calibrator struct {
	sumX int64
	sumY int64
	sumZ int64
	seen int
}

// NewCalibrator returns an empty Calibrator.
func NewCalibrator() *Calibrator {
	return &Calibrator{}
}

// Observe folds one raw sample into the running per-axis sums.
func (c *Calibrator) Observe(s Sample) {
	c.sumX += int64(s.X)
	c.sumY += int64(s.Y)
	c.sumZ += int64(s.Z)
	c.seen++
}

// Observed returns how many samples have been folded in.
func (c *Calibrator) Observed() int {
	return c.seen
}

// Bias divides the accumulated sums by expectedSlots, the number of poll
// slots in the calibration window — NOT the number of samples actually
// observed. A sensor that never reported ready therefore yields an exact zero
// bias rather than an error; callers are expected to warn when
// Observed() != expectedSlots. This matches the behavior the hardware was
// tuned against.
func (c *Calibrator) Bias(expectedSlots int) Bias {
	if expectedSlots <= 0 {
		// Degenerate configuration; avoid a divide by zero.
		return Bias{}
	}
	return Bias{
		X: int(c.sumX / int64(expectedSlots)),
		Y: int(c.sumY / int64(expectedSlots)),
		Z: int(c.sumZ / int64(expectedSlots)),
	}
}
