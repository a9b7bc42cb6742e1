package pipeline

import "math"

// Smoother turns the noisy per-cycle magnitude into a stable reading using a
// moving-average window plus a damped spike correction.
type Smoother struct {
	win       *Window
	threshold float64
}

// NewSmoother creates a Smoother with the given window size and spike
// threshold.
func NewSmoother(windowSize int, spikeThreshold float64) *Smoother {
	return &Smoother{
		win:       NewWindow(windowSize),
		threshold: spikeThreshold,
	}
}

// Update folds raw into the window and returns the smoothed magnitude for
// this cycle, plus whether spike correction fired.
//
// The raw value enters the window on every cycle, spike or not, so a
// sustained step eventually pulls the average toward it instead of being
// filtered out forever. When the deviation from the moving average exceeds
// the threshold, the reported value is the midpoint of the average and the
// raw value — a damped correction, not a rejection.
func (s *Smoother) Update(raw float64) (float64, bool) {
	avg := s.win.Push(raw)
	if math.Abs(raw-avg) > s.threshold {
		return (avg + raw) / 2, true
	}
	return avg, false
}

// Average returns the current moving average without feeding a new value.
func (s *Smoother) Average() float64 {
	return s.win.Average()
}
