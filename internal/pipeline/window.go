package pipeline

// Window is a fixed-capacity ring buffer of magnitude values with a parallel
// running sum. Invariant: sum always equals the sum of buf, and buf always
// holds exactly len(buf) entries (zero-initialized before the first push).
type Window struct {
	buf []float64
	idx int
	sum float64
}

// NewWindow returns a Window of the given capacity, pre-filled with zeros.
// Capacity must be positive.
func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		panic("pipeline: window capacity must be positive")
	}
	return &Window{buf: make([]float64, capacity)}
}

// Push overwrites the oldest slot with v, advances the write cursor, and
// returns the moving average over the full window (including v).
func (w *Window) Push(v float64) float64 {
	w.sum -= w.buf[w.idx]
	w.buf[w.idx] = v
	w.sum += v
	w.idx = (w.idx + 1) % len(w.buf)
	return w.sum / float64(len(w.buf))
}

// Average returns the current moving average without modifying the window.
func (w *Window) Average() float64 {
	return w.sum / float64(len(w.buf))
}

// Len returns the window capacity.
func (w *Window) Len() int {
	return len(w.buf)
}
