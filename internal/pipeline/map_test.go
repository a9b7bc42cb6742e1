package pipeline

import (
	"testing"
	"time"
)

func testMapper() *Mapper {
	cfg := DefaultConfig()
	// Pin the ranges so the tests don't depend on default tuning.
	cfg.PositionInMin = 0
	cfg.PositionInMax = 100
	cfg.PositionOutMin = 0
	cfg.PositionOutMax = 180
	cfg.MinMagnitude = 0
	cfg.MaxMagnitude = 1050
	cfg.MaxBlinkPeriod = 1000 * time.Millisecond
	cfg.MinBlinkPeriod = 50 * time.Millisecond
	return NewMapper(cfg)
}

func TestPositionEndpoints(t *testing.T) {
	m := testMapper()
	if got := m.Position(0); got != 0 {
		t.Errorf("Position(0): got %v, want 0", got)
	}
	if got := m.Position(100); got != 180 {
		t.Errorf("Position(100): got %v, want 180", got)
	}
	if got := m.Position(50); got != 90 {
		t.Errorf("Position(50): got %v, want 90", got)
	}
}

func TestPositionIsOrderPreserving(t *testing.T) {
	m := testMapper()
	prev := m.Position(0)
	for v := 1.0; v <= 100; v++ {
		cur := m.Position(v)
		if cur < prev {
			t.Fatalf("Position not monotonic: f(%v)=%v < f(%v)=%v", v, cur, v-1, prev)
		}
		prev = cur
	}
}

func TestPositionExtrapolatesWithoutClamping(t *testing.T) {
	// Out-of-range inputs extrapolate linearly; clamping is the actuator
	// driver's job, not the mapper's.
	m := testMapper()
	if got := m.Position(150); got != 270 {
		t.Errorf("Position(150): got %v, want 270", got)
	}
	if got := m.Position(-10); got != -18 {
		t.Errorf("Position(-10): got %v, want -18", got)
	}
}

func TestPeriodEndpoints(t *testing.T) {
	m := testMapper()
	if got := m.Period(0); got != 1000*time.Millisecond {
		t.Errorf("Period(0): got %v, want 1s", got)
	}
	if got := m.Period(1050); got != 50*time.Millisecond {
		t.Errorf("Period(1050): got %v, want 50ms", got)
	}
}

func TestPeriodIsNonIncreasing(t *testing.T) {
	m := testMapper()
	prev := m.Period(0)
	for v := 50.0; v <= 1050; v += 50 {
		cur := m.Period(v)
		if cur > prev {
			t.Fatalf("Period not non-increasing: f(%v)=%v > previous %v", v, cur, prev)
		}
		prev = cur
	}
}

func TestPeriodExtrapolatesBeyondRange(t *testing.T) {
	// Far beyond MaxMagnitude the extrapolated period goes negative. The
	// mapper reports it as-is; the indicator then toggles every tick.
	m := testMapper()
	if got := m.Period(5000); got >= 0 {
		t.Errorf("Period(5000): got %v, want a negative duration", got)
	}
}

func TestIndicatorTogglesOncePerPeriod(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ind := NewIndicator(start)
	period := 500 * time.Millisecond

	if ind.On() {
		t.Fatal("indicator must start off")
	}

	// Advance a simulated clock in 100ms steps. The state must flip exactly
	// on the steps where elapsed time since the last toggle reaches 500ms.
	toggles := 0
	for step := 1; step <= 20; step++ {
		now := start.Add(time.Duration(step) * 100 * time.Millisecond)
		if ind.Tick(period, now) {
			toggles++
		}
	}
	if toggles != 4 {
		t.Errorf("toggles over 2s at 500ms period: got %d, want 4", toggles)
	}
	if ind.On() {
		t.Error("after an even number of toggles the indicator must be off")
	}
}

func TestIndicatorDoesNotToggleEarly(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ind := NewIndicator(start)

	if ind.Tick(time.Second, start.Add(999*time.Millisecond)) {
		t.Error("toggled before the period elapsed")
	}
	if !ind.Tick(time.Second, start.Add(time.Second)) {
		t.Error("did not toggle at exactly one period")
	}
	if !ind.On() {
		t.Error("first toggle must turn the indicator on")
	}
}

func TestIndicatorTimestampResetsOnToggle(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ind := NewIndicator(start)
	period := time.Second

	ind.Tick(period, start.Add(1500*time.Millisecond)) // toggles, resets to t=1.5s
	if ind.Tick(period, start.Add(2400*time.Millisecond)) {
		t.Error("toggled 900ms after the reset point")
	}
	if !ind.Tick(period, start.Add(2500*time.Millisecond)) {
		t.Error("did not toggle one period after the reset point")
	}
}

func TestMagnitude(t *testing.T) {
	// 3-4-0 triangle scaled by 1: norm 5.
	got := Magnitude(Sample{X: 3, Y: 4, Z: 0}, Bias{}, 1)
	if got != 5 {
		t.Errorf("Magnitude(3,4,0): got %v, want 5", got)
	}

	// Bias correction nulls a constant field exactly.
	got = Magnitude(Sample{X: 100, Y: 0, Z: 0}, Bias{X: 100}, 0.92)
	if got != 0 {
		t.Errorf("Magnitude with matching bias: got %v, want 0", got)
	}

	// Scale applies per axis before the norm.
	got = Magnitude(Sample{X: 0, Y: 0, Z: 10}, Bias{}, 0.5)
	if got != 5 {
		t.Errorf("Magnitude with scale 0.5: got %v, want 5", got)
	}
}
