package mag

import (
	"errors"
	"testing"
)

func TestFakeSensorReadsScript(t *testing.T) {
	f := NewFakeSensor([]FakeSample{
		{X: 1, Y: 2, Z: 3},
		{X: 4, Y: 5, Z: 6},
	})

	ready, err := f.Ready()
	if err != nil || !ready {
		t.Fatalf("expected ready, got (%v, %v)", ready, err)
	}

	x, y, z, err := f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if x != 1 || y != 2 || z != 3 {
		t.Errorf("sample 0: got (%d, %d, %d), want (1, 2, 3)", x, y, z)
	}

	x, y, z, _ = f.Read()
	if x != 4 || y != 5 || z != 6 {
		t.Errorf("sample 1: got (%d, %d, %d), want (4, 5, 6)", x, y, z)
	}

	// Exhausted script repeats the last sample.
	x, y, z, _ = f.Read()
	if x != 4 || y != 5 || z != 6 {
		t.Errorf("sample 2 (repeat): got (%d, %d, %d), want (4, 5, 6)", x, y, z)
	}
}

func TestFakeSensorNotReadySlots(t *testing.T) {
	f := NewFakeSensor([]FakeSample{
		{NotReady: true},
		{X: 7, Y: 8, Z: 9},
	})

	ready, err := f.Ready()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ready {
		t.Error("expected not ready for the first slot")
	}

	ready, _ = f.Ready()
	if !ready {
		t.Error("expected ready after the not-ready slot was consumed")
	}

	x, _, _, _ := f.Read()
	if x != 7 {
		t.Errorf("got X=%d, want 7", x)
	}
}

func TestFakeSensorErrors(t *testing.T) {
	f := NewFakeSensor([]FakeSample{{X: 1}})
	f.ReadyError = errors.New("bus gone")
	if _, err := f.Ready(); err == nil {
		t.Error("expected Ready error")
	}

	f.ReadyError = nil
	f.ReadError = errors.New("bus gone")
	if _, _, _, err := f.Read(); err == nil {
		t.Error("expected Read error")
	}
}

func TestFakeSensorNoSamples(t *testing.T) {
	f := NewFakeSensor(nil)
	if _, err := f.Ready(); err == nil {
		t.Error("expected error with no samples")
	}
	if _, _, _, err := f.Read(); err == nil {
		t.Error("expected error with no samples")
	}
}

func TestFakeSensorClose(t *testing.T) {
	f := NewFakeSensor([]FakeSample{{X: 1}})
	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}

	f.Reset()
	if f.Closed {
		t.Error("Reset should clear Closed")
	}
}
