package actuator

import (
	"errors"
	"testing"
)

func TestFakeActuatorsRecordsCommands(t *testing.T) {
	f := NewFakeActuators()

	if err := f.SetPosition(90); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.SetPosition(45.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.SetIndicator(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.Positions) != 2 || f.Positions[0] != 90 || f.Positions[1] != 45.5 {
		t.Errorf("positions: got %v, want [90 45.5]", f.Positions)
	}
	if len(f.Indicator) != 1 || !f.Indicator[0] {
		t.Errorf("indicator: got %v, want [true]", f.Indicator)
	}

	last, ok := f.LastPosition()
	if !ok || last != 45.5 {
		t.Errorf("last position: got (%v, %v), want (45.5, true)", last, ok)
	}
}

func TestFakeActuatorsLastPositionEmpty(t *testing.T) {
	f := NewFakeActuators()
	if _, ok := f.LastPosition(); ok {
		t.Error("expected ok=false with no commands")
	}
}

func TestFakeActuatorsErrors(t *testing.T) {
	f := NewFakeActuators()
	f.PositionError = errors.New("pwm fault")
	if err := f.SetPosition(10); err == nil {
		t.Error("expected SetPosition error")
	}
	f.IndicatorError = errors.New("gpio fault")
	if err := f.SetIndicator(true); err == nil {
		t.Error("expected SetIndicator error")
	}
	if len(f.Positions) != 0 || len(f.Indicator) != 0 {
		t.Error("failed commands must not be recorded")
	}
}

func TestFakeActuatorsClose(t *testing.T) {
	f := NewFakeActuators()
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
