package input

import "testing"

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics()

	m.RecordKeyEvent()
	m.RecordKeyEvent()
	m.RecordPointerEvent()
	m.RecordWheelEvent()
	m.RecordFrame()
	m.RecordSample()
	m.RecordCaptureAcquired()
	m.RecordCaptureLost()
	m.RecordCaptureFailure()

	snap := m.Snapshot()
	if snap.KeyEvents != 2 {
		t.Errorf("KeyEvents = %d, expected 2", snap.KeyEvents)
	}
	if snap.PointerEvents != 1 || snap.WheelEvents != 1 {
		t.Errorf("pointer/wheel = %d/%d, expected 1/1", snap.PointerEvents, snap.WheelEvents)
	}
	if snap.Frames != 1 || snap.Samples != 1 {
		t.Errorf("frames/samples = %d/%d, expected 1/1", snap.Frames, snap.Samples)
	}
	if snap.CaptureAcquired != 1 || snap.CaptureLost != 1 || snap.CaptureFailures != 1 {
		t.Errorf("capture counters = %+v", snap)
	}
}

func TestMetricsDisabled(t *testing.T) {
	m := NewMetrics()
	m.SetEnabled(false)
	if m.IsEnabled() {
		t.Fatal("expected metrics disabled")
	}

	m.RecordKeyEvent()
	m.RecordSample()

	snap := m.Snapshot()
	if snap.KeyEvents != 0 || snap.Samples != 0 {
		t.Error("disabled metrics should not count")
	}
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()
	m.RecordFrame()
	m.RecordWheelEvent()

	m.Reset()

	snap := m.Snapshot()
	if snap.Frames != 0 || snap.WheelEvents != 0 {
		t.Errorf("expected zeroed counters after reset, got %+v", snap)
	}
}

func TestEventKindString(t *testing.T) {
	tests := []struct {
		kind     EventKind
		expected string
	}{
		{EventKeyDown, "keydown"},
		{EventKeyUp, "keyup"},
		{EventPointerMove, "pointermove"},
		{EventPointerDown, "pointerdown"},
		{EventPointerUp, "pointerup"},
		{EventWheel, "wheel"},
		{EventActivate, "activate"},
		{EventKind(99), "none"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("EventKind(%d).String() = %q, expected %q", tt.kind, got, tt.expected)
		}
	}
}
