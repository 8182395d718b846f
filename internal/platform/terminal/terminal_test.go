package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inputtrack/internal/input"
	"github.com/dshills/inputtrack/internal/input/key"
	"github.com/dshills/inputtrack/internal/platform/sim"
)

func newTestTerminal(t *testing.T) (*Terminal, *sim.Clock) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	clock := sim.NewClock(time.Unix(0, 0))
	term := New(screen, DefaultConfig(), clock)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(term.Shutdown)
	return term, clock
}

// record collects every signal of the given kinds.
func record(term *Terminal, kinds ...input.EventKind) *[]input.Signal {
	var got []input.Signal
	for _, k := range kinds {
		term.AddListener(k, func(s input.Signal) { got = append(got, s) })
	}
	return &got
}

func keyEvent(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		key      tcell.Key
		r        rune
		expected string
	}{
		{tcell.KeyRune, 'w', "w"},
		{tcell.KeyRune, 'W', "W"},
		{tcell.KeyRune, ' ', key.Space},
		{tcell.KeyEnter, 0, key.Enter},
		{tcell.KeyEscape, 0, key.Escape},
		{tcell.KeyTab, 0, key.Tab},
		{tcell.KeyBackspace2, 0, key.Backspace},
		{tcell.KeyUp, 0, key.ArrowUp},
		{tcell.KeyLeft, 0, key.ArrowLeft},
		{tcell.KeyPgDn, 0, key.PageDown},
		{tcell.KeyF1, 0, "F1"},
		{tcell.KeyF12, 0, "F12"},
		{tcell.KeyCtrlA, 0, "a"},
		{tcell.KeyCtrlZ, 0, "z"},
	}

	for _, tt := range tests {
		got := identifier(keyEvent(tt.key, tt.r))
		if got != tt.expected {
			t.Errorf("identifier(%v, %q) = %q, expected %q", tt.key, tt.r, got, tt.expected)
		}
	}
}

func TestKeyDownAndSynthesizedRelease(t *testing.T) {
	term, clock := newTestTerminal(t)
	got := record(term, input.EventKeyDown, input.EventKeyUp)

	term.Dispatch(keyEvent(tcell.KeyRune, 'w'))
	if len(*got) != 1 || (*got)[0].Kind != input.EventKeyDown || (*got)[0].Key != "w" {
		t.Fatalf("expected keydown w, got %+v", *got)
	}

	// Repeats keep the key held.
	clock.Advance(300 * time.Millisecond)
	term.Dispatch(keyEvent(tcell.KeyRune, 'w'))
	clock.Advance(300 * time.Millisecond)
	term.RunFrame()
	if len(*got) != 2 {
		t.Fatalf("expected no release while repeating, got %+v", *got)
	}

	clock.Advance(200 * time.Millisecond)
	term.RunFrame()
	if len(*got) != 3 || (*got)[2].Kind != input.EventKeyUp || (*got)[2].Key != "w" {
		t.Fatalf("expected keyup w after delay, got %+v", *got)
	}

	clock.Advance(time.Second)
	term.RunFrame()
	if len(*got) != 3 {
		t.Error("key released twice")
	}
}

func TestFocusLossReleasesKeys(t *testing.T) {
	term, _ := newTestTerminal(t)
	got := record(term, input.EventKeyUp)

	term.Dispatch(keyEvent(tcell.KeyRune, 'a'))
	term.Dispatch(keyEvent(tcell.KeyUp, 0))
	term.Dispatch(tcell.NewEventFocus(false))

	if len(*got) != 2 {
		t.Fatalf("expected 2 releases on focus loss, got %+v", *got)
	}
	if (*got)[0].Key != "ArrowUp" || (*got)[1].Key != "a" {
		t.Errorf("unexpected release order %+v", *got)
	}
}

func TestMouseSignals(t *testing.T) {
	term, _ := newTestTerminal(t)
	got := record(term,
		input.EventPointerMove, input.EventPointerDown, input.EventPointerUp,
		input.EventWheel, input.EventActivate)

	term.Dispatch(tcell.NewEventMouse(4, 5, tcell.ButtonNone, tcell.ModNone))
	term.Dispatch(tcell.NewEventMouse(4, 5, tcell.Button1, tcell.ModNone))
	term.Dispatch(tcell.NewEventMouse(6, 5, tcell.Button1, tcell.ModNone))
	term.Dispatch(tcell.NewEventMouse(6, 5, tcell.ButtonNone, tcell.ModNone))
	term.Dispatch(tcell.NewEventMouse(6, 5, tcell.WheelDown, tcell.ModNone))
	term.Dispatch(tcell.NewEventMouse(6, 5, tcell.WheelUp, tcell.ModNone))

	expected := []input.Signal{
		{Kind: input.EventPointerMove, X: 4, Y: 5},
		{Kind: input.EventPointerDown, X: 4, Y: 5},
		{Kind: input.EventPointerMove, X: 6, Y: 5},
		{Kind: input.EventPointerUp, X: 6, Y: 5},
		{Kind: input.EventActivate, X: 6, Y: 5},
		{Kind: input.EventWheel, Delta: 1},
		{Kind: input.EventWheel, Delta: -1},
	}
	if len(*got) != len(expected) {
		t.Fatalf("expected %d signals, got %d: %+v", len(expected), len(*got), *got)
	}
	for i, want := range expected {
		if (*got)[i] != want {
			t.Errorf("signal %d = %+v, expected %+v", i, (*got)[i], want)
		}
	}
}

func TestRightClickIsNotActivation(t *testing.T) {
	term, _ := newTestTerminal(t)
	got := record(term, input.EventActivate)

	term.Dispatch(tcell.NewEventMouse(1, 1, tcell.Button2, tcell.ModNone))
	term.Dispatch(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))

	if len(*got) != 0 {
		t.Errorf("secondary button release should not activate, got %+v", *got)
	}
}

func TestRunFrame(t *testing.T) {
	term, _ := newTestTerminal(t)

	var runs []string
	term.RequestFrame(func() {
		runs = append(runs, "a")
		term.RequestFrame(func() { runs = append(runs, "next") })
	})
	cancelled := term.RequestFrame(func() { runs = append(runs, "cancelled") })
	term.CancelFrame(cancelled)

	term.RunFrame()
	if len(runs) != 1 || runs[0] != "a" {
		t.Fatalf("first frame ran %v", runs)
	}

	term.Dispatch(tcell.NewEventInterrupt(frameTick{}))
	if len(runs) != 2 || runs[1] != "next" {
		t.Fatalf("second frame ran %v", runs)
	}

	term.RunFrame()
	if len(runs) != 2 {
		t.Error("frame callback ran twice")
	}
}

func TestDispatchTask(t *testing.T) {
	term, _ := newTestTerminal(t)

	ran := false
	term.Dispatch(tcell.NewEventInterrupt(task(func() { ran = true })))
	if !ran {
		t.Error("posted task did not run")
	}
}

func TestCapture(t *testing.T) {
	term, _ := newTestTerminal(t)

	var holders []input.Surface
	cancel := term.OnCaptureChange(func(h input.Surface) { holders = append(holders, h) })

	if err := term.RequestCapture(sim.NewSurface("other")); err != input.ErrCaptureRejected {
		t.Errorf("foreign surface request = %v, expected ErrCaptureRejected", err)
	}

	if err := term.RequestCapture(term); err != nil {
		t.Fatalf("RequestCapture failed: %v", err)
	}
	if !term.Captured() {
		t.Fatal("expected captured")
	}
	if err := term.RequestCapture(term); err != nil {
		t.Errorf("repeat request failed: %v", err)
	}

	ups := record(term, input.EventKeyUp)
	term.Dispatch(keyEvent(tcell.KeyRune, 'd'))
	term.Dispatch(keyEvent(tcell.KeyEscape, 0))
	if term.Captured() {
		t.Error("Escape should release capture")
	}
	if len(*ups) != 1 || (*ups)[0].Key != "d" {
		t.Errorf("held keys should be released on capture loss, got %+v", *ups)
	}

	if len(holders) != 2 || holders[0] != input.Surface(term) || holders[1] != nil {
		t.Errorf("unexpected notifications %v", holders)
	}

	cancel()
	_ = term.RequestCapture(term)
	if len(holders) != 2 {
		t.Error("notification delivered after unsubscribe")
	}
}

func TestEscapeWithoutCaptureIsKey(t *testing.T) {
	term, _ := newTestTerminal(t)
	got := record(term, input.EventKeyDown)

	term.Dispatch(keyEvent(tcell.KeyEscape, 0))
	if len(*got) != 1 || (*got)[0].Key != key.Escape {
		t.Errorf("expected Escape keydown, got %+v", *got)
	}
}

func TestPresent(t *testing.T) {
	term, _ := newTestTerminal(t)

	p := input.Presentation{Focusable: true, Cursor: input.CursorDefault}
	term.Present(p)
	if term.Presentation() != p {
		t.Errorf("Presentation() = %+v", term.Presentation())
	}
}

func TestTrackerOnTerminalDefaultMode(t *testing.T) {
	term, clock := newTestTerminal(t)
	tr := input.New(term, term, term, input.WithClock(clock))

	if !term.Presentation().Focusable {
		t.Error("default-mode tracker should make the terminal focusable")
	}

	term.Dispatch(keyEvent(tcell.KeyRune, 'w'))
	term.Dispatch(tcell.NewEventMouse(12, 8, tcell.ButtonNone, tcell.ModNone))
	if !tr.Keys().Pressed("w") {
		t.Error("expected w pressed")
	}

	for i := 0; i < 8; i++ {
		clock.Advance(16 * time.Millisecond)
		term.RunFrame()
	}
	p := tr.Pointer()
	if p.LastX() != 12 || p.LastY() != 8 {
		t.Errorf("expected sample (12, 8), got (%v, %v)", p.LastX(), p.LastY())
	}

	clock.Advance(time.Second)
	term.RunFrame()
	if tr.Keys().Pressed("w") {
		t.Error("expected synthesized release of w")
	}
}

func TestTrackerOnTerminalExclusiveMode(t *testing.T) {
	term, _ := newTestTerminal(t)
	tr := input.New(term, term, term, input.WithExclusiveCapture(true))

	term.Dispatch(tcell.NewEventMouse(3, 3, tcell.ButtonNone, tcell.ModNone))
	if tr.Pointer().X() != 0 {
		t.Error("pointer moved before capture")
	}

	term.Dispatch(tcell.NewEventMouse(3, 3, tcell.Button1, tcell.ModNone))
	term.Dispatch(tcell.NewEventMouse(3, 3, tcell.ButtonNone, tcell.ModNone))
	if !tr.Active() {
		t.Fatal("click should acquire capture")
	}

	term.Dispatch(tcell.NewEventMouse(10, 10, tcell.ButtonNone, tcell.ModNone))
	if tr.Pointer().X() != 10 {
		t.Errorf("expected x 10, got %v", tr.Pointer().X())
	}

	term.Dispatch(keyEvent(tcell.KeyEscape, 0))
	if tr.Active() {
		t.Fatal("Escape should deactivate tracker")
	}

	term.Dispatch(tcell.NewEventMouse(99, 99, tcell.ButtonNone, tcell.ModNone))
	if tr.Pointer().X() != 10 {
		t.Errorf("pointer moved after capture loss: %v", tr.Pointer().X())
	}
}
