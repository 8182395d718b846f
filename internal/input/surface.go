package input

import "time"

// EventKind identifies the kind of an input signal.
type EventKind int

const (
	EventNone EventKind = iota
	EventKeyDown
	EventKeyUp
	EventPointerMove
	EventPointerDown
	EventPointerUp
	EventWheel
	// EventActivate is the primary activation on the surface, such as a click.
	EventActivate
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventPointerMove:
		return "pointermove"
	case EventPointerDown:
		return "pointerdown"
	case EventPointerUp:
		return "pointerup"
	case EventWheel:
		return "wheel"
	case EventActivate:
		return "activate"
	default:
		return "none"
	}
}

// listenerKinds is the set attached while the tracker is Active.
var listenerKinds = [...]EventKind{
	EventKeyDown,
	EventKeyUp,
	EventPointerMove,
	EventPointerDown,
	EventPointerUp,
	EventWheel,
}

// Signal is a raw input signal delivered by a platform.
type Signal struct {
	Kind EventKind

	// Key is the key identifier for key signals.
	Key string

	// X and Y are the absolute pointer position for pointer signals.
	X, Y float64

	// Delta is the scroll amount for wheel signals.
	Delta float64
}

// Handler receives signals from a Surface.
type Handler func(Signal)

// ListenerID identifies a registered listener.
type ListenerID uint64

// Cursor is the pointer appearance over a surface.
type Cursor int

const (
	CursorAuto Cursor = iota
	CursorDefault
	CursorHidden
)

// Presentation describes how a surface presents itself for input.
type Presentation struct {
	// Focusable makes the surface receive keyboard input without a
	// separate click-to-focus step.
	Focusable bool

	// Cursor is the pointer appearance.
	Cursor Cursor

	// Outline draws a focus outline.
	Outline bool
}

// Surface is the target that input signals are delivered to.
type Surface interface {
	// AddListener registers h for signals of the given kind.
	AddListener(kind EventKind, h Handler) ListenerID

	// RemoveListener deregisters a listener. Unknown ids are ignored.
	RemoveListener(id ListenerID)

	// Present applies a presentation adjustment.
	Present(p Presentation)
}

// Capture mediates exclusive pointer capture.
type Capture interface {
	// RequestCapture asks for exclusive capture on s. Success is reported
	// through OnCaptureChange, not the return value; an error means the
	// request was rejected or is unsupported.
	RequestCapture(s Surface) error

	// ReleaseCapture drops any held capture.
	ReleaseCapture() error

	// OnCaptureChange subscribes fn to capture-change notifications.
	// holder is the surface now holding capture, or nil.
	OnCaptureChange(fn func(holder Surface)) (cancel func())
}

// FrameID identifies a requested frame callback.
type FrameID uint64

// Scheduler runs callbacks on the next display-refresh tick.
type Scheduler interface {
	// RequestFrame schedules fn to run once on the next frame.
	RequestFrame(fn func()) FrameID

	// CancelFrame cancels a pending frame callback.
	CancelFrame(id FrameID)
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
