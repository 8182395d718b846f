// Package sim provides a virtual input environment.
//
// It implements the input collaborators without a display: a Surface that
// records listeners, a Capture with scriptable outcomes, a manually stepped
// frame Scheduler and a fake Clock. Tests and headless hosts drive the
// tracker through it.
package sim

import (
	"sort"
	"time"

	"github.com/dshills/inputtrack/internal/input"
)

type listener struct {
	kind    input.EventKind
	handler input.Handler
}

// Surface is a virtual input surface.
type Surface struct {
	Name string

	listeners    map[input.ListenerID]listener
	nextID       input.ListenerID
	presentation input.Presentation
	presented    int
}

// NewSurface creates a surface.
func NewSurface(name string) *Surface {
	return &Surface{
		Name:      name,
		listeners: make(map[input.ListenerID]listener),
	}
}

// AddListener implements input.Surface.
func (s *Surface) AddListener(kind input.EventKind, h input.Handler) input.ListenerID {
	s.nextID++
	s.listeners[s.nextID] = listener{kind: kind, handler: h}
	return s.nextID
}

// RemoveListener implements input.Surface.
func (s *Surface) RemoveListener(id input.ListenerID) {
	delete(s.listeners, id)
}

// Present implements input.Surface.
func (s *Surface) Present(p input.Presentation) {
	s.presentation = p
	s.presented++
}

// Presentation returns the last applied presentation and how many times
// Present was called.
func (s *Surface) Presentation() (input.Presentation, int) {
	return s.presentation, s.presented
}

// ListenerCount returns the number of listeners registered for kind.
func (s *Surface) ListenerCount(kind input.EventKind) int {
	n := 0
	for _, l := range s.listeners {
		if l.kind == kind {
			n++
		}
	}
	return n
}

// TotalListeners returns the number of registered listeners.
func (s *Surface) TotalListeners() int {
	return len(s.listeners)
}

// Emit delivers sig to every listener of its kind, in registration order.
func (s *Surface) Emit(sig input.Signal) {
	ids := make([]input.ListenerID, 0, len(s.listeners))
	for id, l := range s.listeners {
		if l.kind == sig.Kind {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if l, ok := s.listeners[id]; ok {
			l.handler(sig)
		}
	}
}

// KeyDown emits a key-down signal.
func (s *Surface) KeyDown(k string) { s.Emit(input.Signal{Kind: input.EventKeyDown, Key: k}) }

// KeyUp emits a key-up signal.
func (s *Surface) KeyUp(k string) { s.Emit(input.Signal{Kind: input.EventKeyUp, Key: k}) }

// Move emits a pointer-move signal.
func (s *Surface) Move(x, y float64) {
	s.Emit(input.Signal{Kind: input.EventPointerMove, X: x, Y: y})
}

// Down emits a pointer-down signal.
func (s *Surface) Down() { s.Emit(input.Signal{Kind: input.EventPointerDown}) }

// Up emits a pointer-up signal.
func (s *Surface) Up() { s.Emit(input.Signal{Kind: input.EventPointerUp}) }

// Wheel emits a wheel signal.
func (s *Surface) Wheel(d float64) { s.Emit(input.Signal{Kind: input.EventWheel, Delta: d}) }

// Click emits a primary activation signal.
func (s *Surface) Click() { s.Emit(input.Signal{Kind: input.EventActivate}) }

// CaptureMode selects how Capture answers requests.
type CaptureMode int

const (
	// CaptureGrant acquires capture for the requesting surface at once.
	CaptureGrant CaptureMode = iota
	// CaptureDefer records the request; the test calls Acquire later.
	CaptureDefer
	// CaptureReject refuses every request.
	CaptureReject
	// CaptureUnsupported reports that capture does not exist.
	CaptureUnsupported
)

// Capture is a virtual exclusive-capture arbiter.
type Capture struct {
	Mode CaptureMode

	holder   input.Surface
	subs     map[int]func(input.Surface)
	nextSub  int
	requests int
}

// NewCapture creates a capture arbiter in the given mode.
func NewCapture(mode CaptureMode) *Capture {
	return &Capture{Mode: mode, subs: make(map[int]func(input.Surface))}
}

// RequestCapture implements input.Capture.
func (c *Capture) RequestCapture(s input.Surface) error {
	c.requests++
	switch c.Mode {
	case CaptureReject:
		return input.ErrCaptureRejected
	case CaptureUnsupported:
		return input.ErrCaptureUnsupported
	case CaptureGrant:
		c.Acquire(s)
	}
	return nil
}

// ReleaseCapture implements input.Capture.
func (c *Capture) ReleaseCapture() error {
	if c.Mode == CaptureUnsupported {
		return input.ErrCaptureUnsupported
	}
	if c.holder != nil {
		c.Lose()
	}
	return nil
}

// OnCaptureChange implements input.Capture.
func (c *Capture) OnCaptureChange(fn func(holder input.Surface)) func() {
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() { delete(c.subs, id) }
}

// Acquire gives capture to s and notifies subscribers.
func (c *Capture) Acquire(s input.Surface) {
	c.holder = s
	c.notify()
}

// Lose clears the capture holder and notifies subscribers.
func (c *Capture) Lose() {
	c.holder = nil
	c.notify()
}

// Holder returns the surface holding capture, or nil.
func (c *Capture) Holder() input.Surface { return c.holder }

// Requests returns the number of capture requests received.
func (c *Capture) Requests() int { return c.requests }

// Subscribers returns the number of live subscriptions.
func (c *Capture) Subscribers() int { return len(c.subs) }

func (c *Capture) notify() {
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := c.subs[id]; ok {
			fn(c.holder)
		}
	}
}

// Frames is a manually stepped frame scheduler.
type Frames struct {
	pending map[input.FrameID]func()
	nextID  input.FrameID
	steps   int
}

// NewFrames creates an empty scheduler.
func NewFrames() *Frames {
	return &Frames{pending: make(map[input.FrameID]func())}
}

// RequestFrame implements input.Scheduler.
func (f *Frames) RequestFrame(fn func()) input.FrameID {
	f.nextID++
	f.pending[f.nextID] = fn
	return f.nextID
}

// CancelFrame implements input.Scheduler.
func (f *Frames) CancelFrame(id input.FrameID) {
	delete(f.pending, id)
}

// Pending returns the number of callbacks waiting for the next frame.
func (f *Frames) Pending() int { return len(f.pending) }

// Steps returns the number of frames stepped so far.
func (f *Frames) Steps() int { return f.steps }

// Step runs one frame. Callbacks requested during the frame wait for the
// next one; callbacks cancelled during the frame do not run.
func (f *Frames) Step() {
	f.steps++
	ids := make([]input.FrameID, 0, len(f.pending))
	for id := range f.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fn, ok := f.pending[id]
		if !ok {
			continue
		}
		delete(f.pending, id)
		fn()
	}
}

// Clock is a fake clock that only moves when advanced.
type Clock struct {
	now time.Time
}

// NewClock creates a clock set to start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now implements input.Clock.
func (c *Clock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Run advances clock by total in increments of step, stepping frames after
// each increment. A final partial increment is applied if total is not a
// multiple of step.
func Run(frames *Frames, clock *Clock, total, step time.Duration) {
	if step <= 0 {
		return
	}
	for elapsed := time.Duration(0); elapsed < total; {
		d := step
		if total-elapsed < d {
			d = total - elapsed
		}
		clock.Advance(d)
		elapsed += d
		frames.Step()
	}
}
