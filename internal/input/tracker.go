package input

import (
	"github.com/google/uuid"

	"github.com/dshills/inputtrack/internal/input/key"
	"github.com/dshills/inputtrack/internal/input/mouse"
)

// Logger is the logging surface the tracker writes to.
// *golog.Logger satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}

// Option configures a Tracker.
type Option func(*Tracker)

// WithExclusiveCapture makes the tracker listen only while its surface
// holds exclusive pointer capture.
func WithExclusiveCapture(exclusive bool) Option {
	return func(t *Tracker) {
		t.exclusive = exclusive
	}
}

// WithClock sets the clock used by the sampler.
func WithClock(c Clock) Option {
	return func(t *Tracker) {
		if c != nil {
			t.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// WithMetrics sets the metrics sink. By default each tracker has its own.
func WithMetrics(m *Metrics) Option {
	return func(t *Tracker) {
		if m != nil {
			t.metrics = m
		}
	}
}

// Tracker aggregates input signals from one surface into a key-state table
// and a pointer-state record.
type Tracker struct {
	id        string
	surface   Surface
	capture   Capture
	exclusive bool

	keys    *key.Table
	pointer *mouse.State
	sampler *sampler
	metrics *Metrics
	clock   Clock
	log     Logger

	active    bool
	listeners []ListenerID

	activateID  ListenerID
	unsubscribe func()
	closed      bool
}

// New creates a tracker bound to surface.
//
// In the default mode the tracker adjusts the surface presentation and
// becomes Active immediately. With WithExclusiveCapture it starts Inactive
// and waits for capture; capture may be nil, in which case the platform is
// treated as having no capture support and the tracker never activates.
func New(surface Surface, capture Capture, sched Scheduler, opts ...Option) *Tracker {
	t := &Tracker{
		id:      uuid.NewString(),
		surface: surface,
		capture: capture,
		keys:    key.NewTable(),
		pointer: mouse.NewState(),
		clock:   SystemClock(),
		log:     nopLogger{},
	}

	for _, opt := range opts {
		opt(t)
	}
	if t.metrics == nil {
		t.metrics = NewMetrics()
	}
	t.sampler = newSampler(sched, t.clock, t.pointer, t.metrics)

	if t.exclusive {
		t.watchCapture()
	} else {
		surface.Present(Presentation{
			Focusable: true,
			Cursor:    CursorDefault,
			Outline:   false,
		})
		t.activate()
	}

	return t
}

// ID returns the tracker's unique id.
func (t *Tracker) ID() string { return t.id }

// Keys returns the live key-state table.
func (t *Tracker) Keys() *key.Table { return t.keys }

// Pointer returns the live pointer-state record.
func (t *Tracker) Pointer() *mouse.State { return t.pointer }

// Metrics returns the tracker's metrics.
func (t *Tracker) Metrics() *Metrics { return t.metrics }

// Exclusive reports whether the tracker was created in exclusive-capture mode.
func (t *Tracker) Exclusive() bool { return t.exclusive }

// Active reports whether listeners are attached and sampling is running.
func (t *Tracker) Active() bool { return t.active }

// Close detaches every listener, stops sampling and releases capture.
// Closing twice is a no-op.
func (t *Tracker) Close() {
	if t.closed {
		return
	}
	t.closed = true

	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
	if t.activateID != 0 {
		t.surface.RemoveListener(t.activateID)
		t.activateID = 0
	}
	if t.exclusive && t.active && t.capture != nil {
		if err := t.capture.ReleaseCapture(); err != nil {
			t.log.Debugf("release capture on close: %v", err)
		}
	}
	t.deactivate()
}

// activate attaches a fresh listener set and starts the sampler.
func (t *Tracker) activate() {
	if t.active {
		return
	}
	t.active = true

	handlers := map[EventKind]Handler{
		EventKeyDown:     t.handleKeyDown,
		EventKeyUp:       t.handleKeyUp,
		EventPointerMove: t.handlePointerMove,
		EventPointerDown: t.handlePointerDown,
		EventPointerUp:   t.handlePointerUp,
		EventWheel:       t.handleWheel,
	}
	t.listeners = t.listeners[:0]
	for _, kind := range listenerKinds {
		t.listeners = append(t.listeners, t.surface.AddListener(kind, handlers[kind]))
	}

	t.sampler.start()
	t.log.Debugf("tracker %s active", t.id)
}

// deactivate detaches the listener set and cancels the sampler.
func (t *Tracker) deactivate() {
	if !t.active {
		return
	}
	t.active = false

	for _, id := range t.listeners {
		t.surface.RemoveListener(id)
	}
	t.listeners = t.listeners[:0]

	t.sampler.stop()
	t.log.Debugf("tracker %s inactive", t.id)
}

func (t *Tracker) handleKeyDown(s Signal) {
	t.keys.Press(s.Key)
	t.metrics.RecordKeyEvent()
}

func (t *Tracker) handleKeyUp(s Signal) {
	t.keys.Release(s.Key)
	t.metrics.RecordKeyEvent()
}

func (t *Tracker) handlePointerMove(s Signal) {
	t.pointer.Move(s.X, s.Y)
	t.metrics.RecordPointerEvent()
}

func (t *Tracker) handlePointerDown(Signal) {
	t.pointer.Press()
	t.metrics.RecordPointerEvent()
}

func (t *Tracker) handlePointerUp(Signal) {
	t.pointer.Release()
	t.metrics.RecordPointerEvent()
}

func (t *Tracker) handleWheel(s Signal) {
	t.pointer.Scroll(s.Delta)
	t.metrics.RecordWheelEvent()
}
