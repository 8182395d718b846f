// Package terminal implements the input platform on a tcell screen.
//
// A Terminal is at once the Surface, the Capture arbiter and the frame
// Scheduler for a tracker. Everything runs on the goroutine that calls
// Dispatch: a ticker goroutine only posts frame interrupts into the tcell
// event queue, so frame callbacks are serialized with input handlers.
//
// Terminals report key presses but not releases. A key is considered
// released once it has not repeated for Config.KeyReleaseDelay, and every
// held key is released when capture is lost.
//
// Exclusive capture maps to mouse motion reporting with the cursor hidden.
// While captured, Escape releases capture.
package terminal

import (
	"sort"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inputtrack/internal/input"
	"github.com/dshills/inputtrack/internal/input/key"
)

// Config configures the terminal platform.
type Config struct {
	// FrameRate is the display-refresh rate in frames per second.
	FrameRate int

	// KeyReleaseDelay is how long a key may go without repeating before a
	// release is synthesized.
	KeyReleaseDelay time.Duration

	// WheelStep is the wheel delta reported per wheel notch.
	WheelStep float64
}

// DefaultConfig returns the default terminal configuration.
func DefaultConfig() Config {
	return Config{
		FrameRate:       60,
		KeyReleaseDelay: 500 * time.Millisecond,
		WheelStep:       1,
	}
}

// Interrupt payloads.
type (
	frameTick struct{}
	task      func()
)

const buttonMask = tcell.Button1 | tcell.Button2 | tcell.Button3 | tcell.Button4 |
	tcell.Button5 | tcell.Button6 | tcell.Button7 | tcell.Button8

type listener struct {
	kind    input.EventKind
	handler input.Handler
}

// Terminal is a tcell-backed input platform.
type Terminal struct {
	screen tcell.Screen
	config Config
	clock  input.Clock

	listeners    map[input.ListenerID]listener
	nextListener input.ListenerID

	frames    map[input.FrameID]func()
	nextFrame input.FrameID

	subs    map[int]func(input.Surface)
	nextSub int

	captured     bool
	presentation input.Presentation

	buttons tcell.ButtonMask
	lastX   int
	lastY   int
	held    map[string]time.Time

	mu      sync.Mutex
	stop    chan struct{}
	wg      sync.WaitGroup
	running bool
}

// New wraps screen. The screen must not be initialized yet; call Init.
func New(screen tcell.Screen, cfg Config, clock input.Clock) *Terminal {
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = DefaultConfig().FrameRate
	}
	if cfg.WheelStep == 0 {
		cfg.WheelStep = DefaultConfig().WheelStep
	}
	if clock == nil {
		clock = input.SystemClock()
	}
	return &Terminal{
		screen:    screen,
		config:    cfg,
		clock:     clock,
		listeners: make(map[input.ListenerID]listener),
		frames:    make(map[input.FrameID]func()),
		subs:      make(map[int]func(input.Surface)),
		held:      make(map[string]time.Time),
		lastX:     -1,
		lastY:     -1,
	}
}

// Open creates a terminal on the controlling tty and initializes it.
func Open(cfg Config) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	t := New(screen, cfg, nil)
	if err := t.Init(); err != nil {
		return nil, err
	}
	return t, nil
}

// Init initializes the screen. Button events are always reported so that
// clicks can request capture.
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse(tcell.MouseButtonEvents)
	return nil
}

// Start begins posting frame ticks at the configured rate.
func (t *Terminal) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return
	}
	t.running = true
	t.stop = make(chan struct{})

	interval := time.Second / time.Duration(t.config.FrameRate)
	t.wg.Add(1)
	go t.tick(interval, t.stop)
}

// Stop stops the frame ticker.
func (t *Terminal) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	close(t.stop)
	t.mu.Unlock()

	t.wg.Wait()
}

// Shutdown stops the ticker and restores the terminal.
func (t *Terminal) Shutdown() {
	t.Stop()
	t.screen.Fini()
}

func (t *Terminal) tick(interval time.Duration, stop <-chan struct{}) {
	defer t.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// A full queue drops the frame; the next tick catches up.
			_ = t.screen.PostEvent(tcell.NewEventInterrupt(frameTick{}))
		}
	}
}

// PollEvent blocks for the next screen event.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Post schedules fn to run on the dispatch goroutine.
func (t *Terminal) Post(fn func()) error {
	return t.screen.PostEvent(tcell.NewEventInterrupt(task(fn)))
}

// Dispatch handles one screen event. It must be called from a single
// goroutine.
func (t *Terminal) Dispatch(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		t.handleKey(e)
	case *tcell.EventMouse:
		t.handleMouse(e)
	case *tcell.EventInterrupt:
		switch data := e.Data().(type) {
		case frameTick:
			t.RunFrame()
		case task:
			data()
		}
	case *tcell.EventFocus:
		if !e.Focused {
			t.releaseHeld()
		}
	}
}

// AddListener implements input.Surface.
func (t *Terminal) AddListener(kind input.EventKind, h input.Handler) input.ListenerID {
	t.nextListener++
	t.listeners[t.nextListener] = listener{kind: kind, handler: h}
	return t.nextListener
}

// RemoveListener implements input.Surface.
func (t *Terminal) RemoveListener(id input.ListenerID) {
	delete(t.listeners, id)
}

// Present implements input.Surface.
func (t *Terminal) Present(p input.Presentation) {
	t.presentation = p

	if p.Focusable {
		t.screen.EnableMouse(tcell.MouseMotionEvents)
	}
	switch p.Cursor {
	case input.CursorDefault:
		t.screen.SetCursorStyle(tcell.CursorStyleDefault)
	case input.CursorHidden:
		t.screen.HideCursor()
	}
}

// Presentation returns the last applied presentation.
func (t *Terminal) Presentation() input.Presentation {
	return t.presentation
}

// RequestCapture implements input.Capture. Only this terminal can hold
// capture.
func (t *Terminal) RequestCapture(s input.Surface) error {
	if s != input.Surface(t) {
		return input.ErrCaptureRejected
	}
	if t.captured {
		return nil
	}
	t.captured = true
	t.screen.EnableMouse(tcell.MouseMotionEvents)
	t.screen.HideCursor()
	t.notify(t)
	return nil
}

// ReleaseCapture implements input.Capture.
func (t *Terminal) ReleaseCapture() error {
	if !t.captured {
		return nil
	}
	t.releaseHeld()
	t.captured = false
	if !t.presentation.Focusable {
		t.screen.EnableMouse(tcell.MouseButtonEvents)
	}
	t.notify(nil)
	return nil
}

// Captured reports whether this terminal holds capture.
func (t *Terminal) Captured() bool {
	return t.captured
}

// OnCaptureChange implements input.Capture.
func (t *Terminal) OnCaptureChange(fn func(holder input.Surface)) func() {
	id := t.nextSub
	t.nextSub++
	t.subs[id] = fn
	return func() { delete(t.subs, id) }
}

func (t *Terminal) notify(holder input.Surface) {
	ids := make([]int, 0, len(t.subs))
	for id := range t.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := t.subs[id]; ok {
			fn(holder)
		}
	}
}

// RequestFrame implements input.Scheduler.
func (t *Terminal) RequestFrame(fn func()) input.FrameID {
	t.nextFrame++
	t.frames[t.nextFrame] = fn
	return t.nextFrame
}

// CancelFrame implements input.Scheduler.
func (t *Terminal) CancelFrame(id input.FrameID) {
	delete(t.frames, id)
}

// RunFrame runs the callbacks requested before this frame, then
// synthesizes releases for keys that stopped repeating. Callbacks
// requested while the frame runs wait for the next one.
func (t *Terminal) RunFrame() {
	ids := make([]input.FrameID, 0, len(t.frames))
	for id := range t.frames {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		fn, ok := t.frames[id]
		if !ok {
			continue
		}
		delete(t.frames, id)
		fn()
	}

	t.releaseStale(t.clock.Now())
}

func (t *Terminal) emit(sig input.Signal) {
	ids := make([]input.ListenerID, 0, len(t.listeners))
	for id, l := range t.listeners {
		if l.kind == sig.Kind {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if l, ok := t.listeners[id]; ok {
			l.handler(sig)
		}
	}
}

func (t *Terminal) handleKey(e *tcell.EventKey) {
	id := identifier(e)
	if id == "" {
		return
	}
	if t.captured && id == key.Escape {
		_ = t.ReleaseCapture()
		return
	}

	t.held[id] = t.clock.Now()
	t.emit(input.Signal{Kind: input.EventKeyDown, Key: id})
}

func (t *Terminal) releaseStale(now time.Time) {
	for _, id := range t.sortedHeld() {
		if now.Sub(t.held[id]) >= t.config.KeyReleaseDelay {
			delete(t.held, id)
			t.emit(input.Signal{Kind: input.EventKeyUp, Key: id})
		}
	}
}

func (t *Terminal) releaseHeld() {
	for _, id := range t.sortedHeld() {
		delete(t.held, id)
		t.emit(input.Signal{Kind: input.EventKeyUp, Key: id})
	}
}

func (t *Terminal) sortedHeld() []string {
	ids := make([]string, 0, len(t.held))
	for id := range t.held {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (t *Terminal) handleMouse(e *tcell.EventMouse) {
	x, y := e.Position()
	if x != t.lastX || y != t.lastY {
		t.lastX, t.lastY = x, y
		t.emit(input.Signal{Kind: input.EventPointerMove, X: float64(x), Y: float64(y)})
	}

	btn := e.Buttons()
	if btn&tcell.WheelDown != 0 {
		t.emit(input.Signal{Kind: input.EventWheel, Delta: t.config.WheelStep})
	}
	if btn&tcell.WheelUp != 0 {
		t.emit(input.Signal{Kind: input.EventWheel, Delta: -t.config.WheelStep})
	}

	pressed := btn & buttonMask
	prev := t.buttons
	t.buttons = pressed

	switch {
	case prev == 0 && pressed != 0:
		t.emit(input.Signal{Kind: input.EventPointerDown, X: float64(x), Y: float64(y)})
	case prev != 0 && pressed == 0:
		t.emit(input.Signal{Kind: input.EventPointerUp, X: float64(x), Y: float64(y)})
		if prev&tcell.Button1 != 0 {
			t.emit(input.Signal{Kind: input.EventActivate, X: float64(x), Y: float64(y)})
		}
	}
}

// identifier converts a tcell key event to a key identifier.
func identifier(e *tcell.EventKey) string {
	k := e.Key()
	switch k {
	case tcell.KeyRune:
		return key.Rune(e.Rune())
	case tcell.KeyEnter:
		return key.Enter
	case tcell.KeyEscape:
		return key.Escape
	case tcell.KeyTab, tcell.KeyBacktab:
		return key.Tab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.Backspace
	case tcell.KeyDelete:
		return key.Delete
	case tcell.KeyInsert:
		return key.Insert
	case tcell.KeyHome:
		return key.Home
	case tcell.KeyEnd:
		return key.End
	case tcell.KeyPgUp:
		return key.PageUp
	case tcell.KeyPgDn:
		return key.PageDown
	case tcell.KeyUp:
		return key.ArrowUp
	case tcell.KeyDown:
		return key.ArrowDown
	case tcell.KeyLeft:
		return key.ArrowLeft
	case tcell.KeyRight:
		return key.ArrowRight
	case tcell.KeyPause:
		return key.Pause
	case tcell.KeyPrint:
		return key.PrintScreen
	}

	switch {
	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		return key.Function(int(k-tcell.KeyF1) + 1)
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		// Ctrl+letter reports the letter, as DOM key events do.
		return key.Rune(rune('a' + (k - tcell.KeyCtrlA)))
	}
	return ""
}
