package script

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/inputtrack/internal/input/key"
	"github.com/dshills/inputtrack/internal/input/mouse"
)

// DefaultTimeout bounds a single Load or Frame call.
const DefaultTimeout = 50 * time.Millisecond

// Source is the input state a script can read.
type Source interface {
	Keys() *key.Table
	Pointer() *mouse.State
	Active() bool
}

// Logger receives script errors.
type Logger interface {
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...any) {}

// Option configures a Host.
type Option func(*Host)

// WithTimeout sets the time limit for each Load and Frame call.
func WithTimeout(d time.Duration) Option {
	return func(h *Host) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithLogger sets the logger for script errors.
func WithLogger(l Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.log = l
		}
	}
}

// Host owns a Lua state bound to an input Source.
//
// Host is not safe for concurrent use. Call it from the goroutine that
// mutates the Source.
type Host struct {
	src     Source
	timeout time.Duration
	log     Logger

	L      *lua.LState
	path   string
	closed bool
}

// New creates a host with nothing loaded.
func New(src Source, opts ...Option) *Host {
	h := &Host{
		src:     src,
		timeout: DefaultTimeout,
		log:     nopLogger{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Path returns the file most recently loaded, or "" for none.
func (h *Host) Path() string { return h.path }

// Loaded reports whether a script is loaded.
func (h *Host) Loaded() bool { return h.L != nil }

// Load runs the file at path in a fresh state. On success the new state
// replaces any previous one; on failure the previous script keeps running.
func (h *Host) Load(path string) error {
	return h.load(path, func(L *lua.LState) error { return L.DoFile(path) })
}

// LoadString runs src in a fresh state under the given chunk name.
func (h *Host) LoadString(name, src string) error {
	return h.load(name, func(L *lua.LState) error { return L.DoString(src) })
}

func (h *Host) load(name string, run func(*lua.LState) error) error {
	if h.closed {
		return ErrClosed
	}

	L := h.newState()
	if err := h.protect(L, func() error { return run(L) }); err != nil {
		L.Close()
		h.log.Warnf("load %s: %v", name, err)
		return fmt.Errorf("load %s: %w", name, err)
	}

	if h.L != nil {
		h.L.Close()
	}
	h.L = L
	h.path = name
	return nil
}

// Frame calls the script's frame function with dt in seconds and returns
// its result as a string. A nil result yields "".
func (h *Host) Frame(dt time.Duration) (string, error) {
	if h.closed {
		return "", ErrClosed
	}
	if h.L == nil {
		return "", ErrNotLoaded
	}

	fn := h.L.GetGlobal("frame")
	if fn.Type() != lua.LTFunction {
		return "", ErrNoFrame
	}

	var out lua.LValue = lua.LNil
	err := h.protect(h.L, func() error {
		if err := h.L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, lua.LNumber(dt.Seconds())); err != nil {
			return err
		}
		out = h.L.Get(-1)
		h.L.Pop(1)
		return nil
	})
	if err != nil {
		h.log.Warnf("frame %s: %v", h.path, err)
		return "", fmt.Errorf("frame: %w", err)
	}

	if out == lua.LNil {
		return "", nil
	}
	return lua.LVAsString(out), nil
}

// Close releases the Lua state. It is safe to call more than once.
func (h *Host) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	if h.L != nil {
		h.L.Close()
		h.L = nil
	}
	return nil
}

// protect runs fn under the host timeout with panic recovery.
func (h *Host) protect(L *lua.LState, fn func() error) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	L.SetContext(ctx)
	defer L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	err = fn()
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return err
}

func (h *Host) newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"pressed":     h.luaPressed,
		"held":        h.luaHeld,
		"mouse":       h.luaMouse,
		"delta":       h.luaDelta,
		"wheel_delta": h.luaWheelDelta,
		"active":      h.luaActive,
	})
	L.SetGlobal("input", mod)
	return L
}

// input.pressed(k) -> bool
func (h *Host) luaPressed(L *lua.LState) int {
	k := L.CheckString(1)
	L.Push(lua.LBool(h.src.Keys().Pressed(k)))
	return 1
}

// input.held() -> array of held key identifiers, sorted
func (h *Host) luaHeld(L *lua.LState) int {
	held := h.src.Keys().Held()
	sort.Strings(held)

	tbl := L.CreateTable(len(held), 0)
	for _, k := range held {
		tbl.Append(lua.LString(k))
	}
	L.Push(tbl)
	return 1
}

// input.mouse() -> {x, y, last_x, last_y, dragging, wheel, last_wheel}
func (h *Host) luaMouse(L *lua.LState) int {
	p := h.src.Pointer()

	tbl := L.CreateTable(0, 7)
	tbl.RawSetString("x", lua.LNumber(p.X()))
	tbl.RawSetString("y", lua.LNumber(p.Y()))
	tbl.RawSetString("last_x", lua.LNumber(p.LastX()))
	tbl.RawSetString("last_y", lua.LNumber(p.LastY()))
	tbl.RawSetString("dragging", lua.LBool(p.Dragging()))
	tbl.RawSetString("wheel", lua.LNumber(p.Wheel()))
	tbl.RawSetString("last_wheel", lua.LNumber(p.LastWheel()))
	L.Push(tbl)
	return 1
}

// input.delta() -> dx, dy
func (h *Host) luaDelta(L *lua.LState) int {
	dx, dy := h.src.Pointer().Delta()
	L.Push(lua.LNumber(dx))
	L.Push(lua.LNumber(dy))
	return 2
}

// input.wheel_delta() -> number
func (h *Host) luaWheelDelta(L *lua.LState) int {
	L.Push(lua.LNumber(h.src.Pointer().WheelDelta()))
	return 1
}

// input.active() -> bool
func (h *Host) luaActive(L *lua.LState) int {
	L.Push(lua.LBool(h.src.Active()))
	return 1
}

// Describe formats the state the way the default status line does when no
// script is loaded.
func Describe(src Source) string {
	p := src.Pointer()
	dx, dy := p.Delta()

	held := src.Keys().Held()
	sort.Strings(held)
	keys := "-"
	if len(held) > 0 {
		keys = strings.Join(held, "+")
	}

	state := "inactive"
	if src.Active() {
		state = "active"
	}

	drag := ""
	if p.Dragging() {
		drag = " drag"
	}

	return fmt.Sprintf("%s pos=%.0f,%.0f delta=%.0f,%.0f wheel=%.0f(%+.0f)%s keys=%s",
		state, p.X(), p.Y(), dx, dy, p.Wheel(), p.WheelDelta(), drag, keys)
}
