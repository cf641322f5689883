package adapter

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/scrubbing/internal/scrub"
)

// DefaultScriptTimeout bounds a single call into a script.
const DefaultScriptTimeout = 100 * time.Millisecond

// Script delegates value I/O to a Lua program. The program must define
//
//	start(text)          -- returns the base value as a number
//	change(value, delta) -- returns the text to display, or nil for the value itself
//
// and may define init(text) and finish(), called on Init and End.
//
// gopher-lua states are not goroutine-safe; calls are serialized.
type Script struct {
	mu      sync.Mutex
	L       *lua.LState
	timeout time.Duration
	closed  bool
}

// ScriptOption configures a Script.
type ScriptOption func(*Script)

// WithScriptTimeout sets the per-call time limit.
func WithScriptTimeout(d time.Duration) ScriptOption {
	return func(s *Script) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewScript loads source into a fresh state that has only the base,
// table, string and math libraries.
func NewScript(source string, opts ...ScriptOption) (*Script, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	s := &Script{L: L, timeout: DefaultScriptTimeout}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.protect(func() error { return L.DoString(source) }); err != nil {
		L.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	for _, fn := range []string{"start", "change"} {
		if L.GetGlobal(fn).Type() != lua.LTFunction {
			L.Close()
			return nil, fmt.Errorf("%w: %s", ErrMissingFunction, fn)
		}
	}
	return s, nil
}

// Close releases the Lua state. Later calls fail with ErrScriptClosed.
func (s *Script) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}

// Init calls init(text) if the script defines it.
func (s *Script) Init(b *scrub.Binding) {
	if _, err := s.call("init", true, lua.LString(b.Target().Text())); err != nil {
		b.Logger().Warn("script init: %v", err)
	}
}

// Start calls start(text). A result that is not an integral number in
// int range is reported as scrub.ErrInvalidValue.
func (s *Script) Start(b *scrub.Binding) (int, error) {
	ret, err := s.call("start", false, lua.LString(b.Target().Text()))
	if err != nil {
		return 0, err
	}
	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("%w: script start returned %s", scrub.ErrInvalidValue, ret.Type())
	}
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) ||
		f < float64(math.MinInt) || f >= -float64(math.MinInt) {
		return 0, fmt.Errorf("%w: script start returned %v", scrub.ErrInvalidValue, n)
	}
	return int(f), nil
}

// Change calls change(value, delta) and displays its result.
func (s *Script) Change(b *scrub.Binding, value, delta int) {
	text := strconv.Itoa(value)
	ret, err := s.call("change", false, lua.LNumber(value), lua.LNumber(delta))
	switch {
	case err != nil:
		b.Logger().Warn("script change: %v", err)
	case ret.Type() == lua.LTString || ret.Type() == lua.LTNumber:
		text = lua.LVAsString(ret)
	}
	b.Target().SetText(text)
}

// End calls finish() if the script defines it.
func (s *Script) End(b *scrub.Binding) {
	if _, err := s.call("finish", true); err != nil {
		b.Logger().Warn("script finish: %v", err)
	}
}

// call invokes the global fn and returns its first result, or LNil.
// When optional is set a missing function is not an error.
func (s *Script) call(fn string, optional bool, args ...lua.LValue) (lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil, ErrScriptClosed
	}

	fnVal := s.L.GetGlobal(fn)
	if fnVal.Type() != lua.LTFunction {
		if optional {
			return lua.LNil, nil
		}
		return lua.LNil, fmt.Errorf("%w: %s", ErrMissingFunction, fn)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	top := s.L.GetTop()
	err := s.protect(func() error {
		return s.L.CallByParam(lua.P{Fn: fnVal, NRet: 1, Protect: true}, args...)
	})
	if err != nil {
		s.L.SetTop(top)
		return lua.LNil, fmt.Errorf("%s: %w", fn, err)
	}
	ret := s.L.Get(-1)
	s.L.SetTop(top)
	return ret, nil
}

// protect turns a Go panic raised inside the interpreter into an error.
func (s *Script) protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}
