// Package luart provides the sandboxed Lua runtime used to load plugin
// and rule scripts.
//
// Configuration loading is synchronous and one-shot, so a State is owned
// by a single goroutine for its whole life; no cross-goroutine
// serialization is provided or needed.
package luart

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// ErrStateClosed is returned when using a closed state.
var ErrStateClosed = errors.New("lua state is closed")

// State wraps a sandboxed gopher-lua state.
type State struct {
	L      *lua.LState
	closed bool
}

// NewState creates a new Lua state with only safe standard libraries.
func NewState() *State {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // opened selectively below
	})

	// Open base library (print, type, pairs, ipairs, etc.)
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Note: these are intentionally NOT opened:
	// - io (file system access)
	// - os (system calls, execute)
	// - debug (can bypass sandbox)
	// - package (can load arbitrary modules)

	// The base library registers functions that bypass the sandbox by
	// loading code from disk or arbitrary strings. Scripts here are
	// self-contained, so module loading is removed outright.
	for _, name := range []string{
		"dofile",
		"loadfile",
		"load",
		"loadstring",
		"require",
	} {
		L.SetGlobal(name, lua.LNil)
	}

	return &State{L: L}
}

// DoFile executes a Lua file and returns its first return value.
func (s *State) DoFile(path string) (lua.LValue, error) {
	if s.closed {
		return lua.LNil, ErrStateClosed
	}
	return s.evalWithRecovery(func() error {
		return s.L.DoFile(path)
	})
}

// DoString executes Lua source and returns its first return value.
func (s *State) DoString(code string) (lua.LValue, error) {
	if s.closed {
		return lua.LNil, ErrStateClosed
	}
	return s.evalWithRecovery(func() error {
		return s.L.DoString(code)
	})
}

// evalWithRecovery runs fn with panic recovery, then pops the script's
// return value, if any, off the stack.
func (s *State) evalWithRecovery(fn func() error) (result lua.LValue, err error) {
	top := s.L.GetTop()

	defer func() {
		if r := recover(); r != nil {
			result = lua.LNil
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	if err := fn(); err != nil {
		return lua.LNil, err
	}

	nRet := s.L.GetTop() - top
	if nRet <= 0 {
		return lua.LNil, nil
	}
	result = s.L.Get(top + 1)
	s.L.Pop(nRet)
	return result, nil
}

// CallFunction calls a Lua function with the given arguments, discarding
// return values.
func (s *State) CallFunction(fn *lua.LFunction, args ...lua.LValue) (err error) {
	if s.closed {
		return ErrStateClosed
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	s.L.Push(fn)
	for _, arg := range args {
		s.L.Push(arg)
	}
	return s.L.PCall(len(args), 0, nil)
}

// Call calls a Lua function with the given arguments and returns its
// first return value.
func (s *State) Call(fn *lua.LFunction, args ...lua.LValue) (result lua.LValue, err error) {
	if s.closed {
		return lua.LNil, ErrStateClosed
	}

	defer func() {
		if r := recover(); r != nil {
			result = lua.LNil
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	s.L.Push(fn)
	for _, arg := range args {
		s.L.Push(arg)
	}
	if err := s.L.PCall(len(args), 1, nil); err != nil {
		return lua.LNil, err
	}
	result = s.L.Get(-1)
	s.L.Pop(1)
	return result, nil
}

// NewTable creates an empty table on this state.
func (s *State) NewTable() *lua.LTable {
	return s.L.NewTable()
}

// SetFuncs installs Go functions into a table.
func (s *State) SetFuncs(t *lua.LTable, funcs map[string]lua.LGFunction) *lua.LTable {
	return s.L.SetFuncs(t, funcs)
}

// IsClosed reports whether Close has been called.
func (s *State) IsClosed() bool {
	return s.closed
}

// Close releases all resources associated with the Lua state.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.L.Close()
	s.closed = true
}
