// Package keyscript runs a user Lua script that names dictionary keys.
//
// The script must define a global function
//
//	function make_key(english, korean)
//	    return snake("msg " .. english)
//	end
//
// which returns the English key for a freshly translated row. The helper
// snake(text) converts text to snake_case. Scripts run in a sandbox with
// only the base, table, string and math libraries.
package keyscript

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/trilex/internal/translate"
)

// FuncName is the global function a script must define.
const FuncName = "make_key"

// DefaultTimeout bounds a single make_key call.
const DefaultTimeout = time.Second

// Errors returned by scripts.
var (
	// ErrNoFunc indicates the script does not define make_key.
	ErrNoFunc = errors.New("script does not define " + FuncName)

	// ErrNotString indicates make_key returned something other than a string.
	ErrNotString = errors.New(FuncName + " must return a string")

	// ErrClosed indicates the script was closed.
	ErrClosed = errors.New("script closed")
)

// Script is a loaded key script. It is safe for concurrent use; calls
// are serialised.
type Script struct {
	mu      sync.Mutex
	L       *lua.LState
	timeout time.Duration
	closed  bool
}

// Option configures a Script.
type Option func(*Script)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Script) {
		s.timeout = d
	}
}

// LoadFile loads a script from path.
func LoadFile(path string, opts ...Option) (*Script, error) {
	return load(func(L *lua.LState) error { return L.DoFile(path) }, opts)
}

// LoadString loads a script from source.
func LoadString(src string, opts ...Option) (*Script, error) {
	return load(func(L *lua.LState) error { return L.DoString(src) }, opts)
}

func load(run func(*lua.LState) error, opts []Option) (*Script, error) {
	s := &Script{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	L.SetGlobal("snake", L.NewFunction(luaSnake))
	s.L = L

	if err := run(L); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading key script: %w", err)
	}
	if fn := L.GetGlobal(FuncName); fn.Type() != lua.LTFunction {
		L.Close()
		return nil, ErrNoFunc
	}
	return s, nil
}

// openSafeLibraries opens the libraries a key script may use and removes
// the loaders that could reach the file system.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func luaSnake(L *lua.LState) int {
	L.Push(lua.LString(translate.SnakeKey(L.CheckString(1))))
	return 1
}

// Make calls make_key(english, korean). Its signature matches
// translate.KeyFunc.
func (s *Script) Make(english, korean string) (key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	err = s.L.CallByParam(lua.P{
		Fn:      s.L.GetGlobal(FuncName),
		NRet:    1,
		Protect: true,
	}, lua.LString(english), lua.LString(korean))
	if err != nil {
		return "", fmt.Errorf("%s(%q): %w", FuncName, english, err)
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)
	str, ok := ret.(lua.LString)
	if !ok {
		return "", fmt.Errorf("%w, got %s", ErrNotString, ret.Type())
	}
	return string(str), nil
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		s.L.Close()
	}
}
