// Package filter compiles small Lua expressions into node predicates.
//
// An expression is the body of a Lua "return" statement evaluated against a
// set of variables, for example
//
//	dir and depth < 2
//	size > 1024 * 1024 and not name:match("%.lock$")
//
// Each [Predicate] owns one sandboxed Lua state. Only the base, table,
// string and math libraries are loaded, and the functions that read files
// or compile new code (dofile, loadfile, load, loadstring) are removed.
package filter

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/observability"
)

// DefaultTimeout bounds a single evaluation when the caller's context has no
// deadline of its own.
const DefaultTimeout = time.Second

// ErrClosed is returned by Match after Close.
var ErrClosed = stderrors.New("filter is closed")

// blocked globals are removed after the safe libraries are opened.
var blocked = []string{"dofile", "loadfile", "load", "loadstring", "print", "collectgarbage"}

// Predicate is a compiled filter expression. Calls are serialized, so a
// Predicate may be shared, but evaluations never run in parallel.
type Predicate struct {
	expr string

	mu     sync.Mutex
	L      *lua.LState
	fn     *lua.LFunction
	closed bool
}

// Compile parses expr. Syntax errors are reported with code INVALID_FILTER.
func Compile(expr string) (*Predicate, error) {
	hooks := observability.Filter()
	if expr == "" {
		err := errors.New(errors.ErrCodeInvalidFilter, "filter expression is empty")
		hooks.OnFilterCompile(context.Background(), expr, err)
		return nil, err
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	fn, err := L.LoadString("return (" + expr + "\n)")
	if err != nil {
		L.Close()
		werr := errors.Wrap(errors.ErrCodeInvalidFilter, err, "cannot compile filter %q", expr)
		hooks.OnFilterCompile(context.Background(), expr, werr)
		return nil, werr
	}
	hooks.OnFilterCompile(context.Background(), expr, nil)
	return &Predicate{expr: expr, L: L, fn: fn}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) *Predicate {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range blocked {
		L.SetGlobal(name, lua.LNil)
	}
}

// String returns the source expression.
func (p *Predicate) String() string { return p.expr }

// Match evaluates the expression with vars visible as globals and reports
// whether the result is truthy in Lua terms (anything but nil and false).
// Variables from one call never leak into the next. Evaluation stops when
// ctx is done, or after [DefaultTimeout] if ctx has no deadline.
func (p *Predicate) Match(ctx context.Context, vars map[string]any) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false, ErrClosed
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}
	p.L.SetContext(ctx)
	defer p.L.RemoveContext()

	env := p.L.NewTable()
	for k, v := range vars {
		env.RawSetString(k, toLua(p.L, v))
	}
	meta := p.L.NewTable()
	meta.RawSetString("__index", p.L.G.Global)
	p.L.SetMetatable(env, meta)
	p.L.SetFEnv(p.fn, env)

	if err := p.L.CallByParam(lua.P{Fn: p.fn, NRet: 1, Protect: true}); err != nil {
		werr := errors.Wrap(errors.ErrCodeInvalidFilter, err, "filter %q failed", p.expr)
		observability.Filter().OnFilterError(ctx, p.expr, werr)
		return false, werr
	}
	ret := p.L.Get(-1)
	p.L.Pop(1)
	return lua.LVAsBool(ret), nil
}

// Close releases the Lua state. It is safe to call more than once.
func (p *Predicate) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		p.L.Close()
	}
}

// toLua converts the scalar and slice types used for filter variables.
func toLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case time.Time:
		return lua.LNumber(val.Unix())
	case []string:
		t := L.NewTable()
		for _, s := range val {
			t.Append(lua.LString(s))
		}
		return t
	default:
		return lua.LString(fmt.Sprint(val))
	}
}
