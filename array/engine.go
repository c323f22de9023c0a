package array

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/signadot/jsvar/jsv"
)

// Caller calls a function value with a this binding and positional
// arguments. The result is owned by the caller of Call.
type Caller interface {
	Call(ctx context.Context, fn, this jsv.Value, args ...jsv.Value) (jsv.Value, error)
}

// CallerFunc adapts a function to Caller.
type CallerFunc func(ctx context.Context, fn, this jsv.Value, args ...jsv.Value) (jsv.Value, error)

func (f CallerFunc) Call(ctx context.Context, fn, this jsv.Value, args ...jsv.Value) (jsv.Value, error) {
	return f(ctx, fn, this, args...)
}

// Spec holds the runtime specification for an Engine.
type Spec struct {
	// Caller calls callback arguments of map, forEach and sort. It defaults
	// to jsv.Invoke.
	Caller Caller
	Log    *slog.Logger
}

// Engine runs array operations.
//
// Every operation borrows its receiver and arguments: they are locked by
// the caller and stay locked. Returned values carry a new lock.
type Engine struct {
	caller Caller
	log    *slog.Logger
}

func New(spec *Spec) *Engine {
	if spec == nil {
		spec = &Spec{}
	}
	e := &Engine{caller: spec.Caller, log: spec.Log}
	if e.caller == nil {
		e.caller = CallerFunc(jsv.Invoke)
	}
	if e.log == nil {
		e.log = jsv.DefaultLogger()
	}
	return e
}

func typeError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{jsv.ErrTypeArgument}, args...)...)
}

func requireArray(op string, arr jsv.Value) error {
	if !arr.IsArray() {
		return typeError("%s called on %s", op, arr.Kind())
	}
	return nil
}

// normIndex normalizes a start or end position against length n: negative
// values count back from n and the result is clamped to [0, n]. No value
// and undefined give def.
func normIndex(v jsv.Value, n, def int64) int64 {
	if v.IsUndefined() {
		return def
	}
	i := v.ToInt()
	if i < 0 {
		i += n
	}
	return min(max(i, 0), n)
}
