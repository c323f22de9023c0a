// Package script provides function values whose body is an expr
// expression, for use as callbacks of array methods.
package script

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/jsvar/debug"
	"github.com/signadot/jsvar/jsv"
)

// Func is a compiled expression callable as a function value.
//
// Positional arguments are bound to the parameter names given to Compile;
// missing arguments are nil. The receiver is bound to this and the full
// argument list to args. Values are seen by the expression as plain Go
// data (see jsv.ToAny), and its result is converted back with jsv.FromAny.
// A nil result is no value.
type Func struct {
	st     *jsv.Store
	params []string
	src    string
	prg    *vm.Program
}

// Compile compiles src and returns a new function value in st.
func Compile(st *jsv.Store, params []string, src string, opts ...expr.Option) (jsv.Value, error) {
	f, err := NewFunc(st, params, src, opts...)
	if err != nil {
		return jsv.Value{}, err
	}
	return st.NewFunction(f)
}

// NewFunc compiles src without allocating a function value.
func NewFunc(st *jsv.Store, params []string, src string, opts ...expr.Option) (*Func, error) {
	for _, p := range params {
		if p == "this" || p == "args" {
			return nil, fmt.Errorf("%w: parameter name %q is reserved", jsv.ErrTypeArgument, p)
		}
	}
	prg, err := expr.Compile(src, append(exprOpts(st), opts...)...)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", src, err)
	}
	return &Func{st: st, params: params, src: src, prg: prg}, nil
}

func (f *Func) String() string {
	return f.src
}

func (f *Func) Call(ctx context.Context, this jsv.Value, args []jsv.Value) (jsv.Value, error) {
	if err := ctx.Err(); err != nil {
		return jsv.Value{}, err
	}
	all := make([]any, len(args))
	for i, a := range args {
		x, err := jsv.ToAny(a)
		if err != nil {
			return jsv.Value{}, fmt.Errorf("argument %d: %w", i, err)
		}
		all[i] = x
	}
	self, err := jsv.ToAny(this)
	if err != nil {
		return jsv.Value{}, fmt.Errorf("this: %w", err)
	}
	env := map[string]any{
		"this": self,
		"args": all,
	}
	for i, p := range f.params {
		if i < len(all) {
			env[p] = all[i]
		} else {
			env[p] = nil
		}
	}
	res, err := expr.Run(f.prg, env)
	if err != nil {
		return jsv.Value{}, err
	}
	if debug.Call() {
		debug.Logf("script %q returned %v\n", f.src, res)
	}
	if res == nil {
		return jsv.Value{}, nil
	}
	return jsv.FromAny(f.st, res)
}
