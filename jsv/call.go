package jsv

import (
	"context"
	"fmt"

	"github.com/signadot/jsvar/debug"
)

// Callable is the body of a function reference.
//
// Arguments and this are locked by the caller for the duration of the call.
// The returned value is owned by the caller; no value means the function
// returned nothing.
type Callable interface {
	Call(ctx context.Context, this Value, args []Value) (Value, error)
}

// NativeFunc adapts a Go function to Callable.
type NativeFunc func(ctx context.Context, this Value, args []Value) (Value, error)

func (f NativeFunc) Call(ctx context.Context, this Value, args []Value) (Value, error) {
	return f(ctx, this, args)
}

// Invoke calls the function reference fn with this and args.
func Invoke(ctx context.Context, fn, this Value, args ...Value) (Value, error) {
	c := fn.Callable()
	if c == nil {
		return Value{}, fmt.Errorf("%w: %s is not a function", ErrTypeArgument, fn.Kind())
	}
	if debug.Call() {
		debug.Logf("call %d with %d args\n", fn.ref, len(args))
	}
	res, err := c.Call(ctx, this, args)
	if err != nil {
		res.Release()
		return Value{}, err
	}
	if debug.Call() {
		debug.Logf("call %d returned %s\n", fn.ref, res)
	}
	return res, nil
}
