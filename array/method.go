package array

import (
	"context"

	"github.com/signadot/jsvar/jsv"
)

// Method is an array operation callable by name with a receiver and
// positional arguments, the way a script calls it.
type Method interface {
	String() string
	Call(ctx context.Context, e *Engine, this jsv.Value, args []jsv.Value) (jsv.Value, error)
}

type name string

func (n name) String() string {
	return string(n)
}

type method struct {
	name
	call func(ctx context.Context, e *Engine, this jsv.Value, args []jsv.Value) (jsv.Value, error)
}

func (m *method) Call(ctx context.Context, e *Engine, this jsv.Value, args []jsv.Value) (jsv.Value, error) {
	return m.call(ctx, e, this, args)
}

// arg returns the i'th argument, or no value.
func arg(args []jsv.Value, i int) jsv.Value {
	if i < len(args) {
		return args[i]
	}
	return jsv.Value{}
}

func rest(args []jsv.Value, i int) []jsv.Value {
	if i < len(args) {
		return args[i:]
	}
	return nil
}

// storeOf returns the store holding the receiver or else the first
// argument.
func storeOf(this jsv.Value, args []jsv.Value) (*jsv.Store, error) {
	if st := this.Store(); st != nil {
		return st, nil
	}
	for _, a := range args {
		if st := a.Store(); st != nil {
			return st, nil
		}
	}
	return nil, typeError("no receiver")
}

func builtins() []Method {
	return []Method{
		&method{name: "indexOf", call: func(_ context.Context, e *Engine, this jsv.Value, args []jsv.Value) (jsv.Value, error) {
			if err := requireArray("indexOf", this); err != nil {
				return jsv.Value{}, err
			}
			return this.Store().NewInt(e.IndexOf(this, arg(args, 0)))
		}},
		&method{name: "join", call: func(_ context.Context, e *Engine, this jsv.Value, args []jsv.Value) (jsv.Value, error) {
			return e.Join(this, arg(args, 0))
		}},
		&method{name: "push", call: func(_ context.Context, e *Engine, this jsv.Value, args []jsv.Value) (jsv.Value, error) {
			n, err := e.Push(this, args...)
			if err != nil {
				return jsv.Value{}, err
			}
			return this.Store().NewInt(n)
		}},
		&method{name: "pop", call: func(_ context.Context, e *Engine, this jsv.Value, _ []jsv.Value) (jsv.Value, error) {
			if err := requireArray("pop", this); err != nil {
				return jsv.Value{}, err
			}
			return e.Pop(this), nil
		}},
		&method{name: "map", call: func(ctx context.Context, e *Engine, this jsv.Value, args []jsv.Value) (jsv.Value, error) {
			return e.Map(ctx, this, arg(args, 0), arg(args, 1))
		}},
		&method{name: "forEach", call: func(ctx context.Context, e *Engine, this jsv.Value, args []jsv.Value) (jsv.Value, error) {
			return jsv.Value{}, e.ForEach(ctx, this, arg(args, 0), arg(args, 1))
		}},
		&method{name: "splice", call: func(_ context.Context, e *Engine, this jsv.Value, args []jsv.Value) (jsv.Value, error) {
			return e.Splice(this, arg(args, 0), arg(args, 1), rest(args, 2)...)
		}},
		&method{name: "slice", call: func(_ context.Context, e *Engine, this jsv.Value, args []jsv.Value) (jsv.Value, error) {
			return e.Slice(this, arg(args, 0), arg(args, 1))
		}},
		&method{name: "sort", call: func(ctx context.Context, e *Engine, this jsv.Value, args []jsv.Value) (jsv.Value, error) {
			return e.Sort(ctx, this, arg(args, 0))
		}},
		&method{name: "concat", call: func(_ context.Context, e *Engine, this jsv.Value, args []jsv.Value) (jsv.Value, error) {
			return e.Concat(this, args...)
		}},
		&method{name: "isArray", call: func(_ context.Context, e *Engine, this jsv.Value, args []jsv.Value) (jsv.Value, error) {
			st, err := storeOf(this, args)
			if err != nil {
				return jsv.Value{}, err
			}
			return st.NewBool(e.IsArray(arg(args, 0)))
		}},
		&method{name: "Array", call: func(_ context.Context, _ *Engine, this jsv.Value, args []jsv.Value) (jsv.Value, error) {
			st, err := storeOf(this, args)
			if err != nil {
				return jsv.Value{}, err
			}
			return Construct(st, args...)
		}},
	}
}
