package script

import (
	"github.com/expr-lang/expr"
	"github.com/signadot/jsvar/jsv"
)

func exprOpts(st *jsv.Store) []expr.Option {
	return []expr.Option{
		expr.AllowUndefinedVariables(),
		expr.Function("str", func(params ...any) (any, error) {
			v, err := jsv.FromAny(st, params[0])
			if err != nil {
				return nil, err
			}
			defer v.Release()
			return v.ToString(), nil
		},
			new(func(any) string)),
		expr.Function("num", func(params ...any) (any, error) {
			v, err := jsv.FromAny(st, params[0])
			if err != nil {
				return nil, err
			}
			defer v.Release()
			return v.ToNumber(), nil
		},
			new(func(any) float64)),
		expr.Function("cmp", func(params ...any) (any, error) {
			a, err := jsv.FromAny(st, params[0])
			if err != nil {
				return nil, err
			}
			defer a.Release()
			b, err := jsv.FromAny(st, params[1])
			if err != nil {
				return nil, err
			}
			defer b.Release()
			le, ge := jsv.LessEqual(a, b), jsv.LessEqual(b, a)
			switch {
			case le && ge:
				return 0, nil
			case le:
				return -1, nil
			}
			return 1, nil
		},
			new(func(any, any) int)),
	}
}
