package array

import (
	"context"

	"github.com/signadot/jsvar/jsv"
)

func checkCallback(op string, fn, this jsv.Value) error {
	if !fn.IsFunction() {
		return typeError("%s expects a function, got %s", op, fn.Kind())
	}
	if !this.IsUndefined() && !this.IsObject() {
		return typeError("%s expects an object as this, got %s", op, this.Kind())
	}
	return nil
}

// visit calls fn(value, index, arr) for every present element of arr in
// index order, passing each result to f.
func (e *Engine) visit(ctx context.Context, arr, fn, this jsv.Value, f func(idx int64, res jsv.Value) error) error {
	it := arr.Iter()
	defer it.Free()
	for ; it.HasElement(); it.Next() {
		if err := e.visitOne(ctx, it, arr, fn, this, f); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) visitOne(ctx context.Context, it *jsv.ArrayIterator, arr, fn, this jsv.Value, f func(int64, jsv.Value) error) error {
	val := it.Value()
	defer val.Release()
	idx, err := it.Index()
	if err != nil {
		return err
	}
	defer idx.Release()
	res, err := e.caller.Call(ctx, fn, this, val, idx, arr)
	if err != nil {
		return err
	}
	defer res.Release()
	i, _ := it.IndexInt()
	return f(i, res)
}

// Map returns a new array holding fn's result for every present element,
// at the element's index. Calls returning no value leave holes; the result
// has the length of arr.
func (e *Engine) Map(ctx context.Context, arr, fn, this jsv.Value) (jsv.Value, error) {
	if err := requireArray("map", arr); err != nil {
		return jsv.Value{}, err
	}
	if err := checkCallback("map", fn, this); err != nil {
		return jsv.Value{}, err
	}
	res, err := arr.Store().NewArray()
	if err != nil {
		return res, err
	}
	defer res.Release()
	err = e.visit(ctx, arr, fn, this, func(idx int64, v jsv.Value) error {
		if v.IsNone() {
			return nil
		}
		return res.Set(idx, v)
	})
	if err != nil {
		return jsv.Value{}, err
	}
	if err := res.SetLength(arr.Len()); err != nil {
		return jsv.Value{}, err
	}
	return res.Take(), nil
}

// ForEach calls fn for every present element of arr.
func (e *Engine) ForEach(ctx context.Context, arr, fn, this jsv.Value) error {
	if err := requireArray("forEach", arr); err != nil {
		return err
	}
	if err := checkCallback("forEach", fn, this); err != nil {
		return err
	}
	return e.visit(ctx, arr, fn, this, func(int64, jsv.Value) error { return nil })
}
