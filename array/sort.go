package array

import (
	"context"
	"errors"
	"fmt"

	"github.com/signadot/jsvar/debug"
	"github.com/signadot/jsvar/jsv"
)

// Sort orders the elements of arr in place and returns arr with a new lock.
//
// Without a comparator elements are ordered by jsv.LessEqual; with one, a
// sorts before b when cmp(a, b) is negative. Holes are not moved.
//
// ctx is checked before each comparison. When it is done the sort stops,
// leaving arr a permutation of its elements, and Sort returns arr along
// with an error wrapping jsv.ErrInterrupted.
func (e *Engine) Sort(ctx context.Context, arr, cmp jsv.Value) (jsv.Value, error) {
	if arr.IsString() {
		return jsv.Value{}, typeError("strings cannot be sorted")
	}
	if err := requireArray("sort", arr); err != nil {
		return jsv.Value{}, err
	}
	if !cmp.IsUndefined() && !cmp.IsFunction() {
		return jsv.Value{}, typeError("sort expects a compare function, got %s", cmp.Kind())
	}
	s := &sorter{ctx: ctx, e: e, arr: arr, cmp: cmp}
	head := arr.Iter()
	err := s.sort(head, arr.Count())
	head.Free()
	if debug.Sort() {
		debug.Logf("sort: %d comparisons\n", s.compares)
	}
	if err != nil {
		if cerr := ctx.Err(); cerr != nil && errors.Is(err, cerr) {
			e.log.Debug("sort interrupted", "comparisons", s.compares)
			return arr.Dup(), fmt.Errorf("%w: %w", jsv.ErrInterrupted, err)
		}
		return jsv.Value{}, err
	}
	return arr.Dup(), nil
}

type sorter struct {
	ctx      context.Context
	e        *Engine
	arr      jsv.Value
	cmp      jsv.Value
	compares int
}

// less reports whether a belongs in the low partition of pivot b.
func (s *sorter) less(a, b jsv.Value) (bool, error) {
	s.compares++
	if s.cmp.IsUndefined() {
		return jsv.LessEqual(a, b), nil
	}
	r, err := s.e.caller.Call(s.ctx, s.cmp, jsv.Value{}, a, b)
	if err != nil {
		return false, err
	}
	defer r.Release()
	return r.ToNumber() < 0, nil
}

// sort partitions the n elements from head around the first of them, then
// sorts both partitions.
func (s *sorter) sort(head *jsv.ArrayIterator, n int) error {
	if n < 2 {
		return nil
	}
	pivot := head.Clone().(*jsv.ArrayIterator)
	defer pivot.Free()
	pivotValue := pivot.Value()
	defer pivotValue.Release()

	it := head.Clone().(*jsv.ArrayIterator)
	defer it.Free()
	it.Next()

	nlo, nhigh := 0, 0
	for i := 1; i < n; i++ {
		if err := s.ctx.Err(); err != nil {
			return err
		}
		if err := s.step(it, pivot, pivotValue, &nlo, &nhigh); err != nil {
			return err
		}
		it.Next()
	}
	if err := s.sort(head, nlo); err != nil {
		return err
	}
	pivot.Next()
	return s.sort(pivot, nhigh)
}

// step compares the element under it with the pivot value. A low element
// moves into the pivot slot, the pivot moves up one, and the element that
// was there takes the slot under it.
func (s *sorter) step(it, pivot *jsv.ArrayIterator, pivotValue jsv.Value, nlo, nhigh *int) error {
	val := it.Value()
	defer val.Release()
	lo, err := s.less(val, pivotValue)
	if err != nil {
		return err
	}
	if !lo {
		*nhigh++
		return nil
	}
	*nlo++
	if err := s.arr.SetAt(pivot.Pos(), val); err != nil {
		return err
	}
	pivot.Next()
	next := pivot.Value()
	err = s.arr.SetAt(it.Pos(), next)
	next.Release()
	if err != nil {
		return err
	}
	return s.arr.SetAt(pivot.Pos(), pivotValue)
}
