package array

import (
	"fmt"

	"github.com/signadot/jsvar/jsv"
)

// IndexOf returns the index of the first element loosely equal to v, or -1.
func (e *Engine) IndexOf(arr, v jsv.Value) int64 {
	i, ok := arr.IndexOf(v, false)
	if !ok {
		return -1
	}
	return i
}

// Join renders the elements of arr separated by sep, which defaults to
// ",". Holes, undefined and null render as empty strings.
func (e *Engine) Join(arr, sep jsv.Value) (jsv.Value, error) {
	if err := requireArray("join", arr); err != nil {
		return jsv.Value{}, err
	}
	s := ","
	if !sep.IsUndefined() {
		s = sep.ToString()
	}
	return arr.Join(s)
}

// Push appends items in order and returns the new length.
func (e *Engine) Push(arr jsv.Value, items ...jsv.Value) (int64, error) {
	if err := requireArray("push", arr); err != nil {
		return 0, err
	}
	n := arr.Len()
	for _, item := range items {
		var err error
		n, err = arr.Push(item)
		if err != nil {
			return n, fmt.Errorf("push: %w", err)
		}
	}
	return n, nil
}

// Pop removes and returns the last element. It returns no value for an
// empty array.
func (e *Engine) Pop(arr jsv.Value) jsv.Value {
	return arr.Pop()
}

// IsArray reports whether v is an array.
func (e *Engine) IsArray(v jsv.Value) bool {
	return v.IsArray()
}

// Construct builds a new array. A single non-negative integer argument
// gives a sparse array of that length with no elements; any other
// arguments become the elements.
func Construct(st *jsv.Store, args ...jsv.Value) (jsv.Value, error) {
	res, err := st.NewArray()
	if err != nil {
		return res, err
	}
	defer res.Release()
	if len(args) == 1 && args[0].IsInt() && args[0].Int() >= 0 {
		if err := res.SetLength(args[0].Int()); err != nil {
			return jsv.Value{}, err
		}
		return res.Take(), nil
	}
	for _, a := range args {
		if _, err := res.Push(a); err != nil {
			return jsv.Value{}, err
		}
	}
	return res.Take(), nil
}
