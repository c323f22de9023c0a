package array

import (
	"github.com/signadot/jsvar/jsv"
)

// Slice returns a new dense array of the present elements of arr whose
// index lies in [start, end). start defaults to 0 and end to the length;
// negative positions count back from the length.
func (e *Engine) Slice(arr, start, end jsv.Value) (jsv.Value, error) {
	if err := requireArray("slice", arr); err != nil {
		return jsv.Value{}, err
	}
	n := arr.Len()
	from := normIndex(start, n, 0)
	to := normIndex(end, n, n)

	res, err := arr.Store().NewArray()
	if err != nil {
		return res, err
	}
	defer res.Release()
	it := arr.Iter()
	defer it.Free()
	for ; it.HasElement(); it.Next() {
		i, _ := it.IndexInt()
		if i < from {
			continue
		}
		if i >= to {
			break
		}
		val := it.Value()
		_, err := res.Push(val)
		val.Release()
		if err != nil {
			return jsv.Value{}, err
		}
	}
	return res.Take(), nil
}

// Concat returns a new array holding the elements of arr followed by
// items. Each of these that is itself an array contributes its present
// elements instead.
func (e *Engine) Concat(arr jsv.Value, items ...jsv.Value) (jsv.Value, error) {
	if err := requireArray("concat", arr); err != nil {
		return jsv.Value{}, err
	}
	res, err := arr.Store().NewArray()
	if err != nil {
		return res, err
	}
	defer res.Release()
	it := arr.Iter()
	defer it.Free()
	for ; it.HasElement(); it.Next() {
		val := it.Value()
		err := appendFlat(res, val)
		val.Release()
		if err != nil {
			return jsv.Value{}, err
		}
	}
	for _, item := range items {
		if err := appendFlat(res, item); err != nil {
			return jsv.Value{}, err
		}
	}
	return res.Take(), nil
}

func appendFlat(res, v jsv.Value) error {
	if !v.IsArray() {
		_, err := res.Push(v)
		return err
	}
	it := v.Iter()
	defer it.Free()
	for ; it.HasElement(); it.Next() {
		el := it.Value()
		_, err := res.Push(el)
		el.Release()
		if err != nil {
			return err
		}
	}
	return nil
}
