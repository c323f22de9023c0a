package array

import (
	"fmt"

	"github.com/signadot/jsvar/debug"
	"github.com/signadot/jsvar/jsv"
)

// Splice removes howMany elements from arr starting at index, inserts items
// in their place and returns the removed elements as a new array.
//
// A negative index counts back from the length. A howMany which is not an
// integer removes everything from index on. Elements after the removed
// range are renumbered so that they follow the inserted items.
func (e *Engine) Splice(arr, index, howMany jsv.Value, items ...jsv.Value) (jsv.Value, error) {
	if err := requireArray("splice", arr); err != nil {
		return jsv.Value{}, err
	}
	n := arr.Len()
	start := normIndex(index, n, 0)
	count := n - start
	if howMany.IsInt() {
		count = min(max(howMany.Int(), 0), n-start)
	}
	if debug.Splice() {
		debug.Logf("splice len=%d start=%d count=%d items=%d\n", n, start, count, len(items))
	}
	st := arr.Store()
	res, err := st.NewArray()
	if err != nil {
		return res, err
	}
	defer res.Release()

	// A trailing marker would sit between the removed range and the
	// insertion point. The final SetLength puts the length back.
	if _, err := arr.DropMarker(); err != nil {
		return jsv.Value{}, fmt.Errorf("splice: %w", err)
	}
	it := arr.Iter()
	defer it.Free()
	for it.HasElement() {
		i, _ := it.IndexInt()
		if i >= start {
			break
		}
		it.Next()
	}
	for it.HasElement() {
		i, _ := it.IndexInt()
		if i >= start+count {
			break
		}
		val := it.Value()
		err := res.Set(i-start, val)
		val.Release()
		if err != nil {
			return jsv.Value{}, e.spliceFailed(arr, n, err)
		}
		if err := arr.RemoveAt(it); err != nil {
			return jsv.Value{}, e.spliceFailed(arr, n, err)
		}
	}
	if err := res.SetLength(count); err != nil {
		return jsv.Value{}, e.spliceFailed(arr, n, err)
	}

	shift := int64(len(items)) - count
	if err := arr.Renumber(it.Pos(), shift); err != nil {
		return jsv.Value{}, e.spliceFailed(arr, n, err)
	}
	for k, item := range items {
		if err := arr.InsertBefore(it.Pos(), start+int64(k), item); err != nil {
			return jsv.Value{}, e.spliceFailed(arr, n+shift, err)
		}
	}
	if err := arr.SetLength(n + shift); err != nil {
		return jsv.Value{}, err
	}
	return res.Take(), nil
}

// spliceFailed restores the length of a partly spliced array to n so that
// it stays consistent with the bindings it still holds.
func (e *Engine) spliceFailed(arr jsv.Value, n int64, err error) error {
	if arr.Len() < n {
		if lerr := arr.SetLength(n); lerr != nil {
			e.log.Debug("splice: could not restore length", "length", n, "error", lerr)
		}
	}
	return fmt.Errorf("splice: %w", err)
}
