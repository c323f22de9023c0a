package jsv

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func collect(c Cursor) []any {
	var res []any
	for ; c.HasElement(); c.Next() {
		v := c.Value()
		res = append(res, MustAny(v))
		v.Release()
	}
	return res
}

func TestIterSkipsMarkers(t *testing.T) {
	st := newTestStore(t, 64)
	arr := mkArray(t, st)
	if err := arr.SetLength(5); err != nil {
		t.Fatal(err)
	}
	it := arr.Iter()
	if it.HasElement() {
		t.Error("sparse array has an element")
	}
	it.Free()
	v, _ := st.NewInt(1)
	if err := arr.Set(2, v); err != nil {
		t.Fatal(err)
	}
	v.Release()
	it = arr.Iter()
	if i, ok := it.IndexInt(); !ok || i != 2 {
		t.Errorf("index %d %t", i, ok)
	}
	if diff := cmp.Diff([]any{1}, collect(it)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	it.Free()
	arr.Release()
	checkUsed(t, st, 0)
}

func TestRemoveAtWhileIterating(t *testing.T) {
	st := newTestStore(t, 64)
	arr := mkArray(t, st, 1, 2, 3, 4, 5)
	it := arr.Iter()
	for it.HasElement() {
		v := it.Value()
		odd := v.Int()%2 == 1
		v.Release()
		if odd {
			if err := arr.RemoveAt(it); err != nil {
				t.Fatal(err)
			}
			continue
		}
		it.Next()
	}
	it.Free()
	if diff := cmp.Diff([]any{nil, 2, nil, 4}, MustAny(arr)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	other := mkArray(t, st, 1)
	it = other.Iter()
	if err := arr.RemoveAt(it); !errors.Is(err, ErrTypeArgument) {
		t.Errorf("foreign cursor: %v", err)
	}
	it.Free()
	other.Release()
	arr.Release()
	checkUsed(t, st, 0)
}

func TestCursorOutlivesUnlink(t *testing.T) {
	st := newTestStore(t, 64)
	arr := mkArray(t, st, 1, 2, 3)
	it := arr.Iter()
	it.Next()
	if err := arr.SetLength(1); err != nil {
		t.Fatal(err)
	}
	v := it.Value()
	if v.Int() != 2 {
		t.Errorf("cursor value %s", v)
	}
	v.Release()
	it.Next()
	if it.HasElement() {
		t.Error("cursor reached a truncated binding")
	}
	it.Free()
	arr.Release()
	checkUsed(t, st, 0)
}

func TestClone(t *testing.T) {
	st := newTestStore(t, 64)
	arr := mkArray(t, st, "a", "b", "c")
	it := arr.Iter()
	it.Next()
	c := it.Clone()
	it.Next()
	if diff := cmp.Diff([]any{"b", "c"}, collect(c)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"c"}, collect(it)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	c.Free()
	it.Free()
	arr.Release()
	checkUsed(t, st, 0)
}

func TestSetAt(t *testing.T) {
	st := newTestStore(t, 64)
	arr := mkArray(t, st, 1, 2)
	it := arr.Iter()
	it.Next()
	v, _ := st.NewString("x")
	if err := arr.SetAt(it.Pos(), v); err != nil {
		t.Fatal(err)
	}
	v.Release()
	it.Free()
	if diff := cmp.Diff([]any{1, "x"}, MustAny(arr)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if err := arr.SetAt(Pos(NoRef), v); !errors.Is(err, ErrReadOnly) {
		t.Errorf("SetAt end: %v", err)
	}
	arr.Release()
	checkUsed(t, st, 0)
}

func TestStringIterator(t *testing.T) {
	st := newTestStore(t, 64)
	s, _ := st.NewString("AB")
	it, err := NewIterator(s)
	if err != nil {
		t.Fatal(err)
	}
	if it.Pos() != Pos(NoRef) {
		t.Error("string position names a binding")
	}
	c := it.Clone()
	if diff := cmp.Diff([]any{65, 66}, collect(it)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{65, 66}, collect(c)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	c.Free()
	it.Free()
	s.Release()

	n, _ := st.NewInt(1)
	if _, err := NewIterator(n); !errors.Is(err, ErrTypeArgument) {
		t.Errorf("iterate int: %v", err)
	}
	n.Release()
	checkUsed(t, st, 0)
}

func TestObjectIterator(t *testing.T) {
	st := newTestStore(t, 64)
	obj, _ := FromAny(st, []KeyVal{{Key: "k", Val: 1}, {Key: "j", Val: 2}})
	it, err := NewIterator(obj)
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for a := it.Array(); a.HasElement(); a.Next() {
		keys = append(keys, a.Key())
	}
	if diff := cmp.Diff([]string{"k", "j"}, keys); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	it.Free()
	obj.Release()
	checkUsed(t, st, 0)
}
