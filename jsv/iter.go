package jsv

import (
	"fmt"
	"strconv"
)

// Pos is a position token naming a binding within a container. The zero
// Pos names no binding.
type Pos Ref

// Cursor is a position within a container or string.
//
// A cursor keeps the container and its current binding locked until Free,
// so a binding may be unlinked from the container while a cursor is on it
// and the cursor can still advance past it.
type Cursor interface {
	// HasElement reports whether the cursor is on an element.
	HasElement() bool
	// Next advances to the following element.
	Next()
	// Free releases the locks held by the cursor.
	Free()
	// Clone returns an independent cursor at the same position.
	Clone() Cursor
	// Value returns the current element, locked, or no value at the end.
	Value() Value
	// Pos returns the token for the current binding.
	Pos() Pos
}

// ArrayIterator walks the bindings of an array or object in order. Length
// markers are skipped.
type ArrayIterator struct {
	s   *Store
	c   Ref
	cur Ref
}

// Iter returns a cursor on the first element of a container. On a
// non-container the cursor is already at the end.
func (v Value) Iter() *ArrayIterator {
	it := &ArrayIterator{s: v.s}
	if !v.IsContainer() {
		return it
	}
	it.c = v.ref
	v.s.lock(it.c)
	it.seek(v.n().first)
	return it
}

// seek moves the cursor to the first non-marker binding from b on.
func (it *ArrayIterator) seek(b Ref) {
	s := it.s
	for b != NoRef && s.nodes[b].first == NoRef {
		b = s.nodes[b].next
	}
	s.lock(b)
	old := it.cur
	it.cur = b
	s.unlock(old)
}

func (it *ArrayIterator) HasElement() bool {
	return it.cur != NoRef
}

func (it *ArrayIterator) Next() {
	if it.cur == NoRef {
		return
	}
	it.seek(it.s.nodes[it.cur].next)
}

func (it *ArrayIterator) Free() {
	if it.s == nil {
		return
	}
	it.s.unlock(it.cur)
	it.s.unlock(it.c)
	it.cur, it.c = NoRef, NoRef
	it.s = nil
}

func (it *ArrayIterator) Clone() Cursor {
	return it.clone()
}

func (it *ArrayIterator) clone() *ArrayIterator {
	res := &ArrayIterator{s: it.s, c: it.c, cur: it.cur}
	if it.s != nil {
		it.s.lock(it.c)
		it.s.lock(it.cur)
	}
	return res
}

func (it *ArrayIterator) Value() Value {
	if it.cur == NoRef {
		return Value{}
	}
	return it.s.Lock(it.s.nodes[it.cur].first)
}

func (it *ArrayIterator) Pos() Pos {
	return Pos(it.cur)
}

// IndexInt returns the integer index of the current binding. It is false at
// the end and for object bindings.
func (it *ArrayIterator) IndexInt() (int64, bool) {
	if it.cur == NoRef || !it.s.nodes[it.cur].intKey {
		return 0, false
	}
	return it.s.nodes[it.cur].i, true
}

// Key returns the key of the current binding, formatting integer indices
// in decimal.
func (it *ArrayIterator) Key() string {
	if it.cur == NoRef {
		return ""
	}
	n := &it.s.nodes[it.cur]
	if n.intKey {
		return strconv.FormatInt(n.i, 10)
	}
	return n.s
}

// Index returns the index of the current binding as a new int node, or a
// string node for object keys.
func (it *ArrayIterator) Index() (Value, error) {
	if it.cur == NoRef {
		return Value{}, nil
	}
	if i, ok := it.IndexInt(); ok {
		return it.s.NewInt(i)
	}
	return it.s.NewString(it.s.nodes[it.cur].s)
}

// Iterator is a cursor over any iterable value: the elements of an array or
// object, or the character codes of a string.
type Iterator struct {
	arr *ArrayIterator

	s   *Store
	str Ref
	at  int
}

// NewIterator returns a cursor on the first element of v.
func NewIterator(v Value) (*Iterator, error) {
	switch v.Kind() {
	case ArrayKind, ObjectKind:
		return &Iterator{arr: v.Iter()}, nil
	case StringKind:
		v.s.lock(v.ref)
		return &Iterator{s: v.s, str: v.ref}, nil
	}
	return nil, fmt.Errorf("%w: cannot iterate %s", ErrTypeArgument, v.Kind())
}

func (it *Iterator) HasElement() bool {
	if it.arr != nil {
		return it.arr.HasElement()
	}
	return it.str != NoRef && it.at < len(it.s.nodes[it.str].s)
}

func (it *Iterator) Next() {
	if it.arr != nil {
		it.arr.Next()
		return
	}
	if it.HasElement() {
		it.at++
	}
}

func (it *Iterator) Free() {
	if it.arr != nil {
		it.arr.Free()
		return
	}
	if it.s != nil {
		it.s.unlock(it.str)
		it.s, it.str = nil, NoRef
	}
}

func (it *Iterator) Clone() Cursor {
	if it.arr != nil {
		return &Iterator{arr: it.arr.clone()}
	}
	if it.s != nil {
		it.s.lock(it.str)
	}
	return &Iterator{s: it.s, str: it.str, at: it.at}
}

// Value returns the current element. For strings it is a new int node
// holding the character code, or no value when the store is full.
func (it *Iterator) Value() Value {
	if it.arr != nil {
		return it.arr.Value()
	}
	if !it.HasElement() {
		return Value{}
	}
	v, err := it.s.NewInt(int64(it.s.nodes[it.str].s[it.at]))
	if err != nil {
		return Value{}
	}
	return v
}

// Pos returns the current binding. String positions have no binding, so
// mutating through them fails with ErrReadOnly.
func (it *Iterator) Pos() Pos {
	if it.arr != nil {
		return it.arr.Pos()
	}
	return Pos(NoRef)
}

// Array returns the underlying array iterator, or nil when iterating a
// string.
func (it *Iterator) Array() *ArrayIterator {
	return it.arr
}
