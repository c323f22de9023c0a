package jsv

import (
	"fmt"
	"strings"
)

// link inserts binding b into container c just before binding before, or at
// the end when before is NoRef. b gains an owner; before changes owner from
// its previous sibling (or c) to b.
func (s *Store) link(c, b, before Ref) {
	cn := &s.nodes[c]
	bn := &s.nodes[b]
	s.ref(b)
	bn.owner = c
	if before == NoRef {
		prev := cn.last
		bn.prev = prev
		bn.next = NoRef
		if prev == NoRef {
			cn.first = b
		} else {
			s.nodes[prev].next = b
		}
		cn.last = b
		return
	}
	prev := s.nodes[before].prev
	bn.prev = prev
	bn.next = before
	s.nodes[before].prev = b
	if prev == NoRef {
		cn.first = b
	} else {
		s.nodes[prev].next = b
	}
}

// unlink removes binding b from container c. b's next sibling changes owner
// from b to b's previous sibling (or c), and b loses its owner.
func (s *Store) unlink(c, b Ref) error {
	bn := &s.nodes[b]
	prev, next := bn.prev, bn.next
	if prev == NoRef && s.nodes[c].first != b {
		return errNotChild
	}
	if prev == NoRef {
		s.nodes[c].first = next
	} else {
		s.nodes[prev].next = next
	}
	if next == NoRef {
		s.nodes[c].last = prev
	} else {
		s.nodes[next].prev = prev
	}
	bn.prev, bn.next, bn.owner = NoRef, NoRef, NoRef
	s.unref(b)
	return nil
}

// binding returns the binding named by pos if it is linked into v.
func (v Value) binding(pos Pos) (Ref, error) {
	b := Ref(pos)
	if int(b) >= len(v.s.nodes) {
		return NoRef, fmt.Errorf("%w: position %d out of range", ErrTypeArgument, b)
	}
	n := &v.s.nodes[b]
	if !n.inUse || n.kind != NameKind {
		return NoRef, fmt.Errorf("%w: position %d is not a binding", ErrTypeArgument, b)
	}
	if n.owner != v.ref {
		return NoRef, fmt.Errorf("%w: position %d belongs to another container", ErrTypeArgument, b)
	}
	return b, nil
}

// setBound replaces the value bound by binding b.
func (s *Store) setBound(b, val Ref) {
	n := &s.nodes[b]
	old := n.first
	s.ref(val)
	n.first = val
	s.unref(old)
}

func (v Value) requireArray() error {
	if !v.IsArray() {
		return fmt.Errorf("%w: %s is not an array", ErrNotContainer, v.Kind())
	}
	return nil
}

func (v Value) requireContainer() error {
	if !v.IsContainer() {
		return fmt.Errorf("%w: %s", ErrNotContainer, v.Kind())
	}
	return nil
}

// Len returns the derived length of an array: one more than its highest
// bound index, or 0. Non-arrays have length 0.
func (v Value) Len() int64 {
	if !v.IsArray() {
		return 0
	}
	last := v.n().last
	if last == NoRef {
		return 0
	}
	return v.s.nodes[last].i + 1
}

// Count returns the number of present elements of a container. Holes and
// length markers are not counted.
func (v Value) Count() int {
	if !v.IsContainer() {
		return 0
	}
	n := 0
	for b := v.n().first; b != NoRef; b = v.s.nodes[b].next {
		if v.s.nodes[b].first != NoRef {
			n++
		}
	}
	return n
}

func (v Value) findIndex(idx int64) Ref {
	for b := v.n().first; b != NoRef; b = v.s.nodes[b].next {
		bi := v.s.nodes[b].i
		if bi == idx {
			return b
		}
		if bi > idx {
			break
		}
	}
	return NoRef
}

// Get returns the element at idx, or no value for a hole.
func (v Value) Get(idx int64) Value {
	if !v.IsArray() {
		return Value{}
	}
	b := v.findIndex(idx)
	if b == NoRef {
		return Value{}
	}
	return v.s.Lock(v.s.nodes[b].first)
}

// Set binds val at idx, replacing any element already there. Setting no
// value leaves a hole which still counts towards the length.
func (v Value) Set(idx int64, val Value) error {
	if err := v.requireArray(); err != nil {
		return err
	}
	if idx < 0 {
		return fmt.Errorf("%w: negative index %d", ErrTypeArgument, idx)
	}
	s := v.s
	b := v.n().last
	for b != NoRef && s.nodes[b].i > idx {
		b = s.nodes[b].prev
	}
	if b != NoRef && s.nodes[b].i == idx {
		s.setBound(b, val.ref)
		return nil
	}
	before := v.n().first
	if b != NoRef {
		before = s.nodes[b].next
	}
	name, err := s.newIndexName(idx, val.ref)
	if err != nil {
		return err
	}
	if b != NoRef && before == NoRef && s.nodes[b].first == NoRef {
		// the new binding takes over the length from a trailing marker
		if err := s.unlink(v.ref, b); err != nil {
			s.unlock(name)
			return err
		}
	}
	s.link(v.ref, name, before)
	s.unlock(name)
	return nil
}

// Push appends val at the current length and returns the new length.
func (v Value) Push(val Value) (int64, error) {
	if err := v.requireArray(); err != nil {
		return 0, err
	}
	idx := v.Len()
	name, err := v.s.newIndexName(idx, val.ref)
	if err != nil {
		return idx, err
	}
	if last := v.n().last; last != NoRef && v.s.nodes[last].first == NoRef {
		// a trailing marker is superseded by the new last binding
		if err := v.s.unlink(v.ref, last); err != nil {
			v.s.unlock(name)
			return idx, err
		}
	}
	v.s.link(v.ref, name, NoRef)
	v.s.unlock(name)
	return idx + 1, nil
}

// Pop removes the element with the highest index and returns it. It
// returns no value when the array is empty. Popping a trailing hole
// returns undefined and leaves the length one shorter.
func (v Value) Pop() Value {
	if !v.IsArray() {
		return Value{}
	}
	s := v.s
	last := v.n().last
	if last == NoRef {
		return Value{}
	}
	idx := s.nodes[last].i
	res := s.Lock(s.nodes[last].first)
	s.lock(last)
	if err := s.unlink(v.ref, last); err != nil {
		s.unlock(last)
		res.Release()
		return Value{}
	}
	s.unlock(last)
	if v.Len() < idx {
		if err := v.SetLength(idx); err != nil {
			s.log.Debug("pop: could not keep length", "error", err)
		}
	}
	if res.IsNone() {
		u, err := s.NewUndefined()
		if err != nil {
			return Value{}
		}
		return u
	}
	return res
}

// Last returns the element with the highest index.
func (v Value) Last() Value {
	if !v.IsArray() {
		return Value{}
	}
	last := v.n().last
	if last == NoRef {
		return Value{}
	}
	return v.s.Lock(v.s.nodes[last].first)
}

// SetLength truncates or extends an array to length n. Extending adds a
// length marker at n-1 and no elements. A marker left short of n is
// dropped first.
func (v Value) SetLength(n int64) error {
	if err := v.requireArray(); err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("%w: negative length %d", ErrTypeArgument, n)
	}
	s := v.s
	for {
		last := v.n().last
		if last == NoRef {
			break
		}
		ln := &s.nodes[last]
		if ln.i < n && (ln.first != NoRef || ln.i == n-1) {
			break
		}
		if err := s.unlink(v.ref, last); err != nil {
			return err
		}
	}
	if n == 0 || v.Len() == n {
		return nil
	}
	marker, err := s.newIndexName(n-1, NoRef)
	if err != nil {
		return err
	}
	s.link(v.ref, marker, NoRef)
	s.unlock(marker)
	return nil
}

// DropMarker removes a trailing length marker, so the length falls to one
// past the highest element. It reports whether there was a marker.
func (v Value) DropMarker() (bool, error) {
	if err := v.requireArray(); err != nil {
		return false, err
	}
	last := v.n().last
	if last == NoRef || v.s.nodes[last].first != NoRef {
		return false, nil
	}
	if err := v.s.unlink(v.ref, last); err != nil {
		return false, err
	}
	return true, nil
}

// ObjectGet returns the value bound to key, or no value.
func (v Value) ObjectGet(key string) Value {
	if !v.IsObject() {
		return Value{}
	}
	for b := v.n().first; b != NoRef; b = v.s.nodes[b].next {
		if v.s.nodes[b].s == key {
			return v.s.Lock(v.s.nodes[b].first)
		}
	}
	return Value{}
}

// ObjectSet binds val to key, appending a binding when key is new.
func (v Value) ObjectSet(key string, val Value) error {
	if !v.IsObject() {
		return fmt.Errorf("%w: %s is not an object", ErrNotContainer, v.Kind())
	}
	s := v.s
	for b := v.n().first; b != NoRef; b = s.nodes[b].next {
		if s.nodes[b].s == key {
			s.setBound(b, val.ref)
			return nil
		}
	}
	name, err := s.newKeyName(key, val.ref)
	if err != nil {
		return err
	}
	s.link(v.ref, name, NoRef)
	s.unlock(name)
	return nil
}

// Keys returns the keys of an object in binding order.
func (v Value) Keys() []string {
	if !v.IsObject() {
		return nil
	}
	var res []string
	for b := v.n().first; b != NoRef; b = v.s.nodes[b].next {
		if v.s.nodes[b].first != NoRef {
			res = append(res, v.s.nodes[b].s)
		}
	}
	return res
}

// InsertBefore links val under index idx just before the binding at pos,
// or at the end when pos is the zero Pos. idx must be greater than the
// index of the binding that will precede it; bindings from pos onwards are
// expected to be renumbered by the caller.
func (v Value) InsertBefore(pos Pos, idx int64, val Value) error {
	if err := v.requireArray(); err != nil {
		return err
	}
	s := v.s
	before := Ref(pos)
	if before != NoRef {
		var err error
		if before, err = v.binding(pos); err != nil {
			return err
		}
	}
	prev := v.n().last
	if before != NoRef {
		prev = s.nodes[before].prev
	}
	if prev != NoRef && s.nodes[prev].i >= idx {
		return fmt.Errorf("%w: index %d does not follow %d", ErrTypeArgument, idx, s.nodes[prev].i)
	}
	name, err := s.newIndexName(idx, val.ref)
	if err != nil {
		return err
	}
	s.link(v.ref, name, before)
	s.unlock(name)
	return nil
}

// RemoveAt unlinks the binding under it. The cursor is advanced first, so
// it stays usable and names the following element afterwards.
func (v Value) RemoveAt(it *ArrayIterator) error {
	if err := v.requireContainer(); err != nil {
		return err
	}
	if it.c != v.ref {
		return fmt.Errorf("%w: cursor walks another container", ErrTypeArgument)
	}
	b := it.cur
	if b == NoRef {
		return nil
	}
	s := v.s
	s.lock(b)
	it.Next()
	err := s.unlink(v.ref, b)
	s.unlock(b)
	return err
}

// SetAt replaces the value bound at pos with val. The slot takes its own
// reference on val; the previous occupant loses one.
func (v Value) SetAt(pos Pos, val Value) error {
	if err := v.requireContainer(); err != nil {
		return err
	}
	if Ref(pos) == NoRef {
		return fmt.Errorf("%w: no binding at cursor", ErrReadOnly)
	}
	b, err := v.binding(pos)
	if err != nil {
		return err
	}
	v.s.setBound(b, val.ref)
	return nil
}

// Renumber adds shift to the index of every binding from pos to the end.
func (v Value) Renumber(pos Pos, shift int64) error {
	if err := v.requireArray(); err != nil {
		return err
	}
	s := v.s
	if Ref(pos) == NoRef || shift == 0 {
		return nil
	}
	from, err := v.binding(pos)
	if err != nil {
		return err
	}
	if prev := s.nodes[from].prev; prev != NoRef && s.nodes[prev].i >= s.nodes[from].i+shift {
		return fmt.Errorf("%w: shift %d breaks index order", ErrTypeArgument, shift)
	}
	for b := from; b != NoRef; b = s.nodes[b].next {
		s.nodes[b].i += shift
	}
	return nil
}

// IndexOf returns the index of the first element equal to val, using
// strict equality when exact is set and loose equality otherwise.
func (v Value) IndexOf(val Value, exact bool) (int64, bool) {
	if !v.IsArray() {
		return -1, false
	}
	s := v.s
	for b := v.n().first; b != NoRef; b = s.nodes[b].next {
		el := Value{s: s, ref: s.nodes[b].first}
		if el.IsNone() {
			continue
		}
		eq := false
		if exact {
			eq = StrictEqual(el, val)
		} else {
			eq = LooseEqual(el, val)
		}
		if eq {
			return s.nodes[b].i, true
		}
	}
	return -1, false
}

// Join concatenates the string forms of the elements with sep between
// every slot up to the length. Holes, undefined and null give "".
func (v Value) Join(sep string) (Value, error) {
	if err := v.requireArray(); err != nil {
		return Value{}, err
	}
	return v.s.NewString(v.joinString(sep))
}

func (v Value) joinString(sep string) string {
	s := v.s
	buf := &strings.Builder{}
	var at int64
	for b := v.n().first; b != NoRef; b = s.nodes[b].next {
		idx := s.nodes[b].i
		for ; at < idx; at++ {
			buf.WriteString(sep)
		}
		el := Value{s: s, ref: s.nodes[b].first}
		switch el.Kind() {
		case UndefinedKind, NullKind:
		default:
			buf.WriteString(el.ToString())
		}
	}
	return buf.String()
}
