package jsv

import (
	"math"
)

// Value is a locked handle on a node.
//
// Every Value obtained from a Store, a container or a cursor carries one lock
// which keeps the node alive independently of graph ownership. Release gives
// the lock back. Take moves it out of a variable, which is the way to return
// a value built under a deferred Release:
//
//	res, err := st.NewArray()
//	if err != nil {
//		return jsv.Value{}, err
//	}
//	defer res.Release()
//	...
//	return res.Take(), nil
//
// The zero Value is "no value", distinct from a node of kind UndefinedKind.
type Value struct {
	s   *Store
	ref Ref
}

// Release gives back the lock held by v and clears v. Releasing the zero
// Value does nothing.
func (v *Value) Release() {
	if v.s != nil && v.ref != NoRef {
		v.s.unlock(v.ref)
	}
	*v = Value{}
}

// Take returns v's handle and clears v, transferring the lock to the caller.
func (v *Value) Take() Value {
	res := *v
	*v = Value{}
	return res
}

// Dup returns a new handle on the same node with its own lock.
func (v Value) Dup() Value {
	if v.IsNone() {
		return Value{}
	}
	v.s.lock(v.ref)
	return v
}

func (v Value) IsNone() bool {
	return v.s == nil || v.ref == NoRef
}

func (v Value) Ref() Ref {
	return v.ref
}

func (v Value) Store() *Store {
	return v.s
}

func (v Value) n() *node {
	return &v.s.nodes[v.ref]
}

// Kind returns the kind of v. The zero Value reports UndefinedKind.
func (v Value) Kind() Kind {
	if v.IsNone() {
		return UndefinedKind
	}
	return v.n().kind
}

// IsUndefined is true for the zero Value and for undefined nodes.
func (v Value) IsUndefined() bool { return v.Kind() == UndefinedKind }
func (v Value) IsNull() bool      { return v.Kind() == NullKind }
func (v Value) IsBool() bool      { return v.Kind() == BoolKind }
func (v Value) IsInt() bool       { return v.Kind() == IntKind }
func (v Value) IsFloat() bool     { return v.Kind() == FloatKind }
func (v Value) IsNumeric() bool   { return v.Kind().IsNumeric() }
func (v Value) IsString() bool    { return v.Kind() == StringKind }
func (v Value) IsArray() bool     { return v.Kind() == ArrayKind }
func (v Value) IsObject() bool    { return v.Kind() == ObjectKind }
func (v Value) IsFunction() bool  { return v.Kind() == FunctionKind }
func (v Value) IsContainer() bool { return v.Kind().IsContainer() }

// Int returns the payload of an int or bool node, and 0 otherwise.
func (v Value) Int() int64 {
	switch v.Kind() {
	case IntKind, BoolKind:
		return v.n().i
	}
	return 0
}

// Float returns the payload of a float node, and NaN otherwise.
func (v Value) Float() float64 {
	if v.Kind() != FloatKind {
		return math.NaN()
	}
	return v.n().f
}

// Str returns the payload of a string node, and "" otherwise.
func (v Value) Str() string {
	if v.Kind() != StringKind {
		return ""
	}
	return v.n().s
}

func (v Value) Bool() bool {
	return v.Kind() == BoolKind && v.n().i != 0
}

// Callable returns the implementation of a function node, or nil.
func (v Value) Callable() Callable {
	if v.Kind() != FunctionKind {
		return nil
	}
	return v.n().fn
}

func (v Value) String() string {
	return inspect(v)
}

func (s *Store) newScalar(k Kind, cost int) (Value, error) {
	r, err := s.alloc(k, cost)
	if err != nil {
		return Value{}, err
	}
	return Value{s: s, ref: r}, nil
}

func (s *Store) NewUndefined() (Value, error) {
	return s.newScalar(UndefinedKind, 1)
}

func (s *Store) NewNull() (Value, error) {
	return s.newScalar(NullKind, 1)
}

func (s *Store) NewBool(b bool) (Value, error) {
	v, err := s.newScalar(BoolKind, 1)
	if err != nil {
		return v, err
	}
	if b {
		v.n().i = 1
	}
	return v, nil
}

func (s *Store) NewInt(i int64) (Value, error) {
	v, err := s.newScalar(IntKind, 1)
	if err != nil {
		return v, err
	}
	v.n().i = i
	return v, nil
}

func (s *Store) NewFloat(f float64) (Value, error) {
	v, err := s.newScalar(FloatKind, 1)
	if err != nil {
		return v, err
	}
	v.n().f = f
	return v, nil
}

// NewString allocates a string node. Its cost grows with the length of str
// in units of the configured fragment size.
func (s *Store) NewString(str string) (Value, error) {
	v, err := s.newScalar(StringKind, s.stringCost(str))
	if err != nil {
		return v, err
	}
	v.n().s = str
	return v, nil
}

func (s *Store) NewArray() (Value, error) {
	return s.newScalar(ArrayKind, 1)
}

func (s *Store) NewObject() (Value, error) {
	return s.newScalar(ObjectKind, 1)
}

// NewFunction allocates a function reference whose calls are served by c.
func (s *Store) NewFunction(c Callable) (Value, error) {
	v, err := s.newScalar(FunctionKind, 1)
	if err != nil {
		return v, err
	}
	v.n().fn = c
	return v, nil
}

// newIndexName allocates an index binding for val. The binding holds one
// lock and a graph reference on val.
func (s *Store) newIndexName(idx int64, val Ref) (Ref, error) {
	r, err := s.alloc(NameKind, 1)
	if err != nil {
		return NoRef, err
	}
	n := &s.nodes[r]
	n.intKey = true
	n.i = idx
	n.first = val
	s.ref(val)
	return r, nil
}

func (s *Store) newKeyName(key string, val Ref) (Ref, error) {
	r, err := s.alloc(NameKind, s.stringCost(key))
	if err != nil {
		return NoRef, err
	}
	n := &s.nodes[r]
	n.s = key
	n.first = val
	s.ref(val)
	return r, nil
}
