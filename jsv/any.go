package jsv

import (
	"fmt"
	"math"
	"sort"
)

// KeyVal is one entry of an ordered object given to FromAny.
type KeyVal struct {
	Key string
	Val any
}

// MaxAnyHoles bounds the holes ToAny materializes in one conversion. Holes
// take no room in a Store but become nil slots in a []any.
const MaxAnyHoles = 1 << 20

// ToAny converts v to plain Go data: nil for undefined and null, bool,
// int, float64, string, []any for arrays (holes are nil) and map[string]any
// for objects. Functions convert to their Callable.
//
// Arrays with more than MaxAnyHoles holes in all give ErrOutOfMemory.
func ToAny(v Value) (any, error) {
	c := &anyConv{holes: MaxAnyHoles}
	return c.conv(v)
}

// MustAny is ToAny for values known to be small. It panics on error.
func MustAny(v Value) any {
	res, err := ToAny(v)
	if err != nil {
		panic(err)
	}
	return res
}

type anyConv struct {
	holes int64
}

func (c *anyConv) conv(v Value) (any, error) {
	switch v.Kind() {
	case UndefinedKind, NullKind:
		return nil, nil
	case BoolKind:
		return v.Bool(), nil
	case IntKind:
		return int(v.Int()), nil
	case FloatKind:
		return v.Float(), nil
	case StringKind:
		return v.Str(), nil
	case ArrayKind:
		n := v.Len()
		holes := n - int64(v.Count())
		if holes > c.holes {
			return nil, fmt.Errorf("%w: array of length %d has %d holes", ErrOutOfMemory, n, holes)
		}
		c.holes -= holes
		res := make([]any, n)
		s := v.s
		for b := v.n().first; b != NoRef; b = s.nodes[b].next {
			el, err := c.conv(Value{s: s, ref: s.nodes[b].first})
			if err != nil {
				return nil, err
			}
			res[s.nodes[b].i] = el
		}
		return res, nil
	case ObjectKind:
		res := map[string]any{}
		s := v.s
		for b := v.n().first; b != NoRef; b = s.nodes[b].next {
			if s.nodes[b].first == NoRef {
				continue
			}
			el, err := c.conv(Value{s: s, ref: s.nodes[b].first})
			if err != nil {
				return nil, err
			}
			res[s.nodes[b].s] = el
		}
		return res, nil
	case FunctionKind:
		return v.Callable(), nil
	}
	return nil, nil
}

// FromAny builds a value in s from plain Go data. Map keys are bound in
// sorted order; use []KeyVal to choose the order. A Value is returned with
// a new lock.
func FromAny(s *Store, x any) (Value, error) {
	switch y := x.(type) {
	case nil:
		return s.NewNull()
	case Value:
		return y.Dup(), nil
	case bool:
		return s.NewBool(y)
	case int:
		return s.NewInt(int64(y))
	case int8:
		return s.NewInt(int64(y))
	case int16:
		return s.NewInt(int64(y))
	case int32:
		return s.NewInt(int64(y))
	case int64:
		return s.NewInt(y)
	case uint:
		return fromUint(s, uint64(y))
	case uint8:
		return s.NewInt(int64(y))
	case uint16:
		return s.NewInt(int64(y))
	case uint32:
		return s.NewInt(int64(y))
	case uint64:
		return fromUint(s, y)
	case float32:
		return s.NewFloat(float64(y))
	case float64:
		return s.NewFloat(y)
	case string:
		return s.NewString(y)
	case Callable:
		return s.NewFunction(y)
	case []any:
		return fromSlice(s, y)
	case map[string]any:
		keys := make([]string, 0, len(y))
		for k := range y {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		kvs := make([]KeyVal, len(keys))
		for i, k := range keys {
			kvs[i] = KeyVal{Key: k, Val: y[k]}
		}
		return fromKeyVals(s, kvs)
	case []KeyVal:
		return fromKeyVals(s, y)
	}
	return Value{}, fmt.Errorf("%w: cannot convert %T", ErrTypeArgument, x)
}

func fromUint(s *Store, u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return s.NewFloat(float64(u))
	}
	return s.NewInt(int64(u))
}

func fromSlice(s *Store, xs []any) (Value, error) {
	res, err := s.NewArray()
	if err != nil {
		return res, err
	}
	defer res.Release()
	for _, x := range xs {
		el, err := FromAny(s, x)
		if err != nil {
			return Value{}, err
		}
		_, err = res.Push(el)
		el.Release()
		if err != nil {
			return Value{}, err
		}
	}
	return res.Take(), nil
}

func fromKeyVals(s *Store, kvs []KeyVal) (Value, error) {
	res, err := s.NewObject()
	if err != nil {
		return res, err
	}
	defer res.Release()
	for _, kv := range kvs {
		el, err := FromAny(s, kv.Val)
		if err != nil {
			return Value{}, err
		}
		err = res.ObjectSet(kv.Key, el)
		el.Release()
		if err != nil {
			return Value{}, err
		}
	}
	return res.Take(), nil
}
