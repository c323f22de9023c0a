package jsv

import (
	"math"
	"strconv"
	"strings"
)

// ToString converts v to its string form as the runtime presents values to
// scripts: arrays join with ",", objects are "[object Object]".
func (v Value) ToString() string {
	switch v.Kind() {
	case UndefinedKind:
		return "undefined"
	case NullKind:
		return "null"
	case BoolKind:
		if v.Bool() {
			return "true"
		}
		return "false"
	case IntKind:
		return strconv.FormatInt(v.Int(), 10)
	case FloatKind:
		return FormatFloat(v.Float())
	case StringKind:
		return v.Str()
	case ArrayKind:
		return v.joinString(",")
	case ObjectKind:
		return "[object Object]"
	case FunctionKind:
		return "function () { [native code] }"
	}
	return ""
}

// FormatFloat formats f the way numbers print in scripts: integral values
// without a fraction, NaN and the infinities by name.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		return strings.Replace(s, "e-0", "e-", 1)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ToNumber converts v to a float. Strings are parsed after trimming white
// space; the empty string is 0.
func (v Value) ToNumber() float64 {
	switch v.Kind() {
	case NullKind:
		return 0
	case BoolKind, IntKind:
		return float64(v.Int())
	case FloatKind:
		return v.Float()
	case StringKind:
		return parseNumber(v.Str())
	case ArrayKind:
		switch v.Count() {
		case 0:
			return 0
		case 1:
			el := v.Iter()
			defer el.Free()
			x := el.Value()
			defer x.Release()
			return x.ToNumber()
		}
	}
	return math.NaN()
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		i, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(i)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ToInt converts v to an integer, truncating towards zero. NaN gives 0.
func (v Value) ToInt() int64 {
	if v.Kind() == IntKind || v.Kind() == BoolKind {
		return v.Int()
	}
	f := v.ToNumber()
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// Truth reports whether v is truthy.
func (v Value) Truth() bool {
	switch v.Kind() {
	case UndefinedKind, NullKind:
		return false
	case BoolKind, IntKind:
		return v.Int() != 0
	case FloatKind:
		f := v.Float()
		return f != 0 && !math.IsNaN(f)
	case StringKind:
		return v.Str() != ""
	}
	return true
}

// StrictEqual compares without coercion. Containers and functions are
// equal only to themselves; ints and floats compare by value.
func StrictEqual(a, b Value) bool {
	ak, bk := a.Kind(), b.Kind()
	if ak.IsNumeric() && bk.IsNumeric() {
		return numEqual(a, b)
	}
	if ak != bk {
		return false
	}
	switch ak {
	case UndefinedKind, NullKind:
		return true
	case BoolKind:
		return a.Bool() == b.Bool()
	case StringKind:
		return a.Str() == b.Str()
	}
	return sameNode(a, b)
}

func sameNode(a, b Value) bool {
	return a.s == b.s && a.ref == b.ref && !a.IsNone()
}

func numEqual(a, b Value) bool {
	if a.IsInt() && b.IsInt() {
		return a.Int() == b.Int()
	}
	return a.ToNumber() == b.ToNumber()
}

// LooseEqual is abstract equality: undefined and null equal each other,
// strings and booleans compare with numbers numerically, and containers
// compare with primitives through their string form.
func LooseEqual(a, b Value) bool {
	ak, bk := a.Kind(), b.Kind()
	nullish := func(k Kind) bool { return k == UndefinedKind || k == NullKind }
	switch {
	case nullish(ak) || nullish(bk):
		return nullish(ak) && nullish(bk)
	case ak == bk, ak.IsNumeric() && bk.IsNumeric():
		return StrictEqual(a, b)
	case ak.IsContainer() || ak == FunctionKind:
		if bk.IsContainer() || bk == FunctionKind {
			return false
		}
		return primEqual(a.ToString(), b)
	case bk.IsContainer() || bk == FunctionKind:
		return primEqual(b.ToString(), a)
	}
	return a.ToNumber() == b.ToNumber()
}

func primEqual(s string, b Value) bool {
	if b.IsString() {
		return s == b.Str()
	}
	return parseNumber(s) == b.ToNumber()
}

// LessEqual is the default ordering used for sorting: strings compare
// lexicographically, anything else numerically. NaN is never less or equal.
func LessEqual(a, b Value) bool {
	if a.IsString() && b.IsString() {
		return a.Str() <= b.Str()
	}
	if a.IsInt() && b.IsInt() {
		return a.Int() <= b.Int()
	}
	x, y := a.ToNumber(), b.ToNumber()
	return x <= y
}

// inspect renders v for debugging.
func inspect(v Value) string {
	if v.IsNone() {
		return "<none>"
	}
	switch v.Kind() {
	case StringKind:
		return strconv.Quote(v.Str())
	case ArrayKind:
		buf := &strings.Builder{}
		buf.WriteByte('[')
		var at int64
		s := v.s
		for b := v.n().first; b != NoRef; b = s.nodes[b].next {
			idx := s.nodes[b].i
			for ; at < idx; at++ {
				if at > 0 {
					buf.WriteByte(',')
				}
			}
			if idx > 0 {
				buf.WriteByte(',')
			}
			at = idx + 1
			if el := (Value{s: s, ref: s.nodes[b].first}); !el.IsNone() {
				buf.WriteString(inspect(el))
			}
		}
		buf.WriteByte(']')
		return buf.String()
	case ObjectKind:
		buf := &strings.Builder{}
		buf.WriteByte('{')
		s := v.s
		for b := v.n().first; b != NoRef; b = s.nodes[b].next {
			if b != v.n().first {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.Quote(s.nodes[b].s))
			buf.WriteByte(':')
			buf.WriteString(inspect(Value{s: s, ref: s.nodes[b].first}))
		}
		buf.WriteByte('}')
		return buf.String()
	}
	return v.ToString()
}
