// Package encode renders values as script literals.
package encode

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/jsvar/jsv"
)

type EncodeOption func(*EncState)

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// EncodeWire selects compact single-line output.
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

// EncodeJSON selects wire output which is also valid JSON: holes,
// undefined, functions and non-finite numbers render as null.
func EncodeJSON(v bool) EncodeOption {
	return func(es *EncState) { es.json = v }
}

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

type EncState struct {
	depth, indent int
	wire          bool
	json          bool

	Color func(jsv.Kind, ColorAttr, string) string
}

// Encode writes v to w followed by a newline. Holes in arrays render as
// empty slots in wire form and as "<n empty items>" otherwise.
func Encode(v jsv.Value, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if es.json {
		es.wire = true
	}
	if es.Color == nil {
		es.Color = func(_ jsv.Kind, _ ColorAttr, s string) string { return s }
	}
	bw := bufio.NewWriter(w)
	es.encode(v, bw)
	bw.WriteByte('\n')
	return bw.Flush()
}

// MustString renders v in wire form.
func MustString(v jsv.Value) string {
	buf := &strings.Builder{}
	if err := Encode(v, buf, EncodeWire(true)); err != nil {
		panic(err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func (es *EncState) encode(v jsv.Value, w *bufio.Writer) {
	k := v.Kind()
	if es.json && !jsonable(v) {
		w.WriteString(es.Color(jsv.NullKind, ValueColor, "null"))
		return
	}
	switch k {
	case jsv.StringKind:
		w.WriteString(es.Color(k, ValueColor, es.quote(v.Str())))
	case jsv.FunctionKind:
		name := "[Function]"
		if s, ok := v.Callable().(fmt.Stringer); ok {
			name = fmt.Sprintf("[Function: %s]", s)
		}
		w.WriteString(es.Color(k, ValueColor, name))
	case jsv.ArrayKind:
		es.encodeArray(v, w)
	case jsv.ObjectKind:
		es.encodeObject(v, w)
	default:
		w.WriteString(es.Color(k, ValueColor, v.ToString()))
	}
}

func jsonable(v jsv.Value) bool {
	switch v.Kind() {
	case jsv.UndefinedKind, jsv.FunctionKind:
		return false
	case jsv.FloatKind:
		f := v.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return true
}

func (es *EncState) sep(k jsv.Kind, s string, w *bufio.Writer) {
	w.WriteString(es.Color(k, SepColor, s))
}

func (es *EncState) newline(w *bufio.Writer) {
	if es.wire {
		return
	}
	w.WriteByte('\n')
	w.WriteString(strings.Repeat(" ", es.depth*es.indent))
}

func (es *EncState) encodeArray(v jsv.Value, w *bufio.Writer) {
	n := v.Len()
	es.sep(jsv.ArrayKind, "[", w)
	if n == 0 {
		es.sep(jsv.ArrayKind, "]", w)
		return
	}
	if es.wire {
		es.encodeWireArray(v, n, w)
		return
	}
	es.depth++
	var at int64
	first := true
	entry := func() {
		if !first {
			es.sep(jsv.ArrayKind, ",", w)
		}
		first = false
		es.newline(w)
	}
	holes := func(k int64) {
		if k == 0 {
			return
		}
		entry()
		items := "items"
		if k == 1 {
			items = "item"
		}
		w.WriteString(es.Color(jsv.ArrayKind, HoleColor, fmt.Sprintf("<%d empty %s>", k, items)))
	}
	it := v.Iter()
	for ; it.HasElement(); it.Next() {
		i, _ := it.IndexInt()
		holes(i - at)
		entry()
		el := it.Value()
		es.encode(el, w)
		el.Release()
		at = i + 1
	}
	it.Free()
	holes(n - at)
	es.depth--
	es.newline(w)
	es.sep(jsv.ArrayKind, "]", w)
}

// encodeWireArray writes holes as empty slots. A trailing hole needs an
// extra comma, as the last comma of a literal is not a slot.
func (es *EncState) encodeWireArray(v jsv.Value, n int64, w *bufio.Writer) {
	hole := ""
	if es.json {
		hole = "null"
	}
	var at int64
	it := v.Iter()
	for ; it.HasElement(); it.Next() {
		i, _ := it.IndexInt()
		for ; at <= i; at++ {
			if at > 0 {
				es.sep(jsv.ArrayKind, ",", w)
			}
			if at < i {
				w.WriteString(hole)
			}
		}
		el := it.Value()
		es.encode(el, w)
		el.Release()
	}
	it.Free()
	if at < n {
		for ; at < n; at++ {
			if at > 0 {
				es.sep(jsv.ArrayKind, ",", w)
			}
			w.WriteString(hole)
		}
		if !es.json {
			es.sep(jsv.ArrayKind, ",", w)
		}
	}
	es.sep(jsv.ArrayKind, "]", w)
}

func (es *EncState) encodeObject(v jsv.Value, w *bufio.Writer) {
	es.sep(jsv.ObjectKind, "{", w)
	it := v.Iter()
	defer it.Free()
	if !it.HasElement() {
		es.sep(jsv.ObjectKind, "}", w)
		return
	}
	es.depth++
	first := true
	for ; it.HasElement(); it.Next() {
		if !first {
			es.sep(jsv.ObjectKind, ",", w)
		}
		first = false
		es.newline(w)
		w.WriteString(es.Color(jsv.ObjectKind, FieldColor, es.fieldName(it.Key())))
		es.sep(jsv.ObjectKind, ":", w)
		if !es.wire {
			w.WriteByte(' ')
		}
		el := it.Value()
		es.encode(el, w)
		el.Release()
	}
	es.depth--
	es.newline(w)
	es.sep(jsv.ObjectKind, "}", w)
}

// fieldName quotes keys which are not identifiers. Wire form quotes every
// key.
func (es *EncState) fieldName(k string) string {
	if es.wire || !isIdent(k) {
		return es.quote(k)
	}
	return k
}

func (es *EncState) quote(s string) string {
	if !es.json {
		return strconv.Quote(s)
	}
	d, err := json.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return string(d)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
