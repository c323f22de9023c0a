package encode

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/signadot/jsvar/jsv"
)

func newTestStore(t *testing.T) *jsv.Store {
	t.Helper()
	return jsv.New(&jsv.Spec{
		Config: &jsv.Config{Store: &jsv.StoreConfig{Capacity: 256, StrictLocks: true}},
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func sparse(t *testing.T, st *jsv.Store, n int64, elems map[int64]any) jsv.Value {
	t.Helper()
	arr, err := st.NewArray()
	if err != nil {
		t.Fatal(err)
	}
	for i, x := range elems {
		v, err := jsv.FromAny(st, x)
		if err != nil {
			t.Fatal(err)
		}
		if err := arr.Set(i, v); err != nil {
			t.Fatal(err)
		}
		v.Release()
	}
	if err := arr.SetLength(n); err != nil {
		t.Fatal(err)
	}
	return arr
}

func TestWire(t *testing.T) {
	st := newTestStore(t)
	tests := []struct {
		name string
		v    func() jsv.Value
		want string
	}{
		{"dense", func() jsv.Value { return sparse(t, st, 3, map[int64]any{0: 1, 1: "a", 2: nil}) }, `[1,"a",null]`},
		{"inner hole", func() jsv.Value { return sparse(t, st, 3, map[int64]any{0: 1, 2: 3}) }, `[1,,3]`},
		{"leading hole", func() jsv.Value { return sparse(t, st, 2, map[int64]any{1: 1}) }, `[,1]`},
		{"trailing hole", func() jsv.Value { return sparse(t, st, 2, map[int64]any{0: 1}) }, `[1,,]`},
		{"only holes", func() jsv.Value { return sparse(t, st, 2, nil) }, `[,,]`},
		{"empty", func() jsv.Value { return sparse(t, st, 0, nil) }, `[]`},
		{"object", func() jsv.Value {
			v, _ := jsv.FromAny(st, []jsv.KeyVal{{Key: "a b", Val: 1.5}, {Key: "c", Val: []any{true}}})
			return v
		}, `{"a b":1.5,"c":[true]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.v()
			defer v.Release()
			if got := MustString(v); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
	if got := st.Stats().Used; got != 0 {
		t.Errorf("store leaks %d units", got)
	}
}

func TestPretty(t *testing.T) {
	st := newTestStore(t)
	arr := sparse(t, st, 5, map[int64]any{0: map[string]any{"k": "v", "1x": 2}, 3: 4})
	defer arr.Release()
	buf := &bytes.Buffer{}
	if err := Encode(arr, buf); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`[`,
		`  {`,
		`    "1x": 2,`,
		`    k: "v"`,
		`  },`,
		`  <2 empty items>,`,
		`  4,`,
		`  <1 empty item>`,
		`]`,
		``,
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestColors(t *testing.T) {
	st := newTestStore(t)
	v, _ := st.NewInt(7)
	defer v.Release()
	c := NewColors()
	c.Map[Colorable{Kind: jsv.IntKind, Attr: ValueColor}] = func(s string, _ ...any) string {
		return "<" + s + ">"
	}
	buf := &bytes.Buffer{}
	if err := Encode(v, buf, EncodeColors(c)); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "<7>\n" {
		t.Errorf("got %q", got)
	}
	if got := c.Get(jsv.NameKind, FieldColor)("x"); got != "x" {
		t.Errorf("default color changed %q", got)
	}
}

func TestJSON(t *testing.T) {
	st := newTestStore(t)
	arr := sparse(t, st, 4, map[int64]any{1: "é<", 2: []any{}})
	defer arr.Release()
	u, _ := st.NewUndefined()
	defer u.Release()
	if _, err := arr.Push(u); err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	if err := Encode(arr, buf, EncodeJSON(true)); err != nil {
		t.Fatal(err)
	}
	want := `[null,"é\u003c",[],null,null]` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
