package script

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsvar/array"
	"github.com/signadot/jsvar/jsv"
)

func newTestStore(t *testing.T) *jsv.Store {
	t.Helper()
	return jsv.New(&jsv.Spec{
		Config: &jsv.Config{Store: &jsv.StoreConfig{Capacity: 512, StrictLocks: true}},
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestCall(t *testing.T) {
	st := newTestStore(t)
	tests := []struct {
		name   string
		params []string
		src    string
		this   any
		args   []any
		want   any
	}{
		{"arith", []string{"x"}, "x * 2", nil, []any{3}, 6},
		{"missing param", []string{"x", "y"}, "y == nil", nil, []any{1}, true},
		{"args", nil, "len(args)", nil, []any{1, 2, 3}, 3},
		{"this", nil, "this.k", map[string]any{"k": "v"}, nil, "v"},
		{"str", []string{"a"}, `str(a) + "!"`, nil, []any{[]any{1, 2}}, "1,2!"},
		{"num", []string{"a"}, `num(a) + 1`, nil, []any{" 2 "}, 3.0},
		{"cmp", []string{"a", "b"}, "cmp(a, b)", nil, []any{"b", "a"}, 1},
		{"array result", []string{"a"}, "[a, a]", nil, []any{1}, []any{1, 1}},
		{"nil result", nil, "nil", nil, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := Compile(st, tt.params, tt.src)
			if err != nil {
				t.Fatal(err)
			}
			defer fn.Release()
			this, err := jsv.FromAny(st, tt.this)
			if err != nil {
				t.Fatal(err)
			}
			defer this.Release()
			var args []jsv.Value
			for _, a := range tt.args {
				v, err := jsv.FromAny(st, a)
				if err != nil {
					t.Fatal(err)
				}
				args = append(args, v)
			}
			res, err := jsv.Invoke(context.Background(), fn, this, args...)
			if err != nil {
				t.Fatal(err)
			}
			if tt.want == nil && !res.IsNone() {
				t.Errorf("got %s, want no value", res)
			}
			if diff := cmp.Diff(tt.want, jsv.MustAny(res)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			res.Release()
			for i := range args {
				args[i].Release()
			}
		})
	}
	if got := st.Stats().Used; got != 0 {
		t.Errorf("store leaks %d units", got)
	}
}

func TestCompileErrors(t *testing.T) {
	st := newTestStore(t)
	if _, err := Compile(st, nil, "1 +"); err == nil {
		t.Error("compiled a syntax error")
	}
	if _, err := Compile(st, []string{"this"}, "1"); !errors.Is(err, jsv.ErrTypeArgument) {
		t.Errorf("reserved parameter: %v", err)
	}
}

func TestCallerAttributesErrors(t *testing.T) {
	st := newTestStore(t)
	fn, err := Compile(st, []string{"a"}, `args[5]`)
	if err != nil {
		t.Fatal(err)
	}
	defer fn.Release()
	x, _ := st.NewInt(1)
	defer x.Release()
	_, err = NewCaller(nil).Call(context.Background(), fn, jsv.Value{}, x)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), `script "args[5]"`) {
		t.Errorf("error %q does not name the script", err)
	}
}

func TestSortWithScript(t *testing.T) {
	st := newTestStore(t)
	e := array.New(&array.Spec{Caller: NewCaller(nil), Log: slog.New(slog.NewTextHandler(io.Discard, nil))})
	arr, err := jsv.FromAny(st, []any{"b", "a", "c"})
	if err != nil {
		t.Fatal(err)
	}
	defer arr.Release()
	desc, err := Compile(st, []string{"a", "b"}, "cmp(b, a)")
	if err != nil {
		t.Fatal(err)
	}
	defer desc.Release()
	res, err := e.Sort(context.Background(), arr, desc)
	if err != nil {
		t.Fatal(err)
	}
	res.Release()
	if diff := cmp.Diff([]any{"c", "b", "a"}, jsv.MustAny(arr)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	upper, err := Compile(st, []string{"s", "i"}, "s + str(i)")
	if err != nil {
		t.Fatal(err)
	}
	defer upper.Release()
	mapped, err := e.Map(context.Background(), arr, upper, jsv.Value{})
	if err != nil {
		t.Fatal(err)
	}
	defer mapped.Release()
	if diff := cmp.Diff([]any{"c0", "b1", "a2"}, jsv.MustAny(mapped)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMapSparseReceiver(t *testing.T) {
	st := newTestStore(t)
	e := array.New(&array.Spec{Caller: NewCaller(nil), Log: slog.New(slog.NewTextHandler(io.Discard, nil))})
	arr, err := jsv.FromAny(st, []any{1})
	if err != nil {
		t.Fatal(err)
	}
	defer arr.Release()
	if err := arr.SetLength(1 << 40); err != nil {
		t.Fatal(err)
	}
	double, err := Compile(st, []string{"x"}, "x * 2")
	if err != nil {
		t.Fatal(err)
	}
	defer double.Release()
	// the callback sees the receiver as its third argument
	_, err = e.Map(context.Background(), arr, double, jsv.Value{})
	if !errors.Is(err, jsv.ErrOutOfMemory) {
		t.Fatalf("got %v, want out of memory", err)
	}
	if got := arr.Len(); got != 1<<40 {
		t.Errorf("length %d", got)
	}
}
