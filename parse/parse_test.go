package parse

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsvar/jsv"
)

func TestParse(t *testing.T) {
	st := jsv.New(&jsv.Spec{
		Config: &jsv.Config{Store: &jsv.StoreConfig{Capacity: 256, StrictLocks: true}},
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	tests := []struct {
		name string
		in   string
		want any
		keys []string
	}{
		{"json array", `[1, -2, 2.5, "x", null, true]`, []any{1, -2, 2.5, "x", nil, true}, nil},
		{"yaml list", "- a\n- [1, 2]\n", []any{"a", []any{1, 2}}, nil},
		{"ordered keys", "z: 1\na: {b: 2}\n", map[string]any{"z": 1, "a": map[string]any{"b": 2}}, []string{"z", "a"}},
		{"int key", "1: one\n", map[string]any{"1": "one"}, []string{"1"}},
		{"scalar", "hello", "hello", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(st, []byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			defer v.Release()
			if diff := cmp.Diff(tt.want, jsv.MustAny(v)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if tt.keys != nil {
				if diff := cmp.Diff(tt.keys, v.Keys()); diff != "" {
					t.Errorf("keys (-want +got):\n%s", diff)
				}
			}
		})
	}
	if _, err := Parse(st, []byte("[1, ")); !errors.Is(err, ErrParse) {
		t.Errorf("got %v, want parse error", err)
	}
	if got := st.Stats().Used; got != 0 {
		t.Errorf("store leaks %d units", got)
	}
}
