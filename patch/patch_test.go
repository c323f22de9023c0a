package patch

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsvar/jsv"
)

func TestApply(t *testing.T) {
	st := jsv.New(&jsv.Spec{
		Config: &jsv.Config{Store: &jsv.StoreConfig{Capacity: 256, StrictLocks: true}},
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	tests := []struct {
		name    string
		doc     any
		patch   string
		want    any
		wantErr bool
	}{
		{
			name:  "add to array",
			doc:   []any{1, 2},
			patch: `[{"op": "add", "path": "/1", "value": "x"}]`,
			want:  []any{1, "x", 2},
		},
		{
			name:  "replace field",
			doc:   map[string]any{"a": 1, "b": []any{true}},
			patch: `[{"op": "replace", "path": "/b/0", "value": false}, {"op": "remove", "path": "/a"}]`,
			want:  map[string]any{"b": []any{false}},
		},
		{
			name:    "failed test op",
			doc:     []any{1},
			patch:   `[{"op": "test", "path": "/0", "value": 2}]`,
			wantErr: true,
		},
		{
			name:    "bad patch",
			doc:     []any{1},
			patch:   `{`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := jsv.FromAny(st, tt.doc)
			if err != nil {
				t.Fatal(err)
			}
			defer doc.Release()
			before := jsv.MustAny(doc)
			res, err := Apply(doc, []byte(tt.patch))
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %s", res)
					res.Release()
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			defer res.Release()
			if diff := cmp.Diff(tt.want, jsv.MustAny(res)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(before, jsv.MustAny(doc)); diff != "" {
				t.Errorf("patched document changed (-want +got):\n%s", diff)
			}
		})
	}
	if got := st.Stats().Used; got != 0 {
		t.Errorf("store leaks %d units", got)
	}
}
