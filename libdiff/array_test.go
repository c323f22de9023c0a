package libdiff

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsvar/jsv"
)

func TestDiffArrays(t *testing.T) {
	st := jsv.New(&jsv.Spec{
		Config: &jsv.Config{Store: &jsv.StoreConfig{Capacity: 256, StrictLocks: true}},
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	tests := []struct {
		name     string
		from, to []any
		want     []Edit
	}{
		{
			name: "equal",
			from: []any{1, "a"},
			to:   []any{1, "a"},
			want: []Edit{
				{Op: Equal, FromIndex: 0, ToIndex: 0, From: "1", To: "1"},
				{Op: Equal, FromIndex: 1, ToIndex: 1, From: `"a"`, To: `"a"`},
			},
		},
		{
			name: "insert",
			from: []any{1, 3},
			to:   []any{1, 2, 3},
			want: []Edit{
				{Op: Equal, FromIndex: 0, ToIndex: 0, From: "1", To: "1"},
				{Op: Insert, FromIndex: -1, ToIndex: 1, To: "2"},
				{Op: Equal, FromIndex: 1, ToIndex: 2, From: "3", To: "3"},
			},
		},
		{
			name: "replace",
			from: []any{1, 2, 3, 9},
			to:   []any{1, 4, 5, 9},
			want: []Edit{
				{Op: Equal, FromIndex: 0, ToIndex: 0, From: "1", To: "1"},
				{Op: Replace, FromIndex: 1, ToIndex: 1, From: "2", To: "4"},
				{Op: Replace, FromIndex: 2, ToIndex: 2, From: "3", To: "5"},
				{Op: Equal, FromIndex: 3, ToIndex: 3, From: "9", To: "9"},
			},
		},
		{
			name: "delete",
			from: []any{[]any{1}, 2},
			to:   []any{2},
			want: []Edit{
				{Op: Delete, FromIndex: 0, ToIndex: -1, From: "[1]"},
				{Op: Equal, FromIndex: 1, ToIndex: 0, From: "2", To: "2"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, _ := jsv.FromAny(st, tt.from)
			defer from.Release()
			to, _ := jsv.FromAny(st, tt.to)
			defer to.Release()
			got := DiffArrays(from, to)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if Changed(got) != (tt.name != "equal") {
				t.Errorf("Changed = %t", Changed(got))
			}
		})
	}
}

func TestWrite(t *testing.T) {
	edits := []Edit{
		{Op: Equal, FromIndex: 0, ToIndex: 0, From: "1", To: "1"},
		{Op: Replace, FromIndex: 1, ToIndex: 1, From: "2", To: `"%d"`},
		{Op: Insert, FromIndex: -1, ToIndex: 2, To: "3"},
	}
	buf := &bytes.Buffer{}
	if err := Write(buf, edits, nil); err != nil {
		t.Fatal(err)
	}
	want := "= [0] 1\n- [1] 2\n+ [1] \"%d\"\n+ [2] 3\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDiffSparse(t *testing.T) {
	st := jsv.New(&jsv.Spec{
		Config: &jsv.Config{Store: &jsv.StoreConfig{Capacity: 64, StrictLocks: true}},
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	from, _ := jsv.FromAny(st, []any{1})
	defer from.Release()
	if err := from.SetLength(1 << 40); err != nil {
		t.Fatal(err)
	}
	to, _ := jsv.FromAny(st, []any{1, 2})
	defer to.Release()
	if err := to.SetLength(5); err != nil {
		t.Fatal(err)
	}
	want := []Edit{
		{Op: Equal, FromIndex: 0, ToIndex: 0, From: "1", To: "1"},
		{Op: Replace, FromIndex: 1, ToIndex: 1, From: "<1099511627775 empty items>", To: "2"},
		{Op: Insert, FromIndex: -1, ToIndex: 2, To: "<3 empty items>"},
	}
	if diff := cmp.Diff(want, DiffArrays(from, to)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
