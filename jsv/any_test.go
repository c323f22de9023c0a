package jsv

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAnyRoundTrip(t *testing.T) {
	st := newTestStore(t, 256)
	in := map[string]any{
		"a": []any{1, "two", 3.5, nil, true},
		"b": map[string]any{"c": []any{}},
	}
	v, err := FromAny(st, in)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, MustAny(v)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, v.Keys()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	v.Release()
	checkUsed(t, st, 0)
}

func TestFromAnyErrors(t *testing.T) {
	st := newTestStore(t, 8)
	if _, err := FromAny(st, struct{}{}); !errors.Is(err, ErrTypeArgument) {
		t.Errorf("struct: %v", err)
	}
	_, err := FromAny(st, []any{1, 2, 3, 4, 5})
	if !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("large array: %v", err)
	}
	checkUsed(t, st, 0)
}

func TestInvoke(t *testing.T) {
	st := newTestStore(t, 16)
	fn, err := st.NewFunction(NativeFunc(func(ctx context.Context, this Value, args []Value) (Value, error) {
		return st.NewInt(int64(len(args)))
	}))
	if err != nil {
		t.Fatal(err)
	}
	x, _ := st.NewNull()
	res, err := Invoke(context.Background(), fn, Value{}, x, x)
	if err != nil {
		t.Fatal(err)
	}
	if res.Int() != 2 {
		t.Errorf("got %s", res)
	}
	res.Release()
	if _, err := Invoke(context.Background(), x, Value{}); !errors.Is(err, ErrTypeArgument) {
		t.Errorf("invoke null: %v", err)
	}
	x.Release()
	fn.Release()
	checkUsed(t, st, 0)
}

func TestToAnyHoleLimit(t *testing.T) {
	st := newTestStore(t, 16)
	arr := mkArray(t, st, 1)
	if err := arr.SetLength(1 << 40); err != nil {
		t.Fatal(err)
	}
	if _, err := ToAny(arr); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("got %v, want out of memory", err)
	}
	// the budget covers all arrays of one conversion
	outer := mkArray(t, st)
	for i := range int64(2) {
		inner := mkArray(t, st)
		if err := inner.SetLength(MaxAnyHoles/2 + 1); err != nil {
			t.Fatal(err)
		}
		if err := outer.Set(i, inner); err != nil {
			t.Fatal(err)
		}
		inner.Release()
	}
	if _, err := ToAny(outer); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("nested: got %v, want out of memory", err)
	}
	small := mkArray(t, st, 1)
	if err := small.SetLength(3); err != nil {
		t.Fatal(err)
	}
	got, err := ToAny(small)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{1, nil, nil}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	small.Release()
	outer.Release()
	arr.Release()
	checkUsed(t, st, 0)
}
