// Package libdiff computes element-level differences between arrays.
package libdiff

import (
	"fmt"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/jsvar/encode"
	"github.com/signadot/jsvar/jsv"
)

type Op int

const (
	Equal Op = iota
	Delete
	Insert
	Replace
)

func (o Op) String() string {
	switch o {
	case Equal:
		return "="
	case Delete:
		return "-"
	case Insert:
		return "+"
	case Replace:
		return "~"
	}
	return "?"
}

// Edit is one step turning the from array into the to array. From and To
// are wire renderings of the elements involved. A run of holes is a single
// slot rendered as "<n empty items>" and indexed by its first position.
// FromIndex and ToIndex are -1 when the edit has no element on that side.
type Edit struct {
	Op        Op
	FromIndex int64
	ToIndex   int64
	From      string
	To        string
}

// DiffArrays compares from and to slot by slot, hole runs included. A deletion
// directly followed by an insertion is reported as a replacement.
func DiffArrays(from, to jsv.Value) []Edit {
	m := map[string]rune{}
	fromSlots := slots(from)
	toSlots := slots(to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(runes(m, fromSlots), runes(m, toSlots), false)

	var res []Edit
	fi, ti := 0, 0
	// deletions not yet paired with an insertion: res[pend:pendEnd]
	pend, pendEnd := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		n := len([]rune(diff.Text))
		switch diff.Type {
		case diffpatch.DiffDelete:
			pend = len(res)
			for range n {
				res = append(res, Edit{Op: Delete, FromIndex: fromSlots[fi].idx, ToIndex: -1, From: fromSlots[fi].text})
				fi++
			}
			pendEnd = len(res)
		case diffpatch.DiffEqual:
			pend, pendEnd = 0, 0
			for range n {
				res = append(res, Edit{Op: Equal, FromIndex: fromSlots[fi].idx, ToIndex: toSlots[ti].idx, From: fromSlots[fi].text, To: toSlots[ti].text})
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for range n {
				if pend < pendEnd {
					res[pend].Op = Replace
					res[pend].ToIndex = toSlots[ti].idx
					res[pend].To = toSlots[ti].text
					pend++
				} else {
					res = append(res, Edit{Op: Insert, FromIndex: -1, ToIndex: toSlots[ti].idx, To: toSlots[ti].text})
				}
				ti++
			}
			pend, pendEnd = 0, 0
		}
	}
	return res
}

// Changed reports whether any edit is not Equal.
func Changed(edits []Edit) bool {
	for i := range edits {
		if edits[i].Op != Equal {
			return true
		}
	}
	return false
}

type slot struct {
	idx  int64
	text string
}

// slots renders the present elements of arr, with one slot per run of
// holes, so the result is bounded by the bindings and not the length.
func slots(arr jsv.Value) []slot {
	var res []slot
	var at int64
	holes := func(to int64) {
		if to > at {
			res = append(res, slot{idx: at, text: holeText(to - at)})
		}
	}
	it := arr.Iter()
	defer it.Free()
	for ; it.HasElement(); it.Next() {
		i, _ := it.IndexInt()
		holes(i)
		v := it.Value()
		res = append(res, slot{idx: i, text: encode.MustString(v)})
		v.Release()
		at = i + 1
	}
	holes(arr.Len())
	return res
}

func holeText(n int64) string {
	if n == 1 {
		return "<1 empty item>"
	}
	return fmt.Sprintf("<%d empty items>", n)
}

func runes(m map[string]rune, ss []slot) []rune {
	rs := make([]rune, len(ss))
	for i, s := range ss {
		r, ok := m[s.text]
		if !ok {
			r = rune(len(m))
			m[s.text] = r
		}
		rs[i] = r
	}
	return rs
}
