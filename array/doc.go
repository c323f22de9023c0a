// Package array implements the methods of script arrays on top of the jsv
// value store.
//
// Arrays are sparse: elements live in index bindings in ascending order and
// the length follows from the last of them. Operations walk the bindings
// with cursors instead of indexing, so map, forEach, slice and concat visit
// only present elements, and splice renumbers the bindings after the
// changed range.
//
// Sort is an in-place quicksort over cursor positions. It swaps values
// between bindings rather than relinking them and can be cancelled through
// its context.
//
// All methods are also registered by name (see Lookup) for callers which
// dispatch on method names.
package array
