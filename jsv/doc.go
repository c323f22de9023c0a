// Package jsv provides the value store of an embedded script runtime.
//
// # Overview
//
// Script values live as nodes in a Store, a bounded arena whose size is
// fixed when the store is created. Numbers, strings, arrays and objects are
// all nodes; an array or object is a container whose children are bindings,
// and each binding holds an index (arrays) or a key (objects) and refers to
// the value bound under it.
//
// # Ownership
//
// A node stays alive while it has either graph references or locks:
//
//   - references are held by the graph: a container owns its first binding,
//     a binding owns its next sibling and its bound value
//   - locks are held by Go code through Value handles
//
// Back pointers (a binding's previous sibling, a container's last binding)
// do not own anything. When both counts reach zero the node is reclaimed,
// and so is everything it solely owned. Reclaiming a long array walks its
// binding chain iteratively.
//
// Every Value returned by this package carries a lock which the caller
// gives back with Release. Take moves the lock into a return value. Values
// passed as arguments are borrowed: functions never release them.
//
// # Arrays
//
// Array bindings are kept in strictly ascending index order, which may be
// sparse. The length of an array is one more than the index of its last
// binding. A binding with no bound value is a length marker; it keeps the
// length of arrays that end in holes and is skipped by cursors.
//
// # Cursors
//
// ArrayIterator walks the bindings of a container. It locks the binding it
// is on, so the container may be changed through RemoveAt and SetAt while
// iterating. Iterator generalizes this to strings, which iterate as
// character codes and are read only.
//
// # Errors
//
// Operations report failures with wrapped sentinel errors such as
// ErrTypeArgument and ErrOutOfMemory; test for them with errors.Is.
//
// A Store is not safe for concurrent use.
package jsv
