// Package shape provides builders for immutable shape descriptors: the
// primitives, Optional, Object, Map, Array, and tagged Union, plus the
// variant classifier and the exhaustive Dispatcher.
//
// Descriptors are constructed once, at startup, and are read-only afterwards.
// Construction problems (duplicate object fields, duplicate union tags,
// non-exhaustive dispatchers) are programmer errors: Build returns a
// *goshape.UsageError and MustBuild panics with it. They are never reported
// as validation Issues.
//
// Validation order is the declaration order of the descriptor, depth-first.
// Structural unions resolve ambiguity the same way: the earliest-declared
// member that fully matches wins.
package shape
