// Package lss implements a static integer predecessor dictionary over a
// bounded universe of unsigned integers: the Layered Static Search (LSS)
// index at the core of Willard's Y-fast trie.
//
// Given a sorted, duplicate-free slice of values, Build lays out a tower of
// hash maps keyed by truncated value prefixes (the "LSS levels"), capped by
// a dense top-level table, over a sorted element array. Predecessor queries
// binary-search the levels for the lowest existing ancestor of the query's
// prefix chain and dispatch to a short scan of the element array.
//
// The static Handle is immutable after Build and safe for concurrent reads.
// BuildDynamic produces a single-writer/single-reader Dynamic handle that
// additionally supports Add and Remove.
package lss
