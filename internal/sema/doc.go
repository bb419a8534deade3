// Package sema implements the static legality predicates over the
// expression IR: constant-expression classification, initial-data-target
// admissibility, specification-expression validation and simple
// contiguity.
//
// Each predicate composes the generic fold engine in traverse.go with a
// per-node-kind override table: kinds a predicate does not special-case
// are visited structurally and combined with the predicate's combinator.
// All predicates are read-only over the expression arena and the symbol
// table; only the initial-data-target checker has a side channel, a
// diag.Reporter it emits attribute violations through while still
// returning its structural verdict.
package sema
