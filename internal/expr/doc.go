// Package expr defines the typed expression IR the semantic checkers
// analyze. Nodes live in a slice arena indexed by ExprID, are built once
// by the front end (or the check-script translator) and never mutated.
// Every node carries a rank; coarray-capable nodes carry a corank.
package expr
