// Package sexpr implements a small s-expression reader for ferrite
// check scripts: an SExp is either a List of zero or more SExps or an
// atomic Symbol, each carrying its source span for diagnostics.
package sexpr

import (
	"strings"

	"ferrite/internal/source"
)

// SExp is either a List or a Symbol.
type SExp interface {
	IsList() bool
	IsSymbol() bool
	Span() source.Span
	String() string
}

// List is a parenthesized sequence of s-expressions.
type List struct {
	Elements []SExp
	span     source.Span
}

var _ SExp = (*List)(nil)

func (l *List) IsList() bool      { return true }
func (l *List) IsSymbol() bool    { return false }
func (l *List) Span() source.Span { return l.span }
func (l *List) Len() int          { return len(l.Elements) }

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, e := range l.Elements {
		if i != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(e.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Head returns the leading symbol of the list, or "" when the list is
// empty or starts with a sublist.
func (l *List) Head() string {
	if len(l.Elements) == 0 {
		return ""
	}
	if sym, ok := l.Elements[0].(*Symbol); ok {
		return sym.Value
	}
	return ""
}

// Symbol is an atomic token.
type Symbol struct {
	Value string
	span  source.Span
}

var _ SExp = (*Symbol)(nil)

func (s *Symbol) IsList() bool      { return false }
func (s *Symbol) IsSymbol() bool    { return true }
func (s *Symbol) Span() source.Span { return s.span }
func (s *Symbol) String() string    { return s.Value }
