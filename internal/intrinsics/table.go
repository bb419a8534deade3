package intrinsics

// Class groups intrinsic procedures by their standard classification.
type Class uint8

const (
	// ClassInquiry procedures depend on properties of their arguments,
	// not their values.
	ClassInquiry Class = iota
	ClassElemental
	ClassTransformational
)

func (c Class) String() string {
	switch c {
	case ClassInquiry:
		return "inquiry"
	case ClassElemental:
		return "elemental"
	case ClassTransformational:
		return "transformational"
	default:
		return "invalid"
	}
}

// Spec describes one specific intrinsic procedure.
type Spec struct {
	Name  string
	Class Class
}

// Table is the intrinsic-procedure descriptor table consulted by the
// checkers. It is read-only after construction.
type Table struct {
	specs map[string]Spec
}

// NewTable seeds the standard intrinsic set.
func NewTable() *Table {
	t := &Table{specs: make(map[string]Spec, 32)}
	for _, s := range []Spec{
		{"kind", ClassInquiry},
		{"present", ClassInquiry},
		{"size", ClassInquiry},
		{"shape", ClassInquiry},
		{"lbound", ClassInquiry},
		{"ubound", ClassInquiry},
		{"len", ClassInquiry},
		{"rank", ClassInquiry},
		{"bit_size", ClassInquiry},
		{"digits", ClassInquiry},
		{"epsilon", ClassInquiry},
		{"huge", ClassInquiry},
		{"tiny", ClassInquiry},
		{"precision", ClassInquiry},
		{"range", ClassInquiry},
		{"abs", ClassElemental},
		{"max", ClassElemental},
		{"min", ClassElemental},
		{"mod", ClassElemental},
		{"modulo", ClassElemental},
		{"int", ClassElemental},
		{"real", ClassElemental},
		{"sum", ClassTransformational},
		{"product", ClassTransformational},
		{"matmul", ClassTransformational},
		{"reshape", ClassTransformational},
		{"transpose", ClassTransformational},
	} {
		t.specs[s.Name] = s
	}
	return t
}

// Lookup returns the spec for a specific intrinsic name.
func (t *Table) Lookup(name string) (Spec, bool) {
	s, ok := t.specs[name]
	return s, ok
}
