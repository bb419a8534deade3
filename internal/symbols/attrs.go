package symbols

// Attr encodes declaration attributes as a bitmask for quick checks.
type Attr uint16

const (
	AttrPointer Attr = 1 << iota
	AttrTarget
	AttrAllocatable
	AttrContiguous
	AttrOptional
	AttrIntentOut
	AttrSave
	// AttrParameter marks a named constant.
	AttrParameter
	// AttrPure marks a pure procedure.
	AttrPure
	// AttrImpliedDo marks an active implied-DO index variable.
	AttrImpliedDo
)

// Has reports whether all bits of f are set.
func (a Attr) Has(f Attr) bool { return a&f == f }

// Strings returns a slice of textual attribute labels.
func (a Attr) Strings() []string {
	if a == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	for _, e := range attrLabels {
		if a&e.bit != 0 {
			labels = append(labels, e.name)
		}
	}
	return labels
}

var attrLabels = []struct {
	bit  Attr
	name string
}{
	{AttrPointer, "pointer"},
	{AttrTarget, "target"},
	{AttrAllocatable, "allocatable"},
	{AttrContiguous, "contiguous"},
	{AttrOptional, "optional"},
	{AttrIntentOut, "intent-out"},
	{AttrSave, "save"},
	{AttrParameter, "parameter"},
	{AttrPure, "pure"},
	{AttrImpliedDo, "implied-do"},
}

// Assoc classifies how a symbol entered its scope.
type Assoc uint8

const (
	// AssocLocal is an ordinary local declaration.
	AssocLocal Assoc = iota
	// AssocDummy is a dummy (procedure) argument.
	AssocDummy
	// AssocUse is a use-associated module entity.
	AssocUse
	// AssocHost is a host-associated entity.
	AssocHost
	// AssocCommon is a common-block member.
	AssocCommon
)

func (a Assoc) String() string {
	switch a {
	case AssocLocal:
		return "local"
	case AssocDummy:
		return "dummy"
	case AssocUse:
		return "use"
	case AssocHost:
		return "host"
	case AssocCommon:
		return "common"
	default:
		return "invalid"
	}
}

// Shape classifies how an object's extents are declared.
type Shape uint8

const (
	// ShapeExplicit has compile-time or specification-expression bounds.
	ShapeExplicit Shape = iota
	// ShapeDeferred is allocatable/pointer shape, fixed at allocation.
	ShapeDeferred
	// ShapeAssumedShape takes its shape from the effective argument.
	ShapeAssumedShape
	// ShapeAssumedRank takes even its rank from the effective argument.
	ShapeAssumedRank
)

func (s Shape) String() string {
	switch s {
	case ShapeExplicit:
		return "explicit"
	case ShapeDeferred:
		return "deferred"
	case ShapeAssumedShape:
		return "assumed-shape"
	case ShapeAssumedRank:
		return "assumed-rank"
	default:
		return "invalid"
	}
}
