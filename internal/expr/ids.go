package expr

// ExprID identifies an expression node in the arena.
type ExprID uint32

const (
	// NoExprID marks the absence of an expression reference.
	NoExprID ExprID = 0
)

// IsValid reports whether the ID refers to an allocated node.
func (id ExprID) IsValid() bool { return id != NoExprID }
