package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Script reader (s-expression syntax and translation).
	ScriptInfo            Code = 1000
	ScriptUnexpectedToken Code = 1001
	ScriptUnclosedList    Code = 1002
	ScriptBadLiteral      Code = 1003
	ScriptUnknownForm     Code = 1100
	ScriptUnknownName     Code = 1101
	ScriptBadArity        Code = 1102
	ScriptBadAttribute    Code = 1103
	ScriptDuplicateName   Code = 1104

	// Driver I/O.
	IOLoadFile Code = 2000

	// Semantic checkers.
	SemaInfo              Code = 3000
	SemaTargetAllocatable Code = 3001
	SemaTargetCoarray     Code = 3002
	SemaTargetNotTarget   Code = 3003
	SemaTargetNotSaved    Code = 3004
	SemaSpecExprInvalid   Code = 3005
	SemaCheckFailed       Code = 3006
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown diagnostic",

	ScriptInfo:            "Script info",
	ScriptUnexpectedToken: "Unexpected token in check script",
	ScriptUnclosedList:    "Unclosed list in check script",
	ScriptBadLiteral:      "Malformed literal in check script",
	ScriptUnknownForm:     "Unknown script form",
	ScriptUnknownName:     "Reference to undeclared name",
	ScriptBadArity:        "Wrong number of operands",
	ScriptBadAttribute:    "Unknown attribute",
	ScriptDuplicateName:   "Name declared twice",

	IOLoadFile: "Failed to load file",

	SemaInfo:              "Semantic info",
	SemaTargetAllocatable: "Initial data target is ALLOCATABLE",
	SemaTargetCoarray:     "Initial data target is a coarray",
	SemaTargetNotTarget:   "Initial data target lacks the TARGET attribute",
	SemaTargetNotSaved:    "Initial data target lacks the SAVE attribute",
	SemaSpecExprInvalid:   "Invalid specification expression",
	SemaCheckFailed:       "Check directive failed",
}

// ID returns the stable short identifier, e.g. "SEM3005".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SCR%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
