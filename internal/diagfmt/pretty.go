// Package diagfmt renders diagnostic bags for terminal and machine
// consumption.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"ferrite/internal/diag"
	"ferrite/internal/source"
)

// PrettyOpts controls the human-readable renderer.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	noteColor    = color.New(color.Faint)
)

// Pretty writes one line per diagnostic:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by its notes when ShowNotes is set. The bag is expected to be
// sorted already.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			position(fs, d.Primary), severity(d.Severity, opts.Color), d.Code.ID(), d.Message)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			line := fmt.Sprintf("  note: %s: %s", position(fs, n.Span), n.Msg)
			if opts.Color {
				line = noteColor.Sprint(line)
			}
			fmt.Fprintln(w, line)
		}
	}
}

func position(fs *source.FileSet, sp source.Span) string {
	file := fs.Get(sp.File)
	if file == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", file.Path, start.Line, start.Col)
}

func severity(sev diag.Severity, colored bool) string {
	s := sev.String()
	if !colored {
		return s
	}
	switch sev {
	case diag.SevError:
		return errorColor.Sprint(s)
	case diag.SevWarning:
		return warningColor.Sprint(s)
	default:
		return infoColor.Sprint(s)
	}
}
