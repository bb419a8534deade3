package diagfmt

import (
	"encoding/json"
	"io"

	"ferrite/internal/diag"
	"ferrite/internal/source"
)

// JSONDiagnostic is the wire shape of one diagnostic.
type JSONDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Message  string     `json:"message"`
	Path     string     `json:"path,omitempty"`
	Line     uint32     `json:"line,omitempty"`
	Col      uint32     `json:"col,omitempty"`
	Notes    []JSONNote `json:"notes,omitempty"`
}

type JSONNote struct {
	Message string `json:"message"`
	Line    uint32 `json:"line,omitempty"`
	Col     uint32 `json:"col,omitempty"`
}

// BuildJSON converts a bag into its serializable form.
func BuildJSON(bag *diag.Bag, fs *source.FileSet) []JSONDiagnostic {
	out := make([]JSONDiagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		jd := JSONDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
		}
		if file := fs.Get(d.Primary.File); file != nil {
			start, _ := fs.Resolve(d.Primary)
			jd.Path = file.Path
			jd.Line = start.Line
			jd.Col = start.Col
		}
		for _, n := range d.Notes {
			jn := JSONNote{Message: n.Msg}
			if fs.Get(n.Span.File) != nil {
				start, _ := fs.Resolve(n.Span)
				jn.Line = start.Line
				jn.Col = start.Col
			}
			jd.Notes = append(jd.Notes, jn)
		}
		out = append(out, jd)
	}
	return out
}

// JSON encodes every file's diagnostics as a path-keyed object.
func JSON(w io.Writer, perFile map[string][]JSONDiagnostic) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(perFile)
}
