package sexpr

import (
	"fmt"

	"ferrite/internal/diag"
	"ferrite/internal/source"
)

// Parse reads every top-level s-expression in file. Syntax problems are
// reported through r; parsing resumes after the offending token, so a
// single pass surfaces every error. ok is false when anything was
// reported.
func Parse(file *source.File, r diag.Reporter) (forms []SExp, ok bool) {
	p := &parser{file: file, reporter: r, ok: true}
	for {
		p.skipTrivia()
		if p.eof() {
			return p.forms, p.ok
		}
		if form := p.parseSExp(); form != nil {
			p.forms = append(p.forms, form)
		}
	}
}

type parser struct {
	file     *source.File
	reporter diag.Reporter
	pos      uint32
	forms    []SExp
	ok       bool
}

func (p *parser) eof() bool {
	return int(p.pos) >= len(p.file.Content)
}

func (p *parser) peek() byte {
	return p.file.Content[p.pos]
}

func (p *parser) span(start uint32) source.Span {
	return source.Span{File: p.file.ID, Start: start, End: p.pos}
}

// skipTrivia consumes whitespace and ';' line comments.
func (p *parser) skipTrivia() {
	for !p.eof() {
		switch c := p.peek(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			p.pos++
		case c == ';':
			for !p.eof() && p.peek() != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *parser) parseSExp() SExp {
	start := p.pos
	switch p.peek() {
	case '(':
		p.pos++
		return p.parseList(start)
	case ')':
		p.pos++
		p.report(diag.ScriptUnexpectedToken, p.span(start), "unexpected ')'")
		return nil
	default:
		return p.parseSymbol()
	}
}

func (p *parser) parseList(start uint32) SExp {
	var elements []SExp
	for {
		p.skipTrivia()
		if p.eof() {
			p.report(diag.ScriptUnclosedList, p.span(start), "unclosed '('")
			return &List{Elements: elements, span: p.span(start)}
		}
		if p.peek() == ')' {
			p.pos++
			return &List{Elements: elements, span: p.span(start)}
		}
		if e := p.parseSExp(); e != nil {
			elements = append(elements, e)
		}
	}
}

func (p *parser) parseSymbol() SExp {
	start := p.pos
	for !p.eof() && !isDelimiter(p.peek()) {
		p.pos++
	}
	return &Symbol{
		Value: string(p.file.Content[start:p.pos]),
		span:  p.span(start),
	}
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', ';', ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

func (p *parser) report(code diag.Code, sp source.Span, format string, args ...any) {
	p.ok = false
	diag.ReportError(p.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}
