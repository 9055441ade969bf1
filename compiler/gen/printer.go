package gen

import "strings"

// indentUnit is one level of generated-source indentation.
const indentUnit = "  "

// Printer is the ordered text sink generated source is written into.
// It tracks the current indentation level and applies it at the start
// of every non-empty line, so emitters never format their own margins.
type Printer struct {
	buf         strings.Builder
	indent      string
	atLineStart bool
}

// NewPrinter creates an empty printer.
func NewPrinter() *Printer {
	return &Printer{atLineStart: true}
}

// Print appends the given text blocks in order, applying the current
// indentation at the start of each non-empty line.
func (p *Printer) Print(texts ...string) {
	for _, t := range texts {
		for len(t) > 0 {
			nl := strings.IndexByte(t, '\n')
			var line string
			if nl < 0 {
				line, t = t, ""
			} else {
				line, t = t[:nl], t[nl+1:]
			}
			if p.atLineStart && line != "" {
				p.buf.WriteString(p.indent)
			}
			p.buf.WriteString(line)
			if nl >= 0 {
				p.buf.WriteByte('\n')
				p.atLineStart = true
			} else if line != "" {
				p.atLineStart = false
			}
		}
	}
}

// Indent increases the indentation by one level.
func (p *Printer) Indent() {
	p.indent += indentUnit
}

// Outdent decreases the indentation by one level.
func (p *Printer) Outdent() {
	if len(p.indent) >= len(indentUnit) {
		p.indent = p.indent[:len(p.indent)-len(indentUnit)]
	}
}

// IsEmpty reports whether nothing has been printed yet.
func (p *Printer) IsEmpty() bool {
	return p.buf.Len() == 0
}

// String returns the accumulated text.
func (p *Printer) String() string {
	return p.buf.String()
}
