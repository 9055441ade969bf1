package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinterIndentation(t *testing.T) {
	p := NewPrinter()
	assert.True(t, p.IsEmpty())

	p.Print("struct S {\n")
	p.Indent()
	p.Print("var x: Int = 0\n")
	p.Print("var y: Int = 0\n")
	p.Outdent()
	p.Print("}\n")

	assert.Equal(t, "struct S {\n  var x: Int = 0\n  var y: Int = 0\n}\n", p.String())
	assert.False(t, p.IsEmpty())
}

func TestPrinterMultilineBlock(t *testing.T) {
	p := NewPrinter()
	p.Indent()
	p.Print("a\nb\nc\n")
	assert.Equal(t, "  a\n  b\n  c\n", p.String())
}

func TestPrinterBlankLinesNotIndented(t *testing.T) {
	p := NewPrinter()
	p.Indent()
	p.Print("a\n\nb\n")
	assert.Equal(t, "  a\n\n  b\n", p.String())
}

func TestPrinterPartialLine(t *testing.T) {
	p := NewPrinter()
	p.Indent()
	p.Print("case ")
	p.Print("one")
	p.Print(" = 1\n")
	assert.Equal(t, "  case one = 1\n", p.String())
}

func TestPrinterOutdentAtMargin(t *testing.T) {
	p := NewPrinter()
	p.Outdent()
	p.Print("x\n")
	assert.Equal(t, "x\n", p.String())
}
