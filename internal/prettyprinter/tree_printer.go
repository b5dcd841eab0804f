package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/diffconv/internal/ast"
)

// --- Tree Printer (Output shows AST structure) ---

// TreePrinter dumps the node structure, one node per line. Trivia is
// omitted unless ShowTrivia is set.
type TreePrinter struct {
	buf        bytes.Buffer
	indent     int
	ShowTrivia bool
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

func (p *TreePrinter) Print(n *ast.Node) {
	if n == nil {
		return
	}
	if n.Kind == ast.KindTrivia && !p.ShowTrivia {
		return
	}
	p.buf.WriteString(strings.Repeat("  ", p.indent))
	p.buf.WriteString(n.Kind.String())
	if n.Type != "" && n.Kind != ast.KindToken {
		fmt.Fprintf(&p.buf, " (%s)", n.Type)
	}
	if n.IsLeaf() {
		p.buf.WriteString(" ")
		p.buf.WriteString(strconv.Quote(n.Text))
	}
	if n.Line > 0 {
		fmt.Fprintf(&p.buf, " @%d", n.Line)
	}
	p.buf.WriteString("\n")

	p.indent++
	for _, c := range n.Children {
		p.Print(c)
	}
	p.indent--
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}
