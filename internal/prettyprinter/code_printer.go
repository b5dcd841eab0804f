package prettyprinter

import (
	"bytes"
	"strings"

	"github.com/funvibe/diffconv/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

type CodePrinter struct {
	buf bytes.Buffer
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print appends the source text of n.
func (p *CodePrinter) Print(n *ast.Node) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		p.buf.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		p.Print(c)
	}
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

// Render returns the source text of a tree.
func Render(n *ast.Node) string {
	p := NewCodePrinter()
	p.Print(n)
	return p.String()
}

// RenderFile renders a document and makes sure it ends with exactly one
// newline. Line endings follow the first line of the rendered text.
func RenderFile(n *ast.Node) string {
	out := Render(n)
	return normalizeLines(out, Newline(out))
}

// RenderFileNewline is RenderFile with every line ending written as newline.
func RenderFileNewline(n *ast.Node, newline string) string {
	return normalizeLines(Render(n), newline)
}

// Newline returns the line ending of src: "\r\n" when its first line ends with
// one, "\n" otherwise.
func Newline(src string) string {
	if i := strings.IndexByte(src, '\n'); i > 0 && src[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

func normalizeLines(out, newline string) string {
	out = strings.ReplaceAll(strings.TrimRight(out, "\r\n"), "\r\n", "\n")
	if newline != "\n" {
		out = strings.ReplaceAll(out, "\n", newline)
	}
	return out + newline
}
