package converter

import (
	"log/slog"
	"strings"

	"github.com/funvibe/diffconv/internal/ast"
	"github.com/funvibe/diffconv/internal/pipeline"
	"github.com/funvibe/diffconv/internal/prettyprinter"
)

const (
	definitionGap = "\n\n\n"
	statementGap  = "\n"
	headerGap     = "\n\n"
)

// Assembler builds the standalone document: the leading comment header of
// the diff, then the declarations of every touched module in first
// resolution order, then the diff body with aliases and classes replaced.
type Assembler struct{}

func (a *Assembler) Name() string { return "assemble" }

func (a *Assembler) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	newline := prettyprinter.Newline(ctx.Source)
	header, body := splitHeader(ctx.Tree.Children)
	body = replaceStatements(body, ctx.AliasReplacements, ctx.ClassReplacements, newline)

	out := &assembly{newline: newline}
	out.header(header)
	modules := ctx.Modules.Touched()
	for _, catalog := range modules {
		for _, stmt := range catalog.Preamble() {
			out.statement(stmt)
		}
	}
	out.body(body)

	ctx.Assembled = &ast.Node{Kind: ast.KindModule, Type: "module", Children: out.children}
	ctx.Output = prettyprinter.RenderFileNewline(ctx.Assembled, newline)
	ctx.Logger.Debug("assembled document",
		slog.Int("modules", len(modules)),
		slog.Int("aliases", len(ctx.AliasReplacements)),
		slog.Int("classes", len(ctx.ClassReplacements)))
	return ctx
}

// splitHeader separates the comments opening the document from the rest.
func splitHeader(children []*ast.Node) (header, body []*ast.Node) {
	i := 0
	for i < len(children) && (children[i].Kind == ast.KindComment || children[i].Kind == ast.KindTrivia) {
		i++
	}
	return trimTrivia(children[:i]), children[i:]
}

// replaceStatements swaps replaced statements in, giving every class that
// stands in for an alias two blank lines on each side.
func replaceStatements(children []*ast.Node, aliases, classes map[*ast.Node]*ast.Node, newline string) []*ast.Node {
	out := make([]*ast.Node, len(children))
	copy(out, children)
	for i, c := range children {
		if repl, ok := classes[c]; ok {
			out[i] = repl
			continue
		}
		repl, ok := aliases[c]
		if !ok {
			continue
		}
		out[i] = repl
		if i > 0 {
			out[i-1] = padTrivia(out[i-1], newline)
		}
		if i+1 < len(out) {
			out[i+1] = padTrivia(out[i+1], newline)
		}
	}
	return out
}

func padTrivia(n *ast.Node, newline string) *ast.Node {
	if n.Kind != ast.KindTrivia || strings.Count(n.Text, "\n") >= len(definitionGap) {
		return n
	}
	return ast.NewTrivia(lineBreaks(definitionGap, newline))
}

// lineBreaks writes gap with the document's line ending.
func lineBreaks(gap, newline string) string {
	if newline == "\n" {
		return gap
	}
	return strings.ReplaceAll(gap, "\n", newline)
}

func trimTrivia(nodes []*ast.Node) []*ast.Node {
	for len(nodes) > 0 && nodes[0].Kind == ast.KindTrivia {
		nodes = nodes[1:]
	}
	for len(nodes) > 0 && nodes[len(nodes)-1].Kind == ast.KindTrivia {
		nodes = nodes[:len(nodes)-1]
	}
	return nodes
}

func isDefinition(n *ast.Node) bool {
	switch n.Kind {
	case ast.KindClass, ast.KindMethod, ast.KindDecorated:
		return true
	}
	return false
}

// assembly accumulates the children of the output module.
type assembly struct {
	children []*ast.Node
	last     *ast.Node // last significant node emitted
	inHeader bool      // last holds the end of the header
	newline  string
}

func (a *assembly) gap(next *ast.Node) {
	if a.last == nil {
		return
	}
	sep := statementGap
	switch {
	case isDefinition(a.last) || isDefinition(next):
		sep = definitionGap
	case a.inHeader:
		sep = headerGap
	}
	a.children = append(a.children, ast.NewTrivia(lineBreaks(sep, a.newline)))
}

func (a *assembly) header(nodes []*ast.Node) {
	if len(nodes) == 0 {
		return
	}
	a.children = append(a.children, nodes...)
	a.last = nodes[len(nodes)-1]
	a.inHeader = true
}

func (a *assembly) statement(n *ast.Node) {
	a.gap(n)
	a.children = append(a.children, n)
	a.last = n
	a.inHeader = false
}

// body appends the remaining document verbatim after its leading trivia.
func (a *assembly) body(nodes []*ast.Node) {
	for len(nodes) > 0 && nodes[0].Kind == ast.KindTrivia {
		nodes = nodes[1:]
	}
	if len(nodes) == 0 {
		return
	}
	a.gap(nodes[0])
	a.children = append(a.children, nodes...)
	a.last = nodes[len(nodes)-1]
	a.inHeader = false
}
