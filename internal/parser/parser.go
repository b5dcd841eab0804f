package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/funvibe/diffconv/internal/ast"
	"github.com/funvibe/diffconv/internal/diagnostics"
)

// Parse parses Python source into a lossless syntax tree. Rendering the
// result reproduces src byte for byte. Any syntax error is fatal and is
// reported as a diagnostics.ErrParse error carrying the first bad line.
func Parse(path string, src []byte) (*ast.Node, error) {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())

	tree, err := p.ParseCtx(context.Background(), nil, src)
	if err != nil {
		perr := diagnostics.NewParseError(path, 0, "tree-sitter parse failed")
		perr.Err = err
		return nil, perr
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, diagnostics.NewParseError(path, 0, "empty syntax tree")
	}
	if root.HasError() {
		line, what := firstError(root)
		return nil, diagnostics.NewParseError(path, line, what)
	}

	b := &builder{src: src}
	return b.convert(root, 0, uint32(len(src))), nil
}

// ParseString is Parse for string input.
func ParseString(path, src string) (*ast.Node, error) {
	return Parse(path, []byte(src))
}

type builder struct {
	src []byte
}

// convert builds the node for n covering src[start:end]. Bytes between
// children become trivia so that no source text is lost.
func (b *builder) convert(n *sitter.Node, start, end uint32) *ast.Node {
	kind := kindOf(n)
	node := &ast.Node{
		Kind: kind,
		Type: n.Type(),
		Line: int(n.StartPoint().Row) + 1,
	}

	count := int(n.ChildCount())
	if count == 0 || kind == ast.KindString || kind == ast.KindComment {
		node.Text = string(b.src[start:end])
		return node
	}

	pos := start
	for i := 0; i < count; i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		cs, ce := c.StartByte(), c.EndByte()
		if cs < pos {
			cs = pos
		}
		if cs > end {
			cs = end
		}
		if ce > end {
			ce = end
		}
		if ce < cs {
			ce = cs
		}
		if cs > pos {
			node.Children = append(node.Children, ast.NewTrivia(string(b.src[pos:cs])))
		}
		child := b.convert(c, cs, ce)
		node.Children = append(node.Children, child)
		// the line ending of a CRLF file belongs to trivia, not to the comment
		if child.Kind == ast.KindComment && strings.HasSuffix(child.Text, "\r") {
			child.Text = strings.TrimSuffix(child.Text, "\r")
			node.Children = append(node.Children, ast.NewTrivia("\r"))
		}
		pos = ce
	}
	if pos < end {
		node.Children = append(node.Children, ast.NewTrivia(string(b.src[pos:end])))
	}
	return node
}

// kindOf maps grammar symbols onto the closed set of node kinds.
func kindOf(n *sitter.Node) ast.Kind {
	switch n.Type() {
	case "module":
		return ast.KindModule
	case "class_definition":
		return ast.KindClass
	case "function_definition":
		return ast.KindMethod
	case "decorated_definition":
		return ast.KindDecorated
	case "expression_statement":
		if n.NamedChildCount() == 1 && n.NamedChild(0).Type() == "assignment" {
			return ast.KindAssignment
		}
		return ast.KindExprStmt
	case "import_statement", "import_from_statement", "future_import_statement":
		return ast.KindImport
	case "call":
		return ast.KindCall
	case "return_statement":
		return ast.KindReturn
	case "if_statement":
		return ast.KindIf
	case "block":
		return ast.KindBlock
	case "attribute":
		return ast.KindAttribute
	case "argument_list":
		return ast.KindArguments
	case "identifier":
		return ast.KindIdentifier
	case "string":
		return ast.KindString
	case "comment":
		return ast.KindComment
	}
	if !n.IsNamed() {
		return ast.KindToken
	}
	return ast.KindOther
}

// firstError finds the first ERROR or MISSING node in document order.
func firstError(n *sitter.Node) (int, string) {
	if n.Type() == "ERROR" {
		return int(n.StartPoint().Row) + 1, "syntax error"
	}
	if n.IsMissing() {
		return int(n.StartPoint().Row) + 1, fmt.Sprintf("missing %s", n.Type())
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c != nil && (c.HasError() || c.IsMissing()) {
			return firstError(c)
		}
	}
	return int(n.StartPoint().Row) + 1, "syntax error"
}
