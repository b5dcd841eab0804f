package ast

import "strings"

// Kind tags a Node with the syntactic category the converter dispatches on.
// The set is closed; grammar symbols that no stage cares about are KindOther.
type Kind int

const (
	KindOther Kind = iota
	KindModule
	KindClass
	KindMethod // any function definition, top-level functions included
	KindDecorated
	KindAssignment
	KindImport
	KindCall
	KindReturn
	KindExprStmt
	KindIf
	KindBlock
	KindAttribute
	KindArguments
	KindIdentifier
	KindString
	KindComment
	KindToken  // keyword or punctuation
	KindTrivia // whitespace between tokens
)

var kindNames = [...]string{
	KindOther:      "Other",
	KindModule:     "Module",
	KindClass:      "Class",
	KindMethod:     "Method",
	KindDecorated:  "Decorated",
	KindAssignment: "Assignment",
	KindImport:     "Import",
	KindCall:       "Call",
	KindReturn:     "Return",
	KindExprStmt:   "ExprStmt",
	KindIf:         "If",
	KindBlock:      "Block",
	KindAttribute:  "Attribute",
	KindArguments:  "Arguments",
	KindIdentifier: "Identifier",
	KindString:     "String",
	KindComment:    "Comment",
	KindToken:      "Token",
	KindTrivia:     "Trivia",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsAtom reports whether nodes of this kind carry user-visible text that the
// rename pass rewrites.
func (k Kind) IsAtom() bool {
	return k == KindIdentifier || k == KindString || k == KindComment
}

// Node is one node of a lossless syntax tree. Leaves carry Text; interior
// nodes render as the concatenation of their children, whitespace included.
// Nodes are never mutated after construction: transforms copy the path to a
// changed node and share everything else.
type Node struct {
	Kind     Kind
	Type     string // grammar symbol, e.g. "class_definition"
	Text     string // leaves only
	Line     int    // 1-based start line, 0 for synthesized nodes
	Children []*Node
}

// Leaf returns a synthesized leaf node.
func Leaf(kind Kind, typ, text string) *Node {
	return &Node{Kind: kind, Type: typ, Text: text}
}

// NewTrivia returns a whitespace node.
func NewTrivia(text string) *Node {
	return &Node{Kind: KindTrivia, Text: text}
}

// NewToken returns a keyword or punctuation node.
func NewToken(text string) *Node {
	return &Node{Kind: KindToken, Type: text, Text: text}
}

// NewIdentifier returns an identifier node.
func NewIdentifier(name string) *Node {
	return &Node{Kind: KindIdentifier, Type: "identifier", Text: name}
}

func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Code returns the source text of the subtree.
func (n *Node) Code() string {
	if n == nil {
		return ""
	}
	if n.IsLeaf() {
		return n.Text
	}
	var sb strings.Builder
	n.writeCode(&sb)
	return sb.String()
}

func (n *Node) writeCode(sb *strings.Builder) {
	if n.IsLeaf() {
		sb.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.writeCode(sb)
	}
}

// WithChildren returns a shallow copy of n with its children replaced.
func (n *Node) WithChildren(children []*Node) *Node {
	cp := *n
	cp.Children = children
	return &cp
}

// WithText returns a copy of leaf n with its text replaced.
func (n *Node) WithText(text string) *Node {
	cp := *n
	cp.Text = text
	return &cp
}

// ReplaceChild returns a copy of n with the direct child old swapped for
// repl. n is returned as is when old is not one of its children.
func (n *Node) ReplaceChild(old, repl *Node) *Node {
	for i, c := range n.Children {
		if c == old {
			children := make([]*Node, len(n.Children))
			copy(children, n.Children)
			children[i] = repl
			return n.WithChildren(children)
		}
	}
	return n
}

// Significant returns the children that are not whitespace.
func (n *Node) Significant() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind != KindTrivia {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns the first child of the given kind, or nil.
func (n *Node) FirstChild(kind Kind) *Node {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}
