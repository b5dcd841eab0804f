package symbols

import "github.com/funvibe/diffconv/internal/ast"

// Table maps names to statements and remembers insertion order. Redefining
// a name replaces the statement but keeps the name's first position.
type Table struct {
	names []string
	nodes map[string]*ast.Node
}

func NewTable() *Table {
	return &Table{nodes: make(map[string]*ast.Node)}
}

// Define records name -> node.
func (t *Table) Define(name string, node *ast.Node) {
	if _, ok := t.nodes[name]; !ok {
		t.names = append(t.names, name)
	}
	t.nodes[name] = node
}

// Find looks up a name.
func (t *Table) Find(name string) (*ast.Node, bool) {
	n, ok := t.nodes[name]
	return n, ok
}

// Names returns the defined names in first-definition order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Nodes returns the statements in first-definition order.
func (t *Table) Nodes() []*ast.Node {
	out := make([]*ast.Node, len(t.names))
	for i, name := range t.names {
		out[i] = t.nodes[name]
	}
	return out
}

func (t *Table) Len() int {
	return len(t.names)
}
