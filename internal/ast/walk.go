package ast

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// TransformFunc is called after a node's children have been transformed.
// orig is the node as it appears in the input tree (usable as a ParentIndex
// key); updated carries the transformed children. The returned node takes
// the place of orig in the output tree.
type TransformFunc func(orig, updated *Node) *Node

// Transform rebuilds n bottom-up. Subtrees that fn leaves untouched are
// shared with the input; the input is never modified.
func Transform(n *Node, fn TransformFunc) *Node {
	if n == nil {
		return nil
	}
	updated := n
	if len(n.Children) > 0 {
		var children []*Node
		for i, c := range n.Children {
			nc := Transform(c, fn)
			if nc != c && children == nil {
				children = make([]*Node, len(n.Children))
				copy(children, n.Children[:i])
			}
			if children != nil {
				children[i] = nc
			}
		}
		if children != nil {
			updated = n.WithChildren(children)
		}
	}
	return fn(n, updated)
}

// ParentIndex maps each node of one tree to its parent. It is built once per
// traversal that needs upward lookups; nodes themselves hold no back pointers.
type ParentIndex map[*Node]*Node

// BuildParentIndex indexes every node under root. root maps to nil.
func BuildParentIndex(root *Node) ParentIndex {
	idx := make(ParentIndex)
	if root == nil {
		return idx
	}
	idx[root] = nil
	var visit func(*Node)
	visit = func(n *Node) {
		for _, c := range n.Children {
			idx[c] = n
			visit(c)
		}
	}
	visit(root)
	return idx
}

// Parent returns the parent of n, or nil for the root and unknown nodes.
func (p ParentIndex) Parent(n *Node) *Node {
	return p[n]
}

// Enclosing walks up from the parent of n and returns the first ancestor
// whose kind is one of kinds.
func (p ParentIndex) Enclosing(n *Node, kinds ...Kind) *Node {
	for cur := p[n]; cur != nil; cur = p[cur] {
		for _, k := range kinds {
			if cur.Kind == k {
				return cur
			}
		}
	}
	return nil
}

// IsTopLevel reports whether n sits directly under the module root, either
// as a statement or as the definition wrapped by a top-level decorator.
func (p ParentIndex) IsTopLevel(n *Node) bool {
	parent := p[n]
	if parent == nil {
		return false
	}
	if parent.Kind == KindDecorated {
		parent = p[parent]
	}
	return parent != nil && parent.Kind == KindModule
}
