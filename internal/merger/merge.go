package merger

import (
	"errors"

	"github.com/funvibe/diffconv/internal/ast"
	"github.com/funvibe/diffconv/internal/diagnostics"
	"github.com/funvibe/diffconv/internal/symbols"
)

// CatalogSource hands out module catalogs.
type CatalogSource interface {
	Catalog(dotted string) (*symbols.Catalog, error)
}

// Merger folds local override classes into the external classes they extend.
type Merger struct {
	bindings *symbols.Bindings
	catalogs CatalogSource
}

func New(bindings *symbols.Bindings, catalogs CatalogSource) *Merger {
	return &Merger{bindings: bindings, catalogs: catalogs}
}

// Result describes the outcome of merging one class.
type Result struct {
	Class      *ast.Node // merged statement; the local statement when not merged
	Merged     bool
	Module     string   // module the base class came from
	Overridden []string // base methods replaced by local ones, in base order
}

// Merge resolves the base of local and merges the two. A class none of whose
// bases resolves to a same-named class in an external module is returned
// unchanged.
func (m *Merger) Merge(local *ast.ClassDef) (*Result, error) {
	base, module, err := m.findBase(local)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return &Result{Class: local.Stmt}, nil
	}
	stmt, overridden := MergeBody(local, base)
	return &Result{Class: stmt, Merged: true, Module: module, Overridden: overridden}, nil
}

// findBase returns the first base, in declaration order, bound to a module
// whose catalog defines a class named like local.
func (m *Merger) findBase(local *ast.ClassDef) (*ast.ClassDef, string, error) {
	for _, expr := range local.Bases {
		if expr.Kind != ast.KindIdentifier {
			continue
		}
		binding, ok := m.bindings.Lookup(expr.Text)
		if !ok {
			continue
		}
		catalog, err := m.catalogs.Catalog(binding.Module)
		if err != nil && !(errors.Is(err, diagnostics.ErrResolution) && catalog != nil) {
			return nil, "", err
		}
		if base, ok := catalog.Class(local.Name); ok {
			return base, binding.Module, nil
		}
	}
	return nil, "", nil
}

// MergeBody builds the merged class statement: the base class, with every
// base method that local also defines replaced in place by local's version.
// Local methods the base does not define are dropped, and local non-method
// members are ignored. The base's bases and decorators are kept. Local
// methods are re-indented to the base's indent unit.
func MergeBody(local, base *ast.ClassDef) (*ast.Node, []string) {
	baseIndent := ""
	if first := base.Body.Significant(); len(first) > 0 {
		baseIndent = memberIndent(base.Def, base.Body, first[0])
	}
	overrides := make(map[string]*ast.Node)
	for _, member := range ast.Members(local.Body) {
		if member.Kind != ast.MemberMethod {
			continue
		}
		indent := memberIndent(local.Def, local.Body, member.Node)
		overrides[member.Name] = reindent(member.Node, indent, baseIndent)
	}

	var overridden []string
	seen := make(map[string]bool)
	children := make([]*ast.Node, len(base.Body.Children))
	for i, c := range base.Body.Children {
		children[i] = c
		if c.Kind == ast.KindTrivia {
			continue
		}
		member := ast.MemberOf(c)
		if member.Kind != ast.MemberMethod {
			continue
		}
		repl, ok := overrides[member.Name]
		if !ok {
			continue
		}
		children[i] = repl
		if !seen[member.Name] {
			seen[member.Name] = true
			overridden = append(overridden, member.Name)
		}
	}

	def := base.Def.ReplaceChild(base.Body, base.Body.WithChildren(children))
	stmt := def
	if base.Stmt != base.Def {
		stmt = base.Stmt.ReplaceChild(base.Def, def)
	}
	return stmt, overridden
}
