package symbols

import (
	"fmt"

	"github.com/funvibe/diffconv/internal/ast"
	"github.com/funvibe/diffconv/internal/config"
)

// Catalog indexes the module-level declarations of one external module.
// Nested scopes are never catalogued.
type Catalog struct {
	Path string

	Classes     *Table // class name -> class statement (decorators included)
	Imports     *Table // bound names -> import statement
	Assignments *Table // target -> assignment statement
	Functions   *Table // function name -> function statement

	// GuardedImports holds top-level `if` blocks that only import, keyed by
	// their source text.
	GuardedImports *Table

	// Placeholder is embedded in place of the module's declarations when
	// the module could not be found.
	Placeholder *ast.Node
}

func NewCatalog(path string) *Catalog {
	return &Catalog{
		Path:           path,
		Classes:        NewTable(),
		Imports:        NewTable(),
		Assignments:    NewTable(),
		Functions:      NewTable(),
		GuardedImports: NewTable(),
	}
}

// Build catalogues the top level of a parsed module.
func Build(path string, tree *ast.Node) *Catalog {
	c := NewCatalog(path)
	parents := ast.BuildParentIndex(tree)

	ast.Walk(tree, func(n *ast.Node) bool {
		switch n.Kind {
		case ast.KindModule:
			return true
		case ast.KindClass:
			if parents.IsTopLevel(n) {
				c.defineClass(statementOf(n, parents))
			}
		case ast.KindMethod:
			if parents.IsTopLevel(n) {
				if name, ok := ast.FunctionName(n); ok {
					c.Functions.Define(name, statementOf(n, parents))
				}
			}
		case ast.KindAssignment:
			if parents.Parent(n) == tree {
				if as, ok := ast.AssignmentOf(n); ok {
					c.Assignments.Define(as.Target.Code(), n)
				}
			}
		case ast.KindImport:
			if parents.Parent(n) == tree {
				c.Imports.Define(ast.ImportKey(n), n)
			}
		case ast.KindIf:
			if parents.Parent(n) == tree && ast.IsImportGuard(n) {
				c.GuardedImports.Define(n.Code(), n)
			}
		case ast.KindDecorated:
			return parents.Parent(n) == tree
		}
		return false
	})
	return c
}

// statementOf returns the decorated wrapper of a definition when there is
// one, so decorators travel with the definition.
func statementOf(def *ast.Node, parents ast.ParentIndex) *ast.Node {
	if p := parents.Parent(def); p != nil && p.Kind == ast.KindDecorated {
		return p
	}
	return def
}

func (c *Catalog) defineClass(stmt *ast.Node) {
	if cd, ok := ast.ClassOf(stmt); ok {
		c.Classes.Define(cd.Name, stmt)
	}
}

// Placeholder returns the catalog recorded for a module that was not found.
func Placeholder(path string) *Catalog {
	c := NewCatalog(path)
	c.Placeholder = ast.Leaf(ast.KindComment, "comment", fmt.Sprintf(config.PlaceholderFormat, path))
	return c
}

// Class returns the class view for name.
func (c *Catalog) Class(name string) (*ast.ClassDef, bool) {
	stmt, ok := c.Classes.Find(name)
	if !ok {
		return nil, false
	}
	return ast.ClassOf(stmt)
}

// Preamble returns the statements the module contributes to an assembled
// document, in order: placeholder, imports, guarded imports, assignments,
// functions.
func (c *Catalog) Preamble() []*ast.Node {
	var out []*ast.Node
	if c.Placeholder != nil {
		out = append(out, c.Placeholder)
	}
	out = append(out, c.Imports.Nodes()...)
	out = append(out, c.GuardedImports.Nodes()...)
	out = append(out, c.Assignments.Nodes()...)
	out = append(out, c.Functions.Nodes()...)
	return out
}
