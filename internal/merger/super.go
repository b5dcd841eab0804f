package merger

import (
	"github.com/funvibe/diffconv/internal/ast"
	"github.com/funvibe/diffconv/internal/config"
)

// RewriteSuper makes parent delegation explicit in overridden methods.
// Within a method named in overridden, a zero-argument super() used as the
// receiver of a call that is either a statement of its own or the value of
// a return becomes super(<method name>). Parentheses and await around the
// call are looked through:
//
//	return super().forward(x)  ->  return super(forward).forward(x)
//	await super().forward(x)   ->  await super(forward).forward(x)
//
// Other methods, nested functions and other uses of super() are untouched.
func RewriteSuper(stmt *ast.Node, overridden []string) *ast.Node {
	if len(overridden) == 0 {
		return stmt
	}
	names := make(map[string]bool, len(overridden))
	for _, name := range overridden {
		names[name] = true
	}

	parents := ast.BuildParentIndex(stmt)
	return ast.Transform(stmt, func(orig, updated *ast.Node) *ast.Node {
		if !isBareSuper(orig) || !isDelegation(orig, parents) {
			return updated
		}
		scope := parents.Enclosing(orig, ast.KindMethod, ast.KindClass)
		if scope == nil || scope.Kind != ast.KindMethod {
			return updated
		}
		name, ok := ast.FunctionName(scope)
		if !ok || !names[name] {
			return updated
		}
		return withMarker(updated, name)
	})
}

// isBareSuper matches `super()`.
func isBareSuper(n *ast.Node) bool {
	if n.Kind != ast.KindCall {
		return false
	}
	parts := n.Significant()
	if len(parts) != 2 {
		return false
	}
	fn, args := parts[0], parts[1]
	return fn.Kind == ast.KindIdentifier && fn.Text == config.SuperFuncName &&
		args.Kind == ast.KindArguments && len(ast.Expressions(args)) == 0
}

// isDelegation matches super() in `super().m(...)` where that call, possibly
// parenthesized or awaited, is an expression statement or a returned value.
func isDelegation(super *ast.Node, parents ast.ParentIndex) bool {
	attr := parents.Parent(super)
	if attr == nil || attr.Kind != ast.KindAttribute || firstSignificant(attr) != super {
		return false
	}
	call := parents.Parent(attr)
	if call == nil || call.Kind != ast.KindCall || firstSignificant(call) != attr {
		return false
	}
	stmt := parents.Parent(call)
	for stmt != nil && isWrapper(stmt) {
		stmt = parents.Parent(stmt)
	}
	return stmt != nil && (stmt.Kind == ast.KindExprStmt || stmt.Kind == ast.KindReturn)
}

func isWrapper(n *ast.Node) bool {
	return n.Kind == ast.KindOther && (n.Type == "parenthesized_expression" || n.Type == "await")
}

func firstSignificant(n *ast.Node) *ast.Node {
	for _, c := range n.Children {
		if c.Kind != ast.KindTrivia {
			return c
		}
	}
	return nil
}

// withMarker rewrites super() to super(name).
func withMarker(call *ast.Node, name string) *ast.Node {
	args := call.FirstChild(ast.KindArguments)
	marked := args.WithChildren([]*ast.Node{
		ast.NewToken("("),
		ast.NewIdentifier(name),
		ast.NewToken(")"),
	})
	return call.ReplaceChild(args, marked)
}
