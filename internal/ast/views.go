package ast

import "strings"

// ClassDef is a read-only view over a class statement.
type ClassDef struct {
	Stmt       *Node // the class, or the decorated wrapper around it
	Def        *Node // the class_definition node
	Name       string
	Bases      []*Node // base expressions in declaration order
	Decorators []*Node
	Body       *Node // block
}

// ClassOf returns the class view of stmt, which may be a class definition or
// a decorated class definition.
func ClassOf(stmt *Node) (*ClassDef, bool) {
	if stmt == nil {
		return nil, false
	}
	cd := &ClassDef{Stmt: stmt}
	switch stmt.Kind {
	case KindClass:
		cd.Def = stmt
	case KindDecorated:
		for _, c := range stmt.Significant() {
			switch {
			case c.Type == "decorator":
				cd.Decorators = append(cd.Decorators, c)
			case c.Kind == KindClass:
				cd.Def = c
			}
		}
		if cd.Def == nil {
			return nil, false
		}
	default:
		return nil, false
	}

	if name := cd.Def.FirstChild(KindIdentifier); name != nil {
		cd.Name = name.Text
	}
	if args := cd.Def.FirstChild(KindArguments); args != nil {
		cd.Bases = Expressions(args)
	}
	cd.Body = cd.Def.FirstChild(KindBlock)
	return cd, cd.Name != "" && cd.Body != nil
}

// Expressions returns the argument expressions of an argument list.
func Expressions(args *Node) []*Node {
	var out []*Node
	for _, c := range args.Significant() {
		if c.Kind == KindToken || c.Kind == KindComment {
			continue
		}
		out = append(out, c)
	}
	return out
}

// FunctionName returns the name of a function statement, decorated or not.
func FunctionName(stmt *Node) (string, bool) {
	def := FunctionDef(stmt)
	if def == nil {
		return "", false
	}
	if name := def.FirstChild(KindIdentifier); name != nil {
		return name.Text, true
	}
	return "", false
}

// FunctionDef unwraps a decorated function statement.
func FunctionDef(stmt *Node) *Node {
	switch stmt.Kind {
	case KindMethod:
		return stmt
	case KindDecorated:
		return stmt.FirstChild(KindMethod)
	}
	return nil
}

// MemberKind tags the members of a class body.
type MemberKind int

const (
	MemberOther MemberKind = iota
	MemberMethod
	MemberAssignment
)

// Member is one statement of a class body.
type Member struct {
	Kind MemberKind
	Name string // method name or assignment target; empty for MemberOther
	Node *Node
}

// Members lists the statements of a class body in order.
func Members(body *Node) []Member {
	if body == nil {
		return nil
	}
	var out []Member
	for _, stmt := range body.Significant() {
		out = append(out, MemberOf(stmt))
	}
	return out
}

// MemberOf classifies one class body statement.
func MemberOf(stmt *Node) Member {
	if name, ok := FunctionName(stmt); ok {
		return Member{Kind: MemberMethod, Name: name, Node: stmt}
	}
	if as, ok := AssignmentOf(stmt); ok {
		return Member{Kind: MemberAssignment, Name: as.Target.Code(), Node: stmt}
	}
	return Member{Kind: MemberOther, Node: stmt}
}

// Assignment is a view over a simple single-target assignment statement.
type Assignment struct {
	Stmt   *Node
	Target *Node
	Value  *Node
}

// TargetName returns the target when it is a plain identifier.
func (a *Assignment) TargetName() (string, bool) {
	if a.Target.Kind == KindIdentifier {
		return a.Target.Text, true
	}
	return "", false
}

// ValueName returns the assigned value when it is a plain identifier.
func (a *Assignment) ValueName() (string, bool) {
	if a.Value.Kind == KindIdentifier {
		return a.Value.Text, true
	}
	return "", false
}

// AssignmentOf matches `target = value` statements. Chained, annotated and
// augmented assignments do not match.
func AssignmentOf(stmt *Node) (*Assignment, bool) {
	if stmt == nil || stmt.Kind != KindAssignment {
		return nil, false
	}
	parts := stmt.Significant()
	if len(parts) != 1 || parts[0].Type != "assignment" {
		return nil, false
	}
	inner := parts[0].Significant()
	if len(inner) != 3 || inner[1].Kind != KindToken || inner[1].Text != "=" {
		return nil, false
	}
	if inner[2].Type == "assignment" {
		return nil, false
	}
	return &Assignment{Stmt: stmt, Target: inner[0], Value: inner[2]}, true
}

// ImportedName is one name of a from-import.
type ImportedName struct {
	Name  string
	Alias string
}

// Local returns the name the import binds in the importing module.
func (n ImportedName) Local() string {
	if n.Alias != "" {
		return n.Alias
	}
	return n.Name
}

// ImportFrom is a view over `from <module> import <names>`.
type ImportFrom struct {
	Stmt     *Node
	Module   string
	Names    []ImportedName
	Wildcard bool
	Relative bool
}

// IsDotted reports whether the module path has at least two components.
func (im *ImportFrom) IsDotted() bool {
	return !im.Relative && strings.Contains(im.Module, ".")
}

// ImportFromOf matches from-import statements.
func ImportFromOf(stmt *Node) (*ImportFrom, bool) {
	if stmt == nil || stmt.Kind != KindImport || stmt.Type != "import_from_statement" {
		return nil, false
	}
	im := &ImportFrom{Stmt: stmt}
	afterImport := false
	for _, c := range stmt.Significant() {
		switch {
		case c.Kind == KindToken && c.Text == "import":
			afterImport = true
		case c.Kind == KindToken || c.Kind == KindComment:
		case !afterImport:
			im.Module = compact(c)
			im.Relative = c.Type == "relative_import"
		case c.Type == "wildcard_import":
			im.Wildcard = true
		case c.Type == "aliased_import":
			var parts []string
			for _, p := range c.Significant() {
				if p.Kind != KindToken {
					parts = append(parts, compact(p))
				}
			}
			if len(parts) == 2 {
				im.Names = append(im.Names, ImportedName{Name: parts[0], Alias: parts[1]})
			}
		default:
			im.Names = append(im.Names, ImportedName{Name: compact(c)})
		}
	}
	return im, im.Module != ""
}

// ImportKey returns the names bound by an import statement, used to index
// imports by what they bring into scope.
func ImportKey(stmt *Node) string {
	if im, ok := ImportFromOf(stmt); ok {
		if im.Wildcard {
			return im.Module + ".*"
		}
		locals := make([]string, len(im.Names))
		for i, n := range im.Names {
			locals[i] = n.Local()
		}
		return strings.Join(locals, ", ")
	}
	var locals []string
	for _, c := range stmt.Significant() {
		switch c.Type {
		case "dotted_name":
			locals = append(locals, compact(c))
		case "aliased_import":
			sig := c.Significant()
			locals = append(locals, compact(sig[len(sig)-1]))
		}
	}
	if len(locals) == 0 {
		return compact(stmt)
	}
	return strings.Join(locals, ", ")
}

// IsImportGuard reports whether stmt is an `if` whose branches only import,
// such as `if is_flash_attn_available(): from flash_attn import ...`.
func IsImportGuard(stmt *Node) bool {
	if stmt == nil || stmt.Kind != KindIf {
		return false
	}
	imports := 0
	ok := true
	Walk(stmt, func(n *Node) bool {
		if !ok {
			return false
		}
		if n.Kind != KindBlock {
			return true
		}
		for _, s := range n.Significant() {
			switch {
			case s.Kind == KindImport:
				imports++
			case s.Kind == KindComment, s.Type == "pass_statement":
			default:
				ok = false
			}
		}
		return false
	})
	return ok && imports > 0
}

// compact returns the code of n with whitespace removed.
func compact(n *Node) string {
	return strings.Join(strings.Fields(n.Code()), "")
}
