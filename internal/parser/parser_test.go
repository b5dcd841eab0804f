package parser_test

import (
	"errors"
	"testing"

	"github.com/funvibe/diffconv/internal/ast"
	"github.com/funvibe/diffconv/internal/diagnostics"
	"github.com/funvibe/diffconv/internal/parser"
	"github.com/funvibe/diffconv/internal/pipeline"
	"github.com/funvibe/diffconv/internal/prettyprinter"
)

func TestParserRoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"simple_assignment", "a = 5\n"},
		{"no_trailing_newline", "a = 5"},
		{"imports", "import torch\nfrom torch import nn\nfrom .utils import helper as h\n"},
		{"parenthesized_import", "from a.b import (\n    c,\n    d,  # trailing\n)\n"},
		{"class", "class A(B, metaclass=M):\n    x: int = 1\n\n    def f(self, y):\n        return y\n"},
		{"decorated", "@dataclass\n@other(1)\nclass A:\n    pass\n"},
		{"comments", "# header\n\nx = 1  # inline\n\n\n# trailing\n"},
		{"strings", "s = \"\"\"doc\n  string\"\"\"\nt = f'{s!r}'\n"},
		{"tabs", "if x:\n\ty = 1\n"},
		{"guarded_import", "if is_available():\n    from flash import attn\nelse:\n    attn = None\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := parser.ParseString("test.py", tc.input)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if got := prettyprinter.Render(tree); got != tc.input {
				t.Errorf("round trip mismatch:\n--- expected\n%q\n--- actual\n%q", tc.input, got)
			}
		})
	}
}

func TestParserKinds(t *testing.T) {
	src := `import os
from a.modeling_b import C as D
x = 1
print(x)
@dec
class A(D):
    def f(self):
        return super().f()
def g():
    pass
if cond:
    import y
`
	tree, err := parser.ParseString("test.py", src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if tree.Kind != ast.KindModule {
		t.Fatalf("root kind = %s, want Module", tree.Kind)
	}

	want := []ast.Kind{
		ast.KindImport,
		ast.KindImport,
		ast.KindAssignment,
		ast.KindExprStmt,
		ast.KindDecorated,
		ast.KindMethod,
		ast.KindIf,
	}
	stmts := tree.Significant()
	if len(stmts) != len(want) {
		t.Fatalf("got %d statements, want %d", len(stmts), len(want))
	}
	for i, k := range want {
		if stmts[i].Kind != k {
			t.Errorf("statement %d: kind = %s, want %s", i, stmts[i].Kind, k)
		}
	}

	if stmts[2].Line != 3 {
		t.Errorf("assignment line = %d, want 3", stmts[2].Line)
	}

	var calls, returns int
	ast.Walk(stmts[4], func(n *ast.Node) bool {
		switch n.Kind {
		case ast.KindCall:
			calls++
		case ast.KindReturn:
			returns++
		}
		return true
	})
	if calls != 2 || returns != 1 {
		t.Errorf("calls = %d, returns = %d; want 2 and 1", calls, returns)
	}
}

func TestParserAtomsAreLeaves(t *testing.T) {
	tree, err := parser.ParseString("test.py", "s = 'a' 'b'  # note\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	var atoms []string
	ast.Walk(tree, func(n *ast.Node) bool {
		if n.Kind.IsAtom() {
			if !n.IsLeaf() {
				t.Errorf("%s %q has children", n.Kind, n.Text)
			}
			atoms = append(atoms, n.Text)
		}
		return true
	})
	want := []string{"s", "'a'", "'b'", "# note"}
	if len(atoms) != len(want) {
		t.Fatalf("atoms = %q, want %q", atoms, want)
	}
	for i := range want {
		if atoms[i] != want[i] {
			t.Errorf("atom %d = %q, want %q", i, atoms[i], want[i])
		}
	}
}

func TestParserErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		line  int
	}{
		{"bad_class", "class (:\n", 1},
		{"bad_second_line", "x = 1\ny = = 2\n", 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parser.ParseString("bad.py", tc.input)
			if !errors.Is(err, diagnostics.ErrParse) {
				t.Fatalf("err = %v, want ErrParse", err)
			}
			var derr *diagnostics.Error
			if !errors.As(err, &derr) {
				t.Fatalf("err is %T, want *diagnostics.Error", err)
			}
			if derr.Code != diagnostics.CodeParse {
				t.Errorf("code = %s, want %s", derr.Code, diagnostics.CodeParse)
			}
			if derr.File != "bad.py" || derr.Line != tc.line {
				t.Errorf("location = %s:%d, want bad.py:%d", derr.File, derr.Line, tc.line)
			}
		})
	}
}

func TestParserProcessor(t *testing.T) {
	ctx := pipeline.NewPipelineContext("x = 1\n", nil)
	ctx.FilePath = "diff.py"
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if ctx.Err != nil {
		t.Fatalf("unexpected error: %v", ctx.Err)
	}
	if ctx.Tree == nil || prettyprinter.Render(ctx.Tree) != "x = 1\n" {
		t.Error("processor did not store the parsed tree")
	}

	ctx = pipeline.NewPipelineContext("def (:\n", nil)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if !errors.Is(ctx.Err, diagnostics.ErrParse) {
		t.Errorf("err = %v, want ErrParse", ctx.Err)
	}
}

func TestParserCRLFComments(t *testing.T) {
	src := "# header\r\nx = 1  # inline\r\n"
	tree, err := parser.ParseString("crlf.py", src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := prettyprinter.Render(tree); got != src {
		t.Errorf("round trip mismatch: %q", got)
	}
	ast.Walk(tree, func(n *ast.Node) bool {
		if n.Kind == ast.KindComment && n.Text != "# header" && n.Text != "# inline" {
			t.Errorf("comment text = %q", n.Text)
		}
		return true
	})
}
