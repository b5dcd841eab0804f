package parser_test

import (
	"testing"

	"github.com/funvibe/diffconv/internal/parser"
	"github.com/funvibe/diffconv/internal/prettyprinter"
)

// FuzzRoundTrip checks render(parse(src)) == src for every src that parses.
func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte("x = 1\n"))
	f.Add([]byte("class A(B):\n    def f(self):\n        return super().f()\n"))
	f.Add([]byte("# c\n@d\nclass A:\n    '''doc'''\n    x: int = 1\n"))
	f.Add([]byte("if a:\n    from b import c\nelse:\n    c = None\n"))

	f.Fuzz(func(t *testing.T, data []byte) {
		// Limit input size to keep runs short
		if len(data) > 4096 {
			return
		}
		tree, err := parser.Parse("fuzz.py", data)
		if err != nil {
			return
		}
		if got := prettyprinter.Render(tree); got != string(data) {
			t.Fatalf("round trip mismatch:\n--- input\n%q\n--- rendered\n%q", data, got)
		}
	})
}
