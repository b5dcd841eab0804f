package modules

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/funvibe/diffconv/internal/diagnostics"
	"github.com/funvibe/diffconv/internal/rename"
)

// countingIndex records how often each module is fetched.
type countingIndex struct {
	MapIndex
	fetches map[string]int
}

func newCountingIndex(m MapIndex) *countingIndex {
	return &countingIndex{MapIndex: m, fetches: make(map[string]int)}
}

func (c *countingIndex) Lookup(dotted string) (string, error) {
	c.fetches[dotted]++
	return c.MapIndex.Lookup(dotted)
}

const llamaModule = `import torch


class LlamaMLP(nn.Module):
    def forward(self, x):
        return x
`

func TestResolverFetchesOnce(t *testing.T) {
	idx := newCountingIndex(MapIndex{"t.models.llama.modeling_llama": llamaModule})
	r := NewResolver(idx)

	first, err := r.Resolve("t.models.llama.modeling_llama")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := r.Resolve("t.models.llama.modeling_llama")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Error("second resolve returned a different catalog")
	}
	if n := idx.fetches["t.models.llama.modeling_llama"]; n != 1 {
		t.Errorf("fetched %d times, want 1", n)
	}
	if _, ok := first.Class("LlamaMLP"); !ok {
		t.Error("LlamaMLP missing from catalog")
	}
}

func TestResolverRenamesBeforeCataloguing(t *testing.T) {
	idx := MapIndex{"m.modeling_llama": llamaModule}
	r := NewResolver(idx, WithRenamer(rename.New("llama", "gemma", nil)))

	c, err := r.Resolve("m.modeling_llama")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.Class("GemmaMLP"); !ok {
		t.Errorf("classes = %v, want GemmaMLP", c.Classes.Names())
	}
	if _, ok := c.Class("LlamaMLP"); ok {
		t.Error("catalog still holds the old name")
	}
}

func TestResolverMissingModule(t *testing.T) {
	idx := newCountingIndex(MapIndex{})
	r := NewResolver(idx)

	c, err := r.Resolve("a.modeling_missing")
	if !errors.Is(err, diagnostics.ErrResolution) {
		t.Fatalf("err = %v, want ErrResolution", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("resolution error should wrap ErrNotFound: %v", err)
	}
	if c == nil || c.Placeholder == nil {
		t.Fatal("expected a placeholder catalog")
	}

	again, err2 := r.Resolve("a.modeling_missing")
	if again != c || !errors.Is(err2, diagnostics.ErrResolution) {
		t.Error("missing module outcome should be cached")
	}
	if idx.fetches["a.modeling_missing"] != 1 {
		t.Errorf("fetched %d times, want 1", idx.fetches["a.modeling_missing"])
	}
	if len(r.Touched()) != 1 {
		t.Errorf("placeholder should count as touched")
	}
}

func TestResolverParseError(t *testing.T) {
	idx := newCountingIndex(MapIndex{"a.modeling_bad": "class (:\n"})
	r := NewResolver(idx)

	c, err := r.Resolve("a.modeling_bad")
	if !errors.Is(err, diagnostics.ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
	if c != nil {
		t.Error("no catalog expected for unparsable source")
	}
	_, _ = r.Resolve("a.modeling_bad")
	if idx.fetches["a.modeling_bad"] != 1 {
		t.Errorf("fetched %d times, want 1", idx.fetches["a.modeling_bad"])
	}
	if len(r.Touched()) != 0 {
		t.Error("failed modules are not touched")
	}
}

func TestResolverTouchedOrder(t *testing.T) {
	idx := MapIndex{
		"p.modeling_b": "import b\n",
		"p.modeling_a": "import a\n",
	}
	r := NewResolver(idx)
	for _, p := range []string{"p.modeling_b", "p.modeling_a", "p.modeling_b"} {
		if _, err := r.Resolve(p); err != nil {
			t.Fatalf("resolve %s: %v", p, err)
		}
	}
	touched := r.Touched()
	if len(touched) != 2 || touched[0].Path != "p.modeling_b" || touched[1].Path != "p.modeling_a" {
		t.Errorf("touched order wrong: %v", touched)
	}
}

func TestFSIndex(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	write := func(root, rel, content string) {
		t.Helper()
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(second, "pkg/models/modeling_x.py", "x = 2\n")
	write(first, "pkg/models/modeling_x.py", "x = 1\n")
	write(second, "pkg/models/modeling_y/__init__.py", "y = 1\n")

	idx, err := NewFSIndex([]string{first, second}, 4)
	if err != nil {
		t.Fatal(err)
	}

	src, err := idx.Lookup("pkg.models.modeling_x")
	if err != nil || src != "x = 1\n" {
		t.Errorf("Lookup(modeling_x) = %q, %v; first root should win", src, err)
	}
	src, err = idx.Lookup("pkg.models.modeling_y")
	if err != nil || src != "y = 1\n" {
		t.Errorf("Lookup(modeling_y) = %q, %v; package __init__ expected", src, err)
	}
	if _, err := idx.Lookup("pkg.models.modeling_z"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	// A memoised location that disappears is reported as not found.
	if err := os.Remove(filepath.Join(first, "pkg/models/modeling_x.py")); err != nil {
		t.Fatal(err)
	}
	if _, err := idx.Lookup("pkg.models.modeling_x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound after removal", err)
	}
	src, err = idx.Lookup("pkg.models.modeling_x")
	if err != nil || src != "x = 2\n" {
		t.Errorf("Lookup after removal = %q, %v; second root expected", src, err)
	}
}
