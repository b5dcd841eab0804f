package rename

import (
	"log/slog"
	"regexp"

	"github.com/funvibe/diffconv/internal/ast"
)

// Change records one atom rewritten by the rename pass.
type Change struct {
	Line   int
	Kind   ast.Kind
	Before string
	After  string
}

// Renamer replaces every case-insensitive occurrence of an old token with a
// casing-matched new token in identifiers, strings and comments.
type Renamer struct {
	old    string
	new    string
	re     *regexp.Regexp
	logger *slog.Logger
}

// New returns a renamer for old -> new. A nil logger means slog.Default().
func New(old, new string, logger *slog.Logger) *Renamer {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Renamer{old: old, new: new, logger: logger}
	if old != "" {
		r.re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(old))
	}
	return r
}

// Identity reports whether the renamer leaves every tree unchanged.
func (r *Renamer) Identity() bool {
	return r == nil || r.re == nil || r.old == r.new
}

// ReplaceText applies the rename to a single piece of text.
func (r *Renamer) ReplaceText(text string) string {
	if r.Identity() {
		return text
	}
	return r.re.ReplaceAllStringFunc(text, func(match string) string {
		return Apply(Classify(match), r.new)
	})
}

// Rename returns a renamed copy of tree together with every atom it changed.
// The input tree is left as is; unchanged subtrees are shared.
func (r *Renamer) Rename(tree *ast.Node) (*ast.Node, []Change) {
	if r.Identity() || tree == nil {
		return tree, nil
	}
	var changes []Change
	out := ast.Transform(tree, func(orig, updated *ast.Node) *ast.Node {
		if !orig.Kind.IsAtom() || !orig.IsLeaf() {
			return updated
		}
		text := r.ReplaceText(orig.Text)
		if text == orig.Text {
			return updated
		}
		changes = append(changes, Change{Line: orig.Line, Kind: orig.Kind, Before: orig.Text, After: text})
		r.logger.Debug("changed",
			slog.Int("line", orig.Line),
			slog.String("kind", orig.Kind.String()),
			slog.String("before", orig.Text),
			slog.String("after", text))
		return updated.WithText(text)
	})
	return out, changes
}
