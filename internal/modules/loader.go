package modules

import (
	"errors"
	"log/slog"

	"github.com/funvibe/diffconv/internal/diagnostics"
	"github.com/funvibe/diffconv/internal/parser"
	"github.com/funvibe/diffconv/internal/rename"
	"github.com/funvibe/diffconv/internal/symbols"
)

// Resolver turns dotted module paths into catalogs. Every path is fetched,
// parsed and catalogued at most once; the outcome, catalog or error, is
// cached and returned on every later call.
type Resolver struct {
	index   Index
	renamer *rename.Renamer
	logger  *slog.Logger

	loaded map[string]*loadResult // cache of resolved modules by dotted path
	order  []string               // dotted paths in first-resolution order
}

type loadResult struct {
	catalog *symbols.Catalog
	err     error
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRenamer applies r to every module before it is catalogued.
func WithRenamer(r *rename.Renamer) Option {
	return func(res *Resolver) {
		res.renamer = r
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(res *Resolver) {
		if l != nil {
			res.logger = l
		}
	}
}

func NewResolver(index Index, opts ...Option) *Resolver {
	r := &Resolver{
		index:  index,
		logger: slog.Default(),
		loaded: make(map[string]*loadResult),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the catalog of a module.
//
// A module the index does not know yields a placeholder catalog together
// with a diagnostics.ErrResolution error; callers may keep going with the
// placeholder. Unparsable module source yields a nil catalog and a
// diagnostics.ErrParse error.
func (r *Resolver) Resolve(dotted string) (*symbols.Catalog, error) {
	// Check cache
	if res, ok := r.loaded[dotted]; ok {
		return res.catalog, res.err
	}

	res := r.load(dotted)
	r.loaded[dotted] = res
	if res.catalog != nil {
		r.order = append(r.order, dotted)
	}
	return res.catalog, res.err
}

func (r *Resolver) load(dotted string) *loadResult {
	logger := r.logger.With(slog.String("module", dotted))

	src, err := r.index.Lookup(dotted)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return &loadResult{err: err}
		}
		logger.Warn("module not found, embedding placeholder")
		return &loadResult{
			catalog: symbols.Placeholder(dotted),
			err:     diagnostics.NewResolutionError(dotted, err),
		}
	}

	tree, err := parser.ParseString(dotted, src)
	if err != nil {
		return &loadResult{err: err}
	}

	renamed := tree
	if r.renamer != nil {
		var changes []rename.Change
		renamed, changes = r.renamer.Rename(tree)
		logger.Debug("renamed module", slog.Int("changes", len(changes)))
	}

	catalog := symbols.Build(dotted, renamed)
	logger.Debug("catalogued module",
		slog.Int("classes", catalog.Classes.Len()),
		slog.Int("imports", catalog.Imports.Len()),
		slog.Int("assignments", catalog.Assignments.Len()),
		slog.Int("functions", catalog.Functions.Len()))
	return &loadResult{catalog: catalog}
}

// Touched returns the catalogs resolved so far in first-resolution order,
// placeholders included.
func (r *Resolver) Touched() []*symbols.Catalog {
	out := make([]*symbols.Catalog, 0, len(r.order))
	for _, dotted := range r.order {
		out = append(out, r.loaded[dotted].catalog)
	}
	return out
}
