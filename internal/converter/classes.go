package converter

import (
	"log/slog"

	"github.com/funvibe/diffconv/internal/ast"
	"github.com/funvibe/diffconv/internal/merger"
	"github.com/funvibe/diffconv/internal/pipeline"
	"github.com/funvibe/diffconv/internal/symbols"
)

// ClassMerger merges every top-level class of the document into the base it
// overrides and makes super() delegation explicit in the replaced methods.
type ClassMerger struct{}

func (cm *ClassMerger) Name() string { return "merge-classes" }

func (cm *ClassMerger) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	m := merger.New(ctx.Bindings, catalogSource{ctx.Modules})
	for _, stmt := range ctx.Tree.Significant() {
		local, ok := ast.ClassOf(stmt)
		if !ok {
			continue
		}
		res, err := m.Merge(local)
		if err != nil {
			ctx.Err = err
			return ctx
		}
		if !res.Merged {
			continue
		}
		ctx.ClassReplacements[stmt] = merger.RewriteSuper(res.Class, res.Overridden)
		ctx.Logger.Debug("merged class",
			slog.String("class", local.Name),
			slog.String("module", res.Module),
			slog.Any("overridden", res.Overridden))
	}
	return ctx
}

// catalogSource adapts a pipeline.ModuleSource to merger.CatalogSource.
type catalogSource struct {
	modules pipeline.ModuleSource
}

func (c catalogSource) Catalog(dotted string) (*symbols.Catalog, error) {
	return c.modules.Resolve(dotted)
}
