package converter

import (
	"errors"
	"log/slog"

	"github.com/funvibe/diffconv/internal/ast"
	"github.com/funvibe/diffconv/internal/diagnostics"
	"github.com/funvibe/diffconv/internal/pipeline"
)

// AssignScanner handles top-level `X = Y` aliases of imported names: the
// statement is replaced by the class X defined in Y's module.
type AssignScanner struct{}

func (s *AssignScanner) Name() string { return "scan-assign-bindings" }

func (s *AssignScanner) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	for _, stmt := range ctx.Tree.Significant() {
		as, ok := ast.AssignmentOf(stmt)
		if !ok {
			continue
		}
		target, ok := as.TargetName()
		if !ok {
			continue
		}
		value, ok := as.ValueName()
		if !ok {
			continue
		}
		binding, ok := ctx.Bindings.Lookup(value)
		if !ok {
			continue
		}

		catalog, err := ctx.Modules.Resolve(binding.Module)
		if err != nil {
			if errors.Is(err, diagnostics.ErrResolution) && catalog != nil {
				ctx.Logger.Warn("alias of unresolved module kept as is",
					slog.String("name", target),
					slog.String("module", binding.Module))
				continue
			}
			ctx.Err = err
			return ctx
		}

		class, ok := catalog.Classes.Find(target)
		if !ok {
			serr := diagnostics.NewSymbolLookupError(binding.Module, target)
			serr.File = ctx.FilePath
			serr.Line = stmt.Line
			ctx.Err = serr
			return ctx
		}
		ctx.AliasReplacements[stmt] = class
		ctx.Logger.Debug("alias replaced by class",
			slog.String("class", target),
			slog.String("module", binding.Module))
	}
	return ctx
}
