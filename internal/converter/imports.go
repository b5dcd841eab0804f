package converter

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/funvibe/diffconv/internal/ast"
	"github.com/funvibe/diffconv/internal/diagnostics"
	"github.com/funvibe/diffconv/internal/pipeline"
	"github.com/funvibe/diffconv/internal/symbols"
)

// ImportScanner records a binding for every name imported from an external
// model source and resolves that source on first use.
type ImportScanner struct {
	// Marker identifies model sources by a substring of the dotted path,
	// e.g. "modeling_".
	Marker string
}

func (s *ImportScanner) Name() string { return "scan-imports" }

func (s *ImportScanner) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ast.Walk(ctx.Tree, func(n *ast.Node) bool {
		if ctx.Err != nil {
			return false
		}
		if n.Kind != ast.KindImport {
			return true
		}
		im, ok := ast.ImportFromOf(n)
		if !ok || !s.isModelSource(im) {
			return false
		}

		if _, err := ctx.Modules.Resolve(im.Module); err != nil {
			if !errors.Is(err, diagnostics.ErrResolution) {
				ctx.Err = err
				return false
			}
			ctx.Logger.Warn("unresolved model source", slog.String("module", im.Module), slog.Int("line", n.Line))
		}

		for _, name := range im.Names {
			ctx.Bindings.Add(symbols.Binding{Local: name.Local(), Module: im.Module, Name: name.Name})
			ctx.Logger.Debug("bound import",
				slog.String("name", name.Local()),
				slog.String("module", im.Module))
		}
		return false
	})
	return ctx
}

func (s *ImportScanner) isModelSource(im *ast.ImportFrom) bool {
	return im.IsDotted() && !im.Wildcard && strings.Contains(im.Module, s.Marker)
}
