package rename

import (
	"log/slog"

	"github.com/funvibe/diffconv/internal/pipeline"
)

// RenameProcessor renames the document tree in place of the parsed one.
type RenameProcessor struct {
	Renamer *Renamer
}

func (rp *RenameProcessor) Name() string { return "rename" }

func (rp *RenameProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Tree == nil || rp.Renamer.Identity() {
		return ctx
	}
	tree, changes := rp.Renamer.Rename(ctx.Tree)
	ctx.Tree = tree
	ctx.Logger.Debug("renamed document", slog.Int("changes", len(changes)))
	return ctx
}
