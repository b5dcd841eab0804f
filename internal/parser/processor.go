package parser

import (
	"github.com/funvibe/diffconv/internal/pipeline"
)

// ParserProcessor parses the document source into ctx.Tree.
type ParserProcessor struct{}

func (pp *ParserProcessor) Name() string { return "parse" }

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	tree, err := ParseString(ctx.FilePath, ctx.Source)
	if err != nil {
		ctx.Err = err
		return ctx
	}
	ctx.Tree = tree
	return ctx
}
