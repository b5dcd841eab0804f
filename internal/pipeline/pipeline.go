package pipeline

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Every stage depends on the one before it, so
// the run stops at the first stage that leaves an error in the context.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if ctx.Err != nil {
			ctx.Logger.Debug("pipeline stopped", "stage", processor.Name(), "error", ctx.Err)
			break
		}
	}
	return ctx
}
