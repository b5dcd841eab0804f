// Package converter expands a diff document into a standalone module.
//
// A diff document imports classes from external model sources (modules whose
// dotted path contains a marker such as "modeling_") and declares classes
// extending them. Conversion runs these stages over the parsed document:
//
//  1. scan-imports: bind imported names to their model sources.
//  2. scan-assign-bindings: mark `X = Y` aliases for replacement by class X
//     of Y's module.
//  3. merge-classes: merge each local class into the same-named base class.
//  4. assemble: emit the declarations of every touched module, then the
//     document body with replacements applied.
package converter

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/funvibe/diffconv/internal/config"
	"github.com/funvibe/diffconv/internal/modules"
	"github.com/funvibe/diffconv/internal/parser"
	"github.com/funvibe/diffconv/internal/pipeline"
	"github.com/funvibe/diffconv/internal/rename"
)

// Converter turns diff documents into standalone ones. It is cheap to build
// and holds no state between conversions; every conversion resolves modules
// afresh.
type Converter struct {
	cfg    *config.Config
	index  modules.Index
	logger *slog.Logger
}

// New returns a converter reading external modules from index. A nil cfg
// means config.Default(); a nil logger means slog.Default().
func New(cfg *config.Config, index modules.Index, logger *slog.Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{cfg: cfg, index: index, logger: logger}
}

// Convert expands the diff document at path with the given source.
func (c *Converter) Convert(path, source string) (string, error) {
	ctx := c.run(path, source)
	if ctx.Err != nil {
		return "", ctx.Err
	}
	return ctx.Output, nil
}

// Check reports whether existing equals the expansion of source.
func (c *Converter) Check(path, source, existing string) (bool, error) {
	out, err := c.Convert(path, source)
	if err != nil {
		return false, err
	}
	return out == existing, nil
}

// Inspect runs the conversion and returns the full pipeline state, for
// callers that want the trees rather than the text.
func (c *Converter) Inspect(path, source string) *pipeline.PipelineContext {
	return c.run(path, source)
}

func (c *Converter) run(path, source string) *pipeline.PipelineContext {
	logger := c.logger.With(slog.String("file", path), slog.String("conversion", uuid.NewString()))
	renamer := rename.New(c.cfg.Rename.From, c.cfg.Rename.To, logger)
	resolver := modules.NewResolver(c.index,
		modules.WithRenamer(renamer),
		modules.WithLogger(logger))

	ctx := pipeline.NewPipelineContext(source, resolver)
	ctx.FilePath = path
	ctx.Logger = logger

	stages := []pipeline.Processor{&parser.ParserProcessor{}}
	if c.cfg.RenameDiff {
		stages = append(stages, &rename.RenameProcessor{Renamer: renamer})
	}
	stages = append(stages,
		&ImportScanner{Marker: c.cfg.SourceMarker},
		&AssignScanner{},
		&ClassMerger{},
		&Assembler{},
	)

	ctx = pipeline.New(stages...).Run(ctx)
	if ctx.Err != nil {
		logger.Debug("conversion failed", slog.Any("error", ctx.Err))
	}
	return ctx
}
