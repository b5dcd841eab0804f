package pipeline

import (
	"log/slog"

	"github.com/funvibe/diffconv/internal/ast"
	"github.com/funvibe/diffconv/internal/symbols"
)

// Processor is one stage of a conversion.
type Processor interface {
	Name() string
	Process(ctx *PipelineContext) *PipelineContext
}

// ModuleSource resolves external modules into catalogs.
type ModuleSource interface {
	Resolve(dotted string) (*symbols.Catalog, error)
	Touched() []*symbols.Catalog
}

// PipelineContext carries the state of one conversion between stages.
type PipelineContext struct {
	FilePath string
	Source   string
	Tree     *ast.Node

	Modules  ModuleSource
	Bindings *symbols.Bindings

	// AliasReplacements maps `X = Y` statements of the document to the class
	// X of Y's module that replaces them.
	AliasReplacements map[*ast.Node]*ast.Node
	// ClassReplacements maps local class statements to their merged form.
	ClassReplacements map[*ast.Node]*ast.Node

	Assembled *ast.Node // the standalone document
	Output    string

	Logger *slog.Logger
	Err    error
}

func NewPipelineContext(source string, modules ModuleSource) *PipelineContext {
	return &PipelineContext{
		Source:            source,
		Modules:           modules,
		Bindings:          symbols.NewBindings(),
		AliasReplacements: make(map[*ast.Node]*ast.Node),
		ClassReplacements: make(map[*ast.Node]*ast.Node),
		Logger:            slog.Default(),
	}
}
