package diagnostics

import (
	"errors"
	"fmt"
)

// Error codes.
const (
	CodeParse        = "P001"
	CodeResolution   = "R001"
	CodeSymbolLookup = "S001"
)

// Sentinels matched with errors.Is against an *Error.
var (
	ErrParse        = errors.New("parse error")
	ErrResolution   = errors.New("resolution error")
	ErrSymbolLookup = errors.New("symbol lookup error")
)

// Error is a diagnostic raised while converting a document.
type Error struct {
	Code    string
	Kind    error // one of the sentinels above
	File    string
	Line    int
	Message string
	Err     error // underlying cause, if any
}

func (e *Error) Error() string {
	loc := e.File
	if loc != "" && e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if loc == "" {
		return fmt.Sprintf("[%s] %s", e.Code, msg)
	}
	return fmt.Sprintf("%s: [%s] %s", loc, e.Code, msg)
}

func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewParseError reports malformed source text.
func NewParseError(file string, line int, message string) *Error {
	return &Error{Code: CodeParse, Kind: ErrParse, File: file, Line: line, Message: message}
}

// NewResolutionError reports an external module the index could not find.
func NewResolutionError(modulePath string, cause error) *Error {
	return &Error{
		Code:    CodeResolution,
		Kind:    ErrResolution,
		File:    modulePath,
		Message: fmt.Sprintf("cannot resolve module %s", modulePath),
		Err:     cause,
	}
}

// NewSymbolLookupError reports a name missing from a resolved module.
func NewSymbolLookupError(modulePath, name string) *Error {
	return &Error{
		Code:    CodeSymbolLookup,
		Kind:    ErrSymbolLookup,
		File:    modulePath,
		Message: fmt.Sprintf("class %s not found in module %s", name, modulePath),
	}
}
