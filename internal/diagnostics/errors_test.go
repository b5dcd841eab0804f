package diagnostics

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	cause := errors.New("module not found")
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"parse", NewParseError("diff.py", 3, "syntax error"), "diff.py:3: [P001] syntax error"},
		{"parse_no_line", NewParseError("diff.py", 0, "empty syntax tree"), "diff.py: [P001] empty syntax tree"},
		{"resolution", NewResolutionError("a.modeling_b", cause), "a.modeling_b: [R001] cannot resolve module a.modeling_b: module not found"},
		{"symbol", NewSymbolLookupError("a.modeling_b", "Foo"), "a.modeling_b: [S001] class Foo not found in module a.modeling_b"},
		{"no_location", &Error{Code: CodeParse, Kind: ErrParse, Message: "boom"}, "[P001] boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorMatching(t *testing.T) {
	cause := errors.New("module not found")
	err := fmt.Errorf("converting: %w", NewResolutionError("a.modeling_b", cause))

	if !errors.Is(err, ErrResolution) {
		t.Error("wrapped error should match ErrResolution")
	}
	if errors.Is(err, ErrParse) || errors.Is(err, ErrSymbolLookup) {
		t.Error("error should match only its own kind")
	}
	if !errors.Is(err, cause) {
		t.Error("error should unwrap to its cause")
	}

	var derr *Error
	if !errors.As(err, &derr) || derr.Code != CodeResolution {
		t.Errorf("errors.As failed: %v", err)
	}
}
