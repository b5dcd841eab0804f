package rename_test

import (
	"strings"
	"testing"

	"github.com/funvibe/diffconv/internal/ast"
	"github.com/funvibe/diffconv/internal/parser"
	"github.com/funvibe/diffconv/internal/prettyprinter"
	"github.com/funvibe/diffconv/internal/rename"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want rename.Casing
	}{
		{"LLAMA", rename.Upper},
		{"LLAMA_CONFIG", rename.Upper},
		{"Llama", rename.Title},
		{"Llama_Model", rename.Title},
		{"llama", rename.Lower},
		{"llama_attn", rename.Lower},
		{"LLaMA", rename.Mixed},
		{"lLama", rename.Mixed},
		{"LlamaModel", rename.Mixed},
		{"123", rename.Mixed},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := rename.Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		casing rename.Casing
		token  string
		want   string
	}{
		{rename.Upper, "gemma", "GEMMA"},
		{rename.Lower, "Gemma", "gemma"},
		{rename.Title, "gemma", "Gemma"},
		{rename.Mixed, "gEMMA", "Gemma"},
		{rename.Title, "new_model", "New_Model"},
	}
	for _, tt := range tests {
		if got := rename.Apply(tt.casing, tt.token); got != tt.want {
			t.Errorf("Apply(%v, %q) = %q, want %q", tt.casing, tt.token, got, tt.want)
		}
	}
}

func TestReplaceTextPreservesCase(t *testing.T) {
	r := rename.New("llama", "gemma", nil)
	tests := map[string]string{
		"LLAMA_CONFIG":          "GEMMA_CONFIG",
		"LlamaModel":            "GemmaModel",
		"llama_attn":            "gemma_attn",
		"llamaModel":            "gemmaModel",
		"llama_Model":           "gemma_Model",
		"LLaMA":                 "Gemma",
		"modeling_llama":        "modeling_gemma",
		"LlamaForLlamaLM":       "GemmaForGemmaLM",
		"unrelated":             "unrelated",
		"# Copied from LLAMA 2": "# Copied from GEMMA 2",
	}
	for in, want := range tests {
		if got := r.ReplaceText(in); got != want {
			t.Errorf("ReplaceText(%q) = %q, want %q", in, got, want)
		}
	}
}

const renameSource = `# Llama model, see LLAMA docs
from transformers.models.llama.configuration_llama import LlamaConfig

LLAMA_INPUTS_DOCSTRING = "the llama inputs"


class LlamaAttention(nn.Module):
    def __init__(self, config: LlamaConfig):
        self.llama_attn = None
        self.value = 1 + 2
`

func TestRenameTree(t *testing.T) {
	tree, err := parser.ParseString("modeling_llama.py", renameSource)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := rename.New("llama", "gemma", nil)
	renamed, changes := r.Rename(tree)

	got := prettyprinter.Render(renamed)
	want := `# Gemma model, see GEMMA docs
from transformers.models.gemma.configuration_gemma import GemmaConfig

GEMMA_INPUTS_DOCSTRING = "the gemma inputs"


class GemmaAttention(nn.Module):
    def __init__(self, config: GemmaConfig):
        self.gemma_attn = None
        self.value = 1 + 2
`
	if got != want {
		t.Errorf("renamed source mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}

	// The input tree is untouched.
	if prettyprinter.Render(tree) != renameSource {
		t.Error("Rename modified its input tree")
	}

	kinds := map[ast.Kind]int{}
	for _, c := range changes {
		kinds[c.Kind]++
		if c.Before == c.After {
			t.Errorf("reported a no-op change: %+v", c)
		}
	}
	if kinds[ast.KindComment] != 1 || kinds[ast.KindString] != 1 {
		t.Errorf("unexpected change kinds: %v", kinds)
	}
	// llama, configuration_llama, LlamaConfig (x2), LLAMA_INPUTS_DOCSTRING,
	// LlamaAttention, llama_attn
	if kinds[ast.KindIdentifier] != 7 {
		t.Errorf("identifier changes = %d, want 7", kinds[ast.KindIdentifier])
	}
}

func TestRenameIdentity(t *testing.T) {
	tree, err := parser.ParseString("x.py", renameSource)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, tok := range []string{"llama", "LLaMA", "Llama", ""} {
		r := rename.New(tok, tok, nil)
		out, changes := r.Rename(tree)
		if out != tree {
			t.Errorf("rename(%q, %q) returned a new tree", tok, tok)
		}
		if len(changes) != 0 {
			t.Errorf("rename(%q, %q) reported %d changes", tok, tok, len(changes))
		}
	}
}

func TestRenameLeavesKeywordsAlone(t *testing.T) {
	tree, err := parser.ParseString("x.py", "def definitely(): pass\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, _ := rename.New("def", "fn", nil).Rename(tree)
	if got := prettyprinter.Render(out); !strings.HasPrefix(got, "def fninitely(") {
		t.Errorf("got %q", got)
	}
}
