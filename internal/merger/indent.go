package merger

import (
	"strings"

	"github.com/funvibe/diffconv/internal/ast"
)

// memberIndent returns the whitespace opening the line of member, a
// statement of the block body of def. Classes handled here are top level, so
// this is also the indent unit of their module. It is empty when member does
// not start its own line.
func memberIndent(def, body, member *ast.Node) string {
	prefix := codeBefore(body, member)
	if !strings.Contains(prefix, "\n") {
		prefix = codeBefore(def, body) + prefix
	}
	line := prefix[strings.LastIndexByte(prefix, '\n')+1:]
	if strings.TrimLeft(line, " \t") != "" {
		return ""
	}
	return line
}

// codeBefore renders the children of parent that precede child.
func codeBefore(parent, child *ast.Node) string {
	var sb strings.Builder
	for _, c := range parent.Children {
		if c == child {
			break
		}
		sb.WriteString(c.Code())
	}
	return sb.String()
}

// reindent rewrites the line-leading whitespace of stmt, counting how many
// times each line repeats the unit from and emitting unit to as often.
// Only trivia changes; string literals keep their text.
func reindent(stmt *ast.Node, from, to string) *ast.Node {
	if from == "" || to == "" || from == to {
		return stmt
	}
	return ast.Transform(stmt, func(_, updated *ast.Node) *ast.Node {
		if updated.Kind != ast.KindTrivia || !strings.Contains(updated.Text, "\n") {
			return updated
		}
		lines := strings.Split(updated.Text, "\n")
		for i := 1; i < len(lines); i++ {
			lines[i] = shiftIndent(lines[i], from, to)
		}
		text := strings.Join(lines, "\n")
		if text == updated.Text {
			return updated
		}
		return updated.WithText(text)
	})
}

func shiftIndent(line, from, to string) string {
	n := 0
	for strings.HasPrefix(line[n*len(from):], from) {
		n++
	}
	if n == 0 {
		return line
	}
	return strings.Repeat(to, n) + line[n*len(from):]
}
