package utils

import (
	"path/filepath"
	"strings"

	"github.com/funvibe/diffconv/internal/config"
)

// ModuleFileCandidates returns the files that may back a dotted module path
// under root, in lookup order: a.b.c -> root/a/b/c.py, root/a/b/c/__init__.py.
func ModuleFileCandidates(root, dotted string) []string {
	if dotted == "" || strings.HasPrefix(dotted, ".") || strings.HasSuffix(dotted, ".") {
		return nil
	}
	rel := filepath.Join(strings.Split(dotted, ".")...)
	return []string{
		filepath.Join(root, rel+config.SourceFileExt),
		filepath.Join(root, rel, config.PackageInitFile),
	}
}
