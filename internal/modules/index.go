package modules

import (
	"errors"
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/funvibe/diffconv/internal/config"
	"github.com/funvibe/diffconv/internal/utils"
)

// ErrNotFound is returned by an Index that has no source for a module.
var ErrNotFound = errors.New("module not found")

// Index locates the source text of a dotted module path.
type Index interface {
	Lookup(dotted string) (string, error)
}

// MapIndex is an in-memory Index.
type MapIndex map[string]string

func (m MapIndex) Lookup(dotted string) (string, error) {
	src, ok := m[dotted]
	if !ok {
		return "", fmt.Errorf("%s: %w", dotted, ErrNotFound)
	}
	return src, nil
}

// FSIndex resolves dotted paths against search roots on disk, the way a
// Python interpreter walks its path. The first root holding the module wins.
type FSIndex struct {
	roots []string
	files *lru.Cache[string, string] // dotted path -> file
}

// NewFSIndex returns an index over roots. cacheSize bounds the memo of
// resolved file locations; values below one use the default.
func NewFSIndex(roots []string, cacheSize int) (*FSIndex, error) {
	if cacheSize < 1 {
		cacheSize = config.DefaultIndexCache
	}
	files, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, err
	}
	return &FSIndex{roots: append([]string(nil), roots...), files: files}, nil
}

// Roots returns the search roots in lookup order.
func (x *FSIndex) Roots() []string {
	return append([]string(nil), x.roots...)
}

// Locate returns the file backing dotted without reading it.
func (x *FSIndex) Locate(dotted string) (string, error) {
	if file, ok := x.files.Get(dotted); ok {
		return file, nil
	}
	for _, root := range x.roots {
		for _, candidate := range utils.ModuleFileCandidates(root, dotted) {
			info, err := os.Stat(candidate)
			if err != nil || info.IsDir() {
				continue
			}
			x.files.Add(dotted, candidate)
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s: %w", dotted, ErrNotFound)
}

func (x *FSIndex) Lookup(dotted string) (string, error) {
	file, err := x.Locate(dotted)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			x.files.Remove(dotted)
			return "", fmt.Errorf("%s: %w", dotted, ErrNotFound)
		}
		return "", fmt.Errorf("reading %s: %w", file, err)
	}
	return string(data), nil
}
