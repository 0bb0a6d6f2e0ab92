// Package fs provides file system adapters for discovering source files.
package fs

import (
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/tsmeta/internal/core/ports"
)

// skippedDirs are never descended into.
var skippedDirs = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

// Walker provides file walking functionality.
type Walker struct {
	logger ports.Logger
}

// NewWalker creates a new Walker. Unreadable entries are reported to logger,
// which may be nil.
func NewWalker(logger ports.Logger) *Walker {
	return &Walker{logger: logger}
}

// WalkSources yields the .ts and .tsx files below root in lexical order.
// Paths start with root. Entries whose base name matches one of ignores are
// skipped, and so is everything below an ignored directory.
func (w *Walker) WalkSources(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Keep walking the rest of the tree.
				w.warn(path, err)
				return nil
			}

			if path != root && w.ignored(d.Name(), ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() || !isSource(d.Name()) {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) warn(path string, err error) {
	if w.logger != nil {
		w.logger.Warn(fmt.Sprintf("skipping %s: %v", path, err))
	}
}

func (w *Walker) ignored(name string, ignores []string) bool {
	if skippedDirs[name] {
		return true
	}
	for _, ignore := range ignores {
		if matched, _ := doublestar.Match(ignore, name); matched {
			return true
		}
	}
	return false
}

func isSource(name string) bool {
	return strings.HasSuffix(name, ".ts") || strings.HasSuffix(name, ".tsx")
}
