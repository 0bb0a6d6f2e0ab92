// Package report writes the ledger of rewritten files as YAML.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tsmeta/internal/core/domain"
	"go.trai.ch/tsmeta/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Version is the report format version.
const Version = 1

var _ ports.ReportWriter = (*Writer)(nil)

// Document is the on-disk report structure.
type Document struct {
	Version int     `yaml:"version"`
	Files   []Entry `yaml:"files"`
}

// Entry describes one rewritten file.
type Entry struct {
	Path   string `yaml:"path"`
	Digest string `yaml:"digest"`
	Bytes  int    `yaml:"bytes"`
}

// Writer implements ports.ReportWriter.
type Writer struct{}

// NewWriter creates a new report writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Digest returns the XXHash of code as fixed-width hex.
func Digest(code string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(code))
}

// Write stores entries at path, sorted by path. The parent directory is created if needed.
func (w *Writer) Write(path string, entries []ports.ReportEntry) error {
	doc := Document{Version: Version, Files: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		doc.Files = append(doc.Files, Entry{Path: filepath.ToSlash(e.Path), Digest: e.Digest, Bytes: e.Bytes})
	}
	slices.SortFunc(doc.Files, func(a, b Entry) int {
		return strings.Compare(a.Path, b.Path)
	})

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReportWriteFailed.Error()), "path", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReportWriteFailed.Error()), "path", path)
	}

	//nolint:gosec // path comes from the user's settings
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReportWriteFailed.Error()), "path", path)
	}
	return nil
}
