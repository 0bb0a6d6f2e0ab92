package app

import (
	"slices"
	"strings"
	"sync"

	"go.trai.ch/tsmeta/internal/adapters/report" //nolint:depguard // Wired in app layer
	"go.trai.ch/tsmeta/internal/core/ports"
)

// ledger collects the report entries of the files rewritten in a session.
type ledger struct {
	root string

	mu      sync.Mutex
	entries map[string]ports.ReportEntry
}

func newLedger(root string) *ledger {
	return &ledger{root: root, entries: make(map[string]ports.ReportEntry)}
}

// record is installed as the pipeline's compiled hook. A file rewritten
// again in watch mode replaces its earlier entry.
func (l *ledger) record(path, code string) {
	entry := ports.ReportEntry{
		Path:   relative(l.root, path),
		Digest: report.Digest(code),
		Bytes:  len(code),
	}

	l.mu.Lock()
	l.entries[path] = entry
	l.mu.Unlock()
}

// Entries returns the recorded entries sorted by path.
func (l *ledger) Entries() []ports.ReportEntry {
	l.mu.Lock()
	out := make([]ports.ReportEntry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	l.mu.Unlock()

	slices.SortFunc(out, func(a, b ports.ReportEntry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return out
}
