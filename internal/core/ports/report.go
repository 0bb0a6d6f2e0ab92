package ports

//go:generate go run go.uber.org/mock/mockgen -source=report.go -destination=mocks/mock_report.go -package=mocks

// ReportEntry describes one rewritten file.
type ReportEntry struct {
	Path   string
	Digest string
	Bytes  int
}

// ReportWriter persists the processed-file ledger of a session.
type ReportWriter interface {
	// Write stores entries at path.
	Write(path string, entries []ReportEntry) error
}
