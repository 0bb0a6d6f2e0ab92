package domain

// CompileRequest is the input handed to the compiler service.
type CompileRequest struct {
	Source   string
	FileName string
	// Options are the effective compiler options as JSON values.
	Options map[string]any
	// BaseDir is the directory path-valued options are relative to.
	BaseDir string
}

// CompileResult is the output of a successful compilation.
type CompileResult struct {
	Code        string
	Diagnostics []Diagnostic
}
