package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigNotFound is returned when an explicitly requested tsconfig cannot be located.
	ErrConfigNotFound = zerr.New("could not find tsconfig")

	// ErrConfigReadFailed is returned when the tsconfig file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read tsconfig")

	// ErrConfigParseFailed is returned when the tsconfig file is not valid JSONC.
	ErrConfigParseFailed = zerr.New("failed to parse tsconfig")

	// ErrCompileFailed is returned when the compiler service rejects a file.
	ErrCompileFailed = zerr.New("failed to compile file")

	// ErrCompilerUnavailable is returned when the compiler service cannot be started.
	ErrCompilerUnavailable = zerr.New("compiler service unavailable")

	// ErrInvalidPattern is returned when the source pattern is not a valid glob.
	ErrInvalidPattern = zerr.New("invalid source pattern")

	// ErrInvalidCompileErrorPolicy is returned for an unknown compile error policy.
	ErrInvalidCompileErrorPolicy = zerr.New("invalid compile error policy, expected 'skip' or 'fail'")

	// ErrNoEntryPoints is returned when a build is requested without entry points.
	ErrNoEntryPoints = zerr.New("no entry points specified")

	// ErrBuildFailed is returned when the host build reports errors.
	ErrBuildFailed = zerr.New("build failed")

	// ErrSettingsLoadFailed is returned when the tsmeta settings cannot be loaded.
	ErrSettingsLoadFailed = zerr.New("failed to load settings")

	// ErrReportWriteFailed is returned when the processed file report cannot be written.
	ErrReportWriteFailed = zerr.New("failed to write report")

	// ErrSourceReadFailed is returned when a candidate source file cannot be read.
	ErrSourceReadFailed = zerr.New("failed to read source file")
)
