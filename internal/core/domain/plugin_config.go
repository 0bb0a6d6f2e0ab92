package domain

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// CompileErrorPolicy decides what happens when the compiler service rejects a file.
type CompileErrorPolicy string

const (
	// CompileErrorSkip logs the failure and passes the original source through.
	CompileErrorSkip CompileErrorPolicy = "skip"
	// CompileErrorFail propagates the failure to the host pipeline.
	CompileErrorFail CompileErrorPolicy = "fail"
)

// ParseCompileErrorPolicy converts a user supplied policy name. The empty string selects skip.
func ParseCompileErrorPolicy(s string) (CompileErrorPolicy, error) {
	switch CompileErrorPolicy(s) {
	case "", CompileErrorSkip:
		return CompileErrorSkip, nil
	case CompileErrorFail:
		return CompileErrorFail, nil
	default:
		return "", zerr.With(ErrInvalidCompileErrorPolicy, "policy", s)
	}
}

// PluginOptions are the raw, optional options accepted when constructing a pipeline.
type PluginOptions struct {
	TSConfig       string
	Cwd            string
	Force          bool
	SrcDir         string
	OnCompileError string
}

// PluginConfig is the immutable snapshot of the recognized plugin options.
type PluginConfig struct {
	tsconfigPath   string
	cwd            string
	force          bool
	srcDir         string
	onCompileError CompileErrorPolicy
}

// NewPluginConfig applies defaults to opts and freezes the result.
// Cwd defaults to the process working directory and is made absolute.
func NewPluginConfig(opts PluginOptions) (PluginConfig, error) {
	cwd := opts.Cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return PluginConfig{}, zerr.Wrap(err, "failed to get working directory")
		}
		cwd = wd
	}
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return PluginConfig{}, zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", cwd)
	}

	srcDir := opts.SrcDir
	if srcDir == "" {
		srcDir = DefaultSrcDir
	}

	policy, err := ParseCompileErrorPolicy(opts.OnCompileError)
	if err != nil {
		return PluginConfig{}, err
	}

	return PluginConfig{
		tsconfigPath:   opts.TSConfig,
		cwd:            filepath.Clean(abs),
		force:          opts.Force,
		srcDir:         srcDir,
		onCompileError: policy,
	}, nil
}

// TSConfigPath returns the explicit tsconfig override, or "" when none was given.
func (c PluginConfig) TSConfigPath() string { return c.tsconfigPath }

// Cwd returns the absolute working-directory root.
func (c PluginConfig) Cwd() string { return c.cwd }

// Force reports whether the metadata-flag gate is bypassed.
func (c PluginConfig) Force() bool { return c.force }

// SrcDir returns the source glob pattern.
func (c PluginConfig) SrcDir() string { return c.srcDir }

// OnCompileError returns the compile failure policy.
func (c PluginConfig) OnCompileError() CompileErrorPolicy { return c.onCompileError }
