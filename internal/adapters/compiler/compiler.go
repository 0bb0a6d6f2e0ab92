// Package compiler runs the TypeScript compiler in a Node.js subprocess.
package compiler

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"io/fs"
	"os/exec"
	"strings"

	"go.trai.ch/tsmeta/internal/core/domain"
	"go.trai.ch/tsmeta/internal/core/ports"
	"go.trai.ch/zerr"
)

// exitNoTypeScript is the exit code of the transpile script when typescript cannot be loaded.
const exitNoTypeScript = 2

//go:embed transpile.js
var transpileScript string

// Compiler implements ports.Compiler by running typescript.transpileModule under Node.js.
type Compiler struct {
	logger ports.Logger
	node   string
}

// New creates a Compiler that starts the given node executable.
// An empty name selects domain.DefaultNodeBinary.
func New(logger ports.Logger, node string) *Compiler {
	if node == "" {
		node = domain.DefaultNodeBinary
	}
	return &Compiler{
		logger: logger,
		node:   node,
	}
}

type request struct {
	FileName        string         `json:"fileName"`
	Source          string         `json:"source"`
	CompilerOptions map[string]any `json:"compilerOptions"`
	BaseDir         string         `json:"baseDir"`
}

type response struct {
	OutputText  string       `json:"outputText"`
	Diagnostics []diagnostic `json:"diagnostics"`
}

type diagnostic struct {
	Category string `json:"category"`
	Code     int    `json:"code"`
	File     string `json:"file"`
	Message  string `json:"message"`
}

func (d diagnostic) toDomain() domain.Diagnostic {
	category := domain.CategoryMessage
	switch d.Category {
	case "error":
		category = domain.CategoryError
	case "warning":
		category = domain.CategoryWarning
	}
	return domain.Diagnostic{
		Category: category,
		Code:     d.Code,
		File:     d.File,
		Message:  d.Message,
	}
}

// Compile transpiles one file. Error diagnostics fail the file; the remaining
// diagnostics are returned with the output.
func (c *Compiler) Compile(ctx context.Context, req domain.CompileRequest) (domain.CompileResult, error) {
	payload, err := json.Marshal(request{
		FileName:        req.FileName,
		Source:          req.Source,
		CompilerOptions: req.Options,
		BaseDir:         req.BaseDir,
	})
	if err != nil {
		return domain.CompileResult{}, zerr.Wrap(err, "failed to encode compile request")
	}

	cmd := exec.CommandContext(ctx, c.node, "-e", transpileScript) //nolint:gosec // node binary is user configured
	cmd.Dir = req.BaseDir
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return domain.CompileResult{}, c.runError(ctx, req, err, stderr.String())
	}

	var resp response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		err = zerr.Wrap(err, domain.ErrCompileFailed.Error())
		return domain.CompileResult{}, zerr.With(err, "file", req.FileName)
	}

	var failures []string
	diagnostics := make([]domain.Diagnostic, 0, len(resp.Diagnostics))
	for _, d := range resp.Diagnostics {
		diag := d.toDomain()
		if diag.File == "" {
			diag.File = req.FileName
		}
		if diag.Category == domain.CategoryError {
			failures = append(failures, diag.String())
			continue
		}
		diagnostics = append(diagnostics, diag)
	}
	if len(failures) > 0 {
		err := zerr.Wrap(errors.New(strings.Join(failures, "\n")), domain.ErrCompileFailed.Error())
		return domain.CompileResult{}, zerr.With(err, "file", req.FileName)
	}

	return domain.CompileResult{
		Code:        resp.OutputText,
		Diagnostics: diagnostics,
	}, nil
}

func (c *Compiler) runError(ctx context.Context, req domain.CompileRequest, err error, stderr string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zerr.Wrap(ctxErr, "compilation cancelled")
	}

	stderr = strings.TrimSpace(stderr)
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return zerr.With(errors.Join(domain.ErrCompilerUnavailable, err), "node", c.node)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == exitNoTypeScript {
		cause := errors.New(stderr)
		return zerr.With(errors.Join(domain.ErrCompilerUnavailable, cause), "base_dir", req.BaseDir)
	}

	c.logger.Debug("compiler stderr: " + stderr)
	wrapped := zerr.With(zerr.Wrap(err, domain.ErrCompileFailed.Error()), "file", req.FileName)
	if stderr != "" {
		wrapped = zerr.With(wrapped, "stderr", stderr)
	}
	return wrapped
}
