package domain

import (
	"fmt"
	"maps"
)

// Compiler option names the pipeline inspects or rewrites.
const (
	OptEmitDecoratorMetadata = "emitDecoratorMetadata"
	OptSourceMap             = "sourceMap"
	OptInlineSourceMap       = "inlineSourceMap"
	OptInlineSources         = "inlineSources"
	OptJSX                   = "jsx"
)

// DiagnosticCategory classifies a Diagnostic.
type DiagnosticCategory uint8

const (
	// CategoryError marks a diagnostic that describes an error.
	CategoryError DiagnosticCategory = iota
	// CategoryWarning marks a warning.
	CategoryWarning
	// CategoryMessage marks an informational message.
	CategoryMessage
)

func (c DiagnosticCategory) String() string {
	switch c {
	case CategoryError:
		return "error"
	case CategoryWarning:
		return "warning"
	default:
		return "message"
	}
}

// Diagnostic is a human readable problem report from config parsing or compilation.
type Diagnostic struct {
	Category DiagnosticCategory
	Code     int
	File     string
	Message  string
}

func (d Diagnostic) String() string {
	prefix := ""
	if d.File != "" {
		prefix = d.File + ": "
	}
	if d.Code != 0 {
		return fmt.Sprintf("%s%s TS%d: %s", prefix, d.Category, d.Code, d.Message)
	}
	return fmt.Sprintf("%s%s: %s", prefix, d.Category, d.Message)
}

// ProjectConfig is the effective TypeScript project configuration.
type ProjectConfig struct {
	// ConfigFile is the absolute path of the located tsconfig, empty when defaults were used.
	ConfigFile string
	// BaseDir is the directory relative paths in the configuration are resolved against.
	BaseDir string
	// Options holds the merged compilerOptions as JSON values.
	Options map[string]any
	// Files, Include and Exclude are absolute path specs.
	Files   []string
	Include []string
	Exclude []string
	// Diagnostics collects the non-fatal problems found while expanding the configuration.
	Diagnostics []Diagnostic
}

// EmitDecoratorMetadata reports whether the decorator metadata emission flag is enabled.
func (p *ProjectConfig) EmitDecoratorMetadata() bool {
	if p == nil {
		return false
	}
	v, ok := p.Options[OptEmitDecoratorMetadata].(bool)
	return ok && v
}

// SourceMap reports whether standalone source maps are requested.
func (p *ProjectConfig) SourceMap() bool {
	if p == nil {
		return false
	}
	v, ok := p.Options[OptSourceMap].(bool)
	return ok && v
}

// InlineSourceMaps replaces standalone source maps with inline maps carrying their sources.
// Only some files are rewritten, so a standalone map set would be incomplete.
func (p *ProjectConfig) InlineSourceMaps() {
	if !p.SourceMap() {
		return
	}
	p.Options[OptSourceMap] = false
	p.Options[OptInlineSources] = true
	p.Options[OptInlineSourceMap] = true
}

// CompilerOptions returns a copy of the options safe to hand to a compiler.
func (p *ProjectConfig) CompilerOptions() map[string]any {
	if p == nil || p.Options == nil {
		return map[string]any{}
	}
	return maps.Clone(p.Options)
}
