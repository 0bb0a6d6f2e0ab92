// Package pipeline implements the per-file transform decision pipeline.
//
// Every candidate file passes through a fixed sequence of gates: extension,
// path, project configuration, metadata flag, decorator detection and finally
// compilation. The first failing gate declines the file, which is then left
// to the rest of the host build unmodified.
package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/tsmeta/internal/core/domain"
	"go.trai.ch/tsmeta/internal/core/ports"
	"go.trai.ch/tsmeta/internal/engine/pathmatch"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// configKey is the single-flight key used to materialize the project configuration.
const configKey = "project-config"

// Detector decides whether source text may contain decorator usage.
type Detector interface {
	Detect(src string) bool
}

// CompiledHook is invoked after a file was rewritten by the compiler service.
type CompiledHook func(path, code string)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCompiledHook registers fn to observe every successful rewrite.
func WithCompiledHook(fn CompiledHook) Option {
	return func(p *Pipeline) {
		p.onCompiled = fn
	}
}

// Pipeline owns the cached project configuration and the processed file ledger of one session.
type Pipeline struct {
	cfg      domain.PluginConfig
	matcher  *pathmatch.Matcher
	resolver ports.ProjectConfigResolver
	detector Detector
	compiler ports.Compiler
	logger   ports.Logger
	tracer   ports.Tracer

	configGroup singleflight.Group
	mu          sync.RWMutex
	project     *domain.ProjectConfig

	processed  *domain.ProcessedFileSet
	onCompiled CompiledHook
}

// New creates a Pipeline for cfg. The source pattern is validated immediately.
func New(
	cfg domain.PluginConfig,
	resolver ports.ProjectConfigResolver,
	detector Detector,
	compiler ports.Compiler,
	logger ports.Logger,
	tracer ports.Tracer,
	opts ...Option,
) (*Pipeline, error) {
	matcher, err := pathmatch.New(cfg.Cwd(), cfg.SrcDir())
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:       cfg,
		matcher:   matcher,
		resolver:  resolver,
		detector:  detector,
		compiler:  compiler,
		logger:    logger,
		tracer:    tracer,
		processed: domain.NewProcessedFileSet(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// PluginConfig returns the options the pipeline was built with.
func (p *Pipeline) PluginConfig() domain.PluginConfig {
	return p.cfg
}

// Processed returns the ledger of files rewritten in this session.
func (p *Pipeline) Processed() *domain.ProcessedFileSet {
	return p.processed
}

// Transform runs src, identified by the path id, through the gates.
//
// A nil output means the file is declined. An error is returned for
// configuration failures, and for compile failures when the policy is
// domain.CompileErrorFail.
func (p *Pipeline) Transform(
	ctx context.Context,
	src, id string,
) (*domain.TransformOutput, domain.Decision, error) {
	ctx, span := p.tracer.Start(ctx, domain.SpanTransform)
	defer span.End()
	span.SetAttribute(domain.AttrFile, id)

	out, decision, err := p.transform(ctx, src, id, true)
	span.SetAttribute(domain.AttrDecision, string(decision))
	if err != nil {
		span.RecordError(err)
	}
	return out, decision, err
}

// Evaluate runs every gate except compilation and reports the decision the
// pipeline would reach before invoking the compiler. A file that would be
// compiled is reported as domain.DecisionCompiled.
func (p *Pipeline) Evaluate(ctx context.Context, src, id string) (domain.Decision, error) {
	ctx, span := p.tracer.Start(ctx, domain.SpanEvaluate)
	defer span.End()
	span.SetAttribute(domain.AttrFile, id)

	_, decision, err := p.transform(ctx, src, id, false)
	span.SetAttribute(domain.AttrDecision, string(decision))
	if err != nil {
		span.RecordError(err)
	}
	return decision, err
}

func (p *Pipeline) transform(
	ctx context.Context,
	src, id string,
	compile bool,
) (*domain.TransformOutput, domain.Decision, error) {
	if !hasTypeScriptExtension(id) {
		return nil, domain.DecisionSkipExtension, nil
	}

	abs := p.absolute(id)
	if !p.matcher.Match(abs) {
		return nil, domain.DecisionSkipPath, nil
	}

	project, err := p.Config(ctx)
	if err != nil {
		return nil, "", err
	}

	if !p.cfg.Force() && !project.EmitDecoratorMetadata() {
		return nil, domain.DecisionSkipNoMetadataFlag, nil
	}

	if !p.detector.Detect(src) {
		return nil, domain.DecisionSkipNoDecorator, nil
	}

	if !compile {
		return nil, domain.DecisionCompiled, nil
	}

	result, err := p.compiler.Compile(ctx, domain.CompileRequest{
		Source:   src,
		FileName: id,
		Options:  project.CompilerOptions(),
		BaseDir:  project.BaseDir,
	})
	if err != nil {
		return p.compileFailed(id, err)
	}

	for _, d := range result.Diagnostics {
		p.logger.Debug(d.String())
	}

	p.processed.Add(abs)
	if p.onCompiled != nil {
		p.onCompiled(abs, result.Code)
	}

	return &domain.TransformOutput{Code: result.Code}, domain.DecisionCompiled, nil
}

func (p *Pipeline) compileFailed(id string, err error) (*domain.TransformOutput, domain.Decision, error) {
	err = zerr.With(err, "file", id)
	// A missing compiler fails every file alike, so it is never recovered per file.
	if errors.Is(err, domain.ErrCompilerUnavailable) || p.cfg.OnCompileError() == domain.CompileErrorFail {
		return nil, domain.DecisionError, err
	}
	p.logger.Error(err)
	return nil, domain.DecisionError, nil
}

// Config returns the project configuration, resolving it on first use.
//
// Concurrent first callers share a single resolution. A failed resolution is
// not cached, so a later call retries it.
func (p *Pipeline) Config(ctx context.Context) (*domain.ProjectConfig, error) {
	p.mu.RLock()
	project := p.project
	p.mu.RUnlock()
	if project != nil {
		return project, nil
	}

	v, err, _ := p.configGroup.Do(configKey, func() (any, error) {
		p.mu.RLock()
		cached := p.project
		p.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		_, span := p.tracer.Start(ctx, domain.SpanResolveConfig)
		defer span.End()

		resolved, err := p.resolver.Resolve(p.cfg.TSConfigPath(), p.cfg.Cwd())
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		resolved.InlineSourceMaps()
		span.SetAttribute(domain.AttrConfig, resolved.ConfigFile)

		for _, d := range resolved.Diagnostics {
			p.logger.Warn(d.String())
		}
		if resolved.ConfigFile == "" {
			p.logger.Debug("no " + domain.TSConfigFileName + " found, using default compiler options")
		} else {
			p.logger.Debug("using " + resolved.ConfigFile)
		}

		p.mu.Lock()
		p.project = resolved
		p.mu.Unlock()
		return resolved, nil
	})
	if err != nil {
		return nil, err
	}
	//nolint:forcetypeassert // the single-flight function only returns *domain.ProjectConfig
	return v.(*domain.ProjectConfig), nil
}

// OnChange is the change-notification hook. A change to a file rewritten in
// this session is reported; the cached configuration and the ledger are kept.
func (p *Pipeline) OnChange(path string) {
	abs := p.absolute(path)
	if p.processed.Has(abs) {
		p.logger.Debug("rewritten file changed: " + abs)
	}
}

func (p *Pipeline) absolute(id string) string {
	if filepath.IsAbs(id) {
		return filepath.Clean(id)
	}
	return filepath.Join(p.cfg.Cwd(), id)
}

func hasTypeScriptExtension(id string) bool {
	return strings.HasSuffix(id, ".ts") || strings.HasSuffix(id, ".tsx")
}
