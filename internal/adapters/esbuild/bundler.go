package esbuild

import (
	"context"
	"errors"
	"fmt"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/tsmeta/internal/core/domain"
	"go.trai.ch/tsmeta/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options describe one esbuild invocation.
type Options struct {
	EntryPoints []string
	Outdir      string
	Bundle      bool
	// WorkingDir is the absolute directory relative paths are resolved against.
	WorkingDir string
}

// Bundler runs esbuild builds with the transform plugin installed.
type Bundler struct {
	logger ports.Logger
}

// NewBundler creates a new Bundler.
func NewBundler(logger ports.Logger) *Bundler {
	return &Bundler{logger: logger}
}

// Build runs a single build. Build errors are logged and reported as
// domain.ErrBuildFailed.
func (b *Bundler) Build(ctx context.Context, t Transformer, opts Options) error {
	if len(opts.EntryPoints) == 0 {
		return domain.ErrNoEntryPoints
	}

	result := api.Build(b.buildOptions(ctx, t, opts))
	return b.report(result.Errors, result.Warnings)
}

// Watch builds once and rebuilds on every change until ctx is cancelled.
// Errors of individual rebuilds are logged and do not stop watching.
func (b *Bundler) Watch(ctx context.Context, t Transformer, opts Options) error {
	if len(opts.EntryPoints) == 0 {
		return domain.ErrNoEntryPoints
	}

	options := b.buildOptions(ctx, t, opts)
	options.Plugins = append(options.Plugins, b.rebuildReporter())

	bctx, cerr := api.Context(options)
	if cerr != nil {
		return b.report(cerr.Errors, nil)
	}
	defer bctx.Dispose()

	if err := bctx.Watch(api.WatchOptions{}); err != nil {
		return zerr.Wrap(err, domain.ErrBuildFailed.Error())
	}

	<-ctx.Done()
	return nil
}

func (b *Bundler) buildOptions(ctx context.Context, t Transformer, opts Options) api.BuildOptions {
	return api.BuildOptions{
		EntryPoints:   opts.EntryPoints,
		Outdir:        opts.Outdir,
		Bundle:        opts.Bundle,
		AbsWorkingDir: opts.WorkingDir,
		Write:         true,
		LogLevel:      api.LogLevelSilent,
		Plugins:       []api.Plugin{Plugin(ctx, t)},
	}
}

// rebuildReporter logs the outcome of every build in watch mode.
func (b *Bundler) rebuildReporter() api.Plugin {
	return api.Plugin{
		Name: PluginName + "-report",
		Setup: func(build api.PluginBuild) {
			build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
				if err := b.report(result.Errors, result.Warnings); err != nil {
					b.logger.Warn(fmt.Sprintf("build failed with %d errors, waiting for changes", len(result.Errors)))
					return api.OnEndResult{}, nil
				}
				b.logger.Info("build finished, waiting for changes")
				return api.OnEndResult{}, nil
			})
		},
	}
}

func (b *Bundler) report(errs, warnings []api.Message) error {
	for _, w := range warnings {
		b.logger.Warn(formatMessage(w))
	}
	if len(errs) == 0 {
		return nil
	}

	joined := []error{domain.ErrBuildFailed}
	for _, e := range errs {
		err := errors.New(formatMessage(e))
		b.logger.Error(err)
		joined = append(joined, err)
	}
	return errors.Join(joined...)
}

func formatMessage(m api.Message) string {
	text := m.Text
	if m.PluginName != "" {
		text = "[" + m.PluginName + "] " + text
	}
	if m.Location == nil {
		return text
	}
	return fmt.Sprintf("%s:%d:%d: %s", m.Location.File, m.Location.Line, m.Location.Column, text)
}
