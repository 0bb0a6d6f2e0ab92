// Package app implements the application layer for tsmeta.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/tsmeta/internal/adapters/compiler" //nolint:depguard // Wired in app layer
	"go.trai.ch/tsmeta/internal/adapters/esbuild"  //nolint:depguard // Wired in app layer
	"go.trai.ch/tsmeta/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"go.trai.ch/tsmeta/internal/adapters/watcher"  //nolint:depguard // Wired in app layer
	"go.trai.ch/tsmeta/internal/core/domain"
	"go.trai.ch/tsmeta/internal/core/ports"
	"go.trai.ch/tsmeta/internal/ui/output"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	logger   ports.Logger
	resolver ports.ProjectConfigResolver
	settings ports.SettingsLoader
	report   ports.ReportWriter
	walker   *fs.Walker
	stdout   io.Writer

	newCompiler func(node string) ports.Compiler
	newWatcher  func() (ports.Watcher, error)
}

// New creates a new App instance.
func New(
	log ports.Logger,
	resolver ports.ProjectConfigResolver,
	settings ports.SettingsLoader,
	report ports.ReportWriter,
	walker *fs.Walker,
) *App {
	return &App{
		logger:   log,
		resolver: resolver,
		settings: settings,
		report:   report,
		walker:   walker,
		stdout:   os.Stdout,
		newCompiler: func(node string) ports.Compiler {
			return compiler.New(log, node)
		},
		newWatcher: func() (ports.Watcher, error) {
			return watcher.NewWatcher(log)
		},
	}
}

// WithOutput redirects command results, which go to stdout by default.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithCompilerFactory replaces the node based compiler service.
// This is primarily used for testing.
func (a *App) WithCompilerFactory(fn func(node string) ports.Compiler) *App {
	a.newCompiler = fn
	return a
}

// WithWatcherFactory replaces the fsnotify based watcher.
// This is primarily used for testing.
func (a *App) WithWatcherFactory(fn func() (ports.Watcher, error)) *App {
	a.newWatcher = fn
	return a
}

// Request selects the settings sources of one command.
type Request struct {
	// ConfigFile is the settings file; empty selects the optional tsmeta.yaml.
	ConfigFile string
	// Overrides are settings given on the command line, by settings key.
	Overrides map[string]any
}

// ConfigureLogging applies the global logging flags when the logger supports them.
func (a *App) ConfigureLogging(verbose, json bool) {
	if l, ok := a.logger.(interface{ SetVerbose(bool) }); ok {
		l.SetVerbose(verbose)
	}
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(json)
	}
}

// Build runs one esbuild build with the transform plugin installed.
func (a *App) Build(ctx context.Context, req Request) error {
	s, err := a.open(req)
	if err != nil {
		return err
	}
	defer s.close()

	err = esbuild.NewBundler(a.logger).Build(ctx, s.pipeline, s.buildOptions())
	if errors.Is(err, domain.ErrNoEntryPoints) {
		return err
	}

	a.printSummary(s)
	return errors.Join(err, a.writeReport(s))
}

// Watch builds and rebuilds on change until ctx is cancelled. File change
// events are forwarded to the pipeline's change hook.
func (a *App) Watch(ctx context.Context, req Request) error {
	s, err := a.open(req)
	if err != nil {
		return err
	}
	defer s.close()

	if len(s.settings.EntryPoints) == 0 {
		return domain.ErrNoEntryPoints
	}

	w, err := a.newWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}

	root := s.pipeline.PluginConfig().Cwd()
	a.logger.Info("watching " + root + " for changes")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return esbuild.NewBundler(a.logger).Watch(gctx, s.pipeline, s.buildOptions())
	})
	g.Go(func() error {
		return watcher.Forward(gctx, w, root, watcher.DefaultDebounceWindow, s.pipeline.OnChange)
	})
	err = g.Wait()

	a.printSummary(s)
	return errors.Join(err, a.writeReport(s))
}

// CheckOptions configuration for the Check method.
type CheckOptions struct {
	// Compile runs the compiler service on eligible files instead of stopping before it.
	Compile bool
}

// Check runs the pipeline over every TypeScript file below the working
// directory and prints the decision reached for each one.
func (a *App) Check(ctx context.Context, req Request, opts CheckOptions) error {
	s, err := a.open(req)
	if err != nil {
		return err
	}
	defer s.close()

	root := s.pipeline.PluginConfig().Cwd()
	var files []string
	for path := range a.walker.WalkSources(root, []string{filepath.Base(s.settings.Outdir)}) {
		files = append(files, path)
	}

	decisions := make([]domain.Decision, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range files {
		g.Go(func() error {
			//nolint:gosec // path comes from walking the working directory
			src, err := os.ReadFile(path)
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", path)
			}

			if opts.Compile {
				_, decisions[i], err = s.pipeline.Transform(gctx, string(src), path)
				return err
			}
			decisions[i], err = s.pipeline.Evaluate(gctx, string(src), path)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printer := output.NewPrinter(a.stdout)
	for i, path := range files {
		printer.Decision(relative(root, path), decisions[i])
	}
	printer.Summary(s.tally.Counts())

	if !opts.Compile {
		return nil
	}
	return a.writeReport(s)
}

// Transform runs the pipeline on a single file and prints the rewritten code.
// Nothing is printed when the file is declined.
func (a *App) Transform(ctx context.Context, req Request, file string) error {
	s, err := a.open(req)
	if err != nil {
		return err
	}
	defer s.close()

	path, err := filepath.Abs(file)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", file)
	}
	//nolint:gosec // path is supplied by the user
	src, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", path)
	}

	out, decision, err := s.pipeline.Transform(ctx, string(src), path)
	if err != nil {
		return err
	}
	a.logger.Debug(fmt.Sprintf("%s: %s", file, decision))

	if out != nil {
		output.NewPrinter(a.stdout).Code(out.Code)
	}
	return nil
}

func (a *App) printSummary(s *session) {
	output.NewPrinter(a.stdout).Summary(s.tally.Counts())
	if n := s.pipeline.Processed().Len(); n > 0 {
		a.logger.Debug(fmt.Sprintf("rewrote %d files", n))
	}
}

func (a *App) writeReport(s *session) error {
	if s.settings.Report == "" {
		return nil
	}

	path := s.settings.Report
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.pipeline.PluginConfig().Cwd(), path)
	}

	entries := s.ledger.Entries()
	if err := a.report.Write(path, entries); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("wrote report for %d files to %s", len(entries), path))
	return nil
}

// relative returns path relative to root with forward slashes, or path itself
// when it is not below root.
func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
