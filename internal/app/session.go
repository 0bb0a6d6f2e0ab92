package app

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/tsmeta/internal/adapters/esbuild"   //nolint:depguard // Wired in app layer
	"go.trai.ch/tsmeta/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/tsmeta/internal/core/domain"
	"go.trai.ch/tsmeta/internal/engine/detector"
	"go.trai.ch/tsmeta/internal/engine/pipeline"
)

// tracerName is the instrumentation name of the pipeline spans.
const tracerName = "tsmeta"

// session holds the state of one command run.
type session struct {
	settings domain.Settings
	pipeline *pipeline.Pipeline
	tally    *telemetry.Tally
	provider *sdktrace.TracerProvider
	ledger   *ledger
}

func (a *App) open(req Request) (*session, error) {
	settings, err := a.settings.Load(req.ConfigFile, req.Overrides)
	if err != nil {
		return nil, err
	}

	cfg, err := domain.NewPluginConfig(settings.PluginOptions())
	if err != nil {
		return nil, err
	}

	tally := telemetry.NewTally(a.logger)
	provider := setupOTel(tally)
	led := newLedger(cfg.Cwd())

	p, err := pipeline.New(
		cfg,
		a.resolver,
		detector.New(nil),
		a.newCompiler(settings.Node),
		a.logger,
		telemetry.NewOTelTracer(tracerName),
		pipeline.WithCompiledHook(led.record),
	)
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, err
	}

	return &session{
		settings: settings,
		pipeline: p,
		tally:    tally,
		provider: provider,
		ledger:   led,
	}, nil
}

func (s *session) close() {
	_ = s.provider.Shutdown(context.Background())
}

func (s *session) buildOptions() esbuild.Options {
	return esbuild.Options{
		EntryPoints: s.settings.EntryPoints,
		Outdir:      s.settings.Outdir,
		Bundle:      s.settings.Bundle,
		WorkingDir:  s.pipeline.PluginConfig().Cwd(),
	}
}

// setupOTel registers a tracer provider that feeds ended spans to tally.
func setupOTel(tally *telemetry.Tally) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(tally),
	)
	otel.SetTracerProvider(tp)
	return tp
}
