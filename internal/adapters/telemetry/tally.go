package telemetry

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/tsmeta/internal/core/domain"
	"go.trai.ch/tsmeta/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*Tally)(nil)

// Tally implements sdktrace.SpanProcessor. It counts the decisions recorded
// on ended pipeline spans and logs each one at debug level.
type Tally struct {
	logger ports.Logger

	mu     sync.Mutex
	counts map[domain.Decision]int
}

// NewTally returns a new Tally. logger may be nil.
func NewTally(logger ports.Logger) *Tally {
	return &Tally{
		logger: logger,
		counts: make(map[domain.Decision]int),
	}
}

// OnStart is called when a span starts.
func (t *Tally) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (t *Tally) OnEnd(s sdktrace.ReadOnlySpan) {
	var file string
	var decision domain.Decision
	var ok bool
	for _, kv := range s.Attributes() {
		switch string(kv.Key) {
		case domain.AttrFile:
			file = kv.Value.AsString()
		case domain.AttrDecision:
			decision, ok = domain.ParseDecision(kv.Value.AsString())
		}
	}
	if !ok {
		return
	}

	t.mu.Lock()
	t.counts[decision]++
	t.mu.Unlock()

	if t.logger != nil {
		elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Microsecond)
		t.logger.Debug(fmt.Sprintf("%s %s: %s (%s)", s.Name(), file, decision, elapsed))
	}
}

// Counts returns a snapshot of the decision counts.
func (t *Tally) Counts() map[domain.Decision]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return maps.Clone(t.counts)
}


// ForceFlush does nothing.
func (t *Tally) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (t *Tally) Shutdown(_ context.Context) error {
	return nil
}
