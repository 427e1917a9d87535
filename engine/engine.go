package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ftahirops/ttop/collector"
	"github.com/ftahirops/ttop/model"
)

// Engine orchestrates one fetch, build, classify, rate cycle per tick
// and owns the previous-tick state used for delta computation.
//
// The engine starts priming (no previous state, all rates 0) and moves
// to steady after the first successful sample. A failed sample leaves
// the previous state untouched so the next delta is not poisoned by a
// partial reading.
type Engine struct {
	src   collector.Source
	cores int
	log   zerolog.Logger

	metrics *MetricsStore // optional, nil when the exporter is off

	tickMu sync.Mutex // serializes ticks; prev is only touched under it
	prev   *model.PrevState
}

// New creates an engine. The logical core count is queried once at
// startup by the caller and fixed for the process lifetime.
func New(src collector.Source, cores int, log zerolog.Logger) *Engine {
	return &Engine{src: src, cores: cores, log: log}
}

// Instrument publishes every successful tick to the given store.
func (e *Engine) Instrument(store *MetricsStore) {
	e.metrics = store
}

// Cores returns the fixed logical core count.
func (e *Engine) Cores() int { return e.cores }

// Tick performs one sampling cycle. On a batch failure it returns the
// error without advancing the previous state; the caller keeps the last
// rendered frame and retries next tick.
func (e *Engine) Tick(ctx context.Context) (*model.Snapshot, map[int32]float64, error) {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()

	raw, procs, err := e.src.Sample(ctx)
	if err != nil {
		return nil, nil, err
	}

	snap := BuildSnapshot(raw, procs, time.Now())
	snap.Tasks = Classify(snap.Processes)
	e.log.Debug().
		Int("procs", len(snap.Processes)).
		Float64("cpu_util", snap.CPU.UtilPct).
		Msg("tick")

	rates := make(map[int32]float64)
	if e.prev != nil {
		rates = ComputeRates(&snap, *e.prev, e.cores)
	}

	ps := model.NewPrevState(&snap)
	e.prev = &ps

	if e.metrics != nil {
		e.metrics.Update(&snap, rates)
	}
	return &snap, rates, nil
}
