package engine

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ftahirops/ttop/collector"
	"github.com/ftahirops/ttop/model"
)

// fakeSource replays a scripted sequence of samples; the last entry is
// sticky.
type fakeSource struct {
	script []fakeSample
	idx    int
}

type fakeSample struct {
	raw   model.RawSample
	procs []model.ProcessFact
	err   error
}

func (f *fakeSource) Sample(context.Context) (model.RawSample, []model.ProcessFact, error) {
	s := f.script[f.idx]
	if f.idx < len(f.script)-1 {
		f.idx++
	}
	return s.raw, s.procs, s.err
}

func newTestEngine(src collector.Source, cores int) *Engine {
	return New(src, cores, zerolog.Nop())
}

func TestTickPrimingReportsZeroRates(t *testing.T) {
	src := &fakeSource{script: []fakeSample{
		{raw: model.RawSample{}, procs: []model.ProcessFact{cpuProc(5, 1000)}},
	}}
	eng := newTestEngine(src, 4)

	_, rates, err := eng.Tick(context.Background())
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if len(rates) != 0 {
		t.Errorf("priming tick must report no rates regardless of cumulative CPU, got %v", rates)
	}
}

func TestTickSteadyComputesRates(t *testing.T) {
	src := &fakeSource{script: []fakeSample{
		{raw: model.RawSample{}, procs: []model.ProcessFact{cpuProc(5, 10)}},
		{raw: model.RawSample{}, procs: []model.ProcessFact{cpuProc(5, 11)}},
	}}
	eng := newTestEngine(src, 4)

	ctx := context.Background()
	if _, _, err := eng.Tick(ctx); err != nil {
		t.Fatalf("priming tick error = %v", err)
	}
	_, rates, err := eng.Tick(ctx)
	if err != nil {
		t.Fatalf("steady tick error = %v", err)
	}
	if rates[5] <= 0 {
		t.Errorf("steady tick should report a positive rate for pid 5, got %v", rates[5])
	}
}

func TestTickFailureKeepsPrevState(t *testing.T) {
	src := &fakeSource{script: []fakeSample{
		{raw: model.RawSample{}, procs: []model.ProcessFact{cpuProc(5, 10)}},
		{err: collector.ErrCounterUnavailable},
		{raw: model.RawSample{}, procs: []model.ProcessFact{cpuProc(5, 12)}},
	}}
	eng := newTestEngine(src, 4)

	ctx := context.Background()
	if _, _, err := eng.Tick(ctx); err != nil {
		t.Fatalf("priming tick error = %v", err)
	}
	if _, _, err := eng.Tick(ctx); err == nil {
		t.Fatal("failed tick should surface the error")
	}
	// The failed tick must not have advanced PrevState: the next
	// successful tick still computes its delta against tick one.
	_, rates, err := eng.Tick(ctx)
	if err != nil {
		t.Fatalf("recovery tick error = %v", err)
	}
	if rates[5] <= 0 {
		t.Errorf("recovery tick should compute a delta against the pre-failure state, got %v", rates[5])
	}
}

func TestTickReplacesPrevStateWholesale(t *testing.T) {
	src := &fakeSource{script: []fakeSample{
		{raw: model.RawSample{}, procs: []model.ProcessFact{cpuProc(5, 10), cpuProc(6, 10)}},
		{raw: model.RawSample{}, procs: []model.ProcessFact{cpuProc(5, 11)}},
		{raw: model.RawSample{}, procs: []model.ProcessFact{cpuProc(5, 12), cpuProc(6, 10)}},
	}}
	eng := newTestEngine(src, 4)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, _, err := eng.Tick(ctx); err != nil {
			t.Fatalf("tick %d error = %v", i, err)
		}
	}
	// pid 6 vanished on tick two, so tick three must treat its
	// reappearance as new (rate 0) rather than reusing stale state.
	_, rates, err := eng.Tick(ctx)
	if err != nil {
		t.Fatalf("tick 3 error = %v", err)
	}
	if rates[6] != 0 {
		t.Errorf("reappeared pid should report 0, got %v", rates[6])
	}
}
