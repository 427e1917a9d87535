package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ftahirops/ttop/model"
)

// Sink accepts one fully formatted frame per tick.
type Sink interface {
	Render(frame string) error
}

// FrameFunc turns a derived snapshot and its per-process rates into one
// display frame.
type FrameFunc func(snap *model.Snapshot, rates map[int32]float64) string

// Loop drives the fixed-interval sample-and-render cycle for the plain
// watch mode. Cadence is lossy: a slow tick makes the next one start
// late, missed ticks are never queued or caught up.
type Loop struct {
	eng      *Engine
	interval time.Duration
	frame    FrameFunc
	sink     Sink
	count    int // 0 = run until cancelled
	log      zerolog.Logger
}

// NewLoop creates a render loop.
func NewLoop(eng *Engine, interval time.Duration, frame FrameFunc, sink Sink, count int, log zerolog.Logger) *Loop {
	return &Loop{eng: eng, interval: interval, frame: frame, sink: sink, count: count, log: log}
}

// Run renders one frame immediately, then once per interval until the
// context is cancelled or the configured iteration count is reached.
// Cancellation is checked at the top of each tick; an in-flight sample
// is not interrupted.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	rendered := 0
	for {
		if err := l.tick(ctx); err == nil {
			rendered++
			if l.count > 0 && rendered >= l.count {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (l *Loop) tick(ctx context.Context) error {
	snap, rates, err := l.eng.Tick(ctx)
	if err != nil {
		l.log.Warn().Err(err).Msg("tick skipped")
		return err
	}
	if err := l.sink.Render(l.frame(snap, rates)); err != nil {
		l.log.Warn().Err(err).Msg("render failed")
		return err
	}
	return nil
}
