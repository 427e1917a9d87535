package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/ftahirops/ttop/engine"
	"github.com/ftahirops/ttop/model"
	"github.com/ftahirops/ttop/ui"
)

// consoleSink fully clears the terminal before every frame. No diffing.
type consoleSink struct {
	out *os.File
}

func (s consoleSink) Render(frame string) error {
	_, err := fmt.Fprint(s.out, "\033[2J\033[H"+frame+"\n")
	return err
}

// runWatch drives the plain-output render loop.
func runWatch(ctx context.Context, eng *engine.Engine, interval time.Duration, topN, count int, log zerolog.Logger) error {
	frame := func(snap *model.Snapshot, rates map[int32]float64) string {
		width := 0
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
		return ui.Frame(snap, rates, eng.Cores(), topN, width)
	}
	loop := engine.NewLoop(eng, interval, frame, consoleSink{out: os.Stdout}, count, log)
	return loop.Run(ctx)
}
