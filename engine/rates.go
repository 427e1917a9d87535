package engine

import (
	"github.com/ftahirops/ttop/model"
	"github.com/ftahirops/ttop/util"
)

// ComputeRates derives per-process CPU% from two points in time.
//
// A process missing from prev (newly appeared, or the very first tick)
// reports 0. A cumulative counter lower than the previous reading means
// the PID was reused by a new process and also reports 0 rather than a
// negative rate; the same guard covers a non-positive elapsed interval.
// Vanished processes are simply absent from the result.
func ComputeRates(curr *model.Snapshot, prev model.PrevState, cores int) map[int32]float64 {
	rates := make(map[int32]float64, len(curr.Processes))
	elapsed := curr.Timestamp.Sub(prev.Timestamp).Seconds()

	for _, p := range curr.Processes {
		prevSec, ok := prev.CPUSeconds[p.PID]
		if !ok {
			rates[p.PID] = 0
			continue
		}
		rates[p.PID] = util.CPUSharePct(p.CPUSeconds-prevSec, elapsed, cores)
	}
	return rates
}
