package engine

import (
	"testing"
	"time"

	"github.com/ftahirops/ttop/model"
)

func snapAt(ts time.Time, procs ...model.ProcessFact) *model.Snapshot {
	return &model.Snapshot{Timestamp: ts, Processes: procs}
}

func cpuProc(pid int32, cpuSec float64) model.ProcessFact {
	return model.ProcessFact{PID: pid, CPUSeconds: cpuSec}
}

func TestComputeRates(t *testing.T) {
	t0 := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		prev    model.PrevState
		curr    *model.Snapshot
		cores   int
		wantPID int32
		want    float64
	}{
		{
			name:    "half a core on a four core box",
			prev:    model.PrevState{Timestamp: t0, CPUSeconds: map[int32]float64{5: 10}},
			curr:    snapAt(t0.Add(2*time.Second), cpuProc(5, 11)),
			cores:   4,
			wantPID: 5,
			want:    12.5,
		},
		{
			// PID reused by a new process with a lower cumulative
			// counter: 0, never negative.
			name:    "pid reuse clamps to zero",
			prev:    model.PrevState{Timestamp: t0, CPUSeconds: map[int32]float64{5: 10}},
			curr:    snapAt(t0.Add(2*time.Second), cpuProc(5, 2)),
			cores:   4,
			wantPID: 5,
			want:    0,
		},
		{
			name:    "newly appeared process",
			prev:    model.PrevState{Timestamp: t0, CPUSeconds: map[int32]float64{}},
			curr:    snapAt(t0.Add(time.Second), cpuProc(9, 100)),
			cores:   2,
			wantPID: 9,
			want:    0,
		},
		{
			name:    "clock skew guards divide by zero",
			prev:    model.PrevState{Timestamp: t0, CPUSeconds: map[int32]float64{5: 10}},
			curr:    snapAt(t0, cpuProc(5, 11)),
			cores:   4,
			wantPID: 5,
			want:    0,
		},
		{
			name:    "negative elapsed reports zero",
			prev:    model.PrevState{Timestamp: t0.Add(time.Second), CPUSeconds: map[int32]float64{5: 10}},
			curr:    snapAt(t0, cpuProc(5, 11)),
			cores:   4,
			wantPID: 5,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rates := ComputeRates(tt.curr, tt.prev, tt.cores)
			got, ok := rates[tt.wantPID]
			if !ok {
				t.Fatalf("ComputeRates() missing entry for pid %d", tt.wantPID)
			}
			if diff := got - tt.want; diff > 0.0001 || diff < -0.0001 {
				t.Errorf("ComputeRates()[%d] = %v, want %v", tt.wantPID, got, tt.want)
			}
		})
	}
}

func TestComputeRatesVanishedProcess(t *testing.T) {
	t0 := time.Now()
	prev := model.PrevState{Timestamp: t0, CPUSeconds: map[int32]float64{5: 10, 6: 20}}
	curr := snapAt(t0.Add(time.Second), cpuProc(5, 11))

	rates := ComputeRates(curr, prev, 1)
	if _, ok := rates[6]; ok {
		t.Errorf("vanished pid 6 should be absent from the rate map, got %v", rates)
	}
	if len(rates) != 1 {
		t.Errorf("rate map should only cover current processes, got %v", rates)
	}
}
