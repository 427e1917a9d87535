package util

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestCPUSharePct(t *testing.T) {
	tests := []struct {
		name           string
		delta, elapsed float64
		cores          int
		want           float64
	}{
		{"one core fully busy of four", 2, 2, 4, 25},
		{"whole machine busy", 8, 2, 4, 100},
		{"idle", 0, 1, 4, 0},
		{"negative delta (pid reuse)", -8, 10, 4, 0},
		{"zero elapsed", 1, 0, 4, 0},
		{"negative elapsed", 1, -1, 4, 0},
		{"zero cores", 1, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CPUSharePct(tt.delta, tt.elapsed, tt.cores)
			if diff := got - tt.want; diff > 0.0001 || diff < -0.0001 {
				t.Errorf("CPUSharePct(%v, %v, %d) = %v, want %v",
					tt.delta, tt.elapsed, tt.cores, got, tt.want)
			}
		})
	}
}

func TestCPUSharePctProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("never negative", prop.ForAll(
		func(delta, elapsed float64, cores int) bool {
			return CPUSharePct(delta, elapsed, cores) >= 0
		},
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(-3600, 3600),
		gen.IntRange(0, 256),
	))

	properties.Property("physically possible deltas stay within 100%", prop.ForAll(
		func(frac, elapsed float64, cores int) bool {
			// delta cannot exceed elapsed seconds times core count
			delta := frac * elapsed * float64(cores)
			return CPUSharePct(delta, elapsed, cores) <= 100.0001
		},
		gen.Float64Range(0, 1),
		gen.Float64Range(0.001, 3600),
		gen.IntRange(1, 256),
	))

	properties.TestingRun(t)
}

func TestPctOf(t *testing.T) {
	if got := PctOf(1, 4); got != 25 {
		t.Errorf("PctOf(1, 4) = %v, want 25", got)
	}
	if got := PctOf(1, 0); got != 0 {
		t.Errorf("PctOf(1, 0) = %v, want 0", got)
	}
}
