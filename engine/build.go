package engine

import (
	"time"

	"github.com/ftahirops/ttop/model"
)

// bytesPerMiB converts sampled byte counters to MiB (2^20, not 10^6).
const bytesPerMiB = 1 << 20

// BuildSnapshot reshapes one raw sample into a structured snapshot.
// It is pure and never fails: absent counters read as 0, producing a
// degraded but renderable snapshot. All values stay exact floats;
// rounding belongs to the formatter.
func BuildSnapshot(raw model.RawSample, procs []model.ProcessFact, now time.Time) model.Snapshot {
	return model.Snapshot{
		Timestamp: now,
		CPU: model.CPUMetrics{
			UtilPct:       raw.Get(model.KeyCPUUtil),
			IdlePct:       raw.Get(model.KeyCPUIdle),
			UserPct:       raw.Get(model.KeyCPUUser),
			PrivilegedPct: raw.Get(model.KeyCPUPriv),
			InterruptPct:  raw.Get(model.KeyCPUInterrupt),
		},
		Memory: model.MemoryMetrics{
			TotalMB:        raw.Get(model.KeyMemTotal) / bytesPerMiB,
			FreeMB:         raw.Get(model.KeyMemFree) / bytesPerMiB,
			CachedMB:       raw.Get(model.KeyMemCached) / bytesPerMiB,
			PagedPoolMB:    raw.Get(model.KeyMemPagedPool) / bytesPerMiB,
			NonPagedPoolMB: raw.Get(model.KeyMemNonPagedPool) / bytesPerMiB,
			CommittedMB:    raw.Get(model.KeyMemCommitted) / bytesPerMiB,
			CommitLimitMB:  raw.Get(model.KeyMemCommitLimit) / bytesPerMiB,
		},
		Load: model.LoadAvg{
			Load1:  raw.Get(model.KeyLoad1),
			Load5:  raw.Get(model.KeyLoad5),
			Load15: raw.Get(model.KeyLoad15),
		},
		UptimeSec: raw.Get(model.KeyUptime),
		Users:     int(raw.Get(model.KeyUsers)),
		Processes: procs,
	}
}
