package collector

import (
	"context"
	"errors"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/ftahirops/ttop/model"
)

// ErrCounterUnavailable reports that the host metric subsystem could not
// be queried at all this tick. The caller skips rendering and retries on
// the next scheduled tick; it is never fatal to the loop.
var ErrCounterUnavailable = errors.New("host metric subsystem unavailable")

// Source produces one batched reading of all counters and process facts
// per tick. Individual missing sub-metrics are absent from the sample
// (and read as 0); only a whole-batch failure returns an error.
type Source interface {
	Sample(ctx context.Context) (model.RawSample, []model.ProcessFact, error)
}

// HostInfo holds host constants queried once at startup and treated as
// fixed for the process lifetime.
type HostInfo struct {
	Hostname   string
	Cores      int
	TotalBytes uint64
}

// CollectHostInfo queries the host constants. Failures fall back to
// conservative defaults rather than erroring.
func CollectHostInfo() HostInfo {
	info := HostInfo{}
	info.Hostname, _ = os.Hostname()

	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		n = runtime.NumCPU()
	}
	info.Cores = n

	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalBytes = vm.Total
	}
	return info
}
