package collector

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/sync/errgroup"

	"github.com/ftahirops/ttop/model"
)

// SystemSource samples the live host. System-wide counters come from
// gopsutil; per-process and per-thread facts are read from procfs.
// CPU percentages are derived against the source's own previous times
// reading, so the first Sample of a run reports 0 for them.
//
// Sample is not safe for concurrent use; the engine serializes ticks.
type SystemSource struct {
	log      zerolog.Logger
	procRoot string
	prevCPU  *cpu.TimesStat
}

// NewSystemSource creates a source reading from the live /proc.
func NewSystemSource(log zerolog.Logger) *SystemSource {
	return &SystemSource{log: log, procRoot: "/proc"}
}

// Sample performs one batched reading. The counter groups run
// concurrently and are all joined before anything is returned, so no
// partial sample is ever exposed downstream.
func (s *SystemSource) Sample(ctx context.Context) (model.RawSample, []model.ProcessFact, error) {
	var (
		cpuRaw, memRaw, hostRaw model.RawSample
		procs                   []model.ProcessFact
		cpuErr, memErr, hostErr error
		procErr                 error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { cpuRaw, cpuErr = s.cpuSample(gctx); return nil })
	g.Go(func() error { memRaw, memErr = s.memSample(gctx); return nil })
	g.Go(func() error { hostRaw, hostErr = s.hostSample(gctx); return nil })
	g.Go(func() error { procs, procErr = s.enumerateProcesses(); return nil })
	_ = g.Wait()

	if cpuErr != nil && memErr != nil && procErr != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCounterUnavailable, cpuErr)
	}

	for _, err := range []error{cpuErr, memErr, hostErr, procErr} {
		if err != nil {
			s.log.Debug().Err(err).Msg("sub-metric unavailable, substituting 0")
		}
	}

	raw := make(model.RawSample, len(cpuRaw)+len(memRaw)+len(hostRaw))
	for _, part := range []model.RawSample{cpuRaw, memRaw, hostRaw} {
		for k, v := range part {
			raw[k] = v
		}
	}
	return raw, procs, nil
}

func (s *SystemSource) cpuSample(ctx context.Context) (model.RawSample, error) {
	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("cpu times: %w", err)
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("cpu times: empty reading")
	}
	cur := times[0]
	prev := s.prevCPU
	s.prevCPU = &cur

	out := make(model.RawSample)
	if prev != nil {
		dtotal := cur.Total() - prev.Total()
		if dtotal > 0 {
			pct := func(d float64) float64 {
				p := d / dtotal * 100
				if p < 0 {
					return 0
				}
				if p > 100 {
					return 100
				}
				return p
			}
			idle := pct((cur.Idle + cur.Iowait) - (prev.Idle + prev.Iowait))
			out[model.KeyCPUIdle] = idle
			out[model.KeyCPUUtil] = 100 - idle
			out[model.KeyCPUUser] = pct((cur.User + cur.Nice) - (prev.User + prev.Nice))
			out[model.KeyCPUPriv] = pct((cur.System + cur.Steal) - (prev.System + prev.Steal))
			out[model.KeyCPUInterrupt] = pct((cur.Irq + cur.Softirq) - (prev.Irq + prev.Softirq))
		}
	}

	if avg, err := load.AvgWithContext(ctx); err == nil {
		out[model.KeyLoad1] = avg.Load1
		out[model.KeyLoad5] = avg.Load5
		out[model.KeyLoad15] = avg.Load15
	}
	return out, nil
}

func (s *SystemSource) memSample(ctx context.Context) (model.RawSample, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("virtual memory: %w", err)
	}
	return model.RawSample{
		model.KeyMemTotal:        float64(vm.Total),
		model.KeyMemFree:         float64(vm.Available),
		model.KeyMemCached:       float64(vm.Cached),
		model.KeyMemPagedPool:    float64(vm.Sreclaimable),
		model.KeyMemNonPagedPool: float64(vm.Sunreclaim),
		model.KeyMemCommitted:    float64(vm.CommittedAS),
		model.KeyMemCommitLimit:  float64(vm.CommitLimit),
	}, nil
}

func (s *SystemSource) hostSample(ctx context.Context) (model.RawSample, error) {
	out := make(model.RawSample)
	up, upErr := host.UptimeWithContext(ctx)
	if upErr == nil {
		out[model.KeyUptime] = float64(up)
	}
	users, usersErr := host.UsersWithContext(ctx)
	if usersErr == nil {
		out[model.KeyUsers] = float64(len(users))
	}
	if upErr != nil && usersErr != nil {
		return nil, fmt.Errorf("host counters: %w", upErr)
	}
	return out, nil
}
