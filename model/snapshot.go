package model

import "time"

// Snapshot holds the complete, internally consistent set of derived
// metrics for one tick. It is built once per tick and never mutated
// after the classifier has filled in Tasks.
type Snapshot struct {
	Timestamp time.Time
	CPU       CPUMetrics
	Memory    MemoryMetrics
	Load      LoadAvg
	UptimeSec float64
	Users     int
	Processes []ProcessFact
	Tasks     TaskCounts
}

// CPUMetrics holds whole-system CPU percentages, all in [0,100].
// InterruptPct combines hard-interrupt and deferred (softirq) time.
type CPUMetrics struct {
	UtilPct       float64
	IdlePct       float64
	UserPct       float64
	PrivilegedPct float64
	InterruptPct  float64
}

// MemoryMetrics holds system memory figures in MiB.
type MemoryMetrics struct {
	TotalMB        float64
	FreeMB         float64
	CachedMB       float64
	PagedPoolMB    float64
	NonPagedPoolMB float64
	CommittedMB    float64
	CommitLimitMB  float64
}

// InUseMB is always derived from total and free, never sampled directly.
func (m MemoryMetrics) InUseMB() float64 {
	return m.TotalMB - m.FreeMB
}

// LoadAvg holds the 1/5/15 minute load averages.
type LoadAvg struct {
	Load1  float64
	Load5  float64
	Load15 float64
}

// TaskCounts holds per-state process totals. The buckets are not
// mutually exclusive: a process with both running and ready threads
// counts in both, but a running process never counts as waiting.
type TaskCounts struct {
	Total     int
	Running   int
	Ready     int
	Suspended int
	Wait      int
}

// ThreadState is the scheduler state of a single thread.
type ThreadState int

const (
	ThreadRunning ThreadState = iota
	ThreadReady
	ThreadWaiting
)

// WaitReason qualifies ThreadWaiting.
type WaitReason int

const (
	WaitNone WaitReason = iota
	WaitSuspended
	WaitOther
)

// ThreadInfo is one thread's scheduling facts.
type ThreadInfo struct {
	TID   int32
	State ThreadState
	Wait  WaitReason
}

// ProcessFact holds the raw per-process figures read in one tick.
// CPUSeconds is cumulative since process start; rates are derived
// elsewhere from two consecutive readings.
type ProcessFact struct {
	PID             int32
	Name            string
	WorkingSetBytes uint64
	PagedBytes      uint64
	NonPagedBytes   uint64
	CPUSeconds      float64
	CommandLine     string
	Threads         []ThreadInfo
}

// PrevState is the subset of the previous tick retained to compute
// per-process CPU rates. It is replaced wholesale after every
// successful tick and never grows across ticks.
type PrevState struct {
	Timestamp  time.Time
	CPUSeconds map[int32]float64
}

// NewPrevState captures the rate-relevant fields of a snapshot.
func NewPrevState(snap *Snapshot) PrevState {
	ps := PrevState{
		Timestamp:  snap.Timestamp,
		CPUSeconds: make(map[int32]float64, len(snap.Processes)),
	}
	for _, p := range snap.Processes {
		ps.CPUSeconds[p.PID] = p.CPUSeconds
	}
	return ps
}
