package model

// RawSample maps a counter key to the value read for it this tick.
// Keys are stable across ticks; an absent key reads as 0 so that a
// momentarily failing sub-counter degrades the frame instead of
// aborting it.
type RawSample map[string]float64

// Get returns the value for key, or 0 if the counter was absent.
func (r RawSample) Get(key string) float64 {
	return r[key]
}

// Counter keys produced by the system source. CPU values are
// percentages, memory values are bytes, uptime is seconds.
const (
	KeyCPUUtil      = "cpu.utilization"
	KeyCPUIdle      = "cpu.idle"
	KeyCPUUser      = "cpu.user"
	KeyCPUPriv      = "cpu.privileged"
	KeyCPUInterrupt = "cpu.interrupt"

	KeyMemTotal        = "mem.total"
	KeyMemFree         = "mem.free"
	KeyMemCached       = "mem.cached"
	KeyMemPagedPool    = "mem.paged_pool"
	KeyMemNonPagedPool = "mem.nonpaged_pool"
	KeyMemCommitted    = "mem.committed"
	KeyMemCommitLimit  = "mem.commit_limit"

	KeyUptime = "host.uptime"
	KeyUsers  = "host.users"
	KeyLoad1  = "load.1"
	KeyLoad5  = "load.5"
	KeyLoad15 = "load.15"
)
