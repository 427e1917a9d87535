package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ftahirops/ttop/model"
	"github.com/ftahirops/ttop/util"
)

// Banner is the literal program name on the summary line.
const Banner = "ttop"

// DefaultTopN is the default process-table depth.
const DefaultTopN = 15

// Column widths chosen so successive frames redraw in place without
// jitter. Memory figures get 10 columns.
const (
	colMem  = 10
	colPID  = 7
	colName = 20
	colPct  = 6
)

// Row is one fully derived process-table entry.
type Row struct {
	PID         int32
	Name        string
	WSMiB       float64
	PagedMiB    float64
	NonPagedMiB float64
	CPUPct      float64
	MemPct      float64
	Command     string
}

// BuildRows flattens a snapshot and its rate map into table rows,
// preserving enumeration order. Processes without a rate entry (first
// tick, newly appeared) report 0.
func BuildRows(snap *model.Snapshot, rates map[int32]float64) []Row {
	rows := make([]Row, 0, len(snap.Processes))
	for _, p := range snap.Processes {
		cmd := p.CommandLine
		if cmd == "" {
			cmd = "[" + p.Name + "]"
		}
		rows = append(rows, Row{
			PID:         p.PID,
			Name:        p.Name,
			WSMiB:       float64(p.WorkingSetBytes) / (1 << 20),
			PagedMiB:    float64(p.PagedBytes) / (1 << 20),
			NonPagedMiB: float64(p.NonPagedBytes) / (1 << 20),
			CPUPct:      rates[p.PID],
			MemPct:      util.PctOf(float64(p.WorkingSetBytes)/(1<<20), snap.Memory.TotalMB),
			Command:     cmd,
		})
	}
	return rows
}

// SortRows orders rows by CPU% descending. The sort is stable so ties
// keep their original enumeration order across ticks.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CPUPct > rows[j].CPUPct
	})
}

// UptimePhrase renders uptime the way the summary line wants it:
// days first, then hours:minutes, then bare minutes. Hours and minutes
// are deliberately unpadded.
func UptimePhrase(uptime time.Duration) string {
	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	mins := int(uptime.Minutes()) % 60
	switch {
	case days >= 1:
		return fmt.Sprintf("up %d days, %d:%d,", days, hours, mins)
	case hours >= 1:
		return fmt.Sprintf("up %d:%d,", hours, mins)
	default:
		return fmt.Sprintf("up %d min,", mins)
	}
}

// UserPhrase pluralizes the session count.
func UserPhrase(users int) string {
	if users == 1 {
		return "1 user,"
	}
	return fmt.Sprintf("%d users,", users)
}

// SummaryLine assembles the banner line: program name, wall clock,
// uptime, sessions, core count, and load averages.
func SummaryLine(now time.Time, uptime time.Duration, users, cores int, la model.LoadAvg) string {
	return fmt.Sprintf("%s - %s %s %s %d cores, load average: %.2f, %.2f, %.2f",
		Banner, now.Format("15:04:05"), UptimePhrase(uptime), UserPhrase(users),
		cores, la.Load1, la.Load5, la.Load15)
}

// TasksLine renders the task-state counts.
func TasksLine(tc model.TaskCounts) string {
	return fmt.Sprintf("Tasks: %3d total, %3d running, %3d ready, %3d suspended, %3d wait",
		tc.Total, tc.Running, tc.Ready, tc.Suspended, tc.Wait)
}

// CPULine renders whole-system CPU percentages, one decimal each.
func CPULine(c model.CPUMetrics) string {
	return fmt.Sprintf("%%Cpu(s): %5.1f util, %5.1f idle, %5.1f user, %5.1f priv, %5.1f intr",
		c.UtilPct, c.IdlePct, c.UserPct, c.PrivilegedPct, c.InterruptPct)
}

// MemLine renders main memory figures in fixed 10-column fields.
func MemLine(m model.MemoryMetrics) string {
	return fmt.Sprintf("MiB Mem : %*.1f total, %*.1f free, %*.1f used, %*.1f cached",
		colMem, m.TotalMB, colMem, m.FreeMB, colMem, m.InUseMB(), colMem, m.CachedMB)
}

// PoolLine renders kernel pool and commit figures.
func PoolLine(m model.MemoryMetrics) string {
	return fmt.Sprintf("MiB Pool: %*.1f paged, %*.1f non-paged, %*.1f committed, %*.1f limit",
		colMem, m.PagedPoolMB, colMem, m.NonPagedPoolMB, colMem, m.CommittedMB, colMem, m.CommitLimitMB)
}

// TableHeader is the fixed process-table heading.
func TableHeader() string {
	return fmt.Sprintf("%*s %-*s %*s %*s %*s %*s %*s COMMAND",
		colPID, "PID", colName, "NAME", colMem, "WS(MiB)", colMem, "PAGED(MiB)",
		colMem, "NP(MiB)", colPct, "CPU%", colPct, "%MEM")
}

// TableRow renders one process entry. CPU% gets one decimal, %MEM two.
func TableRow(r Row) string {
	return fmt.Sprintf("%*d %-*s %*.1f %*.1f %*.1f %*.1f %*.2f %s",
		colPID, r.PID, colName, trunc(r.Name, colName), colMem, r.WSMiB,
		colMem, r.PagedMiB, colMem, r.NonPagedMiB, colPct, r.CPUPct,
		colPct, r.MemPct, r.Command)
}

// FrameLines renders one complete frame as ordered, unstyled lines:
// summary, tasks, CPU, memory, pool, then the top-N process table.
// The logical core count is a startup constant passed in explicitly.
func FrameLines(snap *model.Snapshot, rates map[int32]float64, cores, topN int) []string {
	if topN <= 0 {
		topN = DefaultTopN
	}
	rows := BuildRows(snap, rates)
	SortRows(rows)
	if len(rows) > topN {
		rows = rows[:topN]
	}

	lines := make([]string, 0, 7+len(rows))
	lines = append(lines,
		SummaryLine(snap.Timestamp, time.Duration(snap.UptimeSec)*time.Second,
			snap.Users, cores, snap.Load),
		TasksLine(snap.Tasks),
		CPULine(snap.CPU),
		MemLine(snap.Memory),
		PoolLine(snap.Memory),
		"",
		TableHeader(),
	)
	for _, r := range rows {
		lines = append(lines, TableRow(r))
	}
	return lines
}

// Frame joins frame lines, clamping each to width columns when width
// is positive so a narrow terminal never wraps and breaks the redraw.
func Frame(snap *model.Snapshot, rates map[int32]float64, cores, topN, width int) string {
	lines := FrameLines(snap, rates, cores, topN)
	if width > 0 {
		for i, l := range lines {
			lines[i] = clamp(l, width)
		}
	}
	return strings.Join(lines, "\n")
}

func trunc(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func clamp(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	return string(r[:w])
}
