package collector

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ftahirops/ttop/model"
	"github.com/ftahirops/ttop/util"
)

// clockTicksPerSec is the kernel jiffy rate (CLK_TCK). Fixed at 100 on
// every mainstream Linux build.
const clockTicksPerSec = 100

// enumerateProcesses reads per-PID facts from procfs, including the
// per-thread scheduler states the classifier needs.
func (s *SystemSource) enumerateProcesses() ([]model.ProcessFact, error) {
	entries, err := os.ReadDir(s.procRoot)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.procRoot, err)
	}

	var procs []model.ProcessFact
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid := util.ParseInt(e.Name())
		if pid <= 0 {
			continue
		}
		pf, err := s.readProcess(int32(pid))
		if err != nil {
			continue // process exited mid-read
		}
		procs = append(procs, pf)
	}
	return procs, nil
}

func (s *SystemSource) readProcess(pid int32) (model.ProcessFact, error) {
	pf := model.ProcessFact{PID: pid}
	dir := filepath.Join(s.procRoot, strconv.Itoa(int(pid)))

	state, err := readProcStat(dir, &pf)
	if err != nil {
		return pf, err
	}
	readProcStatus(dir, &pf)
	readProcCmdline(dir, &pf)

	pf.Threads = readThreads(dir)
	if len(pf.Threads) == 0 {
		// Task dir unreadable; fall back to the main thread's state.
		pf.Threads = []model.ThreadInfo{threadFromState(pid, state)}
	}
	return pf, nil
}

// readProcStat parses /proc/[pid]/stat and returns the state character.
func readProcStat(dir string, pf *model.ProcessFact) (string, error) {
	content, err := util.ReadFileString(filepath.Join(dir, "stat"))
	if err != nil {
		return "", err
	}

	// Format: pid (comm) state ppid ... — comm can contain spaces and
	// parens, so split on the last ')'.
	openIdx := strings.Index(content, "(")
	closeIdx := strings.LastIndex(content, ")")
	if openIdx < 0 || closeIdx < openIdx {
		return "", fmt.Errorf("bad stat format")
	}
	pf.Name = content[openIdx+1 : closeIdx]

	rest := strings.Fields(content[closeIdx+2:])
	if len(rest) < 13 {
		return "", fmt.Errorf("stat too short")
	}
	utime := util.ParseUint64(rest[11])
	stime := util.ParseUint64(rest[12])
	pf.CPUSeconds = float64(utime+stime) / clockTicksPerSec
	return rest[0], nil
}

func readProcStatus(dir string, pf *model.ProcessFact) {
	kv, err := util.ParseKeyValueFile(filepath.Join(dir, "status"))
	if err != nil {
		return
	}
	pf.WorkingSetBytes = util.StatusKB(kv["VmRSS"])
	pf.PagedBytes = util.StatusKB(kv["VmSwap"])
	pf.NonPagedBytes = util.StatusKB(kv["VmLck"])
}

func readProcCmdline(dir string, pf *model.ProcessFact) {
	data, err := os.ReadFile(filepath.Join(dir, "cmdline"))
	if err != nil {
		return
	}
	cmdline := string(bytes.ReplaceAll(data, []byte{0}, []byte{' '}))
	pf.CommandLine = strings.TrimSpace(cmdline)
}

// readThreads reads the state of every thread under /proc/[pid]/task.
func readThreads(dir string) []model.ThreadInfo {
	entries, err := os.ReadDir(filepath.Join(dir, "task"))
	if err != nil {
		return nil
	}
	var threads []model.ThreadInfo
	for _, e := range entries {
		tid := util.ParseInt(e.Name())
		if tid <= 0 {
			continue
		}
		content, err := util.ReadFileString(filepath.Join(dir, "task", e.Name(), "stat"))
		if err != nil {
			continue // thread exited mid-read
		}
		closeIdx := strings.LastIndex(content, ")")
		if closeIdx < 0 {
			continue
		}
		fields := strings.Fields(content[closeIdx+2:])
		if len(fields) == 0 {
			continue
		}
		threads = append(threads, threadFromState(int32(tid), fields[0]))
	}
	return threads
}

// threadFromState maps a procfs state character to scheduler facts.
// R is runnable (on-CPU), T/t are stopped threads, everything else
// (S, D, Z, I, X) is some form of wait.
func threadFromState(tid int32, state string) model.ThreadInfo {
	ti := model.ThreadInfo{TID: tid}
	switch state {
	case "R":
		ti.State = model.ThreadRunning
	case "T", "t":
		ti.State = model.ThreadWaiting
		ti.Wait = model.WaitSuspended
	default:
		ti.State = model.ThreadWaiting
		ti.Wait = model.WaitOther
	}
	return ti
}
