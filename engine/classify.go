package engine

import "github.com/ftahirops/ttop/model"

// Classify derives task-state counts from per-thread scheduler facts.
//
// A process is running if any thread is running, ready if any thread is
// ready, and suspended if any thread's wait reason is suspended. These
// buckets are independent. Wait is the exception: it is computed first
// as the count of not-suspended processes, then the running count is
// subtracted, so a process is never both running and waiting while
// running and ready remain non-exclusive.
func Classify(procs []model.ProcessFact) model.TaskCounts {
	tc := model.TaskCounts{Total: len(procs)}

	for _, p := range procs {
		var running, ready, suspended bool
		for _, t := range p.Threads {
			switch t.State {
			case model.ThreadRunning:
				running = true
			case model.ThreadReady:
				ready = true
			case model.ThreadWaiting:
				if t.Wait == model.WaitSuspended {
					suspended = true
				}
			}
		}
		if running {
			tc.Running++
		}
		if ready {
			tc.Ready++
		}
		if suspended {
			tc.Suspended++
		} else {
			tc.Wait++
		}
	}

	tc.Wait -= tc.Running
	return tc
}
