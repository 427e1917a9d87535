package engine

import (
	"testing"

	"github.com/ftahirops/ttop/model"
)

func proc(pid int32, threads ...model.ThreadInfo) model.ProcessFact {
	return model.ProcessFact{PID: pid, Threads: threads}
}

func running() model.ThreadInfo {
	return model.ThreadInfo{State: model.ThreadRunning}
}

func ready() model.ThreadInfo {
	return model.ThreadInfo{State: model.ThreadReady}
}

func waiting() model.ThreadInfo {
	return model.ThreadInfo{State: model.ThreadWaiting, Wait: model.WaitOther}
}

func suspended() model.ThreadInfo {
	return model.ThreadInfo{State: model.ThreadWaiting, Wait: model.WaitSuspended}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		procs []model.ProcessFact
		want  model.TaskCounts
	}{
		{
			name:  "empty",
			procs: nil,
			want:  model.TaskCounts{},
		},
		{
			name:  "single waiting process",
			procs: []model.ProcessFact{proc(1, waiting())},
			want:  model.TaskCounts{Total: 1, Wait: 1},
		},
		{
			// A running process must not also count as waiting.
			name:  "running excluded from wait",
			procs: []model.ProcessFact{proc(1, running(), waiting())},
			want:  model.TaskCounts{Total: 1, Running: 1, Wait: 0},
		},
		{
			// Running and ready are independent buckets.
			name:  "running and ready overlap",
			procs: []model.ProcessFact{proc(1, running(), ready())},
			want:  model.TaskCounts{Total: 1, Running: 1, Ready: 1, Wait: 0},
		},
		{
			name:  "suspended process leaves wait pool",
			procs: []model.ProcessFact{proc(1, suspended(), waiting())},
			want:  model.TaskCounts{Total: 1, Suspended: 1, Wait: 0},
		},
		{
			// Two running processes, wait-before-subtraction of two:
			// final wait must land exactly on zero.
			name: "wait subtraction floor",
			procs: []model.ProcessFact{
				proc(1, running(), waiting()),
				proc(2, running(), waiting()),
			},
			want: model.TaskCounts{Total: 2, Running: 2, Wait: 0},
		},
		{
			name: "mixed population",
			procs: []model.ProcessFact{
				proc(1, running()),
				proc(2, ready(), waiting()),
				proc(3, suspended()),
				proc(4, waiting()),
				proc(5, waiting()),
			},
			want: model.TaskCounts{Total: 5, Running: 1, Ready: 1, Suspended: 1, Wait: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.procs)
			if got != tt.want {
				t.Errorf("Classify() = %+v, want %+v", got, tt.want)
			}
			if got.Wait < 0 {
				t.Errorf("Classify() produced negative wait count: %+v", got)
			}
		})
	}
}
