package harvest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"yt-harvester/internal/model"
)

const DefaultWorkers = 4

// Task is one work item handed to an ItemFunc. Stage reports a named step
// of the item's pipeline; it only moves the progress counter in detailed
// mode.
type Task struct {
	Item   model.WorkItem
	Worker int
	Stage  func(desc string)
}

// Outcome is what an ItemFunc reports back. A nil Err means success.
type Outcome struct {
	Index   int
	Input   string
	VideoID string
	Path    string
	Err     error
}

type ItemFunc func(ctx context.Context, task Task) Outcome

type Options struct {
	Workers int
	// Sequential runs items one at a time in input order. It is required
	// when every item appends to one shared file.
	Sequential bool
	// Detailed advances progress once per stage instead of once per item.
	Detailed   bool
	StageCount int
	Renderer   Renderer
}

// Summary reports counts, per-item outcomes and the items with their final
// status, all in input order.
type Summary struct {
	Succeeded int
	Failed    int
	Outcomes  []Outcome
	Items     []model.WorkItem
}

// Run processes every item and never stops early on an item failure.
// Outcomes are returned in input order. A cancelled ctx fails the items that
// have not started yet.
func Run(ctx context.Context, items []model.WorkItem, fn ItemFunc, opts Options) Summary {
	total := len(items)
	if opts.Detailed {
		total = max(opts.StageCount, 1)
	}
	progress := newTracker(total, opts.Renderer)

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if opts.Sequential {
		workers = 1
	}
	workers = max(1, min(workers, len(items)))

	outcomes := make([]Outcome, len(items))
	state := make([]model.WorkItem, len(items))
	copy(state, items)

	jobCh := make(chan int)
	var succeeded atomic.Int64
	var stateMu sync.Mutex
	var wg sync.WaitGroup

	transition := func(i int, to, reason string) {
		stateMu.Lock()
		defer stateMu.Unlock()
		if state[i].Status == "" {
			state[i].Status = model.StatusPending
		}
		_ = model.TransitionItemStatus(&state[i], to, reason)
	}

	workerFn := func(workerID int) {
		defer wg.Done()
		for i := range jobCh {
			item := items[i]
			var out Outcome
			if err := ctx.Err(); err != nil {
				out = Outcome{Err: fmt.Errorf("interrupted: %w", err)}
			} else {
				transition(i, model.StatusRunning, "")
				task := Task{Item: item, Worker: workerID, Stage: func(string) {}}
				if opts.Detailed {
					task.Stage = progress.Advance
				}
				out = invoke(ctx, fn, task)
			}
			out.Index = item.Index
			out.Input = item.Input
			outcomes[i] = out

			if out.Err == nil {
				succeeded.Add(1)
				transition(i, model.StatusCompleted, "")
			} else {
				transition(i, model.StatusFailed, out.Err.Error())
			}

			if opts.Detailed {
				if out.Err == nil {
					progress.Fill()
				}
			} else {
				progress.Advance("")
			}
			progress.Println(feedbackLine(out, len(items)))
		}
	}

	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go workerFn(w)
	}
	for i := range items {
		jobCh <- i
	}
	close(jobCh)
	wg.Wait()

	s := Summary{
		Succeeded: int(succeeded.Load()),
		Outcomes:  outcomes,
		Items:     state,
	}
	s.Failed = len(items) - s.Succeeded
	progress.Println(fmt.Sprintf("Done! Success: %d, Failed: %d", s.Succeeded, s.Failed))
	progress.Close()
	return s
}

func invoke(ctx context.Context, fn ItemFunc, task Task) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return fn(ctx, task)
}

func feedbackLine(out Outcome, total int) string {
	name := out.VideoID
	if name == "" {
		name = out.Input
	}
	if out.Err != nil {
		return fmt.Sprintf("[%d/%d] fail  %s (%v)", out.Index, total, name, out.Err)
	}
	return fmt.Sprintf("[%d/%d] done  %s -> %s", out.Index, total, name, out.Path)
}
