// Package jobs runs the periodic background work: expiring stale pending
// sightings and pruning old system logs.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is a unit of periodic work. Run returns how many items it handled.
type Task struct {
	Name       string
	Interval   time.Duration
	RunAtStart bool
	Run        func(ctx context.Context) (int64, error)
}

// Runner drives a set of tasks, each on its own ticker.
type Runner struct {
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Start launches every task in its own goroutine. Tasks stop when ctx is
// cancelled or Stop is called.
func Start(ctx context.Context, tasks ...Task) *Runner {
	ctx, cancel := context.WithCancel(ctx)
	r := &Runner{cancel: cancel}
	for _, t := range tasks {
		if t.Interval <= 0 {
			slog.Warn("job disabled: non-positive interval", "job", t.Name)
			continue
		}
		r.wg.Add(1)
		go r.loop(ctx, t)
	}
	return r
}

func (r *Runner) loop(ctx context.Context, t Task) {
	defer r.wg.Done()
	if t.RunAtStart {
		runOnce(ctx, t)
	}

	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			runOnce(ctx, t)
		case <-ctx.Done():
			return
		}
	}
}

func runOnce(ctx context.Context, t Task) {
	n, err := t.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("job failed", "job", t.Name, "action", t.Name, "error", err)
		return
	}
	if n > 0 {
		slog.Info("job completed", "job", t.Name, "affected", n)
	}
}

// Stop cancels all tasks and waits for in-flight runs to return.
func (r *Runner) Stop() {
	r.cancel()
	r.wg.Wait()
}
