// Package scheduler runs periodic background tasks for the service.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is a unit of periodic work. Name is used for logging only.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// IntervalRunner executes registered tasks on their own tickers until
// stopped. Tasks run sequentially per ticker tick; a slow task delays
// only its own schedule.
type IntervalRunner struct {
	logger *zap.Logger
	tasks  []Task

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewIntervalRunner creates a runner with no tasks registered.
func NewIntervalRunner(logger *zap.Logger) *IntervalRunner {
	return &IntervalRunner{logger: logger}
}

// Register adds a task. Must be called before Start.
func (r *IntervalRunner) Register(task Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, task)
}

// Start launches one goroutine per registered task.
func (r *IntervalRunner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.isRunning {
		r.mu.Unlock()
		return nil
	}
	r.isRunning = true
	tasks := make([]Task, len(r.tasks))
	copy(tasks, r.tasks)
	r.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for _, task := range tasks {
		r.wg.Add(1)
		go r.runLoop(ctx, task)
	}

	r.logger.Info("scheduler started", zap.Int("tasks", len(tasks)))
	return nil
}

// Stop cancels all tasks and waits for them to finish or ctx to expire.
func (r *IntervalRunner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return nil
	}
	r.isRunning = false
	r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *IntervalRunner) runLoop(ctx context.Context, task Task) {
	defer r.wg.Done()

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := task.Run(ctx); err != nil {
				r.logger.Error("scheduled task failed",
					zap.String("task", task.Name),
					zap.Error(err),
				)
			}
		}
	}
}
