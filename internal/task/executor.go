// Package task runs background work on a fixed pool of workers. Each
// submitted function is executed exactly once; a panic inside a function
// is contained to that function.
package task

import (
	"context"
	"log"
	"sync"
)

type Executor struct {
	jobs   chan func(context.Context)
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewExecutor starts workers goroutines draining a bounded queue.
// Submit blocks when the queue is full rather than dropping work.
func NewExecutor(workers int) *Executor {
	if workers <= 0 {
		workers = 2
	}
	if workers > 50 {
		workers = 50
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Executor{
		jobs:   make(chan func(context.Context), workers*2),
		ctx:    ctx,
		cancel: cancel,
	}

	e.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(workerID int) {
			defer e.wg.Done()
			for fn := range e.jobs {
				e.run(workerID, fn)
			}
		}(i)
	}
	return e
}

func (e *Executor) run(workerID int, fn func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("worker=%d task panic: %v", workerID, r)
		}
	}()
	fn(e.ctx)
}

// Submit schedules fn for background execution. Must not be called after
// Shutdown.
func (e *Executor) Submit(fn func(context.Context)) {
	e.jobs <- fn
}

// Shutdown stops accepting work and waits for in-flight tasks to finish.
func (e *Executor) Shutdown() {
	close(e.jobs)
	e.wg.Wait()
	e.cancel()
}
