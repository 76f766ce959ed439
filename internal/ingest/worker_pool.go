package ingest

import (
	"context"
	"sync"
)

// fetchTask fetches one provider and reports how it went.
type fetchTask func(ctx context.Context) error

type taskResult struct {
	Err error
}

// workerPool runs provider fetches concurrently. Each task is independent;
// a failing task only surfaces through its result.
type workerPool struct {
	workers int
	tasks   chan fetchTask
	wg      sync.WaitGroup
}

func newWorkerPool(workers, buffer int) *workerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &workerPool{
		workers: workers,
		tasks:   make(chan fetchTask, buffer),
	}
}

func (p *workerPool) Submit(t fetchTask) {
	if t == nil {
		return
	}
	p.tasks <- t
}

func (p *workerPool) Close() {
	close(p.tasks)
}

func (p *workerPool) Run(ctx context.Context) <-chan taskResult {
	out := make(chan taskResult, p.workers*4)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					err := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- taskResult{Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}
