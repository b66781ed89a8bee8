package async

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Task func(ctx context.Context)

// WorkerPool runs submitted tasks on a fixed set of goroutines. Tasks are
// best-effort: submissions after shutdown are dropped, and a panicking task
// takes down nothing but itself.
type WorkerPool struct {
	tasks  chan Task
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger
}

func NewWorkerPool(parent context.Context, size int, log *zap.Logger) *WorkerPool {
	ctx, cancel := context.WithCancel(parent)
	p := &WorkerPool{
		tasks:  make(chan Task),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case task := <-p.tasks:
			taskCtx, cancel := context.WithTimeout(p.ctx, 2*time.Second)
			func() {
				defer func() {
					if r := recover(); r != nil {
						p.log.Error("task panicked", zap.Any("panic", r))
					}
				}()
				task(taskCtx)
			}()
			cancel()
		}
	}
}

func (p *WorkerPool) Submit(task Task) {
	select {
	case <-p.ctx.Done():
		return
	case p.tasks <- task:
	}
}

// Shutdown only cancels; the task channel is never closed, so a Submit
// racing Shutdown drops the task instead of panicking on a closed channel.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
