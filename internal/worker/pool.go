// Package worker runs slow jobs (model calls) off the update loop.
package worker

import (
	"context"
	"errors"
	"log"
	"sync"
)

var (
	ErrClosed    = errors.New("worker: pool closed")
	ErrQueueFull = errors.New("worker: queue full")
)

// Task is one unit of work. The context is the one passed to Submit.
type Task func(ctx context.Context)

type job struct {
	ctx  context.Context
	task Task
}

// Pool is a fixed set of goroutines draining a bounded queue.
type Pool struct {
	jobs chan job
	mu   sync.RWMutex
	shut bool
	wg   sync.WaitGroup
}

func New(workers, queue int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queue <= 0 {
		queue = workers * 16
	}
	p := &Pool{jobs: make(chan job, queue)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.loop()
	}
	return p
}

// Submit queues task without blocking.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	if task == nil {
		return errors.New("worker: nil task")
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.shut {
		return ErrClosed
	}
	select {
	case p.jobs <- job{ctx: ctx, task: task}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting jobs and waits for queued ones to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.shut {
		p.mu.Unlock()
		return
	}
	p.shut = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) loop() {
	defer p.wg.Done()
	for j := range p.jobs {
		p.run(j)
	}
}

func (p *Pool) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("🔥 worker task panicked: %v", r)
		}
	}()
	ctx := j.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	j.task(ctx)
}
