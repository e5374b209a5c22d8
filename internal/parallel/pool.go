// Package parallel provides the worker pool that fans per-chunk mesh
// rebuilds out across CPUs.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// task is one parallel-for element: invoke fn(idx), then signal wg.
type task struct {
	fn  func(int)
	idx int
	wg  *sync.WaitGroup
}

func (t task) run() {
	if t.fn != nil {
		t.fn(t.idx)
	}
	if t.wg != nil {
		t.wg.Done()
	}
}

// Pool is a pool of goroutines for parallel chunk processing.
//
// Each worker owns a queue and steals from the others when its own
// runs dry. Chunk rebuild cost is uneven (an almost-empty chunk packs
// in microseconds, a full one does not), so stealing keeps workers
// busy through skewed frames.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan task
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// New creates a pool with the given number of workers. Zero or
// negative counts use GOMAXPROCS. Workers start immediately.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		workers: workers,
		queues:  make([]chan task, workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan task, queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

// Run invokes fn(i) for every i in [0, n) across the pool's workers
// and returns when all calls have completed. Items are distributed
// round-robin; stealing rebalances when some run long.
//
// On a closed pool Run executes everything on the calling goroutine
// instead of dropping it: a skipped rebuild would leave a chunk's mesh
// stale with no later signal to fix it.
func (p *Pool) Run(n int, fn func(int)) {
	if n <= 0 || fn == nil {
		return
	}
	if !p.running.Load() {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		t := task{fn: fn, idx: i, wg: &wg}
		select {
		case p.queues[i%p.workers] <- t:
		case <-p.done:
			// Pool is closing; run on the caller.
			t.run()
		}
	}
	wg.Wait()
}

// worker is the main loop for each worker goroutine.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return

		case t := <-own:
			t.run()

		default:
			if t, ok := p.steal(id); ok {
				t.run()
			} else {
				select {
				case <-p.done:
					p.drain(own)
					return
				case t := <-own:
					t.run()
				}
			}
		}
	}
}

// drain executes whatever is left in a queue during shutdown.
func (p *Pool) drain(queue chan task) {
	for {
		select {
		case t := <-queue:
			t.run()
		default:
			return
		}
	}
}

// steal takes one task from another worker's queue, if any has one.
func (p *Pool) steal(myID int) (task, bool) {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case t := <-p.queues[i]:
			return t, true
		default:
		}
	}
	return task{}, false
}

// Close stops accepting distributed work, waits for queued tasks to
// finish, and stops all workers. Safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts distributed work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}
