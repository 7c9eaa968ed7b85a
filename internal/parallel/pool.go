// Package parallel runs indexed work, such as image rows, on a fixed set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// task is one index of a ForEach call.
type task struct {
	fn    func(int)
	index int
	done  *sync.WaitGroup
}

func (t task) run() {
	defer t.done.Done()
	t.fn(t.index)
}

// WorkerPool is a pool of goroutines with one queue per worker.
//
// Indices are dealt round-robin onto the worker queues. A worker whose own
// queue is empty steals from the others, so slow rows (deep in the set) do
// not leave the remaining workers idle.
//
// WorkerPool is safe for concurrent use, but fn passed to ForEach must not
// itself call ForEach on the same pool.
type WorkerPool struct {
	workers int
	queues  []chan task
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// mu is held shared while ForEach enqueues so Close cannot strand tasks
	// in a queue whose worker already exited.
	mu sync.RWMutex
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
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

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case t := <-own:
			t.run()
			continue
		default:
		}

		if t, ok := p.steal(id); ok {
			t.run()
			continue
		}

		select {
		case <-p.done:
			p.drain(own)
			return
		case t := <-own:
			t.run()
		}
	}
}

// drain runs whatever is left in queue so that no ForEach caller waits forever.
func (p *WorkerPool) drain(queue chan task) {
	for {
		select {
		case t := <-queue:
			t.run()
		default:
			return
		}
	}
}

func (p *WorkerPool) steal(id int) (task, bool) {
	for i := 1; i < p.workers; i++ {
		select {
		case t := <-p.queues[(id+i)%p.workers]:
			return t, true
		default:
		}
	}
	return task{}, false
}

// ForEach calls fn(i) for every i in [0, n) across the workers and returns
// once all calls have returned. After Close, ForEach runs fn sequentially on
// the calling goroutine.
func (p *WorkerPool) ForEach(n int, fn func(int)) {
	if n <= 0 || fn == nil {
		return
	}

	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		for i := range n {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		p.queues[i%p.workers] <- task{fn: fn, index: i, done: &wg}
	}
	p.mu.RUnlock()
	wg.Wait()
}

// Close stops the workers after their queues drain. Close is safe to call
// multiple times.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.done)
	p.mu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether Close has not been called yet.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
