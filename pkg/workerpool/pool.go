// Package workerpool moves blocking store calls off the GUI loop. Workers
// run jobs to completion and park the (result, error) pair in a queue; the
// GUI loop drains the queue on its periodic tick via Poll, so callbacks
// always fire on the caller's goroutine and never touch engine caches from
// a worker.
package workerpool

import "sync"

type Job func() (interface{}, error)

type Callback func(result interface{}, err error)

type completion struct {
	cb     Callback
	result interface{}
	err    error
}

type task struct {
	job Job
	cb  Callback
}

type Pool struct {
	jobs chan task
	wg   sync.WaitGroup

	mu      sync.Mutex
	pending []completion
}

// New starts a pool with the given number of workers.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	p := &Pool{
		jobs: make(chan task, 64),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.jobs {
		result, err := t.job()
		p.mu.Lock()
		p.pending = append(p.pending, completion{cb: t.cb, result: result, err: err})
		p.mu.Unlock()
	}
}

// Submit queues a blocking job. The callback is not invoked here; it fires
// during a later Poll on the polling goroutine. There is no cancellation: a
// submitted job always runs to completion.
func (p *Pool) Submit(job Job, cb Callback) {
	p.jobs <- task{job: job, cb: cb}
}

// Poll drains finished jobs and invokes their callbacks on the calling
// goroutine. Returns the number of callbacks fired.
func (p *Pool) Poll() int {
	p.mu.Lock()
	done := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, c := range done {
		if c.cb != nil {
			c.cb(c.result, c.err)
		}
	}
	return len(done)
}

// Close stops accepting jobs and waits for running ones to finish. Pending
// completions can still be drained with Poll afterwards.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}
