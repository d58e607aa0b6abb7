package parallel

import (
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func())
	WaitFunc   func(done bool)
	CancelFunc func()
)

// Pool runs submitted functions on a fixed set of goroutines. A pool with a
// single worker runs everything inline on the submitting goroutine.
//
// Wait(false) blocks until every function submitted so far has returned and
// leaves the pool usable. Wait(true) does the same and then stops the
// workers; nothing may be submitted afterwards.
type Pool struct {
	wg      sync.WaitGroup
	pending sync.WaitGroup
	workers int
	Do      WorkerFunc
	Wait    WaitFunc
	Cancel  CancelFunc
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range workChan {
					f()
					pool.pending.Done()
				}
			})
		}

		pool.Do = func(f func()) {
			pool.pending.Add(1)
			workChan <- f
		}

		pool.Wait = func(done bool) {
			pool.pending.Wait()
			if done {
				pool.Cancel()
				pool.wg.Wait()
			}
		}
		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	}

	return pool
}

// Workers reports how many goroutines serve the pool.
func (p *Pool) Workers() int {
	return p.workers
}
