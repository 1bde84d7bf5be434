package worker

import (
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
)

var workerQueue = make(chan func(), runtime.NumCPU())

func init() {
	for i := 0; i < runtime.NumCPU(); i++ {
		go worker()
	}
}

func worker() {
	for f := range workerQueue {
		execute(f)
	}
}

// execute runs f, reporting a panic to sentry without taking the worker down.
func execute(f func()) {
	defer sentry.Recover()
	f()
}

// Submit queues f to run on the pool. To be used by a function that may be CPU intensive.
func Submit(f func()) {
	workerQueue <- f
}

// Group runs a batch of functions on the pool and waits for all of them. A panic in any of them is reported
// to sentry and raised again from Wait, so the caller fails the same way it would have run serially.
type Group struct {
	wg sync.WaitGroup

	mu       sync.Mutex
	panicked any
}

// Go runs f on the pool as part of the group.
func (g *Group) Go(f func()) {
	g.wg.Add(1)
	Submit(func() {
		defer g.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				sentry.CurrentHub().Recover(r)
				g.mu.Lock()
				if g.panicked == nil {
					g.panicked = r
				}
				g.mu.Unlock()
			}
		}()
		f()
	})
}

// Wait blocks until every function passed to Go has returned.
func (g *Group) Wait() {
	g.wg.Wait()

	g.mu.Lock()
	r := g.panicked
	g.panicked = nil
	g.mu.Unlock()
	if r != nil {
		panic(r)
	}
}
