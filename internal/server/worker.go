package server

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

var errWorkerStopped = errors.New("host worker stopped")

// hostWorker runs every host call on one goroutine locked to its OS thread.
// The Windows scripting engine lives in a single-threaded COM apartment, so
// calls must come from the thread that initialised it, and tool handlers
// run on goroutines that may move between threads.
type hostWorker struct {
	jobs   chan func()
	done   chan struct{}
	exited chan struct{}
	once   sync.Once
}

func newHostWorker() *hostWorker {
	w := &hostWorker{
		jobs:   make(chan func()),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *hostWorker) loop() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(w.exited)
	for {
		select {
		case fn := <-w.jobs:
			fn()
		case <-w.done:
			return
		}
	}
}

// do runs fn on the worker and waits for it to return. Jobs run one at a
// time in submission order. ctx only bounds the wait for the worker to pick
// the job up; a started job always runs to completion.
func (w *hostWorker) do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	job := func() {
		defer close(finished)
		fn()
	}
	select {
	case w.jobs <- job:
	case <-w.done:
		return errWorkerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	<-finished
	return nil
}

// stop ends the worker once the running job, if any, returns.
func (w *hostWorker) stop() {
	w.once.Do(func() { close(w.done) })
	<-w.exited
}
