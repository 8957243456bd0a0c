package server

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostWorker_RunsJobsOneAtATime(t *testing.T) {
	w := newHostWorker()
	defer w.stop()

	var inside, maxInside, total int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := w.do(context.Background(), func() {
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				atomic.AddInt32(&total, 1)
				atomic.AddInt32(&inside, -1)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(20), total)
	assert.Equal(t, int32(1), maxInside)
}

func TestHostWorker_WaitsForJob(t *testing.T) {
	w := newHostWorker()
	defer w.stop()

	done := false
	require.NoError(t, w.do(context.Background(), func() { done = true }))
	assert.True(t, done)
}

func TestHostWorker_Stopped(t *testing.T) {
	w := newHostWorker()
	w.stop()
	w.stop()

	ran := false
	err := w.do(context.Background(), func() { ran = true })
	assert.ErrorIs(t, err, errWorkerStopped)
	assert.False(t, ran)
}

func TestHostWorker_ContextCancelledBeforePickup(t *testing.T) {
	w := newHostWorker()
	defer w.stop()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = w.do(context.Background(), func() {
			close(started)
			<-release
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ran := false
	err := w.do(ctx, func() { ran = true })
	close(release)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)
}
