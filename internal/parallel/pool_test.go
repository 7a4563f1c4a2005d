package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewWorkerPoolDefaultsToGOMAXPROCS(t *testing.T) {
	for _, workers := range []int{0, -5} {
		pool := NewWorkerPool(workers)
		defer pool.Close()

		if pool.workers != runtime.GOMAXPROCS(0) {
			t.Errorf("NewWorkerPool(%d).workers = %d, want %d", workers, pool.workers, runtime.GOMAXPROCS(0))
		}
	}
}

func TestExecuteAllRunsEveryItem(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 1000)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}

	pool.ExecuteAll(work)

	if got := counter.Load(); got != int64(len(work)) {
		t.Errorf("counter = %d, want %d", got, len(work))
	}
}

func TestExecuteAllEmpty(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Must not block or panic.
	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestExecuteAllSingleWorker(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 50)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(work)

	if got := counter.Load(); got != 50 {
		t.Errorf("counter = %d, want 50", got)
	}
}

// TestExecuteAllWorkStealing mirrors the rleimage/roi dispatch shape: a
// handful of slow lines (e.g. a line with many segments) mixed with many
// fast ones. Work stealing should let idle workers pick up the slow
// lines instead of leaving them queued behind a busy worker.
func TestExecuteAllWorkStealing(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var fast, slow atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		if i%10 == 0 {
			work[i] = func() {
				time.Sleep(5 * time.Millisecond)
				slow.Add(1)
			}
		} else {
			work[i] = func() { fast.Add(1) }
		}
	}

	pool.ExecuteAll(work)

	if slow.Load() != 10 {
		t.Errorf("slow = %d, want 10", slow.Load())
	}
	if fast.Load() != 90 {
		t.Errorf("fast = %d, want 90", fast.Load())
	}
}

func TestExecuteAllConcurrentCallers(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	done := make(chan struct{})
	const callers, perCaller = 8, 50

	for c := 0; c < callers; c++ {
		go func() {
			work := make([]func(), perCaller)
			for i := range work {
				work[i] = func() { counter.Add(1) }
			}
			pool.ExecuteAll(work)
			done <- struct{}{}
		}()
	}
	for c := 0; c < callers; c++ {
		<-done
	}

	if want := int64(callers * perCaller); counter.Load() != want {
		t.Errorf("counter = %d, want %d", counter.Load(), want)
	}
}

func TestCloseIsIdempotentAndStopsWork(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()
	pool.Close()
	pool.Close()

	var executed atomic.Bool
	pool.ExecuteAll([]func(){
		func() { executed.Store(true) },
	})

	if executed.Load() {
		t.Error("ExecuteAll ran work on a closed pool")
	}
}

func TestCloseDrainsQueuedWork(t *testing.T) {
	pool := NewWorkerPool(2)

	var counter atomic.Int64
	work := make([]func(), 200)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}

	done := make(chan struct{})
	go func() {
		pool.ExecuteAll(work)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for ExecuteAll to drain")
	}
	pool.Close()

	if got := counter.Load(); got != int64(len(work)) {
		t.Errorf("counter = %d, want %d", got, len(work))
	}
}

func TestNoGoroutineLeakAfterClose(t *testing.T) {
	runtime.GC()
	time.Sleep(20 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for i := 0; i < 5; i++ {
		pool := NewWorkerPool(4)
		work := make([]func(), 50)
		for j := range work {
			work[j] = func() {}
		}
		pool.ExecuteAll(work)
		pool.Close()
	}

	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	if final := runtime.NumGoroutine(); final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak suspected)", baseline, final)
	}
}
