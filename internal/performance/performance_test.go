package performance

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolSubmit(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Start()

	var counter int64
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		submitted := pool.Submit(func() {
			atomic.AddInt64(&counter, 1)
			wg.Done()
		})
		if !submitted {
			wg.Done()
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for tasks to complete")
	}

	pool.Stop()

	if counter < 90 {
		t.Errorf("expected at least 90 tasks completed, got %d", counter)
	}
}

func TestWorkerPoolRun(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	const n = 200
	results := make([]int64, n)
	pool.Run(n, func(i int) {
		atomic.StoreInt64(&results[i], int64(i)+1)
	})

	// Run blocks until every indexed task ran exactly once.
	for i, v := range results {
		if v != int64(i)+1 {
			t.Fatalf("task %d not executed (got %d)", i, v)
		}
	}
}

func TestWorkerPoolRunOnStoppedPool(t *testing.T) {
	pool := NewWorkerPool(2)
	// Never started: every task must fall back to the calling goroutine.

	var counter int64
	pool.Run(50, func(i int) {
		atomic.AddInt64(&counter, 1)
	})
	if counter != 50 {
		t.Errorf("expected 50 inline executions, got %d", counter)
	}
}

func TestWorkerPoolSubmitAfterStop(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	pool.Stop()

	if pool.Submit(func() {}) {
		t.Error("Submit accepted a task after Stop")
	}
}

func TestWorkerPoolStats(t *testing.T) {
	pool := NewWorkerPool(3)
	stats := pool.Stats()
	if stats.Workers != 3 {
		t.Errorf("workers = %d, want 3", stats.Workers)
	}
	if stats.Running {
		t.Error("pool reported running before Start")
	}

	pool.Start()
	defer pool.Stop()
	if !pool.Stats().Running {
		t.Error("pool reported stopped after Start")
	}
}

// BenchmarkWorkerPoolRun measures the fan-out overhead against the cost of a
// typical repricing batch.
func BenchmarkWorkerPoolRun(b *testing.B) {
	pool := NewWorkerPool(8)
	pool.Start()
	defer pool.Stop()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.Run(8, func(int) {
			time.Sleep(time.Microsecond)
		})
	}
}
