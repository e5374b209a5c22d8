package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolCreate(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("pool should be running after creation")
	}
}

func TestPoolDefaultWorkers(t *testing.T) {
	tests := []struct {
		name    string
		workers int
	}{
		{"zero", 0},
		{"negative", -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := New(tt.workers)
			defer pool.Close()

			if want := runtime.GOMAXPROCS(0); pool.Workers() != want {
				t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", pool.Workers(), want)
			}
		})
	}
}

func TestPoolRun(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var counter atomic.Int64
	pool.Run(100, func(int) {
		counter.Add(1)
	})

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestPoolRunAllIndices(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var mu sync.Mutex
	seen := make(map[int]int)

	pool.Run(50, func(i int) {
		mu.Lock()
		seen[i]++
		mu.Unlock()
	})

	for i := 0; i < 50; i++ {
		if seen[i] != 1 {
			t.Errorf("index %d executed %d times, want 1", i, seen[i])
		}
	}
}

func TestPoolRunEmpty(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	// Must not panic or block.
	pool.Run(0, func(int) {})
	pool.Run(-1, func(int) {})
	pool.Run(10, nil)
}

func TestPoolRunSingleWorker(t *testing.T) {
	pool := New(1)
	defer pool.Close()

	var counter atomic.Int64
	pool.Run(50, func(int) {
		counter.Add(1)
	})

	if counter.Load() != 50 {
		t.Errorf("counter = %d, want 50", counter.Load())
	}
}

func TestPoolRunConcurrent(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var counter atomic.Int64
	var wg sync.WaitGroup

	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Run(50, func(int) {
				counter.Add(1)
			})
		}()
	}
	wg.Wait()

	if want := int64(10 * 50); counter.Load() != want {
		t.Errorf("counter = %d, want %d", counter.Load(), want)
	}
}

func TestPoolStealing(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	// Uneven work: every tenth item is slow, mimicking the one full
	// chunk among mostly sparse ones.
	var fast, slow atomic.Int64

	pool.Run(100, func(i int) {
		if i%10 == 0 {
			time.Sleep(10 * time.Millisecond)
			slow.Add(1)
		} else {
			fast.Add(1)
		}
	})

	if slow.Load() != 10 {
		t.Errorf("slow = %d, want 10", slow.Load())
	}
	if fast.Load() != 90 {
		t.Errorf("fast = %d, want 90", fast.Load())
	}
}

func TestPoolClose(t *testing.T) {
	pool := New(4)

	pool.Close()
	if pool.IsRunning() {
		t.Error("pool should not be running after Close")
	}

	// Idempotent.
	pool.Close()
	pool.Close()
}

func TestPoolRunAfterClose(t *testing.T) {
	pool := New(4)
	pool.Close()

	// Work still executes, inline on the caller.
	var counter atomic.Int64
	pool.Run(20, func(int) {
		counter.Add(1)
	})

	if counter.Load() != 20 {
		t.Errorf("counter = %d, want 20 (closed pool must run inline)", counter.Load())
	}
}

func TestPoolNoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for i := 0; i < 5; i++ {
		pool := New(4)
		pool.Run(100, func(int) {})
		pool.Close()
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	if final := runtime.NumGoroutine(); final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}

func BenchmarkPoolRun(b *testing.B) {
	pool := New(runtime.GOMAXPROCS(0))
	defer pool.Close()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		pool.Run(100, func(int) {})
	}
}

func BenchmarkPoolRunWithWork(b *testing.B) {
	pool := New(runtime.GOMAXPROCS(0))
	defer pool.Close()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		pool.Run(100, func(int) {
			sum := 0
			for j := 0; j < 1000; j++ {
				sum += j
			}
			_ = sum
		})
	}
}
