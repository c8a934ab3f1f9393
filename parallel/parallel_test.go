package parallel

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_parallel01(tst *testing.T) {
	chk.PrintTitle("Test parallel01: For visits every index exactly once")

	n := 1000
	var hits int64
	seen := make([]int32, n)
	For(n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
		atomic.AddInt64(&hits, 1)
	})
	if hits != int64(n) {
		tst.Errorf("hits = %d, want %d", hits, n)
	}
	for i, v := range seen {
		if v != 1 {
			tst.Errorf("index %d visited %d times, want 1", i, v)
		}
	}
}

func Test_parallel02(tst *testing.T) {
	chk.PrintTitle("Test parallel02: For is a no-op for n<=0")

	called := false
	For(0, func(i int) { called = true })
	if called {
		tst.Errorf("fn should not be called when n<=0")
	}
}

func Test_parallel03(tst *testing.T) {
	chk.PrintTitle("Test parallel03: ForErr propagates the first error any worker returns")

	wantErr := errors.New("boom")
	err := ForErr(100, func(i int) error {
		if i == 42 {
			return wantErr
		}
		return nil
	})
	if err == nil {
		tst.Errorf("expected an error to propagate")
	}
}

func Test_parallel04(tst *testing.T) {
	chk.PrintTitle("Test parallel04: ForErr returns nil when no worker errors")

	err := ForErr(50, func(i int) error { return nil })
	if err != nil {
		tst.Errorf("expected nil, got %v", err)
	}
}
