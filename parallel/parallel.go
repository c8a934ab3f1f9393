// Package parallel implements a "map over independent indices" pattern
// for Mesh's normal/pose/mass loops and VoxelGrid's pose loop: no
// lock-based accumulation, each worker owns a contiguous chunk of
// indices, and a vertex's derivative scatter only ever touches that
// vertex's own row (race-free by construction).
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers is the worker-pool size used by For/ForErr: the number of
// available cores.
var Workers = runtime.GOMAXPROCS(0)

// For splits [0,n) into contiguous chunks, one per worker, and calls fn
// on every index. fn must not mutate state shared across indices; the
// call blocks until every chunk completes.
func For(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := Workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				fn(i)
			}
			return nil
		})
	}
	g.Wait() // fn never returns an error; For cannot fail
}

// ForErr is like For but propagates the first error any worker
// returns, used by the BBW solve loop where the QP oracle can fail.
func ForErr(n int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	workers := Workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
