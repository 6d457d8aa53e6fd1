package voxel

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Option tunes how a pipeline stage runs. Options never change its output.
type Option func(*options)

type options struct {
	workers int
}

// WithWorkers splits the X axis into slabs processed by up to n goroutines.
// Results are merged in slab order, so output is identical for any n.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func applyOptions(opts []Option) options {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}

// slab is a half-open range of X columns [x0, x1).
type slab struct {
	x0, x1 int
}

// splitSlabs divides width columns into at most n contiguous slabs.
func splitSlabs(width, n int) []slab {
	n = max(1, min(n, width))
	size := (width + n - 1) / n

	slabs := make([]slab, 0, n)
	for x0 := 0; x0 < width; x0 += size {
		slabs = append(slabs, slab{x0: x0, x1: min(x0+size, width)})
	}
	return slabs
}

// forEachSlab runs fn once per slab, concurrently when more than one worker
// is allowed. fn receives the slab's position in the list. A panic in fn is
// returned as ErrWorkerPanic instead of unwinding a worker goroutine.
func forEachSlab(slabs []slab, workers int, fn func(i int, s slab)) error {
	if workers == 1 || len(slabs) == 1 {
		for i, s := range slabs {
			if err := runSlab(fn, i, s); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, s := range slabs {
		g.Go(func() error {
			return runSlab(fn, i, s)
		})
	}
	return g.Wait()
}

func runSlab(fn func(i int, s slab), i int, s slab) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: slab x=[%d,%d): %v", ErrWorkerPanic, s.x0, s.x1, r)
		}
	}()
	fn(i, s)
	return nil
}
