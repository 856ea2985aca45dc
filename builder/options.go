// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builder

// An Option adjusts how Build runs.
type Option func(*config)

type config struct {
	seed    uint64
	workers int // <= 0 means GOMAXPROCS
}

func newConfig(opts ...Option) config {
	cfg := config{seed: SequentialSeed}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// WithSeed sets the seed of the Sequential strategy. It has no effect
// on the parallel strategies, whose workers always draw their seeds
// from the runtime.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = seed }
}

// WithWorkers caps the number of worker goroutines of the parallel
// strategies. n <= 0 restores the default, GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}
