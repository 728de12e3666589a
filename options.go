package nse

import (
	"math/rand"
	"time"

	"github.com/mcmc-tools/go-nse/bootstrap"
	"github.com/mcmc-tools/go-nse/spectrum"
)

type config struct {
	batches   int
	prewhiten bool
	bandwidth float64 // <0 means automatic
	src       rand.Source
	fitter    spectrum.Fitter
	selector  bootstrap.Selector
	solver    func([]float64) (float64, error)
}

func newConfig(opts []Option) *config {
	cfg := &config{
		batches:   30,
		bandwidth: -1,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *config) rng() *rand.Rand {
	src := c.src
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return rand.New(src)
}

// Option configures an estimator call.
type Option func(*config)

// WithBatches sets the batch count for the bm and iseq.bm estimators
// (default 30).
func WithBatches(k int) Option {
	return func(c *config) {
		c.batches = k
	}
}

// WithPrewhiten enables VAR(1) pre-whitening for the kernel HAC estimators.
func WithPrewhiten(on bool) Option {
	return func(c *config) {
		c.prewhiten = on
	}
}

// WithBandwidth overrides the bandwidth rule of a kernel HAC estimator with a
// fixed value. Zero disables all cross-lag terms, reducing the estimate to
// the naive sample variance of the mean.
func WithBandwidth(b float64) Option {
	return func(c *config) {
		c.bandwidth = b
	}
}

// WithRandSource sets the random source used by the bootstrap, for
// reproducible resampling.
func WithRandSource(src rand.Source) Option {
	return func(c *config) {
		c.src = src
	}
}

// WithFitter replaces the AR fitting strategy of Spec0 (default
// spectrum.YuleWalkerAIC).
func WithFitter(f spectrum.Fitter) Option {
	return func(c *config) {
		c.fitter = f
	}
}

// WithBlockSelector replaces the automatic block length rule of Bootstrap
// (default bootstrap.PolitisWhite).
func WithBlockSelector(sel bootstrap.Selector) Option {
	return func(c *config) {
		c.selector = sel
	}
}

// WithMonotoneSolver replaces the initial-sequence solver of the Geyer
// estimators (default geyer.InitialSequence).
func WithMonotoneSolver(f func([]float64) (float64, error)) Option {
	return func(c *config) {
		c.solver = f
	}
}
