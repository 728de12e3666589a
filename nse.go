package nse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/mcmc-tools/go-nse/bootstrap"
	"github.com/mcmc-tools/go-nse/geyer"
	"github.com/mcmc-tools/go-nse/hac"
	"github.com/mcmc-tools/go-nse/series"
	"github.com/mcmc-tools/go-nse/spectrum"
)

// GeyerType selects the estimator combination used by Geyer.
type GeyerType int

const (
	// GeyerISeq is the positive monotone initial-sequence estimator on the
	// raw series. Univariate only.
	GeyerISeq GeyerType = iota
	// GeyerBM is the batch-means estimator.
	GeyerBM
	// GeyerISeqBM applies the initial-sequence estimator to the batch means.
	// Univariate only.
	GeyerISeqBM
)

func (t GeyerType) String() string {
	switch t {
	case GeyerISeq:
		return "iseq"
	case GeyerBM:
		return "bm"
	case GeyerISeqBM:
		return "iseq.bm"
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// ParseGeyerType maps an untyped tag, for example from a CLI flag, to a
// GeyerType.
func ParseGeyerType(tag string) (GeyerType, error) {
	switch tag {
	case "iseq":
		return GeyerISeq, nil
	case "bm":
		return GeyerBM, nil
	case "iseq.bm":
		return GeyerISeqBM, nil
	}
	return 0, fmt.Errorf("%w: type %q, want one of {iseq, bm, iseq.bm}", ErrInvalidType, tag)
}

// Geyer estimates the variance of the sample mean by the initial-sequence
// estimator (iseq), batch means (bm), or the initial-sequence estimator
// applied to batch means (iseq.bm). The batch count defaults to 30 and is
// set with WithBatches; iseq and iseq.bm accept univariate input only.
func Geyer(x mat.Matrix, typ GeyerType, opts ...Option) (*Estimate, error) {
	cfg := newConfig(opts)
	s, err := series.FromMatrix(x)
	if err != nil {
		return nil, err
	}
	solve := cfg.solver
	if solve == nil {
		solve = geyer.InitialSequence
	}

	switch typ {
	case GeyerISeq:
		u, err := s.Univariate()
		if err != nil {
			return nil, err
		}
		v, err := solve(u)
		if err != nil {
			return nil, err
		}
		return scalarEstimate(v), nil

	case GeyerBM:
		cov, err := s.CovarianceOfMeans(cfg.batches)
		if err != nil {
			return nil, err
		}
		return newEstimate(cov), nil

	case GeyerISeqBM:
		if _, err := s.Univariate(); err != nil {
			return nil, err
		}
		means, err := s.BatchMeans(cfg.batches)
		if err != nil {
			return nil, err
		}
		v, err := solve(mat.Col(nil, 0, means))
		if err != nil {
			return nil, err
		}
		return scalarEstimate(v), nil
	}
	return nil, fmt.Errorf("%w: type tag %d, want one of {iseq, bm, iseq.bm}", ErrInvalidType, int(typ))
}

// Spec0 estimates the variance of the sample mean of a univariate series
// through the spectral density at frequency zero of an automatically fitted
// AR model. No tuning parameter is exposed; the fitting strategy can be
// replaced with WithFitter.
func Spec0(x mat.Matrix, opts ...Option) (float64, error) {
	cfg := newConfig(opts)
	s, err := series.FromMatrix(x)
	if err != nil {
		return 0, err
	}
	u, err := s.Univariate()
	if err != nil {
		return 0, err
	}
	fitter := cfg.fitter
	if fitter == nil {
		fitter = spectrum.YuleWalkerAIC{}
	}
	model, err := fitter.Fit(u)
	if err != nil {
		return 0, err
	}
	return spectrum.DensityZero(model) / float64(s.Len()), nil
}

// NeweyWest estimates the long-run covariance of the mean with the Bartlett
// kernel and the fixed Newey-West bandwidth floor(4·(n/100)^(2/9)).
// Pre-whitening is enabled with WithPrewhiten.
func NeweyWest(x mat.Matrix, opts ...Option) (*Estimate, error) {
	cfg := newConfig(opts)
	s, err := series.FromMatrix(x)
	if err != nil {
		return nil, err
	}
	n := s.Len()
	rule := func(*series.Series) (float64, error) {
		return hac.NeweyWestBandwidth(n), nil
	}
	return hacEstimate(s, hac.Bartlett, rule, cfg)
}

// Andrews estimates the long-run covariance of the mean with the given
// kernel and the AR(1)-based automatic bandwidth of Andrews (1991).
func Andrews(x mat.Matrix, k hac.Kernel, opts ...Option) (*Estimate, error) {
	cfg := newConfig(opts)
	if !k.Valid() {
		return nil, fmt.Errorf("%w: kernel tag %d, want one of {bartlett, parzen, qs, truncated, tukey-hanning}",
			ErrInvalidType, int(k))
	}
	s, err := series.FromMatrix(x)
	if err != nil {
		return nil, err
	}
	rule := func(w *series.Series) (float64, error) {
		return hac.AndrewsBandwidth(w, k)
	}
	return hacEstimate(s, k, rule, cfg)
}

// Hirukawa estimates the long-run variance of the mean of a univariate
// series with the two-stage plug-in bandwidth of Hirukawa (2010). Only the
// Bartlett and Parzen kernels are supported.
func Hirukawa(x mat.Matrix, k hac.Kernel, opts ...Option) (float64, error) {
	cfg := newConfig(opts)
	if k != hac.Bartlett && k != hac.Parzen {
		return 0, fmt.Errorf("%w: kernel %q, want one of {bartlett, parzen}", ErrInvalidType, k)
	}
	s, err := series.FromMatrix(x)
	if err != nil {
		return 0, err
	}
	if _, err := s.Univariate(); err != nil {
		return 0, err
	}
	rule := func(w *series.Series) (float64, error) {
		u, err := w.Univariate()
		if err != nil {
			return 0, err
		}
		return hac.HirukawaBandwidth(u, k)
	}
	est, err := hacEstimate(s, k, rule, cfg)
	if err != nil {
		return 0, err
	}
	return est.Scalar(), nil
}

// Bootstrap estimates the covariance of the mean from nb block-bootstrap
// replicates under the requested scheme, with the block length chosen
// automatically. Reproducibility is controlled with WithRandSource.
func Bootstrap(x mat.Matrix, nb int, scheme bootstrap.Scheme, opts ...Option) (*Estimate, error) {
	cfg := newConfig(opts)
	if !scheme.Valid() {
		return nil, fmt.Errorf("%w: scheme tag %d, want one of {stationary, circular}", ErrInvalidType, int(scheme))
	}
	s, err := series.FromMatrix(x)
	if err != nil {
		return nil, err
	}
	cov, err := bootstrap.Variance(s, nb, scheme, cfg.selector, cfg.rng())
	if err != nil {
		return nil, err
	}
	return newEstimate(cov), nil
}

// hacEstimate is the shared kernel-summation pipeline: optional VAR(1)
// pre-whitening, bandwidth selection on the working series, kernel-weighted
// long-run covariance, re-coloring, and the final 1/n scaling.
func hacEstimate(s *series.Series, k hac.Kernel, rule func(*series.Series) (float64, error), cfg *config) (*Estimate, error) {
	work := s
	var coef *mat.Dense
	if cfg.prewhiten {
		var err error
		work, coef, err = hac.Prewhiten(s)
		if err != nil {
			return nil, err
		}
	}

	bw := cfg.bandwidth
	if bw < 0 {
		var err error
		bw, err = rule(work)
		if err != nil {
			return nil, err
		}
	}

	omega, err := hac.LongRun(work, k, bw)
	if err != nil {
		return nil, err
	}
	if coef != nil {
		omega, err = hac.Recolor(omega, coef)
		if err != nil {
			return nil, err
		}
	}

	d := s.Dim()
	n := float64(s.Len())
	out := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			out.SetSym(i, j, omega.At(i, j)/n)
		}
	}
	return newEstimate(out), nil
}
