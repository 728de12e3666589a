package nse

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Estimate is the variance of the sample mean estimated by one of the
// long-run variance strategies: a scalar for univariate input, a d×d
// symmetric positive semi-definite matrix otherwise. Estimates are freshly
// allocated per call and never shared.
type Estimate struct {
	cov *mat.SymDense
}

func newEstimate(cov *mat.SymDense) *Estimate {
	return &Estimate{cov: cov}
}

func scalarEstimate(v float64) *Estimate {
	return &Estimate{cov: mat.NewSymDense(1, []float64{v})}
}

// Dim returns the dimensionality d of the estimate.
func (e *Estimate) Dim() int {
	return e.cov.SymmetricDim()
}

// IsScalar reports whether the estimate is univariate.
func (e *Estimate) IsScalar() bool {
	return e.Dim() == 1
}

// Scalar returns the univariate variance estimate. It panics on a
// multivariate estimate; callers route those through Matrix.
func (e *Estimate) Scalar() float64 {
	if !e.IsScalar() {
		panic("nse: Scalar called on multivariate estimate")
	}
	return e.cov.At(0, 0)
}

// Matrix returns a copy of the d×d covariance estimate.
func (e *Estimate) Matrix() *mat.SymDense {
	d := e.Dim()
	out := mat.NewSymDense(d, nil)
	out.CopySym(e.cov)
	return out
}

// StdErr returns the numerical standard error of a univariate estimate,
// sqrt(Scalar()).
func (e *Estimate) StdErr() float64 {
	return math.Sqrt(e.Scalar())
}

// StdErrs returns the per-dimension numerical standard errors, the square
// roots of the diagonal.
func (e *Estimate) StdErrs() []float64 {
	d := e.Dim()
	out := make([]float64, d)
	for i := 0; i < d; i++ {
		out[i] = math.Sqrt(e.cov.At(i, i))
	}
	return out
}
