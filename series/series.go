// Package series provides the ordered-observation container shared by all
// long-run variance estimators: an n×d matrix of real values where rows are
// time steps and columns are dimensions, together with batch partitioning.
package series

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Error kinds shared across the estimator packages. Callers match them with
// errors.Is; messages wrap these sentinels with the offending values.
var (
	// ErrInvalidDimension reports multivariate input to an estimator that is
	// restricted to univariate series.
	ErrInvalidDimension = errors.New("univariate series required")
	// ErrInvalidType reports an unrecognized type, kernel or scheme tag.
	ErrInvalidType = errors.New("unrecognized tag")
	// ErrInvalidSize reports a series too short for the requested batch
	// count, block length or lag range.
	ErrInvalidSize = errors.New("invalid size")
)

// Series is an immutable n×d table of observations, n ≥ 2, d ≥ 1.
type Series struct {
	data *mat.Dense
}

// FromMatrix validates x and copies it into a fresh Series. Any row or
// column structure beyond the plain numeric values is discarded.
func FromMatrix(x mat.Matrix) (*Series, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: nil input", ErrInvalidSize)
	}
	n, d := x.Dims()
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 observations, got %d", ErrInvalidSize, n)
	}
	if d < 1 {
		return nil, fmt.Errorf("%w: need at least 1 column, got %d", ErrInvalidSize, d)
	}
	data := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			v := x.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: non-finite value at row %d, column %d", ErrInvalidSize, i, j)
			}
			data.Set(i, j, v)
		}
	}
	return &Series{data: data}, nil
}

// FromSlice wraps a univariate series as a single-column Series.
func FromSlice(x []float64) (*Series, error) {
	if len(x) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 observations, got %d", ErrInvalidSize, len(x))
	}
	data := make([]float64, len(x))
	copy(data, x)
	return FromMatrix(mat.NewDense(len(x), 1, data))
}

// Len returns the number of time steps n.
func (s *Series) Len() int {
	n, _ := s.data.Dims()
	return n
}

// Dim returns the number of columns d.
func (s *Series) Dim() int {
	_, d := s.data.Dims()
	return d
}

// At returns the observation at time step i in column j.
func (s *Series) At(i, j int) float64 {
	return s.data.At(i, j)
}

// Col returns a copy of column j.
func (s *Series) Col(j int) []float64 {
	return mat.Col(nil, j, s.data)
}

// Univariate returns the single column of a d=1 series.
func (s *Series) Univariate() ([]float64, error) {
	if s.Dim() != 1 {
		return nil, fmt.Errorf("%w: got %d columns", ErrInvalidDimension, s.Dim())
	}
	return s.Col(0), nil
}

// Means returns the column means.
func (s *Series) Means() []float64 {
	n, d := s.data.Dims()
	means := make([]float64, d)
	for j := 0; j < d; j++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += s.data.At(i, j)
		}
		means[j] = sum / float64(n)
	}
	return means
}

// Range is a half-open index interval [Start, End) into a series.
type Range struct {
	Start, End int
}

// Partition splits the series into k contiguous, non-overlapping ranges
// covering all n time steps. Sizes differ by at most one observation: the
// first n mod k ranges take the extra observation.
func (s *Series) Partition(k int) ([]Range, error) {
	n := s.Len()
	if k <= 0 || k > n {
		return nil, fmt.Errorf("%w: cannot split %d observations into %d batches", ErrInvalidSize, n, k)
	}
	size := n / k
	rem := n % k
	ranges := make([]Range, k)
	start := 0
	for i := 0; i < k; i++ {
		end := start + size
		if i < rem {
			end++
		}
		ranges[i] = Range{Start: start, End: end}
		start = end
	}
	return ranges, nil
}

// BatchMeans partitions the series into k batches and returns the k×d matrix
// of per-batch column means. Each batch must hold at least two observations
// so that the batch means carry variance information.
func (s *Series) BatchMeans(k int) (*mat.Dense, error) {
	n, d := s.data.Dims()
	if k < 2 {
		return nil, fmt.Errorf("%w: need at least 2 batches, got %d", ErrInvalidSize, k)
	}
	if n/k < 2 {
		return nil, fmt.Errorf("%w: %d batches of %d observations leave fewer than 2 observations per batch", ErrInvalidSize, k, n)
	}
	ranges, err := s.Partition(k)
	if err != nil {
		return nil, err
	}
	means := mat.NewDense(k, d, nil)
	for i, r := range ranges {
		for j := 0; j < d; j++ {
			sum := 0.0
			for t := r.Start; t < r.End; t++ {
				sum += s.data.At(t, j)
			}
			means.Set(i, j, sum/float64(r.End-r.Start))
		}
	}
	return means, nil
}

// Centered returns a copy of the series with column means subtracted.
func (s *Series) Centered() *Series {
	n, d := s.data.Dims()
	means := s.Means()
	out := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			out.Set(i, j, s.data.At(i, j)-means[j])
		}
	}
	return &Series{data: out}
}

// CovarianceOfMeans returns the sample covariance of the k batch-mean vectors
// divided by k, the batch-means long-run variance-of-mean estimate.
func (s *Series) CovarianceOfMeans(k int) (*mat.SymDense, error) {
	means, err := s.BatchMeans(k)
	if err != nil {
		return nil, err
	}
	d := s.Dim()
	cov := mat.NewSymDense(d, nil)
	stat.CovarianceMatrix(cov, means, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			cov.SetSym(i, j, cov.At(i, j)/float64(k))
		}
	}
	return cov, nil
}

// RawMatrix exposes the underlying matrix for read-only use by the estimator
// packages.
func (s *Series) RawMatrix() mat.Matrix {
	return s.data
}
