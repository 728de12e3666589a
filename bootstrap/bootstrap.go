// Package bootstrap implements the stationary and circular block bootstrap
// with automatic block length selection, and estimates the covariance of the
// series mean from the replicate distribution.
package bootstrap

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/mcmc-tools/go-nse/series"
)

// Scheme selects the block resampling rule.
type Scheme int

const (
	// Stationary draws blocks of geometrically distributed random length
	// with the selected mean length, wrapping around the series end.
	Stationary Scheme = iota
	// Circular draws fixed-length blocks with uniformly random start points,
	// treating the series as a circle.
	Circular
)

func (s Scheme) String() string {
	switch s {
	case Stationary:
		return "stationary"
	case Circular:
		return "circular"
	}
	return fmt.Sprintf("scheme(%d)", int(s))
}

// Valid reports whether s is a defined scheme.
func (s Scheme) Valid() bool {
	return s == Stationary || s == Circular
}

// ParseScheme maps an untyped tag, for example from a CLI flag, to a Scheme.
func ParseScheme(tag string) (Scheme, error) {
	switch tag {
	case "stationary":
		return Stationary, nil
	case "circular":
		return Circular, nil
	}
	return 0, fmt.Errorf("%w: scheme %q, want one of {stationary, circular}", series.ErrInvalidType, tag)
}

// Statistic maps a resampled series to the vector-valued statistic whose
// sampling variance is wanted. The default is the vector of column means.
type Statistic func(*series.Series) []float64

// ColMeans is the column-mean statistic.
func ColMeans(s *series.Series) []float64 {
	return s.Means()
}

// Resample draws nb block-bootstrap replicates of stat over s and returns the
// nb×d matrix of replicate values.
func Resample(s *series.Series, nb int, blockLen float64, scheme Scheme, stat Statistic, rng *rand.Rand) (*mat.Dense, error) {
	if nb <= 0 {
		return nil, fmt.Errorf("%w: replicate count must be positive, got %d", series.ErrInvalidSize, nb)
	}
	if !scheme.Valid() {
		return nil, fmt.Errorf("%w: scheme tag %d, want one of {stationary, circular}", series.ErrInvalidType, int(scheme))
	}
	n, d := s.Len(), s.Dim()
	if blockLen < 1 {
		blockLen = 1
	}
	if blockLen > float64(n) {
		return nil, fmt.Errorf("%w: block length %.1f exceeds series of length %d", series.ErrInvalidSize, blockLen, n)
	}
	if stat == nil {
		stat = ColMeans
	}

	out := mat.NewDense(nb, len(stat(s)), nil)
	idx := make([]int, n)
	resampled := mat.NewDense(n, d, nil)
	for r := 0; r < nb; r++ {
		switch scheme {
		case Stationary:
			drawStationary(idx, n, blockLen, rng)
		case Circular:
			drawCircular(idx, n, blockLen, rng)
		}
		for t, src := range idx {
			for j := 0; j < d; j++ {
				resampled.Set(t, j, s.At(src, j))
			}
		}
		rs, err := series.FromMatrix(resampled)
		if err != nil {
			return nil, err
		}
		out.SetRow(r, stat(rs))
	}
	return out, nil
}

// drawStationary fills idx with a stationary-bootstrap index path: at each
// step a new block starts with probability 1/blockLen, otherwise the previous
// index continues with wraparound.
func drawStationary(idx []int, n int, blockLen float64, rng *rand.Rand) {
	p := 1 / blockLen
	for t := range idx {
		if t == 0 || rng.Float64() < p {
			idx[t] = rng.Intn(n)
		} else {
			idx[t] = (idx[t-1] + 1) % n
		}
	}
}

// drawCircular fills idx with fixed-length blocks from uniform start points.
func drawCircular(idx []int, n int, blockLen float64, rng *rand.Rand) {
	l := int(math.Round(blockLen))
	if l < 1 {
		l = 1
	}
	for t := 0; t < n; {
		start := rng.Intn(n)
		for j := 0; j < l && t < n; j++ {
			idx[t] = (start + j) % n
			t++
		}
	}
}

// Variance estimates the covariance of the series mean: the block length is
// chosen by sel for the requested scheme, nb replicates of the column means
// are drawn, and their sample covariance is returned.
func Variance(s *series.Series, nb int, scheme Scheme, sel Selector, rng *rand.Rand) (*mat.SymDense, error) {
	if sel == nil {
		sel = PolitisWhite{}
	}
	lengths, err := sel.Select(s)
	if err != nil {
		return nil, err
	}
	blockLen := lengths.Stationary
	if scheme == Circular {
		blockLen = lengths.Circular
	}

	reps, err := Resample(s, nb, blockLen, scheme, ColMeans, rng)
	if err != nil {
		return nil, err
	}
	cov := mat.NewSymDense(s.Dim(), nil)
	stat.CovarianceMatrix(cov, reps, nil)
	return cov, nil
}
