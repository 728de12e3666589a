// Package autocov computes sample autocovariance sequences for scalar and
// vector series, and the kernel-weighted lag sums behind the HAC estimators.
//
// All lag-j estimates use the 1/n normalization, so the lag-0 entry is the
// biased sample (co)variance and every weighted sum stays positive
// semi-definite for PSD kernels.
package autocov

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"

	"github.com/mcmc-tools/go-nse/series"
)

// Lag ranges at least this long go through the FFT path; the direct loop is
// faster below it.
const fftLagThreshold = 64

// Lags returns the sample autocovariances γ_0..γ_maxLag of x.
func Lags(x []float64, maxLag int) ([]float64, error) {
	n := len(x)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 observations, got %d", series.ErrInvalidSize, n)
	}
	if maxLag < 0 || maxLag >= n {
		return nil, fmt.Errorf("%w: lag range 0..%d exceeds series of length %d", series.ErrInvalidSize, maxLag, n)
	}
	if maxLag >= fftLagThreshold {
		return lagsFFT(x, maxLag), nil
	}
	return lagsDirect(x, maxLag), nil
}

func lagsDirect(x []float64, maxLag int) []float64 {
	n := len(x)
	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	gamma := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for t := k; t < n; t++ {
			sum += (x[t] - mean) * (x[t-k] - mean)
		}
		gamma[k] = sum / float64(n)
	}
	return gamma
}

// lagsFFT computes all requested lags at once via the Wiener-Khinchin
// identity. Zero padding to at least 2n removes the circular wraparound.
func lagsFFT(x []float64, maxLag int) []float64 {
	n := len(x)
	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	m := 1
	for m < 2*n {
		m <<= 1
	}
	padded := make([]float64, m)
	for i, v := range x {
		padded[i] = v - mean
	}

	fft := fourier.NewFFT(m)
	coeff := fft.Coefficients(nil, padded)
	for i, c := range coeff {
		re := real(c)
		im := imag(c)
		coeff[i] = complex(re*re+im*im, 0)
	}
	seq := fft.Sequence(nil, coeff)

	// The forward/inverse round trip scales by m.
	gamma := make([]float64, maxLag+1)
	scale := float64(m) * float64(n)
	for k := 0; k <= maxLag; k++ {
		gamma[k] = seq[k] / scale
	}
	return gamma
}

// MatrixLags returns the lag-0..maxLag autocovariance matrices Γ_j of a
// d-column series, Γ_j[a,b] = (1/n)·Σ_t (x_t[a]-mean[a])·(x_{t-j}[b]-mean[b]).
func MatrixLags(s *series.Series, maxLag int) ([]*mat.Dense, error) {
	n, d := s.Len(), s.Dim()
	if maxLag < 0 || maxLag >= n {
		return nil, fmt.Errorf("%w: lag range 0..%d exceeds series of length %d", series.ErrInvalidSize, maxLag, n)
	}
	c := s.Centered()
	gammas := make([]*mat.Dense, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		g := mat.NewDense(d, d, nil)
		for a := 0; a < d; a++ {
			for b := 0; b < d; b++ {
				sum := 0.0
				for t := k; t < n; t++ {
					sum += c.At(t, a) * c.At(t-k, b)
				}
				g.Set(a, b, sum/float64(n))
			}
		}
		gammas[k] = g
	}
	return gammas, nil
}

// WeightedSum assembles the long-run covariance
//
//	Ω = Γ_0 + Σ_{j=1}^{len(gammas)-1} w(j/bandwidth)·(Γ_j + Γ_jᵀ)
//
// from a precomputed autocovariance sequence. A bandwidth of zero (or a
// sequence holding only Γ_0) reduces Ω to the symmetrized lag-0 covariance.
func WeightedSum(gammas []*mat.Dense, weight func(float64) float64, bandwidth float64) *mat.SymDense {
	d, _ := gammas[0].Dims()
	acc := mat.NewDense(d, d, nil)
	acc.Copy(gammas[0])
	if bandwidth > 0 {
		for j := 1; j < len(gammas); j++ {
			w := weight(float64(j) / bandwidth)
			if w == 0 {
				continue
			}
			g := gammas[j]
			for a := 0; a < d; a++ {
				for b := 0; b < d; b++ {
					acc.Set(a, b, acc.At(a, b)+w*(g.At(a, b)+g.At(b, a)))
				}
			}
		}
	}
	out := mat.NewSymDense(d, nil)
	for a := 0; a < d; a++ {
		for b := a; b < d; b++ {
			out.SetSym(a, b, 0.5*(acc.At(a, b)+acc.At(b, a)))
		}
	}
	return out
}
