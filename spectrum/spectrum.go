// Package spectrum estimates the long-run variance of a univariate series
// parametrically, through the spectral density at frequency zero of a fitted
// autoregressive model with automatically selected order.
package spectrum

import (
	"fmt"
	"math"

	"github.com/mcmc-tools/go-nse/autocov"
	"github.com/mcmc-tools/go-nse/series"
)

// Model is a fitted AR(p) model.
type Model struct {
	Coeffs   []float64 // AR coefficients φ_1..φ_p
	Variance float64   // prediction (innovation) variance
	Order    int
}

// Fitter fits an autoregressive model to a univariate series. It is the
// injection point for swapping the order-selection strategy.
type Fitter interface {
	Fit(x []float64) (*Model, error)
}

// YuleWalkerAIC fits AR models of every order up to MaxOrder by solving the
// Yule-Walker equations with the Levinson-Durbin recursion, and keeps the
// order minimizing AIC.
type YuleWalkerAIC struct {
	MaxOrder int // 0 selects the default min(n-1, floor(10·log10(n))) rule
}

// Fit implements Fitter.
func (f YuleWalkerAIC) Fit(x []float64) (*Model, error) {
	n := len(x)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 observations, got %d", series.ErrInvalidSize, n)
	}
	maxOrder := f.MaxOrder
	if maxOrder <= 0 {
		maxOrder = int(10 * math.Log10(float64(n)))
	}
	if maxOrder > n-1 {
		maxOrder = n - 1
	}

	gamma, err := autocov.Lags(x, maxOrder)
	if err != nil {
		return nil, err
	}
	if gamma[0] <= 0 {
		return &Model{Variance: 0}, nil
	}

	// Levinson-Durbin over increasing order, tracking AIC at each step.
	nf := float64(n)
	v := gamma[0]
	bestOrder := 0
	bestAIC := nf*math.Log(v) + 2
	bestCoeffs := []float64(nil)

	phi := make([]float64, maxOrder+1)
	prev := make([]float64, maxOrder+1)
	for p := 1; p <= maxOrder; p++ {
		lambda := gamma[p]
		for j := 1; j < p; j++ {
			lambda -= prev[j] * gamma[p-j]
		}
		lambda /= v

		for j := 1; j < p; j++ {
			phi[j] = prev[j] - lambda*prev[p-j]
		}
		phi[p] = lambda
		v *= 1 - lambda*lambda
		if v <= 0 {
			break
		}
		copy(prev, phi)

		aic := nf*math.Log(v) + 2*float64(p+1)
		if aic < bestAIC {
			bestAIC = aic
			bestOrder = p
			bestCoeffs = append([]float64(nil), phi[1:p+1]...)
		}
	}

	// Degrees-of-freedom adjusted prediction variance.
	variance := gamma[0]
	if bestOrder > 0 {
		variance = predVariance(gamma, bestCoeffs)
	}
	if n-bestOrder-1 > 0 {
		variance *= nf / float64(n-bestOrder-1)
	}

	return &Model{
		Coeffs:   bestCoeffs,
		Variance: variance,
		Order:    bestOrder,
	}, nil
}

// predVariance recovers the innovation variance of the selected order from
// the autocovariances: v = γ_0 - Σ φ_j·γ_j.
func predVariance(gamma, coeffs []float64) float64 {
	v := gamma[0]
	for j, c := range coeffs {
		v -= c * gamma[j+1]
	}
	if v < 0 {
		v = 0
	}
	return v
}

// DensityZero returns the spectral density of the fitted model at frequency
// zero, v/(1-Σφ)². The variance of the series mean is DensityZero/n.
func DensityZero(m *Model) float64 {
	s := 1.0
	for _, c := range m.Coeffs {
		s -= c
	}
	if s == 0 {
		return math.Inf(1)
	}
	return m.Variance / (s * s)
}
