package hac

import (
	"fmt"
	"math"

	"github.com/mcmc-tools/go-nse/autocov"
	"github.com/mcmc-tools/go-nse/series"
)

// NeweyWestBandwidth is the fixed plug-in lag rule of Newey & West (1987),
// floor(4·(n/100)^(2/9)), paired with the Bartlett kernel.
func NeweyWestBandwidth(n int) float64 {
	return math.Floor(4 * math.Pow(float64(n)/100, 2.0/9.0))
}

// AndrewsBandwidth computes the data-driven bandwidth of Andrews (1991): an
// AR(1) model is fitted to each column, the implied optimal smoothing
// parameter α(q) is formed with unit weights, and the kernel rate constant
// turns it into a bandwidth. A series with no detectable first-order
// dependence yields the boundary bandwidth 0.
func AndrewsBandwidth(s *series.Series, k Kernel) (float64, error) {
	if !k.Valid() {
		return 0, fmt.Errorf("%w: kernel tag %d", series.ErrInvalidType, int(k))
	}
	n, d := s.Len(), s.Dim()
	q := k.exponent()

	num := 0.0
	den := 0.0
	for j := 0; j < d; j++ {
		rho, sigma2 := fitAR1(s.Col(j))
		one := 1 - rho
		onePlus := 1 + rho
		s4 := sigma2 * sigma2
		den += s4 / math.Pow(one, 4)
		if q == 1 {
			num += 4 * rho * rho * s4 / (math.Pow(one, 6) * onePlus * onePlus)
		} else {
			num += 4 * rho * rho * s4 / math.Pow(one, 8)
		}
	}
	if den == 0 || num == 0 {
		return 0, nil
	}
	alpha := num / den
	expo := 1.0 / float64(2*q+1)
	return k.rateConstant() * math.Pow(alpha*float64(n), expo), nil
}

// HirukawaBandwidth computes the two-stage plug-in bandwidth of Hirukawa
// (2010) for a univariate series. The first stage takes the Andrews AR(1)
// rule as pilot bandwidth; the second stage estimates the spectral level and
// q-th generalized derivative under the pilot and plugs them into the
// MSE-optimal growth formula. Only the Bartlett and Parzen kernels are
// supported.
func HirukawaBandwidth(x []float64, k Kernel) (float64, error) {
	if k != Bartlett && k != Parzen {
		return 0, fmt.Errorf("%w: kernel %q, want one of {bartlett, parzen}", series.ErrInvalidType, k)
	}
	s, err := series.FromSlice(x)
	if err != nil {
		return 0, err
	}
	pilot, err := AndrewsBandwidth(s, k)
	if err != nil {
		return 0, err
	}
	if pilot <= 0 {
		return 0, nil
	}

	n := len(x)
	l := int(pilot)
	if l > n-1 {
		l = n - 1
	}
	gamma, err := autocov.Lags(x, l)
	if err != nil {
		return 0, err
	}

	q := k.exponent()
	s0 := gamma[0]
	sq := 0.0
	for j := 1; j <= l; j++ {
		w := k.Weight(float64(j) / pilot)
		s0 += 2 * w * gamma[j]
		sq += 2 * w * math.Pow(float64(j), float64(q)) * gamma[j]
	}
	if s0 <= 0 || sq == 0 {
		return 0, nil
	}

	ratio := sq / s0
	expo := 1.0 / float64(2*q+1)
	return k.rateConstant() * math.Pow(ratio*ratio*float64(n), expo), nil
}

// fitAR1 regresses the centered column on its own first lag and returns the
// coefficient and innovation variance. The coefficient is clamped away from
// the unit root so the Andrews formulas stay finite.
func fitAR1(x []float64) (rho, sigma2 float64) {
	n := len(x)
	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	var sxy, sxx float64
	for t := 1; t < n; t++ {
		xc := x[t-1] - mean
		yc := x[t] - mean
		sxy += xc * yc
		sxx += xc * xc
	}
	if sxx == 0 {
		return 0, 0
	}
	rho = sxy / sxx
	const rhoCap = 0.97
	if rho > rhoCap {
		rho = rhoCap
	} else if rho < -rhoCap {
		rho = -rhoCap
	}

	var sse float64
	for t := 1; t < n; t++ {
		resid := (x[t] - mean) - rho*(x[t-1]-mean)
		sse += resid * resid
	}
	sigma2 = sse / float64(n-1)
	return rho, sigma2
}
