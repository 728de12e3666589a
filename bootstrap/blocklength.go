package bootstrap

import (
	"math"

	"github.com/mcmc-tools/go-nse/autocov"
	"github.com/mcmc-tools/go-nse/series"
)

// Lengths holds the automatically selected block lengths, one optimal per
// bootstrap scheme.
type Lengths struct {
	Stationary float64
	Circular   float64
}

// Selector chooses block lengths for a series. It is the injection point for
// swapping the selection rule.
type Selector interface {
	Select(s *series.Series) (Lengths, error)
}

// PolitisWhite implements the automatic block length rule of Politis & White
// (2004) with the Patton, Politis & White (2009) correction. For
// multivariate series the rule runs per column and the selected lengths are
// averaged.
type PolitisWhite struct{}

// Select implements Selector.
func (PolitisWhite) Select(s *series.Series) (Lengths, error) {
	d := s.Dim()
	var sb, cb float64
	for j := 0; j < d; j++ {
		colSB, colCB, err := blockLengthColumn(s.Col(j))
		if err != nil {
			return Lengths{}, err
		}
		sb += colSB
		cb += colCB
	}
	return Lengths{
		Stationary: sb / float64(d),
		Circular:   cb / float64(d),
	}, nil
}

func blockLengthColumn(x []float64) (sb, cb float64, err error) {
	n := len(x)
	kn := int(math.Ceil(math.Log10(float64(n))))
	if kn < 5 {
		kn = 5
	}
	mMax := int(math.Ceil(math.Sqrt(float64(n)))) + kn
	maxLag := mMax + kn
	if maxLag > n-1 {
		maxLag = n - 1
	}

	gamma, err := autocov.Lags(x, maxLag)
	if err != nil {
		return 0, 0, err
	}
	if gamma[0] <= 0 {
		return 1, 1, nil
	}

	// Implied-hat rule: mHat is the smallest m whose next kn sample
	// autocorrelations all fall inside the significance band.
	band := 2 * math.Sqrt(math.Log10(float64(n))/float64(n))
	mHat := mMax
	for m := 1; m <= mMax; m++ {
		allSmall := true
		for k := m + 1; k <= m+kn && k <= maxLag; k++ {
			if math.Abs(gamma[k]/gamma[0]) > band {
				allSmall = false
				break
			}
		}
		if allSmall {
			mHat = m
			break
		}
	}

	m := 2 * mHat
	if m > maxLag {
		m = maxLag
	}

	var g, g0 float64
	g0 = gamma[0]
	for k := 1; k <= m; k++ {
		w := trapezoid(float64(k) / float64(m))
		g += 2 * w * float64(k) * gamma[k]
		g0 += 2 * w * gamma[k]
	}
	if g == 0 || g0 == 0 {
		return 1, 1, nil
	}

	dSB := 2 * g0 * g0
	dCB := 4.0 / 3.0 * g0 * g0
	nf := float64(n)
	sb = math.Pow(2*g*g/dSB, 1.0/3.0) * math.Pow(nf, 1.0/3.0)
	cb = math.Pow(2*g*g/dCB, 1.0/3.0) * math.Pow(nf, 1.0/3.0)

	bMax := math.Ceil(math.Min(3*math.Sqrt(nf), nf/3))
	sb = clamp(sb, 1, bMax)
	cb = clamp(cb, 1, bMax)
	return sb, cb, nil
}

// trapezoid is the flat-top taper of Politis & Romano (1995).
func trapezoid(t float64) float64 {
	at := math.Abs(t)
	switch {
	case at <= 0.5:
		return 1
	case at <= 1:
		return 2 * (1 - at)
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
