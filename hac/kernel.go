// Package hac implements kernel-based heteroskedasticity- and
// autocorrelation-consistent long-run covariance estimation: the kernel
// weight functions, the fixed and automatic bandwidth rules, and optional
// VAR(1) pre-whitening.
package hac

import (
	"fmt"
	"math"

	"github.com/mcmc-tools/go-nse/series"
)

// Kernel identifies a lag-weight function defined on [0, 1].
type Kernel int

const (
	Bartlett Kernel = iota
	Parzen
	QuadraticSpectral
	Truncated
	TukeyHanning
)

var kernelNames = map[Kernel]string{
	Bartlett:          "bartlett",
	Parzen:            "parzen",
	QuadraticSpectral: "qs",
	Truncated:         "truncated",
	TukeyHanning:      "tukey-hanning",
}

func (k Kernel) String() string {
	if name, ok := kernelNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kernel(%d)", int(k))
}

// Valid reports whether k is one of the defined kernels.
func (k Kernel) Valid() bool {
	_, ok := kernelNames[k]
	return ok
}

// ParseKernel maps an untyped tag, for example from a CLI flag, to a Kernel.
func ParseKernel(tag string) (Kernel, error) {
	switch tag {
	case "bartlett":
		return Bartlett, nil
	case "parzen":
		return Parzen, nil
	case "qs", "quadratic-spectral":
		return QuadraticSpectral, nil
	case "truncated":
		return Truncated, nil
	case "tukey-hanning":
		return TukeyHanning, nil
	}
	return 0, fmt.Errorf("%w: kernel %q, want one of {bartlett, parzen, qs, truncated, tukey-hanning}",
		series.ErrInvalidType, tag)
}

// Weight evaluates the kernel at x = lag/bandwidth.
func (k Kernel) Weight(x float64) float64 {
	ax := math.Abs(x)
	switch k {
	case Bartlett:
		if ax >= 1 {
			return 0
		}
		return 1 - ax
	case Parzen:
		switch {
		case ax <= 0.5:
			return 1 - 6*ax*ax + 6*ax*ax*ax
		case ax <= 1:
			c := 1 - ax
			return 2 * c * c * c
		default:
			return 0
		}
	case QuadraticSpectral:
		if ax == 0 {
			return 1
		}
		z := 6 * math.Pi * ax / 5
		return 25 / (12 * math.Pi * math.Pi * ax * ax) * (math.Sin(z)/z - math.Cos(z))
	case Truncated:
		if ax > 1 {
			return 0
		}
		return 1
	case TukeyHanning:
		if ax > 1 {
			return 0
		}
		return (1 + math.Cos(math.Pi*ax)) / 2
	}
	return 0
}

// exponent returns the characteristic exponent q of the kernel, the order of
// the spectral derivative its bias depends on.
func (k Kernel) exponent() int {
	if k == Bartlett {
		return 1
	}
	return 2
}

// rateConstant returns the kernel constant of the MSE-optimal bandwidth
// growth rate c·(α(q)·n)^(1/(2q+1)) from Andrews (1991), Table I.
func (k Kernel) rateConstant() float64 {
	switch k {
	case Bartlett:
		return 1.1447
	case Parzen:
		return 2.6614
	case QuadraticSpectral:
		return 1.3221
	case Truncated:
		return 0.6611
	case TukeyHanning:
		return 1.7462
	}
	return 0
}
