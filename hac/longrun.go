package hac

import (
	"gonum.org/v1/gonum/mat"

	"github.com/mcmc-tools/go-nse/autocov"
	"github.com/mcmc-tools/go-nse/series"
)

// LongRun computes the kernel-weighted long-run covariance
//
//	Ω = Γ_0 + Σ_{j=1}^{floor(B)} w(j/B)·(Γ_j + Γ_jᵀ)
//
// for the given bandwidth B. Lags are capped at n-1; a bandwidth of zero or
// below yields the symmetrized lag-0 covariance alone.
func LongRun(s *series.Series, k Kernel, bandwidth float64) (*mat.SymDense, error) {
	maxLag := 0
	if bandwidth > 0 {
		maxLag = int(bandwidth)
		if maxLag > s.Len()-1 {
			maxLag = s.Len() - 1
		}
	}
	gammas, err := autocov.MatrixLags(s, maxLag)
	if err != nil {
		return nil, err
	}
	return autocov.WeightedSum(gammas, k.Weight, bandwidth), nil
}
