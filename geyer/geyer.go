// Package geyer implements the positive, monotone initial-sequence estimator
// of Geyer (1992) for the variance of the mean of a univariate series.
package geyer

import (
	"fmt"
	"math"

	"github.com/mcmc-tools/go-nse/autocov"
	"github.com/mcmc-tools/go-nse/series"
)

// lagCap bounds the autocovariance search at min(n-1, 10·floor(√n)). Pair
// sums of a strongly correlated chain can stay positive for many lags, so the
// cap is a generous multiple of √n rather than √n itself; the FFT path in
// autocov keeps the whole range cheap to compute.
func lagCap(n int) int {
	limit := 10 * int(math.Sqrt(float64(n)))
	if limit > n-1 {
		limit = n - 1
	}
	if limit < 1 {
		limit = 1
	}
	return limit
}

// InitialSequence returns the initial-sequence estimate of Var(mean(x)):
// consecutive-lag autocovariance pair sums Γ_m = γ_{2m}+γ_{2m+1} are
// accumulated while positive, corrected to be monotone non-increasing by a
// running minimum, and combined as (2·ΣΓ_m - γ_0)/n. The result is never
// negative.
func InitialSequence(x []float64) (float64, error) {
	n := len(x)
	if n < 2 {
		return 0, fmt.Errorf("%w: need at least 2 observations, got %d", series.ErrInvalidSize, n)
	}

	maxLag := lagCap(n)
	gamma, err := autocov.Lags(x, maxLag)
	if err != nil {
		return 0, err
	}

	var pairs []float64
	for m := 0; 2*m+1 <= maxLag; m++ {
		p := gamma[2*m] + gamma[2*m+1]
		if p <= 0 {
			break
		}
		pairs = append(pairs, p)
	}
	for i := 1; i < len(pairs); i++ {
		if pairs[i] > pairs[i-1] {
			pairs[i] = pairs[i-1]
		}
	}

	sum := 0.0
	for _, p := range pairs {
		sum += p
	}
	lrv := 2*sum - gamma[0]
	if lrv < 0 {
		lrv = 0
	}
	return lrv / float64(n), nil
}
