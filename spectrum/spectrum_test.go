package spectrum

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcmc-tools/go-nse/series"
)

func simulateAR1(n int, phi float64, rng *rand.Rand) []float64 {
	x := make([]float64, n)
	for t := 1; t < n; t++ {
		x[t] = phi*x[t-1] + rng.NormFloat64()
	}
	return x
}

func TestFitValidation(t *testing.T) {
	_, err := YuleWalkerAIC{}.Fit([]float64{1})
	require.ErrorIs(t, err, series.ErrInvalidSize)
}

func TestFitWhiteNoise(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	x := make([]float64, 3000)
	for i := range x {
		x[i] = rng.NormFloat64()
	}

	m, err := YuleWalkerAIC{}.Fit(x)
	require.NoError(t, err)
	// AIC should keep the model small on independent data.
	assert.LessOrEqual(t, m.Order, 5)
	assert.InEpsilon(t, 1.0, m.Variance, 0.15)

	f0 := DensityZero(m)
	assert.InEpsilon(t, 1.0, f0, 0.3)
}

func TestFitAR1(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	phi := 0.6
	x := simulateAR1(4000, phi, rng)

	m, err := YuleWalkerAIC{}.Fit(x)
	require.NoError(t, err)
	require.GreaterOrEqual(t, m.Order, 1)
	assert.InDelta(t, phi, m.Coeffs[0], 0.1)

	// f(0) = σ²/(1-φ)² = 1/0.16 = 6.25 for the true process.
	f0 := DensityZero(m)
	assert.InEpsilon(t, 6.25, f0, 0.35)
}

func TestFitMaxOrderCap(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	x := simulateAR1(200, 0.5, rng)

	m, err := YuleWalkerAIC{MaxOrder: 2}.Fit(x)
	require.NoError(t, err)
	assert.LessOrEqual(t, m.Order, 2)
}

func TestDensityZeroDegenerateModel(t *testing.T) {
	f0 := DensityZero(&Model{Variance: 0})
	assert.Equal(t, 0.0, f0)
}
