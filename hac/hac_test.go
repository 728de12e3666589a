package hac

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/mcmc-tools/go-nse/series"
)

func simulateAR1(n int, phi float64, rng *rand.Rand) []float64 {
	x := make([]float64, n)
	for t := 1; t < n; t++ {
		x[t] = phi*x[t-1] + rng.NormFloat64()
	}
	return x
}

func TestKernelWeights(t *testing.T) {
	kernels := []Kernel{Bartlett, Parzen, QuadraticSpectral, Truncated, TukeyHanning}
	for _, k := range kernels {
		assert.InDelta(t, 1.0, k.Weight(0), 1e-12, "%s at 0", k)
	}

	tests := []struct {
		kernel Kernel
		x      float64
		want   float64
	}{
		{Bartlett, 0.5, 0.5},
		{Bartlett, 1.0, 0.0},
		{Bartlett, 1.5, 0.0},
		{Parzen, 0.5, 0.25},
		{Parzen, 1.0, 0.0},
		{Truncated, 0.5, 1.0},
		{Truncated, 1.0, 1.0},
		{Truncated, 1.1, 0.0},
		{TukeyHanning, 0.5, 0.5},
		{TukeyHanning, 1.0, 0.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, tt.kernel.Weight(tt.x), 1e-12, "%s at %v", tt.kernel, tt.x)
	}

	// Quadratic spectral decays but never truncates sharply.
	assert.Greater(t, QuadraticSpectral.Weight(0.2), 0.5)
	assert.Less(t, QuadraticSpectral.Weight(2.0), 0.2)
}

func TestParseKernel(t *testing.T) {
	for _, k := range []Kernel{Bartlett, Parzen, QuadraticSpectral, Truncated, TukeyHanning} {
		parsed, err := ParseKernel(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKernel("gaussian")
	require.ErrorIs(t, err, series.ErrInvalidType)
	assert.Contains(t, err.Error(), "bartlett")
	assert.Contains(t, err.Error(), "tukey-hanning")
}

func TestNeweyWestBandwidth(t *testing.T) {
	assert.Equal(t, 4.0, NeweyWestBandwidth(100))
	// 4·(1000/100)^(2/9) ≈ 6.67
	assert.Equal(t, 6.0, NeweyWestBandwidth(1000))
}

func TestAndrewsBandwidth(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	iid := make([]float64, 2000)
	for i := range iid {
		iid[i] = rng.NormFloat64()
	}
	sIID, err := series.FromSlice(iid)
	require.NoError(t, err)

	sAR, err := series.FromSlice(simulateAR1(2000, 0.9, rng))
	require.NoError(t, err)

	for _, k := range []Kernel{Bartlett, Parzen, QuadraticSpectral, Truncated, TukeyHanning} {
		bwIID, err := AndrewsBandwidth(sIID, k)
		require.NoError(t, err)
		bwAR, err := AndrewsBandwidth(sAR, k)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, bwIID, 0.0, "%s", k)
		assert.Greater(t, bwAR, bwIID, "%s: dependent series needs the wider window", k)
	}

	_, err = AndrewsBandwidth(sIID, Kernel(99))
	require.ErrorIs(t, err, series.ErrInvalidType)
}

func TestHirukawaBandwidth(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	x := simulateAR1(1500, 0.7, rng)

	for _, k := range []Kernel{Bartlett, Parzen} {
		bw, err := HirukawaBandwidth(x, k)
		require.NoError(t, err)
		assert.Greater(t, bw, 0.0, "%s", k)
	}

	_, err := HirukawaBandwidth(x, QuadraticSpectral)
	require.ErrorIs(t, err, series.ErrInvalidType)
	_, err = HirukawaBandwidth(x, Truncated)
	require.ErrorIs(t, err, series.ErrInvalidType)
}

func TestPrewhitenRecoversAR1(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s, err := series.FromSlice(simulateAR1(3000, 0.8, rng))
	require.NoError(t, err)

	resid, coef, err := Prewhiten(s)
	require.NoError(t, err)
	assert.Equal(t, s.Len()-1, resid.Len())
	assert.InDelta(t, 0.8, coef.At(0, 0), 0.05)

	// Residuals should be close to white: tiny lag-1 autocorrelation.
	r := resid.Col(0)
	var mean float64
	for _, v := range r {
		mean += v
	}
	mean /= float64(len(r))
	var g0, g1 float64
	for i := range r {
		g0 += (r[i] - mean) * (r[i] - mean)
		if i > 0 {
			g1 += (r[i] - mean) * (r[i-1] - mean)
		}
	}
	assert.Less(t, g1/g0, 0.05)
}

func TestPrewhitenTooShort(t *testing.T) {
	s, err := series.FromMatrix(mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6}))
	require.NoError(t, err)
	_, _, err = Prewhiten(s)
	require.ErrorIs(t, err, series.ErrInvalidSize)
}

func TestRecolorIdentityWithZeroCoef(t *testing.T) {
	omega := mat.NewSymDense(2, []float64{2, 0.5, 0.5, 3})
	coef := mat.NewDense(2, 2, nil)
	out, err := Recolor(omega, coef)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, omega.At(i, j), out.At(i, j), 1e-12)
		}
	}
}

func TestRecolorScalar(t *testing.T) {
	// For a scalar AR(1) coefficient a, recoloring multiplies by 1/(1-a)².
	omega := mat.NewSymDense(1, []float64{2})
	coef := mat.NewDense(1, 1, []float64{0.5})
	out, err := Recolor(omega, coef)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, out.At(0, 0), 1e-12)
}

func TestLongRunZeroBandwidth(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	x := simulateAR1(400, 0.6, rng)
	s, err := series.FromSlice(x)
	require.NoError(t, err)

	omega, err := LongRun(s, Bartlett, 0)
	require.NoError(t, err)

	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))
	var g0 float64
	for _, v := range x {
		g0 += (v - mean) * (v - mean)
	}
	g0 /= float64(len(x))
	assert.InDelta(t, g0, omega.At(0, 0), 1e-12)
}
