package bootstrap

import (
	"math"
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

func TestParseScheme(t *testing.T) {
	for _, s := range []Scheme{Stationary, Circular} {
		parsed, err := ParseScheme(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseScheme("moving")
	require.ErrorIs(t, err, series.ErrInvalidType)
	assert.Contains(t, err.Error(), "stationary")
	assert.Contains(t, err.Error(), "circular")
}

func TestResampleValidation(t *testing.T) {
	s, err := series.FromSlice([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))

	_, err = Resample(s, 0, 2, Stationary, nil, rng)
	require.ErrorIs(t, err, series.ErrInvalidSize)

	_, err = Resample(s, -3, 2, Stationary, nil, rng)
	require.ErrorIs(t, err, series.ErrInvalidSize)

	_, err = Resample(s, 10, 6, Circular, nil, rng)
	require.ErrorIs(t, err, series.ErrInvalidSize)

	_, err = Resample(s, 10, 2, Scheme(9), nil, rng)
	require.ErrorIs(t, err, series.ErrInvalidType)
}

func TestResampleShapeAndReproducibility(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	data := make([]float64, 100*2)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	s, err := series.FromMatrix(mat.NewDense(100, 2, data))
	require.NoError(t, err)

	for _, scheme := range []Scheme{Stationary, Circular} {
		t.Run(scheme.String(), func(t *testing.T) {
			a, err := Resample(s, 25, 5, scheme, nil, rand.New(rand.NewSource(42)))
			require.NoError(t, err)
			r, c := a.Dims()
			assert.Equal(t, 25, r)
			assert.Equal(t, 2, c)

			b, err := Resample(s, 25, 5, scheme, nil, rand.New(rand.NewSource(42)))
			require.NoError(t, err)
			assert.True(t, mat.Equal(a, b), "same seed must reproduce replicates")

			c2, err := Resample(s, 25, 5, scheme, nil, rand.New(rand.NewSource(43)))
			require.NoError(t, err)
			assert.False(t, mat.Equal(a, c2), "different seeds must differ")
		})
	}
}

func TestResampleValuesComeFromSeries(t *testing.T) {
	s, err := series.FromSlice([]float64{10, 20, 30, 40})
	require.NoError(t, err)

	reps, err := Resample(s, 50, 2, Circular, nil, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	// Every replicate mean stays inside the observed range.
	for r := 0; r < 50; r++ {
		v := reps.At(r, 0)
		assert.GreaterOrEqual(t, v, 10.0)
		assert.LessOrEqual(t, v, 40.0)
	}
}

func TestPolitisWhiteLengths(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	iid := make([]float64, 2000)
	for i := range iid {
		iid[i] = rng.NormFloat64()
	}
	sIID, err := series.FromSlice(iid)
	require.NoError(t, err)

	sAR, err := series.FromSlice(simulateAR1(2000, 0.9, rng))
	require.NoError(t, err)

	lenIID, err := PolitisWhite{}.Select(sIID)
	require.NoError(t, err)
	lenAR, err := PolitisWhite{}.Select(sAR)
	require.NoError(t, err)

	bMax := math.Ceil(math.Min(3*math.Sqrt(2000), 2000.0/3))
	for _, l := range []float64{lenIID.Stationary, lenIID.Circular, lenAR.Stationary, lenAR.Circular} {
		assert.GreaterOrEqual(t, l, 1.0)
		assert.LessOrEqual(t, l, bMax)
	}

	// Independent data needs short blocks; persistent data needs long ones.
	assert.Less(t, lenIID.Stationary, 6.0)
	assert.Greater(t, lenAR.Stationary, 8.0)
	assert.Greater(t, lenAR.Circular, 8.0)
}

func TestVarianceIID(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	n := 2000
	x := make([]float64, n)
	for i := range x {
		x[i] = rng.NormFloat64()
	}
	s, err := series.FromSlice(x)
	require.NoError(t, err)

	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)
	var ssq float64
	for _, v := range x {
		ssq += (v - mean) * (v - mean)
	}
	naive := ssq / float64(n) / float64(n)

	for _, scheme := range []Scheme{Stationary, Circular} {
		t.Run(scheme.String(), func(t *testing.T) {
			cov, err := Variance(s, 800, scheme, nil, rand.New(rand.NewSource(6)))
			require.NoError(t, err)
			require.Equal(t, 1, cov.SymmetricDim())
			assert.InEpsilon(t, naive, cov.At(0, 0), 0.4)
		})
	}
}
