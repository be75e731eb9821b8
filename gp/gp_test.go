package gp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sadityag/tenure-tracker/gp"
)

func sineData(n int) (x, y []float64) {
	x = make([]float64, n)
	y = make([]float64, n)
	for i := range x {
		x[i] = 0.5 * float64(i)
		y[i] = math.Sin(x[i])
	}
	return x, y
}

func TestFitTracksSmoothData(t *testing.T) {
	x, y := sineData(10)

	model, err := gp.Fit(x, y, gp.DefaultConfig())
	require.NoError(t, err)

	mean, std, err := model.Predict(x)
	require.NoError(t, err)
	require.Len(t, mean, len(x))
	require.Len(t, std, len(x))

	for i := range x {
		require.InDelta(t, y[i], mean[i], 0.3, "posterior mean at x=%v", x[i])
		require.Greater(t, std[i], 0.0)
	}
}

func TestPredictStdGrowsAwayFromData(t *testing.T) {
	x, y := sineData(10)

	model, err := gp.Fit(x, y, gp.DefaultConfig())
	require.NoError(t, err)

	_, std, err := model.Predict([]float64{2.0, 50.0})
	require.NoError(t, err)

	require.Greater(t, std[1], std[0], "uncertainty should grow far from the training inputs")
}

func TestFitReproducibleWithSeed(t *testing.T) {
	x, y := sineData(12)

	m1, err := gp.Fit(x, y, gp.DefaultConfig())
	require.NoError(t, err)
	m2, err := gp.Fit(x, y, gp.DefaultConfig())
	require.NoError(t, err)

	require.Equal(t, m1.LengthScale(), m2.LengthScale())
	require.Equal(t, m1.NoiseVariance(), m2.NoiseVariance())
}

func TestPredictNaNQuery(t *testing.T) {
	x, y := sineData(8)

	model, err := gp.Fit(x, y, gp.DefaultConfig())
	require.NoError(t, err)

	mean, std, err := model.Predict([]float64{math.NaN(), 1.0})
	require.NoError(t, err)

	require.True(t, math.IsNaN(mean[0]))
	require.True(t, math.IsNaN(std[0]))
	require.False(t, math.IsNaN(mean[1]))
}

func TestFitValidation(t *testing.T) {
	_, err := gp.Fit([]float64{1, 2}, []float64{1}, gp.DefaultConfig())
	require.Error(t, err)

	_, err = gp.Fit([]float64{1}, []float64{1}, gp.DefaultConfig())
	require.Error(t, err)

	bad := gp.DefaultConfig()
	bad.LengthScale = 0
	_, err = gp.Fit([]float64{1, 2, 3}, []float64{1, 2, 3}, bad)
	require.Error(t, err)
}

func TestNumParams(t *testing.T) {
	x, y := sineData(6)

	model, err := gp.Fit(x, y, gp.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, 2, model.NumParams())
}
