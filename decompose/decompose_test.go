package decompose_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sadityag/tenure-tracker/decompose"
	"github.com/sadityag/tenure-tracker/stats"
	"github.com/sadityag/tenure-tracker/timeseries"
)

func yearAxis(first, last int) *timeseries.Series {
	n := last - first + 1
	years := make([]int, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		years[i] = first + i
		values[i] = float64(first + i)
	}
	s, _ := timeseries.New(years, values)
	return s
}

func TestCycleLosslessReconstruction(t *testing.T) {
	// A pure 5-year sinusoid sampled over four full periods survives the
	// transform round trip with near-zero residual.
	detrended := make([]float64, 20)
	for i := range detrended {
		detrended[i] = math.Sin(2 * math.Pi * float64(i) / 5)
	}

	res, err := decompose.Cycle(detrended, len(detrended), 0, 3)
	require.NoError(t, err)

	require.Len(t, res.Cycle, 20)
	for i := range detrended {
		require.InDelta(t, detrended[i], res.Cycle[i], 1e-9)
	}
	require.InDelta(t, 0.0, res.Metrics.RMSE, 1e-9)
}

func TestCycleTilesBeyondSample(t *testing.T) {
	detrended := []float64{1, -2, 3, -4}

	res, err := decompose.Cycle(detrended, 10, 0, 3)
	require.NoError(t, err)

	require.Len(t, res.Cycle, 10)
	for i := 4; i < 10; i++ {
		require.InDelta(t, res.Cycle[i%4], res.Cycle[i], 1e-12, "tiling repeats the reconstruction")
	}
	require.Equal(t, res.Cycle[9], res.Prediction)
}

func TestCycleSkipsMissingValues(t *testing.T) {
	detrended := []float64{1, math.NaN(), 2, math.NaN(), 3, 4}

	res, err := decompose.Cycle(detrended, 4, 0, 3)
	require.NoError(t, err)
	require.Len(t, res.Cycle, 4)
}

func TestCycleInsufficientData(t *testing.T) {
	_, err := decompose.Cycle([]float64{1, math.NaN()}, 5, 0, 3)
	require.ErrorIs(t, err, stats.ErrInsufficientData)
}

func TestDecomposeLinearIdentity(t *testing.T) {
	x := yearAxis(2000, 2020)
	y := yearAxis(2000, 2020)

	cfg := decompose.DefaultConfig()
	cfg.Regression.DoCV = false
	res, err := decompose.Decompose(x, y, cfg)
	require.NoError(t, err)

	require.Equal(t, res.Trend.Len(), res.Cycle.Len(), "trend and cycle stay equal length")

	// The extended axis runs through the horizon year.
	lastYear, _, ok := res.Trend.Last()
	require.True(t, ok)
	require.Equal(t, cfg.Regression.HorizonYear, lastYear)

	// Forecast tail covers exactly the years past the history.
	require.Equal(t, cfg.Regression.HorizonYear-2020, res.Future.Len())

	// combined = trend + cycle elementwise.
	for i := range res.Frame.Combined {
		require.InDelta(t, res.Frame.Trend[i]+res.Frame.Cycle[i], res.Frame.Combined[i], 1e-9)
	}

	// On an identity pair the linear trend is exact, the detrended
	// residual vanishes, and the horizon forecast is the horizon year.
	n := res.Future.Len()
	require.InDelta(t, float64(cfg.Regression.HorizonYear), res.Future.Value(n-1), 1e-6)
}

func TestDecomposeFrameShape(t *testing.T) {
	x := yearAxis(2000, 2019)
	y := func() *timeseries.Series {
		years := make([]int, 20)
		values := make([]float64, 20)
		for i := range years {
			years[i] = 2000 + i
			values[i] = 40 + 2*float64(i) + 5*math.Sin(2*math.Pi*float64(i)/5)
		}
		s, _ := timeseries.New(years, values)
		return s
	}()

	cfg := decompose.DefaultConfig()
	cfg.Regression.DoCV = false
	res, err := decompose.Decompose(x, y, cfg)
	require.NoError(t, err)

	m := len(res.Frame.Time)
	require.Len(t, res.Frame.Original, m)
	require.Len(t, res.Frame.Trend, m)
	require.Len(t, res.Frame.Cycle, m)
	require.Len(t, res.Frame.Combined, m)

	nClean := res.CleanY.Len()
	for i := nClean; i < m; i++ {
		require.True(t, math.IsNaN(res.Frame.Original[i]), "originals are NaN-padded past the history")
	}
	for i := 0; i < nClean; i++ {
		require.Equal(t, res.CleanY.Value(i), res.Frame.Original[i])
	}
}

func TestDecomposeHorizonAlreadyCovered(t *testing.T) {
	x := yearAxis(2000, 2024)
	y := yearAxis(2000, 2024)

	cfg := decompose.DefaultConfig()
	cfg.Regression.DoCV = false
	res, err := decompose.Decompose(x, y, cfg)
	require.NoError(t, err)

	require.Equal(t, 0, res.Future.Len(), "no forecast tail when the axis already reaches the horizon")
	require.Equal(t, res.CleanY.Len(), res.Trend.Len())
}

func TestDecomposeInsufficientData(t *testing.T) {
	x := yearAxis(2000, 2000)
	y := yearAxis(2000, 2000)

	cfg := decompose.DefaultConfig()
	_, err := decompose.Decompose(x, y, cfg)
	require.ErrorIs(t, err, stats.ErrInsufficientData)
}

func TestDecomposeMissingValuesDropped(t *testing.T) {
	years := make([]int, 21)
	xVals := make([]float64, 21)
	yVals := make([]float64, 21)
	for i := range years {
		years[i] = 2000 + i
		xVals[i] = float64(2000 + i)
		yVals[i] = 3 * float64(i)
	}
	yVals[4] = math.NaN()
	yVals[11] = math.NaN()

	x, err := timeseries.New(years, xVals)
	require.NoError(t, err)
	y, err := timeseries.New(years, yVals)
	require.NoError(t, err)

	cfg := decompose.DefaultConfig()
	cfg.Regression.DoCV = false
	res, err := decompose.Decompose(x, y, cfg)
	require.NoError(t, err)

	require.Equal(t, 19, res.CleanY.Len())
	for i := 0; i < res.CleanY.Len(); i++ {
		require.False(t, math.IsNaN(res.CleanY.Value(i)))
	}
}
