package regression_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sadityag/tenure-tracker/regression"
	"github.com/sadityag/tenure-tracker/timeseries"
)

// yearAxis builds a series over [first, last] whose value at each year is
// the year itself.
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

// seriesOf maps the year axis through f.
func seriesOf(first, last int, f func(year int) float64) *timeseries.Series {
	n := last - first + 1
	years := make([]int, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		years[i] = first + i
		values[i] = f(first + i)
	}
	s, _ := timeseries.New(years, values)
	return s
}

func TestLinearIdenticalSeries(t *testing.T) {
	x := yearAxis(2000, 2020)
	y := yearAxis(2000, 2020)

	res, err := regression.Linear(x, y, regression.DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, 0, res.Lag)
	require.InDelta(t, 1.0, res.R2, 1e-9)
	// 2024 is absent from x, so the horizon falls back to the latest
	// value; on an identity pair the prediction is that value exactly.
	require.InDelta(t, 2020.0, res.Prediction, 1e-6)
	require.Len(t, res.PlotData.Fitted, x.Len())
	require.Len(t, res.PlotData.Actual, x.Len())
}

func TestLinearHorizonYearPresent(t *testing.T) {
	x := yearAxis(2000, 2024)
	y := seriesOf(2000, 2024, func(yr int) float64 { return 10 + 2*float64(yr-2000) })

	opts := regression.DefaultOptions()
	opts.DoCV = false
	res, err := regression.Linear(x, y, opts)
	require.NoError(t, err)

	require.InDelta(t, 10+2*24.0, res.Prediction, 1e-6)
}

func TestPolynomialDegreeOneMatchesLinear(t *testing.T) {
	x := yearAxis(2000, 2020)
	y := seriesOf(2000, 2020, func(yr int) float64 { return -4 + 1.5*float64(yr-2000) })

	opts := regression.DefaultOptions()
	opts.DoCV = false

	lin, err := regression.Linear(x, y, opts)
	require.NoError(t, err)

	opts.Degree = 1
	poly, err := regression.Polynomial(x, y, opts)
	require.NoError(t, err)

	require.Equal(t, lin.Lag, poly.Lag)
	require.Len(t, poly.PlotData.Fitted, len(lin.PlotData.Fitted))
	for i := range lin.PlotData.Fitted {
		require.InDelta(t, lin.PlotData.Fitted[i], poly.PlotData.Fitted[i], 1e-6)
	}
	require.InDelta(t, lin.Prediction, poly.Prediction, 1e-6)
}

func TestPolynomialQuadraticRecovery(t *testing.T) {
	x := yearAxis(2000, 2020)
	y := seriesOf(2000, 2020, func(yr int) float64 {
		u := float64(yr - 2000)
		return 5 + 0.5*u*u
	})

	opts := regression.DefaultOptions()
	opts.DoCV = false
	res, err := regression.Polynomial(x, y, opts)
	require.NoError(t, err)

	require.InDelta(t, 1.0, res.R2, 1e-9)
}

func TestPolynomialNaNHorizonYieldsNaNPrediction(t *testing.T) {
	years := make([]int, 25)
	xVals := make([]float64, 25)
	yVals := make([]float64, 25)
	for i := range years {
		years[i] = 2000 + i
		xVals[i] = float64(i)
		yVals[i] = 2 * float64(i)
	}
	xVals[24] = math.NaN() // horizon year present but unobserved

	x, err := timeseries.New(years, xVals)
	require.NoError(t, err)
	y, err := timeseries.New(years, yVals)
	require.NoError(t, err)

	opts := regression.DefaultOptions()
	opts.DoCV = false
	res, err := regression.Polynomial(x, y, opts)
	require.NoError(t, err)

	require.True(t, math.IsNaN(res.Prediction), "missing horizon X must propagate, not raise")
}

func TestLowessOnLine(t *testing.T) {
	x := yearAxis(2000, 2020)
	y := seriesOf(2000, 2020, func(yr int) float64 { return 100 + 3*float64(yr-2000) })

	opts := regression.DefaultOptions()
	opts.DoCV = false
	res, err := regression.Lowess(x, y, opts)
	require.NoError(t, err)

	for i, fitted := range res.PlotData.Fitted {
		require.InDelta(t, res.PlotData.Actual[i], fitted, 1.0)
	}
	// The horizon year lies past the fitted range, so edge-hold
	// interpolation pins the prediction at the last smoothed value.
	last := res.PlotData.Fitted[len(res.PlotData.Fitted)-1]
	require.InDelta(t, last, res.Prediction, 1e-9)
}

func TestGaussianTracksLinearData(t *testing.T) {
	x := yearAxis(2000, 2020)
	y := seriesOf(2000, 2020, func(yr int) float64 { return 50 + 2*float64(yr-2000) })

	opts := regression.DefaultOptions()
	opts.DoCV = false
	res, err := regression.Gaussian(x, y, opts)
	require.NoError(t, err)

	require.Greater(t, res.R2, 0.9)
	require.False(t, math.IsNaN(res.Prediction))
	require.False(t, math.IsNaN(res.Std))
	require.Greater(t, res.Std, 0.0)
	require.Len(t, res.PlotData.Std, x.Len(), "gaussian populates per-point std")
}

func TestARIMAOnTrendingData(t *testing.T) {
	x := yearAxis(2000, 2023)
	y := seriesOf(2000, 2023, func(yr int) float64 {
		u := float64(yr - 2000)
		return 30 + 4*u + 5*math.Sin(u)
	})

	opts := regression.DefaultOptions()
	opts.DoCV = false
	res, err := regression.ARIMA(x, y, opts)
	require.NoError(t, err)

	require.NotNil(t, res.Order)
	require.False(t, math.IsNaN(res.Prediction))
	require.Len(t, res.PlotData.Fitted, x.Len())
}

func TestARIMAGridExhaustion(t *testing.T) {
	// Two aligned points cannot support any (p, d, q) candidate.
	x := yearAxis(2000, 2001)
	y := seriesOf(2000, 2001, func(yr int) float64 { return float64(yr % 7) })

	opts := regression.DefaultOptions()
	opts.DoCV = false
	_, err := regression.ARIMA(x, y, opts)
	require.ErrorIs(t, err, regression.ErrNoFeasibleModel)
}

func TestTrendRegressionUnknownMethod(t *testing.T) {
	x := yearAxis(2000, 2020)
	y := yearAxis(2000, 2020)

	_, err := regression.TrendRegression(x, y, "cubist", regression.DefaultOptions())
	require.ErrorIs(t, err, regression.ErrUnsupportedMethod)
}

func TestTrendRegressionExtendsFittedCurve(t *testing.T) {
	x := yearAxis(2000, 2024)
	y := seriesOf(2000, 2019, func(yr int) float64 { return 7 + 2*float64(yr-2000) })

	opts := regression.DefaultOptions()
	opts.DoCV = false
	res, err := regression.TrendRegression(x, y, "linear", opts)
	require.NoError(t, err)

	require.Len(t, res.PlotData.X, x.Len())
	require.Len(t, res.PlotData.Actual, x.Len())
	require.Len(t, res.PlotData.Fitted, x.Len())

	// Future fitted values follow the same line.
	for i := y.Len(); i < x.Len(); i++ {
		wantYear := 2000 + i
		require.InDelta(t, 7+2*float64(wantYear-2000), res.PlotData.Fitted[i], 1e-6)
		require.True(t, math.IsNaN(res.PlotData.Actual[i]), "actuals are NaN-padded past the history")
	}
}

func TestTrendRegressionLowessEdgeHoldExtension(t *testing.T) {
	x := yearAxis(2000, 2024)
	y := seriesOf(2000, 2019, func(yr int) float64 { return 100 + 3*float64(yr-2000) })

	opts := regression.DefaultOptions()
	opts.DoCV = false
	res, err := regression.TrendRegression(x, y, "lowess", opts)
	require.NoError(t, err)

	n := len(res.PlotData.Fitted)
	require.Equal(t, x.Len(), n)
	lastHist := res.PlotData.Fitted[y.Len()-1]
	for i := y.Len(); i < n; i++ {
		require.InDelta(t, lastHist, res.PlotData.Fitted[i], 1e-9,
			"beyond the fitted range the curve holds its edge value")
	}
}
