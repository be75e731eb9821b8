package decompose

import (
	"fmt"
	"math"

	"github.com/sadityag/tenure-tracker/regression"
	"github.com/sadityag/tenure-tracker/stats"
	"github.com/sadityag/tenure-tracker/timeseries"
)

// Config selects the trend method and cycle parameters for a decomposition.
type Config struct {
	// Method names the trend regression strategy: "linear", "polynomial",
	// "lowess", "gaussian", or "arima".
	Method string

	// Period and MaxHarmonics parameterize the cyclical analysis. The
	// current reconstruction is lossless and does not consume them; see
	// Cycle.
	Period       int
	MaxHarmonics int

	// Regression configures lag discovery, the horizon year, and the
	// strategy hyperparameters.
	Regression regression.Options
}

// DefaultConfig returns a linear-trend decomposition with the reference
// regression options.
func DefaultConfig() Config {
	return Config{
		Method:       "linear",
		Period:       0,
		MaxHarmonics: 3,
		Regression:   regression.DefaultOptions(),
	}
}

// Frame is the combined plot table over the extended axis: original values
// NaN-padded past the history, the trend and cycle components, and their
// sum. All arrays are equal length.
type Frame struct {
	Time     []float64
	Original []float64
	Trend    []float64
	Cycle    []float64
	Combined []float64
}

// Result is the full decomposition: component series over the extended year
// axis, the forecast tail past the historical range, the cleaned inputs,
// and the underlying trend and cycle results.
type Result struct {
	Trend  *timeseries.Series
	Cycle  *timeseries.Series
	Future *timeseries.Series

	CleanX *timeseries.Series
	CleanY *timeseries.Series

	TrendResult *regression.TrendResult
	CycleResult *CycleResult

	Frame Frame
}

// Decompose splits Y into trend and cyclical components against the year
// axis carried by X, extends the axis through the configured horizon year,
// and forecasts both components forward. The trend is fitted by the
// configured regression strategy over the extended axis; the cycle is the
// Fourier reconstruction of the historical detrended residual tiled across
// it. Trend and cycle are truncated to their common length before
// combination, so combined[i] = trend[i] + cycle[i] holds at every
// position. The forecast series holds the combined values past the
// historical range.
func Decompose(x, y *timeseries.Series, cfg Config) (*Result, error) {
	cleanX, cleanY := timeseries.Clean(x, y)
	nClean := cleanX.Len()
	if nClean < 2 {
		return nil, fmt.Errorf("decompose: %d jointly valid points: %w", nClean, stats.ErrInsufficientData)
	}

	extended := extendAxis(cleanX, cfg.Regression.HorizonYear)

	trendRes, err := regression.TrendRegression(extended, cleanY, cfg.Method, cfg.Regression)
	if err != nil {
		return nil, err
	}
	trend := trendRes.PlotData.Fitted

	// Detrend using only the historical overlap of the fitted trend.
	nHist := nClean
	if len(trend) < nHist {
		nHist = len(trend)
	}
	detrended := make([]float64, nHist)
	for i := range detrended {
		detrended[i] = cleanY.Value(i) - trend[i]
	}

	span := extended.Len()
	cycleRes, err := Cycle(detrended, span, cfg.Period, cfg.MaxHarmonics)
	if err != nil {
		return nil, err
	}
	cycle := cycleRes.Cycle

	// Keep the components the same length before combining.
	m := len(trend)
	if len(cycle) < m {
		m = len(cycle)
	}
	trend = trend[:m]
	cycle = cycle[:m]

	combined := make([]float64, m)
	for i := range combined {
		combined[i] = trend[i] + cycle[i]
	}

	years := extended.Years()[:m]
	trendSeries, err := timeseries.New(years, trend)
	if err != nil {
		return nil, fmt.Errorf("decompose: trend series: %w", err)
	}
	cycleSeries, err := timeseries.New(years, cycle)
	if err != nil {
		return nil, fmt.Errorf("decompose: cycle series: %w", err)
	}

	future := timeseries.FromValues(0, nil)
	if nClean < m {
		future, err = timeseries.New(years[nClean:], combined[nClean:])
		if err != nil {
			return nil, fmt.Errorf("decompose: future series: %w", err)
		}
	}

	original := make([]float64, m)
	for i := range original {
		if i < nClean {
			original[i] = cleanY.Value(i)
		} else {
			original[i] = math.NaN()
		}
	}
	timeVals := make([]float64, m)
	for i, yr := range years {
		timeVals[i] = float64(yr)
	}

	return &Result{
		Trend:       trendSeries,
		Cycle:       cycleSeries,
		Future:      future,
		CleanX:      cleanX,
		CleanY:      cleanY,
		TrendResult: trendRes,
		CycleResult: cycleRes,
		Frame: Frame{
			Time:     timeVals,
			Original: original,
			Trend:    trend,
			Cycle:    cycle,
			Combined: combined,
		},
	}, nil
}

// extendAxis returns the cleaned explanatory series with consecutive years
// appended through the horizon year, each future position valued by its own
// year. When the series already reaches the horizon it is returned as-is.
func extendAxis(cleanX *timeseries.Series, horizonYear int) *timeseries.Series {
	lastYear, _, ok := cleanX.Last()
	if !ok || lastYear >= horizonYear {
		return cleanX
	}

	years := cleanX.Years()
	values := cleanX.Values()
	for yr := lastYear + 1; yr <= horizonYear; yr++ {
		years = append(years, yr)
		values = append(values, float64(yr))
	}
	extended, _ := timeseries.New(years, values)
	return extended
}
