package regression

import (
	"fmt"
	"math"

	"github.com/sadityag/tenure-tracker/arima"
	"github.com/sadityag/tenure-tracker/stats"
	"github.com/sadityag/tenure-tracker/timeseries"
)

// PlotData holds the parallel arrays every strategy reports for plotting:
// the aligned explanatory values, the aligned actuals, and the fitted
// values. Std is populated by the Gaussian process strategy only. The
// arrays are always equal length and index-aligned.
type PlotData struct {
	X      []float64
	Actual []float64
	Fitted []float64
	Std    []float64
}

// Result is the uniform bundle produced by every regression strategy.
type Result struct {
	Method     string
	Lag        int
	Prediction float64
	stats.Metrics

	PlotData PlotData

	// CVScore and CVError are the mean and population standard deviation
	// of per-fold R2 scores. Both are NaN when cross-validation was
	// disabled or every fold failed.
	CVScore float64
	CVError float64

	// Std is the standard deviation of the horizon prediction; NaN for
	// every method except the Gaussian process.
	Std float64

	// Order is the selected (p, d, q) for the ARIMA strategy, nil
	// otherwise.
	Order *arima.Order

	// Diagnostics records non-fatal conditions encountered along the way:
	// skipped cross-validation folds, failed grid candidates, residual
	// autocorrelation warnings.
	Diagnostics []string

	// extend computes fitted values for explanatory values beyond the
	// historical range using the same fitted model, per the method's own
	// forward rule.
	extend func(futureX []float64) ([]float64, error)
}

// newResult seeds the bundle fields that hold NaN until a strategy fills
// them in.
func newResult(method string, lag int) *Result {
	return &Result{
		Method:     method,
		Lag:        lag,
		Prediction: math.NaN(),
		CVScore:    math.NaN(),
		CVError:    math.NaN(),
		Std:        math.NaN(),
	}
}

// alignAtBestLag runs the shared strategy prelude: lag discovery followed
// by alignment at the winning lag. The aligned pair is guaranteed to hold
// at least two points.
func alignAtBestLag(x, y *timeseries.Series, opts Options) (lag int, xa, ya *timeseries.Series, err error) {
	lag, _, _, err = stats.MaxLag(x, y, opts.MaxLagYears)
	if err != nil {
		return 0, nil, nil, err
	}
	xa, ya = timeseries.AlignWithLag(x, y, lag)
	if xa.Len() < 2 {
		return 0, nil, nil, fmt.Errorf("regression: %d aligned points at lag %d: %w", xa.Len(), lag, stats.ErrInsufficientData)
	}
	return lag, xa, ya, nil
}

// horizonX looks up the explanatory value for the horizon year, falling
// back to the latest available value when that year is absent. A recorded
// NaN propagates to a NaN prediction downstream rather than an error.
func horizonX(x *timeseries.Series, horizonYear int) float64 {
	if v, ok := x.At(horizonYear); ok {
		return v
	}
	_, v, ok := x.Last()
	if !ok {
		return math.NaN()
	}
	return v
}
