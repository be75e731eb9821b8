package regression

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/sadityag/tenure-tracker/stats"
	"github.com/sadityag/tenure-tracker/timeseries"
)

// Linear fits ordinary least squares with an intercept on the lag-aligned
// pair. The horizon prediction is alpha + beta * x at the horizon year.
func Linear(x, y *timeseries.Series, opts Options) (*Result, error) {
	lag, xa, ya, err := alignAtBestLag(x, y, opts)
	if err != nil {
		return nil, fmt.Errorf("regression: linear: %w", err)
	}
	xs, ys := xa.Values(), ya.Values()

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	fitted := make([]float64, len(xs))
	for i, v := range xs {
		fitted[i] = alpha + beta*v
	}

	res := newResult("linear", lag)
	res.Prediction = alpha + beta*horizonX(x, opts.HorizonYear)
	res.PlotData = PlotData{X: xs, Actual: ys, Fitted: fitted}

	res.Metrics, err = stats.Evaluate(ys, fitted, 2)
	if err != nil {
		return nil, fmt.Errorf("regression: linear: %w", err)
	}

	res.extend = func(futureX []float64) ([]float64, error) {
		out := make([]float64, len(futureX))
		for i, v := range futureX {
			out[i] = alpha + beta*v
		}
		return out, nil
	}

	if opts.DoCV {
		var diags []string
		res.CVScore, res.CVError, diags = CrossValidate(xs, ys, fitOLS, opts.KFolds, opts.Logger)
		res.Diagnostics = append(res.Diagnostics, diags...)
	}
	return res, nil
}

// fitOLS is the linear strategy's cross-validation adapter: refit the line
// on each training window and evaluate it in closed form.
func fitOLS(trainX, trainY []float64) (Predictor, error) {
	if len(trainX) < 2 {
		return nil, fmt.Errorf("regression: ols needs at least 2 points, have %d", len(trainX))
	}
	alpha, beta := stat.LinearRegression(trainX, trainY, nil, false)
	return PredictorFunc(func(xs []float64) ([]float64, error) {
		out := make([]float64, len(xs))
		for i, v := range xs {
			out[i] = alpha + beta*v
		}
		return out, nil
	}), nil
}
