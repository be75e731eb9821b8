package regression

import (
	"fmt"

	"github.com/sadityag/tenure-tracker/smooth"
	"github.com/sadityag/tenure-tracker/stats"
	"github.com/sadityag/tenure-tracker/timeseries"
)

// Lowess fits a locally weighted smoother over the lag-aligned pair. Fitted
// values and the horizon prediction come from linear interpolation against
// the smoothed curve, so queries beyond the fitted range hold the nearest
// edge value flat; that edge-hold behavior is the documented rule for
// horizon years past the historical range. The information criterion uses
// the fractional effective-parameter count max(1, frac*n).
func Lowess(x, y *timeseries.Series, opts Options) (*Result, error) {
	lag, xa, ya, err := alignAtBestLag(x, y, opts)
	if err != nil {
		return nil, fmt.Errorf("regression: lowess: %w", err)
	}
	xs, ys := xa.Values(), ya.Values()

	curve, err := smooth.Lowess(xs, ys, opts.Frac)
	if err != nil {
		return nil, fmt.Errorf("regression: lowess: %w", err)
	}
	fitted := curve.Eval(xs)

	res := newResult("lowess", lag)
	res.Prediction = curve.At(horizonX(x, opts.HorizonYear))
	res.PlotData = PlotData{X: xs, Actual: ys, Fitted: fitted}

	effectiveParams := int(opts.Frac * float64(len(xs)))
	if effectiveParams < 1 {
		effectiveParams = 1
	}
	res.Metrics, err = stats.Evaluate(ys, fitted, effectiveParams)
	if err != nil {
		return nil, fmt.Errorf("regression: lowess: %w", err)
	}
	res.AIC = stats.NonParametricAIC(ys, fitted, float64(effectiveParams))

	res.extend = func(futureX []float64) ([]float64, error) {
		return curve.Eval(futureX), nil
	}

	if opts.DoCV {
		frac := opts.Frac
		fit := func(trainX, trainY []float64) (Predictor, error) {
			c, err := smooth.Lowess(trainX, trainY, frac)
			if err != nil {
				return nil, err
			}
			return PredictorFunc(func(xs []float64) ([]float64, error) {
				return c.Eval(xs), nil
			}), nil
		}
		var diags []string
		res.CVScore, res.CVError, diags = CrossValidate(xs, ys, fit, opts.KFolds, opts.Logger)
		res.Diagnostics = append(res.Diagnostics, diags...)
	}
	return res, nil
}
