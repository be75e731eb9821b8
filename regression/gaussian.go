package regression

import (
	"fmt"
	"math"

	mstats "github.com/montanaflynn/stats"

	"github.com/sadityag/tenure-tracker/gp"
	"github.com/sadityag/tenure-tracker/smooth"
	"github.com/sadityag/tenure-tracker/stats"
	"github.com/sadityag/tenure-tracker/timeseries"
)

// scaleEps keeps the robust-scale divisor away from zero.
const scaleEps = 1e-8

// scaler holds the robust center/spread applied to one series before a
// Gaussian process fit, and inverts the transform on predictions.
type scaler struct {
	median float64
	spread float64
}

// robustScale centers on the median and divides by the interquartile range,
// falling back to the population standard deviation when the IQR is zero
// and to 1.0 when that is zero too.
func robustScale(data []float64) (scaled []float64, s scaler, err error) {
	median, err := mstats.Median(data)
	if err != nil {
		return nil, scaler{}, fmt.Errorf("regression: robust scale: %w", err)
	}
	q75, err := mstats.Percentile(data, 75)
	if err != nil {
		return nil, scaler{}, fmt.Errorf("regression: robust scale: %w", err)
	}
	q25, err := mstats.Percentile(data, 25)
	if err != nil {
		return nil, scaler{}, fmt.Errorf("regression: robust scale: %w", err)
	}

	spread := q75 - q25
	if spread == 0 {
		spread, err = mstats.StandardDeviationPopulation(data)
		if err != nil {
			return nil, scaler{}, fmt.Errorf("regression: robust scale: %w", err)
		}
	}
	if spread == 0 {
		spread = 1.0
	}

	s = scaler{median: median, spread: spread}
	scaled = make([]float64, len(data))
	for i, v := range data {
		scaled[i] = s.apply(v)
	}
	return scaled, s, nil
}

func (s scaler) apply(v float64) float64 { return (v - s.median) / (s.spread + scaleEps) }

func (s scaler) invert(v float64) float64 { return v*(s.spread+scaleEps) + s.median }

func (s scaler) invertSpread(v float64) float64 { return v * (s.spread + scaleEps) }

// Gaussian fits a Gaussian process with an RBF plus white-noise kernel on
// the robust-scaled lag-aligned pair and reports predictions and their
// standard deviations back in original units. The AIC parameter count is
// the number of optimized kernel hyperparameters.
func Gaussian(x, y *timeseries.Series, opts Options) (*Result, error) {
	lag, xa, ya, err := alignAtBestLag(x, y, opts)
	if err != nil {
		return nil, fmt.Errorf("regression: gaussian: %w", err)
	}
	xs, ys := xa.Values(), ya.Values()

	xScaled, xScaler, err := robustScale(xs)
	if err != nil {
		return nil, err
	}
	yScaled, yScaler, err := robustScale(ys)
	if err != nil {
		return nil, err
	}

	cfg := gp.DefaultConfig()
	cfg.LengthScale = opts.LengthScale
	model, err := gp.Fit(xScaled, yScaled, cfg)
	if err != nil {
		return nil, fmt.Errorf("regression: gaussian: %w", err)
	}

	predict := func(raw []float64) (mean, std []float64, err error) {
		in := make([]float64, len(raw))
		for i, v := range raw {
			if math.IsNaN(v) {
				in[i] = math.NaN()
				continue
			}
			in[i] = xScaler.apply(v)
		}
		mean, std, err = model.Predict(in)
		if err != nil {
			return nil, nil, err
		}
		for i := range mean {
			mean[i] = yScaler.invert(mean[i])
			std[i] = yScaler.invertSpread(std[i])
		}
		return mean, std, nil
	}

	fitted, fittedStd, err := predict(xs)
	if err != nil {
		return nil, fmt.Errorf("regression: gaussian: %w", err)
	}

	res := newResult("gaussian", lag)
	res.PlotData = PlotData{X: xs, Actual: ys, Fitted: fitted, Std: fittedStd}

	hMean, hStd, err := predict([]float64{horizonX(x, opts.HorizonYear)})
	if err != nil {
		return nil, fmt.Errorf("regression: gaussian: %w", err)
	}
	res.Prediction, res.Std = hMean[0], hStd[0]

	// Metrics use only the positions where both prediction and actual are
	// defined.
	mTrue, mPred := pairwiseValid(ys, fitted)
	res.Metrics, err = stats.Evaluate(mTrue, mPred, model.NumParams())
	if err != nil {
		return nil, fmt.Errorf("regression: gaussian: %w", err)
	}

	// Forward extension interpolates against the historical fitted curve
	// with edge-hold, the same rule the LOWESS strategy uses.
	res.extend = func(futureX []float64) ([]float64, error) {
		curve, err := smooth.NewInterp(xs, fitted)
		if err != nil {
			return nil, err
		}
		return curve.Eval(futureX), nil
	}

	if opts.DoCV {
		// Fold refits reuse the strategy's optimized hyperparameters with
		// no restarts, so each fold is a single deterministic fit.
		foldCfg := gp.Config{
			LengthScale: model.LengthScale(),
			NoiseLevel:  model.NoiseVariance(),
			Restarts:    0,
			Seed:        cfg.Seed,
		}
		fit := func(trainX, trainY []float64) (Predictor, error) {
			cx, cy := dropNaNPairs(trainX, trainY)
			if len(cx) < 2 {
				return nil, fmt.Errorf("regression: gaussian fold needs at least 2 points, have %d", len(cx))
			}
			sx, fxScaler, err := robustScale(cx)
			if err != nil {
				return nil, err
			}
			sy, fyScaler, err := robustScale(cy)
			if err != nil {
				return nil, err
			}
			foldModel, err := gp.Fit(sx, sy, foldCfg)
			if err != nil {
				return nil, err
			}
			return PredictorFunc(func(xs []float64) ([]float64, error) {
				in := make([]float64, len(xs))
				for i, v := range xs {
					if math.IsNaN(v) {
						in[i] = math.NaN()
						continue
					}
					in[i] = fxScaler.apply(v)
				}
				mean, _, err := foldModel.Predict(in)
				if err != nil {
					return nil, err
				}
				for i := range mean {
					mean[i] = fyScaler.invert(mean[i])
				}
				return mean, nil
			}), nil
		}
		var diags []string
		res.CVScore, res.CVError, diags = CrossValidate(xs, ys, fit, opts.KFolds, opts.Logger)
		res.Diagnostics = append(res.Diagnostics, diags...)
	}
	return res, nil
}

// pairwiseValid filters both slices to positions where neither is NaN.
func pairwiseValid(a, b []float64) ([]float64, []float64) {
	oa := make([]float64, 0, len(a))
	ob := make([]float64, 0, len(b))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		oa = append(oa, a[i])
		ob = append(ob, b[i])
	}
	return oa, ob
}
