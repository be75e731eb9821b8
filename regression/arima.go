package regression

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sadityag/tenure-tracker/arima"
	"github.com/sadityag/tenure-tracker/stats"
	"github.com/sadityag/tenure-tracker/timeseries"
)

// gridCandidate pairs one (p, d, q) order with its fit outcome.
type gridCandidate struct {
	order arima.Order
	model *arima.Model
	err   error
}

// ARIMA grid-searches (p, d, q) orders for a regression-with-ARIMA-errors
// model on the lag-aligned pair, keeping the candidate with the lowest
// model information criterion. A stationarity test on the aligned response
// sets the minimum differencing order: 0 when the test already rejects a
// unit root at 5%, 1 otherwise. Candidates are fit concurrently, but
// selection scans them in grid order with a strict less-than comparison, so
// the first-seen lowest-criterion candidate wins exactly as in a sequential
// search. Candidate failures are recorded as diagnostics; only a grid with
// no successful fit at all is an error.
func ARIMA(x, y *timeseries.Series, opts Options) (*Result, error) {
	lag, xa, ya, err := alignAtBestLag(x, y, opts)
	if err != nil {
		return nil, fmt.Errorf("regression: arima: %w", err)
	}
	xs, ys := xa.Values(), ya.Values()

	res := newResult("arima", lag)

	dMin := 1
	if adf, err := stats.ADF(ys, 0); err != nil {
		res.Diagnostics = append(res.Diagnostics,
			fmt.Sprintf("arima: stationarity test: %v; assuming differencing needed", err))
		opts.Logger.Warn().Err(err).Msg("arima stationarity test failed")
	} else if adf.PValue < 0.05 {
		dMin = 0
	}
	if dMin > opts.MaxD {
		dMin = opts.MaxD
	}

	var orders []arima.Order
	for p := 0; p <= opts.MaxP; p++ {
		for d := dMin; d <= opts.MaxD; d++ {
			for q := 0; q <= opts.MaxQ; q++ {
				orders = append(orders, arima.Order{P: p, D: d, Q: q})
			}
		}
	}

	candidates := make([]gridCandidate, len(orders))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, order := range orders {
		i, order := i, order
		g.Go(func() error {
			model := arima.New(order.P, order.D, order.Q)
			candidates[i] = gridCandidate{order: order, model: model, err: model.Fit(ys, xs)}
			return nil
		})
	}
	_ = g.Wait()

	var best *gridCandidate
	for i := range candidates {
		c := &candidates[i]
		if c.err != nil {
			res.Diagnostics = append(res.Diagnostics,
				fmt.Sprintf("arima: order (%d,%d,%d): %v", c.order.P, c.order.D, c.order.Q, c.err))
			opts.Logger.Debug().Err(c.err).
				Int("p", c.order.P).Int("d", c.order.D).Int("q", c.order.Q).
				Msg("arima grid candidate failed")
			continue
		}
		if best == nil || c.model.AIC < best.model.AIC {
			best = c
		}
	}
	if best == nil {
		return nil, fmt.Errorf("regression: arima: %d grid candidates, none fit: %w", len(orders), ErrNoFeasibleModel)
	}

	order := best.order
	model := best.model
	fitted := model.FittedValues()

	res.Order = &order

	// One step ahead from the last observed exogenous value, falling back
	// to the last fitted value when the forecast itself fails.
	lastX := xs[len(xs)-1]
	if fc, err := model.Forecast(1, []float64{lastX}); err == nil {
		res.Prediction = fc[0]
	} else {
		res.Prediction = fitted[len(fitted)-1]
		res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("arima: horizon forecast: %v; using last fitted value", err))
		opts.Logger.Warn().Err(err).Msg("arima horizon forecast failed")
	}

	res.PlotData = PlotData{X: xs, Actual: ys, Fitted: fitted}

	res.Metrics, err = stats.Evaluate(ys, fitted, order.P+order.D+order.Q+1)
	if err != nil {
		return nil, fmt.Errorf("regression: arima: %w", err)
	}

	if lbLags := min(10, len(ys)-1); lbLags >= 1 {
		if lb, err := stats.LjungBox(model.Residuals(), lbLags, order.P+order.Q); err == nil && lb.PValue < 0.05 {
			res.Diagnostics = append(res.Diagnostics,
				fmt.Sprintf("arima: residual autocorrelation detected (ljung-box p=%.4f at %d lags)", lb.PValue, lb.Lags))
		}
	}

	res.extend = func(futureX []float64) ([]float64, error) {
		return model.Forecast(len(futureX), futureX)
	}

	if opts.DoCV {
		fit := func(trainX, trainY []float64) (Predictor, error) {
			foldModel := arima.New(order.P, order.D, order.Q)
			if err := foldModel.Fit(trainY, trainX); err != nil {
				return nil, err
			}
			return PredictorFunc(func(xs []float64) ([]float64, error) {
				return foldModel.Forecast(len(xs), xs)
			}), nil
		}
		var diags []string
		res.CVScore, res.CVError, diags = CrossValidate(xs, ys, fit, opts.KFolds, opts.Logger)
		res.Diagnostics = append(res.Diagnostics, diags...)
	}
	return res, nil
}
