package regression

import (
	"fmt"
	"math"

	"github.com/sadityag/tenure-tracker/stats"
	"github.com/sadityag/tenure-tracker/timeseries"
)

// TrendResult is the dispatcher's bundle: the strategy result plus plot
// arrays extended across the full explanatory axis.
type TrendResult struct {
	Method     string
	Prediction float64
	Metrics    stats.Metrics
	PlotData   PlotData

	// Strategy is the underlying per-method result fitted on the
	// historical range.
	Strategy *Result
}

// TrendRegression dispatches to a regression strategy by name, fitting on
// the historical overlap (the first y.Len() positions of x paired with y).
// When x extends beyond the historical range, the remaining positions are
// predicted with the same fitted model: closed-form evaluation for linear
// and polynomial, a multi-step forecast for ARIMA, and edge-hold
// interpolation against the fitted curve for LOWESS and the Gaussian
// process. The returned plot arrays cover all of x, with actuals NaN-padded
// past the history, truncated to the shortest array so that equal length
// and index alignment hold at every stage.
func TrendRegression(x, y *timeseries.Series, method string, opts Options) (*TrendResult, error) {
	var strategy func(*timeseries.Series, *timeseries.Series, Options) (*Result, error)
	switch method {
	case "linear":
		strategy = Linear
	case "polynomial":
		strategy = Polynomial
	case "lowess":
		strategy = Lowess
	case "gaussian":
		strategy = Gaussian
	case "arima":
		strategy = ARIMA
	default:
		return nil, fmt.Errorf("regression: trend method %q: %w", method, ErrUnsupportedMethod)
	}

	nHist := y.Len()
	xHist := x
	if x.Len() > nHist {
		xHist = x.Slice(0, nHist)
	}

	res, err := strategy(xHist, y, opts)
	if err != nil {
		return nil, err
	}

	plot := PlotData{
		X:      res.PlotData.X,
		Actual: res.PlotData.Actual,
		Fitted: res.PlotData.Fitted,
	}

	if x.Len() > nHist {
		futureX := make([]float64, 0, x.Len()-nHist)
		for i := nHist; i < x.Len(); i++ {
			futureX = append(futureX, x.Value(i))
		}
		future, err := res.extendFitted(futureX)
		if err != nil {
			return nil, fmt.Errorf("regression: trend %s: extend: %w", method, err)
		}

		plot.X = x.Values()
		plot.Actual = padNaN(y.Values(), x.Len())
		plot.Fitted = append(append([]float64{}, res.PlotData.Fitted...), future...)
	}

	truncateToShortest(&plot)

	return &TrendResult{
		Method:     method,
		Prediction: res.Prediction,
		Metrics:    res.Metrics,
		PlotData:   plot,
		Strategy:   res,
	}, nil
}

// extendFitted applies the strategy's forward rule to explanatory values
// beyond the fitted range.
func (r *Result) extendFitted(futureX []float64) ([]float64, error) {
	if r.extend == nil {
		return nil, fmt.Errorf("regression: %s result has no forward rule", r.Method)
	}
	return r.extend(futureX)
}

// padNaN copies values and appends NaN up to length n.
func padNaN(values []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, values)
	for i := len(values); i < n; i++ {
		out[i] = math.NaN()
	}
	return out
}

// truncateToShortest trims the plot arrays to their common minimum length.
func truncateToShortest(p *PlotData) {
	m := len(p.X)
	if len(p.Actual) < m {
		m = len(p.Actual)
	}
	if len(p.Fitted) < m {
		m = len(p.Fitted)
	}
	p.X = p.X[:m]
	p.Actual = p.Actual[:m]
	p.Fitted = p.Fitted[:m]
	if p.Std != nil && len(p.Std) > m {
		p.Std = p.Std[:m]
	}
}
