package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sadityag/tenure-tracker/stats"
	"github.com/sadityag/tenure-tracker/timeseries"
)

// Polynomial expands the lag-aligned explanatory values into a polynomial
// basis of the configured degree and fits ordinary least squares on the
// expanded design. A missing (NaN) horizon value yields a NaN prediction,
// not an error.
func Polynomial(x, y *timeseries.Series, opts Options) (*Result, error) {
	if opts.Degree < 1 {
		return nil, fmt.Errorf("regression: polynomial degree %d: %w", opts.Degree, stats.ErrInvalidArgument)
	}
	lag, xa, ya, err := alignAtBestLag(x, y, opts)
	if err != nil {
		return nil, fmt.Errorf("regression: polynomial: %w", err)
	}
	xs, ys := dropNaNPairs(xa.Values(), ya.Values())
	if len(xs) < opts.Degree+1 {
		return nil, fmt.Errorf("regression: polynomial degree %d needs %d points, have %d: %w",
			opts.Degree, opts.Degree+1, len(xs), stats.ErrInsufficientData)
	}

	coeffs, err := polyFit(xs, ys, opts.Degree)
	if err != nil {
		return nil, fmt.Errorf("regression: polynomial: %w", err)
	}
	fitted := polyEval(coeffs, xs)

	res := newResult("polynomial", lag)
	res.Prediction = polyEvalOne(coeffs, horizonX(x, opts.HorizonYear))
	res.PlotData = PlotData{X: xs, Actual: ys, Fitted: fitted}

	res.Metrics, err = stats.Evaluate(ys, fitted, opts.Degree+1)
	if err != nil {
		return nil, fmt.Errorf("regression: polynomial: %w", err)
	}

	res.extend = func(futureX []float64) ([]float64, error) {
		return polyEval(coeffs, futureX), nil
	}

	if opts.DoCV {
		degree := opts.Degree
		fit := func(trainX, trainY []float64) (Predictor, error) {
			cx, cy := dropNaNPairs(trainX, trainY)
			if len(cx) < degree+1 {
				return nil, fmt.Errorf("regression: polynomial fold needs %d points, have %d", degree+1, len(cx))
			}
			c, err := polyFit(cx, cy, degree)
			if err != nil {
				return nil, err
			}
			return PredictorFunc(func(xs []float64) ([]float64, error) {
				return polyEval(c, xs), nil
			}), nil
		}
		var diags []string
		res.CVScore, res.CVError, diags = CrossValidate(xa.Values(), ya.Values(), fit, opts.KFolds, opts.Logger)
		res.Diagnostics = append(res.Diagnostics, diags...)
	}
	return res, nil
}

// polyFit solves the least-squares polynomial of the given degree through
// (xs, ys) via the Vandermonde design matrix. The returned coefficients are
// ordered constant first.
func polyFit(xs, ys []float64, degree int) ([]float64, error) {
	n := len(xs)
	v := mat.NewDense(n, degree+1, nil)
	for i, x := range xs {
		p := 1.0
		for j := 0; j <= degree; j++ {
			v.Set(i, j, p)
			p *= x
		}
	}

	var beta mat.VecDense
	if err := beta.SolveVec(v, mat.NewVecDense(n, ys)); err != nil {
		return nil, fmt.Errorf("regression: polynomial solve: %w", err)
	}

	coeffs := make([]float64, degree+1)
	for j := range coeffs {
		coeffs[j] = beta.AtVec(j)
	}
	return coeffs, nil
}

func polyEvalOne(coeffs []float64, x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	// Horner evaluation, highest order first.
	y := 0.0
	for j := len(coeffs) - 1; j >= 0; j-- {
		y = y*x + coeffs[j]
	}
	return y
}

func polyEval(coeffs []float64, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = polyEvalOne(coeffs, x)
	}
	return out
}

// dropNaNPairs keeps only positions where both values are non-NaN.
func dropNaNPairs(xs, ys []float64) ([]float64, []float64) {
	cx := make([]float64, 0, len(xs))
	cy := make([]float64, 0, len(ys))
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		cx = append(cx, xs[i])
		cy = append(cy, ys[i])
	}
	return cx, cy
}
