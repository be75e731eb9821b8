package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Metrics bundles the standardized goodness-of-fit measures reported by every
// regression method.
type Metrics struct {
	R2   float64
	RMSE float64
	MAE  float64
	AIC  float64
}

// Evaluate computes the metrics bundle for predictions against actuals.
// nParams is the model parameter count entering the information criterion.
//
// R2 is defined as 0 when the total sum of squares is exactly zero; this is
// the documented degenerate-case policy, not a numerical accident. The
// information criterion is n*ln(RSS/n) + 2k and goes to -Inf as RSS
// approaches zero; callers tolerate that rather than this function hiding it.
func Evaluate(yTrue, yPred []float64, nParams int) (Metrics, error) {
	if len(yTrue) != len(yPred) {
		return Metrics{}, fmt.Errorf("stats: length mismatch %d vs %d: %w", len(yTrue), len(yPred), ErrInvalidArgument)
	}
	n := len(yTrue)
	if n < 2 {
		return Metrics{}, fmt.Errorf("stats: need at least 2 points, have %d: %w", n, ErrInsufficientData)
	}

	residuals := make([]float64, n)
	floats.SubTo(residuals, yTrue, yPred)
	rss := floats.Dot(residuals, residuals)

	mean := stat.Mean(yTrue, nil)
	tss := 0.0
	for _, v := range yTrue {
		d := v - mean
		tss += d * d
	}

	r2 := 0.0
	if tss != 0 {
		r2 = 1 - rss/tss
	}

	mae := 0.0
	for _, r := range residuals {
		mae += math.Abs(r)
	}
	mae /= float64(n)

	nf := float64(n)
	return Metrics{
		R2:   r2,
		RMSE: math.Sqrt(rss / nf),
		MAE:  mae,
		AIC:  nf*math.Log(rss/nf) + 2*float64(nParams),
	}, nil
}

// NonParametricAIC computes the pseudo information criterion for smoothing
// models, substituting a fractional effective-parameter count for an exact
// one. It agrees with Evaluate's AIC when effectiveParams equals the integer
// parameter count.
func NonParametricAIC(yTrue, yPred []float64, effectiveParams float64) float64 {
	n := len(yTrue)
	residuals := make([]float64, n)
	floats.SubTo(residuals, yTrue, yPred)
	rss := floats.Dot(residuals, residuals)

	nf := float64(n)
	return nf*math.Log(rss/nf) + 2*effectiveParams
}
