package smooth

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// Interp evaluates a piecewise-linear curve through a set of points.
// Queries beyond the fitted range hold the nearest endpoint value flat
// rather than extrapolating, and NaN queries pass through as NaN.
type Interp struct {
	xs []float64
	ys []float64
	pl interp.PiecewiseLinear
}

// NewInterp builds an interpolator over the given points. The points are
// sorted by x and exact duplicate x values are collapsed to their mean y.
func NewInterp(xs, ys []float64) (*Interp, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("smooth: interp lengths %d vs %d", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("smooth: interp needs at least one point")
	}

	type point struct{ x, y float64 }
	pts := make([]point, len(xs))
	for i := range xs {
		pts[i] = point{xs[i], ys[i]}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].x < pts[j].x })

	cx := make([]float64, 0, len(pts))
	cy := make([]float64, 0, len(pts))
	for i := 0; i < len(pts); {
		j := i
		sum := 0.0
		for j < len(pts) && pts[j].x == pts[i].x {
			sum += pts[j].y
			j++
		}
		cx = append(cx, pts[i].x)
		cy = append(cy, sum/float64(j-i))
		i = j
	}

	in := &Interp{xs: cx, ys: cy}
	if len(cx) >= 2 {
		if err := in.pl.Fit(cx, cy); err != nil {
			return nil, fmt.Errorf("smooth: interp fit: %w", err)
		}
	}
	return in, nil
}

// At evaluates the curve at x.
func (in *Interp) At(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	n := len(in.xs)
	if n == 1 || x <= in.xs[0] {
		return in.ys[0]
	}
	if x >= in.xs[n-1] {
		return in.ys[n-1]
	}
	return in.pl.Predict(x)
}

// Eval evaluates the curve at every x in xs.
func (in *Interp) Eval(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = in.At(x)
	}
	return out
}
