package smooth

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// robustIters is the number of residual-based reweighting passes applied
// after the initial fit.
const robustIters = 3

// Lowess fits a locally weighted scatterplot smoother to (x, y) and returns
// the smoothed curve as an interpolator. frac is the fraction of points used
// in each local regression window; each window is fit with tricube-weighted
// linear least squares, then refit with bisquare robustness weights to
// downweight outliers.
func Lowess(x, y []float64, frac float64) (*Interp, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("smooth: lowess lengths %d vs %d", len(x), len(y))
	}
	n := len(x)
	if n < 2 {
		return nil, fmt.Errorf("smooth: lowess needs at least 2 points, have %d", n)
	}
	if frac <= 0 || frac > 1 {
		return nil, fmt.Errorf("smooth: lowess fraction %g outside (0, 1]", frac)
	}

	type point struct{ x, y float64 }
	pts := make([]point, n)
	for i := range x {
		pts[i] = point{x[i], y[i]}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].x < pts[j].x })

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range pts {
		xs[i] = p.x
		ys[i] = p.y
	}

	k := int(math.Ceil(frac * float64(n)))
	if k < 2 {
		k = 2
	}
	if k > n {
		k = n
	}

	scale := 0.0
	for _, v := range ys {
		if a := math.Abs(v); a > scale {
			scale = a
		}
	}

	delta := make([]float64, n)
	for i := range delta {
		delta[i] = 1
	}

	fitted := make([]float64, n)
	for iter := 0; ; iter++ {
		for i := range xs {
			fitted[i] = localFit(xs, ys, delta, i, k)
		}
		if iter == robustIters {
			break
		}

		absRes := make([]float64, n)
		for i := range ys {
			absRes[i] = math.Abs(ys[i] - fitted[i])
		}
		s, err := stats.Median(absRes)
		if err != nil || s <= 1e-12*scale {
			break
		}
		for i := range delta {
			u := (ys[i] - fitted[i]) / (6 * s)
			if u <= -1 || u >= 1 {
				delta[i] = 0
			} else {
				d := 1 - u*u
				delta[i] = d * d
			}
		}
	}

	return NewInterp(xs, fitted)
}

// localFit runs one tricube-weighted linear regression centered on index i,
// over the window of the k nearest neighbors by x distance.
func localFit(xs, ys, delta []float64, i, k int) float64 {
	n := len(xs)
	lo, hi := i, i
	for hi-lo+1 < k {
		switch {
		case lo == 0:
			hi++
		case hi == n-1:
			lo--
		case xs[i]-xs[lo-1] <= xs[hi+1]-xs[i]:
			lo--
		default:
			hi++
		}
	}

	h := xs[i] - xs[lo]
	if d := xs[hi] - xs[i]; d > h {
		h = d
	}

	sw, swx, swy := 0.0, 0.0, 0.0
	wts := make([]float64, hi-lo+1)
	for j := lo; j <= hi; j++ {
		w := delta[j]
		if h > 0 {
			u := math.Abs(xs[j]-xs[i]) / h
			if u >= 1 {
				w = 0
			} else {
				t := 1 - u*u*u
				w *= t * t * t
			}
		}
		wts[j-lo] = w
		sw += w
		swx += w * xs[j]
		swy += w * ys[j]
	}

	if sw <= 0 {
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += ys[j]
		}
		return sum / float64(hi-lo+1)
	}

	xbar := swx / sw
	ybar := swy / sw
	sxx, sxy := 0.0, 0.0
	for j := lo; j <= hi; j++ {
		dx := xs[j] - xbar
		sxx += wts[j-lo] * dx * dx
		sxy += wts[j-lo] * dx * (ys[j] - ybar)
	}

	if sxx <= 0 {
		return ybar
	}
	return ybar + sxy/sxx*(xs[i]-xbar)
}
