// Package smooth provides LOWESS scatterplot smoothing and piecewise-linear
// interpolation with flat extrapolation.
//
//	curve, err := smooth.Lowess(x, y, 0.3)
//	if err != nil {
//	    return err
//	}
//	fitted := curve.Eval(x)
//	ahead := curve.At(nextX)
package smooth
