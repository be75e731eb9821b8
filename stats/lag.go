package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sadityag/tenure-tracker/timeseries"
)

// MaxLag scans lags 0..maxLagYears and returns the lag that maximizes the
// absolute Pearson correlation between X shifted forward and Y, together with
// the signed correlation at that lag and the metrics of the shifted X treated
// as a one-parameter predictor of Y. Ties break toward the smallest lag.
//
// Correlation is computed on the raw aligned values; Pearson is invariant to
// affine rescaling of either series, so no separate standardization pass is
// needed. Lags whose aligned pair has fewer than two points, or whose
// correlation is NaN, are skipped. When no lag yields a valid correlation the
// degenerate result (0, 0, metrics of the cleaned pair) is returned.
func MaxLag(x, y *timeseries.Series, maxLagYears int) (int, float64, Metrics, error) {
	if maxLagYears < 0 {
		return 0, 0, Metrics{}, fmt.Errorf("stats: max lag years %d: %w", maxLagYears, ErrInvalidArgument)
	}

	xc, yc := timeseries.Clean(x, y)
	if xc.Len() < 2 {
		return 0, 0, Metrics{}, fmt.Errorf("stats: %d jointly valid points: %w", xc.Len(), ErrInsufficientData)
	}

	bestLag := -1
	bestCorr := 0.0
	for lag := 0; lag <= maxLagYears; lag++ {
		xa, ya := timeseries.AlignWithLag(xc, yc, lag)
		if xa.Len() < 2 {
			continue
		}
		corr := stat.Correlation(xa.Values(), ya.Values(), nil)
		if math.IsNaN(corr) {
			continue
		}
		if bestLag < 0 || math.Abs(corr) > math.Abs(bestCorr) {
			bestLag = lag
			bestCorr = corr
		}
	}

	if bestLag < 0 {
		m, err := Evaluate(yc.Values(), xc.Values(), 1)
		if err != nil {
			return 0, 0, Metrics{}, err
		}
		return 0, 0, m, nil
	}

	xl, ya := timeseries.AlignWithLag(x, y, bestLag)
	m, err := Evaluate(ya.Values(), xl.Values(), 1)
	if err != nil {
		return 0, 0, Metrics{}, err
	}
	return bestLag, bestCorr, m, nil
}
