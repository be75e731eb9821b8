package regression

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/sadityag/tenure-tracker/stats"
)

// Predictor is the single prediction contract every strategy wraps its
// fitted model into for cross-validation. Strategy-specific shapes (closed
// form evaluation, interpolation against a smoothed curve, multi-step
// forecasting) are adapted once, inside each strategy's fit function, and
// never reach the cross-validator.
type Predictor interface {
	Predict(xs []float64) ([]float64, error)
}

// PredictorFunc adapts a plain function to the Predictor interface.
type PredictorFunc func(xs []float64) ([]float64, error)

// Predict calls f.
func (f PredictorFunc) Predict(xs []float64) ([]float64, error) { return f(xs) }

// FitFunc fits a model on a training window and returns its predictor.
type FitFunc func(trainX, trainY []float64) (Predictor, error)

// CrossValidate scores a model with expanding-window, forward-chaining
// k-fold validation: the validation window always follows the training
// window in time order, with no shuffling and no look-ahead. The
// validation window size is max(2, n/(kFolds+1)) and the first training
// window takes whatever precedes the first validation block.
//
// A fold whose fit or prediction fails, or whose R2 comes out NaN, is
// skipped with a warning and a diagnostic entry, never raised. When every
// fold fails, or the data cannot accommodate the requested folds at all,
// the result degrades to (NaN, NaN). Otherwise the mean and population
// standard deviation of the fold scores are returned.
func CrossValidate(x, y []float64, fit FitFunc, kFolds int, log zerolog.Logger) (mean, spread float64, diags []string) {
	n := len(x)
	valSize := n / (kFolds + 1)
	if valSize < 2 {
		valSize = 2
	}
	firstTrain := n - kFolds*valSize
	if firstTrain <= 0 {
		d := fmt.Sprintf("cross-validation: %d points cannot hold %d folds of size %d", n, kFolds, valSize)
		log.Warn().Int("n", n).Int("folds", kFolds).Msg(d)
		return math.NaN(), math.NaN(), []string{d}
	}

	var scores []float64
	for fold := 0; fold < kFolds; fold++ {
		trainEnd := firstTrain + fold*valSize
		valEnd := trainEnd + valSize

		model, err := fit(x[:trainEnd], y[:trainEnd])
		if err != nil {
			d := fmt.Sprintf("cross-validation fold %d: fit: %v", fold, err)
			log.Warn().Int("fold", fold).Err(err).Msg("cross-validation fold skipped")
			diags = append(diags, d)
			continue
		}

		pred, err := model.Predict(x[trainEnd:valEnd])
		if err != nil {
			d := fmt.Sprintf("cross-validation fold %d: predict: %v", fold, err)
			log.Warn().Int("fold", fold).Err(err).Msg("cross-validation fold skipped")
			diags = append(diags, d)
			continue
		}

		score, err := foldR2(y[trainEnd:valEnd], pred)
		if err != nil || math.IsNaN(score) {
			d := fmt.Sprintf("cross-validation fold %d: undefined score", fold)
			log.Warn().Int("fold", fold).Msg("cross-validation fold skipped")
			diags = append(diags, d)
			continue
		}
		scores = append(scores, score)
	}

	if len(scores) == 0 {
		return math.NaN(), math.NaN(), diags
	}
	return stat.Mean(scores, nil), stat.PopStdDev(scores, nil), diags
}

// foldR2 scores one validation window with the library-wide R2 policy
// (zero total sum of squares yields 0, not an error).
func foldR2(yTrue, yPred []float64) (float64, error) {
	m, err := stats.Evaluate(yTrue, yPred, 1)
	if err != nil {
		return math.NaN(), err
	}
	return m.R2, nil
}
