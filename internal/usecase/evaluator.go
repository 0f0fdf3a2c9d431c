package usecase

import (
	"math"

	"UsageCast/internal/domain/models"
	domrepo "UsageCast/internal/domain/repository"
)

func checkLengths(actual, predicted []float64) error {
	if len(actual) != len(predicted) {
		return models.NewInvalidInput("actual has %d values, predicted has %d", len(actual), len(predicted))
	}
	return nil
}

// MeanAbsoluteError returns NaN for empty input.
func MeanAbsoluteError(actual, predicted []float64) (float64, error) {
	if err := checkLengths(actual, predicted); err != nil {
		return 0, err
	}
	if len(actual) == 0 {
		return math.NaN(), nil
	}
	var sum float64
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual)), nil
}

// RootMeanSquaredError returns NaN for empty input.
func RootMeanSquaredError(actual, predicted []float64) (float64, error) {
	if err := checkLengths(actual, predicted); err != nil {
		return 0, err
	}
	if len(actual) == 0 {
		return math.NaN(), nil
	}
	var sum float64
	for i := range actual {
		d := actual[i] - predicted[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(actual))), nil
}

// MeanAbsolutePercentageError is expressed in percent.
// Pairs with a zero actual add nothing to the sum but still count toward the divisor.
func MeanAbsolutePercentageError(actual, predicted []float64) (float64, error) {
	if err := checkLengths(actual, predicted); err != nil {
		return 0, err
	}
	if len(actual) == 0 {
		return math.NaN(), nil
	}
	var sum float64
	for i := range actual {
		if actual[i] == 0 {
			continue
		}
		sum += math.Abs(actual[i]-predicted[i]) / actual[i]
	}
	return sum / float64(len(actual)) * 100, nil
}

// NaiveBaseline repeats the last history value steps times.
// An empty history yields NaN values.
func NaiveBaseline(history []float64, steps int) []float64 {
	if steps <= 0 {
		return []float64{}
	}
	last := math.NaN()
	if len(history) > 0 {
		last = history[len(history)-1]
	}
	out := make([]float64, steps)
	for i := range out {
		out[i] = last
	}
	return out
}

// ComputeMetrics evaluates all three metrics for one predictor.
func ComputeMetrics(actual, predicted []float64) (models.ErrorMetrics, error) {
	mae, err := MeanAbsoluteError(actual, predicted)
	if err != nil {
		return models.ErrorMetrics{}, err
	}
	rmse, err := RootMeanSquaredError(actual, predicted)
	if err != nil {
		return models.ErrorMetrics{}, err
	}
	mape, err := MeanAbsolutePercentageError(actual, predicted)
	if err != nil {
		return models.ErrorMetrics{}, err
	}
	return models.ErrorMetrics{MAE: mae, RMSE: rmse, MAPE: mape}, nil
}

// Evaluator scores a forecast against actuals and the naive baseline.
type Evaluator struct {
	metrics domrepo.Metrics
}

func NewEvaluator(metrics domrepo.Metrics) *Evaluator {
	return &Evaluator{metrics: metrics}
}

func (e *Evaluator) Compare(history, actual, forecast []float64) (*models.Evaluation, error) {
	model, err := ComputeMetrics(actual, forecast)
	if err != nil {
		return nil, err
	}
	baseline := NaiveBaseline(history, len(actual))
	base, err := ComputeMetrics(actual, baseline)
	if err != nil {
		return nil, err
	}

	ev := &models.Evaluation{
		Points:   len(actual),
		Model:    model,
		Baseline: base,
	}
	if len(baseline) > 0 {
		ev.BaselineValue = baseline[0]
	} else if len(history) > 0 {
		ev.BaselineValue = history[len(history)-1]
	}

	e.metrics.RecordEvaluation("model", model)
	e.metrics.RecordEvaluation("baseline", base)
	return ev, nil
}
