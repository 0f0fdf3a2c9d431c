package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"UsageCast/internal/domain/models"
	domrepo "UsageCast/internal/domain/repository"
	domsvc "UsageCast/internal/domain/service"
	"UsageCast/pkg/logger"
)

const (
	// MinObservations is the shortest series the orchestrator will hand to a model.
	MinObservations = 10
	// DefaultInterval is the cadence assumed when it cannot be inferred.
	DefaultInterval = time.Hour

	cadenceWindow = 10
)

// ForecastOptions carries caller preferences that never reach the model.
type ForecastOptions struct {
	Seasonal       bool
	SeasonalPeriod int
}

// ForecastOrchestrator validates a series, runs the model backend and
// projects timestamps for the predicted values.
type ForecastOrchestrator struct {
	backend domsvc.ModelBackend
	log     *logger.Logger
	metrics domrepo.Metrics
}

func NewForecastOrchestrator(backend domsvc.ModelBackend, log *logger.Logger, metrics domrepo.Metrics) *ForecastOrchestrator {
	return &ForecastOrchestrator{backend: backend, log: log, metrics: metrics}
}

func (o *ForecastOrchestrator) Forecast(ctx context.Context, series models.Series, steps int, opts ForecastOptions) (*models.ForecastResult, error) {
	if len(series) < MinObservations {
		o.metrics.RecordForecast(o.backend.Name(), "insufficient_data")
		return nil, &models.InsufficientDataError{Have: len(series), Need: MinObservations}
	}
	if steps < 1 {
		o.metrics.RecordForecast(o.backend.Name(), "invalid_input")
		return nil, models.NewInvalidInput("steps must be at least 1, got %d", steps)
	}
	if opts.Seasonal || opts.SeasonalPeriod != 0 {
		o.log.Debug("seasonal options ignored",
			logger.Bool("seasonal", opts.Seasonal),
			logger.Int("seasonal_period", opts.SeasonalPeriod),
		)
	}

	start := time.Now()
	defer func() { o.metrics.RecordLatency("forecast", time.Since(start).Seconds()) }()

	series = sortedCopy(series)
	cfg := models.DefaultModelConfig()
	preds, errs, err := o.run(ctx, series.Values(), cfg, steps)
	if err != nil {
		o.metrics.RecordForecast(o.backend.Name(), "error")
		o.log.Error("forecast failed",
			logger.String("backend", o.backend.Name()),
			logger.Int("observations", len(series)),
			logger.Error(err),
		)
		return nil, err
	}

	interval := InferInterval(series)
	last, _ := series.Last()
	points := make([]models.ForecastPoint, steps)
	for i := range points {
		points[i] = models.ForecastPoint{
			Timestamp:     last.Timestamp.Add(interval * time.Duration(i+1)),
			Predicted:     preds[i],
			ErrorEstimate: errs[i],
		}
	}

	o.metrics.RecordForecast(o.backend.Name(), "ok")
	o.log.Info("forecast complete",
		logger.String("backend", o.backend.Name()),
		logger.Int("observations", len(series)),
		logger.Int("steps", steps),
		logger.Duration("interval", interval),
	)
	return &models.ForecastResult{
		Backend:  o.backend.Name(),
		Config:   cfg,
		Interval: interval,
		History:  series,
		Forecast: points,
	}, nil
}

func (o *ForecastOrchestrator) run(ctx context.Context, values []float64, cfg models.ModelConfig, steps int) ([]float64, []float64, error) {
	fitted, err := o.backend.Fit(ctx, values, cfg)
	if err != nil {
		return nil, nil, o.wrap(err)
	}
	preds, errs, err := fitted.Predict(ctx, steps)
	if err != nil {
		return nil, nil, o.wrap(err)
	}
	if len(preds) != steps || len(errs) != steps {
		return nil, nil, &models.ModelFittingError{
			Backend: o.backend.Name(),
			Err:     fmt.Errorf("backend returned %d predictions and %d error estimates for %d steps", len(preds), len(errs), steps),
		}
	}
	return preds, errs, nil
}

// wrap leaves typed domain errors and context cancellation untouched.
func (o *ForecastOrchestrator) wrap(err error) error {
	var (
		fitErr     *models.ModelFittingError
		invalidErr *models.InvalidInputError
		dataErr    *models.InsufficientDataError
	)
	switch {
	case errors.As(err, &fitErr), errors.As(err, &invalidErr), errors.As(err, &dataErr):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return &models.ModelFittingError{Backend: o.backend.Name(), Err: err}
}

// sortedCopy returns series ordered by timestamp, leaving the caller's slice untouched.
func sortedCopy(series models.Series) models.Series {
	if sort.SliceIsSorted(series, func(i, j int) bool { return series[i].Timestamp.Before(series[j].Timestamp) }) {
		return series
	}
	out := make(models.Series, len(series))
	copy(out, series)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

// InferInterval estimates the series cadence from the mean gap of its first points,
// rounded to whole seconds.
func InferInterval(series models.Series) time.Duration {
	if len(series) < 2 {
		return DefaultInterval
	}
	n := len(series)
	if n > cadenceWindow {
		n = cadenceWindow
	}
	var total float64
	for i := 1; i < n; i++ {
		total += series[i].Timestamp.Sub(series[i-1].Timestamp).Seconds()
	}
	mean := total / float64(n-1)
	return time.Duration(math.Round(mean)) * time.Second
}
