package usecase

import (
	"context"
	"time"

	"UsageCast/internal/domain/models"
	domrepo "UsageCast/internal/domain/repository"
	"UsageCast/pkg/logger"
)

// RunParams are the explicit inputs of one forecast run.
type RunParams struct {
	TrainPath      string
	TestPath       string
	Horizon        int
	Seasonal       bool
	SeasonalPeriod int
}

// Pipeline wires the loader, orchestrator and evaluator into end-to-end runs.
type Pipeline struct {
	source       domrepo.SeriesSource
	aggregator   *DailyAggregator
	orchestrator *ForecastOrchestrator
	evaluator    *Evaluator
	log          *logger.Logger
}

func NewPipeline(source domrepo.SeriesSource, aggregator *DailyAggregator, orchestrator *ForecastOrchestrator, evaluator *Evaluator, log *logger.Logger) *Pipeline {
	return &Pipeline{
		source:       source,
		aggregator:   aggregator,
		orchestrator: orchestrator,
		evaluator:    evaluator,
		log:          log,
	}
}

// RunForecast loads train and test strictly, forecasts Horizon steps and scores the
// forecast against the test values.
func (p *Pipeline) RunForecast(ctx context.Context, params RunParams) (*models.RunReport, error) {
	start := time.Now()

	train, err := p.source.Load(ctx, params.TrainPath)
	if err != nil {
		return nil, err
	}
	test, err := p.source.Load(ctx, params.TestPath)
	if err != nil {
		return nil, err
	}
	if len(test) != params.Horizon {
		return nil, models.NewInvalidInput("test set has %d observations, horizon is %d", len(test), params.Horizon)
	}

	result, err := p.orchestrator.Forecast(ctx, train, params.Horizon, ForecastOptions{
		Seasonal:       params.Seasonal,
		SeasonalPeriod: params.SeasonalPeriod,
	})
	if err != nil {
		return nil, err
	}

	eval, err := p.evaluator.Compare(train.Values(), test.Values(), result.Predictions())
	if err != nil {
		return nil, err
	}

	p.log.Info("forecast run finished",
		logger.String("train", params.TrainPath),
		logger.String("test", params.TestPath),
		logger.Int("horizon", params.Horizon),
		logger.Float("model_mae", eval.Model.MAE),
		logger.Float("baseline_mae", eval.Baseline.MAE),
		logger.Duration("elapsed", time.Since(start)),
	)
	return &models.RunReport{Result: result, Actual: test, Evaluation: eval}, nil
}

// Aggregate runs the daily aggregation from in to out.
func (p *Pipeline) Aggregate(ctx context.Context, in, out string) (*models.AggregateReport, error) {
	return p.aggregator.AggregateByDay(ctx, in, out)
}
