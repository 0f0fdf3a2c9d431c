package model

import (
	"context"
	"fmt"
	"math"

	"UsageCast/internal/domain/models"
	domsvc "UsageCast/internal/domain/service"
	"UsageCast/pkg/logger"
)

// BackendHTTP is the name of the remote model service backend.
const BackendHTTP = "http"

const forecastPath = "/forecast"

type forecastRequest struct {
	Values        []float64 `json:"values"`
	Order         [3]int    `json:"order"`
	SeasonalOrder [4]int    `json:"seasonal_order"`
	AutoOrder     bool      `json:"auto_order"`
	Steps         int       `json:"steps"`
}

type forecastResponse struct {
	Predictions []float64 `json:"predictions"`
	Errors      []float64 `json:"errors"`
}

// HTTPBackend delegates fitting and prediction to a remote model service.
// Fit only validates and captures the series; the service sees it on Predict.
type HTTPBackend struct {
	*HTTPServiceBase
	log *logger.Logger
}

func NewHTTPBackend(base *HTTPServiceBase, log *logger.Logger) *HTTPBackend {
	return &HTTPBackend{HTTPServiceBase: base, log: log}
}

func (b *HTTPBackend) Name() string { return BackendHTTP }

func (b *HTTPBackend) Fit(ctx context.Context, values []float64, cfg models.ModelConfig) (domsvc.FittedModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, models.NewInvalidInput("empty series")
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, models.NewInvalidInput("non-finite value at index %d", i)
		}
	}
	captured := make([]float64, len(values))
	copy(captured, values)
	return &remoteFit{backend: b, values: captured, cfg: cfg}, nil
}

type remoteFit struct {
	backend *HTTPBackend
	values  []float64
	cfg     models.ModelConfig
}

func (f *remoteFit) Predict(ctx context.Context, steps int) ([]float64, []float64, error) {
	if steps < 1 {
		return nil, nil, models.NewInvalidInput("steps must be at least 1, got %d", steps)
	}
	req := forecastRequest{
		Values:        f.values,
		Order:         [3]int{f.cfg.Order.P, f.cfg.Order.D, f.cfg.Order.Q},
		SeasonalOrder: [4]int{f.cfg.Seasonal.P, f.cfg.Seasonal.D, f.cfg.Seasonal.Q, f.cfg.Seasonal.M},
		AutoOrder:     f.cfg.AutoOrder,
		Steps:         steps,
	}

	var resp forecastResponse
	if err := f.backend.PostJSON(ctx, forecastPath, req, &resp); err != nil {
		f.backend.log.Warn("model service call failed",
			logger.String("path", forecastPath),
			logger.Error(err),
		)
		return nil, nil, f.fail(err)
	}

	if len(resp.Predictions) != steps || len(resp.Errors) != steps {
		return nil, nil, f.fail(fmt.Errorf("service returned %d predictions and %d errors for %d steps",
			len(resp.Predictions), len(resp.Errors), steps))
	}
	for i := 0; i < steps; i++ {
		if math.IsNaN(resp.Predictions[i]) || math.IsInf(resp.Predictions[i], 0) {
			return nil, nil, f.fail(fmt.Errorf("non-finite prediction at step %d", i+1))
		}
	}
	return resp.Predictions, resp.Errors, nil
}

func (f *remoteFit) fail(err error) error {
	return &models.ModelFittingError{Backend: BackendHTTP, Err: err}
}

var _ domsvc.ModelBackend = (*HTTPBackend)(nil)
