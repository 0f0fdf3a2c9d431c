package service

import (
	"context"

	"UsageCast/internal/domain/models"
)

// ModelBackend fits a statistical model to a numeric series.
// Implementations are opaque to the pipeline; only this contract is relied upon.
type ModelBackend interface {
	Name() string
	Fit(ctx context.Context, values []float64, cfg models.ModelConfig) (FittedModel, error)
}

// FittedModel produces forecasts for the series it was fitted on.
// Both returned slices have length steps and are indexed by increasing future offset.
type FittedModel interface {
	Predict(ctx context.Context, steps int) (predictions, errEstimates []float64, err error)
}
