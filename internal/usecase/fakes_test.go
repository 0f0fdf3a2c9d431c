package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"UsageCast/internal/domain/models"
	domsvc "UsageCast/internal/domain/service"
	"UsageCast/pkg/metrics"
)

// fakeBackend predicts the last fitted value plus an offset per step.
type fakeBackend struct {
	fitCalls int
	gotCfg   models.ModelConfig
	gotLen   int
	fitErr   error
	short    bool
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) Fit(_ context.Context, values []float64, cfg models.ModelConfig) (domsvc.FittedModel, error) {
	b.fitCalls++
	b.gotCfg = cfg
	b.gotLen = len(values)
	if b.fitErr != nil {
		return nil, b.fitErr
	}
	return &fakeModel{last: values[len(values)-1], short: b.short}, nil
}

type fakeModel struct {
	last  float64
	short bool
}

func (m *fakeModel) Predict(_ context.Context, steps int) ([]float64, []float64, error) {
	if m.short {
		steps--
	}
	preds := make([]float64, steps)
	errs := make([]float64, steps)
	for i := range preds {
		preds[i] = m.last + float64(i+1)
		errs[i] = float64(i + 1)
	}
	return preds, errs, nil
}

var errBoom = errors.New("boom")

func testMetrics() *metrics.Recorder {
	return metrics.New(prometheus.NewRegistry())
}

func dailySeries(n int, start time.Time) models.Series {
	s := make(models.Series, n)
	for i := range s {
		s[i] = models.Observation{Timestamp: start.AddDate(0, 0, i), Value: float64(100 + i)}
	}
	return s
}
