package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"UsageCast/internal/domain/models"
)

func TestWriteReport(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	history := models.Series{
		{Timestamp: start, Value: 1},
		{Timestamp: start.AddDate(0, 0, 1), Value: 2},
		{Timestamp: start.AddDate(0, 0, 2), Value: 3},
	}
	report := &models.RunReport{
		Result: &models.ForecastResult{
			Backend:  "arima",
			Config:   models.DefaultModelConfig(),
			Interval: 24 * time.Hour,
			History:  history,
			Forecast: []models.ForecastPoint{{Timestamp: start.AddDate(0, 0, 3), Predicted: 4.5, ErrorEstimate: 0.25}},
		},
		Actual:     models.Series{{Timestamp: start.AddDate(0, 0, 3), Value: 4}},
		Evaluation: &models.Evaluation{Points: 1, BaselineValue: 3, Model: models.ErrorMetrics{MAE: 0.5, RMSE: 0.5, MAPE: 12.5}, Baseline: models.ErrorMetrics{MAE: 1, RMSE: 1, MAPE: 25}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, report, 2))

	out := buf.String()
	assert.Contains(t, out, "History (last 2 of 3 points)")
	assert.NotContains(t, out, "2024-01-01 00:00:00")
	assert.Contains(t, out, "4.5000")
	assert.Contains(t, out, "0.2500")
	assert.Contains(t, out, "baseline repeats 3.0000")
	assert.Contains(t, out, "12.5000")
}
