package models

import "time"

// Order is a non-seasonal (p,d,q) order.
type Order struct {
	P int `json:"p"`
	D int `json:"d"`
	Q int `json:"q"`
}

// SeasonalOrder is a seasonal (P,D,Q,m) order.
type SeasonalOrder struct {
	P int `json:"p"`
	D int `json:"d"`
	Q int `json:"q"`
	M int `json:"m"`
}

// ModelConfig is the hyper-parameter set handed to a model backend.
type ModelConfig struct {
	Order     Order         `json:"order"`
	Seasonal  SeasonalOrder `json:"seasonal_order"`
	AutoOrder bool          `json:"auto_order"`
}

// DefaultModelConfig returns the fixed non-seasonal configuration used for every forecast.
// Seasonal orders are always zero regardless of caller input.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Order:     Order{P: 2, D: 1, Q: 2},
		Seasonal:  SeasonalOrder{},
		AutoOrder: true,
	}
}

// ForecastPoint is one projected value.
type ForecastPoint struct {
	Timestamp     time.Time `json:"timestamp"`
	Predicted     float64   `json:"predicted"`
	ErrorEstimate float64   `json:"error_estimate"`
}

// ForecastResult is the output of a single orchestration call.
type ForecastResult struct {
	Backend  string          `json:"backend"`
	Config   ModelConfig     `json:"config"`
	Interval time.Duration   `json:"interval"`
	History  Series          `json:"history"`
	Forecast []ForecastPoint `json:"forecast"`
}

// Predictions returns the predicted values in forecast order.
func (r *ForecastResult) Predictions() []float64 {
	out := make([]float64, len(r.Forecast))
	for i, p := range r.Forecast {
		out[i] = p.Predicted
	}
	return out
}

// ErrorMetrics groups the three error metrics for one predictor.
type ErrorMetrics struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	MAPE float64 `json:"mape"`
}

// Evaluation compares a model forecast with the naive last-value baseline.
type Evaluation struct {
	Points        int          `json:"points"`
	BaselineValue float64      `json:"baseline_value"`
	Model         ErrorMetrics `json:"model"`
	Baseline      ErrorMetrics `json:"baseline"`
}

// RunReport is the outcome of a full forecast run.
type RunReport struct {
	Result     *ForecastResult `json:"result"`
	Actual     Series          `json:"actual"`
	Evaluation *Evaluation     `json:"evaluation"`
}
