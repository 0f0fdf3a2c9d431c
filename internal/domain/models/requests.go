package models

type ForecastRequest struct {
	Observations   []Observation `json:"observations" validate:"required"`
	Steps          int           `json:"steps" default:"11" validate:"gte=1,lte=10000"`
	Seasonal       bool          `json:"seasonal"`
	SeasonalPeriod int           `json:"seasonal_period" validate:"gte=0"`
}

type EvaluateRequest struct {
	History   []float64 `json:"history" validate:"required,min=1"`
	Actual    []float64 `json:"actual" validate:"required,min=1"`
	Predicted []float64 `json:"predicted" validate:"required,min=1"`
}
