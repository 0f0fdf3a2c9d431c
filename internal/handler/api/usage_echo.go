package api

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"UsageCast/internal/domain/models"
	"UsageCast/internal/service/ratelimit"
	"UsageCast/internal/usecase"
	xhttp "UsageCast/pkg/http"
	xlogger "UsageCast/pkg/logger"
)

// UsageEchoHandler exposes forecasting, evaluation and aggregation over HTTP.
type UsageEchoHandler struct {
	logger       *xlogger.Logger
	orchestrator *usecase.ForecastOrchestrator
	evaluator    *usecase.Evaluator
	aggregator   *usecase.DailyAggregator
	rl           *ratelimit.Limiter
}

func NewUsageEchoHandler(logger *xlogger.Logger, orchestrator *usecase.ForecastOrchestrator, evaluator *usecase.Evaluator, aggregator *usecase.DailyAggregator, rl *ratelimit.Limiter) *UsageEchoHandler {
	return &UsageEchoHandler{
		logger:       logger,
		orchestrator: orchestrator,
		evaluator:    evaluator,
		aggregator:   aggregator,
		rl:           rl,
	}
}

func (h *UsageEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api", h.rateLimit)
	g.POST("/forecast", h.Forecast)
	g.POST("/evaluate", h.Evaluate)
	g.POST("/aggregate", h.Aggregate)
}

func (h *UsageEchoHandler) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.rl.Allow(c.RealIP()) {
			h.logger.Warn("api rate limited",
				xlogger.String("remote", c.RealIP()),
				xlogger.String("route", c.Path()),
			)
			return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_RATE_LIMITED", "", "rate limited", http.StatusTooManyRequests))
		}
		return next(c)
	}
}

func (h *UsageEchoHandler) Forecast(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	series := models.Series(req.Observations)
	res, err := h.orchestrator.Forecast(c.Request().Context(), series, req.Steps, usecase.ForecastOptions{
		Seasonal:       req.Seasonal,
		SeasonalPeriod: req.SeasonalPeriod,
	})
	if err != nil {
		return h.fail(c, "forecast", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *UsageEchoHandler) Evaluate(c echo.Context) error {
	req := &models.EvaluateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.evaluator.Compare(req.History, req.Actual, req.Predicted)
	if err != nil {
		return h.fail(c, "evaluate", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *UsageEchoHandler) Aggregate(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("read body: %v", err))
	}

	report, csv, err := h.aggregator.AggregateContent(c.Request().Context(), string(body))
	if err != nil {
		return h.fail(c, "aggregate", err)
	}
	return xhttp.CSVResponse(c, csv, report.Skipped)
}

func (h *UsageEchoHandler) fail(c echo.Context, op string, err error) error {
	appErr := toAppError(err)
	if appErr.Status >= 500 {
		h.logger.Error(op+" usecase error", xlogger.Error(err))
	} else {
		h.logger.Debug(op+" rejected", xlogger.Error(err))
	}
	return xhttp.AppErrorResponse(c, appErr)
}
