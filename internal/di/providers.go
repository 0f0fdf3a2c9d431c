package di

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"UsageCast/internal/domain/repository"
	"UsageCast/internal/domain/service"
	"UsageCast/internal/handler/api"
	internalrepo "UsageCast/internal/repository"
	"UsageCast/internal/service/ratelimit"
	"UsageCast/internal/services/model"
	"UsageCast/internal/usecase"
	"UsageCast/pkg/config"
	xhttp "UsageCast/pkg/http"
	"UsageCast/pkg/logger"
	"UsageCast/pkg/metrics"
	"UsageCast/pkg/server"
)

// ProvideLogger builds the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideRegistry creates a registry carrying the Go runtime and process collectors.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.New(reg)
}

// ProvideSeriesLoader creates the loader using the configured location for zone-less timestamps.
func ProvideSeriesLoader(cfg *config.Config, log *logger.Logger, m repository.Metrics) *internalrepo.SeriesLoader {
	return internalrepo.NewSeriesLoader(log, m, internalrepo.WithLocation(cfg.Location()))
}

// ProvideModelBackend selects the model backend from config.
func ProvideModelBackend(cfg *config.Config, log *logger.Logger) (service.ModelBackend, error) {
	return model.NewBackend(cfg, log)
}

// ProvideRateLimiter builds the per-client limiter for /api routes.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Server.RateLimitBurst, cfg.Server.RateLimitRPS)
}

// ProvideHTTPServer creates the Echo server for the API.
func ProvideHTTPServer(cfg *config.Config, h *api.UsageEchoHandler, log *logger.Logger, reg *prometheus.Registry) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(h, log,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithBodyLimit(cfg.Server.BodyLimit),
		xhttp.WithMetrics(metricsPath, reg, reg),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, log *logger.Logger, srv *xhttp.Server) *server.App {
	return server.New(cfg, log, srv)
}

// CoreSet covers everything the CLI batch commands need.
var CoreSet = wire.NewSet(
	ProvideLogger,
	ProvideRegistry,
	ProvideMetrics,
	ProvideSeriesLoader,
	wire.Bind(new(repository.SeriesSource), new(*internalrepo.SeriesLoader)),
	internalrepo.NewDailyWriter,
	wire.Bind(new(repository.BucketSink), new(*internalrepo.DailyWriter)),
	ProvideModelBackend,
	usecase.NewDailyAggregator,
	usecase.NewForecastOrchestrator,
	usecase.NewEvaluator,
	usecase.NewPipeline,
)

// ServerSet adds the HTTP surface on top of CoreSet.
var ServerSet = wire.NewSet(
	CoreSet,
	ProvideRateLimiter,
	api.NewUsageEchoHandler,
	ProvideHTTPServer,
	ProvideApp,
)
