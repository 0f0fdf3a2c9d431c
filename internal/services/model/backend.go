package model

import (
	"fmt"

	domsvc "UsageCast/internal/domain/service"
	"UsageCast/pkg/config"
	"UsageCast/pkg/logger"
)

// NewBackend selects the model backend named by cfg.Model.Backend.
func NewBackend(cfg *config.Config, log *logger.Logger) (domsvc.ModelBackend, error) {
	switch cfg.Model.Backend {
	case BackendARIMA, "":
		return NewARIMABackend(log), nil
	case BackendHTTP:
		if cfg.Model.ServiceURL == "" {
			return nil, fmt.Errorf("model backend %q requires model.service_url", BackendHTTP)
		}
		return NewHTTPBackend(NewHTTPServiceBase(cfg.Model.ServiceURL, cfg.Model.Timeout), log), nil
	default:
		return nil, fmt.Errorf("unknown model backend %q", cfg.Model.Backend)
	}
}
