package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"UsageCast/pkg/config"
	"UsageCast/pkg/logger"
)

func TestNewBackendSelectsByName(t *testing.T) {
	cfg := config.Default()

	b, err := NewBackend(cfg, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, BackendARIMA, b.Name())

	cfg.Model.Backend = BackendHTTP
	cfg.Model.ServiceURL = "http://localhost:8000"
	b, err = NewBackend(cfg, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, BackendHTTP, b.Name())
}

func TestNewBackendErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Model.Backend = BackendHTTP
	_, err := NewBackend(cfg, logger.Nop())
	assert.Error(t, err)

	cfg.Model.Backend = "prophet"
	_, err = NewBackend(cfg, logger.Nop())
	assert.Error(t, err)
}
