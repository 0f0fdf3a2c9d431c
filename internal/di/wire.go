//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"UsageCast/internal/usecase"
	"UsageCast/pkg/config"
	"UsageCast/pkg/server"
)

// InitializeApp wires the HTTP API.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(ServerSet)
	return &server.App{}, nil
}

// InitializePipeline wires the batch pipeline used by the CLI commands.
func InitializePipeline(cfg *config.Config) (*usecase.Pipeline, error) {
	wire.Build(CoreSet)
	return &usecase.Pipeline{}, nil
}
