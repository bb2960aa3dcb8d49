//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"wavify/internal/api/server"
	"wavify/internal/app/converter"
	"wavify/internal/config"
)

// InitializeServer builds the HTTP server. The cleanup closes the metadata store.
func InitializeServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*server.Server, func(), error) {
	wire.Build(ServerSet)
	return nil, nil, nil
}

// InitializePipeline builds a pipeline for the batch CLI.
func InitializePipeline(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*converter.Pipeline, func(), error) {
	wire.Build(PipelineSet)
	return nil, nil, nil
}
