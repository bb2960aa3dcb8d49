package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"wavify/internal/api/server"
	v1routes "wavify/internal/api/v1/routes"
	"wavify/internal/api/v1/services"
	"wavify/internal/app/api"
	"wavify/internal/app/api/whisper_cpp"
	"wavify/internal/app/audio"
	"wavify/internal/app/converter"
	"wavify/internal/app/repository"
	"wavify/internal/app/storage"
	"wavify/internal/app/toolexec"
	"wavify/internal/app/workspace"
	"wavify/internal/config"
)

// PipelineSet builds a conversion pipeline and everything under it.
var PipelineSet = wire.NewSet(
	provideRecorder,
	provideRunner,
	provideTranscoder,
	provideTranscriber,
	provideWorkspaces,
	providePipelineOptions,
	converter.NewPipeline,
	wire.Bind(new(api.Transcoder), new(*audio.Transcoder)),
	wire.Bind(new(api.Transcriber), new(*whisper_cpp.LocalTranscriber)),
)

// ServerSet adds the HTTP layer on top of PipelineSet.
var ServerSet = wire.NewSet(
	PipelineSet,
	provideServiceContainer,
	provideServer,
)

func provideRecorder(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.ConversionRecorder, func(), error) {
	return storage.Open(ctx, cfg.Store, logger)
}

func provideRunner(cfg *config.Config, logger *zap.Logger) toolexec.Runner {
	return toolexec.NewExecRunner(cfg.Pipeline.MaxOutputBytes, logger)
}

func provideTranscoder(cfg *config.Config, runner toolexec.Runner) *audio.Transcoder {
	return audio.NewTranscoder(cfg.Transcoder.Path, cfg.Transcoder.Timeout, runner)
}

func provideTranscriber(cfg *config.Config, runner toolexec.Runner) *whisper_cpp.LocalTranscriber {
	return whisper_cpp.NewLocalTranscriber(cfg.Recognizer, runner)
}

func provideWorkspaces(cfg *config.Config, logger *zap.Logger) *workspace.Manager {
	return workspace.NewManager(cfg.Pipeline.WorkDir, logger)
}

func providePipelineOptions(cfg *config.Config) converter.Options {
	return converter.Options{
		AcceptedExtensions:   cfg.Pipeline.AcceptedExtensions,
		TranscriptionEnabled: cfg.Pipeline.TranscriptionEnabled,
		PersistTimeout:       cfg.Pipeline.PersistTimeout,
	}
}

func provideServiceContainer(cfg *config.Config, pipeline *converter.Pipeline, recorder repository.ConversionRecorder,
	transcoder *audio.Transcoder, transcriber *whisper_cpp.LocalTranscriber, logger *zap.Logger) *v1routes.ServiceContainer {
	tools := map[string]api.Prober{"transcoder": transcoder}
	if cfg.Pipeline.TranscriptionEnabled {
		tools["recognizer"] = transcriber
	}
	return &v1routes.ServiceContainer{
		ConversionService: pipeline,
		RecordService:     services.NewRecordService(recorder),
		HealthService:     services.NewHealthService(pipeline.Mode(), recorder, tools, logger),
		MaxUploadBytes:    cfg.HTTP.MaxUploadBytes,
	}
}

func provideServer(cfg *config.Config, container *v1routes.ServiceContainer, logger *zap.Logger) *server.Server {
	return server.NewServer(cfg.HTTP, container, logger)
}
