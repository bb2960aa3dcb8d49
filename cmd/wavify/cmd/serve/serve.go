package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wavify/cmd/wavify/cmd/cmdutil"
	"wavify/internal/app"
)

func init() {
	Cmd.Flags().StringVarP(&cmdutil.Flags.Port, "port", "p", "", "HTTP port (default 8080)")
	cmdutil.BindTranscribe(Cmd)
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP conversion service",
	Long: `Start the HTTP conversion service

- POST /convert with a multipart "file" field returns the WAV bytes,
  or {"transcript": "..."} when transcription is enabled
- GET /api/v1/conversions lists recorded attempts
- GET /health, GET /metrics and /swagger/index.html for operators`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := cmdutil.Setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv, cleanup, err := app.InitializeServer(ctx, cfg, logger)
		if err != nil {
			logger.Error("failed to initialize server", zap.Error(err))
			return err
		}
		defer cleanup()

		if err := srv.Start(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			logger.Info("shutdown signal received")
		case err := <-srv.Errors():
			if err != nil {
				return err
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
