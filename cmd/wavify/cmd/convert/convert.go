package convert

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wavify/cmd/wavify/cmd/cmdutil"
	"wavify/internal/app"
	"wavify/internal/app/converter"
	"wavify/internal/app/util/files"
)

var (
	outputDir string
	parallel  int
	progress  bool
)

func init() {
	Cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "directory for the .wav or .txt results")
	Cmd.Flags().IntVarP(&parallel, "parallel", "j", 2, "files converted at the same time")
	Cmd.Flags().BoolVar(&progress, "progress", false, "force the progress bar even when stderr is not a terminal")
	cmdutil.BindTranscribe(Cmd)
}

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert <file or directory>...",
	Short: "Convert local audio files through the conversion pipeline",
	Long: `Convert local audio files through the conversion pipeline

- Directories are scanned one level deep for accepted extensions
- Each result is written to the output directory as <name>.wav, or <name>.txt with --transcribe
- Every attempt is recorded in the metadata store, just like uploads`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := cmdutil.Setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		inputs, err := files.CollectFiles(args, cfg.Pipeline.AcceptedExtensions)
		if err != nil {
			return err
		}
		if len(inputs) == 0 {
			return fmt.Errorf("no files with extensions %v found", cfg.Pipeline.AcceptedExtensions)
		}

		pipeline, cleanup, err := app.InitializePipeline(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		batch := converter.NewBatchConverter(pipeline, converter.ProgressConfig{
			Enabled: converter.ShouldShowProgress(progress),
		}, logger)
		summary, err := batch.ConvertFiles(ctx, inputs, outputDir, parallel)
		if summary != nil {
			for _, item := range summary.Items {
				if item.Err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s: %v\n", item.Input, item.Err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "converted %d of %d files into %s\n",
				summary.Succeeded, len(summary.Items), outputDir)
		}
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d files failed", summary.Failed)
		}
		return nil
	},
}
