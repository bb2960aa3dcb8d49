package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"wavify/cmd/wavify/cmd/cmdutil"
	"wavify/cmd/wavify/cmd/convert"
	"wavify/cmd/wavify/cmd/export"
	"wavify/cmd/wavify/cmd/serve"
	"wavify/cmd/wavify/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wavify",
	Short: "Convert compressed audio to WAV, optionally transcribing it",
	Long: `wavify converts compressed audio (mp3 by default) to a WAV waveform with ffmpeg
and can run a local whisper or whisper.cpp CLI over the result.

- wavify serve exposes POST /convert over HTTP
- wavify convert runs the same pipeline over local files
- every attempt is recorded in the configured metadata store`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(convert.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cmdutil.Flags.ConfigFile, "config", "c", "", "YAML config file (default $WAVIFY_CONFIG)")
	flags.StringVar(&cmdutil.Flags.EnvFile, "env-file", "", ".env file to load (default ./.env when present)")
	flags.StringVar(&cmdutil.Flags.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&cmdutil.Flags.StoreDriver, "store", "", "metadata store: sqlite, postgres, redis, none")
	flags.StringVar(&cmdutil.Flags.StoreDSN, "store-dsn", "", "metadata store DSN")
	flags.BoolVarP(&cmdutil.Verbose, "verbose", "V", false, "verbose output")
}
