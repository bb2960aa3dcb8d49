package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"wavify/cmd/wavify/cmd/cmdutil"
	"wavify/internal/app/converter/export"
	"wavify/internal/app/storage"
)

var (
	outputFilePath string
	limit          int
)

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "output", "o", "conversions.xlsx", "xlsx file to write")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 1000, "newest records to export")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export conversion records to excel",
	Long: `Export conversion records to excel

- Reads the newest records from the configured metadata store
- Writes one row per conversion attempt, failed ones included`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := cmdutil.Setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		recorder, cleanup, err := storage.Open(cmd.Context(), cfg.Store, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		records, err := recorder.List(cmd.Context(), limit, 0)
		if err != nil {
			return err
		}
		if err := export.ToExcel(records, outputFilePath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d records to %s\n", len(records), outputFilePath)
		return nil
	},
}
