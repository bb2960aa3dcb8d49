package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set with -ldflags "-X wavify/cmd/wavify/cmd/version.version=..."
var version = "v0.1.0"

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of wavify",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), version)
		return nil
	},
}
