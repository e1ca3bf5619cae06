package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped with -ldflags "-X github.com/abhisek/persona/cmd.version=..."
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show which persona build is installed",
	Long:  "Print the persona release this binary was built from, or (devel) for local builds.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "persona %s\n", version)
	},
}
