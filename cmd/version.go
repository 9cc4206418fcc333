package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gospectra/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gospectra",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), version.Details())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
