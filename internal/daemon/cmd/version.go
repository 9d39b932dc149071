package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pipebar-io/pipebar/internal/termstyle"
)

var daemonVersionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		termstyle.PrintVersion(cmd.OutOrStdout(), "pipebard")
	},
}

func init() {
	rootCmd.AddCommand(daemonVersionCmd)
}
