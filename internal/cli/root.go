// Package cli implements the pipebar CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

// pipePath overrides the pipe location from settings.yaml.
var pipePath string

var rootCmd = &cobra.Command{
	Use:   "pipebar",
	Short: "Control the pipebar status indicator",
	Long: `pipebar writes commands into the named pipe watched by the pipebard
daemon, and starts, inspects or stops that daemon.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&pipePath, "pipe", "", "Control pipe path (default from ~/.pipebar/settings.yaml)")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(quitCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(versionCmd)
}
