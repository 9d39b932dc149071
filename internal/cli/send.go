package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pipebar-io/pipebar/internal/color"
	"github.com/pipebar-io/pipebar/internal/command"
	"github.com/pipebar-io/pipebar/internal/config"
	"github.com/pipebar-io/pipebar/internal/pipe"
	"github.com/pipebar-io/pipebar/internal/termstyle"
)

var addCmd = &cobra.Command{
	Use:   "add <text> <color>",
	Short: "Show the indicator, or replace its text and color",
	Long: `Show the indicator with the given text and color, replacing any
content already shown. Colors are #RRGGBB or #RGB, with or without '#';
the daemon falls back to its default color for anything else.`,
	Example: `  pipebar add "Build: OK" "#00FF00"`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := color.Parse(args[1]); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), termstyle.Warning.Render("warning:"), err, "(daemon will use its default color)")
		}
		return send(cmd, command.Add{Text: args[0], ColorSpec: args[1]})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the indicator",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(cmd, command.Remove{})
	},
}

var quitCmd = &cobra.Command{
	Use:   "quit",
	Short: "Stop the daemon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(cmd, command.Quit{})
	},
}

var sendCmd = &cobra.Command{
	Use:     "send <line>",
	Short:   "Write a raw protocol line into the pipe",
	Example: `  pipebar send "add|Deploying|#FFA500"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(cmd, command.Invalid{Raw: args[0]})
	},
}

// send encodes c and writes it to the daemon's pipe.
func send(cmd *cobra.Command, c command.Command) error {
	line, err := command.Format(c)
	if err != nil {
		return err
	}

	path, err := resolvePipePath()
	if err != nil {
		return err
	}

	if err := pipe.Write(path, line); err != nil {
		if errors.Is(err, pipe.ErrNoReader) {
			return fmt.Errorf("%w\n%s", err, termstyle.Hint.Render("Start the daemon with: pipebar daemon start"))
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", termstyle.Success.Render("sent"), termstyle.Value.Render(line))
	return nil
}

// resolvePipePath prefers --pipe, then the path of a running daemon, then
// settings.yaml.
func resolvePipePath() (string, error) {
	if pipePath != "" {
		return pipePath, nil
	}
	if running, info, err := config.IsDaemonRunning(); err == nil && running && info.PipePath != "" {
		return info.PipePath, nil
	}
	settings, err := config.LoadSettings()
	if err != nil {
		return "", fmt.Errorf("failed to load settings: %w", err)
	}
	return settings.Pipe.Path, nil
}
