package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pipebar-io/pipebar/internal/color"
	"github.com/pipebar-io/pipebar/internal/config"
	"github.com/pipebar-io/pipebar/internal/logging"
	"github.com/pipebar-io/pipebar/internal/models"
)

var configureCmd = &cobra.Command{
	Use:     "configure",
	Aliases: []string{"config"},
	Short:   "Configure pipebar settings",
	Long: `Configure ~/.pipebar/settings.yaml interactively.

This allows you to modify:
  - Control pipe path
  - Poll interval
  - Default indicator color (hex)
  - Log level

Press Enter to keep the current value for any setting.
A running daemon picks up changes on its next start.`,
	RunE: runConfigure,
}

func runConfigure(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	out := cmd.OutOrStdout()
	changed, err := promptSettings(bufio.NewReader(cmd.InOrStdin()), out, settings)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintln(out, "\nNo changes made.")
		return nil
	}

	if err := config.EnsureGlobalDir(); err != nil {
		return err
	}
	if err := config.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Fprintln(out, "\nSettings updated.")
	return nil
}

// promptSettings walks through every setting, editing s in place.
func promptSettings(reader *bufio.Reader, out io.Writer, s *models.Settings) (bool, error) {
	changed := false

	if path := prompt(reader, out, "Pipe path", s.Pipe.Path); path != "" && path != s.Pipe.Path {
		s.Pipe.Path = path
		changed = true
	}

	if raw := prompt(reader, out, "Poll interval", s.Pipe.PollInterval.String()); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil || interval <= 0 {
			return false, fmt.Errorf("invalid poll interval: %s (expected a positive duration such as 100ms)", raw)
		}
		if interval != s.Pipe.PollInterval {
			s.Pipe.PollInterval = interval
			changed = true
		}
	}

	if spec := prompt(reader, out, "Default color (hex)", s.Appearance.DefaultColor); spec != "" {
		if _, err := color.Parse(spec); err != nil {
			return false, fmt.Errorf("invalid hex color: %s (expected format: #RRGGBB or #RGB)", spec)
		}
		if spec != s.Appearance.DefaultColor {
			s.Appearance.DefaultColor = spec
			changed = true
		}
	}

	if level := strings.ToLower(prompt(reader, out, "Log level (debug, info, warn, error)", s.Log.Level)); level != "" {
		if _, err := logging.ParseLevel(level); err != nil {
			return false, err
		}
		if level != s.Log.Level {
			s.Log.Level = level
			changed = true
		}
	}

	return changed, nil
}

// prompt shows the current value and returns the trimmed answer, empty to
// keep it.
func prompt(reader *bufio.Reader, out io.Writer, label, current string) string {
	fmt.Fprintf(out, "%s [%s]: ", label, current)
	answer, _ := reader.ReadString('\n')
	return strings.TrimSpace(answer)
}
