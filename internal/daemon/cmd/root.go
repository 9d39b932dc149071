// Package cmd implements the pipebard daemon command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pipebar-io/pipebar/internal/config"
	"github.com/pipebar-io/pipebar/internal/daemon"
	"github.com/pipebar-io/pipebar/internal/daemon/console"
	"github.com/pipebar-io/pipebar/internal/daemon/tray"
	"github.com/pipebar-io/pipebar/internal/logging"
	"github.com/pipebar-io/pipebar/internal/models"
)

var (
	foreground bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "pipebard",
	Short: "Show a status indicator controlled through a named pipe",
	Long: `pipebard shows a single status indicator and listens on a named pipe
for commands that add, update or remove it, or stop the daemon:

  add|<text>|<color>
  remove
  quit`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runDaemon,
}

func init() {
	rootCmd.Flags().BoolVar(&foreground, "foreground", false, "Run in foreground without a system tray")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Settings file (default ~/.pipebar/settings.yaml)")
}

// Execute runs the daemon CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func runDaemon(cmd *cobra.Command, args []string) error {
	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create global directory: %w", err)
	}

	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		return fmt.Errorf("daemon already running on %s (PID %d)", info.PipePath, info.PID)
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	logPath, err := config.DaemonLogFile()
	if err != nil {
		return err
	}
	var echo io.Writer
	if foreground {
		echo = os.Stderr
	}
	logs, err := logging.New(logging.Options{Path: logPath, Level: settings.Log.Level, Echo: echo})
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer logs.Close()

	info = models.NewDaemonInfo(settings.Pipe.Path, os.Getpid(), foreground)
	if err := config.SaveDaemonInfo(info); err != nil {
		return fmt.Errorf("failed to write daemon info: %w", err)
	}
	defer func() {
		if err := config.RemoveDaemonInfo(); err != nil {
			logs.Logger.Warn("failed to remove daemon info", "error", err)
		}
	}()

	logs.Logger.Info("daemon starting",
		"pid", info.PID,
		"instance_id", info.InstanceID,
		"pipe", settings.Pipe.Path,
		"foreground", foreground,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if foreground {
		runForeground(ctx, settings, logs)
	} else {
		runWithTray(ctx, settings, logs)
	}
	return nil
}

func loadSettings() (*models.Settings, error) {
	if configPath != "" {
		return config.LoadSettingsFrom(configPath)
	}
	return config.LoadSettings()
}

// runForeground runs the daemon without a system tray, rendering the
// indicator on stdout. It returns on quit or signal.
func runForeground(ctx context.Context, settings *models.Settings, logs logging.Runtime) {
	d := daemon.New(daemon.Config{
		Settings:  settings,
		Presenter: console.New(os.Stdout),
		Logger:    logs.Logger,
	})
	d.Run(ctx)
}

// runWithTray runs the daemon with a system tray icon on the main goroutine.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func runWithTray(ctx context.Context, settings *models.Settings, logs logging.Runtime) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d := daemon.New(daemon.Config{
		Settings:  settings,
		Presenter: tray.Presenter{},
		Logger:    logs.Logger,
		OnQuit:    tray.Quit,
	})
	stopped := make(chan struct{})

	onStart := func() {
		go func() {
			defer close(stopped)
			d.Run(ctx)
			// Signal-driven shutdown ends Run without passing OnQuit.
			tray.Quit()
		}()
	}

	onExit := func() {
		cancel()
		<-stopped
	}

	// This blocks the main goroutine until tray exits.
	tray.Run(d.Dispatcher(), logs.Logger, onStart, onExit)
}
