package cli

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pipebar-io/pipebar/internal/config"
	"github.com/pipebar-io/pipebar/internal/termstyle"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the pipebar daemon",
	Long:  `Manage the pipebard daemon process.`,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	RunE:  runDaemonStatus,
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon",
	RunE:  runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	RunE:  runDaemonStop,
}

func init() {
	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonStopCmd)
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if running && info != nil {
		fmt.Fprintf(out, "Daemon is already running (PID %d, pipe %s).\n", info.PID, info.PipePath)
		return nil
	}

	fmt.Fprint(out, "Starting daemon...")
	fresh, err := startDaemon()
	if err != nil {
		fmt.Fprintln(out)
		return err
	}

	fmt.Fprintf(out, " %s (PID %d, pipe %s).\n", termstyle.Success.Render("started"), fresh.PID, fresh.PipePath)
	return nil
}

func runDaemonStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return err
	}

	if !running || info == nil {
		fmt.Fprintln(out, "Daemon is not running.")
		return nil
	}

	uptime := time.Since(info.StartedAt).Truncate(time.Second)
	mode := "tray"
	if info.Foreground {
		mode = "foreground"
	}

	fmt.Fprintln(out, "Daemon is running.")
	fmt.Fprintf(out, "  %s    %s\n", termstyle.Label.Render("Version:"), termstyle.Value.Render(fmt.Sprint(info.Version)))
	fmt.Fprintf(out, "  %s   %s\n", termstyle.Label.Render("Instance:"), termstyle.Value.Render(info.InstanceID))
	fmt.Fprintf(out, "  %s        %d\n", termstyle.Label.Render("PID:"), info.PID)
	fmt.Fprintf(out, "  %s       %s\n", termstyle.Label.Render("Pipe:"), termstyle.Value.Render(info.PipePath))
	fmt.Fprintf(out, "  %s       %s\n", termstyle.Label.Render("Mode:"), mode)
	fmt.Fprintf(out, "  %s     %s\n", termstyle.Label.Render("Uptime:"), uptime)
	return nil
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if !running || info == nil {
		fmt.Fprintln(out, "Daemon is not running.")
		return nil
	}

	// Send SIGTERM to the daemon process
	process, err := os.FindProcess(info.PID)
	if err != nil {
		return fmt.Errorf("failed to find daemon process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send stop signal: %w", err)
	}

	// Poll for shutdown (max 5 seconds)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		stillRunning, _, err := config.IsDaemonRunning()
		if err == nil && !stillRunning {
			fmt.Fprintln(out, "Daemon stopped.")
			return nil
		}
	}

	return fmt.Errorf("daemon did not stop within timeout")
}
