package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/pipebar-io/pipebar/internal/config"
	"github.com/pipebar-io/pipebar/internal/models"
)

const daemonBinary = "pipebard"

// startDaemon starts the daemon process in the background and waits until
// it has written daemon.yaml.
func startDaemon() (*models.DaemonInfo, error) {
	daemonPath, err := findDaemonBinary()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(daemonPath)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start daemon: %w", err)
	}
	// The daemon outlives us; don't leave a zombie if it exits early.
	go func() { _ = cmd.Wait() }()

	// Wait for daemon to be ready (max 5 seconds)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		running, info, err := config.IsDaemonRunning()
		if err == nil && running {
			return info, nil
		}
	}

	return nil, fmt.Errorf("daemon failed to start within timeout")
}

// findDaemonBinary locates the pipebard binary.
func findDaemonBinary() (string, error) {
	if path, err := exec.LookPath(daemonBinary); err == nil {
		return path, nil
	}

	// Try next to the current executable
	if execPath, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(execPath), daemonBinary)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	// Try build directory
	candidate := filepath.Join("build", daemonBinary)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}

	return "", fmt.Errorf("%s not found. Install or build it first", daemonBinary)
}
