package models

import (
	"time"

	"github.com/google/uuid"
)

// DaemonInfo describes the running daemon.
// This corresponds to ~/.pipebar/daemon.yaml.
type DaemonInfo struct {
	Version    int       `yaml:"version"`
	InstanceID string    `yaml:"instance_id"`
	PID        int       `yaml:"pid"`
	PipePath   string    `yaml:"pipe_path"`
	Foreground bool      `yaml:"foreground"`
	StartedAt  time.Time `yaml:"started_at"`
}

// NewDaemonInfo creates daemon info for the current process.
func NewDaemonInfo(pipePath string, pid int, foreground bool) *DaemonInfo {
	return &DaemonInfo{
		Version:    1,
		InstanceID: uuid.NewString(),
		PID:        pid,
		PipePath:   pipePath,
		Foreground: foreground,
		StartedAt:  time.Now().UTC(),
	}
}
