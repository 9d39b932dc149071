// Package pipe owns the control FIFO: creating it, reading command lines from
// it for the daemon, and writing lines into it for clients.
package pipe

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// Mode is the permission requested for a freshly created FIFO.
const Mode = 0o666

// WriteTimeout bounds how long Write waits for room in a full pipe.
const WriteTimeout = 2 * time.Second

var (
	// ErrNoReader means no daemon holds the FIFO open for reading.
	ErrNoReader = errors.New("no process is listening on the pipe")

	// ErrNotFIFO means the path exists but is not a named pipe.
	ErrNotFIFO = errors.New("path is not a named pipe")

	// ErrBusy means the pipe stayed full: a daemon holds it open but is not
	// draining it.
	ErrBusy = errors.New("pipe is full, daemon is busy")
)

// Create replaces whatever sits at path with a new FIFO. A leftover from a
// crashed run, FIFO or not, is unlinked first.
func Create(path string) error {
	if _, err := os.Lstat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove stale pipe %s: %w", path, err)
		}
	}
	if err := unix.Mkfifo(path, Mode); err != nil {
		return fmt.Errorf("mkfifo %s: %w", path, err)
	}
	return nil
}

// Remove deletes the FIFO at path. Missing files and non-FIFOs are left alone.
func Remove(path string) error {
	if !IsFIFO(path) {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove pipe %s: %w", path, err)
	}
	return nil
}

// IsFIFO reports whether path is a named pipe.
func IsFIFO(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&fs.ModeNamedPipe != 0
}

// Write sends one line to the daemon listening on path. The FIFO is opened
// non-blocking so a missing reader fails fast instead of hanging, and a pipe
// that stays full for WriteTimeout yields ErrBusy.
func Write(path, line string) error {
	return write(path, line, WriteTimeout)
}

func write(path, line string, timeout time.Duration) error {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", ErrNoReader, path)
		}
		return fmt.Errorf("stat pipe %s: %w", path, err)
	}
	if info.Mode()&fs.ModeNamedPipe == 0 {
		return fmt.Errorf("%w: %s", ErrNotFIFO, path)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		if errors.Is(err, unix.ENXIO) {
			return fmt.Errorf("%w: %s", ErrNoReader, path)
		}
		return fmt.Errorf("open pipe %s: %w", path, err)
	}
	defer f.Close()

	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	// FIFOs go through the poller, so the deadline turns a stuck reader into
	// a timeout; a raw EAGAIN means the same thing.
	_ = f.SetWriteDeadline(time.Now().Add(timeout))
	if _, err := f.WriteString(line); err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, unix.EAGAIN) {
			return fmt.Errorf("%w: %s", ErrBusy, path)
		}
		return fmt.Errorf("write pipe %s: %w", path, err)
	}
	return nil
}
