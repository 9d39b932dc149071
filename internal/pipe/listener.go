package pipe

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pipebar-io/pipebar/internal/command"
)

// DefaultPollInterval is how long the read loop idles when the pipe has
// nothing to offer.
const DefaultPollInterval = 100 * time.Millisecond

// Phase is the lifecycle of the FIFO owned by a Listener.
type Phase int32

const (
	PhaseUnopened Phase = iota
	PhaseCreated
	PhaseOpen
	PhaseClosed
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseUnopened:
		return "unopened"
	case PhaseCreated:
		return "created"
	case PhaseOpen:
		return "open"
	case PhaseClosed:
		return "closed"
	case PhaseError:
		return "error"
	default:
		return fmt.Sprintf("phase(%d)", int32(p))
	}
}

// ReadState is where the read loop currently waits.
type ReadState int32

const (
	ReadBlocked   ReadState = iota // blocked on read
	ReadIdleRetry                  // sleeping before the next read attempt
)

func (s ReadState) String() string {
	if s == ReadIdleRetry {
		return "idle-sleep-retry"
	}
	return "blocked-on-read"
}

// Sink receives parsed commands in the order their lines were read.
type Sink interface {
	Submit(command.Command) bool
}

// Options configure a Listener.
type Options struct {
	Path         string
	PollInterval time.Duration
	Logger       *slog.Logger
}

// Listener reads command lines from a FIFO for the lifetime of the process.
type Listener struct {
	path   string
	poll   time.Duration
	sink   Sink
	logger *slog.Logger

	phase     atomic.Int32
	readState atomic.Int32
	opened    atomic.Int64
}

// NewListener creates a Listener that feeds sink.
func NewListener(opts Options, sink Sink) *Listener {
	poll := opts.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Listener{
		path:   opts.Path,
		poll:   poll,
		sink:   sink,
		logger: logger.With("component", "pipe"),
	}
}

// Path returns the FIFO location.
func (l *Listener) Path() string { return l.path }

// Phase returns the current FIFO lifecycle phase.
func (l *Listener) Phase() Phase { return Phase(l.phase.Load()) }

// ReadState returns where the read loop is waiting.
func (l *Listener) ReadState() ReadState { return ReadState(l.readState.Load()) }

// Opens returns how many times the FIFO has been opened, recreations included.
func (l *Listener) Opens() int64 { return l.opened.Load() }

// Run creates the FIFO and reads it until ctx is cancelled. It returns an
// error only when the FIFO cannot be set up or the descriptor becomes
// permanently unusable; the caller is expected to log it and carry on
// without remote control.
func (l *Listener) Run(ctx context.Context) error {
	removed := make(chan struct{}, 1)
	stopWatch, err := watchRemoval(l.path, removed, l.logger)
	if err != nil {
		l.logger.Warn("pipe removal watch unavailable", "path", l.path, "error", err)
	} else {
		defer stopWatch()
	}

	for {
		f, err := l.open()
		if err != nil {
			l.phase.Store(int32(PhaseError))
			return err
		}

		recreate, err := l.serve(ctx, f, removed)
		if ctx.Err() != nil {
			l.phase.Store(int32(PhaseClosed))
			return nil
		}
		if recreate {
			l.logger.Info("pipe removed, recreating", "path", l.path)
			continue
		}
		l.phase.Store(int32(PhaseError))
		return err
	}
}

// open (re)creates the FIFO and opens it read/write. Holding the write side
// too means the descriptor never reports end-of-stream when writers come and
// go, and the open itself does not block waiting for a writer.
func (l *Listener) open() (*os.File, error) {
	if err := Create(l.path); err != nil {
		return nil, err
	}
	l.phase.Store(int32(PhaseCreated))

	f, err := os.OpenFile(l.path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open pipe %s: %w", l.path, err)
	}
	l.phase.Store(int32(PhaseOpen))
	l.opened.Add(1)
	l.logger.Info("listening on pipe", "path", l.path)
	return f, nil
}

// serve reads f until it fails. A helper goroutine halts the read loop on
// shutdown or when the FIFO disappears from the filesystem; recreate reports
// the latter.
func (l *Listener) serve(ctx context.Context, f *os.File, removed <-chan struct{}) (recreate bool, err error) {
	info, statErr := f.Stat()
	done := make(chan struct{})
	exited := make(chan struct{})
	var halt, gone atomic.Bool

	go func() {
		defer close(exited)
		for {
			select {
			case <-ctx.Done():
			case <-removed:
				if statErr == nil && l.stillOurs(info) {
					continue
				}
				gone.Store(true)
			case <-done:
				return
			}
			halt.Store(true)
			// Where the FIFO is not pollable, Close does not interrupt a
			// blocked read; a newline on our own write side does.
			_, _ = f.Write([]byte{'\n'})
			_ = f.Close()
			return
		}
	}()

	err = l.readLines(ctx, f, &halt)
	close(done)
	<-exited
	_ = f.Close()
	return gone.Load(), err
}

// stillOurs reports whether the path still names the FIFO we hold open.
// Our own Create produces remove events that must not trigger a recreate.
func (l *Listener) stillOurs(opened os.FileInfo) bool {
	current, err := os.Stat(l.path)
	return err == nil && os.SameFile(current, opened)
}

// readLines is the read state machine: block on read, hand complete lines
// to the sink, and back off for one poll interval whenever the read comes
// back empty.
func (l *Listener) readLines(ctx context.Context, r io.Reader, halt *atomic.Bool) error {
	reader := bufio.NewReader(r)
	var pending strings.Builder

	for {
		l.readState.Store(int32(ReadBlocked))
		chunk, err := reader.ReadString('\n')
		if halt.Load() || ctx.Err() != nil {
			return nil
		}
		if err == nil {
			line := chunk
			if pending.Len() > 0 {
				pending.WriteString(chunk)
				line = pending.String()
				pending.Reset()
			}
			l.handleLine(line)
			continue
		}

		// An unterminated tail is never flushed on its own; it waits for
		// the next delimiter, whoever writes it.
		pending.WriteString(chunk)

		if isPermanent(err) {
			return fmt.Errorf("read pipe %s: %w", l.path, err)
		}

		l.readState.Store(int32(ReadIdleRetry))
		if !sleepCtx(ctx, l.poll) {
			return nil
		}
	}
}

func (l *Listener) handleLine(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	cmd := command.Parse(line)
	l.logger.Debug("received line", "line", line, "command", cmd.Keyword())
	if !l.sink.Submit(cmd) {
		l.logger.Debug("dispatcher stopped, line discarded", "line", line)
	}
}

// isPermanent separates a dead descriptor from conditions worth retrying,
// such as end-of-stream or an interrupted read.
func isPermanent(err error) bool {
	return errors.Is(err, os.ErrClosed) || errors.Is(err, syscall.EBADF)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
