// Package daemon wires the control pipe to the indicator: a listener
// goroutine reads the FIFO and a dispatcher applies commands in order.
package daemon

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pipebar-io/pipebar/internal/color"
	"github.com/pipebar-io/pipebar/internal/daemon/dispatch"
	"github.com/pipebar-io/pipebar/internal/indicator"
	"github.com/pipebar-io/pipebar/internal/logging"
	"github.com/pipebar-io/pipebar/internal/models"
	"github.com/pipebar-io/pipebar/internal/pipe"
)

// Config holds what a Daemon needs.
type Config struct {
	Settings  *models.Settings
	Presenter indicator.Presenter
	Logger    *slog.Logger
	// OnQuit runs when a quit command is applied, before Run returns.
	OnQuit func()
}

// Daemon owns the dispatcher and the pipe listener.
type Daemon struct {
	settings   *models.Settings
	logger     *slog.Logger
	dispatcher *dispatch.Dispatcher
	listener   *pipe.Listener

	mu          sync.Mutex
	listenerErr error
}

// New builds a Daemon; nothing runs until Run.
func New(cfg Config) *Daemon {
	settings := cfg.Settings
	if settings == nil {
		settings = models.NewSettings()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	fallback, err := color.Parse(settings.Appearance.DefaultColor)
	if err != nil {
		logger.Warn("invalid default color in settings", "spec", settings.Appearance.DefaultColor, "error", err)
		fallback = color.Default()
	}

	d := &Daemon{settings: settings, logger: logger}
	d.dispatcher = dispatch.New(cfg.Presenter, dispatch.Options{
		Fallback: fallback,
		OnQuit:   cfg.OnQuit,
		Logger:   logger,
	})
	d.listener = pipe.NewListener(pipe.Options{
		Path:         settings.Pipe.Path,
		PollInterval: settings.Pipe.PollInterval,
		Logger:       logger,
	}, d.dispatcher)
	return d
}

// Dispatcher exposes the command hand-off, e.g. for tray menu clicks.
func (d *Daemon) Dispatcher() *dispatch.Dispatcher { return d.dispatcher }

// Listener exposes the pipe listener for status reporting.
func (d *Daemon) Listener() *pipe.Listener { return d.listener }

// ListenerErr returns why the listener gave up, if it did.
func (d *Daemon) ListenerErr() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.listenerErr
}

// Run blocks until ctx is cancelled or a quit command is applied. The
// calling goroutine owns the indicator for the duration. A listener that
// fails to set up is logged and the daemon keeps running without remote
// control.
func (d *Daemon) Run(ctx context.Context) {
	listenCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := d.listener.Run(listenCtx); err != nil {
			d.mu.Lock()
			d.listenerErr = err
			d.mu.Unlock()
			d.logger.Error("pipe listener stopped, remote control unavailable", "path", d.listener.Path(), "error", err)
		}
	}()

	d.dispatcher.Run(ctx)

	cancel()
	wg.Wait()
	if err := pipe.Remove(d.listener.Path()); err != nil {
		d.logger.Warn("failed to remove pipe", "error", err)
	}
	d.logger.Info("daemon stopped")
}
