// Package dispatch applies parsed commands to the indicator. A single
// consumer goroutine owns the indicator; producers hand commands over an
// ordered channel, so no lock guards indicator state.
package dispatch

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pipebar-io/pipebar/internal/color"
	"github.com/pipebar-io/pipebar/internal/command"
	"github.com/pipebar-io/pipebar/internal/indicator"
)

const queueSize = 64

// Options configure a Dispatcher.
type Options struct {
	// Fallback is used for add commands whose color does not parse.
	Fallback colorful.Color
	// OnQuit is invoked once, from the consumer goroutine, when a quit
	// command is applied. It should terminate the process.
	OnQuit func()
	Logger *slog.Logger
}

type event struct {
	cmd             command.Command
	toggleHighlight bool
}

// Dispatcher serializes command effects onto the one indicator.
type Dispatcher struct {
	presenter indicator.Presenter
	fallback  colorful.Color
	onQuit    func()
	logger    *slog.Logger

	queue    chan event
	stopped  chan struct{}
	stopOnce sync.Once

	// current is touched by the consumer goroutine only.
	current  *indicator.Indicator
	snapshot atomic.Pointer[indicator.Indicator]
	applied  atomic.Int64
}

// New creates a Dispatcher drawing through presenter.
func New(presenter indicator.Presenter, opts Options) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d := &Dispatcher{
		presenter: presenter,
		fallback:  opts.Fallback,
		onQuit:    opts.OnQuit,
		logger:    logger.With("component", "dispatch"),
		queue:     make(chan event, queueSize),
		stopped:   make(chan struct{}),
	}
	d.snapshot.Store(&indicator.Indicator{})
	return d
}

// Submit queues cmd behind every command submitted before it. It reports
// false once the dispatcher has stopped.
func (d *Dispatcher) Submit(cmd command.Command) bool {
	return d.enqueue(event{cmd: cmd})
}

// ToggleHighlight flips the highlighted state of the current indicator.
func (d *Dispatcher) ToggleHighlight() bool {
	return d.enqueue(event{toggleHighlight: true})
}

// RequestQuit queues a quit as if it had arrived on the pipe.
func (d *Dispatcher) RequestQuit() bool {
	return d.Submit(command.Quit{})
}

func (d *Dispatcher) enqueue(ev event) bool {
	select {
	case <-d.stopped:
		return false
	default:
	}
	select {
	case d.queue <- ev:
		return true
	case <-d.stopped:
		return false
	}
}

// State returns a copy of the indicator as last applied.
func (d *Dispatcher) State() indicator.Indicator {
	return *d.snapshot.Load()
}

// Applied returns how many events the consumer has processed.
func (d *Dispatcher) Applied() int64 {
	return d.applied.Load()
}

// Stopped is closed once the consumer loop has exited.
func (d *Dispatcher) Stopped() <-chan struct{} {
	return d.stopped
}

// Run consumes commands until ctx is done or a quit is applied. The calling
// goroutine becomes the owner of the indicator.
func (d *Dispatcher) Run(ctx context.Context) {
	defer d.stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-d.queue:
			quit := d.apply(ev)
			d.applied.Add(1)
			if quit {
				return
			}
		}
	}
}

func (d *Dispatcher) stop() {
	d.stopOnce.Do(func() { close(d.stopped) })
}

// apply runs one event and reports whether the loop must end.
func (d *Dispatcher) apply(ev event) bool {
	if ev.toggleHighlight {
		d.toggleHighlight()
		return false
	}

	switch cmd := ev.cmd.(type) {
	case command.Add:
		d.add(cmd)
	case command.Remove:
		d.remove()
	case command.Quit:
		d.logger.Info("quit requested")
		// Anything still queued is abandoned.
		d.stop()
		if d.onQuit != nil {
			d.onQuit()
		}
		return true
	case command.Invalid:
		d.logger.Warn("dropping invalid command", "line", cmd.Raw)
	default:
		d.logger.Warn("dropping unknown command", "keyword", cmd.Keyword())
	}
	return false
}

func (d *Dispatcher) add(cmd command.Add) {
	c, err := color.Parse(cmd.ColorSpec)
	if err != nil {
		d.logger.Info("invalid color, using fallback", "spec", cmd.ColorSpec, "error", err)
		c = d.fallback
	}

	if d.current != nil && d.current.Text == cmd.Text && d.current.Color == c {
		d.logger.Debug("indicator unchanged", "text", cmd.Text)
		return
	}

	if d.current == nil {
		d.current = &indicator.Indicator{Active: true}
	}
	d.current.Text = cmd.Text
	d.current.Color = c
	d.logger.Info("showing indicator", "text", cmd.Text, "color", c.Hex())
	d.render()
}

func (d *Dispatcher) remove() {
	if d.current == nil {
		d.logger.Debug("remove with no indicator")
		return
	}
	d.logger.Info("removing indicator")
	d.presenter.Remove()
	d.current = nil
	d.publish()
}

func (d *Dispatcher) toggleHighlight() {
	if d.current == nil {
		return
	}
	d.current.Highlighted = !d.current.Highlighted
	d.render()
}

func (d *Dispatcher) render() {
	c := d.current.Color
	if d.current.Highlighted {
		c = color.Highlight(c)
	}
	d.presenter.Show(d.current.Text, c)
	d.publish()
}

func (d *Dispatcher) publish() {
	snap := indicator.Indicator{}
	if d.current != nil {
		snap = *d.current
	}
	d.snapshot.Store(&snap)
}
