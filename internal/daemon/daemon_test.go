package daemon

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/require"

	"github.com/pipebar-io/pipebar/internal/models"
	"github.com/pipebar-io/pipebar/internal/pipe"
)

type fakePresenter struct {
	mu    sync.Mutex
	shown []string
	color colorful.Color
	gone  int
}

func (p *fakePresenter) Show(text string, c colorful.Color) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shown = append(p.shown, text)
	p.color = c
}

func (p *fakePresenter) Remove() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gone++
}

func testSettings(t *testing.T) *models.Settings {
	t.Helper()
	settings := models.NewSettings()
	settings.Pipe.Path = filepath.Join(t.TempDir(), models.DefaultPipeName)
	settings.Pipe.PollInterval = 10 * time.Millisecond
	return settings
}

// start runs a daemon in the background and returns a channel closed when
// Run returns.
func start(t *testing.T, d *Daemon) <-chan struct{} {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		d.Run(context.Background())
	}()
	require.Eventually(t, func() bool {
		return d.Listener().Phase() == pipe.PhaseOpen
	}, 2*time.Second, 5*time.Millisecond)
	return done
}

func TestAddThenQuitOverThePipe(t *testing.T) {
	settings := testSettings(t)
	presenter := &fakePresenter{}
	var quits int
	d := New(Config{Settings: settings, Presenter: presenter, OnQuit: func() { quits++ }})
	done := start(t, d)

	require.NoError(t, pipe.Write(settings.Pipe.Path, "add|Build: OK|#00FF00"))
	require.Eventually(t, func() bool {
		return d.Dispatcher().State().Text == "Build: OK"
	}, 2*time.Second, 5*time.Millisecond)

	state := d.Dispatcher().State()
	require.True(t, state.Active)
	require.Equal(t, "#00ff00", state.Color.Hex())

	require.NoError(t, pipe.Write(settings.Pipe.Path, "quit"))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not stop on quit")
	}

	require.Equal(t, 1, quits)
	require.NoFileExists(t, settings.Pipe.Path)
	require.NoError(t, d.ListenerErr())
}

func TestOrderedSequenceEndsOnLastAdd(t *testing.T) {
	settings := testSettings(t)
	presenter := &fakePresenter{}
	d := New(Config{Settings: settings, Presenter: presenter})
	done := start(t, d)
	t.Cleanup(func() {
		d.Dispatcher().RequestQuit()
		<-done
	})

	require.NoError(t, pipe.Write(settings.Pipe.Path, "add|A|#FFFFFF\nremove\nadd|B|#000000"))
	require.Eventually(t, func() bool {
		return d.Dispatcher().Applied() == 3
	}, 2*time.Second, 5*time.Millisecond)

	require.Equal(t, "B", d.Dispatcher().State().Text)
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	require.Equal(t, []string{"A", "B"}, presenter.shown)
	require.Equal(t, 1, presenter.gone)
}

func TestRestartOverStalePipe(t *testing.T) {
	settings := testSettings(t)

	// A crashed first run leaves a FIFO behind.
	require.NoError(t, pipe.Create(settings.Pipe.Path))

	for run := 0; run < 2; run++ {
		d := New(Config{Settings: settings, Presenter: &fakePresenter{}})
		done := start(t, d)

		require.NoError(t, pipe.Write(settings.Pipe.Path, "add|run|#FFF"))
		require.Eventually(t, func() bool {
			return d.Dispatcher().State().Active
		}, 2*time.Second, 5*time.Millisecond)

		require.NoError(t, pipe.Write(settings.Pipe.Path, "quit"))
		<-done

		// Simulate a non-graceful exit by leaving a stale regular file.
		require.NoError(t, os.WriteFile(settings.Pipe.Path, []byte("stale"), 0o644))
	}
}

func TestListenerFailureKeepsDaemonAlive(t *testing.T) {
	settings := testSettings(t)
	settings.Pipe.Path = filepath.Join(t.TempDir(), "missing", "statusbar_control")
	d := New(Config{Settings: settings, Presenter: &fakePresenter{}})

	done := make(chan struct{})
	go func() {
		defer close(done)
		d.Run(context.Background())
	}()

	require.Eventually(t, func() bool { return d.ListenerErr() != nil }, 2*time.Second, 5*time.Millisecond)

	select {
	case <-done:
		t.Fatal("daemon must outlive its listener")
	case <-time.After(50 * time.Millisecond):
	}

	require.True(t, d.Dispatcher().RequestQuit())
	<-done
}

func TestInvalidDefaultColorFallsBackToBuiltin(t *testing.T) {
	settings := testSettings(t)
	settings.Appearance.DefaultColor = "not-a-color"
	presenter := &fakePresenter{}
	d := New(Config{Settings: settings, Presenter: presenter})
	done := start(t, d)
	t.Cleanup(func() {
		d.Dispatcher().RequestQuit()
		<-done
	})

	require.NoError(t, pipe.Write(settings.Pipe.Path, "add|x|zzzzzz"))
	require.Eventually(t, func() bool { return d.Dispatcher().State().Active }, 2*time.Second, 5*time.Millisecond)
	require.Equal(t, "#8e8e93", d.Dispatcher().State().Color.Hex())
}
