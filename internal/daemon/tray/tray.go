package tray

import (
	"log/slog"

	"github.com/getlantern/systray"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pipebar-io/pipebar/internal/indicator"
)

var (
	controls Controls
	onStart  func()
	onExit   func()
	logger   *slog.Logger

	textItem *systray.MenuItem
	quitItem *systray.MenuItem
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called when the tray is ready (start the daemon here).
// onExitFn is called when the tray exits (cleanup here).
func Run(c Controls, l *slog.Logger, onStartFn, onExitFn func()) {
	controls = c
	logger = l
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetIcon(indicator.Blank())
	systray.SetTooltip(defaultTooltip)

	// Current indicator text; clicking it toggles the highlight.
	textItem = systray.AddMenuItem("", "")
	textItem.Hide()

	systray.AddSeparator()

	quitItem = systray.AddMenuItem("Quit", "Shut down pipebar")

	if onStart != nil {
		onStart()
	}

	go handleClicks()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-textItem.ClickedCh:
			if controls != nil {
				controls.ToggleHighlight()
			}
		case <-quitItem.ClickedCh:
			if logger != nil {
				logger.Info("quit clicked in tray menu")
			}
			if controls == nil || !controls.RequestQuit() {
				Quit()
			}
		}
	}
}

// Presenter draws the indicator into the tray. It must only be used after
// the onStart callback of Run has fired.
type Presenter struct{}

// Show sets the badge icon and title. systray keeps one entry per process,
// so repeated calls replace the content.
func (Presenter) Show(text string, c colorful.Color) {
	systray.SetIcon(indicator.Badge(c))
	systray.SetTitle(text)
	systray.SetTooltip(text)
	textItem.SetTitle(text)
	textItem.Show()
}

// Remove blanks the entry. systray cannot drop its icon at runtime, so an
// empty icon and title stand in for removal.
func (Presenter) Remove() {
	systray.SetIcon(indicator.Blank())
	systray.SetTitle("")
	systray.SetTooltip(defaultTooltip)
	textItem.Hide()
}
