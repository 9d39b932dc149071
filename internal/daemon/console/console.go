// Package console renders the indicator on a terminal for foreground runs,
// where no system tray is available.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"

	"github.com/pipebar-io/pipebar/internal/color"
	"github.com/pipebar-io/pipebar/internal/termstyle"
)

var (
	dark  = lipgloss.Color("#000000")
	light = lipgloss.Color("#FFFFFF")
)

// Presenter prints one line per indicator change.
type Presenter struct {
	out      io.Writer
	styled   bool
	renderer *lipgloss.Renderer
}

// New returns a Presenter writing to out. Styling is used only when out is
// a terminal.
func New(out io.Writer) *Presenter {
	styled := false
	if f, ok := out.(*os.File); ok {
		styled = term.IsTerminal(int(f.Fd()))
	}
	return &Presenter{out: out, styled: styled, renderer: lipgloss.NewRenderer(out)}
}

// Show prints the indicator as a colored badge.
func (p *Presenter) Show(text string, c colorful.Color) {
	if !p.styled {
		fmt.Fprintf(p.out, "[%s] %s\n", c.Hex(), text)
		return
	}
	fmt.Fprintln(p.out, p.badge(text, c))
}

// Remove prints that the indicator is gone.
func (p *Presenter) Remove() {
	if !p.styled {
		fmt.Fprintln(p.out, "[removed]")
		return
	}
	fmt.Fprintln(p.out, p.renderer.NewStyle().Foreground(termstyle.Dim).Render("(indicator removed)"))
}

func (p *Presenter) badge(text string, c colorful.Color) string {
	fg := light
	if color.IsLight(c) {
		fg = dark
	}
	return p.renderer.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(lipgloss.Color(c.Hex())).
		Foreground(fg).
		Render(text)
}
