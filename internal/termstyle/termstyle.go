// Package termstyle holds the lipgloss palette shared by pipebar and pipebard.
package termstyle

import (
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"github.com/pipebar-io/pipebar/internal/buildinfo"
)

// Adaptive colors for terminal output.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Semantic styles.
var (
	Brand   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	Version = lipgloss.NewStyle().Foreground(colorGreen)
	Label   = lipgloss.NewStyle().Foreground(colorDim)
	Value   = lipgloss.NewStyle().Foreground(colorWhite)
	Success = lipgloss.NewStyle().Foreground(colorGreen)
	Warning = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	Hint    = lipgloss.NewStyle().Foreground(colorDim)
)

// Dim is the muted foreground, for callers building their own styles.
var Dim = colorDim

// PrintVersion writes the version block for binary.
func PrintVersion(w io.Writer, binary string) {
	fmt.Fprintf(w, "%s %s %s\n",
		Brand.Render(binary),
		Version.Render(buildinfo.Version),
		Hint.Render("("+buildinfo.Codename+")"),
	)
	rows := [][2]string{
		{"Commit", buildinfo.CommitHash},
		{"Built", buildinfo.BuildDate},
		{"OS/Arch", runtime.GOOS + "/" + runtime.GOARCH},
		{"Go", runtime.Version()},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %s %s\n", Label.Render(fmt.Sprintf("%-8s", row[0]+":")), Value.Render(row[1]))
	}
}
