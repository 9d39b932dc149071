// Package tray implements the system tray entry that shows the indicator.
package tray

// Controls lets tray menu clicks reach the dispatcher.
type Controls interface {
	ToggleHighlight() bool
	RequestQuit() bool
}

const defaultTooltip = "pipebar"
