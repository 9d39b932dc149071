// Package color parses the hex color specs carried by add commands.
package color

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultSpec is used when the settings carry no usable fallback.
const DefaultSpec = "#8E8E93"

// highlightLevel is how far a highlighted indicator is blended toward white.
const highlightLevel = 0.2

var white = colorful.Color{R: 1, G: 1, B: 1}

// Default returns the built-in fallback color.
func Default() colorful.Color {
	c, _ := colorful.Hex(DefaultSpec)
	return c
}

// Parse accepts RRGGBB or RGB, with or without leading '#'.
func Parse(spec string) (colorful.Color, error) {
	digits := strings.ReplaceAll(strings.TrimSpace(spec), "#", "")
	if len(digits) != 6 && len(digits) != 3 {
		return colorful.Color{}, fmt.Errorf("color %q: want 3 or 6 hex digits, got %d", spec, len(digits))
	}
	for _, r := range digits {
		if !isHexDigit(r) {
			return colorful.Color{}, fmt.Errorf("color %q: %q is not a hex digit", spec, r)
		}
	}
	c, err := colorful.Hex("#" + strings.ToLower(digits))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("color %q: %w", spec, err)
	}
	return c, nil
}

// ParseOr is Parse with a fallback for malformed specs. It never fails.
func ParseOr(spec string, fallback colorful.Color) colorful.Color {
	c, err := Parse(spec)
	if err != nil {
		return fallback
	}
	return c
}

// Highlight returns the color used while the indicator is highlighted.
func Highlight(c colorful.Color) colorful.Color {
	return c.BlendRgb(white, highlightLevel).Clamped()
}

// IsLight reports whether dark text reads better than light text on c.
func IsLight(c colorful.Color) bool {
	l, _, _ := c.Lab()
	return l > 0.6
}

func isHexDigit(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}
