package color

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{spec: "#FFFFFF", want: "#ffffff"},
		{spec: "FFFFFF", want: "#ffffff"},
		{spec: "FFF", want: "#ffffff"},
		{spec: "#fff", want: "#ffffff"},
		{spec: "#00FF00", want: "#00ff00"},
		{spec: " #000000 ", want: "#000000"},
		{spec: "#f00", want: "#ff0000"},
		{spec: "##123456", want: "#123456"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			c, err := Parse(tt.spec)
			require.NoError(t, err)
			require.Equal(t, tt.want, c.Hex())
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, spec := range []string{"zzzzzz", "", "#", "#12345", "#1234567", "12345g", "red"} {
		_, err := Parse(spec)
		require.Error(t, err, spec)
	}
}

func TestParseOrFallsBack(t *testing.T) {
	fallback := colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	require.Equal(t, fallback, ParseOr("zzzzzz", fallback))
	require.Equal(t, "#ffffff", ParseOr("FFF", fallback).Hex())
}

func TestDefault(t *testing.T) {
	require.Equal(t, "#8e8e93", Default().Hex())
}

func TestHighlightLightens(t *testing.T) {
	base, err := Parse("#000000")
	require.NoError(t, err)

	lit := Highlight(base)
	require.InDelta(t, 0.2, lit.R, 1e-9)
	require.InDelta(t, 0.2, lit.G, 1e-9)
	require.InDelta(t, 0.2, lit.B, 1e-9)

	require.Equal(t, "#ffffff", Highlight(white).Hex())
}

func TestIsLight(t *testing.T) {
	require.True(t, IsLight(white))
	require.False(t, IsLight(colorful.Color{}))
}
