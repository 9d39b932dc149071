package indicator

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/lucasb-eyer/go-colorful"
)

// Badge geometry in pixels.
const (
	BadgeSize   = 22
	badgeMargin = 2
	badgeRadius = 3
)

// Badge renders a rounded square filled with c as PNG bytes for tray icons.
func Badge(c colorful.Color) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, BadgeSize, BadgeSize))
	fill := toNRGBA(c)

	lo, hi := badgeMargin, BadgeSize-badgeMargin-1
	for y := lo; y <= hi; y++ {
		for x := lo; x <= hi; x++ {
			if insideRoundedRect(x, y, lo, hi, badgeRadius) {
				img.SetNRGBA(x, y, fill)
			}
		}
	}
	return encode(img)
}

// Blank renders a fully transparent icon, used once the indicator is removed.
func Blank() []byte {
	return encode(image.NewNRGBA(image.Rect(0, 0, BadgeSize, BadgeSize)))
}

func insideRoundedRect(x, y, lo, hi, r int) bool {
	cx, cy := x, y
	switch {
	case x < lo+r:
		cx = lo + r
	case x > hi-r:
		cx = hi - r
	}
	switch {
	case y < lo+r:
		cy = lo + r
	case y > hi-r:
		cy = hi - r
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

func encode(img image.Image) []byte {
	var buf bytes.Buffer
	// Encoding an in-memory NRGBA image cannot fail.
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
