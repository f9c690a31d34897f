// Package canvas provides the per-call drawing surfaces: a vector backend
// emitting SVG markup and a raster backend producing PNG bytes. Both work
// in canvas pixel coordinates; the Transform type maps molecule coordinates
// into that frame.
package canvas

import (
	"fmt"
	"image/color"
)

// Anchor controls horizontal text placement relative to the given point.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
)

// Canvas is an output surface owned by a single render call. Draw calls
// append in order; Finish serializes the surface and must be called exactly
// once.
type Canvas interface {
	Size() (w, h float64)
	// FillRect paints a filled axis-aligned rectangle.
	FillRect(x, y, w, h float64, c color.Color)
	// Line strokes a straight segment with the given width in pixels.
	Line(x1, y1, x2, y2, width float64, c color.Color)
	// Text draws a string with its baseline vertically centered on y.
	Text(s string, x, y, size float64, c color.Color, anchor Anchor)
	Finish() ([]byte, error)
}

// Transform is the affine map from molecule coordinates (y up) into canvas
// pixels (y down): uniform scale, centered, flipped.
type Transform struct {
	Scale        float64
	MinX, MinY   float64
	OffX, OffY   float64
	CanvasHeight float64
}

// Fit builds a Transform that fits the box [minX,maxX]x[minY,maxY] into a
// w-by-h canvas, preserving aspect ratio and centering the slack.
func Fit(minX, minY, maxX, maxY, w, h float64) Transform {
	rw := maxX - minX
	rh := maxY - minY
	if rw < 1e-9 {
		rw = 1e-9
	}
	if rh < 1e-9 {
		rh = 1e-9
	}
	scale := w / rw
	if s := h / rh; s < scale {
		scale = s
	}
	return Transform{
		Scale:        scale,
		MinX:         minX,
		MinY:         minY,
		OffX:         (w - rw*scale) / 2,
		OffY:         (h - rh*scale) / 2,
		CanvasHeight: h,
	}
}

// Apply maps a molecule-space point to canvas pixels.
func (t Transform) Apply(x, y float64) (px, py float64) {
	px = (x-t.MinX)*t.Scale + t.OffX
	py = t.CanvasHeight - ((y-t.MinY)*t.Scale + t.OffY)
	return px, py
}

// hexColor formats a color as #rrggbb for SVG attributes.
func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
