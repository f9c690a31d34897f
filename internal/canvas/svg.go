package canvas

import (
	"bytes"
	"fmt"
	"image/color"

	svg "github.com/ajstarks/svgo/float"
)

// SVG is the vector backend. Output is plain SVG text; identical draw
// sequences produce byte-identical markup.
type SVG struct {
	buf      bytes.Buffer
	doc      *svg.SVG
	w, h     float64
	finished bool
}

// NewSVG opens a vector canvas of the given pixel size with a white
// background rectangle.
func NewSVG(w, h float64) *SVG {
	c := &SVG{w: w, h: h}
	c.doc = svg.New(&c.buf)
	c.doc.Start(w, h)
	c.doc.Rect(0, 0, w, h, "fill:white")
	return c
}

func (c *SVG) Size() (float64, float64) { return c.w, c.h }

func (c *SVG) FillRect(x, y, w, h float64, col color.Color) {
	c.doc.Rect(x, y, w, h, fmt.Sprintf("fill:%s;stroke:none", hexColor(col)))
}

func (c *SVG) Line(x1, y1, x2, y2, width float64, col color.Color) {
	c.doc.Line(x1, y1, x2, y2,
		fmt.Sprintf("stroke:%s;stroke-width:%.2f;stroke-linecap:round", hexColor(col), width))
}

func (c *SVG) Text(s string, x, y, size float64, col color.Color, anchor Anchor) {
	a := "start"
	if anchor == AnchorMiddle {
		a = "middle"
	}
	// dominant-baseline keeps vertical centering consistent with the
	// raster backend's anchored drawing
	c.doc.Text(x, y, s, fmt.Sprintf(
		"fill:%s;font-family:sans-serif;font-size:%.1fpx;text-anchor:%s;dominant-baseline:middle",
		hexColor(col), size, a))
}

func (c *SVG) Finish() ([]byte, error) {
	if c.finished {
		return nil, fmt.Errorf("canvas already finished")
	}
	c.finished = true
	c.doc.End()
	return c.buf.Bytes(), nil
}
