package canvas

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce   sync.Once
	fontParsed *truetype.Font
	fontErr    error
)

// regularFace returns a sized face of the embedded Go Regular font. The
// font travels with the binary so rendering never depends on a TTF on disk.
func regularFace(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		fontParsed, fontErr = truetype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}
	return truetype.NewFace(fontParsed, &truetype.Options{Size: size}), nil
}

// Raster is the PNG backend on a gg drawing context.
type Raster struct {
	dc       *gg.Context
	w, h     float64
	err      error
	finished bool
}

// NewRaster opens a raster canvas of the given pixel size, cleared white.
func NewRaster(w, h int) *Raster {
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	return &Raster{dc: dc, w: float64(w), h: float64(h)}
}

func (c *Raster) Size() (float64, float64) { return c.w, c.h }

func (c *Raster) FillRect(x, y, w, h float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

func (c *Raster) Line(x1, y1, x2, y2, width float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(x1, y1, x2, y2)
	c.dc.Stroke()
}

func (c *Raster) Text(s string, x, y, size float64, col color.Color, anchor Anchor) {
	face, err := regularFace(size)
	if err != nil {
		// an image missing its labels is not a valid render; the error
		// surfaces when the canvas is finished
		if c.err == nil {
			c.err = fmt.Errorf("load embedded font: %w", err)
		}
		return
	}
	c.dc.SetFontFace(face)
	c.dc.SetColor(col)
	ax := 0.0
	if anchor == AnchorMiddle {
		ax = 0.5
	}
	c.dc.DrawStringAnchored(s, x, y, ax, 0.35)
}

func (c *Raster) Finish() ([]byte, error) {
	if c.finished {
		return nil, fmt.Errorf("canvas already finished")
	}
	c.finished = true
	if c.err != nil {
		return nil, c.err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, c.dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
