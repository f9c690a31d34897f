package canvas

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitApply(t *testing.T) {
	tr := Fit(0, 0, 10, 10, 100, 100)
	assert.InDelta(t, 10.0, tr.Scale, 1e-12)

	// bottom-left of the box lands at the bottom-left pixel, y flipped
	px, py := tr.Apply(0, 0)
	assert.InDelta(t, 0.0, px, 1e-9)
	assert.InDelta(t, 100.0, py, 1e-9)

	px, py = tr.Apply(10, 10)
	assert.InDelta(t, 100.0, px, 1e-9)
	assert.InDelta(t, 0.0, py, 1e-9)

	px, py = tr.Apply(5, 5)
	assert.InDelta(t, 50.0, px, 1e-9)
	assert.InDelta(t, 50.0, py, 1e-9)
}

func TestFitCentersSlack(t *testing.T) {
	// a wide box in a square canvas leaves vertical slack split evenly
	tr := Fit(0, 0, 20, 10, 100, 100)
	assert.InDelta(t, 5.0, tr.Scale, 1e-12)
	_, py := tr.Apply(0, 0)
	assert.InDelta(t, 75.0, py, 1e-9)
	_, py = tr.Apply(0, 10)
	assert.InDelta(t, 25.0, py, 1e-9)
}

func TestFitDegenerateBox(t *testing.T) {
	tr := Fit(3, 3, 3, 3, 100, 100)
	px, py := tr.Apply(3, 3)
	assert.False(t, px != px, "NaN x")
	assert.False(t, py != py, "NaN y")
}

func TestSVGOutput(t *testing.T) {
	c := NewSVG(100, 50)
	w, h := c.Size()
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 50.0, h)

	c.FillRect(1, 2, 3, 4, color.RGBA{R: 255, A: 255})
	c.Line(0, 0, 10, 10, 2, color.Black)
	c.Text("hello", 5, 5, 12, color.Black, AnchorMiddle)

	out, err := c.Finish()
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "<svg")
	assert.Contains(t, s, "</svg>")
	assert.Contains(t, s, "fill:white")
	assert.Contains(t, s, "fill:#ff0000")
	assert.Contains(t, s, "hello")
	assert.Contains(t, s, "text-anchor:middle")
}

func TestSVGDeterministic(t *testing.T) {
	draw := func() []byte {
		c := NewSVG(64, 64)
		c.Line(1, 1, 2, 2, 1.5, color.Black)
		c.Text("N", 3, 3, 10, color.Black, AnchorStart)
		out, err := c.Finish()
		require.NoError(t, err)
		return out
	}
	assert.True(t, bytes.Equal(draw(), draw()))
}

func TestSVGDoubleFinish(t *testing.T) {
	c := NewSVG(10, 10)
	_, err := c.Finish()
	require.NoError(t, err)
	_, err = c.Finish()
	assert.Error(t, err)
}

func TestRasterPNG(t *testing.T) {
	c := NewRaster(40, 30)
	c.FillRect(5, 5, 10, 10, color.RGBA{B: 255, A: 255})
	c.Line(0, 0, 40, 30, 2, color.Black)
	c.Text("C", 20, 15, 12, color.Black, AnchorMiddle)

	out, err := c.Finish()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "\x89PNG\r\n\x1a\n"))
}

func TestRasterFontFailureSurfaces(t *testing.T) {
	// parse the embedded font first so the sync.Once is settled, then
	// inject a failure for this canvas only
	_, err := regularFace(12)
	require.NoError(t, err)
	fontErr = errors.New("font unavailable")
	defer func() { fontErr = nil }()

	c := NewRaster(10, 10)
	c.Text("C", 5, 5, 12, color.Black, AnchorMiddle)
	_, err = c.Finish()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "font")
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, "#000000", hexColor(color.Black))
	assert.Equal(t, "#ff0000", hexColor(color.RGBA{R: 255, A: 255}))
	assert.Equal(t, "#6e6e6e", hexColor(color.Gray{Y: 110}))
}
