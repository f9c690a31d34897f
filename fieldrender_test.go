package molmap

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molmap/molmap/internal/canvas"
	"github.com/molmap/molmap/internal/chem"
)

// renderFieldSVG runs one field render of laid-out ethanol onto a fresh
// vector canvas and returns the markup.
func renderFieldSVG(t *testing.T, fr *FieldRenderer) string {
	t.Helper()
	mol, err := chem.ParseSMILES("CCO")
	require.NoError(t, err)
	chem.Layout(mol)

	tr := canvas.Fit(
		mol.MinX()-gridPad, mol.MinY()-gridPad,
		mol.MaxX()+gridPad, mol.MaxY()+gridPad,
		float64(DefaultWidth), float64(DefaultHeight),
	)
	cv := canvas.NewSVG(float64(DefaultWidth), float64(DefaultHeight))

	drawn, _, err := fr.Render(mol, []float64{0.1, 0.5, 0.9}, cv, tr, DefaultDrawOptions(), ModeTotal)
	require.NoError(t, err)
	require.True(t, drawn)

	out, err := cv.Finish()
	require.NoError(t, err)
	return string(out)
}

// Contour lines are the only gray strokes in the output, which tells them
// apart from black bond lines.
func countContourStrokes(s string) int {
	return strings.Count(s, "stroke:#6e6e6e")
}

func TestFieldRendererExplicitLevels(t *testing.T) {
	out := renderFieldSVG(t, &FieldRenderer{Levels: []float64{0.25, 0.75}, Sigma: 0.25})
	assert.Greater(t, countContourStrokes(out), 0, "contours drawn at the given levels")
}

func TestFieldRendererLevelsOverrideBands(t *testing.T) {
	few := renderFieldSVG(t, &FieldRenderer{Levels: []float64{0.25, 0.75}, Bands: 1, Sigma: 0.25})
	many := renderFieldSVG(t, &FieldRenderer{Levels: []float64{0.25, 0.75}, Bands: 99, Sigma: 0.25})
	assert.True(t, bytes.Equal([]byte(few), []byte(many)), "band count is ignored when explicit levels are set")
}

func TestFieldRendererLevelsOutsideRange(t *testing.T) {
	out := renderFieldSVG(t, &FieldRenderer{Levels: []float64{1e9}, Sigma: 0.25})
	assert.Equal(t, 0, countContourStrokes(out), "a level above the field peak draws no contour")

	banded := renderFieldSVG(t, &FieldRenderer{Bands: 2, Sigma: 0.25})
	assert.Greater(t, countContourStrokes(banded), 0)
}
