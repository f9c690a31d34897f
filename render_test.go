package molmap

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molmap/molmap/internal/chem"
)

func TestRenderEthanolSVG(t *testing.T) {
	out, err := Render("CCO", 0.5, []float64{0.1, 0.5, 0.9}, ModeTotal, FormatSVG)
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "<svg")
	assert.Contains(t, s, "</svg>")
	assert.Contains(t, s, "Total: 0.50")

	// every heavy atom carries its weight as a note
	assert.Contains(t, s, ">0.1<")
	assert.Contains(t, s, ">0.5<")
	assert.Contains(t, s, ">0.9<")

	// carbons are labeled too, not just heteroatoms
	assert.Contains(t, s, ">C<")
	assert.Contains(t, s, ">O<")
}

func TestRenderDeterministic(t *testing.T) {
	render := func() []byte {
		out, err := Render("CC(C)c1ccccc1O", 0.73, []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}, ModeEpistemic, FormatSVG)
		require.NoError(t, err)
		return out
	}
	assert.True(t, bytes.Equal(render(), render()), "same input yields byte-identical output")
}

func TestRenderPNG(t *testing.T) {
	out, err := Render("CCO", 0.5, []float64{0.1, 0.5, 0.9}, ModeTotal, FormatPNG)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("\x89PNG\r\n\x1a\n")))
	assert.Greater(t, len(out), 100)
}

func TestRenderCaptionPerMode(t *testing.T) {
	for mode, want := range map[Mode]string{
		ModePrediction: "Prediction: 1.25",
		ModeAleatoric:  "Aleatoric: 1.25",
		ModeEpistemic:  "Epistemic: 1.25",
		ModeTotal:      "Total: 1.25",
	} {
		out, err := Render("CCO", 1.25, []float64{0.1, 0.2, 0.3}, mode, FormatSVG)
		require.NoError(t, err, mode)
		assert.Contains(t, string(out), want)
	}
}

func TestRenderUnknownModeFallsBackToTotal(t *testing.T) {
	out, err := Render("CCO", 0.5, []float64{0.1, 0.2, 0.3}, ParseMode("bogus"), FormatSVG)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Total: 0.50")
}

func TestRenderPredictionSkipsField(t *testing.T) {
	pred, err := Render("CCO", 0.5, []float64{0.1, 0.2, 0.3}, ModePrediction, FormatSVG)
	require.NoError(t, err)
	total, err := Render("CCO", 0.5, []float64{0.1, 0.2, 0.3}, ModeTotal, FormatSVG)
	require.NoError(t, err)

	// the field fill paints one rectangle per occupied grid cell; the bare
	// skeleton needs only the background rectangle
	assert.Equal(t, 1, strings.Count(string(pred), "<rect"))
	assert.Greater(t, strings.Count(string(total), "<rect"), 100)
}

func TestRenderSingleAtom(t *testing.T) {
	out, err := Render("C", 0.5, []float64{0.5}, ModePrediction, FormatSVG)
	require.NoError(t, err, "prediction mode accepts a lone atom")
	assert.Contains(t, string(out), "Prediction: 0.50")

	_, err = Render("C", 0.5, []float64{0.5}, ModeTotal, FormatSVG)
	var atomsErr *InsufficientAtomsError
	require.True(t, errors.As(err, &atomsErr))
	assert.Equal(t, 1, atomsErr.Atoms)
}

func TestRenderWeightCounts(t *testing.T) {
	// extra weights are truncated silently
	_, err := Render("CCO", 0.5, []float64{0.1, 0.2, 0.3, 0.4, 0.5}, ModeTotal, FormatSVG)
	assert.NoError(t, err)

	// missing weights are an error
	_, err = Render("CCO", 0.5, []float64{0.1, 0.2}, ModeTotal, FormatSVG)
	var weightErr *WeightCountMismatchError
	require.True(t, errors.As(err, &weightErr))
	assert.Equal(t, 2, weightErr.Weights)
	assert.Equal(t, 3, weightErr.HeavyAtoms)
}

func TestRenderParseFailure(t *testing.T) {
	for _, bad := range []string{"", "C(", "C1CC", "Cx", "C%1C"} {
		_, err := Render(bad, 0.5, []float64{0.1}, ModeTotal, FormatSVG)
		var parseErr *StructureParseError
		assert.True(t, errors.As(err, &parseErr), "notation %q", bad)
	}
}

func TestRenderUnknownScale(t *testing.T) {
	r := NewRenderer()
	r.Scale = NamedScale("sunset")
	_, err := r.Render("CCO", 0.5, []float64{0.1, 0.2, 0.3}, ModeTotal, FormatSVG)
	var scaleErr *UnsupportedColorScaleError
	assert.True(t, errors.As(err, &scaleErr))
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render("CCO", 0.5, []float64{0.1, 0.2, 0.3}, ModeTotal, Format("gif"))
	var formatErr *UnsupportedFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Contains(t, formatErr.Error(), "gif")
}

func TestDeriveSigma(t *testing.T) {
	bonded := &chem.Molecule{
		Atoms: []chem.Atom{{Element: "C", X: 0, Y: 0}, {Element: "C", X: 2, Y: 0}},
		Bonds: []chem.Bond{{From: 0, To: 1, Order: 1}},
	}
	assert.InDelta(t, 0.6, DeriveSigma(bonded), 1e-12)

	bondless := &chem.Molecule{
		Atoms: []chem.Atom{{Element: "He", X: 0, Y: 0}, {Element: "Ne", X: 1, Y: 1}},
	}
	// 0.3 * sqrt(2) rounded to two decimals
	assert.InDelta(t, 0.42, DeriveSigma(bondless), 1e-12)
}

func TestRenderMoleculeLeavesInputUntouched(t *testing.T) {
	mol, err := chem.ParseSMILES("CCO")
	require.NoError(t, err)
	require.False(t, mol.HasCoords())

	r := NewRenderer()
	first, err := r.RenderMolecule(mol, 0.5, []float64{0.1, 0.5, 0.9}, ModeTotal, FormatSVG)
	require.NoError(t, err)

	// layout ran on a private copy; the caller's molecule is unchanged
	assert.False(t, mol.HasCoords())
	for _, a := range mol.Atoms {
		assert.Zero(t, a.X)
		assert.Zero(t, a.Y)
	}

	second, err := r.RenderMolecule(mol, 0.5, []float64{0.1, 0.5, 0.9}, ModeTotal, FormatSVG)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second))
}

func TestRenderMoleculeKeepsConformer(t *testing.T) {
	mol, err := chem.ParseMolBlock(ethanolBlock)
	require.NoError(t, err)
	require.True(t, mol.HasCoords())

	out, err := NewRenderer().RenderMolecule(mol, 0.5, []float64{0.1, 0.5, 0.9}, ModeTotal, FormatSVG)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Total: 0.50")
}

const ethanolBlock = `ethanol
  test

  3  2  0  0  0  0  0  0  0  0999 V2000
    0.0000    0.0000    0.0000 C   0  0  0  0  0  0
    1.2990    0.7500    0.0000 C   0  0  0  0  0  0
    2.5981    0.0000    0.0000 O   0  0  0  0  0  0
  1  2  1  0
  2  3  1  0
M  END
`
