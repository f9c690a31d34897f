// Package molmap renders 2D molecule depictions with a per-atom scalar
// signal (a model's predicted uncertainty or contribution weight) overlaid
// as a continuous color field, numeric annotations at every atom and a
// summary caption.
//
// Each render call is self-contained: it parses the structure, generates a
// conformer when none exists, allocates its own canvas, draws and
// serializes within the call, and keeps no state across calls. Callers may
// therefore run independent renders concurrently without coordination.
package molmap

import (
	"math"
	"strconv"

	"github.com/molmap/molmap/internal/canvas"
	"github.com/molmap/molmap/internal/chem"
)

// Default canvas size in logical pixels.
const (
	DefaultWidth  = 520
	DefaultHeight = 550
)

// captionRise scales the layout's top y-coordinate into the caption
// baseline. Empirical: tuned against the 520x550 canvas and the default
// font sizes, and due for recalibration if either changes.
const captionRise = 1.7

// Renderer draws annotated molecule depictions. The zero value is not
// ready to use; construct with NewRenderer and adjust fields before the
// first call. A Renderer is safe for concurrent use since every call
// builds its canvas, color lookup and options afresh.
type Renderer struct {
	Width, Height int

	// Bands and Sigma are handed to the field renderer.
	Bands int
	Sigma float64

	// Scale colors the weight field; nil falls back to the diverging
	// alarm-white-alarm default.
	Scale ColorScale

	// Opts seeds the per-call draw options. Atom labels and notes are
	// overwritten per call from the structure and weights.
	Opts DrawOptions
}

// NewRenderer returns a Renderer with the fixed depiction configuration:
// 520x550 canvas, 2 contour bands, sigma 0.25, diverging default scale,
// atom notes at 16px and no atom indices.
func NewRenderer() *Renderer {
	return &Renderer{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Bands:  2,
		Sigma:  0.25,
		Scale:  DefaultScale(),
		Opts:   DefaultDrawOptions(),
	}
}

// Render parses a SMILES notation string and draws it with the given
// per-heavy-atom weights, summary value, mode and output format. The
// returned bytes are SVG markup text or a PNG buffer.
func (r *Renderer) Render(notation string, summary float64, weights []float64, mode Mode, format Format) ([]byte, error) {
	mol, err := chem.ParseSMILES(notation)
	if err != nil {
		return nil, &StructureParseError{Notation: notation, Err: err}
	}
	return r.RenderMolecule(mol, summary, weights, mode, format)
}

// RenderMolecule renders an already parsed structure (for callers holding
// mol blocks or SD records). Existing coordinates are used as-is; a missing
// conformer is generated on a private copy, so one molecule can back
// concurrent calls without coordination.
func (r *Renderer) RenderMolecule(mol *chem.Molecule, summary float64, weights []float64, mode Mode, format Format) ([]byte, error) {
	if !mol.HasCoords() {
		laid := &chem.Molecule{
			Atoms: append([]chem.Atom(nil), mol.Atoms...),
			Bonds: mol.Bonds,
		}
		chem.Layout(laid)
		mol = laid
	}

	heavy := mol.HeavyAtoms()
	if len(weights) > len(heavy) {
		// some callers pass weights for a superset of atoms
		weights = weights[:len(heavy)]
	}
	if len(weights) < len(heavy) {
		return nil, &WeightCountMismatchError{Weights: len(weights), HeavyAtoms: len(heavy)}
	}

	opts := r.Opts
	opts.AtomLabels = make([]string, len(mol.Atoms))
	opts.AtomNotes = make([]string, len(mol.Atoms))
	for k, ai := range heavy {
		// force element symbols so carbons are labeled too, and attach
		// the formatted weight as the atom note
		opts.AtomLabels[ai] = mol.Atoms[ai].Element
		opts.AtomNotes[ai] = formatWeight(weights[k])
	}

	tr := r.fitCanvas(mol)

	var cv canvas.Canvas
	switch format {
	case FormatSVG:
		cv = canvas.NewSVG(float64(r.Width), float64(r.Height))
	case FormatPNG:
		cv = canvas.NewRaster(r.Width, r.Height)
	default:
		return nil, &UnsupportedFormatError{Format: string(format)}
	}

	fr := &FieldRenderer{Scale: r.Scale, Bands: r.Bands, Sigma: r.Sigma}
	_, topY, err := fr.Render(mol, weights, cv, tr, opts, mode)
	if err != nil {
		return nil, err
	}

	caption := mode.CaptionPrefix() + ": " + strconv.FormatFloat(summary, 'f', 2, 64)
	cx, cy := tr.Apply(0, topY*captionRise)
	cv.Text(caption, cx, cy, opts.CaptionFontSize, colorBlack, canvas.AnchorStart)

	return cv.Finish()
}

// fitCanvas builds the molecule-to-canvas transform. The fitted box covers
// the padded molecule bounds plus the caption position so the caption
// always lands on-canvas.
func (r *Renderer) fitCanvas(mol *chem.Molecule) canvas.Transform {
	topY := math.Max(0, mol.MaxY())
	top := math.Max(mol.MaxY()+gridPad, topY*captionRise+gridPad)
	return canvas.Fit(
		mol.MinX()-gridPad, mol.MinY()-gridPad,
		mol.MaxX()+gridPad, top,
		float64(r.Width), float64(r.Height),
	)
}

// formatWeight renders an atom weight the shortest way that round-trips,
// so 0.1 stays "0.1".
func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}

// Render is the package-level convenience entry point using the default
// renderer configuration.
func Render(notation string, summary float64, weights []float64, mode Mode, format Format) ([]byte, error) {
	return NewRenderer().Render(notation, summary, weights, mode, format)
}
