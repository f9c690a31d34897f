package molmap

import (
	"math"

	"github.com/molmap/molmap/internal/canvas"
	"github.com/molmap/molmap/internal/chem"
	"github.com/molmap/molmap/internal/field"
)

const (
	// gridStep is the field sampling resolution in molecule coordinate
	// units; gridPad extends the sampled area beyond the molecule's
	// bounding box on every side.
	gridStep = 0.03
	gridPad  = 0.5

	// fillCutoff suppresses cells whose field magnitude is a negligible
	// fraction of the field's peak; they would paint white over white.
	fillCutoff = 1e-3
)

// FieldRenderer overlays a per-atom weight field onto a molecule
// depiction: one Gaussian kernel per heavy atom, summed, rasterized,
// colored through the scale and contoured, with the skeleton drawn on top.
type FieldRenderer struct {
	// Scale is resolved into 3 anchors before any drawing occurs.
	Scale ColorScale
	// Bands is the number of contour lines; ignored when Levels is set.
	Bands int
	// Levels, when non-nil, contours at exactly these field values.
	Levels []float64
	// Sigma is the Gaussian spread; 0 derives it from the molecule's own
	// bond-length scale.
	Sigma float64
}

// DeriveSigma ties the Gaussian spread to the molecule's bond length: 0.3
// times the distance between the first bond's endpoints (or the first two
// atoms of a bondless structure), rounded to two decimals. Requires a
// conformer and at least two atoms.
func DeriveSigma(m *chem.Molecule) float64 {
	var a1, a2 chem.Atom
	if len(m.Bonds) > 0 {
		a1 = m.Atoms[m.Bonds[0].From]
		a2 = m.Atoms[m.Bonds[0].To]
	} else {
		a1 = m.Atoms[0]
		a2 = m.Atoms[1]
	}
	d := math.Hypot(a1.X-a2.X, a1.Y-a2.Y)
	return math.Round(0.3*d*100) / 100
}

// Render draws onto cv through the molecule-to-canvas transform tr.
// It returns whether the field was actually drawn (prediction mode skips
// it) and the top y-coordinate of the layout in molecule units, which the
// caller uses to place the caption.
//
// Prediction mode draws the bare skeleton and succeeds on any structure the
// parser accepted, even a single atom; every other mode requires at least
// two atoms to estimate a spatial scale.
func (fr *FieldRenderer) Render(m *chem.Molecule, weights []float64, cv canvas.Canvas, tr canvas.Transform, opts DrawOptions, mode Mode) (bool, float64, error) {
	topY := 0.0
	for _, a := range m.Atoms {
		if a.Y > topY {
			topY = a.Y
		}
	}

	if mode == ModePrediction {
		drawSkeleton(m, cv, tr, opts)
		return false, topY, nil
	}

	if len(m.Atoms) < 2 {
		return false, 0, &InsufficientAtomsError{Atoms: len(m.Atoms)}
	}

	scale := fr.Scale
	if scale == nil {
		scale = DefaultScale()
	}
	lut, err := resolveScale(scale)
	if err != nil {
		return false, 0, err
	}

	heavy := m.HeavyAtoms()
	if len(weights) < len(heavy) {
		return false, 0, &WeightCountMismatchError{Weights: len(weights), HeavyAtoms: len(heavy)}
	}

	sigma := fr.Sigma
	if sigma <= 0 {
		sigma = DeriveSigma(m)
	}

	kernels := make([]field.Kernel, 0, len(heavy))
	for k, ai := range heavy {
		kernels = append(kernels, field.Kernel{
			X:         m.Atoms[ai].X,
			Y:         m.Atoms[ai].Y,
			Sigma:     sigma,
			Amplitude: weights[k],
		})
	}

	grid := field.Rasterize(kernels, m.MinX(), m.MinY(), m.MaxX(), m.MaxY(), gridStep, gridPad)
	gmin, gmax := grid.Range()
	maxAbs := math.Max(math.Abs(gmin), math.Abs(gmax))

	if maxAbs > 0 {
		fillGrid(grid, lut, maxAbs, cv, tr)
		levels := fr.Levels
		if levels == nil {
			levels = grid.Levels(fr.Bands)
		}
		drawContours(grid, levels, cv, tr)
	}

	drawSkeleton(m, cv, tr, opts)
	return true, topY, nil
}

// fillGrid paints one rectangle per grid cell, colored by the cell's field
// value. The background underneath is left alone.
func fillGrid(g *field.Grid, lut *colorLookup, maxAbs float64, cv canvas.Canvas, tr canvas.Transform) {
	cut := maxAbs * fillCutoff
	cell := g.Step * tr.Scale
	for j := 0; j < g.H; j++ {
		for i := 0; i < g.W; i++ {
			v := g.At(i, j)
			if math.Abs(v) < cut {
				continue
			}
			// cell top-left in canvas space: the y axis flips, so
			// the sample above this one bounds the rectangle
			px, py := tr.Apply(g.X(i), g.Y(j)+g.Step)
			cv.FillRect(px, py, cell+0.5, cell+0.5, lut.at(v, maxAbs))
		}
	}
}

var contourColor = colorGray

func drawContours(g *field.Grid, levels []float64, cv canvas.Canvas, tr canvas.Transform) {
	for _, level := range levels {
		for _, s := range g.Lines(level) {
			x1, y1 := tr.Apply(s.X1, s.Y1)
			x2, y2 := tr.Apply(s.X2, s.Y2)
			cv.Line(x1, y1, x2, y2, 1, contourColor)
		}
	}
}
