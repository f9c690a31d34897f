package molmap

import (
	"image/color"
	"math"
	"strconv"

	"github.com/molmap/molmap/internal/canvas"
	"github.com/molmap/molmap/internal/chem"
)

var (
	colorBlack = color.Black
	colorGray  = color.Gray{Y: 110}
)

// DrawOptions carries the per-call drawing configuration. A fresh value is
// built for every render so calls stay independent.
type DrawOptions struct {
	// ShowAtomIndices draws the zero-based atom index next to each atom.
	ShowAtomIndices bool
	// MarkChiral stars chiral carbons the way wedge-free flat depictions do.
	MarkChiral bool

	NoteFontSize    float64
	LabelFontSize   float64
	CaptionFontSize float64
	LineWidth       float64

	// AtomLabels forces per-atom display labels; a nil slice keeps the
	// default behavior of hiding carbon symbols. Empty string hides the
	// label for that atom.
	AtomLabels []string
	// AtomNotes are small per-atom annotations drawn beside each atom.
	AtomNotes []string
}

// DefaultDrawOptions mirrors the fixed drawing configuration of the
// annotated renderer: no atom indices, 16px atom notes.
func DefaultDrawOptions() DrawOptions {
	return DrawOptions{
		NoteFontSize:    16,
		LabelFontSize:   18,
		CaptionFontSize: 20,
		LineWidth:       2,
	}
}

// drawSkeleton renders bonds, atom labels, notes and optional markers onto
// the canvas. Labeled atoms get a clear zone so bond lines stop short of
// the glyphs.
func drawSkeleton(m *chem.Molecule, cv canvas.Canvas, tr canvas.Transform, opts DrawOptions) {
	n := len(m.Atoms)
	px := make([]float64, n)
	py := make([]float64, n)
	labels := make([]string, n)
	halfW := make([]float64, n)
	halfH := make([]float64, n)

	for i, a := range m.Atoms {
		px[i], py[i] = tr.Apply(a.X, a.Y)
		label := ""
		if opts.AtomLabels != nil {
			if i < len(opts.AtomLabels) {
				label = opts.AtomLabels[i]
			}
		} else if a.Element != "C" {
			label = a.Element
		}
		labels[i] = label
		if label != "" {
			// approximate glyph bounds; both backends use the same
			// estimate so geometry stays identical across formats
			halfW[i] = 0.3*opts.LabelFontSize*float64(len(label)) + 1
			halfH[i] = 0.55 * opts.LabelFontSize
		}
	}

	for _, b := range m.Bonds {
		p1 := confineLineEnd(px[b.From], py[b.From], px[b.To], py[b.To], halfW[b.From], halfH[b.From])
		p2 := confineLineEnd(px[b.To], py[b.To], px[b.From], py[b.From], halfW[b.To], halfH[b.To])
		rad := math.Atan2(p2.y-p1.y, p2.x-p1.x)
		delta := opts.LabelFontSize / 6
		dx := math.Sin(rad) * delta
		dy := -math.Cos(rad) * delta
		switch b.Order {
		case 2:
			cv.Line(p1.x+dx/2, p1.y+dy/2, p2.x+dx/2, p2.y+dy/2, opts.LineWidth, colorBlack)
			cv.Line(p1.x-dx/2, p1.y-dy/2, p2.x-dx/2, p2.y-dy/2, opts.LineWidth, colorBlack)
		case 3:
			cv.Line(p1.x, p1.y, p2.x, p2.y, opts.LineWidth, colorBlack)
			cv.Line(p1.x+dx, p1.y+dy, p2.x+dx, p2.y+dy, opts.LineWidth, colorBlack)
			cv.Line(p1.x-dx, p1.y-dy, p2.x-dx, p2.y-dy, opts.LineWidth, colorBlack)
		default:
			cv.Line(p1.x, p1.y, p2.x, p2.y, opts.LineWidth, colorBlack)
		}
	}

	var chiral map[int]bool
	if opts.MarkChiral {
		chiral = map[int]bool{}
		for _, ai := range chem.ChiralCarbons(m) {
			chiral[ai] = true
		}
	}

	for i := range m.Atoms {
		if labels[i] != "" {
			cv.Text(labels[i], px[i], py[i], opts.LabelFontSize, colorBlack, canvas.AnchorMiddle)
		}
		if chiral[i] {
			r := opts.LabelFontSize * 0.35
			cv.Text("*", px[i]+halfW[i]+r, py[i]-r, opts.LabelFontSize, colorBlack, canvas.AnchorMiddle)
		}
		if opts.AtomNotes != nil && i < len(opts.AtomNotes) && opts.AtomNotes[i] != "" {
			nx := px[i] + halfW[i] + 0.3*opts.NoteFontSize
			ny := py[i] + halfH[i] + 0.55*opts.NoteFontSize
			cv.Text(opts.AtomNotes[i], nx, ny, opts.NoteFontSize, colorBlack, canvas.AnchorMiddle)
		}
		if opts.ShowAtomIndices {
			ix := px[i] - halfW[i] - 0.3*opts.NoteFontSize
			iy := py[i] - halfH[i] - 0.4*opts.NoteFontSize
			cv.Text(strconv.Itoa(i), ix, iy, opts.NoteFontSize*0.75, colorGray, canvas.AnchorMiddle)
		}
	}
}

type point struct{ x, y float64 }

// confineLineEnd moves the bond endpoint at (x, y) out of the label clear
// zone of half-extents (w, h), along the direction toward (x2, y2).
func confineLineEnd(x, y, x2, y2, w, h float64) point {
	if w == 0 && h == 0 {
		return point{x: x, y: y}
	}
	k := math.Atan2(h, w)
	sigx := math.Copysign(1, x2-x)
	sigy := math.Copysign(1, y2-y)
	absRad := math.Atan2(math.Abs(y2-y), math.Abs(x2-x))
	if absRad > k {
		return point{x: x + sigx*h/math.Tan(absRad), y: y + sigy*h}
	}
	return point{x: x + sigx*w, y: y + sigy*w*math.Tan(absRad)}
}
