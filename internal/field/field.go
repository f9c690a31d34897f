// Package field builds smooth scalar fields from Gaussian kernels placed at
// atom positions, rasterizes them on a regular grid and extracts contour
// lines. Nothing here knows about molecules or canvases; the renderer wires
// those together.
package field

import "math"

// Kernel is one isotropic 2D Gaussian: amplitude at the center, decaying
// with distance over the spread sigma.
type Kernel struct {
	X, Y      float64
	Sigma     float64
	Amplitude float64
}

// Eval returns the kernel's contribution at (x, y).
func (k Kernel) Eval(x, y float64) float64 {
	dx := x - k.X
	dy := y - k.Y
	return k.Amplitude * math.Exp(-(dx*dx+dy*dy)/(2*k.Sigma*k.Sigma))
}

// Grid is a rasterized field sampled at Step intervals starting from
// (MinX, MinY), row-major with W samples per row.
type Grid struct {
	MinX, MinY float64
	Step       float64
	W, H       int
	Values     []float64
}

// Rasterize samples the summed kernels over the given bounding box expanded
// by pad on every side.
func Rasterize(kernels []Kernel, minX, minY, maxX, maxY, step, pad float64) *Grid {
	minX -= pad
	minY -= pad
	maxX += pad
	maxY += pad
	w := int(math.Ceil((maxX-minX)/step)) + 1
	h := int(math.Ceil((maxY-minY)/step)) + 1
	g := &Grid{MinX: minX, MinY: minY, Step: step, W: w, H: h, Values: make([]float64, w*h)}
	for j := 0; j < h; j++ {
		y := minY + float64(j)*step
		for i := 0; i < w; i++ {
			x := minX + float64(i)*step
			v := 0.0
			for _, k := range kernels {
				v += k.Eval(x, y)
			}
			g.Values[j*w+i] = v
		}
	}
	return g
}

// At returns the sample at column i, row j.
func (g *Grid) At(i, j int) float64 { return g.Values[j*g.W+i] }

// X and Y convert sample indices to field coordinates.
func (g *Grid) X(i int) float64 { return g.MinX + float64(i)*g.Step }
func (g *Grid) Y(j int) float64 { return g.MinY + float64(j)*g.Step }

// Range returns the minimum and maximum sampled values.
func (g *Grid) Range() (min, max float64) {
	if len(g.Values) == 0 {
		return 0, 0
	}
	min, max = g.Values[0], g.Values[0]
	for _, v := range g.Values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Levels spreads n contour levels evenly across the open interval between
// the grid's minimum and maximum. A flat grid has no meaningful levels.
func (g *Grid) Levels(n int) []float64 {
	min, max := g.Range()
	if n <= 0 || max-min < 1e-12 {
		return nil
	}
	levels := make([]float64, 0, n)
	span := max - min
	for i := 1; i <= n; i++ {
		levels = append(levels, min+span*float64(i)/float64(n+1))
	}
	return levels
}
