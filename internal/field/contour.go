package field

// Segment is one contour line piece in field coordinates.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Lines extracts the iso-line at the given level from the grid using
// marching squares. Output order is fixed by the grid walk, so identical
// grids yield identical segment lists.
func (g *Grid) Lines(level float64) []Segment {
	var segs []Segment
	for j := 0; j < g.H-1; j++ {
		for i := 0; i < g.W-1; i++ {
			segs = appendCellSegments(segs, g, i, j, level)
		}
	}
	return segs
}

// appendCellSegments handles one grid cell. Corners are indexed
//
//	a(i,j)----b(i+1,j)
//	  |          |
//	d(i,j+1)--c(i+1,j+1)
//
// and the case number sets a bit per corner above the level.
func appendCellSegments(segs []Segment, g *Grid, i, j int, level float64) []Segment {
	a := g.At(i, j)
	b := g.At(i+1, j)
	c := g.At(i+1, j+1)
	d := g.At(i, j+1)

	code := 0
	if a > level {
		code |= 1
	}
	if b > level {
		code |= 2
	}
	if c > level {
		code |= 4
	}
	if d > level {
		code |= 8
	}
	if code == 0 || code == 15 {
		return segs
	}

	x0, y0 := g.X(i), g.Y(j)
	x1, y1 := g.X(i+1), g.Y(j+1)
	top := func() (float64, float64) { return interp(x0, x1, a, b, level), y0 }
	bottom := func() (float64, float64) { return interp(x0, x1, d, c, level), y1 }
	left := func() (float64, float64) { return x0, interp(y0, y1, a, d, level) }
	right := func() (float64, float64) { return x1, interp(y0, y1, b, c, level) }

	add := func(p1, p2 func() (float64, float64)) {
		ax, ay := p1()
		bx, by := p2()
		segs = append(segs, Segment{X1: ax, Y1: ay, X2: bx, Y2: by})
	}

	switch code {
	case 1, 14:
		add(left, top)
	case 2, 13:
		add(top, right)
	case 3, 12:
		add(left, right)
	case 4, 11:
		add(right, bottom)
	case 6, 9:
		add(top, bottom)
	case 7, 8:
		add(left, bottom)
	case 5: // saddle: keep both crossings, fixed orientation
		add(left, top)
		add(right, bottom)
	case 10:
		add(top, right)
		add(left, bottom)
	}
	return segs
}

// interp linearly locates the level crossing between two samples.
func interp(p0, p1, v0, v1, level float64) float64 {
	if v1 == v0 {
		return (p0 + p1) / 2
	}
	t := (level - v0) / (v1 - v0)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return p0 + t*(p1-p0)
}
