package chem

import (
	"fmt"
	"math"
	"sort"
)

// BondLength is the target bond length, in molecule coordinate units, of
// generated conformers. Sigma auto-derivation keys off actual bond lengths
// so rendering is independent of this exact value.
const BondLength = 1.5

// Layout generates 2D coordinates for a molecule that has no conformer.
// The pass is deterministic: the same graph always yields the same
// coordinates. Rings are placed as regular polygons, fused rings are
// reflected across their shared edge, and acyclic atoms extend in a zig-zag
// with 120 degree bond angles. The result is centered on the centroid of
// the atom positions. A molecule that already has coordinates is returned
// untouched.
func Layout(m *Molecule) {
	n := len(m.Atoms)
	if n == 0 || m.HasCoords() {
		return
	}
	if n == 1 {
		m.Atoms[0].X, m.Atoms[0].Y = 0, 0
		m.SetCoords()
		return
	}

	placed := make([]bool, n)
	ringForBond, ringKey := perceiveRings(m)
	ringDone := map[string]bool{}

	seedX := 0.0
	for start := 0; start < n; start++ {
		if placed[start] {
			continue
		}
		m.Atoms[start].X, m.Atoms[start].Y = seedX, 0
		placed[start] = true

		queue := []int{start}
		for len(queue) > 0 {
			a := queue[0]
			queue = queue[1:]
			for _, bi := range m.AtomBonds(a) {
				b := m.otherEnd(bi, a)
				if placed[b] {
					continue
				}
				if ring := ringForBond[bi]; ring != nil && !ringDone[ringKey[bi]] {
					ringDone[ringKey[bi]] = true
					queue = append(queue, placeRing(m, ring, placed)...)
				}
				if !placed[b] {
					theta := openDirection(m, a, placed)
					m.Atoms[b].X = m.Atoms[a].X + BondLength*math.Cos(theta)
					m.Atoms[b].Y = m.Atoms[a].Y + BondLength*math.Sin(theta)
					placed[b] = true
					queue = append(queue, b)
				}
			}
		}
		// next disconnected fragment starts right of everything so far
		for i := 0; i < n; i++ {
			if placed[i] && m.Atoms[i].X+2*BondLength > seedX {
				seedX = m.Atoms[i].X + 2*BondLength
			}
		}
	}

	// center on the centroid so the caption baseline at x=0 sits inside
	// the depiction
	var cx, cy float64
	for _, a := range m.Atoms {
		cx += a.X
		cy += a.Y
	}
	cx /= float64(n)
	cy /= float64(n)
	for i := range m.Atoms {
		m.Atoms[i].X -= cx
		m.Atoms[i].Y -= cy
	}
	m.SetCoords()
}

// openDirection picks the bond direction for a new substituent of atom a.
// With no placed neighbor the chain starts 30 degrees below horizontal;
// with one, the chain zig-zags at 120 degree angles; with several, the
// widest angular gap wins. Ties resolve to the smallest candidate angle so
// the choice is deterministic.
func openDirection(m *Molecule, a int, placed []bool) float64 {
	var occupied []float64
	for _, nb := range m.Neighbors(a) {
		if placed[nb] {
			occupied = append(occupied, math.Atan2(m.Atoms[nb].Y-m.Atoms[a].Y, m.Atoms[nb].X-m.Atoms[a].X))
		}
	}
	switch len(occupied) {
	case 0:
		return -math.Pi / 6
	case 1:
		sign := 1.0
		if a%2 == 1 {
			sign = -1.0
		}
		return occupied[0] + math.Pi + sign*math.Pi/6
	}
	best, bestSep := 0.0, -1.0
	for k := 0; k < 24; k++ {
		cand := float64(k) * math.Pi / 12
		sep := math.MaxFloat64
		for _, o := range occupied {
			d := math.Abs(angleDiff(cand, o))
			if d < sep {
				sep = d
			}
		}
		if sep > bestSep+1e-9 {
			bestSep = sep
			best = cand
		}
	}
	return best
}

func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	if d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// placeRing positions the unplaced atoms of a ring as a regular polygon
// anchored on whatever part of it is already placed, and returns the
// freshly placed atom indices.
func placeRing(m *Molecule, ring []int, placed []bool) []int {
	k := len(ring)
	half := math.Pi / float64(k)
	radius := BondLength / (2 * math.Sin(half))

	// look for an already placed edge of the ring to reflect across
	edgeAt := -1
	for i := 0; i < k; i++ {
		if placed[ring[i]] && placed[ring[(i+1)%k]] {
			edgeAt = i
			break
		}
	}

	var cx, cy float64
	var uAngle float64
	var uIdx int
	dir := 1.0

	if edgeAt >= 0 {
		u, v := ring[edgeAt], ring[(edgeAt+1)%k]
		ux, uy := m.Atoms[u].X, m.Atoms[u].Y
		vx, vy := m.Atoms[v].X, m.Atoms[v].Y
		mx, my := (ux+vx)/2, (uy+vy)/2
		elen := math.Hypot(vx-ux, vy-uy)
		if elen < 1e-9 {
			elen = BondLength
		}
		r := elen / (2 * math.Sin(half))
		apo := r * math.Cos(half)
		// perpendicular to the shared edge, on the side away from
		// the rest of the already placed structure
		px, py := -(vy-uy)/elen, (vx-ux)/elen
		if side := placedSide(m, placed, ring, mx, my, px, py); side < 0 {
			px, py = -px, -py
		}
		cx, cy = mx+px*apo, my+py*apo
		radius = r
		uIdx = edgeAt
		uAngle = math.Atan2(uy-cy, ux-cx)
		// walk the ring in whichever rotational direction reaches v next
		vAngle := math.Atan2(vy-cy, vx-cx)
		if angleDiff(vAngle, uAngle) < 0 {
			dir = -1.0
		}
	} else {
		// anchored on a single placed atom (first ring of a system,
		// or a spiro junction)
		uIdx = 0
		for i, ai := range ring {
			if placed[ai] {
				uIdx = i
				break
			}
		}
		u := ring[uIdx]
		theta := openDirection(m, u, placed)
		cx = m.Atoms[u].X + radius*math.Cos(theta)
		cy = m.Atoms[u].Y + radius*math.Sin(theta)
		uAngle = theta + math.Pi
	}

	var fresh []int
	step := 2 * math.Pi / float64(k)
	for t := 0; t < k; t++ {
		ai := ring[(uIdx+t)%k]
		if placed[ai] {
			continue
		}
		ang := uAngle + dir*float64(t)*step
		m.Atoms[ai].X = cx + radius*math.Cos(ang)
		m.Atoms[ai].Y = cy + radius*math.Sin(ang)
		placed[ai] = true
		fresh = append(fresh, ai)
	}
	return fresh
}

// placedSide reports which side of the edge normal (px,py) through (mx,my)
// the already placed non-ring structure predominantly lies on: +1 if the
// normal points away from it (or nothing is placed nearby), -1 otherwise.
func placedSide(m *Molecule, placed []bool, ring []int, mx, my, px, py float64) float64 {
	inRing := map[int]bool{}
	for _, ai := range ring {
		inRing[ai] = true
	}
	sum := 0.0
	for i := range m.Atoms {
		if !placed[i] || inRing[i] {
			continue
		}
		sum += (m.Atoms[i].X-mx)*px + (m.Atoms[i].Y-my)*py
	}
	if sum > 0 {
		return -1
	}
	return 1
}

// perceiveRings maps every ring bond to the smallest ring containing it,
// expressed as an atom cycle, plus a canonical key shared by bonds of the
// same ring.
func perceiveRings(m *Molecule) (map[int][]int, map[int]string) {
	ringForBond := make(map[int][]int, len(m.Bonds))
	ringKey := make(map[int]string, len(m.Bonds))
	for bi := range m.Bonds {
		ring := smallestRingThroughBond(m, bi)
		if ring == nil {
			ringForBond[bi] = nil
			continue
		}
		ringForBond[bi] = ring
		sorted := append([]int(nil), ring...)
		sort.Ints(sorted)
		ringKey[bi] = fmt.Sprint(sorted)
	}
	return ringForBond, ringKey
}

// smallestRingThroughBond finds the shortest atom path between the bond's
// endpoints that avoids the bond itself; together with the bond it forms
// the smallest ring through it. Returns nil for acyclic bonds.
func smallestRingThroughBond(m *Molecule, bi int) []int {
	src, dst := m.Bonds[bi].From, m.Bonds[bi].To
	prev := make([]int, len(m.Atoms))
	for i := range prev {
		prev[i] = -2
	}
	prev[src] = -1
	queue := []int{src}
	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		for _, nbi := range m.AtomBonds(a) {
			if nbi == bi {
				continue
			}
			nb := m.otherEnd(nbi, a)
			if prev[nb] != -2 {
				continue
			}
			prev[nb] = a
			if nb == dst {
				var path []int
				for at := dst; at != -1; at = prev[at] {
					path = append(path, at)
				}
				// path runs dst..src; reverse for src..dst order
				for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
					path[l], path[r] = path[r], path[l]
				}
				return path
			}
			queue = append(queue, nb)
		}
	}
	return nil
}
