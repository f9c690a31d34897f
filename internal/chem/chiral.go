package chem

import "math"

// ChiralCarbons returns the zero-based indices of every chiral carbon.
// Run Hydrogenate first so implicit hydrogen counts are populated.
func ChiralCarbons(m *Molecule) []int {
	var out []int
	for i := range m.Atoms {
		if isChiralCarbon(m, i) {
			out = append(out, i)
		}
	}
	return out
}

// isChiralCarbon checks the 4+0 and 3+1 substitution patterns: four
// distinct non-hydrogen substituents, or three plus exactly one hydrogen.
// Substituents are distinct when no pair of outgoing chains compares equal.
func isChiralCarbon(m *Molecule, ai int) bool {
	if m.Atoms[ai].Element != "C" {
		return false
	}
	h := m.Atoms[ai].HCount
	var nonH []int
	for _, bi := range m.AtomBonds(ai) {
		other := m.otherEnd(bi, ai)
		if m.Atoms[other].Element == "H" && len(m.AtomBonds(other)) == 1 {
			h++
		} else {
			nonH = append(nonH, bi)
		}
	}

	var pairs [][2]int
	switch {
	case len(nonH) == 4 && h == 0:
		pairs = [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	case len(nonH) == 3 && h == 1:
		pairs = [][2]int{{0, 1}, {0, 2}, {1, 2}}
	default:
		return false
	}
	ttl := 3 + int(math.Sqrt(float64(len(m.Atoms))))
	for _, p := range pairs {
		if sameChain(m, ai, ai, nonH[p[0]], nonH[p[1]], ttl) {
			return false
		}
	}
	return true
}

// sameChain walks two substituent chains outward in lockstep and reports
// whether they are indistinguishable within the ttl horizon. The ttl bound
// keeps ring traversals from recursing forever; chains still identical at
// the horizon count as equal, erring toward "not chiral".
func sameChain(m *Molecule, atom1, atom2, chain1, chain2, ttl int) bool {
	if ttl < 0 {
		return true
	}
	if chain1 < 0 || chain2 < 0 || chain1 >= len(m.Bonds) || chain2 >= len(m.Bonds) {
		return true
	}
	b1, b2 := m.Bonds[chain1], m.Bonds[chain2]
	if b1.Order != b2.Order {
		return false
	}
	n1 := m.otherEnd(chain1, atom1)
	n2 := m.otherEnd(chain2, atom2)
	a1, a2 := m.Atoms[n1], m.Atoms[n2]
	if a1.Element != a2.Element {
		return false
	}

	h1, h2 := a1.HCount, a2.HCount
	var subs1, subs2 []int
	for _, bi := range m.AtomBonds(n1) {
		if bi == chain1 {
			continue
		}
		other := m.otherEnd(bi, n1)
		if m.Atoms[other].Element == "H" && len(m.AtomBonds(other)) == 1 {
			h1++
		} else {
			subs1 = append(subs1, bi)
		}
	}
	for _, bi := range m.AtomBonds(n2) {
		if bi == chain2 {
			continue
		}
		other := m.otherEnd(bi, n2)
		if m.Atoms[other].Element == "H" && len(m.AtomBonds(other)) == 1 {
			h2++
		} else {
			subs2 = append(subs2, bi)
		}
	}
	if h1 != h2 || len(subs1) != len(subs2) {
		return false
	}
	if len(subs1) == 0 {
		return true
	}

	ttl--
	for _, s1 := range subs1 {
		matched := false
		for _, s2 := range subs2 {
			if sameChain(m, n1, n2, s1, s2, ttl) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
