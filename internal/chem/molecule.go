// Package chem holds the molecular graph model plus the structure input
// pipeline: SMILES and V2000 mol-block parsing, implicit hydrogen filling,
// deterministic 2D coordinate generation and chiral-carbon perception.
package chem

import "math"

// Atom is a single node of the molecular graph. X/Y hold the 2D conformer
// position once coordinates exist (parsed from a mol block or generated by
// Layout).
type Atom struct {
	Element  string
	X, Y     float64
	HCount   int
	Charge   int
	Aromatic bool

	// HFixed marks a bracket atom whose hydrogen count was given
	// explicitly, e.g. [nH]; Hydrogenate leaves such atoms alone.
	HFixed bool
}

// Bond connects two atoms by zero-based index. Order is 1..3 after
// kekulization; Aromatic is kept so drawing code can tell a kekulized
// double apart from a plain one if it ever needs to.
type Bond struct {
	From, To int
	Order    int
	Aromatic bool
}

// Molecule is an atom/bond graph with an optional 2D conformer.
// Rendering code treats it as immutable; the only mutating passes are
// Hydrogenate and Layout, both of which run before rendering starts.
type Molecule struct {
	Atoms []Atom
	Bonds []Bond

	hasCoords bool
}

// HasCoords reports whether a 2D conformer is present.
func (m *Molecule) HasCoords() bool { return m.hasCoords }

// SetCoords marks the conformer as populated. Layout and the mol-block
// parser call this; external callers supplying their own coordinates may
// too.
func (m *Molecule) SetCoords() { m.hasCoords = true }

// HeavyAtoms returns the indices of all non-hydrogen atoms in atom order.
func (m *Molecule) HeavyAtoms() []int {
	var idx []int
	for i, a := range m.Atoms {
		if a.Element != "H" {
			idx = append(idx, i)
		}
	}
	return idx
}

// AtomBonds returns the indices of all bonds touching atom ai.
func (m *Molecule) AtomBonds(ai int) []int {
	var out []int
	for bi, b := range m.Bonds {
		if b.From == ai || b.To == ai {
			out = append(out, bi)
		}
	}
	return out
}

// Neighbors returns the atoms bonded to ai, in bond order.
func (m *Molecule) Neighbors(ai int) []int {
	var out []int
	for _, b := range m.Bonds {
		switch ai {
		case b.From:
			out = append(out, b.To)
		case b.To:
			out = append(out, b.From)
		}
	}
	return out
}

// otherEnd returns the atom on the far side of bond bi from atom ai.
func (m *Molecule) otherEnd(bi, ai int) int {
	b := m.Bonds[bi]
	if b.From == ai {
		return b.To
	}
	return b.From
}

func (m *Molecule) MinX() float64 {
	min := math.MaxFloat64
	for _, a := range m.Atoms {
		if a.X < min {
			min = a.X
		}
	}
	return min
}

func (m *Molecule) MinY() float64 {
	min := math.MaxFloat64
	for _, a := range m.Atoms {
		if a.Y < min {
			min = a.Y
		}
	}
	return min
}

func (m *Molecule) MaxX() float64 {
	max := -math.MaxFloat64
	for _, a := range m.Atoms {
		if a.X > max {
			max = a.X
		}
	}
	return max
}

func (m *Molecule) MaxY() float64 {
	max := -math.MaxFloat64
	for _, a := range m.Atoms {
		if a.Y > max {
			max = a.Y
		}
	}
	return max
}

func (m *Molecule) RangeX() float64 { return m.MaxX() - m.MinX() }
func (m *Molecule) RangeY() float64 { return m.MaxY() - m.MinY() }

// AverageBondLength is the mean euclidean bond length of the conformer,
// or 0 for a bondless molecule.
func (m *Molecule) AverageBondLength() float64 {
	if len(m.Bonds) == 0 {
		return 0
	}
	total := 0.0
	for _, b := range m.Bonds {
		a1 := m.Atoms[b.From]
		a2 := m.Atoms[b.To]
		total += math.Hypot(a1.X-a2.X, a1.Y-a2.Y)
	}
	return total / float64(len(m.Bonds))
}

// Hydrogenate fills Atom.HCount from standard single valences and the
// declared bond orders. Atoms with an explicit bracket H count keep it.
func Hydrogenate(m *Molecule) {
	for ai := range m.Atoms {
		atom := &m.Atoms[ai]
		if atom.HFixed {
			continue
		}
		totalBond := 0
		for _, bi := range m.AtomBonds(ai) {
			totalBond += m.Bonds[bi].Order
		}
		valence, ok := defaultValence[atom.Element]
		if !ok {
			continue
		}
		// Charge shifts the effective valence by one per unit, the
		// direction depending on whether the element is electron-rich.
		h := valence - totalBond + chargeValenceShift(atom.Element, atom.Charge)
		if h < 0 {
			h = 0
		}
		atom.HCount = h
	}
}

var defaultValence = map[string]int{
	"C": 4, "Si": 4,
	"N": 3, "P": 3, "B": 3,
	"O": 2, "S": 2, "Se": 2,
	"F": 1, "Cl": 1, "Br": 1, "I": 1,
	"H": 1,
}

func chargeValenceShift(element string, charge int) int {
	if charge == 0 {
		return 0
	}
	switch element {
	case "N", "P", "O", "S":
		return charge
	case "C", "B":
		return -abs(charge)
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
