package chem

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseMolBlock parses a single V2000 connection table. The counts line is
// located by its "V2000" tag so leading header lines of any shape are
// tolerated. Coordinates from the atom block become the conformer unless
// every position is zero, in which case the caller still needs Layout.
func ParseMolBlock(block string) (*Molecule, error) {
	lines := strings.Split(strings.ReplaceAll(block, "\r\n", "\n"), "\n")
	if len(lines) < 4 {
		return nil, fmt.Errorf("invalid mol block: too few lines")
	}

	var countsLine string
	for i, line := range lines {
		if len(line) >= 39 && strings.Contains(line[30:39], "V2000") {
			countsLine = line
			lines = lines[i+1:]
			break
		}
	}
	if countsLine == "" {
		return nil, fmt.Errorf("invalid mol block: V2000 counts line not found")
	}

	numAtoms := parseIntField(countsLine[0:3])
	numBonds := parseIntField(countsLine[3:6])
	if numAtoms <= 0 {
		return nil, fmt.Errorf("invalid mol block: atom count %d", numAtoms)
	}
	if len(lines) < numAtoms+numBonds {
		return nil, fmt.Errorf("invalid mol block: truncated atom/bond table")
	}

	mol := &Molecule{}
	anyCoord := false
	for i := 0; i < numAtoms; i++ {
		l := lines[i]
		if len(l) < 34 {
			return nil, fmt.Errorf("invalid mol block: short atom line %d", i+1)
		}
		a := Atom{
			X:       parseFloatField(l[0:10]),
			Y:       parseFloatField(l[10:20]),
			Element: strings.TrimSpace(l[31:34]),
		}
		if a.X != 0 || a.Y != 0 {
			anyCoord = true
		}
		mol.Atoms = append(mol.Atoms, a)
	}
	for i := 0; i < numBonds; i++ {
		l := lines[numAtoms+i]
		if len(l) < 9 {
			return nil, fmt.Errorf("invalid mol block: short bond line %d", i+1)
		}
		from := parseIntField(l[0:3]) - 1
		to := parseIntField(l[3:6]) - 1
		order := parseIntField(l[6:9])
		if from < 0 || to < 0 || from >= numAtoms || to >= numAtoms {
			return nil, fmt.Errorf("invalid mol block: bond %d references missing atom", i+1)
		}
		if order == 4 { // aromatic in V2000
			mol.Bonds = append(mol.Bonds, Bond{From: from, To: to, Order: 1, Aromatic: true})
			mol.Atoms[from].Aromatic = true
			mol.Atoms[to].Aromatic = true
			continue
		}
		if order < 1 || order > 3 {
			order = 1
		}
		mol.Bonds = append(mol.Bonds, Bond{From: from, To: to, Order: order})
	}

	if anyCoord {
		mol.SetCoords()
	}
	kekulize(mol)
	Hydrogenate(mol)
	return mol, nil
}

// ReadSDF reads every record of an SD file, one molecule per "$$$$"
// delimited block. Unparseable records are skipped rather than failing the
// whole file, matching how SD files are consumed in practice.
func ReadSDF(r io.Reader) ([]*Molecule, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var (
		mols []*Molecule
		buf  strings.Builder
	)
	flush := func() {
		block := strings.TrimSpace(buf.String())
		buf.Reset()
		if block == "" {
			return
		}
		if mol, err := ParseMolBlock(block); err == nil {
			mols = append(mols, mol)
		}
	}
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "$$$$" {
			flush()
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	if len(mols) == 0 {
		return nil, fmt.Errorf("no parseable molecule records found")
	}
	return mols, nil
}

func parseIntField(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func parseFloatField(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
