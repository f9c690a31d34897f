package chem

import (
	"fmt"
	"regexp"
	"strings"
)

// smilesPattern is a lightweight charset gate applied before tokenizing.
var smilesPattern = regexp.MustCompile(`^[A-Za-z0-9@+\-\[\]()=#$:/\\.%]+$`)

// balancedBrackets checks that [ ] and ( ) are balanced and correctly nested.
func balancedBrackets(s string) bool {
	var stack []rune
	for _, ch := range s {
		switch ch {
		case '[', '(':
			stack = append(stack, ch)
		case ']':
			if len(stack) == 0 || stack[len(stack)-1] != '[' {
				return false
			}
			stack = stack[:len(stack)-1]
		case ')':
			if len(stack) == 0 || stack[len(stack)-1] != '(' {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

// ValidateSMILES performs structural validation without building a graph.
func ValidateSMILES(smiles string) error {
	if smiles == "" {
		return fmt.Errorf("empty SMILES string")
	}
	if len(smiles) > 5000 {
		return fmt.Errorf("SMILES string exceeds maximum length (5000)")
	}
	if !smilesPattern.MatchString(smiles) {
		return fmt.Errorf("SMILES contains invalid characters: %s", smiles)
	}
	if !balancedBrackets(smiles) {
		return fmt.Errorf("SMILES has unbalanced brackets")
	}
	return nil
}

// organic-subset symbols writable without brackets, two-letter first.
var twoLetterOrganic = []string{"Cl", "Br"}

var aromaticSymbols = map[rune]string{
	'b': "B", 'c': "C", 'n': "N", 'o': "O", 'p': "P", 's': "S",
}

type ringOpening struct {
	atom  int
	order int // 0 = unspecified at opening
}

// ParseSMILES builds a Molecule from a SMILES string. The parser covers the
// organic subset, bracket atoms (charge, explicit H, isotope ignored),
// branches, single/double/triple/aromatic bonds, ring closures including
// %nn, and disconnected fragments. Aromatic rings are kekulized greedily so
// depiction shows alternating double bonds. The result has no conformer;
// run Layout before rendering.
func ParseSMILES(smiles string) (*Molecule, error) {
	smiles = strings.TrimSpace(smiles)
	if err := ValidateSMILES(smiles); err != nil {
		return nil, err
	}

	mol := &Molecule{}
	runes := []rune(smiles)
	var (
		prev     = -1
		stack    []int
		pending  = 0 // 0 = unspecified
		rings    = map[int]ringOpening{}
		i        int
	)

	addAtom := func(a Atom) {
		idx := len(mol.Atoms)
		mol.Atoms = append(mol.Atoms, a)
		if prev >= 0 {
			order := pending
			aromatic := false
			if order == 0 {
				order = 1
				if a.Aromatic && mol.Atoms[prev].Aromatic {
					aromatic = true
				}
			}
			if order == 4 {
				order = 1
				aromatic = true
			}
			mol.Bonds = append(mol.Bonds, Bond{From: prev, To: idx, Order: order, Aromatic: aromatic})
		}
		pending = 0
		prev = idx
	}

	closeRing := func(num int) error {
		open, ok := rings[num]
		if !ok {
			rings[num] = ringOpening{atom: prev, order: pending}
			pending = 0
			return nil
		}
		delete(rings, num)
		order := pending
		if order != 0 && open.order != 0 && order != open.order {
			return fmt.Errorf("ring closure %d specifies conflicting bond orders", num)
		}
		if order == 0 {
			order = open.order
		}
		aromatic := false
		if order == 0 || order == 4 {
			if order == 4 {
				aromatic = true
			} else if mol.Atoms[open.atom].Aromatic && mol.Atoms[prev].Aromatic {
				aromatic = true
			}
			order = 1
		}
		mol.Bonds = append(mol.Bonds, Bond{From: open.atom, To: prev, Order: order, Aromatic: aromatic})
		pending = 0
		return nil
	}

	for i < len(runes) {
		ch := runes[i]
		switch {
		case ch == '(':
			if prev < 0 {
				return nil, fmt.Errorf("branch opened before any atom at position %d", i)
			}
			stack = append(stack, prev)
			i++

		case ch == ')':
			if len(stack) == 0 {
				return nil, fmt.Errorf("unmatched branch close at position %d", i)
			}
			prev = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			i++

		case ch == '-':
			pending = 1
			i++
		case ch == '=':
			pending = 2
			i++
		case ch == '#':
			pending = 3
			i++
		case ch == ':':
			pending = 4
			i++
		case ch == '/' || ch == '\\':
			// stereo bond direction is irrelevant to a flat depiction
			pending = 1
			i++

		case ch == '.':
			prev = -1
			pending = 0
			i++

		case ch == '%':
			if i+2 >= len(runes) || !isDigit(runes[i+1]) || !isDigit(runes[i+2]) {
				return nil, fmt.Errorf("malformed %%nn ring closure at position %d", i)
			}
			if prev < 0 {
				return nil, fmt.Errorf("ring closure before any atom at position %d", i)
			}
			if err := closeRing(int(runes[i+1]-'0')*10 + int(runes[i+2]-'0')); err != nil {
				return nil, err
			}
			i += 3

		case isDigit(ch):
			if prev < 0 {
				return nil, fmt.Errorf("ring closure before any atom at position %d", i)
			}
			if err := closeRing(int(ch - '0')); err != nil {
				return nil, err
			}
			i++

		case ch == '[':
			j := i + 1
			for j < len(runes) && runes[j] != ']' {
				j++
			}
			if j >= len(runes) {
				return nil, fmt.Errorf("unclosed bracket atom at position %d", i)
			}
			atom, err := parseBracketAtom(string(runes[i+1 : j]))
			if err != nil {
				return nil, err
			}
			addAtom(atom)
			i = j + 1

		case isLetter(ch):
			symbol, aromatic, advance, err := parseOrganicAtom(runes, i)
			if err != nil {
				return nil, err
			}
			addAtom(Atom{Element: symbol, Aromatic: aromatic})
			i += advance

		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", ch, i)
		}
	}

	if len(mol.Atoms) == 0 {
		return nil, fmt.Errorf("no atoms found in SMILES")
	}
	if len(rings) != 0 {
		return nil, fmt.Errorf("unclosed ring bond in SMILES")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("unclosed branch in SMILES")
	}

	kekulize(mol)
	Hydrogenate(mol)
	return mol, nil
}

// parseOrganicAtom reads an organic-subset atom starting at position i.
func parseOrganicAtom(runes []rune, i int) (symbol string, aromatic bool, advance int, err error) {
	ch := runes[i]
	if ch >= 'a' && ch <= 'z' {
		sym, ok := aromaticSymbols[ch]
		if !ok {
			return "", false, 0, fmt.Errorf("unknown aromatic atom %q at position %d", ch, i)
		}
		return sym, true, 1, nil
	}
	if i+1 < len(runes) {
		two := string(runes[i : i+2])
		for _, s := range twoLetterOrganic {
			if two == s {
				return s, false, 2, nil
			}
		}
	}
	switch ch {
	case 'B', 'C', 'N', 'O', 'P', 'S', 'F', 'I':
		return string(ch), false, 1, nil
	}
	return "", false, 0, fmt.Errorf("element %q needs bracket notation at position %d", ch, i)
}

// parseBracketAtom parses the inside of a [...] atom: [isotope]symbol
// [@ chirality][H count][charge]. Isotope and chirality markers are read
// past and dropped.
func parseBracketAtom(body string) (Atom, error) {
	runes := []rune(body)
	i := 0
	for i < len(runes) && isDigit(runes[i]) { // isotope
		i++
	}
	if i >= len(runes) {
		return Atom{}, fmt.Errorf("bracket atom %q has no element symbol", body)
	}

	var atom Atom
	ch := runes[i]
	if sym, ok := aromaticSymbols[ch]; ok && (i+1 >= len(runes) || !isLower(runes[i+1])) {
		atom.Element = sym
		atom.Aromatic = true
		i++
	} else if ch >= 'A' && ch <= 'Z' {
		sym := string(ch)
		i++
		if i < len(runes) && isLower(runes[i]) && runes[i] != 'h' {
			sym += string(runes[i])
			i++
		}
		atom.Element = sym
	} else {
		return Atom{}, fmt.Errorf("bracket atom %q has invalid element symbol", body)
	}

	atom.HFixed = true // bracket atoms state their hydrogens explicitly
	for i < len(runes) {
		switch {
		case runes[i] == '@':
			i++
		case runes[i] == 'H' || runes[i] == 'h':
			i++
			n := 1
			if i < len(runes) && isDigit(runes[i]) {
				n = int(runes[i] - '0')
				i++
			}
			atom.HCount = n
		case runes[i] == '+' || runes[i] == '-':
			signRune := runes[i]
			sign := 1
			if signRune == '-' {
				sign = -1
			}
			count := 0
			for i < len(runes) && runes[i] == signRune {
				count++
				i++
			}
			if i < len(runes) && isDigit(runes[i]) {
				count = int(runes[i] - '0')
				i++
			}
			atom.Charge = sign * count
		default:
			return Atom{}, fmt.Errorf("bracket atom %q has unsupported token %q", body, runes[i])
		}
	}
	return atom, nil
}

// kekulize promotes alternating aromatic bonds to double bonds so the
// depiction shows the classic alternating pattern. Greedy matching over
// bond order suffices for the common aromatic systems; aromatic O and S
// (and N carrying an explicit H) contribute a lone pair instead of a double
// bond and are skipped.
func kekulize(m *Molecule) {
	hasDouble := make([]bool, len(m.Atoms))
	for _, b := range m.Bonds {
		if b.Order == 2 {
			hasDouble[b.From] = true
			hasDouble[b.To] = true
		}
	}
	wantsDouble := func(ai int) bool {
		a := m.Atoms[ai]
		if !a.Aromatic || hasDouble[ai] {
			return false
		}
		switch a.Element {
		case "O", "S":
			return false
		case "N":
			return !(a.HFixed && a.HCount > 0)
		}
		return true
	}
	for bi := range m.Bonds {
		b := &m.Bonds[bi]
		if !b.Aromatic || b.Order != 1 {
			continue
		}
		if wantsDouble(b.From) && wantsDouble(b.To) {
			b.Order = 2
			hasDouble[b.From] = true
			hasDouble[b.To] = true
		}
	}
}

func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isLetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
