package molmap

import "fmt"

// StructureParseError reports a notation string that does not describe a
// valid structure.
type StructureParseError struct {
	Notation string
	Err      error
}

func (e *StructureParseError) Error() string {
	return fmt.Sprintf("parse structure %q: %v", e.Notation, e.Err)
}

func (e *StructureParseError) Unwrap() error { return e.Err }

// InsufficientAtomsError reports a structure too small for field
// estimation: deriving a spatial scale needs at least two points.
type InsufficientAtomsError struct {
	Atoms int
}

func (e *InsufficientAtomsError) Error() string {
	return fmt.Sprintf("structure has %d atom(s); field rendering requires at least 2", e.Atoms)
}

// WeightCountMismatchError reports fewer weights than heavy atoms. Extra
// weights are truncated silently; missing ones are an error.
type WeightCountMismatchError struct {
	Weights    int
	HeavyAtoms int
}

func (e *WeightCountMismatchError) Error() string {
	return fmt.Sprintf("got %d atom weights for %d heavy atoms", e.Weights, e.HeavyAtoms)
}

// UnsupportedColorScaleError reports a color-scale argument that is neither
// a known named scale, a continuous scale, nor an explicit 3-color list.
type UnsupportedColorScaleError struct {
	Scale string
}

func (e *UnsupportedColorScaleError) Error() string {
	return fmt.Sprintf("unsupported color scale %q", e.Scale)
}
