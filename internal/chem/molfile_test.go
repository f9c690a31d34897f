package chem

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ethanolMolBlock = `ethanol
  test

  3  2  0  0  0  0  0  0  0  0999 V2000
    0.0000    0.0000    0.0000 C   0  0  0  0  0  0
    1.5000    0.0000    0.0000 C   0  0  0  0  0  0
    2.2500    1.2990    0.0000 O   0  0  0  0  0  0
  1  2  1  0
  2  3  1  0
M  END`

func TestParseMolBlock(t *testing.T) {
	mol, err := ParseMolBlock(ethanolMolBlock)
	require.NoError(t, err)
	require.Len(t, mol.Atoms, 3)
	require.Len(t, mol.Bonds, 2)
	assert.Equal(t, "O", mol.Atoms[2].Element)
	assert.True(t, mol.HasCoords(), "mol block coordinates become the conformer")
	assert.InDelta(t, 1.5, mol.Atoms[1].X, 1e-9)
	assert.Equal(t, Bond{From: 1, To: 2, Order: 1}, mol.Bonds[1])
	// hydrogens filled from valence
	assert.Equal(t, 3, mol.Atoms[0].HCount)
	assert.Equal(t, 1, mol.Atoms[2].HCount)
}

func TestParseMolBlock_Invalid(t *testing.T) {
	_, err := ParseMolBlock("")
	assert.Error(t, err)
	_, err = ParseMolBlock("just\nsome\nrandom\ntext\nlines")
	assert.Error(t, err)
}

func TestParseMolBlock_BadBondIndex(t *testing.T) {
	block := strings.Replace(ethanolMolBlock, "  2  3  1  0", "  2  9  1  0", 1)
	_, err := ParseMolBlock(block)
	assert.Error(t, err)
}

func TestReadSDF(t *testing.T) {
	sdf := ethanolMolBlock + "\n$$$$\n" + ethanolMolBlock + "\n$$$$\n"
	mols, err := ReadSDF(strings.NewReader(sdf))
	require.NoError(t, err)
	assert.Len(t, mols, 2)
}

func TestReadSDF_SkipsBadRecords(t *testing.T) {
	sdf := "garbage record\n$$$$\n" + ethanolMolBlock + "\n$$$$\n"
	mols, err := ReadSDF(strings.NewReader(sdf))
	require.NoError(t, err)
	assert.Len(t, mols, 1)
}

func TestReadSDF_Empty(t *testing.T) {
	_, err := ReadSDF(strings.NewReader(""))
	assert.Error(t, err)
}
