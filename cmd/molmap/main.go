// molmap renders a single annotated molecule depiction to a file.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/molmap/molmap"
	"github.com/molmap/molmap/internal/chem"
)

var (
	flagSMILES  string
	flagMolFile string
	flagWeights string
	flagSummary float64
	flagMode    string
	flagFormat  string
	flagOut     string
	flagChiral  bool
)

func main() {
	root := &cobra.Command{
		Use:           "molmap",
		Short:         "Render per-atom uncertainty heat-maps for molecules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(renderCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "molmap: %v\n", err)
		os.Exit(1)
	}
}

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one molecule with atom weights to an image file",
		RunE:  runRender,
	}
	cmd.Flags().StringVar(&flagSMILES, "smiles", "", "structure as a SMILES string")
	cmd.Flags().StringVar(&flagMolFile, "mol", "", "structure from the first record of an SD/mol file")
	cmd.Flags().StringVar(&flagWeights, "weights", "", "comma-separated per-heavy-atom weights")
	cmd.Flags().Float64Var(&flagSummary, "summary", 0, "summary value shown in the caption")
	cmd.Flags().StringVar(&flagMode, "mode", "total", "render mode: pred, ale, epi or total")
	cmd.Flags().StringVar(&flagFormat, "format", "svg", "output format: svg or png")
	cmd.Flags().StringVarP(&flagOut, "out", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&flagChiral, "mark-chiral", false, "star chiral carbons in the depiction")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	if (flagSMILES == "") == (flagMolFile == "") {
		return fmt.Errorf("exactly one of --smiles or --mol is required")
	}

	weights, err := parseWeights(flagWeights)
	if err != nil {
		return err
	}
	format, err := molmap.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	mode := molmap.ParseMode(flagMode)

	rend := molmap.NewRenderer()
	rend.Opts.MarkChiral = flagChiral

	var out []byte
	if flagSMILES != "" {
		out, err = rend.Render(flagSMILES, flagSummary, weights, mode, format)
	} else {
		var mol *chem.Molecule
		mol, err = readFirstRecord(flagMolFile)
		if err == nil {
			out, err = rend.RenderMolecule(mol, flagSummary, weights, mode, format)
		}
	}
	if err != nil {
		return err
	}

	if flagOut == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(flagOut, out, 0o644)
}

func readFirstRecord(path string) (*chem.Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mols, err := chem.ReadSDF(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return mols[0], nil
}

func parseWeights(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		w, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("weight %q: %w", p, err)
		}
		out = append(out, w)
	}
	return out, nil
}
