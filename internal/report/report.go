// Package report writes the three output artifacts spec.md §6 names: a
// `.fit` four-column (q, I_obs, σ, I_model) file, a `.pdb` structure dump
// including generated waters, and a human-readable `report.txt` summary of
// the fit parameters and χ².
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/sarat-asymmetrica/saxscore/internal/atom"
	"github.com/sarat-asymmetrica/saxscore/internal/fitter"
)

// WriteFit writes the four-column (q, I_obs, σ, I_model) curve spec.md §6
// names as `.fit` output.
func WriteFit(w io.Writer, data fitter.Dataset, model []float64) error {
	if len(model) != len(data.Q) {
		return fmt.Errorf("report: model length %d does not match dataset length %d", len(model), len(data.Q))
	}
	for i := range data.Q {
		if _, err := fmt.Fprintf(w, "%.6e %.6e %.6e %.6e\n", data.Q[i], data.I[i], data.Sigma[i], model[i]); err != nil {
			return fmt.Errorf("report: write .fit: %w", err)
		}
	}
	return nil
}

// WritePDB writes a minimal ATOM/HETATM record set for atoms and waters,
// matching the fixed-width PDB layout spec.md §6 names as an (externally
// parsed) input format, here used symmetrically for output.
func WritePDB(w io.Writer, atoms []atom.Atom, waters []atom.Water) error {
	serial := 1
	for _, a := range atoms {
		if _, err := fmt.Fprintf(w, "%-6s%5d  %-3s %-3s A%4d    %8.3f%8.3f%8.3f%6.2f%6.2f\n",
			"ATOM", serial, "C", "UNK", serial, a.X, a.Y, a.Z, 1.0, a.Weight); err != nil {
			return fmt.Errorf("report: write .pdb atom: %w", err)
		}
		serial++
	}
	for _, wat := range waters {
		if _, err := fmt.Fprintf(w, "%-6s%5d  %-3s %-3s A%4d    %8.3f%8.3f%8.3f%6.2f%6.2f\n",
			"HETATM", serial, "O", "HOH", serial, wat.X, wat.Y, wat.Z, 1.0, wat.Weight); err != nil {
			return fmt.Errorf("report: write .pdb water: %w", err)
		}
		serial++
	}
	if _, err := fmt.Fprintln(w, "END"); err != nil {
		return fmt.Errorf("report: write .pdb terminator: %w", err)
	}
	return nil
}

// WriteSummary writes a human-readable report.txt summarizing the fit
// parameters and reduced χ² (spec.md §6).
func WriteSummary(w io.Writer, r *fitter.FitResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "cw           = %.4f (+%.4f/-%.4f)\n", r.Cw, r.CwErrHigh, r.CwErrLow)
	if r.Cx != 0 {
		fmt.Fprintf(&b, "cx           = %.4f (+%.4f/-%.4f)\n", r.Cx, r.CxErrHigh, r.CxErrLow)
	}
	fmt.Fprintf(&b, "background   = %.6e\n", r.Background)
	fmt.Fprintf(&b, "scale (a)    = %.6e\n", r.A)
	fmt.Fprintf(&b, "reduced chi2 = %.4f (dof=%d)\n", r.ReducedChiSquare, r.Dof)
	fmt.Fprintf(&b, "evaluations  = %d\n", r.Evaluations)
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("report: write report.txt: %w", err)
	}
	return nil
}
