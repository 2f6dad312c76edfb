// Package pdbio reads PDB ATOM/HETATM records (spec.md §6: "PDB
// (ATOM/HETATM/TER records, 80-col fixed-width)") into atom.Atom/atom.Water
// records. It is an external-collaborator stand-in: only cmd/saxsfit and
// tests depend on it, never internal/ core packages, matching spec.md §6's
// framing of PDB parsing as "consumed, not specified here."
//
// Grounded on, and adapted from,
// backend/internal/parser/pdb_parser.go's fixed-width column layout and
// bufio.Scanner-based line loop; generalized here from "backbone atoms only"
// to every ATOM/HETATM record, and water residues are split out into
// atom.Water rather than folded into the generic atom stream.
package pdbio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarat-asymmetrica/saxscore/internal/atom"
)

// waterResidueNames lists the residue codes treated as solvent, per the PDB
// convention (HOH, DOD for heavy water, WAT for some non-standard writers).
var waterResidueNames = map[string]bool{"HOH": true, "DOD": true, "WAT": true}

// elementFormFactor maps a PDB element symbol to the coarse FormFactorType
// categories this module can derive from a bare atom record. Finer
// categories (CH, CH2, CH3, NH, NH2, OH, SH, NH3+, NH_guanine) require
// bonding/protonation knowledge this reader does not reconstruct from
// coordinates alone (spec.md §9 leaves those rows present but unwired); they
// are left to a caller that has residue-topology information.
var elementFormFactor = map[string]atom.FormFactorType{
	"H": atom.H,
	"C": atom.C,
	"N": atom.N,
	"O": atom.O,
	"S": atom.S,
}

func formFactorFor(element string) atom.FormFactorType {
	if ff, ok := elementFormFactor[strings.ToUpper(element)]; ok {
		return ff
	}
	return atom.OTHER
}

// Read parses every ATOM/HETATM record from r, stopping at END/ENDMDL.
// Records whose residue name is a recognized solvent are returned as waters;
// everything else is returned as atoms. Malformed lines are skipped, matching
// the teacher's "skip malformed lines but continue parsing" policy.
func Read(r io.Reader) (atoms []atom.Atom, waters []atom.Water, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if len(line) >= 3 && (strings.HasPrefix(line, "END") || strings.HasPrefix(line, "ENDMDL")) {
			break
		}
		if len(line) < 6 {
			continue
		}
		isAtom := strings.HasPrefix(line, "ATOM")
		isHet := strings.HasPrefix(line, "HETATM")
		if !isAtom && !isHet {
			continue
		}

		rec, perr := parseRecord(line)
		if perr != nil {
			continue
		}

		if waterResidueNames[rec.resName] {
			waters = append(waters, atom.Water{X: rec.x, Y: rec.y, Z: rec.z, Weight: 1})
			continue
		}
		atoms = append(atoms, atom.Atom{X: rec.x, Y: rec.y, Z: rec.z, Weight: 1, FF: formFactorFor(rec.element)})
	}
	if serr := scanner.Err(); serr != nil {
		return nil, nil, fmt.Errorf("pdbio: read error: %w", serr)
	}
	return atoms, waters, nil
}

type record struct {
	resName, element string
	x, y, z          float64
}

// parseRecord extracts the fields this module needs from one fixed-width
// ATOM/HETATM line, following the same column layout as
// backend/internal/parser/pdb_parser.go's parseAtomLine.
func parseRecord(line string) (record, error) {
	if len(line) < 54 {
		return record{}, fmt.Errorf("pdbio: line too short: %d characters", len(line))
	}
	for len(line) < 80 {
		line += " "
	}

	var rec record
	rec.resName = strings.TrimSpace(line[17:20])

	x, err := strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	if err != nil {
		return record{}, fmt.Errorf("pdbio: invalid x coordinate: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	if err != nil {
		return record{}, fmt.Errorf("pdbio: invalid y coordinate: %w", err)
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	if err != nil {
		return record{}, fmt.Errorf("pdbio: invalid z coordinate: %w", err)
	}
	rec.x, rec.y, rec.z = x, y, z

	if len(line) >= 78 {
		rec.element = strings.TrimSpace(line[76:78])
	}
	if rec.element == "" {
		// Fall back to the atom-name column's first letter when the element
		// column (77-78) is blank, as many older PDB files leave it empty.
		name := strings.TrimSpace(line[12:16])
		if len(name) > 0 {
			rec.element = name[:1]
		}
	}
	return rec, nil
}
