// Package dataset reads free-form experimental (q, I, σ) SAXS curves: plain
// text files with 2, 3, or 4 whitespace/comma-separated columns, the column
// count auto-detected from the first non-comment line (spec.md §6).
//
// Grounded on the teacher's hand-rolled scanner style in
// backend/internal/parser/pdb_parser.go (bufio.Scanner + per-line field
// parsing, no external parsing library); no example repo in the retrieved
// pack ships a generic auto-detecting columnar reader, so this stays stdlib
// (see DESIGN.md's stdlib-justification ledger).
package dataset

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/sarat-asymmetrica/saxscore/internal/fitter"
)

// Read parses a free-form (q, I, σ) dataset from r. Lines starting with '#'
// or ';', and blank lines, are skipped. The column count is fixed by the
// first data line:
//   - 2 columns: (q, I); σ defaults to sqrt(I) (spec.md §6: "2, 3, or 4
//     columns (auto-detected)" — sqrt(I) is the standard counting-statistics
//     fallback used when no uncertainty column is present).
//   - 3 columns: (q, I, σ).
//   - 4 columns: (q, I, σ, I_model); the fourth column is accepted but
//     ignored on read, since this reader only produces observed data.
func Read(r io.Reader) (fitter.Dataset, error) {
	scanner := bufio.NewScanner(r)
	var ds fitter.Dataset
	nCols := 0
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
		fields = compact(fields)

		if nCols == 0 {
			nCols = len(fields)
			if nCols < 2 || nCols > 4 {
				return fitter.Dataset{}, fmt.Errorf("dataset: line %d: expected 2-4 columns, got %d", lineNo, nCols)
			}
		}
		if len(fields) != nCols {
			return fitter.Dataset{}, fmt.Errorf("dataset: line %d: expected %d columns, got %d", lineNo, nCols, len(fields))
		}

		q, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return fitter.Dataset{}, fmt.Errorf("dataset: line %d: invalid q value %q: %w", lineNo, fields[0], err)
		}
		i, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fitter.Dataset{}, fmt.Errorf("dataset: line %d: invalid I value %q: %w", lineNo, fields[1], err)
		}

		var sigma float64
		if nCols >= 3 {
			sigma, err = strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return fitter.Dataset{}, fmt.Errorf("dataset: line %d: invalid sigma value %q: %w", lineNo, fields[2], err)
			}
		} else {
			sigma = math.Sqrt(math.Abs(i))
			if sigma == 0 {
				sigma = 1
			}
		}

		ds.Q = append(ds.Q, q)
		ds.I = append(ds.I, i)
		ds.Sigma = append(ds.Sigma, sigma)
	}
	if err := scanner.Err(); err != nil {
		return fitter.Dataset{}, fmt.Errorf("dataset: read error: %w", err)
	}
	if len(ds.Q) == 0 {
		return fitter.Dataset{}, fmt.Errorf("dataset: no data rows found")
	}
	return ds, nil
}

// compact drops empty strings produced by consecutive separators.
func compact(fields []string) []string {
	out := fields[:0]
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
