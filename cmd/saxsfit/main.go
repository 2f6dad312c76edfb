// Command saxsfit wires the fitting core into one end-to-end run: load a
// structure and a SAXS dataset, optionally build a hydration shell, compute
// the scattering profile, fit it, and write the `.fit`/`.pdb`/report.txt
// outputs (spec.md §6 "CLI surface").
//
// This is deliberately a thin wrapper, in the spirit of the teacher's own
// cmd/full_pipeline/main.go: every real decision lives in internal/, this
// file only sequences the calls and reports progress.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sarat-asymmetrica/saxscore/internal/atom"
	"github.com/sarat-asymmetrica/saxscore/internal/body"
	"github.com/sarat-asymmetrica/saxscore/internal/composite"
	"github.com/sarat-asymmetrica/saxscore/internal/dataset"
	"github.com/sarat-asymmetrica/saxscore/internal/fitter"
	"github.com/sarat-asymmetrica/saxscore/internal/histogram"
	"github.com/sarat-asymmetrica/saxscore/internal/hydrate"
	"github.com/sarat-asymmetrica/saxscore/internal/logging"
	"github.com/sarat-asymmetrica/saxscore/internal/pdbio"
	"github.com/sarat-asymmetrica/saxscore/internal/report"
)

func main() {
	log := logging.New()

	structPath := flag.String("structure", "", "input PDB structure path")
	dataPath := flag.String("data", "", "input SAXS dataset path (q, I, sigma)")
	outDir := flag.String("out", ".", "output directory for .fit/.pdb/report.txt")
	hydrationOn := flag.Bool("hydrate", false, "build an explicit hydration shell before fitting")
	fitExcludedVolume := flag.Bool("excluded-volume", false, "fit cx alongside cw")
	placement := flag.String("placement", "axial", "hydration placement strategy: axial, radial, pepsi, none")
	gridWidth := flag.Float64("grid-width", 1.0, "hydration grid bin width, Angstrom")
	qMin := flag.Float64("q-min", 0, "lower q bound to fit")
	qMax := flag.Float64("q-max", 0.5, "upper q bound to fit")
	flag.Parse()

	if *structPath == "" || *dataPath == "" {
		log.Error("both -structure and -data are required")
		os.Exit(1)
	}

	if err := run(runConfig{
		structPath:        *structPath,
		dataPath:          *dataPath,
		outDir:            *outDir,
		hydrationOn:       *hydrationOn,
		fitExcludedVolume: *fitExcludedVolume,
		placement:         *placement,
		gridWidth:         *gridWidth,
		qMin:              *qMin,
		qMax:              *qMax,
	}); err != nil {
		logging.Fatal(log, "fit run failed", map[string]interface{}{"error": err.Error()})
	}
}

type runConfig struct {
	structPath, dataPath, outDir string
	hydrationOn, fitExcludedVolume bool
	placement                   string
	gridWidth, qMin, qMax        float64
}

func placementStrategy(name string) hydrate.Strategy {
	switch name {
	case "radial":
		return hydrate.Radial
	case "pepsi":
		return hydrate.Pepsi
	case "none":
		return hydrate.NoHydration
	default:
		return hydrate.Axial
	}
}

func run(cfg runConfig) error {
	fmt.Println("=== saxsfit ===")

	fmt.Println("loading structure:", cfg.structPath)
	structFile, err := os.Open(cfg.structPath)
	if err != nil {
		return fmt.Errorf("open structure: %w", err)
	}
	atoms, waters, err := pdbio.Read(structFile)
	structFile.Close()
	if err != nil {
		return fmt.Errorf("parse structure: %w", err)
	}
	fmt.Printf("  %d atoms, %d explicit waters\n", len(atoms), len(waters))

	if cfg.hydrationOn {
		fmt.Println("building hydration shell:", cfg.placement)
		generated, herr := hydrate.Hydrate(atoms, hydrate.Config{
			Width:       cfg.gridWidth,
			Bins:        64,
			AtomRadius:  2,
			WaterRadius: 1,
			Placement:   placementStrategy(cfg.placement),
		})
		if herr != nil {
			return fmt.Errorf("hydrate: %w", herr)
		}
		fmt.Printf("  placed %d waters\n", len(generated))
		waters = append(waters, generated...)
	}

	fmt.Println("loading dataset:", cfg.dataPath)
	dataFile, err := os.Open(cfg.dataPath)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	data, err := dataset.Read(dataFile)
	dataFile.Close()
	if err != nil {
		return fmt.Errorf("parse dataset: %w", err)
	}

	q, obs, sigma := windowQ(data, cfg.qMin, cfg.qMax)
	if len(q) == 0 {
		return fmt.Errorf("no dataset points fall within [%g,%g]", cfg.qMin, cfg.qMax)
	}
	fmt.Printf("  %d points in fit window [%g,%g]\n", len(q), cfg.qMin, cfg.qMax)

	mol := body.NewMolecule([][]atom.Atom{atoms})
	mol.SetGlobalWaters(waters)

	fmt.Println("computing distance histogram")
	hmgr := histogram.NewManager(mol, histogram.DefaultBinWidth, false, nil)
	comp, err := hmgr.CalculateAll()
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}
	// No EM grid is available on this path to supply a measured excluded
	// volume, so zExvAvg is left at its zero default (disabling the AX/XX/WX
	// cross terms) unless the caller asked to fit cx, in which case a
	// textbook protein average (10 electrons/atom displaced) stands in for a
	// measured value.
	zExvAvg := 0.0
	if cfg.fitExcludedVolume {
		zExvAvg = 10.0
	}
	hist := composite.NewAvg(comp, zExvAvg, len(atoms))

	fitData := fitter.Dataset{Q: q, I: obs, Sigma: sigma}

	var result *fitter.FitResult
	if cfg.fitExcludedVolume {
		fmt.Println("fitting cw, cx")
		ev := &fitter.ExcludedVolumeFitter{Hist: hist, Q: q, Data: fitData, MeanAtomicRadius: 1.5}
		result, err = ev.Fit()
	} else {
		fmt.Println("fitting cw")
		hf := &fitter.HydrationFitter{Hist: hist, Q: q, Data: fitData}
		result, err = hf.Fit()
	}
	if err != nil {
		return fmt.Errorf("fit: %w", err)
	}
	fmt.Printf("  cw=%.4f reduced-chi2=%.4f\n", result.Cw, result.ReducedChiSquare)

	prof := hist.Debye(q, composite.Params{Cw: result.Cw, Cx: result.Cx, Background: result.Background, MeanAtomicRadius: 1.5})

	if err := os.MkdirAll(cfg.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := writeOutputs(cfg.outDir, fitData, prof.Total, atoms, waters, result); err != nil {
		return err
	}

	fmt.Println("done:", cfg.outDir)
	return nil
}

func windowQ(data fitter.Dataset, qMin, qMax float64) (q, i, sigma []float64) {
	for idx, v := range data.Q {
		if v < qMin || v > qMax {
			continue
		}
		q = append(q, v)
		i = append(i, data.I[idx])
		sigma = append(sigma, data.Sigma[idx])
	}
	return q, i, sigma
}

func writeOutputs(outDir string, data fitter.Dataset, model []float64, atoms []atom.Atom, waters []atom.Water, result *fitter.FitResult) error {
	fitFile, err := os.Create(filepath.Join(outDir, "result.fit"))
	if err != nil {
		return fmt.Errorf("create .fit: %w", err)
	}
	defer fitFile.Close()
	if err := report.WriteFit(fitFile, data, model); err != nil {
		return err
	}

	pdbFile, err := os.Create(filepath.Join(outDir, "result.pdb"))
	if err != nil {
		return fmt.Errorf("create .pdb: %w", err)
	}
	defer pdbFile.Close()
	if err := report.WritePDB(pdbFile, atoms, waters); err != nil {
		return err
	}

	summaryFile, err := os.Create(filepath.Join(outDir, "report.txt"))
	if err != nil {
		return fmt.Errorf("create report.txt: %w", err)
	}
	defer summaryFile.Close()
	return report.WriteSummary(summaryFile, result)
}
