package hydrate

import "github.com/sarat-asymmetrica/saxscore/internal/atom"

// Config bundles the grid geometry and strategy choices spec.md §4.7
// describes as one hydration run.
type Config struct {
	Width       float64 // grid bin width, Angstrom
	Bins        int     // bins per axis
	AtomRadius  int     // in bins
	WaterRadius int     // in bins
	Placement   Strategy
	Culling     CullingStrategy // nil defaults to NoCulling
	TargetCount int             // consumed only by a non-nil, count-aware Culling
}

// Hydrate builds a grid around atoms, places candidate waters with the
// configured strategy, and culls them down to TargetCount (spec.md §4.7's
// "Grid + Hydration Placement", mirroring original_source/include/hydrate/
// Grid.h's hydrate() convenience entry point).
func Hydrate(atoms []atom.Atom, cfg Config) ([]atom.Water, error) {
	if len(atoms) == 0 {
		return nil, nil
	}
	minX, minY, minZ := atoms[0].X, atoms[0].Y, atoms[0].Z
	maxX, maxY, maxZ := minX, minY, minZ
	for _, a := range atoms[1:] {
		minX, maxX = minF(minX, a.X), maxF(maxX, a.X)
		minY, maxY = minF(minY, a.Y), maxF(maxY, a.Y)
		minZ, maxZ = minF(minZ, a.Z), maxF(maxZ, a.Z)
	}

	margin := float64(cfg.AtomRadius+cfg.WaterRadius+2) * cfg.Width
	base := func(lo float64) float64 { return lo - margin }
	g := NewGrid(base(minX), base(minY), base(minZ), cfg.Width, cfg.Bins, cfg.AtomRadius, cfg.WaterRadius)

	strategy := NewPlacementStrategy(cfg.Placement)
	waters := strategy.Place(g, atoms)

	culling := cfg.Culling
	if culling == nil {
		culling = NoCulling{}
	}
	return culling.Cull(waters, cfg.TargetCount), nil
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
