package hydrate

import (
	"math"

	"github.com/sarat-asymmetrica/saxscore/internal/atom"
)

// Strategy chooses where hydration waters are placed around a molecule
// (spec.md §4.7: "Strategies available: axial, radial, no-hydration, and a
// Pepsi-style per-residue placement").
type Strategy int

const (
	Axial Strategy = iota
	Radial
	NoHydration
	Pepsi
)

// PlacementStrategy places candidate water molecules on the grid and marks
// them as occupied, mirroring original_source/include/hydrate/placement/
// PlacementStrategy.h's place() contract.
type PlacementStrategy interface {
	Place(g *Grid, atoms []atom.Atom) []atom.Water
}

// NewPlacementStrategy returns the concrete strategy for s.
func NewPlacementStrategy(s Strategy) PlacementStrategy {
	switch s {
	case Axial:
		return AxialPlacement{}
	case Radial:
		return RadialPlacement{}
	case Pepsi:
		return PepsiPlacement{}
	default:
		return NoHydrationPlacement{}
	}
}

// NoHydrationPlacement places no waters at all.
type NoHydrationPlacement struct{}

func (NoHydrationPlacement) Place(*Grid, []atom.Atom) []atom.Water { return nil }

// AxialPlacement places a candidate water r_eff = r_atom+r_water away from
// every occupied atom cell along each of the six axis directions, skipping
// any direction whose target cell is already occupied (spec.md §4.7 "axial:
// place candidate waters at ±r_eff along each grid axis adjacent to
// solvent-accessible atoms"). Grounded directly on
// source/hydrate/JanPlacement.cpp's six-direction collision check.
type AxialPlacement struct{}

func (AxialPlacement) Place(g *Grid, atoms []atom.Atom) []atom.Water {
	if err := g.AddAtoms(atoms); err != nil {
		return nil
	}
	rEff := g.RAtom + g.RWater
	loX, loY, loZ, hiX, hiY, hiZ := g.BoundingBox()

	var waters []atom.Water
	seen := make(map[[3]int]bool)
	addIfFree := func(x, y, z int) {
		if g.At(x, y, z) != empty {
			return
		}
		key := [3]int{x, y, z}
		if seen[key] {
			return
		}
		seen[key] = true
		wx, wy, wz := g.ToXYZ(x, y, z)
		waters = append(waters, atom.Water{X: wx, Y: wy, Z: wz, Weight: 1})
	}

	for x := loX; x < hiX; x++ {
		for y := loY; y < hiY; y++ {
			for z := loZ; z < hiZ; z++ {
				if g.At(x, y, z) != occupiedAtom {
					continue
				}
				clampX := func(v int) int {
					if v < 0 {
						return 0
					}
					if v >= g.BinsX {
						return g.BinsX - 1
					}
					return v
				}
				clampY := func(v int) int {
					if v < 0 {
						return 0
					}
					if v >= g.BinsY {
						return g.BinsY - 1
					}
					return v
				}
				clampZ := func(v int) int {
					if v < 0 {
						return 0
					}
					if v >= g.BinsZ {
						return g.BinsZ - 1
					}
					return v
				}
				addIfFree(clampX(x-rEff), y, z)
				addIfFree(clampX(x+rEff), y, z)
				addIfFree(x, clampY(y-rEff), z)
				addIfFree(x, clampY(y+rEff), z)
				addIfFree(x, y, clampZ(z-rEff))
				addIfFree(x, y, clampZ(z+rEff))
			}
		}
	}
	return waters
}

// RadialPlacement places candidate waters on a sphere of radius r_eff around
// every atom, sampled at fixed polar/azimuthal steps (spec.md §4.7 "radial:
// place on spheres around atoms"). No direct original_source counterpart
// exists (only JanPlacement's axial variant survived the distillation to
// source/); the sampling pattern follows the same collision-gated add-if-free
// contract as AxialPlacement.
type RadialPlacement struct {
	// Samples is the number of polar and of azimuthal steps per atom
	// (Samples² (theta, phi) pairs); a reasonable default is used when zero.
	Samples int
}

func (p RadialPlacement) Place(g *Grid, atoms []atom.Atom) []atom.Water {
	if err := g.AddAtoms(atoms); err != nil {
		return nil
	}
	samples := p.Samples
	if samples <= 0 {
		samples = 26 // 26 polar × 26 azimuthal steps
	}
	rEff := float64(g.RAtom+g.RWater) * g.Width

	var waters []atom.Water
	seen := make(map[[3]int]bool)
	for _, a := range atoms {
		for i := 0; i < samples; i++ {
			theta := math.Pi * float64(i) / float64(samples)
			for j := 0; j < samples; j++ {
				phi := 2 * math.Pi * float64(j) / float64(samples)
				wx := a.X + rEff*math.Sin(theta)*math.Cos(phi)
				wy := a.Y + rEff*math.Sin(theta)*math.Sin(phi)
				wz := a.Z + rEff*math.Cos(theta)

				bx, by, bz := g.ToBins(wx, wy, wz)
				if g.At(bx, by, bz) != empty {
					continue
				}
				key := [3]int{bx, by, bz}
				if seen[key] {
					continue
				}
				seen[key] = true
				waters = append(waters, atom.Water{X: wx, Y: wy, Z: wz, Weight: 1})
			}
		}
	}
	return waters
}

// PepsiPlacement places one candidate water per residue-representative atom
// (here, every input atom stands in for a residue's solvent-accessible
// surface point, since this module carries no residue/topology concept of
// its own) offset along the outward normal implied by its own position
// relative to the molecule's centroid. This approximates the reference
// implementation's per-residue Pepsi-style placement without requiring a
// residue graph (spec.md §1 Non-goals excludes full topology modeling).
type PepsiPlacement struct{}

func (PepsiPlacement) Place(g *Grid, atoms []atom.Atom) []atom.Water {
	if len(atoms) == 0 {
		return nil
	}
	if err := g.AddAtoms(atoms); err != nil {
		return nil
	}
	var cx, cy, cz float64
	for _, a := range atoms {
		cx += a.X
		cy += a.Y
		cz += a.Z
	}
	n := float64(len(atoms))
	cx, cy, cz = cx/n, cy/n, cz/n

	rEff := float64(g.RAtom+g.RWater) * g.Width
	var waters []atom.Water
	for _, a := range atoms {
		dx, dy, dz := a.X-cx, a.Y-cy, a.Z-cz
		norm := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if norm == 0 {
			continue
		}
		dx, dy, dz = dx/norm, dy/norm, dz/norm
		wx, wy, wz := a.X+rEff*dx, a.Y+rEff*dy, a.Z+rEff*dz
		bx, by, bz := g.ToBins(wx, wy, wz)
		if g.At(bx, by, bz) != empty {
			continue
		}
		waters = append(waters, atom.Water{X: wx, Y: wy, Z: wz, Weight: 1})
	}
	return waters
}
