// Package hydrate produces explicit hydration-shell water positions around a
// molecule for the histogram pipeline to consume as an ordinary water
// sequence (spec.md §4.7). The pipeline itself is agnostic to which strategy
// produced the waters.
//
// Grounded on original_source/include/hydrate/Grid.h (voxel occupancy grid,
// bin<->coordinate conversion) and source/hydrate/{JanPlacement,
// CounterCulling}.cpp (the axial placement and stride-based culling
// algorithms); Go layout follows the teacher's flat-struct-plus-free-
// functions style in backend/internal/geometry/coordinate_builder.go.
package hydrate

import (
	"fmt"

	"github.com/sarat-asymmetrica/saxscore/internal/atom"
)

// occupancy markers for one grid cell (original_source/include/hydrate/Grid.h
// uses 'A'/'H' chars for the same purpose).
type occupancy byte

const (
	empty occupancy = iota
	occupiedAtom
	occupiedWater
)

// Grid voxelizes a molecule's bounding volume so that placement strategies
// can test candidate water sites for collisions in O(1).
type Grid struct {
	BaseX, BaseY, BaseZ float64
	Width               float64
	BinsX, BinsY, BinsZ int

	cells  []occupancy
	RAtom  int // atom radius, in bins
	RWater int // water radius, in bins
}

// NewGrid allocates an empty grid covering [base, base+width*bins) in each
// dimension, with cubic bin counts (spec.md §4.7 "Grid").
func NewGrid(baseX, baseY, baseZ, width float64, bins, rAtom, rWater int) *Grid {
	return &Grid{
		BaseX: baseX, BaseY: baseY, BaseZ: baseZ,
		Width: width,
		BinsX: bins, BinsY: bins, BinsZ: bins,
		cells:  make([]occupancy, bins*bins*bins),
		RAtom:  rAtom,
		RWater: rWater,
	}
}

func (g *Grid) index(x, y, z int) int { return z*g.BinsY*g.BinsX + y*g.BinsX + x }

// ToBins converts an absolute (x, y, z) position into integer bin indices.
func (g *Grid) ToBins(x, y, z float64) (int, int, int) {
	return int((x - g.BaseX) / g.Width), int((y - g.BaseY) / g.Width), int((z - g.BaseZ) / g.Width)
}

// ToXYZ converts integer bin indices back into an absolute position, at the
// bin's lower corner.
func (g *Grid) ToXYZ(bx, by, bz int) (float64, float64, float64) {
	return g.BaseX + float64(bx)*g.Width, g.BaseY + float64(by)*g.Width, g.BaseZ + float64(bz)*g.Width
}

func (g *Grid) inBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < g.BinsX && y < g.BinsY && z < g.BinsZ
}

// At reports the occupancy marker at the given bin, or empty when out of
// bounds (placement strategies treat out-of-bounds as "not a collision" since
// the original grid instead aborts; we prefer letting candidates near the
// boundary be placed rather than killing the whole run, spec.md §1 favoring
// resilience over the original's hard exit).
func (g *Grid) At(x, y, z int) occupancy {
	if !g.inBounds(x, y, z) {
		return empty
	}
	return g.cells[g.index(x, y, z)]
}

// AddAtoms marks every atom's bin as occupied by protein (spec.md §4.7's
// grid consumes the molecule's real atoms before placement runs).
func (g *Grid) AddAtoms(atoms []atom.Atom) error {
	for _, a := range atoms {
		if err := g.set(a.X, a.Y, a.Z, occupiedAtom); err != nil {
			return err
		}
	}
	return nil
}

func (g *Grid) set(x, y, z float64, o occupancy) error {
	bx, by, bz := g.ToBins(x, y, z)
	if !g.inBounds(bx, by, bz) {
		return fmt.Errorf("hydrate: point (%.3f,%.3f,%.3f) lies outside the grid", x, y, z)
	}
	g.cells[g.index(bx, by, bz)] = o
	return nil
}

// BoundingBox returns the smallest [lo,hi) bin range (per axis) spanning
// every occupied-by-atom cell (original_source Grid::bounding_box).
func (g *Grid) BoundingBox() (loX, loY, loZ, hiX, hiY, hiZ int) {
	loX, loY, loZ = g.BinsX, g.BinsY, g.BinsZ
	hiX, hiY, hiZ = 0, 0, 0
	found := false
	for z := 0; z < g.BinsZ; z++ {
		for y := 0; y < g.BinsY; y++ {
			for x := 0; x < g.BinsX; x++ {
				if g.At(x, y, z) != occupiedAtom {
					continue
				}
				found = true
				if x < loX {
					loX = x
				}
				if y < loY {
					loY = y
				}
				if z < loZ {
					loZ = z
				}
				if x+1 > hiX {
					hiX = x + 1
				}
				if y+1 > hiY {
					hiY = y + 1
				}
				if z+1 > hiZ {
					hiZ = z + 1
				}
			}
		}
	}
	if !found {
		return 0, 0, 0, 0, 0, 0
	}
	return loX, loY, loZ, hiX, hiY, hiZ
}
