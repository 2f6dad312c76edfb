// Package em implements the EM density-map threshold search (spec.md §4.6):
// an ImageStack of voxel density slices is converted into a charge-density-
// bucketed atom cloud by a ProteinManager, and a ThresholdFitter scans the
// resulting atom set's SAXS fit over a range of cutoffs to locate the
// best-supported density threshold.
//
// Grounded on original_source/source/em/manager/SmartProteinManager.cpp (the
// incremental bucket-rebuild algorithm) and original_source/include/em/
// detail/ImageStackBase.h (voxel-to-atom generation); Go idiom follows
// backend/internal/sampling/basin_explorer.go's landscape-scan-then-refine
// style.
package em

import (
	"fmt"

	"github.com/sarat-asymmetrica/saxscore/internal/atom"
)

// Header describes the geometry of one EM density map: a VoxelSize (in the
// same length units as the SAXS q-axis's reciprocal) and an Origin offset,
// per spec.md §6's CCP4/MRC description.
type Header struct {
	NX, NY, NZ int
	VoxelSize  float64
	OriginX, OriginY, OriginZ float64
}

// VoxelVolume returns the volume of a single voxel, used to convert a density
// threshold into an atomic mass estimate (spec.md §4.6 step 6).
func (h Header) VoxelVolume() float64 {
	return h.VoxelSize * h.VoxelSize * h.VoxelSize
}

// ImageStack is a 3-D density grid addressed as NZ slices of NY x NX voxels,
// stored flattened in Data (index = z*NY*NX + y*NX + x). Its lifetime is tied
// to one input EM map (spec.md §3 "Lifetime tied to one input EM map").
type ImageStack struct {
	Header Header
	Data   []float64
}

// NewImageStack allocates a stack for the given header, zero-filled.
func NewImageStack(h Header) *ImageStack {
	return &ImageStack{Header: h, Data: make([]float64, h.NX*h.NY*h.NZ)}
}

func (s *ImageStack) index(x, y, z int) int {
	return z*s.Header.NY*s.Header.NX + y*s.Header.NX + x
}

// At returns the density at voxel (x, y, z).
func (s *ImageStack) At(x, y, z int) float64 {
	return s.Data[s.index(x, y, z)]
}

// Set stores the density at voxel (x, y, z).
func (s *ImageStack) Set(x, y, z int, v float64) {
	s.Data[s.index(x, y, z)] = v
}

// DensityAtom is one voxel promoted to a point scatterer, carrying the
// density that produced it so a ProteinManager can bucket it by charge
// level (original_source's EMAtom).
type DensityAtom struct {
	X, Y, Z float64
	Density float64
}

// AsAtom converts the voxel into a generic excluded-volume-type Atom for use
// by the histogram pipeline, with the voxel density folded into the weight.
func (d DensityAtom) AsAtom() atom.Atom {
	return atom.Atom{X: d.X, Y: d.Y, Z: d.Z, Weight: d.Density, FF: atom.ExcludedVolume}
}

// GenerateAtoms converts every voxel whose density exceeds cutoff into a
// DensityAtom positioned at the voxel center (spec.md §4.6 step 2a).
func (s *ImageStack) GenerateAtoms(cutoff float64) []DensityAtom {
	var atoms []DensityAtom
	h := s.Header
	for z := 0; z < h.NZ; z++ {
		for y := 0; y < h.NY; y++ {
			for x := 0; x < h.NX; x++ {
				d := s.At(x, y, z)
				if d <= cutoff {
					continue
				}
				atoms = append(atoms, DensityAtom{
					X:       h.OriginX + float64(x)*h.VoxelSize,
					Y:       h.OriginY + float64(y)*h.VoxelSize,
					Z:       h.OriginZ + float64(z)*h.VoxelSize,
					Density: d,
				})
			}
		}
	}
	return atoms
}

// MinMaxDensity scans the stack once and returns its density range, used to
// seed a ProteinManager's charge levels when the caller has not supplied
// explicit ones.
func (s *ImageStack) MinMaxDensity() (min, max float64, err error) {
	if len(s.Data) == 0 {
		return 0, 0, fmt.Errorf("em: empty image stack")
	}
	min, max = s.Data[0], s.Data[0]
	for _, v := range s.Data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, nil
}
