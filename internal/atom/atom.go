// Package atom defines the atomic data model shared by the histogram,
// form-factor, and EM subsystems.
//
// BIOCHEMIST: an atom's scattering behavior is fully determined by its position,
// its effective electron weight, and which of the closed set of form-factor
// groups it belongs to (element, or united-atom group like CH2).
// PHYSICIST: positions are stored as float32 to keep CompactCoordinatesData at
// exactly 16 bytes, which is what lets the histogram inner loop stream through
// cache lines instead of chasing pointers.
package atom

import (
	"fmt"
	"unsafe"
)

// FormFactorType is the closed set of scattering groups a record can belong to.
// The set is fixed by the form-factor table (internal/formfactor) and must
// never be extended without adding a matching table row.
type FormFactorType int

const (
	H FormFactorType = iota
	C
	N
	O
	S
	CH
	CH2
	CH3
	NH
	NH2
	OH
	SH
	OTHER
	ExcludedVolume
	Water

	// NH3Plus and NHGuanine are reserved table rows (spec.md §9 Open Question):
	// the form-factor table carries Gaussian parameters for them, but no
	// residue-to-form-factor emitter in this module ever produces them. They
	// exist so a future residue dictionary can wire them in without a table
	// migration.
	NH3Plus
	NHGuanine

	numFormFactorTypes = int(NHGuanine) + 1
)

// NumFormFactorTypes is the size of the closed form-factor-type set, used to
// size the 2-D/3-D distribution axes in internal/histogram.
func NumFormFactorTypes() int { return numFormFactorTypes }

func (t FormFactorType) String() string {
	switch t {
	case H:
		return "H"
	case C:
		return "C"
	case N:
		return "N"
	case O:
		return "O"
	case S:
		return "S"
	case CH:
		return "CH"
	case CH2:
		return "CH2"
	case CH3:
		return "CH3"
	case NH:
		return "NH"
	case NH2:
		return "NH2"
	case OH:
		return "OH"
	case SH:
		return "SH"
	case OTHER:
		return "OTHER"
	case ExcludedVolume:
		return "EXCLUDED_VOLUME"
	case Water:
		return "WATER"
	case NH3Plus:
		return "NH3+"
	case NHGuanine:
		return "NH_GUANINE"
	default:
		return fmt.Sprintf("FormFactorType(%d)", int(t))
	}
}

// Atom is a single scattering center: a 3-D position, an effective weight
// (electron count, or 1.0 for a unit-weight placeholder), and a form-factor tag.
type Atom struct {
	X, Y, Z float64
	Weight  float64
	FF      FormFactorType
}

// Water is laid out identically to Atom but always carries the WATER tag.
// It is a distinct type (rather than a tagged Atom) so that a Body's atom slice
// and its water slice can never be mixed up at the type level.
type Water struct {
	X, Y, Z float64
	Weight  float64
}

// AsAtom returns the Water as an Atom tagged WATER, for code paths that treat
// the two uniformly (e.g. CompactCoordinates construction).
func (w Water) AsAtom() Atom {
	return Atom{X: w.X, Y: w.Y, Z: w.Z, Weight: w.Weight, FF: Water}
}

// CompactCoordinatesData is the packed, cache-dense record used by the
// histogram inner loops. Invariant (spec.md §3): exactly 16 bytes — four
// float32 fields, no padding.
type CompactCoordinatesData struct {
	X, Y, Z, W float32
}

// compile-time invariant: CompactCoordinatesData must stay 16 bytes. If a field
// is ever added or widened, this array bound goes negative and the package
// fails to compile instead of silently doubling the histogram's memory traffic.
var _ [unsafe.Sizeof(CompactCoordinatesData{}) - 16]struct{}
var _ [16 - unsafe.Sizeof(CompactCoordinatesData{})]struct{}

// FromAtom packs an Atom into its compact record.
func FromAtom(a Atom) CompactCoordinatesData {
	return CompactCoordinatesData{X: float32(a.X), Y: float32(a.Y), Z: float32(a.Z), W: float32(a.Weight)}
}
