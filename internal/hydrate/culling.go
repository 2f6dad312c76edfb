package hydrate

import "github.com/sarat-asymmetrica/saxscore/internal/atom"

// CullingStrategy reduces a placed-water set down to a target count (spec.md
// §4.7: "A culling step reduces the candidate water set to a target count
// (default: none)"), per original_source/include/hydrate/culling/
// CullingStrategy.h's cull() contract.
type CullingStrategy interface {
	Cull(placed []atom.Water, targetCount int) []atom.Water
}

// NoCulling returns the placed waters unchanged, the spec's default
// (original_source/include/core/hydrate/culling/NoCulling.h).
type NoCulling struct{}

func (NoCulling) Cull(placed []atom.Water, _ int) []atom.Water { return placed }

// StrideCulling keeps every nth placed water, where n is chosen so the
// surviving count approximates targetCount, and discards the rest. Grounded
// on source/hydrate/CounterCulling.cpp's "iterate and reject all but the
// nth" algorithm.
type StrideCulling struct{}

func (StrideCulling) Cull(placed []atom.Water, targetCount int) []atom.Water {
	if targetCount <= 0 || len(placed) <= targetCount {
		return placed
	}
	factor := len(placed) / targetCount
	if factor < 2 {
		return placed
	}
	kept := make([]atom.Water, 0, targetCount+1)
	for i, w := range placed {
		if (i+1)%factor == 0 {
			kept = append(kept, w)
		}
	}
	return kept
}
