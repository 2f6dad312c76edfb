// Package settings loads and persists the `.dat` settings file spec.md §7
// names as in-scope state: one "key value" line per recognized option.
//
// Grounded on spec.md §9's recognized-options table; uses
// github.com/spf13/viper (cited in DESIGN.md's dependency ledger) configured
// for a flat key/value props-style file, the closest viper config type to
// the `.dat` format's "one key value per line" shape.
package settings

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Settings holds every recognized `.dat` option (spec.md §9).
type Settings struct {
	PlacementStrategy string // "axial", "radial", "none", "pepsi"
	HistogramManager  string // "mt" (multithreaded) or "st"
	FitExcludedVolume bool
	QMin              float64
	QMax              float64
	GridWidth         float64
	Threads           int
	OutputDir         string
	SampleFrequency   int
	ChargeLevels      int
	HydrationOn       bool
	KeepHydrogens     bool
	InputQUnit        string // "angstrom" or "nanometer"
}

// Default returns the recommended settings (spec.md §9 defaults: no
// hydration placement, multithreaded histogram manager).
func Default() Settings {
	return Settings{
		PlacementStrategy: "none",
		HistogramManager:  "mt",
		FitExcludedVolume: false,
		QMin:              0,
		QMax:              0.5,
		GridWidth:         1.0,
		Threads:           0, // 0 means hardware_concurrency-1, per spec.md §5
		OutputDir:         ".",
		SampleFrequency:   1,
		ChargeLevels:      50,
		HydrationOn:       false,
		KeepHydrogens:     false,
		InputQUnit:        "angstrom",
	}
}

// recognized lists every key this module understands, for Load's unknown-key
// rejection (spec.md §9: "the recognized-options table").
var recognized = map[string]bool{
	"placement_strategy":  true,
	"histogram_manager":   true,
	"fit_excluded_volume": true,
	"q_min":               true,
	"q_max":               true,
	"grid_width":          true,
	"threads":             true,
	"output_dir":          true,
	"sample_frequency":    true,
	"charge_levels":       true,
	"hydration_on":        true,
	"keep_hydrogens":      true,
	"input_q_unit":        true,
}

// Load parses a `.dat` settings file, starting from Default() and overriding
// each key present in data. Unrecognized keys are rejected (spec.md §9).
func Load(data []byte) (Settings, error) {
	v := viper.New()
	v.SetConfigType("properties")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return Settings{}, fmt.Errorf("settings: parse: %w", err)
	}

	for _, key := range v.AllKeys() {
		if !recognized[key] {
			return Settings{}, fmt.Errorf("settings: unrecognized key %q", key)
		}
	}

	s := Default()
	if v.IsSet("placement_strategy") {
		s.PlacementStrategy = v.GetString("placement_strategy")
	}
	if v.IsSet("histogram_manager") {
		s.HistogramManager = v.GetString("histogram_manager")
	}
	if v.IsSet("fit_excluded_volume") {
		s.FitExcludedVolume = v.GetBool("fit_excluded_volume")
	}
	if v.IsSet("q_min") {
		s.QMin = v.GetFloat64("q_min")
	}
	if v.IsSet("q_max") {
		s.QMax = v.GetFloat64("q_max")
	}
	if v.IsSet("grid_width") {
		s.GridWidth = v.GetFloat64("grid_width")
	}
	if v.IsSet("threads") {
		s.Threads = v.GetInt("threads")
	}
	if v.IsSet("output_dir") {
		s.OutputDir = v.GetString("output_dir")
	}
	if v.IsSet("sample_frequency") {
		s.SampleFrequency = v.GetInt("sample_frequency")
	}
	if v.IsSet("charge_levels") {
		s.ChargeLevels = v.GetInt("charge_levels")
	}
	if v.IsSet("hydration_on") {
		s.HydrationOn = v.GetBool("hydration_on")
	}
	if v.IsSet("keep_hydrogens") {
		s.KeepHydrogens = v.GetBool("keep_hydrogens")
	}
	if v.IsSet("input_q_unit") {
		s.InputQUnit = v.GetString("input_q_unit")
	}
	return s, nil
}

// Save serializes s back into the "one key value line" `.dat` format, in the
// same key order as the recognized-options table (spec.md §9).
func Save(s Settings) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "placement_strategy %s\n", s.PlacementStrategy)
	fmt.Fprintf(&b, "histogram_manager %s\n", s.HistogramManager)
	fmt.Fprintf(&b, "fit_excluded_volume %s\n", strconv.FormatBool(s.FitExcludedVolume))
	fmt.Fprintf(&b, "q_min %s\n", strconv.FormatFloat(s.QMin, 'g', -1, 64))
	fmt.Fprintf(&b, "q_max %s\n", strconv.FormatFloat(s.QMax, 'g', -1, 64))
	fmt.Fprintf(&b, "grid_width %s\n", strconv.FormatFloat(s.GridWidth, 'g', -1, 64))
	fmt.Fprintf(&b, "threads %d\n", s.Threads)
	fmt.Fprintf(&b, "output_dir %s\n", s.OutputDir)
	fmt.Fprintf(&b, "sample_frequency %d\n", s.SampleFrequency)
	fmt.Fprintf(&b, "charge_levels %d\n", s.ChargeLevels)
	fmt.Fprintf(&b, "hydration_on %s\n", strconv.FormatBool(s.HydrationOn))
	fmt.Fprintf(&b, "keep_hydrogens %s\n", strconv.FormatBool(s.KeepHydrogens))
	fmt.Fprintf(&b, "input_q_unit %s\n", s.InputQUnit)
	return []byte(b.String())
}
