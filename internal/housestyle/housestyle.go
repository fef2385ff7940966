// Package housestyle implements the §3.5 house-style resolver: a shared,
// immutable mapping from property name to property value, with per-island
// overrides. It is threaded explicitly through every engraving call (§9)
// rather than kept as a module-level singleton, and is loaded/saved the
// way the teacher persisted its settings arrays — through
// jsoniter.ConfigCompatibleWithStandardLibrary, not encoding/json — see
// internal/storage/storage.go's `var json = jsoniter.Config...` idiom.
package housestyle

import (
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/graph"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Well-known property keys (§3.5).
const (
	SpaceHeight             = "space-height"
	StaffDistance            = "staff-distance"
	NoteheadWidth            = "notehead-width"
	NoteheadAngle            = "notehead-angle"
	NoteheadPreciseWidth     = "notehead-precise-width"
	StemWidth                = "stem-width"
	DefaultStemHeight        = "default-stem-height"
	LedgerLineExtension      = "ledger-line-extension"
	RhythmicDotSize          = "rhythmic-dot-size"
	BarlineThickness         = "barline-thickness"
	NonInitialClefSize       = "non-initial-clef-size"
	// MeasureRestVerticalPosition resolves the §9 open question: the
	// source hard-codes a staff line for measure-rest placement; here it
	// is a configurable house-style property instead.
	MeasureRestVerticalPosition = "measure-rest-vertical-position"
	BeamLevelSpacing            = "beam-level-spacing"
	BeamLevelThickness          = "beam-level-thickness"
	AccidentalGap               = "accidental-gap"
	DotSpacing                  = "dot-spacing"
	DotNoteheadDistance         = "dot-notehead-distance"
)

// defaults mirrors belle's House defaults in engraving-space units (one
// space = the gap between two adjacent staff lines).
var defaults = map[string]float64{
	SpaceHeight:                 1.0,
	StaffDistance:               9.0,
	NoteheadWidth:               1.3,
	NoteheadAngle:               18.0,
	NoteheadPreciseWidth:        1.25,
	StemWidth:                   0.12,
	DefaultStemHeight:           3.5,
	LedgerLineExtension:         0.4,
	RhythmicDotSize:             0.18,
	BarlineThickness:            0.14,
	NonInitialClefSize:          0.8,
	MeasureRestVerticalPosition: 2, // staff line 4/3 from the bottom, per §4.8
	BeamLevelSpacing:            0.8,
	BeamLevelThickness:          0.5,
	AccidentalGap:               0.3,
	DotSpacing:                  0.6,
	DotNoteheadDistance:         0.4,
}

// HouseStyle is the shared immutable style object (§3.5, §9). Values are
// read through Resolve, never mutated after construction; callers that
// want a modified style build a new HouseStyle with Override.
type HouseStyle struct {
	Global map[string]float64
}

// Default returns a HouseStyle populated with belle-style defaults.
func Default() *HouseStyle {
	h := &HouseStyle{Global: make(map[string]float64, len(defaults))}
	for k, v := range defaults {
		h.Global[k] = v
	}
	return h
}

// Override returns a new HouseStyle with the given global properties
// replaced, leaving the receiver untouched (house style is immutable).
func (h *HouseStyle) Override(props map[string]float64) *HouseStyle {
	out := &HouseStyle{Global: make(map[string]float64, len(h.Global))}
	for k, v := range h.Global {
		out.Global[k] = v
	}
	for k, v := range props {
		out.Global[k] = v
	}
	return out
}

// Resolve looks up a property, preferring an island-local override (a
// child Property entry in the island's label, §3.5) over the global value.
func (h *HouseStyle) Resolve(island *graph.Node, key string) float64 {
	if island != nil {
		if v, ok := island.Label.Get("Property." + key); ok && v.Kind == concept.KindRational {
			f, _ := v.Rat.Float64()
			return f
		}
	}
	return h.Global[key]
}

// Get looks up a global property with no island override.
func (h *HouseStyle) Get(key string) float64 { return h.Global[key] }

// Load reads a JSON-encoded global property map.
func Load(path string) (*HouseStyle, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	h := Default()
	if err := json.Unmarshal(b, &h.Global); err != nil {
		return nil, err
	}
	return h, nil
}

// Save writes the global property map as JSON.
func Save(path string, h *HouseStyle) error {
	b, err := json.MarshalIndent(h.Global, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
