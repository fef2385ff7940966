// Package state implements the three ordered state-accumulation passes of
// §4.2: IslandState, PartState, then InstantState, each reading only the
// graph's immutable structural edges and the previous passes' output
// (§5: parts may be processed independently/in parallel during PartState,
// but InstantState must run after). All accumulation is pure: calling it
// twice from scratch (after graph.Graph.ClearState) yields an identical
// Accumulated value, which is the §8 idempotence/round-trip property this
// package's tests exercise directly.
package state

import (
	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/geometry"
	"github.com/schollz/engrave/internal/graph"
)

// AlteredEntry is one entry of PartState's Accidentals.Altered ordered
// list (§4.2).
type AlteredEntry struct {
	Accidental    concept.Accidental
	Diatonic      concept.DiatonicPitch
	StaffPosition int
	MeasuresAgo   int
}

// PartSnapshot is the PartState as of (and including) one island: the
// active clef/key and the current Accidentals.Altered list.
type PartSnapshot struct {
	Clef    concept.Clef
	Key     concept.KeySignature
	Altered []AlteredEntry
}

// ChordInfo is PartState's per-chord substate (§4.2 "Chord (keyed by
// chord node)").
type ChordInfo struct {
	HighestPos                     int
	LowestPos                      int
	StemHasBeam                    bool
	StemDirectionSingleVoice       concept.StemDirection
	StemDirectionSingleVoiceBeamed concept.StemDirection
	StemDirection                  concept.StemDirection
	StrandID                       int // -1 when the island is not a multivoice region
}

// NoteDecision is the per-note accidental-emission decision of §4.2's
// "Accidental decision" algorithm.
type NoteDecision struct {
	Pitch         concept.Pitch
	StaffPosition int
	Emit          bool
}

// InstantSnapshot is the cross-staff InstantState rollup (§4.2 pass 3):
// currently the tie-direction advice table and the repeating-instant flag
// consulted by barline repetition across a system wrap (§4.14).
type InstantSnapshot struct {
	TieDirections      map[graph.NodeIndex]concept.Placement
	IsRepeatingInstant bool
}

// IslandInfo is the §4.2 pass-1 IslandState: local-to-island measurements
// established before any per-island engraving writes real stamps/bounds.
type IslandInfo struct {
	StaffLines  int
	StaffOffset float64
	StaffScale  float64
	TypesetX    float64
}

// Accumulated is the result of running all three passes once.
type Accumulated struct {
	Geo            *geometry.Geometry
	Islands        map[graph.NodeIndex]IslandInfo
	PartSnapshotAt map[graph.NodeIndex]PartSnapshot
	Chords         map[graph.NodeIndex]ChordInfo
	Notes          map[graph.NodeIndex]NoteDecision
	Instants       map[int]InstantSnapshot
}
