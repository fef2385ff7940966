package state

import (
	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/geometry"
	"github.com/schollz/engrave/internal/graph"
	"github.com/schollz/engrave/internal/housestyle"
)

// Accumulate runs all three §4.2 passes over g from scratch. The only
// ephemeral Label.State it writes is the PartID/InstantID that
// geometry.Parse records on each island; the accumulated substate reaches
// Label.State only through WriteToGraph, which callers may invoke separately once they're ready to commit the
// result (mirroring the real Island/Part/InstantState layout onto the
// graph for downstream engravers that prefer reading it off the node
// instead of threading an *Accumulated value around).
func Accumulate(g *graph.Graph, house *housestyle.HouseStyle) *Accumulated {
	return AccumulatePartStates(g, house, false)
}

// AccumulatePartStates is Accumulate with an explicit choice of whether
// PartState folding (pass A, §4.2) fans out one goroutine per part
// (mirroring the teacher's sync.WaitGroup/sync.Mutex concurrency idiom in
// internal/midiplayer and internal/storage, per §5). Both settings
// produce byte-identical results; parallel only changes wall-clock time
// on scores with several parts.
func AccumulatePartStates(g *graph.Graph, house *housestyle.HouseStyle, parallel bool) *Accumulated {
	geo := geometry.Parse(g)

	islands := accumulateIslands(g, geo, house)

	pa := &partAccumulator{g: g, geo: geo}
	snapshots, chords, notes, islandOrder := pa.passA(parallel)

	resolved := resolveVoicing(g, islandOrder, chords)
	pa.passC(chords, resolved)

	instants := accumulateInstants(g, geo, chords)

	return &Accumulated{
		Geo:            geo,
		Islands:        islands,
		PartSnapshotAt: snapshots,
		Chords:         chords,
		Notes:          notes,
		Instants:       instants,
	}
}

// WriteToGraph mirrors the accumulated result onto the graph's ephemeral
// Label.State (§3.3): islands get "IslandState" and "PartState", chord
// tokens get "ChordInfo", notes get "AccidentalDecision". Re-running
// g.ClearState(), Accumulate, and WriteToGraph must reproduce byte-for-
// byte identical state — the §8 idempotence property this package's
// tests check directly against the returned *Accumulated instead.
func (a *Accumulated) WriteToGraph(g *graph.Graph) {
	for isl, info := range a.Islands {
		g.Node(isl).Label.StateSet("IslandState", info)
	}
	for isl, snap := range a.PartSnapshotAt {
		g.Node(isl).Label.StateSet("PartState", snap)
	}
	for chord, info := range a.Chords {
		g.Node(chord).Label.StateSet("ChordInfo", info)
	}
	for note, dec := range a.Notes {
		g.Node(note).Label.StateSet("AccidentalDecision", dec)
	}
	for t, inst := range a.Instants {
		for p := 0; p < a.Geo.PartCount; p++ {
			isl := a.Geo.At(p, t)
			if isl == graph.NoNode {
				continue
			}
			g.Node(isl).Label.StateSet("InstantState", inst)
		}
	}
}

// ChordInfoFor is a convenience accessor used by the per-island engravers
// (§4.3 onward) that would otherwise need to know this package's map
// shape; it returns a default ChordInfo (StrandID -1, StemUp) for a node
// that isn't a chord or wasn't visited.
func (a *Accumulated) ChordInfoFor(chord graph.NodeIndex) ChordInfo {
	info, ok := a.Chords[chord]
	if !ok {
		return ChordInfo{StrandID: -1, StemDirection: concept.StemUp}
	}
	return info
}
