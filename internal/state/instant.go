package state

import (
	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/geometry"
	"github.com/schollz/engrave/internal/graph"
)

// accumulateInstants runs the §4.2 pass-3 InstantState rollup: for every
// instant, every note beginning a tie gets a placement recommendation —
// opposite its chord's resolved stem direction, the usual convention for
// keeping a tie clear of the stem and flags it curves past.
func accumulateInstants(g *graph.Graph, geo *geometry.Geometry, chords map[graph.NodeIndex]ChordInfo) map[int]InstantSnapshot {
	out := map[int]InstantSnapshot{}
	for t := 0; t < geo.InstantCount; t++ {
		ties := map[graph.NodeIndex]concept.Placement{}
		for p := 0; p < geo.PartCount; p++ {
			isl := geo.At(p, t)
			if isl == graph.NoNode {
				continue
			}
			for _, chord := range g.Chords(isl) {
				info := chords[chord]
				for _, note := range g.Notes(chord) {
					if g.OutOne(note, graph.EdgeTie) == nil {
						continue
					}
					place := concept.PlacementAbove
					if info.StemDirection == concept.StemUp {
						place = concept.PlacementBelow
					}
					ties[note] = place
				}
			}
		}
		out[t] = InstantSnapshot{TieDirections: ties}
	}
	return out
}
