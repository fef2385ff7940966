package typeset

import (
	"github.com/schollz/engrave/internal/engrave"
	"github.com/schollz/engrave/internal/graph"
	"github.com/schollz/engrave/internal/housestyle"
	"github.com/schollz/engrave/internal/stamp"
)

// EngraveFloatSpans is §4.12's cross-island half: a pedal mark or octave
// transposition's own glyph is placed at its origin island by
// internal/engrave; this pass adds the span's visible end — the pedal's
// closing "*" or the octave line's downward hook — at the last island the
// span's Span edges reach, now that every island has a typeset x-position.
// A plain expression marking has no span end and is skipped.
func EngraveFloatSpans(g *graph.Graph, house *housestyle.HouseStyle, stamps map[graph.NodeIndex]*stamp.Stamp, positions Positions) {
	for i := range g.Nodes {
		float := graph.NodeIndex(i)
		if g.Nodes[i].Kind != graph.KindFloat {
			continue
		}
		n := &g.Nodes[i]
		kind := engrave.FloatKind(n)
		if kind != "pedal" && kind != "octave" {
			continue
		}
		_, last := engrave.FloatSpanEnds(g, float)
		if last == graph.NoNode {
			continue
		}
		s := stamps[last]
		if s == nil {
			continue
		}
		y := engrave.FloatBaselineY(n, house)

		switch kind {
		case "pedal":
			_, end := engrave.PedalMarks()
			s.Add(&stamp.Graphic{
				Path:      stamp.PathRef{Text: end, RawBounds: stamp.Bounds{Right: 0.8, Top: 0.8}},
				Transform: stamp.Translate(0, y),
			})
		case "octave":
			hookLength := house.Get(housestyle.SpaceHeight)
			sign := 1.0
			if y < 0 {
				sign = -1
			}
			s.Add(&stamp.Graphic{
				Path:      stamp.PathRef{RawBounds: stamp.Bounds{Right: 0.1, Top: hookLength}},
				Transform: stamp.Translate(0, y-sign*hookLength),
			})
		}
	}
}
