package engrave

import (
	"fmt"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/graph"
)

// TupletAncestors walks a chord's owning Tuplet info-nodes outward,
// innermost first, following nested tuplets' own incoming Tuplet edges
// (§4.11: "a chord's total time scalar is the product of all ancestor
// tuplet ratios").
func TupletAncestors(g *graph.Graph, chord graph.NodeIndex) []graph.NodeIndex {
	var out []graph.NodeIndex
	visited := map[graph.NodeIndex]bool{}
	frontier := chord
	for {
		edges := g.In(frontier, graph.EdgeTuplet)
		if len(edges) == 0 {
			break
		}
		t := edges[0].From
		if visited[t] {
			break
		}
		visited[t] = true
		out = append(out, t)
		frontier = t
	}
	return out
}

// ChordTupletScalar is the product of every ancestor tuplet's ratio.
func ChordTupletScalar(g *graph.Graph, chord graph.NodeIndex) concept.Duration {
	scalar := concept.NewDuration(1, 1)
	for _, t := range TupletAncestors(g, chord) {
		if v, ok := g.Node(t).Label.Get("Value"); ok && v.Kind == concept.KindRational {
			scalar = scalar.Mul(concept.Duration{Rat: v.Rat})
		}
	}
	return scalar
}

// TupletBracket is one bracket the tuplet engraver must draw (§4.11).
type TupletBracket struct {
	Node                  graph.NodeIndex
	Depth                 int
	Ratio                 concept.Duration
	Tag                   string
	Placement             concept.Placement
	FirstChord, LastChord graph.NodeIndex
}

// CollectTupletBrackets gathers a chord's tuplet nesting, innermost
// first, with each bracket's strand endpoints and resolved placement.
// beamPlaced/stemDir apply only to the innermost (depth 0) bracket, per
// §4.11 ("placement above/below by stem direction if Beam-placed");
// outer brackets fall back to each tuplet node's own Placement attribute.
func CollectTupletBrackets(g *graph.Graph, chord graph.NodeIndex, beamPlaced bool, stemDir concept.StemDirection) []TupletBracket {
	ancestors := TupletAncestors(g, chord)
	out := make([]TupletBracket, len(ancestors))
	for depth, t := range ancestors {
		n := g.Node(t)
		chords := g.Out(t, graph.EdgeTuplet)
		first, last := graph.NoNode, graph.NoNode
		tag := ""
		if len(chords) > 0 {
			first, last = chords[0].To, chords[len(chords)-1].To
			tag = chords[0].Tag
		}
		var ratio concept.Duration
		if v, ok := n.Label.Get("Value"); ok && v.Kind == concept.KindRational {
			ratio = concept.Duration{Rat: v.Rat}
		} else {
			ratio = concept.NewDuration(1, 1)
		}
		placement := tupletPlacementAttr(n)
		if depth == 0 && beamPlaced {
			placement = concept.PlacementBelow
			if stemDir == concept.StemUp {
				placement = concept.PlacementAbove
			}
		}
		out[depth] = TupletBracket{Node: t, Depth: depth, Ratio: ratio, Tag: tag, Placement: placement, FirstChord: first, LastChord: last}
	}
	return out
}

func tupletPlacementAttr(n *graph.Node) concept.Placement {
	if v, ok := n.Label.Get("Placement"); ok && v.Kind == concept.KindString && v.Str == "below" {
		return concept.PlacementBelow
	}
	return concept.PlacementAbove
}

// BracketOffset is the bracket endpoints' displacement from the staff
// (§4.11): 0.5 units when beam-placed, 1.5 otherwise.
func BracketOffset(beamPlaced bool) float64 {
	if beamPlaced {
		return 0.5
	}
	return 1.5
}

// TupletLabel renders "n" or, when fullRatio is requested, "n:m".
func TupletLabel(ratio concept.Duration, fullRatio bool) string {
	n := ratio.Denom().Int64()
	m := ratio.Num().Int64()
	if fullRatio {
		return fmt.Sprintf("%d:%d", n, m)
	}
	return fmt.Sprintf("%d", n)
}
