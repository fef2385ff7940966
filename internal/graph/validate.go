package graph

import "github.com/schollz/engrave/internal/engraveerr"

// Validate checks the structural invariants of §3.1 that the engraver
// requires before it can run: a root exists, every chord is owned by
// exactly one island, and every note is owned by exactly one chord
// (invariants 1-2). Invariant 1's full "connected via Partwise ∪
// Instantwise" requirement is not checked here, and geometry.Parse does
// not report it either: it places only the islands it reaches from the
// root and returns no error.
func (g *Graph) Validate() error {
	if g.Root == NoNode {
		return engraveerr.Wrap(engraveerr.InvalidGraph, "graph: no root island")
	}
	if int(g.Root) < 0 || int(g.Root) >= len(g.Nodes) {
		return engraveerr.Wrap(engraveerr.InvalidGraph, "graph: root index %d out of range", g.Root)
	}

	owningIsland := map[NodeIndex]int{}
	for _, n := range g.Nodes {
		if n.Kind != KindIsland {
			continue
		}
		for _, e := range g.Out(n.Index, EdgeToken) {
			owningIsland[e.To]++
		}
	}
	for _, n := range g.Nodes {
		if n.Kind != KindToken {
			continue
		}
		if owningIsland[n.Index] != 1 {
			return engraveerr.Wrap(engraveerr.InvalidGraph, "graph: token %d owned by %d islands, want 1", n.Index, owningIsland[n.Index])
		}
	}

	owningChord := map[NodeIndex]int{}
	for _, n := range g.Nodes {
		if n.Kind != KindToken || n.TokenKind != TokenChord {
			continue
		}
		for _, e := range g.Out(n.Index, EdgeNote) {
			owningChord[e.To]++
		}
	}
	for _, n := range g.Nodes {
		if n.Kind != KindNote {
			continue
		}
		if owningChord[n.Index] != 1 {
			return engraveerr.Wrap(engraveerr.InvalidGraph, "graph: note %d owned by %d chords, want 1", n.Index, owningChord[n.Index])
		}
	}

	for _, e := range g.Edges {
		if int(e.From) < 0 || int(e.From) >= len(g.Nodes) || int(e.To) < 0 || int(e.To) >= len(g.Nodes) {
			return engraveerr.Wrap(engraveerr.InvalidGraph, "graph: dangling edge %d", e.Index)
		}
	}
	return nil
}
