// Package geometry implements the geometry parser (§4.1): a pure function
// from the graph's immutable Partwise/Instantwise structural edges to an
// ordered (part, instant) matrix, per-island PartID/InstantID, and
// per-part start-island lists.
package geometry

import (
	"github.com/schollz/engrave/internal/graph"
)

// Geometry is the parsed (part × instant) matrix plus the bookkeeping the
// rest of the engraver needs: per-part start islands and, per instant,
// whether every known part has an island there (§4.1 "complete").
type Geometry struct {
	Matrix       [][]graph.NodeIndex // Matrix[part][instant]; graph.NoNode for a non-participating cell
	PartStarts   []graph.NodeIndex   // first island of each part
	InstantCount int
	PartCount    int
	complete     []bool
}

// Parse walks the top-of-instant chain (the topmost part's own Partwise
// chain) one instant at a time; at each instant it walks Instantwise
// downward from that instant's top island, recording one island per row.
// Instants are numbered in encounter order; a row index that doesn't
// appear in a given instant's Instantwise chain is a null cell — the
// corresponding staff does not participate in that instant (§4.1). This
// assumes, as real scores do, that a missing staff is a missing
// *trailing* row within an instant (a staff simply isn't there yet, or is
// already finished) rather than a hole between two present staves; a
// present-but-skipped middle staff is exactly the situation invariant 6
// asks importers to avoid by unlinking unnecessary Instantwise edges.
func Parse(g *graph.Graph) *Geometry {
	geo := &Geometry{}
	if g.Root == graph.NoNode {
		return geo
	}

	var rows [][]graph.NodeIndex // rows[instant] = []islands top-down
	top := g.Root
	for top != graph.NoNode {
		var col []graph.NodeIndex
		node := top
		for node != graph.NoNode {
			col = append(col, node)
			below := g.InstantwiseBelow(node)
			if len(below) == 0 {
				break
			}
			node = below[0]
		}
		rows = append(rows, col)
		if len(col) > geo.PartCount {
			geo.PartCount = len(col)
		}
		top = g.NextPartwise(top)
	}
	geo.InstantCount = len(rows)

	geo.Matrix = make([][]graph.NodeIndex, geo.PartCount)
	for p := range geo.Matrix {
		geo.Matrix[p] = make([]graph.NodeIndex, geo.InstantCount)
		for t := range geo.Matrix[p] {
			geo.Matrix[p][t] = graph.NoNode
		}
	}
	geo.PartStarts = make([]graph.NodeIndex, geo.PartCount)
	for p := range geo.PartStarts {
		geo.PartStarts[p] = graph.NoNode
	}

	for t, col := range rows {
		for p, isl := range col {
			geo.Matrix[p][t] = isl
			if geo.PartStarts[p] == graph.NoNode {
				geo.PartStarts[p] = isl
			}
		}
	}

	geo.complete = make([]bool, geo.InstantCount)
	for t := 0; t < geo.InstantCount; t++ {
		ok := true
		for p := 0; p < geo.PartCount; p++ {
			if geo.Matrix[p][t] == graph.NoNode {
				ok = false
				break
			}
		}
		geo.complete[t] = ok
	}

	for p := 0; p < geo.PartCount; p++ {
		for t := 0; t < geo.InstantCount; t++ {
			isl := geo.Matrix[p][t]
			if isl == graph.NoNode {
				continue
			}
			n := g.Node(isl)
			n.Label.StateSet("PartID", p)
			n.Label.StateSet("InstantID", t)
		}
	}

	return geo
}

// IsComplete reports whether every known part has an island at instant t.
func (geo *Geometry) IsComplete(t int) bool {
	if t < 0 || t >= len(geo.complete) {
		return false
	}
	return geo.complete[t]
}

// At returns the island at (part, instant), or graph.NoNode.
func (geo *Geometry) At(part, instant int) graph.NodeIndex {
	if part < 0 || part >= geo.PartCount || instant < 0 || instant >= geo.InstantCount {
		return graph.NoNode
	}
	return geo.Matrix[part][instant]
}
