// Package typeset implements the horizontal typesetter, barline
// repetition across a system wrap, and the system-wrap optimizer
// (§4.13-§4.15): turning a sequence of per-island stamps into page
// x-positions, one system at a time.
package typeset

import (
	"math"

	"github.com/schollz/engrave/internal/geometry"
	"github.com/schollz/engrave/internal/graph"
	"github.com/schollz/engrave/internal/stamp"
)

// Positions is the §4.13 output: each island's resolved x origin on its
// system, plus the furthest right edge any part reached.
type Positions struct {
	InstantPositions map[int]float64 // instant index -> instant_origin
	IslandX          map[graph.NodeIndex]float64
	FurthestRight    float64
}

// TypesetSystem runs §4.13's leading-edge propagation over one system (a
// contiguous run of instant indices into geo). stamps must already hold
// every island's engraved stamp.Stamp (internal/engrave's output); only
// Bounds() is read.
func TypesetSystem(geo *geometry.Geometry, stamps map[graph.NodeIndex]*stamp.Stamp, instants []int) Positions {
	out := Positions{
		InstantPositions: make(map[int]float64, len(instants)),
		IslandX:          map[graph.NodeIndex]float64{},
	}
	leadingEdge := make([]float64, geo.PartCount)

	for _, t := range instants {
		origin := math.Inf(-1)
		for p := 0; p < geo.PartCount; p++ {
			isl := geo.At(p, t)
			if isl == graph.NoNode {
				continue
			}
			b := stamps[isl].Bounds()
			candidate := leadingEdge[p] - b.Left
			if candidate > origin {
				origin = candidate
			}
		}
		if math.IsInf(origin, -1) {
			origin = 0
		}
		out.InstantPositions[t] = origin

		for p := 0; p < geo.PartCount; p++ {
			isl := geo.At(p, t)
			if isl == graph.NoNode {
				continue
			}
			out.IslandX[isl] = origin
			b := stamps[isl].Bounds()
			leadingEdge[p] = origin + b.Right
			if leadingEdge[p] > out.FurthestRight {
				out.FurthestRight = leadingEdge[p]
			}
		}
	}
	return out
}
