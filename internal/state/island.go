package state

import (
	"github.com/schollz/engrave/internal/geometry"
	"github.com/schollz/engrave/internal/graph"
	"github.com/schollz/engrave/internal/housestyle"
)

// accumulateIslands runs the §4.2 pass-1 IslandState fold: every island in
// the geometry gets a fresh local record with TypesetX reset to zero and a
// staff derived from house style, ready for the per-island engravers and
// the horizontal typesetter to overwrite.
func accumulateIslands(g *graph.Graph, geo *geometry.Geometry, house *housestyle.HouseStyle) map[graph.NodeIndex]IslandInfo {
	out := map[graph.NodeIndex]IslandInfo{}
	for p := 0; p < geo.PartCount; p++ {
		for t := 0; t < geo.InstantCount; t++ {
			isl := geo.At(p, t)
			if isl == graph.NoNode {
				continue
			}
			info := IslandInfo{
				StaffLines:  5,
				StaffOffset: 0,
				StaffScale:  house.Resolve(g.Node(isl), housestyle.SpaceHeight),
				TypesetX:    0,
			}
			out[isl] = info
		}
	}
	return out
}
