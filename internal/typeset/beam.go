package typeset

import (
	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/engrave"
	"github.com/schollz/engrave/internal/graph"
	"github.com/schollz/engrave/internal/housestyle"
	"github.com/schollz/engrave/internal/stamp"
	"github.com/schollz/engrave/internal/state"
)

// EngraveBeams is §4.6's cross-island half: once every island has a
// typeset x-position (Positions) and its own stamp already holding a
// stem marker per sounding chord (internal/engrave.StemBounds), walk
// each beam group — a maximal chain of chords linked by Beam edges in
// partwise order — resolve shared beam levels and flag fallbacks, and
// append the resulting beam/flag graphics to the stamps of the islands
// the group spans. Mirrors the per-island/cross-island split
// EngraveFloatSpans uses for pedal and octave span ends (§9).
func EngraveBeams(g *graph.Graph, acc *state.Accumulated, house *housestyle.HouseStyle, stamps map[graph.NodeIndex]*stamp.Stamp, positions Positions) {
	for i := range g.Nodes {
		chord := graph.NodeIndex(i)
		n := &g.Nodes[i]
		if n.Kind != graph.KindToken || n.TokenKind != graph.TokenChord {
			continue
		}
		if g.InOne(chord, graph.EdgeBeam) != nil {
			continue // not a group start
		}
		group := beamChain(g, chord)
		if len(group) < 2 {
			continue
		}
		engraveBeamGroup(g, acc, house, stamps, positions, group)
	}
}

func beamChain(g *graph.Graph, start graph.NodeIndex) []graph.NodeIndex {
	chain := []graph.NodeIndex{start}
	for cur := start; ; {
		e := g.OutOne(cur, graph.EdgeBeam)
		if e == nil {
			return chain
		}
		chain = append(chain, e.To)
		cur = e.To
	}
}

func chordWrittenDuration(n *graph.Node) concept.Duration {
	if v, ok := n.Label.Get("NoteValue"); ok && v.Kind == concept.KindRational {
		return concept.Duration{Rat: v.Rat}
	}
	return concept.NewDuration(1, 4)
}

func extraBeamLevels(n *graph.Node) int {
	if f := concept.FlagsGivenDuration(chordWrittenDuration(n)) - 1; f > 0 {
		return f
	}
	return 0
}

func engraveBeamGroup(g *graph.Graph, acc *state.Accumulated, house *housestyle.HouseStyle, stamps map[graph.NodeIndex]*stamp.Stamp, positions Positions, group []graph.NodeIndex) {
	stems := make([]engrave.StemRecord, len(group))
	islands := make([]graph.NodeIndex, len(group))
	localX := make([]float64, len(group))
	primaryY := make([]float64, len(group))

	for i, chord := range group {
		isl := engrave.OwningIsland(g, chord)
		s := stamps[isl]
		if s == nil {
			return // island not yet engraved; nothing to attach to
		}
		bounds, found := engrave.StemBounds(s, chord)
		if !found {
			return
		}
		info := acc.ChordInfoFor(chord)
		extra := extraBeamLevels(g.Node(chord))
		beginsGroup := i == 0 || stems[i-1].ExtraLevels == 0
		stems[i] = engrave.StemRecord{Direction: info.StemDirection, ExtraLevels: extra, BeginsGroup: beginsGroup}
		islands[i] = isl
		localX[i] = bounds.Left
		if info.StemDirection == concept.StemDown {
			primaryY[i] = bounds.Bottom
		} else {
			primaryY[i] = bounds.Top
		}
	}

	levels := engrave.ResolveBeamLevels(stems)
	spacing := house.Get(housestyle.BeamLevelSpacing)
	thickness := house.Get(housestyle.BeamLevelThickness)

	// globalX converts chord i's stem x into page space; addSegment then
	// re-expresses a page-space span relative to the anchor island's own
	// local origin, so it can be appended to that island's stamp without
	// double-counting positions.IslandX when the page is later composited.
	globalX := func(i int) float64 { return positions.IslandX[islands[i]] + localX[i] }

	addSegment := func(anchor graph.NodeIndex, x0, y0, x1, y1 float64) {
		anchorX := positions.IslandX[anchor]
		left, right := x0-anchorX, x1-anchorX
		y := (y0 + y1) / 2
		if right < left {
			left, right = right, left
		}
		stamps[anchor].Add(&stamp.Graphic{
			Path:        stamp.PathRef{RawBounds: stamp.Bounds{Right: right - left, Top: thickness}},
			StrokeWidth: 0,
			Transform:   stamp.Translate(left, y-thickness/2),
		})
	}

	maxAbove, maxBelow := 0, 0
	for _, bl := range levels {
		if bl.Above > maxAbove {
			maxAbove = bl.Above
		}
		if bl.Below > maxBelow {
			maxBelow = bl.Below
		}
	}

	for i := 0; i+1 < len(group); i++ {
		gx0, gy0 := globalX(i), primaryY[i]
		gx1, gy1 := globalX(i+1), primaryY[i+1]
		for level := -maxBelow; level <= maxAbove; level++ {
			if !engrave.BeamExistsBetween(levels, i, level) {
				continue
			}
			y0 := gy0 + float64(level)*spacing
			y1 := gy1 + float64(level)*spacing
			addSegment(islands[i], gx0, y0, gx1, y1)
		}
	}

	stubLength := house.Get(housestyle.NoteheadWidth)
	for _, flag := range engrave.ResolveFlags(levels) {
		x := globalX(flag.StemIndex)
		y := primaryY[flag.StemIndex] + float64(flag.Level)*spacing
		if flag.Left {
			addSegment(islands[flag.StemIndex], x-stubLength, y, x, y)
		} else {
			addSegment(islands[flag.StemIndex], x, y, x+stubLength, y)
		}
	}
}
