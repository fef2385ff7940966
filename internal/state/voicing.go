package state

import (
	"sort"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/graph"
)

// strand is one voice strand: the ordered chain of chords reached by
// following Voice edges from a chord that has no incoming one.
type strand struct {
	chords  []graph.NodeIndex
	average float64
}

// resolveVoicing implements §4.2's Voicing sub-pass: an island "begins a
// multivoice region" when two or more of its own chords each start a
// strand (no incoming Voice edge). Strands are ranked by average staff
// position, highest first, and given sequential StrandIDs; a chord's
// final stem direction in a multivoice region alternates by StrandID
// parity rather than following the single-voice position rule.
//
// chords carries every chord's already-computed Highest/Lowest (from the
// clef/accidental pass); resolveVoicing mutates it in place, setting
// StrandID and StemDirection for every chord belonging to a resolved
// strand, and returns the set of chords it touched so the single-voice
// pass can skip them.
func resolveVoicing(g *graph.Graph, islandsInOrder []graph.NodeIndex, chords map[graph.NodeIndex]ChordInfo) map[graph.NodeIndex]bool {
	resolved := map[graph.NodeIndex]bool{}
	for _, isl := range islandsInOrder {
		starts := make([]graph.NodeIndex, 0, 2)
		for _, c := range g.Chords(isl) {
			if g.InOne(c, graph.EdgeVoice) == nil {
				starts = append(starts, c)
			}
		}
		if len(starts) < 2 {
			continue
		}

		strands := make([]strand, 0, len(starts))
		for _, start := range starts {
			chain := []graph.NodeIndex{start}
			cur := start
			for {
				e := g.OutOne(cur, graph.EdgeVoice)
				if e == nil {
					break
				}
				cur = e.To
				chain = append(chain, cur)
			}
			sum := 0.0
			for _, c := range chain {
				info := chords[c]
				sum += chordAverage(info.HighestPos, info.LowestPos)
			}
			strands = append(strands, strand{chords: chain, average: sum / float64(len(chain))})
		}

		sort.SliceStable(strands, func(i, j int) bool { return strands[i].average > strands[j].average })

		for id, s := range strands {
			dir := concept.StemUp
			if id%2 == 1 {
				dir = concept.StemDown
			}
			for _, c := range s.chords {
				info := chords[c]
				info.StrandID = id
				info.StemDirection = dir
				chords[c] = info
				resolved[c] = true
			}
		}
	}
	return resolved
}
