package typeset

import (
	"math"

	"github.com/schollz/engrave/internal/broadcast"
	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/engraveerr"
	"github.com/schollz/engrave/internal/graph"
)

// OptimizeWrap implements §4.15: partition n measures (given their
// widths) into lines minimizing total cost, where a line of measures
// [i,j) is only eligible if its summed width fits the available space
// (W0 for the first line, W for every other line), at cost
// (remaining_space)^p. The DAG is a simple forward one (edges only go
// from a lower breakpoint to a higher one), so plain DP over breakpoints
// finds the shortest path without a priority queue.
//
// Returns the chosen breakpoints, e.g. [0, b1, b2, ..., n] — consecutive
// pairs are the measure ranges of each line.
func OptimizeWrap(widths []float64, w0, w float64, p float64) ([]int, error) {
	n := len(widths)
	if n == 0 {
		return []int{0}, nil
	}

	prefix := make([]float64, n+1)
	for i, width := range widths {
		prefix[i+1] = prefix[i] + width
	}

	dist := make([]float64, n+1)
	prev := make([]int, n+1)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[0] = 0

	for i := 0; i <= n; i++ {
		if math.IsInf(dist[i], 1) {
			continue
		}
		capacity := w
		if i == 0 {
			capacity = w0
		}
		for j := i + 1; j <= n; j++ {
			sum := prefix[j] - prefix[i]
			if sum > capacity {
				break // widths are non-negative: every longer line only needs more room
			}
			cost := math.Pow(capacity-sum, p)
			if dist[i]+cost < dist[j] {
				dist[j] = dist[i] + cost
				prev[j] = i
			}
		}
	}

	if math.IsInf(dist[n], 1) {
		return nil, engraveerr.Wrap(engraveerr.UnboundedDuration, "typeset: no measure fits within the available line width")
	}

	var breakpoints []int
	for at := n; at != -1; at = prev[at] {
		breakpoints = append([]int{at}, breakpoints...)
	}
	return breakpoints, nil
}

// BroadcastSystemCompletion reports each system OptimizeWrap produced to
// an optional §4.17 broadcast.Sink: one SystemComplete call per
// consecutive breakpoint pair, carrying the system's own occupied width
// (the sum of its measures' widths — its furthest-right x, since a
// system starts at x=0) as rightEdge. This is pure telemetry run after
// OptimizeWrap has already decided the breakpoints; nothing here feeds
// back into the optimizer, so it cannot reintroduce the excluded
// "reflow during live editing" behavior. A nil sink costs one nil check
// per call via broadcast.Emit.
func BroadcastSystemCompletion(sink broadcast.Sink, widths []float64, breakpoints []int) {
	if sink == nil || len(breakpoints) < 2 {
		return
	}
	prefix := make([]float64, len(widths)+1)
	for i, w := range widths {
		prefix[i+1] = prefix[i] + w
	}
	for i := 0; i+1 < len(breakpoints); i++ {
		start, end := breakpoints[i], breakpoints[i+1]
		broadcast.Emit(sink, i, prefix[end]-prefix[start])
	}
}

// SystemBoundaries converts OptimizeWrap's measure breakpoints into the
// sorted list of instant indices where each system begins, given each
// measure's first instant index (measureStarts[m] for m in 0..n-1).
func SystemBoundaries(breakpoints []int, measureStarts []int) []int {
	out := make([]int, 0, len(breakpoints)-1)
	for _, b := range breakpoints[:len(breakpoints)-1] {
		out = append(out, measureStarts[b])
	}
	return out
}

// RepeatAtSystemStarts implements §4.14: for each system start after the
// first, deep-copy the most recently stated Clef/KeySignature token of
// each part onto that system's first island for the part, so a reader
// opening mid-system still sees the active clef/key. `partChains[p]` is
// part p's islands in partwise order; `systemOf(isl)` is the system index
// of island isl.
func RepeatAtSystemStarts(g *graph.Graph, partChains [][]graph.NodeIndex, systemOf func(graph.NodeIndex) int) {
	for _, chain := range partChains {
		var lastClef *concept.Clef
		var lastKey *concept.KeySignature
		curSystem := -1
		for _, isl := range chain {
			sys := systemOf(isl)
			if sys != curSystem {
				if curSystem != -1 {
					if lastClef != nil {
						g.AddClef(isl, *lastClef)
					}
					if lastKey != nil {
						g.AddKeySignature(isl, *lastKey)
					}
				}
				curSystem = sys
			}
			for _, tok := range g.Tokens(isl) {
				n := g.Node(tok)
				switch n.TokenKind {
				case graph.TokenClef:
					if v, ok := n.Label.Get("Clef"); ok && v.Kind == concept.KindString {
						if c, ok2 := concept.ClefByName(v.Str); ok2 {
							lastClef = &c
						}
					}
				case graph.TokenKeySignature:
					if v, ok := n.Label.Get("Sharps"); ok && v.Kind == concept.KindInt {
						k := concept.KeySignature{Sharps: v.Int}
						lastKey = &k
					}
				}
			}
		}
	}
}
