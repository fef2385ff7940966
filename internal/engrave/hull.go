// Package engrave implements the per-island engravers of §4.3 through
// §4.12: the algorithms that turn one island's tokens, their PartState
// substate, and house style into a stamp.Stamp. Each engraver is a
// function, not a type with subtype dispatch, matching §9's "one
// function per token-kind variant" guidance.
package engrave

import (
	"math"

	"github.com/schollz/engrave/internal/stamp"
)

// Hull is the §9 "segmented hull" collision primitive at its correct
// default quality level: a set of already-placed bounds, queried by
// vertical band to find the nearest horizontal edge new content must
// clear. This is coarser than a true per-segment convex hull but correct
// for the piecewise-rectangular noteheads/accidentals/dots this package
// accumulates; full-path quality is reserved for densely packed
// accidental columns the accidental stacker does not yet need.
type Hull struct {
	entries []stamp.Bounds
}

func NewHull() *Hull { return &Hull{} }

// Add records a placed bound in the hull.
func (h *Hull) Add(b stamp.Bounds) {
	if b.IsEmpty() {
		return
	}
	h.entries = append(h.entries, b)
}

// RightmostAt returns the rightmost edge among entries whose vertical
// extent overlaps [bottom, top], or -Inf if none overlap.
func (h *Hull) RightmostAt(bottom, top float64) float64 {
	best := math.Inf(-1)
	for _, e := range h.entries {
		if e.Top < bottom || e.Bottom > top {
			continue
		}
		if e.Right > best {
			best = e.Right
		}
	}
	return best
}

// LeftmostAt returns the leftmost edge among entries whose vertical
// extent overlaps [bottom, top], or +Inf if none overlap.
func (h *Hull) LeftmostAt(bottom, top float64) float64 {
	best := math.Inf(1)
	for _, e := range h.entries {
		if e.Top < bottom || e.Bottom > top {
			continue
		}
		if e.Left < best {
			best = e.Left
		}
	}
	return best
}

// AbutRight returns the x-shift that moves candidate rightward just far
// enough that its left edge abuts the hull's rightmost overlapping edge
// plus gap; zero if nothing overlaps.
func (h *Hull) AbutRight(candidate stamp.Bounds, gap float64) float64 {
	edge := h.RightmostAt(candidate.Bottom, candidate.Top)
	if math.IsInf(edge, -1) {
		return 0
	}
	want := edge + gap
	if want <= candidate.Left {
		return 0
	}
	return want - candidate.Left
}

// AbutLeft returns the (non-positive) x-shift that moves candidate
// leftward just far enough that its right edge abuts the hull's
// leftmost overlapping edge minus gap; zero if nothing overlaps.
func (h *Hull) AbutLeft(candidate stamp.Bounds, gap float64) float64 {
	edge := h.LeftmostAt(candidate.Bottom, candidate.Top)
	if math.IsInf(edge, 1) {
		return 0
	}
	want := edge - gap
	if want >= candidate.Right {
		return 0
	}
	return want - candidate.Right
}
