package engrave

import (
	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/graph"
	"github.com/schollz/engrave/internal/housestyle"
	"github.com/schollz/engrave/internal/stamp"
)

// AccidentalEntry is one accidental the stacker must place (§4.4's
// input: accidental concept, staff position, note).
type AccidentalEntry struct {
	Note          graph.NodeIndex
	Accidental    concept.Accidental
	StaffPosition int
}

// InterleaveOutsideIn returns, for n items, the default placement order
// of §4.4: index 0, n-1, 1, n-2, ... (outermost pair first, working in).
func InterleaveOutsideIn(n int) []int {
	out := make([]int, 0, n)
	lo, hi := 0, n-1
	for lo <= hi {
		out = append(out, lo)
		if lo != hi {
			out = append(out, hi)
		}
		lo++
		hi--
	}
	return out
}

var accidentalGlyphs = map[concept.Accidental]string{
	concept.AccidentalNatural:     "accidentalNatural",
	concept.AccidentalSharp:       "accidentalSharp",
	concept.AccidentalFlat:        "accidentalFlat",
	concept.AccidentalDoubleSharp: "accidentalDoubleSharp",
	concept.AccidentalDoubleFlat:  "accidentalDoubleFlat",
}

// PlacedAccidental is a stacked accidental's final position (§4.4's
// output: a placement vector per accidental).
type PlacedAccidental struct {
	Entry  AccidentalEntry
	Bounds stamp.Bounds
}

// StackAccidentals places accidentals outside-in, abutting each new
// glyph's right edge against the accumulating hull's left edge (the
// accidental block grows leftward, away from the notehead column at
// x=0), with an extra house-style gap (§4.4). The hull is seeded with
// the chord's already-placed notehead bounds, matching the original
// engraver's `AccumulatingBounds = Noteheads.GetGraphicBounds()` — the
// first-stacked accidental must clear the noteheads, not just land
// flush against an empty hull.
func StackAccidentals(entries []AccidentalEntry, house *housestyle.HouseStyle, noteheadBounds []stamp.Bounds) ([]PlacedAccidental, *Hull) {
	hull := NewHull()
	for _, b := range noteheadBounds {
		hull.Add(b)
	}
	placed := make([]PlacedAccidental, len(entries))
	gap := house.Get(housestyle.AccidentalGap)
	width := house.Get(housestyle.NoteheadWidth) * 0.75
	half := house.Get(housestyle.SpaceHeight) / 2

	for _, idx := range InterleaveOutsideIn(len(entries)) {
		e := entries[idx]
		y := positionUnit(e.StaffPosition, house)
		candidate := stamp.Bounds{Left: -width, Right: 0, Bottom: y - half, Top: y + half}
		shift := hull.AbutLeft(candidate, gap)
		candidate = candidate.Shift(shift, 0)
		hull.Add(candidate)
		placed[idx] = PlacedAccidental{Entry: e, Bounds: candidate}
	}
	return placed, hull
}

func accidentalGraphic(p PlacedAccidental) *stamp.Graphic {
	glyph := accidentalGlyphs[p.Entry.Accidental]
	return &stamp.Graphic{
		Path:      stamp.PathRef{Glyph: glyph, RawBounds: stamp.Bounds{Right: p.Bounds.Width(), Top: p.Bounds.Height()}},
		Transform: stamp.Translate(p.Bounds.Left, p.Bounds.Bottom),
	}
}
