package engrave

import (
	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/housestyle"
	"github.com/schollz/engrave/internal/stamp"
)

// restGlyphs names one glyph per RestIndexGivenDuration bucket (longa,
// 4/1, down to 1/1024), matching restIndexOrder's ordering in package concept.
var restGlyphs = []string{
	"restLonga", "restDoubleWhole", "restWhole", "restHalf", "restQuarter",
	"rest8th", "rest16th", "rest32nd", "rest64th", "rest128th", "rest256th", "rest512th", "rest1024th",
}

// RestGlyph looks up the rest glyph for a duration, degrading to a
// quarter-rest placeholder (§7 GlyphMissing policy) if the duration
// isn't one of the table's exact entries.
func RestGlyph(r concept.Duration) string {
	idx := concept.RestIndexGivenDuration(r)
	if idx < 0 || idx >= len(restGlyphs) {
		return "restQuarter" // unreachable for well-formed durations; harmless placeholder
	}
	return restGlyphs[idx]
}

// RestVerticalPosition implements §4.8's placement rule: whole/half
// rests sit relative to the house-style MeasureRestVerticalPosition line
// (whole rests offset one position higher, hanging from the line rather
// than sitting on it); other rests are centered on the staff middle, then
// offset by voice-strand parity to clear other voices (§4.8's "even
// strands above, odd below").
func RestVerticalPosition(r concept.Duration, strandID int, house *housestyle.HouseStyle) int {
	base := int(house.Get(housestyle.MeasureRestVerticalPosition))
	whole := concept.NewDuration(1, 1)
	half := concept.NewDuration(1, 2)
	var pos int
	switch {
	case r.Cmp(whole) == 0:
		pos = base*2 + 1
	case r.Cmp(half) == 0:
		pos = base * 2
	default:
		pos = 0
	}
	if strandID <= 0 || strandID%2 == 0 {
		return pos + 2
	}
	return pos - 2
}

func restGraphic(glyph string, pos int, house *housestyle.HouseStyle) *stamp.Graphic {
	y := positionUnit(pos, house)
	return &stamp.Graphic{
		Path:      stamp.PathRef{Glyph: glyph, RawBounds: stamp.Bounds{Right: house.Get(housestyle.NoteheadWidth), Top: house.Get(housestyle.SpaceHeight)}},
		Transform: stamp.Translate(0, y),
	}
}
