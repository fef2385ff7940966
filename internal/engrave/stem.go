package engrave

import (
	"fmt"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/housestyle"
)

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// StemHeight implements §4.5: non-beamed flagged chords (duration ≤ 1/8)
// always get a fixed 3.5-unit stem; positions near the staff middle
// (within 2 positions of it) also get 3.5 so the stem doesn't look
// stubby against a centered notehead; everything else gets the 2.5-unit
// minimum, extended proportionally once the notehead sits more than 8
// positions from the middle (deep ledger-line territory, where a short
// stem would leave the beam/flag end floating far from the staff).
func StemHeight(pos int, flagged bool) float64 {
	if flagged {
		return 3.5
	}
	a := absInt(pos)
	switch {
	case a <= 2:
		return 3.5
	case a > 8:
		return 2.5 + float64(a-8)*0.1
	default:
		return 2.5
	}
}

// positionUnit converts a staff position (integer diatonic steps from the
// middle line) to an engraving-space y-coordinate: two positions per
// house-style space, matching the Ledger Line Engraver's "every 2
// staff-positions" convention.
func positionUnit(pos int, house *housestyle.HouseStyle) float64 {
	return float64(pos) * house.Get(housestyle.SpaceHeight) / 2
}

// StemEndpoints returns the near (notehead) and far (flag/beam) y
// coordinates of a stem.
func StemEndpoints(pos int, dir concept.StemDirection, height float64, house *housestyle.HouseStyle) (near, far float64) {
	near = positionUnit(pos, house)
	far = near + height*float64(dir.Sign())
	return
}

// flagGlyphNames indexes by FlagsGivenDuration(r)-1, then by stem
// direction, into the SMuFL internal-idiom flag-glyph name this module
// uses in place of actual codepoints (the renderer resolves the name).
var flagGlyphNames = [][2]string{
	{"flag8thUp", "flag8thDown"},
	{"flag16thUp", "flag16thDown"},
	{"flag32ndUp", "flag32ndDown"},
	{"flag64thUp", "flag64thDown"},
	{"flag128thUp", "flag128thDown"},
	{"flag256thUp", "flag256thDown"},
}

// FlagGlyph chooses the flag variant for a non-beamed chord of duration r
// (§4.5); returns "" when the duration needs no flag (r > 1/8).
func FlagGlyph(r concept.Duration, dir concept.StemDirection) string {
	n := concept.FlagsGivenDuration(r)
	if n <= 0 {
		return ""
	}
	idx := n - 1
	if idx >= len(flagGlyphNames) {
		return fmt.Sprintf("flagLevel%dUp", n) // degrade gracefully past the table
	}
	if dir == concept.StemUp {
		return flagGlyphNames[idx][0]
	}
	return flagGlyphNames[idx][1]
}
