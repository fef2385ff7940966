package engrave

import (
	"sort"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/housestyle"
	"github.com/schollz/engrave/internal/stamp"
)

// AssignDotSlots implements §4.9: each staff position needing a dot gets
// the nearest unused space (odd staff position) on the stem-direction-
// preferred side, falling back to whichever unused space is closest
// overall once that side is exhausted.
func AssignDotSlots(positions []int, dir concept.StemDirection) []int {
	used := map[int]bool{}
	out := make([]int, len(positions))
	for i, pos := range positions {
		slot := nearestUnusedDotSlot(pos, dir, used)
		used[slot] = true
		out[i] = slot
	}
	return out
}

func nearestUnusedDotSlot(pos int, dir concept.StemDirection, used map[int]bool) int {
	preferAbove := dir == concept.StemUp
	type cand struct {
		slot      int
		dist      int
		preferred bool
	}
	var cs []cand
	const span = 41
	for o := pos - span; o <= pos+span; o++ {
		if ((o % 2) + 2) % 2 == 0 { // keep only odd (space) positions
			continue
		}
		pref := o == pos || (preferAbove && o > pos) || (!preferAbove && o < pos)
		cs = append(cs, cand{slot: o, dist: absInt(o - pos), preferred: pref})
	}
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].preferred != cs[j].preferred {
			return cs[i].preferred
		}
		return cs[i].dist < cs[j].dist
	})
	for _, c := range cs {
		if !used[c.slot] {
			return c.slot
		}
	}
	return pos
}

// DotGraphics places dotCount rhythmic dots for one note/chord, starting
// at chordRight + DotNoteheadDistance and stepping by DotSpacing (§4.9).
func DotGraphics(chordRight float64, slot int, dotCount int, house *housestyle.HouseStyle) []*stamp.Graphic {
	out := make([]*stamp.Graphic, 0, dotCount)
	y := positionUnit(slot, house)
	base := chordRight + house.Get(housestyle.DotNoteheadDistance)
	size := house.Get(housestyle.RhythmicDotSize)
	for j := 0; j < dotCount; j++ {
		x := base + float64(j)*house.Get(housestyle.DotSpacing)
		out = append(out, &stamp.Graphic{
			Path:      stamp.PathRef{Glyph: "augmentationDot", RawBounds: stamp.Bounds{Right: size, Top: size}},
			Transform: stamp.Translate(x, y-size/2),
		})
	}
	return out
}
