package engrave

import (
	"sort"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/graph"
	"github.com/schollz/engrave/internal/housestyle"
	"github.com/schollz/engrave/internal/stamp"
)

// NoteheadInfo is one note's input to the notehead engraver (§4.3's
// per-note NoteheadInformation).
type NoteheadInfo struct {
	Note          graph.NodeIndex
	StaffPosition int
	Pitch         concept.Pitch
	Duration      concept.Duration
	Dots          int
	Emit          bool // whether the accidental decision emits for this note
}

// ClusterAndAssignColumns sorts notes by staff position and assigns each
// a notehead column (§4.3 "Clustering"/"Column assignment"). It returns
// order, the original note indices sorted by staff position, and columns,
// each note's column indexed by its original index.
func ClusterAndAssignColumns(notes []NoteheadInfo, dir concept.StemDirection) (order []int, columns []int) {
	order = make([]int, len(notes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return notes[order[a]].StaffPosition < notes[order[b]].StaffPosition
	})

	columns = make([]int, len(notes))
	backCol := 1
	if dir == concept.StemDown {
		backCol = -1
	}

	i := 0
	for i < len(order) {
		j := i
		for j+1 < len(order) && absInt(notes[order[j+1]].StaffPosition-notes[order[j]].StaffPosition) <= 1 {
			j++
		}
		clusterSize := j - i + 1
		offset := 0
		if dir == concept.StemDown && clusterSize%2 == 0 {
			offset = 1
		}
		for k := 0; k < clusterSize; k++ {
			idx := order[i+k]
			if (k+offset)%2 == 0 {
				columns[idx] = 0
			} else {
				columns[idx] = backCol
			}
		}
		i = j + 1
	}
	return order, columns
}

// NoteheadGlyph chooses the notehead glyph for a (possibly dotted)
// duration by first recovering the undotted base value (§4.3).
func NoteheadGlyph(duration concept.Duration, dots int) string {
	return concept.NoteheadGlyph(concept.UndottedDuration(duration, dots))
}

// CanFuse implements §4.3's chord-pair fusion test: opposing stems,
// no adjacent (within 1 staff position) notes between the two chords,
// and either no overlap or exactly one shared identical note (same
// position, pitch, accidental, dots, both durations under a half note).
func CanFuse(upper, lower []NoteheadInfo, upperDir, lowerDir concept.StemDirection) bool {
	if upperDir != concept.StemUp || lowerDir != concept.StemDown {
		return false
	}
	half := concept.NewDuration(1, 2)
	shared := 0
	for _, u := range upper {
		for _, l := range lower {
			diff := absInt(u.StaffPosition - l.StaffPosition)
			if diff == 0 {
				if u.Pitch == l.Pitch && u.Dots == l.Dots && u.Duration.Less(half) && l.Duration.Less(half) {
					shared++
					continue
				}
				return false // same position, not identical: a real collision
			}
			if diff == 1 {
				return false // adjacent notes block fusion
			}
		}
	}
	if shared > 1 {
		return false
	}
	return true
}

// noteheadColumnWidth is the horizontal spacing between a primary and a
// backnote column, taken from house style.
func noteheadColumnWidth(house *housestyle.HouseStyle) float64 {
	return house.Get(housestyle.NoteheadWidth)
}

// NoteheadGraphic builds the positioned notehead graphic for one note at
// a given column.
func NoteheadGraphic(note NoteheadInfo, column int, house *housestyle.HouseStyle) *stamp.Graphic {
	glyph := NoteheadGlyph(note.Duration, note.Dots)
	w := noteheadColumnWidth(house)
	x := float64(column) * w
	y := positionUnit(note.StaffPosition, house)
	bounds := stamp.Bounds{Left: x, Right: x + w, Bottom: y - house.Get(housestyle.SpaceHeight)/2, Top: y + house.Get(housestyle.SpaceHeight)/2}
	return &stamp.Graphic{
		Path:      stamp.PathRef{Glyph: glyph, RawBounds: stamp.Bounds{Right: w, Top: house.Get(housestyle.SpaceHeight)}},
		Transform: stamp.Translate(bounds.Left, bounds.Bottom),
		Context:   int(note.Note),
	}
}
