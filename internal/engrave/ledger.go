package engrave

import (
	"sort"

	"github.com/schollz/engrave/internal/housestyle"
	"github.com/schollz/engrave/internal/stamp"
)

// LedgerRecord accumulates the horizontal extent of one ledger line
// (§4.7): the line position (every 2 staff positions) and the leftmost/
// rightmost extreme among all notes sharing it.
type LedgerRecord struct {
	LinePosition int
	Left, Right  float64
}

// noteBound is the minimal input the ledger accumulator needs per note
// outside the staff.
type noteBound struct {
	StaffPosition        int
	Left, Right          float64 // notehead bounds, before ledger extension
	ColumnHalfWidth      float64
}

// AccumulateLedgerLines implements §4.7: for each note whose staff
// position lies more than 2 lines (4 positions... no, the spec
// expresses it directly as |staff_position/2| > 2, i.e. more than 4
// positions) from the middle, accumulate one record per ledger line
// position, growing Left/Right to cover every note on that line.
func AccumulateLedgerLines(notes []noteBound, house *housestyle.HouseStyle) []LedgerRecord {
	ext := house.Get(housestyle.LedgerLineExtension)
	byLine := map[int]*LedgerRecord{}

	for _, n := range notes {
		a := absInt(n.StaffPosition)
		if a <= 4 { // |staff_position/2| <= 2: inside or on the staff proper
			continue
		}
		sign := 1
		if n.StaffPosition < 0 {
			sign = -1
		}
		// Ledger lines run at every staff-line (even) position beyond the
		// outermost staff line (±4), out to and including this note's own
		// line position.
		for pos := 6; pos <= a; pos += 2 {
			linePos := pos * sign
			left := n.Left - n.ColumnHalfWidth - ext
			right := n.Right + n.ColumnHalfWidth + ext
			if r := byLine[linePos]; r == nil {
				byLine[linePos] = &LedgerRecord{LinePosition: linePos, Left: left, Right: right}
			} else {
				if left < r.Left {
					r.Left = left
				}
				if right > r.Right {
					r.Right = right
				}
			}
		}
	}

	out := make([]LedgerRecord, 0, len(byLine))
	for _, r := range byLine {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LinePosition < out[j].LinePosition })
	return out
}

func ledgerGraphic(r LedgerRecord, house *housestyle.HouseStyle) *stamp.Graphic {
	y := positionUnit(r.LinePosition, house)
	thickness := house.Get(housestyle.BarlineThickness) * 1.5
	return &stamp.Graphic{
		Path:        stamp.PathRef{RawBounds: stamp.Bounds{Left: r.Left, Right: r.Right, Bottom: -thickness / 2, Top: thickness / 2}},
		StrokeWidth: thickness,
		Transform:   stamp.Translate(0, y),
	}
}
