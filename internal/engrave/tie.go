package engrave

import "github.com/schollz/engrave/internal/concept"

// SystemIndexOf returns which system (0-based) an instant belongs to,
// given the sorted list of instant indices where each system begins
// (boundaries[0] must be 0).
func SystemIndexOf(instant int, boundaries []int) int {
	idx := 0
	for i, b := range boundaries {
		if instant >= b {
			idx = i
		} else {
			break
		}
	}
	return idx
}

// TieResolution is §4.10's engraving contract for one tie: the curve
// direction (from InstantState's TieDirections advice) and whether
// either end becomes a partial tie because the system wrap falls between
// the two notes.
type TieResolution struct {
	Direction       concept.Placement
	PartialOutgoing bool
	PartialIncoming bool
}

// ResolveTie decides partial-tie status from the two notes' instant
// indices and the chosen system boundaries; the direction itself comes
// from the InstantState tie-direction table computed in package state.
func ResolveTie(fromInstant, toInstant int, boundaries []int, direction concept.Placement) TieResolution {
	crosses := SystemIndexOf(fromInstant, boundaries) != SystemIndexOf(toInstant, boundaries)
	return TieResolution{Direction: direction, PartialOutgoing: crosses, PartialIncoming: crosses}
}
