package engrave

import "github.com/schollz/engrave/internal/concept"

// StemRecord is one chord's contribution to a beam group (§4.6): its
// stem direction, how many beam levels it needs beyond the primary, and
// whether it starts a fresh sub-group (a new BeginsGroup resets sharing,
// e.g. after a rest breaks the run of extra levels).
type StemRecord struct {
	Direction   concept.StemDirection
	ExtraLevels int
	BeginsGroup bool
}

// BeamLevels is the beam-sharing algorithm's per-stem output: the signed
// count of extra beam levels resolved above and below the primary beam.
type BeamLevels struct {
	Above int
	Below int
}

// ResolveBeamLevels runs §4.6's beam-sharing algorithm over a beam
// group's stems in partwise order.
func ResolveBeamLevels(stems []StemRecord) []BeamLevels {
	out := make([]BeamLevels, len(stems))
	for i, s := range stems {
		ownAbove := s.Direction == concept.StemUp
		if i == 0 || s.BeginsGroup {
			if ownAbove {
				out[i] = BeamLevels{Above: s.ExtraLevels}
			} else {
				out[i] = BeamLevels{Below: s.ExtraLevels}
			}
			continue
		}
		prior := out[i-1]
		priorOwnSide := prior.Above
		if !ownAbove {
			priorOwnSide = prior.Below
		}
		if s.ExtraLevels <= priorOwnSide {
			if ownAbove {
				out[i] = BeamLevels{Above: s.ExtraLevels}
			} else {
				out[i] = BeamLevels{Below: s.ExtraLevels}
			}
			continue
		}
		remainder := s.ExtraLevels - priorOwnSide
		if ownAbove {
			out[i] = BeamLevels{Above: priorOwnSide, Below: remainder}
		} else {
			out[i] = BeamLevels{Below: priorOwnSide, Above: remainder}
		}
	}
	return out
}

// includesLevel reports whether a stem's resolved levels include signed
// level L (L > 0 above the primary, L < 0 below, L == 0 is the primary
// beam and is always present within a group).
func includesLevel(bl BeamLevels, level int) bool {
	switch {
	case level == 0:
		return true
	case level > 0:
		return bl.Above >= level
	default:
		return bl.Below >= -level
	}
}

// BeamExistsBetween reports whether level L is drawn between adjacent
// stems i and i+1: both stems must include it.
func BeamExistsBetween(levels []BeamLevels, i int, level int) bool {
	if i < 0 || i+1 >= len(levels) {
		return false
	}
	return includesLevel(levels[i], level) && includesLevel(levels[i+1], level)
}

// Flag is a fallback flag drawn on one side of one stem at one level,
// when that level isn't shared with the next stem (§4.6).
type Flag struct {
	StemIndex int
	Level     int
	Left      bool // left flags are preferred over right flags
}

// ResolveFlags computes the left/right flag fallback for every
// non-primary level a stem needs but doesn't share with its neighbor.
func ResolveFlags(levels []BeamLevels) []Flag {
	var flags []Flag
	for i, bl := range levels {
		for level := 1; level <= bl.Above; level++ {
			flags = append(flags, flagFor(levels, i, level)...)
		}
		for level := 1; level <= bl.Below; level++ {
			flags = append(flags, flagFor(levels, i, -level)...)
		}
	}
	return flags
}

func flagFor(levels []BeamLevels, i, level int) []Flag {
	if BeamExistsBetween(levels, i, level) {
		return nil
	}
	prevHas := i > 0 && includesLevel(levels[i-1], level)
	return []Flag{{StemIndex: i, Level: level, Left: !prevHas}}
}
