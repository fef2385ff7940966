package state

import "github.com/schollz/engrave/internal/concept"

// abs is a small local helper; math.Abs works on float64 only and these
// staff positions are small integers.
func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// defaultStemDirection is §4.2's single-voice rule: the note furthest from
// the staff's middle line decides the direction, stems pointing back
// toward the middle.
func defaultStemDirection(highest, lowest int) concept.StemDirection {
	if abs(highest) >= abs(lowest) {
		if highest <= 0 {
			return concept.StemUp
		}
		return concept.StemDown
	}
	if lowest <= 0 {
		return concept.StemUp
	}
	return concept.StemDown
}

// stemContext carries the three context overrides §4.2 lists ahead of the
// plain staff-position rule, each consulted in order.
type stemContext struct {
	ManualOverride    *concept.StemDirection // explicit attribute on the chord, if any
	BeamContinuation  bool                   // this chord shares a beam with its partwise predecessor
	PredecessorStem   concept.StemDirection  // the predecessor's resolved direction
	NearMiddleInherit bool                   // |avg(this)| <= 1 and |avg(predecessor)| <= 2
}

// resolveStemDirection applies the override cascade, falling through to
// the plain position rule when none of the context overrides fire.
func resolveStemDirection(highest, lowest int, ctx stemContext) concept.StemDirection {
	if ctx.ManualOverride != nil {
		return *ctx.ManualOverride
	}
	if ctx.BeamContinuation {
		return ctx.PredecessorStem
	}
	if ctx.NearMiddleInherit {
		return ctx.PredecessorStem
	}
	return defaultStemDirection(highest, lowest)
}

func chordAverage(highest, lowest int) float64 {
	return float64(highest+lowest) / 2
}

// parseStemDirection reads the "up"/"down" values a chord's manual
// StemDirection attribute carries (§4.2 override (a); the original
// engraver reads the same override off `mica::StemDirection`).
func parseStemDirection(s string) (concept.StemDirection, bool) {
	switch s {
	case "up":
		return concept.StemUp, true
	case "down":
		return concept.StemDown, true
	}
	return 0, false
}
