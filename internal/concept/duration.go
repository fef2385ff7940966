package concept

import "math/big"

// Duration is a rational note value where 1 is a whole note, matching the
// graph's `NoteValue='1/4'`-style attributes (§6.1) and the invariant
// RhythmicDurationOfChord(C) = IntrinsicDuration(C) / ∏ TupletScalars(C).
type Duration struct{ *big.Rat }

func NewDuration(num, den int64) Duration { return Duration{big.NewRat(num, den)} }

func (d Duration) Mul(o Duration) Duration {
	r := new(big.Rat).Mul(d.Rat, o.Rat)
	return Duration{r}
}

func (d Duration) Quo(o Duration) Duration {
	r := new(big.Rat).Quo(d.Rat, o.Rat)
	return Duration{r}
}

func (d Duration) Less(o Duration) bool { return d.Rat.Cmp(o.Rat) < 0 }
func (d Duration) Cmp(o Duration) int   { return d.Rat.Cmp(o.Rat) }

// UndottedDuration recovers the base rhythmic value r such that the dotted
// value equals r * (2 - 2^-dots), per §4.9/§4.3's dot bookkeeping.
func UndottedDuration(dotted Duration, dots int) Duration {
	factor := big.NewRat(2, 1)
	half := big.NewRat(1, 2)
	pow := big.NewRat(1, 1)
	for i := 0; i < dots; i++ {
		pow.Mul(pow, half)
	}
	factor.Sub(factor, pow)
	r := new(big.Rat).Quo(dotted.Rat, factor)
	return Duration{r}
}

// noteheadThresholds implements §4.3's glyph-selection table in ascending
// order: the first threshold the duration is strictly less than wins.
var noteheadThresholds = []struct {
	lt    *big.Rat
	glyph string
}{
	{big.NewRat(1, 2), "notehead-black"},
	{big.NewRat(1, 1), "notehead-half"},
	{big.NewRat(2, 1), "notehead-whole"},
	{big.NewRat(4, 1), "notehead-double-whole"},
	{big.NewRat(8, 1), "notehead-longa"},
	{big.NewRat(32, 1), "notehead-maxima"},
}

// NoteheadGlyph chooses a notehead glyph by undotted duration (§4.3).
func NoteheadGlyph(r Duration) string {
	for _, t := range noteheadThresholds {
		if r.Cmp(Duration{t.lt}) < 0 {
			return t.glyph
		}
	}
	return "notehead-maxima"
}

// restIndexOrder is the duration-descending table §4.8 indexes
// RestIndexGivenDuration against: whole-note multiples down to 1/1024.
var restIndexOrder = []*big.Rat{
	big.NewRat(4, 1), big.NewRat(2, 1), big.NewRat(1, 1),
	big.NewRat(1, 2), big.NewRat(1, 4), big.NewRat(1, 8),
	big.NewRat(1, 16), big.NewRat(1, 32), big.NewRat(1, 64),
	big.NewRat(1, 128), big.NewRat(1, 256), big.NewRat(1, 512),
	big.NewRat(1, 1024),
}

// RestIndexGivenDuration maps a duration to its consecutive rest-glyph
// index (§4.8), or -1 if the duration isn't one of the table's entries.
func RestIndexGivenDuration(r Duration) int {
	for i, v := range restIndexOrder {
		if r.Cmp(Duration{v}) == 0 {
			return i
		}
	}
	return -1
}

// FlagsGivenDuration returns the 1-based flag count for a given
// (undotted) duration: a quaver has 1 flag, a semiquaver 2, and so on;
// durations ≥ 1/4 have 0 flags. §4.5 keys the flag glyph family on
// FlagsGivenDuration(r) − 1.
func FlagsGivenDuration(r Duration) int {
	eighth := big.NewRat(1, 8)
	if r.Cmp(Duration{eighth}) > 0 {
		return 0
	}
	flags := 1
	cur := new(big.Rat).Set(eighth)
	half := big.NewRat(1, 2)
	for cur.Cmp(r.Rat) > 0 {
		cur.Mul(cur, half)
		flags++
	}
	return flags
}
