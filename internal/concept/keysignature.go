package concept

// KeySignature is the concept token for a key signature: a signed sharp
// count (positive = sharps, negative = flats, 0 = no accidentals).
type KeySignature struct {
	Sharps int
}

// sharpOrder and flatOrder are the standard circle-of-fifths accidental
// orders, named the way internal/modulation named its Scales table (a
// map of small named lookup tables) before this package absorbed and
// repurposed it for key-signature bookkeeping.
var sharpOrder = []byte{'F', 'C', 'G', 'D', 'A', 'E', 'B'}
var flatOrder = []byte{'B', 'E', 'A', 'D', 'G', 'C', 'F'}

// AlteredLetters returns the set of letters this key signature alters, and
// the accidental each is altered to. A key of 0 accidentals (C major / A
// minor) returns an empty map — see §8 boundary case "a key signature of 0
// accidentals resets all altered entries to natural".
func (k KeySignature) AlteredLetters() map[byte]Accidental {
	out := map[byte]Accidental{}
	if k.Sharps > 0 {
		n := k.Sharps
		if n > 7 {
			n = 7
		}
		for _, l := range sharpOrder[:n] {
			out[l] = AccidentalSharp
		}
	} else if k.Sharps < 0 {
		n := -k.Sharps
		if n > 7 {
			n = 7
		}
		for _, l := range flatOrder[:n] {
			out[l] = AccidentalFlat
		}
	}
	return out
}

// OrderedAlteredLetters returns this key signature's altered letters in
// circle-of-fifths engraving order (left to right as a key signature is
// drawn), rather than AlteredLetters' unordered map.
func (k KeySignature) OrderedAlteredLetters() []byte {
	n := k.Sharps
	if n > 7 {
		n = 7
	} else if n < -7 {
		n = -7
	}
	if n > 0 {
		return append([]byte(nil), sharpOrder[:n]...)
	}
	if n < 0 {
		return append([]byte(nil), flatOrder[:-n]...)
	}
	return nil
}

// ImpliedAccidental reports the accidental the key signature implies for a
// given letter (AccidentalNone if the letter is unaltered by this key).
func (k KeySignature) ImpliedAccidental(letter byte) Accidental {
	if a, ok := k.AlteredLetters()[letter]; ok {
		return a
	}
	return AccidentalNone
}
