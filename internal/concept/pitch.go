package concept

import (
	"fmt"
)

// Accidental is the concept vocabulary entry for a pitch alteration.
type Accidental int

const (
	AccidentalNone Accidental = iota
	AccidentalNatural
	AccidentalSharp
	AccidentalFlat
	AccidentalDoubleSharp
	AccidentalDoubleFlat
)

var accidentalNames = map[Accidental]string{
	AccidentalNone:        "",
	AccidentalNatural:     "natural",
	AccidentalSharp:       "sharp",
	AccidentalFlat:        "flat",
	AccidentalDoubleSharp: "double-sharp",
	AccidentalDoubleFlat:  "double-flat",
}

func (a Accidental) String() string { return accidentalNames[a] }

// accidentalSemitones maps an accidental to its semitone offset from the
// natural letter pitch.
var accidentalSemitones = map[Accidental]int{
	AccidentalNone:        0,
	AccidentalNatural:     0,
	AccidentalSharp:       1,
	AccidentalFlat:        -1,
	AccidentalDoubleSharp: 2,
	AccidentalDoubleFlat:  -2,
}

// letterSemitone is the semitone of each natural letter above C, within an
// octave (0-11).
var letterSemitone = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// letterStep is the diatonic step index of each letter (0 = C .. 6 = B).
var letterStep = map[byte]int{
	'C': 0, 'D': 1, 'E': 2, 'F': 3, 'G': 4, 'A': 5, 'B': 6,
}

var stepLetter = [7]byte{'C', 'D', 'E', 'F', 'G', 'A', 'B'}

// DiatonicPitch is a letter name plus octave (scientific pitch notation,
// octave 4 containing middle C), independent of accidental. This is the
// map(Pitch, DiatonicPitch) target from the spec's concept algebra.
type DiatonicPitch struct {
	Letter byte // 'A'..'G'
	Octave int
}

// Step returns the absolute diatonic step count from C0 (used for staff
// position and interval arithmetic).
func (d DiatonicPitch) Step() int {
	return d.Octave*7 + letterStep[d.Letter]
}

func (d DiatonicPitch) String() string {
	return fmt.Sprintf("%c%d", d.Letter, d.Octave)
}

// Pitch is a DiatonicPitch plus an Accidental: the full sounding pitch.
type Pitch struct {
	Diatonic   DiatonicPitch
	Accidental Accidental
}

func (p Pitch) String() string {
	acc := ""
	switch p.Accidental {
	case AccidentalSharp:
		acc = "#"
	case AccidentalFlat:
		acc = "b"
	case AccidentalDoubleSharp:
		acc = "##"
	case AccidentalDoubleFlat:
		acc = "bb"
	case AccidentalNatural:
		acc = "n"
	}
	return fmt.Sprintf("%c%s%d", p.Diatonic.Letter, acc, p.Diatonic.Octave)
}

// MIDI is map(Pitch, MIDINumber): MIDI note 60 is C4.
func (p Pitch) MIDI() int {
	return (p.Diatonic.Octave+1)*12 + letterSemitone[p.Diatonic.Letter] + accidentalSemitones[p.Accidental]
}

// ParsePitch parses scientific-pitch-notation strings such as "C4", "C#4",
// "Cb3", "C##5", "Cbb2" into a Pitch. This is the inverse used by the
// shorthand importer (§6.2) and by graph XML note attributes (§6.1).
func ParsePitch(s string) (Pitch, error) {
	if len(s) < 2 {
		return Pitch{}, fmt.Errorf("concept: invalid pitch %q", s)
	}
	letter := s[0] &^ 0x20 // upper-case
	if _, ok := letterStep[letter]; !ok {
		return Pitch{}, fmt.Errorf("concept: invalid pitch letter in %q", s)
	}
	rest := s[1:]
	acc := AccidentalNone
	switch {
	case len(rest) >= 2 && rest[:2] == "##":
		acc, rest = AccidentalDoubleSharp, rest[2:]
	case len(rest) >= 2 && rest[:2] == "bb":
		acc, rest = AccidentalDoubleFlat, rest[2:]
	case len(rest) >= 1 && rest[0] == '#':
		acc, rest = AccidentalSharp, rest[1:]
	case len(rest) >= 1 && rest[0] == 'b':
		acc, rest = AccidentalFlat, rest[1:]
	case len(rest) >= 1 && rest[0] == 'n':
		acc, rest = AccidentalNatural, rest[1:]
	}
	var octave int
	if _, err := fmt.Sscanf(rest, "%d", &octave); err != nil {
		return Pitch{}, fmt.Errorf("concept: invalid pitch octave in %q: %w", s, err)
	}
	return Pitch{Diatonic: DiatonicPitch{Letter: letter, Octave: octave}, Accidental: acc}, nil
}

// MIDIToDiatonicPitch returns the map(MIDINumber, DiatonicPitch) using only
// natural letters (no accidental is implied), matching internal/music's
// note-name convention (sharp notes map to the letter below).
func MIDIToDiatonicPitch(midi int) (DiatonicPitch, Accidental) {
	octave := midi/12 - 1
	semitone := midi % 12
	if semitone < 0 {
		semitone += 12
		octave--
	}
	naturals := []struct {
		letter byte
		semi   int
	}{{'C', 0}, {'D', 2}, {'E', 4}, {'F', 5}, {'G', 7}, {'A', 9}, {'B', 11}}
	for i, n := range naturals {
		if n.semi == semitone {
			return DiatonicPitch{Letter: n.letter, Octave: octave}, AccidentalNone
		}
		if i+1 < len(naturals) && semitone == n.semi+1 && naturals[i+1].semi != n.semi+1 {
			return DiatonicPitch{Letter: n.letter, Octave: octave}, AccidentalSharp
		}
	}
	return DiatonicPitch{Letter: 'B', Octave: octave}, AccidentalNone
}
