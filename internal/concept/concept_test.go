package concept

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClefStaffPosition(t *testing.T) {
	tests := []struct {
		name string
		clef Clef
		p    DiatonicPitch
		want int
	}{
		{"treble middle line is B4", ClefTreble, DiatonicPitch{'B', 4}, 0},
		{"treble bottom line is E4", ClefTreble, DiatonicPitch{'E', 4}, -4},
		{"treble top line is F5", ClefTreble, DiatonicPitch{'F', 5}, 4},
		{"bass middle line is D3", ClefBass, DiatonicPitch{'D', 3}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.clef.StaffPosition(tt.p))
			assert.Equal(t, tt.p, tt.clef.DiatonicPitchAt(tt.want))
		})
	}
}

func TestParsePitchAndMIDI(t *testing.T) {
	p, err := ParsePitch("C4")
	assert.NoError(t, err)
	assert.Equal(t, 60, p.MIDI())

	p, err = ParsePitch("C#4")
	assert.NoError(t, err)
	assert.Equal(t, 61, p.MIDI())

	p, err = ParsePitch("Bb3")
	assert.NoError(t, err)
	assert.Equal(t, 58, p.MIDI())

	_, err = ParsePitch("H4")
	assert.Error(t, err)
}

func TestKeySignatureAlteredLetters(t *testing.T) {
	k := KeySignature{Sharps: 2}
	assert.Equal(t, AccidentalSharp, k.ImpliedAccidental('F'))
	assert.Equal(t, AccidentalSharp, k.ImpliedAccidental('C'))
	assert.Equal(t, AccidentalNone, k.ImpliedAccidental('G'))

	flats := KeySignature{Sharps: -2}
	assert.Equal(t, AccidentalFlat, flats.ImpliedAccidental('B'))
	assert.Equal(t, AccidentalFlat, flats.ImpliedAccidental('E'))

	none := KeySignature{Sharps: 0}
	assert.Empty(t, none.AlteredLetters())
}

func TestNoteheadGlyph(t *testing.T) {
	assert.Equal(t, "notehead-black", NoteheadGlyph(NewDuration(1, 4)))
	assert.Equal(t, "notehead-half", NoteheadGlyph(NewDuration(1, 2)))
	assert.Equal(t, "notehead-whole", NoteheadGlyph(NewDuration(1, 1)))
}

func TestUndottedDuration(t *testing.T) {
	dotted := NewDuration(3, 8) // dotted quarter
	r := UndottedDuration(dotted, 1)
	assert.Equal(t, 0, r.Cmp(NewDuration(1, 4)))
}

func TestFlagsGivenDuration(t *testing.T) {
	assert.Equal(t, 0, FlagsGivenDuration(NewDuration(1, 4)))
	assert.Equal(t, 1, FlagsGivenDuration(NewDuration(1, 8)))
	assert.Equal(t, 2, FlagsGivenDuration(NewDuration(1, 16)))
}

func TestRestIndexGivenDuration(t *testing.T) {
	assert.Equal(t, 2, RestIndexGivenDuration(NewDuration(1, 1)))
	assert.Equal(t, -1, RestIndexGivenDuration(NewDuration(3, 16)))
}
