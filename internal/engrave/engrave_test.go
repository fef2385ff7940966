package engrave

import (
	"testing"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/graph"
	"github.com/schollz/engrave/internal/housestyle"
	"github.com/schollz/engrave/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) concept.Pitch {
	t.Helper()
	p, err := concept.ParsePitch(s)
	require.NoError(t, err)
	return p
}

func TestEngraveIslandChordProducesNoteheadAndStem(t *testing.T) {
	g := graph.New()
	isl := g.NewIsland(graph.NoNode)
	g.Root = isl
	g.AddClef(isl, concept.ClefTreble)
	chordIsl := g.NewIsland(isl)
	chord := g.AddChord(chordIsl, concept.NewDuration(1, 8))
	g.AddNote(chord, mustParse(t, "E4"))

	house := housestyle.Default()
	acc := state.Accumulate(g, house)

	s, err := EngraveIsland(g, chordIsl, acc, house)
	require.NoError(t, err)
	assert.NotEmpty(t, s.Graphics, "a chord island must emit at least a notehead and a stem")

	var sawNotehead, sawFlag bool
	for _, gr := range s.Graphics {
		if gr.Context == int(chord) {
			continue
		}
		if gr.Path.Glyph == "notehead-black" {
			sawNotehead = true
		}
		if gr.Path.Glyph == "flag8thUp" || gr.Path.Glyph == "flag8thDown" {
			sawFlag = true
		}
	}
	assert.True(t, sawNotehead, "expected a black notehead for an eighth note")
	assert.True(t, sawFlag, "an unbeamed eighth note needs a flag")
}

func TestEngraveIslandChordWithAccidentalStacksIt(t *testing.T) {
	g := graph.New()
	isl := g.NewIsland(graph.NoNode)
	g.Root = isl
	g.AddClef(isl, concept.ClefTreble)
	chord := g.AddChord(isl, concept.NewDuration(1, 4))
	g.AddNote(chord, mustParse(t, "F#4"))

	house := housestyle.Default()
	acc := state.Accumulate(g, house)

	s, err := EngraveIsland(g, isl, acc, house)
	require.NoError(t, err)

	var sawAccidental bool
	for _, gr := range s.Graphics {
		if gr.Path.Glyph == "accidentalSharp" {
			sawAccidental = true
		}
	}
	assert.True(t, sawAccidental, "a first-appearance sharp must be engraved")
}

func TestEngraveIslandRestProducesQuarterRestGlyph(t *testing.T) {
	g := graph.New()
	isl := g.NewIsland(graph.NoNode)
	g.Root = isl
	g.AddChord(isl, concept.NewDuration(1, 4)) // no notes: a rest

	house := housestyle.Default()
	acc := state.Accumulate(g, house)

	s, err := EngraveIsland(g, isl, acc, house)
	require.NoError(t, err)
	require.Len(t, s.Graphics, 1)
	assert.Equal(t, "restQuarter", s.Graphics[0].Path.Glyph)
}

func TestEngraveIslandBeamedChordHasNoFlag(t *testing.T) {
	g := graph.New()
	isl := g.NewIsland(graph.NoNode)
	g.Root = isl
	g.AddClef(isl, concept.ClefTreble)
	c1 := g.AddChord(isl, concept.NewDuration(1, 8))
	g.AddNote(c1, mustParse(t, "E4"))
	isl2 := g.NewIsland(isl)
	c2 := g.AddChord(isl2, concept.NewDuration(1, 8))
	g.AddNote(c2, mustParse(t, "F4"))
	g.LinkBeam(c1, c2)

	house := housestyle.Default()
	acc := state.Accumulate(g, house)

	s, err := EngraveIsland(g, isl, acc, house)
	require.NoError(t, err)
	for _, gr := range s.Graphics {
		assert.NotContains(t, gr.Path.Glyph, "flag", "a beamed chord must not also draw a flag")
	}
}

func TestEngraveIslandUnknownIndexErrors(t *testing.T) {
	g := graph.New()
	house := housestyle.Default()
	acc := state.Accumulate(g, house)
	_, err := EngraveIsland(g, graph.NodeIndex(99), acc, house)
	assert.Error(t, err)
}

func TestEngraveIslandClefAndKeySignatureProduceGlyphs(t *testing.T) {
	g := graph.New()
	isl := g.NewIsland(graph.NoNode)
	g.Root = isl
	g.AddClef(isl, concept.ClefTreble)
	g.AddKeySignature(isl, concept.KeySignature{Sharps: 2})

	house := housestyle.Default()
	acc := state.Accumulate(g, house)

	s, err := EngraveIsland(g, isl, acc, house)
	require.NoError(t, err)

	var sawClef, sawKeyAccidental int
	for _, gr := range s.Graphics {
		switch gr.Path.Glyph {
		case "gClef":
			sawClef++
		case "accidentalSharp":
			sawKeyAccidental++
		}
	}
	assert.Equal(t, 1, sawClef)
	assert.Equal(t, 2, sawKeyAccidental, "a two-sharp key signature draws two sharp glyphs")
}
