package graph

import (
	"testing"

	"github.com/schollz/engrave/internal/concept"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSimpleScore(t *testing.T) *Graph {
	t.Helper()
	g := New()
	i0 := g.NewIsland(NoNode)
	g.Root = i0
	g.AddClef(i0, concept.ClefTreble)
	chord := g.AddChord(i0, concept.NewDuration(1, 4))
	g.AddNote(chord, concept.Pitch{Diatonic: concept.DiatonicPitch{Letter: 'C', Octave: 4}})
	return g
}

func TestValidateValidGraph(t *testing.T) {
	g := buildSimpleScore(t)
	assert.NoError(t, g.Validate())
}

func TestValidateNoRoot(t *testing.T) {
	g := New()
	err := g.Validate()
	require.Error(t, err)
}

func TestChordsAndNotes(t *testing.T) {
	g := buildSimpleScore(t)
	chords := g.Chords(g.Root)
	require.Len(t, chords, 1)
	notes := g.Notes(chords[0])
	require.Len(t, notes, 1)
	pitch, ok := g.Node(notes[0]).Label.Get("Pitch")
	require.True(t, ok)
	assert.Equal(t, "C4", pitch.String())
}

func TestClearStateIsDerivedOnly(t *testing.T) {
	g := buildSimpleScore(t)
	g.Node(g.Root).Label.StateSet("TypesetX", 42)
	g.ClearState()
	_, ok := g.Node(g.Root).Label.StateGet("TypesetX")
	assert.False(t, ok)
}
