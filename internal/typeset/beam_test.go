package typeset

import (
	"testing"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/engrave"
	"github.com/schollz/engrave/internal/geometry"
	"github.com/schollz/engrave/internal/graph"
	"github.com/schollz/engrave/internal/housestyle"
	"github.com/schollz/engrave/internal/stamp"
	"github.com/schollz/engrave/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPitch(t *testing.T, s string) concept.Pitch {
	t.Helper()
	p, err := concept.ParsePitch(s)
	require.NoError(t, err)
	return p
}

// twoEighthsBeamed builds a two-chord beam group: both eighth notes,
// linked by a single Beam edge, on consecutive islands.
func twoEighthsBeamed(t *testing.T) (*graph.Graph, graph.NodeIndex, graph.NodeIndex, graph.NodeIndex, graph.NodeIndex) {
	t.Helper()
	g := graph.New()
	isl1 := g.NewIsland(graph.NoNode)
	g.Root = isl1
	g.AddClef(isl1, concept.ClefTreble)
	chord1 := g.AddChord(isl1, concept.NewDuration(1, 8))
	g.AddNote(chord1, mustPitch(t, "E4"))

	isl2 := g.NewIsland(isl1)
	chord2 := g.AddChord(isl2, concept.NewDuration(1, 8))
	g.AddNote(chord2, mustPitch(t, "E4"))

	g.LinkBeam(chord1, chord2)
	return g, isl1, chord1, isl2, chord2
}

func TestEngraveBeamsAddsPrimaryBeamAcrossGroup(t *testing.T) {
	g, isl1, chord1, isl2, chord2 := twoEighthsBeamed(t)
	house := housestyle.Default()
	acc := state.Accumulate(g, house)

	s1, err := engrave.EngraveIsland(g, isl1, acc, house)
	require.NoError(t, err)
	s2, err := engrave.EngraveIsland(g, isl2, acc, house)
	require.NoError(t, err)

	before := len(s1.Graphics)

	stamps := map[graph.NodeIndex]*stamp.Stamp{isl1: s1, isl2: s2}
	geo := geometry.Parse(g)
	positions := TypesetSystem(geo, stamps, []int{0, 1})

	EngraveBeams(g, acc, house, stamps, positions)

	assert.Greater(t, len(s1.Graphics), before, "the primary beam segment must be added to the left chord's island")

	_, chord1HasStem := engrave.StemBounds(s1, chord1)
	_, chord2HasStem := engrave.StemBounds(s2, chord2)
	assert.True(t, chord1HasStem)
	assert.True(t, chord2HasStem)
}

func TestEngraveBeamsSkipsSingleChordChains(t *testing.T) {
	g := graph.New()
	isl := g.NewIsland(graph.NoNode)
	g.Root = isl
	chord := g.AddChord(isl, concept.NewDuration(1, 8))
	g.AddNote(chord, mustPitch(t, "E4"))

	house := housestyle.Default()
	acc := state.Accumulate(g, house)
	s, err := engrave.EngraveIsland(g, isl, acc, house)
	require.NoError(t, err)
	before := len(s.Graphics)

	stamps := map[graph.NodeIndex]*stamp.Stamp{isl: s}
	geo := geometry.Parse(g)
	positions := TypesetSystem(geo, stamps, []int{0})

	assert.NotPanics(t, func() { EngraveBeams(g, acc, house, stamps, positions) })
	assert.Equal(t, before, len(s.Graphics))
}

func TestEngraveBeamsSharesExtraLevelBetweenSixteenths(t *testing.T) {
	g := graph.New()
	isl1 := g.NewIsland(graph.NoNode)
	g.Root = isl1
	g.AddClef(isl1, concept.ClefTreble)
	chord1 := g.AddChord(isl1, concept.NewDuration(1, 16))
	g.AddNote(chord1, mustPitch(t, "E4"))

	isl2 := g.NewIsland(isl1)
	chord2 := g.AddChord(isl2, concept.NewDuration(1, 16))
	g.AddNote(chord2, mustPitch(t, "E4"))

	g.LinkBeam(chord1, chord2)

	house := housestyle.Default()
	acc := state.Accumulate(g, house)
	s1, err := engrave.EngraveIsland(g, isl1, acc, house)
	require.NoError(t, err)
	s2, err := engrave.EngraveIsland(g, isl2, acc, house)
	require.NoError(t, err)

	before1, before2 := len(s1.Graphics), len(s2.Graphics)

	stamps := map[graph.NodeIndex]*stamp.Stamp{isl1: s1, isl2: s2}
	geo := geometry.Parse(g)
	positions := TypesetSystem(geo, stamps, []int{0, 1})
	EngraveBeams(g, acc, house, stamps, positions)

	// two levels (primary + one extra) both shared, both drawn on chord1's island.
	assert.Equal(t, before1+2, len(s1.Graphics))
	assert.Equal(t, before2, len(s2.Graphics))
}
