package autocorrect

import (
	"testing"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/graph"
	"github.com/schollz/engrave/internal/housestyle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParsePitch(t *testing.T, s string) concept.Pitch {
	t.Helper()
	p, err := concept.ParsePitch(s)
	require.NoError(t, err)
	return p
}

func TestNormalizeDotsDecomposesDottedQuarter(t *testing.T) {
	g := graph.New()
	isl := g.NewIsland(graph.NoNode)
	g.Root = isl
	chord := g.AddChord(isl, concept.NewDuration(3, 8))

	NormalizeDots(g)

	v, ok := g.Node(chord).Label.Get("NoteValue")
	require.True(t, ok)
	assert.Equal(t, 0, v.Rat.Cmp(concept.NewDuration(1, 4).Rat))
	d, ok := g.Node(chord).Label.Get("Dots")
	require.True(t, ok)
	assert.Equal(t, 1, d.Int)
}

func TestNormalizeDotsLeavesPlainValueWithZeroDots(t *testing.T) {
	g := graph.New()
	isl := g.NewIsland(graph.NoNode)
	g.Root = isl
	chord := g.AddChord(isl, concept.NewDuration(1, 4))

	NormalizeDots(g)

	v, ok := g.Node(chord).Label.Get("NoteValue")
	require.True(t, ok)
	assert.Equal(t, 0, v.Rat.Cmp(concept.NewDuration(1, 4).Rat))
	d, ok := g.Node(chord).Label.Get("Dots")
	require.True(t, ok)
	assert.Equal(t, 0, d.Int)
}

func TestNormalizeDotsSkipsChordsWithExplicitDots(t *testing.T) {
	g := graph.New()
	isl := g.NewIsland(graph.NoNode)
	g.Root = isl
	chord := g.AddChord(isl, concept.NewDuration(3, 8))
	g.Node(chord).Label.Set("Dots", concept.OfInt(0))

	NormalizeDots(g)

	v, _ := g.Node(chord).Label.Get("NoteValue")
	assert.Equal(t, 0, v.Rat.Cmp(concept.NewDuration(3, 8).Rat))
}

func TestRepairFinalBarlinesInsertsMissingBarline(t *testing.T) {
	g := graph.New()
	isl1 := g.NewIsland(graph.NoNode)
	g.Root = isl1
	g.AddChord(isl1, concept.NewDuration(1, 4))
	isl2 := g.NewIsland(isl1)
	g.AddChord(isl2, concept.NewDuration(1, 4))

	RepairFinalBarlines(g)

	assert.True(t, hasBarline(g, isl2))
	assert.False(t, hasBarline(g, isl1))
}

func TestRepairFinalBarlinesLeavesExistingBarlineAlone(t *testing.T) {
	g := graph.New()
	isl := g.NewIsland(graph.NoNode)
	g.Root = isl
	g.AddBarline(isl, concept.BarlineNormal)

	RepairFinalBarlines(g)

	toks := g.Tokens(isl)
	require.Len(t, toks, 1)
	v, _ := g.Node(toks[0]).Label.Get("Style")
	assert.Equal(t, "normal", v.Str)
}

func TestAutoBeamLinksConsecutiveEighthNotes(t *testing.T) {
	g := graph.New()
	isl1 := g.NewIsland(graph.NoNode)
	g.Root = isl1
	c1 := g.AddChord(isl1, concept.NewDuration(1, 8))
	isl2 := g.NewIsland(isl1)
	c2 := g.AddChord(isl2, concept.NewDuration(1, 8))
	isl3 := g.NewIsland(isl2)
	c3 := g.AddChord(isl3, concept.NewDuration(1, 4)) // breaks the run

	AutoBeam(g, housestyle.Default())

	assert.NotNil(t, g.OutOne(c1, graph.EdgeBeam))
	assert.NotNil(t, g.InOne(c2, graph.EdgeBeam))
	assert.Nil(t, g.OutOne(c2, graph.EdgeBeam))
	assert.Nil(t, g.OutOne(c3, graph.EdgeBeam))
	assert.Nil(t, g.InOne(c3, graph.EdgeBeam))
}

func TestAutoBeamSkipsSingleEighthNote(t *testing.T) {
	g := graph.New()
	isl := g.NewIsland(graph.NoNode)
	g.Root = isl
	c := g.AddChord(isl, concept.NewDuration(1, 8))

	AutoBeam(g, housestyle.Default())

	assert.Nil(t, g.OutOne(c, graph.EdgeBeam))
}

func TestAutoBeamBreaksAcrossBarline(t *testing.T) {
	g := graph.New()
	isl1 := g.NewIsland(graph.NoNode)
	g.Root = isl1
	c1 := g.AddChord(isl1, concept.NewDuration(1, 8))
	g.AddBarline(isl1, concept.BarlineNormal)
	isl2 := g.NewIsland(isl1)
	c2 := g.AddChord(isl2, concept.NewDuration(1, 8))

	AutoBeam(g, housestyle.Default())

	assert.Nil(t, g.OutOne(c1, graph.EdgeBeam))
	assert.Nil(t, g.InOne(c2, graph.EdgeBeam))
}

func TestAutoBeamDoesNotOverrideExplicitBeam(t *testing.T) {
	g := graph.New()
	isl1 := g.NewIsland(graph.NoNode)
	g.Root = isl1
	c1 := g.AddChord(isl1, concept.NewDuration(1, 8))
	isl2 := g.NewIsland(isl1)
	c2 := g.AddChord(isl2, concept.NewDuration(1, 8))
	isl3 := g.NewIsland(isl2)
	c3 := g.AddChord(isl3, concept.NewDuration(1, 8))
	g.LinkBeam(c1, c2)

	AutoBeam(g, housestyle.Default())

	assert.Nil(t, g.OutOne(c2, graph.EdgeBeam))
	assert.Nil(t, g.InOne(c3, graph.EdgeBeam))
}

func TestPruneRedundantInstantwiseRemovesExtraEdgesFromChordIslands(t *testing.T) {
	g := graph.New()
	top := g.NewIsland(graph.NoNode)
	g.Root = top
	g.AddChord(top, concept.NewDuration(1, 4))
	g.AddNote(g.Chords(top)[0], mustParsePitch(t, "C5"))

	below1 := g.NewIsland(graph.NoNode)
	below2 := g.NewIsland(below1)
	g.LinkInstantwise(top, below1)
	g.LinkInstantwise(top, below2) // stray duplicate

	PruneRedundantInstantwise(g)

	assert.Len(t, g.Out(top, graph.EdgeInstantwise), 1)
	assert.Equal(t, below1, g.InstantwiseBelow(top)[0])
}

func TestPruneRedundantInstantwiseLeavesChordlessIslandAlone(t *testing.T) {
	g := graph.New()
	top := g.NewIsland(graph.NoNode)
	g.Root = top
	below1 := g.NewIsland(graph.NoNode)
	below2 := g.NewIsland(below1)
	g.LinkInstantwise(top, below1)
	g.LinkInstantwise(top, below2)

	PruneRedundantInstantwise(g)

	assert.Len(t, g.Out(top, graph.EdgeInstantwise), 2)
}

func TestRunAppliesAllPassesWithoutPanicking(t *testing.T) {
	g := graph.New()
	isl := g.NewIsland(graph.NoNode)
	g.Root = isl
	chord := g.AddChord(isl, concept.NewDuration(3, 8))
	g.AddNote(chord, mustParsePitch(t, "A4"))

	assert.NotPanics(t, func() { Run(g, housestyle.Default()) })

	d, ok := g.Node(chord).Label.Get("Dots")
	require.True(t, ok)
	assert.Equal(t, 1, d.Int)
	assert.True(t, hasBarline(g, isl))
}
