package state

import (
	"testing"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/graph"
	"github.com/schollz/engrave/internal/housestyle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) concept.Pitch {
	t.Helper()
	p, err := concept.ParsePitch(s)
	require.NoError(t, err)
	return p
}

// singlePartScore builds one part, one staff: clef, then three quarter
// chords with a note each.
func singlePartScore(t *testing.T, pitches ...string) (*graph.Graph, []graph.NodeIndex) {
	t.Helper()
	g := graph.New()
	isl := g.NewIsland(graph.NoNode)
	g.Root = isl
	g.AddClef(isl, concept.ClefTreble)

	var chords []graph.NodeIndex
	for _, p := range pitches {
		chord := g.AddChord(isl, concept.NewDuration(1, 4))
		g.AddNote(chord, mustParse(t, p))
		chords = append(chords, chord)
		next := g.NewIsland(isl)
		isl = next
	}
	return g, chords
}

func TestAccumulateStemDirectionFollowsFurthestNote(t *testing.T) {
	g, chords := singlePartScore(t, "E4", "G5", "C3")
	acc := Accumulate(g, housestyle.Default())

	assert.Equal(t, concept.StemUp, acc.ChordInfoFor(chords[0]).StemDirection, "E4 sits below the middle line")
	assert.Equal(t, concept.StemDown, acc.ChordInfoFor(chords[1]).StemDirection, "G5 sits well above the middle line")
	assert.Equal(t, concept.StemUp, acc.ChordInfoFor(chords[2]).StemDirection, "C3 sits well below the middle line")
}

func TestAccumulateStemDirectionManualOverrideWins(t *testing.T) {
	g, chords := singlePartScore(t, "G5")
	g.SetStemDirection(chords[0], concept.StemUp)
	acc := Accumulate(g, housestyle.Default())

	assert.Equal(t, concept.StemUp, acc.ChordInfoFor(chords[0]).StemDirection, "a manual StemDirection attribute overrides G5's own furthest-note rule (which would pick StemDown)")
}

func TestAccumulateBeamContinuationInheritsDirection(t *testing.T) {
	g, chords := singlePartScore(t, "G5", "F5")
	g.LinkBeam(chords[0], chords[1])
	acc := Accumulate(g, housestyle.Default())

	assert.True(t, acc.ChordInfoFor(chords[1]).StemHasBeam)
	assert.Equal(t, acc.ChordInfoFor(chords[0]).StemDirection, acc.ChordInfoFor(chords[1]).StemDirection)
}

func TestAccumulateAccidentalCascade(t *testing.T) {
	g := graph.New()
	isl := g.NewIsland(graph.NoNode)
	g.Root = isl
	g.AddClef(isl, concept.ClefTreble)
	g.AddKeySignature(isl, concept.KeySignature{Sharps: 2}) // F#, C#

	c1 := g.AddChord(isl, concept.NewDuration(1, 4))
	n1 := g.AddNote(c1, mustParse(t, "F#4")) // matches what the key already implies: suppressed
	isl2 := g.NewIsland(isl)
	c2 := g.AddChord(isl2, concept.NewDuration(1, 4))
	n2 := g.AddNote(c2, mustParse(t, "Fn4")) // explicit natural against the key: emitted
	isl3 := g.NewIsland(isl2)
	c3 := g.AddChord(isl3, concept.NewDuration(1, 4))
	n3 := g.AddNote(c3, mustParse(t, "Fn4")) // already natural this measure: suppressed
	_ = c3

	acc := Accumulate(g, housestyle.Default())
	assert.False(t, acc.Notes[n1].Emit)
	assert.True(t, acc.Notes[n2].Emit)
	assert.False(t, acc.Notes[n3].Emit)
}

func TestAccumulateBarlineAgesAndDropsAlteredEntries(t *testing.T) {
	g := graph.New()
	isl := g.NewIsland(graph.NoNode)
	g.Root = isl
	g.AddClef(isl, concept.ClefTreble)
	c1 := g.AddChord(isl, concept.NewDuration(1, 4))
	g.AddNote(c1, mustParse(t, "F#4"))

	isl2 := g.NewIsland(isl)
	g.AddBarline(isl2, concept.BarlineNormal)
	isl3 := g.NewIsland(isl2)
	g.AddBarline(isl3, concept.BarlineNormal)
	isl4 := g.NewIsland(isl3)
	c2 := g.AddChord(isl4, concept.NewDuration(1, 4))
	n2 := g.AddNote(c2, mustParse(t, "F#4"))

	acc := Accumulate(g, housestyle.Default())
	// two barlines have passed: the original F# entry aged out, so the
	// key-signature fallback alone decides — and a natural/unaltered F
	// key implies AccidentalNone, so the repeated F#4 must re-emit.
	assert.True(t, acc.Notes[n2].Emit)
}

func TestAccumulateTieSuppressesEmitButPreservesAlteration(t *testing.T) {
	g := graph.New()
	isl := g.NewIsland(graph.NoNode)
	g.Root = isl
	g.AddClef(isl, concept.ClefTreble)
	c1 := g.AddChord(isl, concept.NewDuration(1, 4))
	n1 := g.AddNote(c1, mustParse(t, "F#4"))
	isl2 := g.NewIsland(isl)
	g.AddBarline(isl2, concept.BarlineNormal) // aged entry no longer matches by MeasuresAgo==0
	isl3 := g.NewIsland(isl2)
	c2 := g.AddChord(isl3, concept.NewDuration(1, 4))
	n2 := g.AddNote(c2, mustParse(t, "F#4"))
	g.LinkTie(n1, n2)

	acc := Accumulate(g, housestyle.Default())
	assert.True(t, acc.Notes[n1].Emit)
	assert.False(t, acc.Notes[n2].Emit, "a tied continuation note is never visually re-emitted, even though the cascade alone would emit it")
}

func TestAccumulateVoicingAlternatesStemDirectionByStrand(t *testing.T) {
	g := graph.New()
	isl := g.NewIsland(graph.NoNode)
	g.Root = isl
	g.AddClef(isl, concept.ClefTreble)
	top := g.AddChord(isl, concept.NewDuration(1, 4))
	g.AddNote(top, mustParse(t, "G5"))
	bottom := g.AddChord(isl, concept.NewDuration(1, 4))
	g.AddNote(bottom, mustParse(t, "C4"))

	acc := Accumulate(g, housestyle.Default())
	topInfo := acc.ChordInfoFor(top)
	bottomInfo := acc.ChordInfoFor(bottom)
	assert.Equal(t, 0, topInfo.StrandID)
	assert.Equal(t, 1, bottomInfo.StrandID)
	assert.Equal(t, concept.StemUp, topInfo.StemDirection)
	assert.Equal(t, concept.StemDown, bottomInfo.StemDirection)
}

func TestAccumulateIsIdempotent(t *testing.T) {
	g, _ := singlePartScore(t, "E4", "G5", "F#5")
	house := housestyle.Default()

	first := Accumulate(g, house)
	first.WriteToGraph(g)
	g.ClearState()
	second := Accumulate(g, house)

	assert.Equal(t, first.Chords, second.Chords)
	assert.Equal(t, first.Notes, second.Notes)
	assert.Equal(t, first.PartSnapshotAt, second.PartSnapshotAt)
}

func TestIslandStateInitializesFreshDefaults(t *testing.T) {
	g, _ := singlePartScore(t, "E4")
	acc := Accumulate(g, housestyle.Default())
	for _, info := range acc.Islands {
		assert.Equal(t, 0.0, info.TypesetX)
		assert.Equal(t, 5, info.StaffLines)
	}
}

func TestAccumulatePartStatesParallelMatchesSequential(t *testing.T) {
	g := graph.New()
	top1 := g.NewIsland(graph.NoNode)
	g.Root = top1
	g.AddClef(top1, concept.ClefTreble)
	c1 := g.AddChord(top1, concept.NewDuration(1, 4))
	g.AddNote(c1, mustParse(t, "E4"))

	bottom1 := g.NewIsland(graph.NoNode)
	g.LinkInstantwise(top1, bottom1)
	g.AddClef(bottom1, concept.ClefBass)
	c2 := g.AddChord(bottom1, concept.NewDuration(1, 4))
	g.AddNote(c2, mustParse(t, "C3"))

	house := housestyle.Default()
	sequential := AccumulatePartStates(g, house, false)
	parallel := AccumulatePartStates(g, house, true)

	assert.Equal(t, sequential.Chords, parallel.Chords)
	assert.Equal(t, sequential.Notes, parallel.Notes)
	assert.Equal(t, sequential.PartSnapshotAt, parallel.PartSnapshotAt)
}
