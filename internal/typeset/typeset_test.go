package typeset

import (
	"testing"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/geometry"
	"github.com/schollz/engrave/internal/graph"
	"github.com/schollz/engrave/internal/stamp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chordStamp(width float64) *stamp.Stamp {
	s := stamp.New()
	s.Add(&stamp.Graphic{Path: stamp.PathRef{RawBounds: stamp.Bounds{Right: width, Top: 1}}, Transform: stamp.Identity()})
	return s
}

func TestTypesetSystemPropagatesLeadingEdge(t *testing.T) {
	g := graph.New()
	isl1 := g.NewIsland(graph.NoNode)
	g.Root = isl1
	g.AddChord(isl1, concept.NewDuration(1, 4))
	isl2 := g.NewIsland(isl1)
	g.AddChord(isl2, concept.NewDuration(1, 4))

	geo := geometry.Parse(g)
	stamps := map[graph.NodeIndex]*stamp.Stamp{
		isl1: chordStamp(2),
		isl2: chordStamp(3),
	}

	pos := TypesetSystem(geo, stamps, []int{0, 1})
	assert.Equal(t, 0.0, pos.IslandX[isl1])
	assert.Equal(t, 2.0, pos.IslandX[isl2])
	assert.Equal(t, 5.0, pos.FurthestRight)
}

func TestTypesetSystemResolvesCrossPartCollision(t *testing.T) {
	g := graph.New()
	top1 := g.NewIsland(graph.NoNode)
	g.Root = top1
	bottom1 := g.NewIsland(graph.NoNode)
	g.LinkInstantwise(top1, bottom1)
	top2 := g.NewIsland(top1)
	bottom2 := g.NewIsland(bottom1)
	g.LinkInstantwise(top2, bottom2)

	geo := geometry.Parse(g)
	stamps := map[graph.NodeIndex]*stamp.Stamp{
		top1:    chordStamp(1),
		bottom1: chordStamp(4), // the wide staff pushes the next instant's origin out
		top2:    chordStamp(1),
		bottom2: chordStamp(1),
	}

	pos := TypesetSystem(geo, stamps, []int{0, 1})
	assert.Equal(t, 4.0, pos.InstantPositions[1])
}

func TestOptimizeWrapChoosesFeasibleBreakpoints(t *testing.T) {
	widths := []float64{3, 3, 3, 3}
	breakpoints, err := OptimizeWrap(widths, 10, 6, 2)
	require.NoError(t, err)
	require.Len(t, breakpoints, 3)
	assert.Equal(t, 0, breakpoints[0])
	assert.Equal(t, 4, breakpoints[len(breakpoints)-1])
}

func TestOptimizeWrapErrorsWhenNothingFits(t *testing.T) {
	_, err := OptimizeWrap([]float64{100}, 10, 10, 2)
	assert.Error(t, err)
}

func TestRepeatAtSystemStartsCopiesClefAndKey(t *testing.T) {
	g := graph.New()
	isl1 := g.NewIsland(graph.NoNode)
	g.Root = isl1
	g.AddClef(isl1, concept.ClefTreble)
	g.AddKeySignature(isl1, concept.KeySignature{Sharps: 2})
	isl2 := g.NewIsland(isl1) // system 1's start, no clef/key of its own

	chain := []graph.NodeIndex{isl1, isl2}
	systemOf := func(n graph.NodeIndex) int {
		if n == isl1 {
			return 0
		}
		return 1
	}
	RepeatAtSystemStarts(g, [][]graph.NodeIndex{chain}, systemOf)

	var sawClef, sawKey bool
	for _, tok := range g.Tokens(isl2) {
		switch g.Node(tok).TokenKind {
		case graph.TokenClef:
			sawClef = true
		case graph.TokenKeySignature:
			sawKey = true
		}
	}
	assert.True(t, sawClef)
	assert.True(t, sawKey)
}
