package geometry

import (
	"testing"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPartScore(t *testing.T) (*graph.Graph, []graph.NodeIndex, []graph.NodeIndex) {
	t.Helper()
	g := graph.New()

	topA := g.NewIsland(graph.NoNode)
	g.Root = topA
	botA := g.NewIsland(graph.NoNode)
	g.LinkInstantwise(topA, botA)

	topB := g.NewIsland(topA)
	botB := g.NewIsland(botA)
	g.LinkInstantwise(topB, botB)

	topC := g.NewIsland(topB)
	g.AddChord(topC, concept.NewDuration(1, 4)) // bottom part absent at instant 2

	top := []graph.NodeIndex{topA, topB, topC}
	bot := []graph.NodeIndex{botA, botB}
	return g, top, bot
}

func TestParseTwoPartGeometry(t *testing.T) {
	g, top, bot := twoPartScore(t)
	geo := Parse(g)

	require.Equal(t, 2, geo.PartCount)
	require.Equal(t, 3, geo.InstantCount)

	assert.Equal(t, top[0], geo.At(0, 0))
	assert.Equal(t, bot[0], geo.At(1, 0))
	assert.Equal(t, top[1], geo.At(0, 1))
	assert.Equal(t, bot[1], geo.At(1, 1))
	assert.Equal(t, top[2], geo.At(0, 2))
	assert.Equal(t, graph.NoNode, geo.At(1, 2))

	assert.True(t, geo.IsComplete(0))
	assert.True(t, geo.IsComplete(1))
	assert.False(t, geo.IsComplete(2))

	assert.Equal(t, top[0], geo.PartStarts[0])
	assert.Equal(t, bot[0], geo.PartStarts[1])
}

func TestParseAssignsPartAndInstantID(t *testing.T) {
	g, top, _ := twoPartScore(t)
	Parse(g)

	v, ok := g.Node(top[1]).Label.StateGet("PartID")
	require.True(t, ok)
	assert.Equal(t, 0, v)

	v, ok = g.Node(top[1]).Label.StateGet("InstantID")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestParseEmptyGraph(t *testing.T) {
	g := graph.New()
	geo := Parse(g)
	assert.Equal(t, 0, geo.PartCount)
	assert.Equal(t, 0, geo.InstantCount)
}
