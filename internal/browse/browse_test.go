package browse

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/geometry"
	"github.com/schollz/engrave/internal/graph"
	"github.com/schollz/engrave/internal/stamp"
)

func twoIslandGraph() *graph.Graph {
	g := graph.New()
	isl1 := g.NewIsland(graph.NoNode)
	g.AddChord(isl1, concept.NewDuration(1, 4))
	isl2 := g.NewIsland(isl1)
	g.AddChord(isl2, concept.NewDuration(1, 4))
	return g
}

func TestNewCollectsEveryOccupiedCell(t *testing.T) {
	g := twoIslandGraph()
	geo := geometry.Parse(g)
	bounds := map[graph.NodeIndex]stamp.Bounds{
		geo.At(0, 0): {Left: 0, Right: 1, Bottom: 0, Top: 1},
		geo.At(0, 1): {Left: 1, Right: 2, Bottom: 0, Top: 1},
	}
	m := New(geo, bounds, nil)
	require.Len(t, m.cells, 2)
	assert.Equal(t, 0, m.cells[0].Instant)
	assert.Equal(t, 1, m.cells[1].Instant)
}

func TestNewRecordsErrorsPerIsland(t *testing.T) {
	g := twoIslandGraph()
	geo := geometry.Parse(g)
	isl := geo.At(0, 1)
	errs := map[graph.NodeIndex]error{isl: errors.New("boom")}
	m := New(geo, nil, errs)
	require.Len(t, m.cells, 2)
	assert.Error(t, m.cells[1].Err)
}

func TestUpdateArrowKeysMoveSelection(t *testing.T) {
	g := twoIslandGraph()
	geo := geometry.Parse(g)
	m := New(geo, map[graph.NodeIndex]stamp.Bounds{}, nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	assert.Equal(t, 1, m.selected)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	assert.Equal(t, 1, m.selected, "selection should not run past the last cell")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	assert.Equal(t, 0, m.selected)
}

func TestUpdateQuitKeySetsQuitting(t *testing.T) {
	m := Model{cells: []IslandInfo{{}}}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
}

func TestViewWithNoCellsDoesNotPanic(t *testing.T) {
	var m Model
	assert.NotPanics(t, func() { m.View() })
}

func TestViewRendersSelectedCellDetail(t *testing.T) {
	g := twoIslandGraph()
	geo := geometry.Parse(g)
	isl := geo.At(0, 0)
	m := New(geo, map[graph.NodeIndex]stamp.Bounds{isl: {Left: 0, Right: 2, Bottom: 0, Top: 3}}, nil)
	out := m.View()
	assert.Contains(t, out, "part 0 / instant 0")
	assert.Contains(t, out, "size: 2.000 x 3.000")
}
