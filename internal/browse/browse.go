// Package browse is a small bubbletea debug TUI (cmd/engrave is the
// harness that launches it) for stepping through a geometry matrix
// island by island, grounded on the teacher's
// internal/project.ProjectSelector: a list-navigation model plus a
// detail pane, built from the same charmbracelet stack — here using
// bubbles/list itself for the list pane, rather than hand-rolling one.
package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/schollz/engrave/internal/geometry"
	"github.com/schollz/engrave/internal/graph"
	"github.com/schollz/engrave/internal/stamp"
)

// IslandInfo is everything the browser shows about one matrix cell; the
// caller (cmd/engrave) computes it once per island up front so the TUI
// itself never touches engraving state.
type IslandInfo struct {
	Part    int
	Instant int
	Island  graph.NodeIndex
	Bounds  stamp.Bounds
	Err     error
}

// islandItem adapts an IslandInfo to bubbles/list's Item/DefaultItem
// interfaces so list.Model can render, filter, and paginate the matrix.
type islandItem struct{ info IslandInfo }

func (it islandItem) Title() string {
	title := fmt.Sprintf("part %d / instant %d", it.info.Part, it.info.Instant)
	if it.info.Err != nil {
		title += " (error)"
	}
	return title
}

func (it islandItem) Description() string {
	if it.info.Err != nil {
		return it.info.Err.Error()
	}
	b := it.info.Bounds
	return fmt.Sprintf("bounds=[%.3f %.3f %.3f %.3f]", b.Left, b.Bottom, b.Right, b.Top)
}

func (it islandItem) FilterValue() string { return it.Title() }

const listWidth = 32

// Model is the bubbletea model for the browser: a bubbles/list over the
// matrix's occupied cells, plus a detail pane for the current selection.
// selected tracks the list's cursor directly (rather than reading it back
// out of list.Model) so the up/down clamping rule stays explicit and
// independently testable.
type Model struct {
	list     list.Model
	cells    []IslandInfo
	selected int
	width    int
	height   int
	quitting bool
}

// New builds a Model by walking every occupied cell of geo in
// part-major order, labeling each with the bounds computed by render.
func New(geo *geometry.Geometry, bounds map[graph.NodeIndex]stamp.Bounds, errs map[graph.NodeIndex]error) Model {
	var cells []IslandInfo
	var items []list.Item
	for p := 0; p < geo.PartCount; p++ {
		for t := 0; t < geo.InstantCount; t++ {
			isl := geo.At(p, t)
			if isl == graph.NoNode {
				continue
			}
			info := IslandInfo{Part: p, Instant: t, Island: isl, Bounds: bounds[isl], Err: errs[isl]}
			cells = append(cells, info)
			items = append(items, islandItem{info})
		}
	}

	l := list.New(items, list.NewDefaultDelegate(), listWidth, 20)
	l.Title = "Islands"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)

	return Model{list: l, cells: cells}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(listWidth, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.cells)-1 {
				m.selected++
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if len(m.cells) == 0 {
		return lipgloss.NewStyle().Padding(1).Render("no islands to browse")
	}

	m.list.Select(m.selected)

	detailStyle := lipgloss.NewStyle().Padding(0, 0, 0, 2)
	var detail strings.Builder
	cur := m.cells[m.selected]
	fmt.Fprintf(&detail, "island index: %d\n", cur.Island)
	if cur.Err != nil {
		fmt.Fprintf(&detail, "error: %v\n", cur.Err)
	} else {
		b := cur.Bounds
		fmt.Fprintf(&detail, "bounds: left=%.3f bottom=%.3f right=%.3f top=%.3f\n", b.Left, b.Bottom, b.Right, b.Top)
		fmt.Fprintf(&detail, "size: %.3f x %.3f\n", b.Width(), b.Height())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), detailStyle.Render(detail.String()))
}
