package engrave

import (
	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/engraveerr"
	"github.com/schollz/engrave/internal/graph"
	"github.com/schollz/engrave/internal/housestyle"
	"github.com/schollz/engrave/internal/stamp"
	"github.com/schollz/engrave/internal/state"
)

// EngraveIsland is the top-level per-island driver (§4.3-§4.12): it reads
// one island's tokens plus the PartState/ChordInfo/InstantState substate
// already computed by package state, and returns the stamp.Stamp the
// island contributes at its own local origin.
//
// Cross-island content — beam lines, tie curves, tuplet brackets, slurs —
// is only partly resolvable here: this driver places the local end of each
// (the stem's unshared flag, the tuplet label, the tie's direction). Beam
// lines are added later by internal/typeset, which knows each island's
// final x-position; tie curves, slurs and tuplet bracket lines are not
// drawn. That split mirrors §9's own layering: the engraving core never
// assumes page coordinates.
func EngraveIsland(g *graph.Graph, island graph.NodeIndex, acc *state.Accumulated, house *housestyle.HouseStyle) (*stamp.Stamp, error) {
	if island == graph.NoNode || int(island) >= len(g.Nodes) {
		return nil, engraveerr.Wrap(engraveerr.InvalidGraph, "engrave: island %d out of range", island)
	}
	s := stamp.New()

	for _, tok := range g.Tokens(island) {
		n := g.Node(tok)
		switch n.TokenKind {
		case graph.TokenClef:
			engraveClef(s, n, house)
		case graph.TokenKeySignature:
			engraveKeySignature(s, n, house)
		case graph.TokenBarline:
			engraveBarline(s, n, house)
		case graph.TokenChord:
			if err := engraveChord(g, s, tok, acc, house); err != nil {
				return nil, err
			}
		}
	}

	for _, e := range g.Out(island, graph.EdgeFloat) {
		engraveFloat(s, g.Node(e.To), house)
	}

	return s, nil
}

var clefGlyphs = map[string]string{
	concept.ClefTreble.Name: "gClef",
	concept.ClefBass.Name:   "fClef",
	concept.ClefAlto.Name:   "cClef",
	concept.ClefTenor.Name:  "cClef",
}

func engraveClef(s *stamp.Stamp, n *graph.Node, house *housestyle.HouseStyle) {
	name := ""
	if v, ok := n.Label.Get("Clef"); ok && v.Kind == concept.KindString {
		name = v.Str
	}
	glyph, ok := clefGlyphs[name]
	if !ok {
		glyph = "gClef" // §7 GlyphMissing degradation: fall back to treble
	}
	size := 4 * house.Get(housestyle.SpaceHeight)
	s.Add(&stamp.Graphic{
		Path:      stamp.PathRef{Glyph: glyph, RawBounds: stamp.Bounds{Right: size * 0.6, Top: size}},
		Transform: stamp.Translate(0, -size/2),
	})
}

func engraveKeySignature(s *stamp.Stamp, n *graph.Node, house *housestyle.HouseStyle) {
	sharps := 0
	if v, ok := n.Label.Get("Sharps"); ok && v.Kind == concept.KindInt {
		sharps = v.Int
	}
	k := concept.KeySignature{Sharps: sharps}
	glyph := "accidentalSharp"
	if sharps < 0 {
		glyph = "accidentalFlat"
	}
	letters := k.OrderedAlteredLetters()
	treble := concept.ClefTreble
	w := house.Get(housestyle.NoteheadWidth) * 0.75
	for i, letter := range letters {
		pos := treble.StaffPosition(concept.DiatonicPitch{Letter: letter, Octave: 4})
		x := float64(i) * w
		y := positionUnit(pos, house)
		s.Add(&stamp.Graphic{
			Path:      stamp.PathRef{Glyph: glyph, RawBounds: stamp.Bounds{Right: w, Top: house.Get(housestyle.SpaceHeight)}},
			Transform: stamp.Translate(x, y-house.Get(housestyle.SpaceHeight)/2),
		})
	}
}

func engraveBarline(s *stamp.Stamp, n *graph.Node, house *housestyle.HouseStyle) {
	style := "normal"
	if v, ok := n.Label.Get("Style"); ok && v.Kind == concept.KindString {
		style = v.Str
	}
	thickness := house.Get(housestyle.BarlineThickness)
	if style == "final" || style == "double" {
		s.Add(barlineStroke(0, thickness, house))
		gap := house.Get(housestyle.NoteheadWidth) * 0.4
		w := thickness
		if style == "final" {
			w *= 3
		}
		s.Add(barlineStroke(gap, w, house))
		return
	}
	s.Add(barlineStroke(0, thickness, house))
}

func barlineStroke(x, thickness float64, house *housestyle.HouseStyle) *stamp.Graphic {
	top := positionUnit(4, house)
	bottom := positionUnit(-4, house)
	return &stamp.Graphic{
		Path:        stamp.PathRef{RawBounds: stamp.Bounds{Bottom: bottom, Top: top}},
		StrokeWidth: thickness,
		Transform:   stamp.Translate(x, 0),
	}
}

func chordDuration(n *graph.Node) concept.Duration {
	if v, ok := n.Label.Get("NoteValue"); ok && v.Kind == concept.KindRational {
		return concept.Duration{Rat: v.Rat}
	}
	return concept.NewDuration(1, 4)
}

func chordDots(n *graph.Node) int {
	if v, ok := n.Label.Get("Dots"); ok && v.Kind == concept.KindInt {
		return v.Int
	}
	return 0
}

// engraveChord dispatches a Chord token to the rest engraver (no Note
// children) or the full notehead/accidental/stem/beam-flag/ledger/dot/tie/
// tuplet pipeline (§4.3-§4.11).
func engraveChord(g *graph.Graph, s *stamp.Stamp, chord graph.NodeIndex, acc *state.Accumulated, house *housestyle.HouseStyle) error {
	notes := g.Notes(chord)
	duration := chordDuration(g.Node(chord))
	info := acc.ChordInfoFor(chord)

	if len(notes) == 0 {
		glyph := RestGlyph(duration)
		pos := RestVerticalPosition(duration, info.StrandID, house)
		s.Add(restGraphic(glyph, pos, house))
		return nil
	}

	dots := chordDots(g.Node(chord))
	infos := make([]NoteheadInfo, len(notes))
	for i, note := range notes {
		dec, ok := acc.Notes[note]
		if !ok {
			return engraveerr.Wrap(engraveerr.InvalidGraph, "engrave: note %d missing accidental decision", note)
		}
		infos[i] = NoteheadInfo{Note: note, StaffPosition: dec.StaffPosition, Pitch: dec.Pitch, Duration: duration, Dots: dots, Emit: dec.Emit}
	}

	order, columns := ClusterAndAssignColumns(infos, info.StemDirection)

	noteBounds := make([]noteBound, 0, len(infos))
	noteheadBounds := make([]stamp.Bounds, 0, len(infos))
	var accEntries []AccidentalEntry
	chordRight := house.Get(housestyle.NoteheadWidth)
	halfWidth := house.Get(housestyle.NoteheadWidth) / 2
	for _, idx := range order {
		note := infos[idx]
		col := columns[idx]
		gr := NoteheadGraphic(note, col, house)
		s.Add(gr)
		b := gr.Bounds()
		if b.Right > chordRight {
			chordRight = b.Right
		}
		noteBounds = append(noteBounds, noteBound{StaffPosition: note.StaffPosition, Left: b.Left, Right: b.Right, ColumnHalfWidth: halfWidth})
		noteheadBounds = append(noteheadBounds, b)
		if note.Emit {
			accEntries = append(accEntries, AccidentalEntry{Note: note.Note, Accidental: note.Pitch.Accidental, StaffPosition: note.StaffPosition})
		}
	}

	if len(accEntries) > 0 {
		placed, _ := StackAccidentals(accEntries, house, noteheadBounds)
		for _, p := range placed {
			s.Add(accidentalGraphic(p))
		}
	}

	for _, r := range AccumulateLedgerLines(noteBounds, house) {
		s.Add(ledgerGraphic(r, house))
	}

	attachPos := info.LowestPos
	if info.StemDirection == concept.StemDown {
		attachPos = info.HighestPos
	}
	flagged := !info.StemHasBeam && concept.FlagsGivenDuration(duration) > 0
	height := StemHeight(attachPos, flagged)
	near, far := StemEndpoints(attachPos, info.StemDirection, height, house)
	stemX := float64(columnOf(columns, order, 0)) * noteheadColumnWidth(house)
	s.Add(&stamp.Graphic{
		Path:        stamp.PathRef{Text: stemMarker, RawBounds: stamp.Bounds{Bottom: min(near, far), Top: max(near, far)}},
		StrokeWidth: house.Get(housestyle.StemWidth),
		Transform:   stamp.Translate(stemX, 0),
		Context:     int(chord),
	})
	if flagged {
		if glyph := FlagGlyph(duration, info.StemDirection); glyph != "" {
			s.Add(&stamp.Graphic{
				Path:      stamp.PathRef{Glyph: glyph, RawBounds: stamp.Bounds{Right: house.Get(housestyle.NoteheadWidth), Top: house.Get(housestyle.SpaceHeight) * 2}},
				Transform: stamp.Translate(stemX, far),
			})
		}
	}

	if dots > 0 {
		positions := make([]int, len(infos))
		for i, note := range infos {
			positions[i] = note.StaffPosition
		}
		slots := AssignDotSlots(positions, info.StemDirection)
		for i := range infos {
			for _, dg := range DotGraphics(chordRight, slots[i], dots, house) {
				s.Add(dg)
			}
		}
	}

	engraveTies(g, s, chord, notes, acc, house)
	engraveTuplets(g, s, chord, info, house)

	return nil
}

// columnOf recovers the notehead column assigned to the primary (column
// 0) position; every chord has at least one note in column 0 by
// construction (§4.3), so the stem always has a definite x to sit at.
func columnOf(columns, order []int, want int) int {
	for _, idx := range order {
		if columns[idx] == want {
			return want
		}
	}
	return 0
}

// engraveTies places a direction-only marker per outgoing tie (§4.10); the
// tie curve itself is not drawn, and partial-tie status at a system wrap
// is computed separately by ResolveTie.
func engraveTies(g *graph.Graph, s *stamp.Stamp, chord graph.NodeIndex, notes []graph.NodeIndex, acc *state.Accumulated, house *housestyle.HouseStyle) {
	isl := owningIsland(g, chord)
	fromInstant := -1
	if isl != graph.NoNode {
		if v, ok := g.Node(isl).Label.StateGet("InstantID"); ok {
			fromInstant = v.(int)
		}
	}
	for _, note := range notes {
		e := g.OutOne(note, graph.EdgeTie)
		if e == nil {
			continue
		}
		dir := concept.PlacementBelow
		if fromInstant >= 0 {
			if snap, ok := acc.Instants[fromInstant]; ok {
				if d, ok := snap.TieDirections[note]; ok {
					dir = d
				}
			}
		}
		y := 0.0
		if dec, ok := acc.Notes[note]; ok {
			y = positionUnit(dec.StaffPosition, house)
		}
		sign := 1.0
		if dir == concept.PlacementBelow {
			sign = -1
		}
		s.Add(&stamp.Graphic{
			Path:      stamp.PathRef{Text: "tie", RawBounds: stamp.Bounds{Right: house.Get(housestyle.NoteheadWidth), Top: 0.3}},
			Transform: stamp.Translate(0, y+sign*0.3),
		})
	}
}

func owningIsland(g *graph.Graph, chord graph.NodeIndex) graph.NodeIndex {
	return OwningIsland(g, chord)
}

// OwningIsland returns the island a chord's Token edge originates from,
// or graph.NoNode. Exported so internal/typeset's cross-island passes
// (beam engraving) can map a chord back to the
// island whose typeset x-position it shares.
func OwningIsland(g *graph.Graph, chord graph.NodeIndex) graph.NodeIndex {
	if e := g.InOne(chord, graph.EdgeToken); e != nil {
		return e.From
	}
	return graph.NoNode
}

// stemMarker tags the virtual stem-line box (§4.5) added to every
// sounding chord's stamp, so a later cross-island pass can find a
// chord's stem x/endpoints among its island's other graphics without
// recomputing notehead clustering.
const stemMarker = "stem"

// StemBounds finds the stem graphic belonging to chord within an
// already-engraved island stamp. The returned bounds are in the
// island's local coordinate space: Left == Right is the stem's x, and
// Bottom/Top are its near/far endpoints.
func StemBounds(s *stamp.Stamp, chord graph.NodeIndex) (stamp.Bounds, bool) {
	for _, gr := range s.Graphics {
		if gr.Path.Text == stemMarker && gr.Context == int(chord) {
			return gr.Bounds(), true
		}
	}
	return stamp.Bounds{}, false
}

// engraveTuplets draws, at this chord's local origin, the label of every
// tuplet bracket (nested ones included) whose strand this chord begins;
// the bracket line itself is not drawn.
func engraveTuplets(g *graph.Graph, s *stamp.Stamp, chord graph.NodeIndex, info state.ChordInfo, house *housestyle.HouseStyle) {
	brackets := CollectTupletBrackets(g, chord, info.StemHasBeam, info.StemDirection)
	for _, b := range brackets {
		if b.FirstChord != chord {
			continue
		}
		label := TupletLabel(b.Ratio, false)
		offset := BracketOffset(info.StemHasBeam)
		sign := 1.0
		if b.Placement == concept.PlacementBelow {
			sign = -1
		}
		y := positionUnit(4, house)*sign + offset*sign
		s.Add(&stamp.Graphic{
			Path:      stamp.PathRef{Text: label, RawBounds: stamp.Bounds{Right: float64(len(label)) * 0.5, Top: 0.6}},
			Transform: stamp.Translate(0, y),
		})
	}
}

func engraveFloat(s *stamp.Stamp, n *graph.Node, house *housestyle.HouseStyle) {
	y := FloatBaselineY(n, house)
	kind := FloatKind(n)
	text := ""
	if v, ok := n.Label.Get("Text"); ok && v.Kind == concept.KindString {
		text = v.Str
	}

	switch kind {
	case "pedal":
		start, _ := PedalMarks()
		s.Add(&stamp.Graphic{Path: stamp.PathRef{Text: start, RawBounds: stamp.Bounds{Right: 1.2, Top: 0.8}}, Transform: stamp.Translate(0, y)})
	case "octave":
		octaves := 1
		if v, ok := n.Label.Get("Octaves"); ok && v.Kind == concept.KindInt {
			octaves = v.Int
		}
		label := OctaveLabel(octaves)
		s.Add(&stamp.Graphic{Path: stamp.PathRef{Text: label, RawBounds: stamp.Bounds{Right: float64(len(label)) * 0.5, Top: 0.6}}, Transform: stamp.Translate(0, y)})
	default:
		glyph, plain := ExpressionContent(text)
		if glyph != "" {
			s.Add(&stamp.Graphic{Path: stamp.PathRef{Glyph: glyph, RawBounds: stamp.Bounds{Right: 1.0, Top: 1.0}}, Transform: stamp.Translate(0, y)})
		} else {
			s.Add(&stamp.Graphic{Path: stamp.PathRef{Text: plain, RawBounds: stamp.Bounds{Right: float64(len(plain)) * 0.5, Top: 0.6}}, Transform: stamp.Translate(0, y)})
		}
	}
}
