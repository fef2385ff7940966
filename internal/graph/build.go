package graph

import "github.com/schollz/engrave/internal/concept"

// NewIsland appends an island node and links it partwise after `after`
// (NoNode for the first island of a part).
func (g *Graph) NewIsland(after NodeIndex) NodeIndex {
	idx := g.AddNode(KindIsland)
	if after != NoNode {
		g.AddEdge(after, idx, EdgePartwise, "")
	}
	return idx
}

// LinkInstantwise records that `lower` is the next staff down from `upper`
// at the same instant (§3.1 Instantwise edges).
func (g *Graph) LinkInstantwise(upper, lower NodeIndex) EdgeIndex {
	return g.AddEdge(upper, lower, EdgeInstantwise, "")
}

// AddChord appends a Chord token owned by island, with a NoteValue
// attribute, and links it via a Token edge (§3.1 invariant 2).
func (g *Graph) AddChord(island NodeIndex, value concept.Duration) NodeIndex {
	chord := g.AddToken(TokenChord)
	g.Node(chord).Label.Set("NoteValue", concept.OfRational(value.Rat))
	g.AddEdge(island, chord, EdgeToken, "")
	return chord
}

// AddNote appends a Note owned by chord, carrying a Pitch attribute.
func (g *Graph) AddNote(chord NodeIndex, p concept.Pitch) NodeIndex {
	note := g.AddNode(KindNote)
	g.Node(note).Label.Set("Pitch", concept.OfString(p.String()))
	g.AddEdge(chord, note, EdgeNote, "")
	return note
}

// AddClef appends a Clef token owned by island.
func (g *Graph) AddClef(island NodeIndex, c concept.Clef) NodeIndex {
	tok := g.AddToken(TokenClef)
	g.Node(tok).Label.Set("Clef", concept.OfString(c.Name))
	g.AddEdge(island, tok, EdgeToken, "")
	return tok
}

// AddKeySignature appends a KeySignature token owned by island.
func (g *Graph) AddKeySignature(island NodeIndex, k concept.KeySignature) NodeIndex {
	tok := g.AddToken(TokenKeySignature)
	g.Node(tok).Label.Set("Sharps", concept.OfInt(k.Sharps))
	g.AddEdge(island, tok, EdgeToken, "")
	return tok
}

// AddBarline appends a Barline token owned by island.
func (g *Graph) AddBarline(island NodeIndex, style concept.BarlineStyle) NodeIndex {
	tok := g.AddToken(TokenBarline)
	g.Node(tok).Label.Set("Style", concept.OfString(style.Name))
	g.AddEdge(island, tok, EdgeToken, "")
	return tok
}

// LinkVoice marks that chord `to` continues the same voice strand as `from`
// (§3.1 invariant 3: `from` must precede `to` in partwise order).
func (g *Graph) LinkVoice(from, to NodeIndex) EdgeIndex {
	return g.AddEdge(from, to, EdgeVoice, "")
}

// LinkBeam marks a shared beam group between two partwise-adjacent chords.
func (g *Graph) LinkBeam(from, to NodeIndex) EdgeIndex {
	return g.AddEdge(from, to, EdgeBeam, "")
}

// SetStemDirection attaches a manual StemDirection attribute to chord
// ("up" or "down"), overriding §4.2's position-based rule (context
// override (a)).
func (g *Graph) SetStemDirection(chord NodeIndex, dir concept.StemDirection) {
	g.Node(chord).Label.Set("StemDirection", concept.OfString(dir.String()))
}

// LinkTie ties two notes of (subject to override accidentals) equal pitch.
func (g *Graph) LinkTie(from, to NodeIndex) EdgeIndex {
	return g.AddEdge(from, to, EdgeTie, "")
}

// AddFloat appends a Float node (a pedal mark, octave transposition, or
// expression/dynamics marking, §4.12) owned by origin, with a span that
// covers origin itself; SpanFloatTo extends it. kind is "pedal", "octave",
// or "" for a plain expression marking.
func (g *Graph) AddFloat(origin NodeIndex, kind, text string) NodeIndex {
	f := g.AddNode(KindFloat)
	g.Node(f).Label.Set("Kind", concept.OfString(kind))
	g.Node(f).Label.Set("Text", concept.OfString(text))
	g.AddEdge(origin, f, EdgeFloat, "")
	g.AddEdge(f, origin, EdgeSpan, "")
	return f
}

// SpanFloatTo extends a float's span to also cover island, in partwise
// order (§4.12: a pedal or octave marking's span grows as later islands
// fall under its bracket).
func (g *Graph) SpanFloatTo(float, island NodeIndex) EdgeIndex {
	return g.AddEdge(float, island, EdgeSpan, "")
}

// Tokens returns the Token-kind nodes owned by an island, in insertion
// (and therefore engraving) order.
func (g *Graph) Tokens(island NodeIndex) []NodeIndex {
	var out []NodeIndex
	for _, e := range g.Out(island, EdgeToken) {
		out = append(out, e.To)
	}
	return out
}

// Chords returns just the Chord-kind tokens owned by an island.
func (g *Graph) Chords(island NodeIndex) []NodeIndex {
	var out []NodeIndex
	for _, t := range g.Tokens(island) {
		if g.Node(t).TokenKind == TokenChord {
			out = append(out, t)
		}
	}
	return out
}

// Notes returns the notes owned by a chord, in insertion order.
func (g *Graph) Notes(chord NodeIndex) []NodeIndex {
	var out []NodeIndex
	for _, e := range g.Out(chord, EdgeNote) {
		out = append(out, e.To)
	}
	return out
}

// NextPartwise returns the next island in partwise order, or NoNode.
func (g *Graph) NextPartwise(island NodeIndex) NodeIndex {
	if e := g.OutOne(island, EdgePartwise); e != nil {
		return e.To
	}
	return NoNode
}

// InstantwiseBelow returns the islands directly below this one at the
// same instant, in top-down encounter order.
func (g *Graph) InstantwiseBelow(island NodeIndex) []NodeIndex {
	var out []NodeIndex
	for _, e := range g.Out(island, EdgeInstantwise) {
		out = append(out, e.To)
	}
	return out
}
