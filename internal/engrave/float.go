package engrave

import (
	"fmt"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/graph"
	"github.com/schollz/engrave/internal/housestyle"
)

// dynamicGlyphs auto-substitutes common dynamics markings with their
// SMuFL glyph names instead of rendering them as plain text (§4.12).
var dynamicGlyphs = map[string]string{
	"pp":   "dynamicPP",
	"p":    "dynamicPiano",
	"mp":   "dynamicMP",
	"mf":   "dynamicMF",
	"f":    "dynamicForte",
	"ff":   "dynamicFF",
	"sfz":  "dynamicSforzato",
	"fp":   "dynamicFortePiano",
}

// ExpressionContent resolves an expression float's rendered content: a
// SMuFL glyph name for a recognized dynamics token, or the literal text
// as a formatted text block otherwise.
func ExpressionContent(text string) (glyph string, plainText string) {
	if g, ok := dynamicGlyphs[text]; ok {
		return g, ""
	}
	return "", text
}

// PedalMarks are the two glyphs a pedal float spans between (§4.12).
func PedalMarks() (start, end string) { return "Ped.", "*" }

// OctaveLabel names an octave-transposition float by its signed
// octave count (±1 = 8va/8vb, ±2 = 15ma/15mb, ...).
func OctaveLabel(octaves int) string {
	if octaves == 0 {
		return ""
	}
	n := absInt(octaves)*7 + 1
	suffix := "ma"
	if n == 8 {
		suffix = "va"
	}
	if octaves < 0 {
		suffix = suffix[:1] + "b" // 8vb/15mb-style: flip to the "below" variant
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// FloatSpanEnds returns the first and last islands a Span edge covers,
// in insertion order, for the downward hook / dashed-line extent an
// octave transposition or pedal marking draws across.
func FloatSpanEnds(g *graph.Graph, float graph.NodeIndex) (first, last graph.NodeIndex) {
	spans := g.Out(float, graph.EdgeSpan)
	if len(spans) == 0 {
		return graph.NoNode, graph.NoNode
	}
	return spans[0].To, spans[len(spans)-1].To
}

// FloatPlacement reads a float node's Placement attribute, defaulting to
// Above.
func FloatPlacement(n *graph.Node) concept.Placement {
	if v, ok := n.Label.Get("Placement"); ok && v.Kind == concept.KindString && v.Str == "below" {
		return concept.PlacementBelow
	}
	return concept.PlacementAbove
}

// FloatKind reads a float node's Kind attribute ("pedal", "octave", or ""
// for a plain expression marking).
func FloatKind(n *graph.Node) string {
	if v, ok := n.Label.Get("Kind"); ok && v.Kind == concept.KindString {
		return v.Str
	}
	return ""
}

// FloatBaselineY is the vertical offset engraveFloat places a float's own
// glyph at (§4.12); exported so internal/typeset's cross-island pass can
// place the span's end mark at the same height.
func FloatBaselineY(n *graph.Node, house *housestyle.HouseStyle) float64 {
	sign := 1.0
	if FloatPlacement(n) == concept.PlacementBelow {
		sign = -1
	}
	return positionUnit(6, house) * sign
}
