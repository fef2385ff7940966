// Package autocorrect implements the pre-engrave graph repair passes
// named in §3.1's lifecycle comment ("mutated by pre-engrave filters:
// barline repair, beaming, dot propagation") plus invariant 6's
// Instantwise pruning. It runs once, after a graph is built by an
// importer or constructor calls and before geometry.Parse/engraving see
// it, and only ever touches structural edges and the handful of
// attributes engraving itself reads — never label State (§3.3 is
// engraving's own scratch space).
//
// Grounded on the teacher's internal/input/helpers.go idiom: read the
// current value, compute a repaired one, log.Printf the change, write it
// back (modifyValueWithBounds's get/validate/clamp/set/log shape) —
// except here the "value" is graph structure, not a tracker cell.
package autocorrect

import (
	"log"
	"math/big"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/graph"
	"github.com/schollz/engrave/internal/housestyle"
)

// beamableCeiling is the loosest duration still eligible for beaming: an
// eighth note or shorter, matching engrave's own flag/beam boundary
// (internal/engrave/beam.go; concept.FlagsGivenDuration's eighth-note cutoff).
var beamableCeiling = concept.NewDuration(1, 8)

// Run applies every repair pass over the whole graph, in this order: dot
// propagation, final-barline repair, beaming, then Instantwise pruning. house currently only distinguishes passes that could
// be made house-style-sensitive later (none are yet); it's threaded
// through so a future beaming-by-meter rule has somewhere to read from
// without changing every call site.
func Run(g *graph.Graph, house *housestyle.HouseStyle) {
	NormalizeDots(g)
	RepairFinalBarlines(g)
	AutoBeam(g, house)
	PruneRedundantInstantwise(g)
}

// NormalizeDots is the "dot propagation" pass: a chord whose NoteValue is
// an irregular fraction like 3/8 is rewritten to the (base, Dots) pair
// engraving and internal/midi actually read — NoteValue=1/4, Dots=1 — so
// every downstream consumer can assume NoteValue is always a plain
// negative power of two. Chords that already carry an explicit Dots
// attribute (importer-specified) are left untouched.
func NormalizeDots(g *graph.Graph) {
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.Kind != graph.KindToken || n.TokenKind != graph.TokenChord {
			continue
		}
		if _, ok := n.Label.Get("Dots"); ok {
			continue
		}
		v, ok := n.Label.Get("NoteValue")
		if !ok || v.Kind != concept.KindRational {
			continue
		}
		dotted := concept.Duration{Rat: v.Rat}
		base, dots, ok := decomposeDotted(dotted)
		if !ok {
			continue
		}
		n.Label.Set("Dots", concept.OfInt(dots))
		if dots == 0 {
			continue
		}
		n.Label.Set("NoteValue", concept.OfRational(base.Rat))
		log.Printf("autocorrect: chord %d NoteValue %s normalized to base %s, Dots %d", n.Index, dotted.Rat.RatString(), base.Rat.RatString(), dots)
	}
}

// decomposeDotted finds the smallest dots count in [0,3] and power-of-two
// base duration such that base*(2-2^-dots) == dotted, using
// concept.UndottedDuration's inverse relationship. ok is false when no
// such decomposition exists within 3 dots (an irregular or
// already-tuplet-scaled value outside this pass's scope).
func decomposeDotted(dotted concept.Duration) (base concept.Duration, dots int, ok bool) {
	for d := 0; d <= 3; d++ {
		candidate := concept.UndottedDuration(dotted, d)
		if isPowerOfTwoReciprocalOrWhole(candidate) {
			return candidate, d, true
		}
	}
	return concept.Duration{}, 0, false
}

func isPowerOfTwoReciprocalOrWhole(d concept.Duration) bool {
	num, den := d.Rat.Num(), d.Rat.Denom()
	one := big.NewInt(1)
	if num.Cmp(one) == 0 {
		return isPowerOfTwo(den)
	}
	if den.Cmp(one) == 0 {
		return isPowerOfTwo(num)
	}
	return false
}

func isPowerOfTwo(n *big.Int) bool {
	if n.Sign() <= 0 {
		return false
	}
	x := new(big.Int).Set(n)
	one := big.NewInt(1)
	for x.Cmp(one) > 0 {
		if x.Bit(0) != 0 {
			return false
		}
		x.Rsh(x, 1)
	}
	return true
}

// RepairFinalBarlines is the "barline repair" pass: every partwise chain
// (one per part) that doesn't already end on an island owning a Barline
// token gets a concept.BarlineFinal appended to its last island, so the
// typesetter (§4.14, internal/typeset's own barline-repetition pass) is
// never handed a part with no closing barline at all.
func RepairFinalBarlines(g *graph.Graph) {
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.Kind != graph.KindIsland {
			continue
		}
		idx := graph.NodeIndex(i)
		if g.InOne(idx, graph.EdgePartwise) != nil {
			continue // not the first island of a part's chain
		}
		last := idx
		for next := g.NextPartwise(last); next != graph.NoNode; next = g.NextPartwise(last) {
			last = next
		}
		if hasBarline(g, last) {
			continue
		}
		g.AddBarline(last, concept.BarlineFinal)
		log.Printf("autocorrect: part ending at island %d had no closing barline, inserted BarlineFinal", last)
	}
}

func hasBarline(g *graph.Graph, island graph.NodeIndex) bool {
	for _, t := range g.Tokens(island) {
		if g.Node(t).TokenKind == graph.TokenBarline {
			return true
		}
	}
	return false
}

// AutoBeam is the "beaming" pass: it links runs of two or more
// consecutive eighth-note-or-shorter chords within a part's own partwise
// chain into a shared beam group (graph.LinkBeam), breaking the run at a
// barline, a chord too long to beam, or a chord that already participates
// in an explicit Beam edge from the importer (which is left untouched —
// this pass only fills in gaps, it never second-guesses an explicit
// beam). house is accepted for a future house-style-conditioned beaming
// rule; the current rule is meter-agnostic.
func AutoBeam(g *graph.Graph, house *housestyle.HouseStyle) {
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.Kind != graph.KindIsland {
			continue
		}
		idx := graph.NodeIndex(i)
		if g.InOne(idx, graph.EdgePartwise) != nil {
			continue // start beaming from each part's first island only
		}
		autoBeamPart(g, idx)
	}
}

func autoBeamPart(g *graph.Graph, start graph.NodeIndex) {
	var run []graph.NodeIndex

	flush := func() {
		if len(run) < 2 {
			run = run[:0]
			return
		}
		for i := 0; i+1 < len(run); i++ {
			g.LinkBeam(run[i], run[i+1])
		}
		log.Printf("autocorrect: auto-beamed chords %v", run)
		run = run[:0]
	}

	for island := start; island != graph.NoNode; island = g.NextPartwise(island) {
		for _, chord := range g.Chords(island) {
			if alreadyBeamed(g, chord) {
				flush()
				continue
			}
			dur, ok := chordBeamableDuration(g, chord)
			if !ok || dur.Cmp(beamableCeiling) > 0 {
				flush()
				continue
			}
			run = append(run, chord)
		}
		if hasBarline(g, island) {
			flush() // a barline always ends the beam group that precedes it
		}
	}
	flush()
}

func alreadyBeamed(g *graph.Graph, chord graph.NodeIndex) bool {
	return g.OutOne(chord, graph.EdgeBeam) != nil || g.InOne(chord, graph.EdgeBeam) != nil
}

// chordBeamableDuration reads a chord's written (pre-tuplet) duration —
// NoteValue expanded by Dots, exactly as internal/midi's
// chordWrittenDuration does — since beaming groups by notated value, not
// by tuplet-scaled performed duration.
func chordBeamableDuration(g *graph.Graph, chord graph.NodeIndex) (concept.Duration, bool) {
	v, ok := g.Node(chord).Label.Get("NoteValue")
	if !ok || v.Kind != concept.KindRational {
		return concept.Duration{}, false
	}
	base := concept.Duration{Rat: v.Rat}
	dots := 0
	if dv, ok := g.Node(chord).Label.Get("Dots"); ok && dv.Kind == concept.KindInt {
		dots = dv.Int
	}
	pow := new(big.Int).Lsh(big.NewInt(1), uint(dots))
	num := new(big.Int).Lsh(big.NewInt(1), uint(dots+1))
	num.Sub(num, big.NewInt(1))
	factor := new(big.Rat).SetFrac(num, pow)
	return concept.Duration{Rat: new(big.Rat).Mul(base.Rat, factor)}, true
}

// PruneRedundantInstantwise enforces invariant 6. geometry.Parse only ever
// follows the *first* outgoing Instantwise edge of a node
// (InstantwiseBelow(node)[0]); a second or later one is dead weight the
// parser never reaches. The spec calls this out specifically for
// chord-owning islands — an island with real musical content is where a
// careless importer is most likely to have left a stale duplicate link
// behind (e.g. re-linking after an edit) — so this pass only prunes
// beyond-the-first Instantwise edges on islands that own at least one
// chord, leaving scaffolding islands with no chords untouched.
func PruneRedundantInstantwise(g *graph.Graph) {
	redundant := map[graph.EdgeIndex]bool{}
	for i := range g.Nodes {
		island := graph.NodeIndex(i)
		if g.Nodes[i].Kind != graph.KindIsland || len(g.Chords(island)) == 0 {
			continue
		}
		out := g.Out(island, graph.EdgeInstantwise)
		if len(out) < 2 {
			continue
		}
		for _, e := range out[1:] {
			redundant[e.Index] = true
		}
	}
	if len(redundant) == 0 {
		return
	}
	g.PruneEdges(func(e graph.Edge) bool { return !redundant[e.Index] })
	log.Printf("autocorrect: unlinked %d redundant Instantwise edge(s) beyond the first on chord-owning islands", len(redundant))
}
