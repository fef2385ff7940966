// Package graph implements the score graph: a directed multigraph of typed,
// attributed nodes and edges (§3.1). Nodes and edges are arena-allocated in
// flat slices and referenced by stable index, never by pointer, per §9's
// guidance and the teacher's own preference for flat indexed arrays
// (PhrasesData [255][][]int, SongData [8][16]int) over pointer graphs.
package graph

import (
	"fmt"

	"github.com/schollz/engrave/internal/concept"
)

// NodeKind tags which variant of node a Node represents (§3.1).
type NodeKind int

const (
	KindIsland NodeKind = iota
	KindToken
	KindNote
	KindFloat
	KindTuplet
	KindAnnotationTree
	KindAnnotation
)

// TokenKind further tags a KindToken node (§3.1).
type TokenKind int

const (
	TokenChord TokenKind = iota
	TokenClef
	TokenKeySignature
	TokenTimeSignature
	TokenBarline
)

// EdgeKind tags which relation an Edge represents (§3.1).
type EdgeKind int

const (
	EdgePartwise EdgeKind = iota
	EdgeInstantwise
	EdgeToken
	EdgeNote
	EdgeVoice
	EdgeBeam
	EdgeTie
	EdgeSlur
	EdgeTuplet
	EdgeSpan
	EdgeFloat
	EdgeAnnotation
)

// NodeIndex and EdgeIndex are stable arena indices starting at 0; NoNode
// (-1) is the "none" value for a node.
type NodeIndex int
type EdgeIndex int

const NoNode NodeIndex = -1

// Label is the node/edge attribute map (§3.1): a mapping from attribute
// key to attribute value, plus an ephemeral scratch State map written only
// during engraving (§3.3).
type Label struct {
	Attrs map[string]concept.Value
	State map[string]any
}

func newLabel() Label {
	return Label{Attrs: map[string]concept.Value{}, State: map[string]any{}}
}

// Get returns an attribute value and whether it was present.
func (l Label) Get(key string) (concept.Value, bool) {
	v, ok := l.Attrs[key]
	return v, ok
}

// Set stores an attribute value.
func (l Label) Set(key string, v concept.Value) { l.Attrs[key] = v }

// StateGet/StateSet access the ephemeral scratch map (§3.3). Only the
// engraver writes these; discarding and recomputing State from the
// immutable structural edges must yield identical output.
func (l Label) StateGet(key string) (any, bool) {
	v, ok := l.State[key]
	return v, ok
}

func (l Label) StateSet(key string, v any) { l.State[key] = v }

// Node is one vertex of the score graph.
type Node struct {
	Index     NodeIndex
	Kind      NodeKind
	TokenKind TokenKind // meaningful only when Kind == KindToken
	Label     Label
}

// Edge is one directed, labeled, multigraph arc.
type Edge struct {
	Index EdgeIndex
	From  NodeIndex
	To    NodeIndex
	Kind  EdgeKind
	Tag   string // disambiguates nested tuplet strands (§3.1 invariant 5) and Span kinds
	Label Label
}

// Graph is the arena: flat node/edge storage plus adjacency indices built
// once structural edges stop changing (§3.1 lifecycle).
type Graph struct {
	Nodes []Node
	Edges []Edge
	Root  NodeIndex

	outByKind map[NodeIndex]map[EdgeKind][]EdgeIndex
	inByKind  map[NodeIndex]map[EdgeKind][]EdgeIndex
}

// New returns an empty graph arena.
func New() *Graph {
	return &Graph{Root: NoNode, outByKind: map[NodeIndex]map[EdgeKind][]EdgeIndex{}, inByKind: map[NodeIndex]map[EdgeKind][]EdgeIndex{}}
}

// AddNode appends a node and returns its stable index.
func (g *Graph) AddNode(kind NodeKind) NodeIndex {
	idx := NodeIndex(len(g.Nodes))
	g.Nodes = append(g.Nodes, Node{Index: idx, Kind: kind, Label: newLabel()})
	return idx
}

// AddToken appends a Token node of the given sub-kind.
func (g *Graph) AddToken(tk TokenKind) NodeIndex {
	idx := g.AddNode(KindToken)
	g.Nodes[idx].TokenKind = tk
	return idx
}

// AddEdge appends a directed edge and indexes it for fast traversal.
func (g *Graph) AddEdge(from, to NodeIndex, kind EdgeKind, tag string) EdgeIndex {
	idx := EdgeIndex(len(g.Edges))
	g.Edges = append(g.Edges, Edge{Index: idx, From: from, To: to, Kind: kind, Tag: tag, Label: newLabel()})
	if g.outByKind[from] == nil {
		g.outByKind[from] = map[EdgeKind][]EdgeIndex{}
	}
	g.outByKind[from][kind] = append(g.outByKind[from][kind], idx)
	if g.inByKind[to] == nil {
		g.inByKind[to] = map[EdgeKind][]EdgeIndex{}
	}
	g.inByKind[to][kind] = append(g.inByKind[to][kind], idx)
	return idx
}

// Node dereferences a NodeIndex. Panics on an out-of-range index: indices
// are only ever produced by this package's own constructors.
func (g *Graph) Node(i NodeIndex) *Node { return &g.Nodes[i] }

func (g *Graph) Edge(i EdgeIndex) *Edge { return &g.Edges[i] }

// Out returns, in insertion order, the edges of a given kind leaving node n
// — the "restartable iterator over (node, edge-label) pairs" of §9,
// materialized as a slice since the graph is small enough per score.
func (g *Graph) Out(n NodeIndex, kind EdgeKind) []*Edge {
	idxs := g.outByKind[n][kind]
	out := make([]*Edge, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, &g.Edges[i])
	}
	return out
}

// In returns the edges of a given kind arriving at node n.
func (g *Graph) In(n NodeIndex, kind EdgeKind) []*Edge {
	idxs := g.inByKind[n][kind]
	out := make([]*Edge, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, &g.Edges[i])
	}
	return out
}

// OutOne returns the first edge of a kind leaving n, or nil.
func (g *Graph) OutOne(n NodeIndex, kind EdgeKind) *Edge {
	es := g.Out(n, kind)
	if len(es) == 0 {
		return nil
	}
	return es[0]
}

// InOne returns the first edge of a kind arriving at n, or nil.
func (g *Graph) InOne(n NodeIndex, kind EdgeKind) *Edge {
	es := g.In(n, kind)
	if len(es) == 0 {
		return nil
	}
	return es[0]
}

// PruneEdges drops every edge for which keep returns false, rebuilding the
// adjacency indices afterward. Used by internal/autocorrect to unlink
// discouraged Instantwise edges (§3.1 invariant 6) before engraving; no
// other package is expected to mutate structural edges once built.
func (g *Graph) PruneEdges(keep func(Edge) bool) {
	kept := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if keep(e) {
			e.Index = EdgeIndex(len(kept))
			kept = append(kept, e)
		}
	}
	g.Edges = kept
	g.outByKind = map[NodeIndex]map[EdgeKind][]EdgeIndex{}
	g.inByKind = map[NodeIndex]map[EdgeKind][]EdgeIndex{}
	for _, e := range g.Edges {
		if g.outByKind[e.From] == nil {
			g.outByKind[e.From] = map[EdgeKind][]EdgeIndex{}
		}
		g.outByKind[e.From][e.Kind] = append(g.outByKind[e.From][e.Kind], e.Index)
		if g.inByKind[e.To] == nil {
			g.inByKind[e.To] = map[EdgeKind][]EdgeIndex{}
		}
		g.inByKind[e.To][e.Kind] = append(g.inByKind[e.To][e.Kind], e.Index)
	}
}

// ClearState discards all ephemeral label State across every node and edge
// — used to verify the §8 property that re-accumulating and re-engraving
// from structural edges alone reproduces identical output.
func (g *Graph) ClearState() {
	for i := range g.Nodes {
		g.Nodes[i].Label.State = map[string]any{}
	}
	for i := range g.Edges {
		g.Edges[i].Label.State = map[string]any{}
	}
}

func (n NodeKind) String() string {
	switch n {
	case KindIsland:
		return "Island"
	case KindToken:
		return "Token"
	case KindNote:
		return "Note"
	case KindFloat:
		return "Float"
	case KindTuplet:
		return "Tuplet"
	case KindAnnotationTree:
		return "AnnotationTree"
	case KindAnnotation:
		return "Annotation"
	}
	return fmt.Sprintf("NodeKind(%d)", int(n))
}

// NodeKindByName is String's inverse, used by internal/xmlio's graph
// import (§6.1), matching internal/concept's ByName lookup convention.
func NodeKindByName(s string) (NodeKind, bool) {
	for _, k := range []NodeKind{KindIsland, KindToken, KindNote, KindFloat, KindTuplet, KindAnnotationTree, KindAnnotation} {
		if k.String() == s {
			return k, true
		}
	}
	return KindIsland, false
}

// TokenKindByName is TokenKind.String's inverse.
func TokenKindByName(s string) (TokenKind, bool) {
	for _, k := range []TokenKind{TokenChord, TokenClef, TokenKeySignature, TokenTimeSignature, TokenBarline} {
		if k.String() == s {
			return k, true
		}
	}
	return TokenChord, false
}

// EdgeKindByName is EdgeKind.String's inverse.
func EdgeKindByName(s string) (EdgeKind, bool) {
	for _, k := range []EdgeKind{EdgePartwise, EdgeInstantwise, EdgeToken, EdgeNote, EdgeVoice, EdgeBeam, EdgeTie, EdgeSlur, EdgeTuplet, EdgeSpan, EdgeFloat, EdgeAnnotation} {
		if k.String() == s {
			return k, true
		}
	}
	return EdgePartwise, false
}

func (t TokenKind) String() string {
	switch t {
	case TokenChord:
		return "Chord"
	case TokenClef:
		return "Clef"
	case TokenKeySignature:
		return "KeySignature"
	case TokenTimeSignature:
		return "TimeSignature"
	case TokenBarline:
		return "Barline"
	}
	return fmt.Sprintf("TokenKind(%d)", int(t))
}

func (e EdgeKind) String() string {
	switch e {
	case EdgePartwise:
		return "Partwise"
	case EdgeInstantwise:
		return "Instantwise"
	case EdgeToken:
		return "Token"
	case EdgeNote:
		return "Note"
	case EdgeVoice:
		return "Voice"
	case EdgeBeam:
		return "Beam"
	case EdgeTie:
		return "Tie"
	case EdgeSlur:
		return "Slur"
	case EdgeTuplet:
		return "Tuplet"
	case EdgeSpan:
		return "Span"
	case EdgeFloat:
		return "Float"
	case EdgeAnnotation:
		return "Annotation"
	}
	return fmt.Sprintf("EdgeKind(%d)", int(e))
}
