// Package xmlio implements the two external graph formats the engraving
// core reads and writes directly (§6.1-§6.2): the lossless graph XML
// exchange format and the line-oriented shorthand importer. MusicXML
// import (§6.3) is a declared Non-goal the core only leaves an error kind
// for (internal/engraveerr.UnsupportedFeature) — no example in the pack
// supplies a MusicXML parser to ground one on.
package xmlio

import (
	"encoding/xml"
	"fmt"
	"math/big"
	"strconv"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/graph"
)

// attributeKinds is the fixed, known schema of attribute keys this
// package's graph builders (internal/graph/build.go) and engravers
// (internal/engrave) write, each mapped to the concept.Kind it must
// round-trip as. §6.1 promises a lossless round-trip; keeping this table
// in one place next to Export/Import is what makes that promise
// checkable. An attribute key outside this table degrades to a plain
// string (concept.KindString) on import, which is the correct behavior
// for any future attribute this table hasn't caught up with yet.
var attributeKinds = map[string]concept.Kind{
	"NoteValue": concept.KindRational,
	"Value":     concept.KindRational, // tuplet ratio (internal/engrave/tuplet.go)
	"Dots":      concept.KindInt,
	"Sharps":    concept.KindInt,
	"Octaves":   concept.KindInt,
	"Pitch":     concept.KindString,
	"Clef":      concept.KindString,
	"Style":     concept.KindString,
	"Kind":      concept.KindString, // float kind: "pedal", "octave", ...
	"Text":      concept.KindString,
	"Placement": concept.KindString,
}

// xmlGraph is the root element: a flat node list, each carrying its own
// outgoing edges as nested elements (§6.1's example layout).
type xmlGraph struct {
	XMLName xml.Name  `xml:"graph"`
	Nodes   []xmlNode `xml:"node"`
}

type xmlNode struct {
	ID        string     `xml:"id,attr"`
	Root      string     `xml:"root,attr,omitempty"`
	Type      string     `xml:"Type,attr"`
	TokenKind string     `xml:"TokenKind,attr,omitempty"`
	Attrs     []xml.Attr `xml:",any,attr"`
	Edges     []xmlEdge  `xml:"edge"`
}

type xmlEdge struct {
	To   string `xml:"to,attr"`
	Type string `xml:"Type,attr"`
	Tag  string `xml:"Tag,attr,omitempty"`
}

func encodeValue(v concept.Value) string { return v.String() }

func decodeValue(key, s string) (concept.Value, error) {
	kind, ok := attributeKinds[key]
	if !ok {
		return concept.OfString(s), nil
	}
	switch kind {
	case concept.KindRational:
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return concept.Value{}, fmt.Errorf("xmlio: invalid rational %q for attribute %q", s, key)
		}
		return concept.OfRational(r), nil
	case concept.KindInt:
		i, err := strconv.Atoi(s)
		if err != nil {
			return concept.Value{}, fmt.Errorf("xmlio: invalid int %q for attribute %q: %w", s, key, err)
		}
		return concept.OfInt(i), nil
	case concept.KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return concept.Value{}, fmt.Errorf("xmlio: invalid bool %q for attribute %q: %w", s, key, err)
		}
		return concept.OfBool(b), nil
	default:
		return concept.OfString(s), nil
	}
}

// Export serializes g into the §6.1 graph XML format. Node ids are the
// node's own arena index (decimal), not the spec's illustrative
// "part,instant[,pitch]" coordinate scheme — recovering that scheme on
// import would require re-running internal/geometry.Parse against
// partially-built structural edges, which is circular; a stable arena
// index already satisfies "lossless round-trip" without it.
func Export(g *graph.Graph) ([]byte, error) {
	out := xmlGraph{Nodes: make([]xmlNode, len(g.Nodes))}

	for i, n := range g.Nodes {
		xn := xmlNode{
			ID:   strconv.Itoa(i),
			Type: n.Kind.String(),
		}
		if NodeIndex(i) == g.Root {
			xn.Root = "root"
		}
		if n.Kind == graph.KindToken {
			xn.TokenKind = n.TokenKind.String()
		}
		for key, v := range n.Label.Attrs {
			xn.Attrs = append(xn.Attrs, xml.Attr{Name: xml.Name{Local: key}, Value: encodeValue(v)})
		}
		out.Nodes[i] = xn
	}

	for _, e := range g.Edges {
		xe := xmlEdge{To: strconv.Itoa(int(e.To)), Type: e.Kind.String(), Tag: e.Tag}
		out.Nodes[e.From].Edges = append(out.Nodes[e.From].Edges, xe)
	}

	return xml.MarshalIndent(out, "", "  ")
}

// NodeIndex is graph.NodeIndex, aliased locally so Export reads as plain
// arithmetic rather than a cross-package cast at every comparison.
type NodeIndex = graph.NodeIndex

// Import parses §6.1 graph XML back into a fresh *graph.Graph. Nodes
// must appear in ascending id order starting at 0 (Export always writes
// them that way) since the arena assigns indices by append order; a gap
// or reordering is rejected rather than silently producing a graph whose
// ids don't match the file.
func Import(data []byte) (*graph.Graph, error) {
	var in xmlGraph
	if err := xml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("xmlio: %w", err)
	}

	g := graph.New()
	rootID := -1

	for i, xn := range in.Nodes {
		id, err := strconv.Atoi(xn.ID)
		if err != nil || id != i {
			return nil, fmt.Errorf("xmlio: node %q out of order (want id %d)", xn.ID, i)
		}
		kind, ok := graph.NodeKindByName(xn.Type)
		if !ok {
			return nil, fmt.Errorf("xmlio: unknown node Type %q", xn.Type)
		}
		idx := g.AddNode(kind)
		if kind == graph.KindToken {
			tk, ok := graph.TokenKindByName(xn.TokenKind)
			if !ok {
				return nil, fmt.Errorf("xmlio: unknown TokenKind %q on node %q", xn.TokenKind, xn.ID)
			}
			g.Node(idx).TokenKind = tk
		}
		for _, a := range xn.Attrs {
			v, err := decodeValue(a.Name.Local, a.Value)
			if err != nil {
				return nil, err
			}
			g.Node(idx).Label.Set(a.Name.Local, v)
		}
		if xn.Root != "" {
			rootID = i
		}
	}

	if rootID >= 0 {
		g.Root = graph.NodeIndex(rootID)
	}

	for from, xn := range in.Nodes {
		for _, xe := range xn.Edges {
			to, err := strconv.Atoi(xe.To)
			if err != nil {
				return nil, fmt.Errorf("xmlio: invalid edge target %q", xe.To)
			}
			kind, ok := graph.EdgeKindByName(xe.Type)
			if !ok {
				return nil, fmt.Errorf("xmlio: unknown edge Type %q", xe.Type)
			}
			g.AddEdge(graph.NodeIndex(from), graph.NodeIndex(to), kind, xe.Tag)
		}
	}

	return g, nil
}
