// Package stamp implements the §3.4 stamp model: an ordered sequence of
// positioned graphics plus a context transform, the engraver's sole
// output. A stamp's fill color is a real github.com/lucasb-eyer/go-colorful
// Color rather than a raw RGB triple — the pack's one color library, and
// the teacher's own choice for painting waveform/UI state in
// internal/views.
package stamp

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Affine is a 2-D affine transform [a b tx; c d ty].
type Affine struct {
	A, B, C, D, Tx, Ty float64
}

// Identity is the no-op transform.
func Identity() Affine { return Affine{A: 1, D: 1} }

// Translate returns a transform that shifts by (dx, dy).
func Translate(dx, dy float64) Affine { return Affine{A: 1, D: 1, Tx: dx, Ty: dy} }

// Multiply composes two transforms: result applies `o` first, then the receiver.
func (t Affine) Multiply(o Affine) Affine {
	return Affine{
		A: t.A*o.A + t.B*o.C, B: t.A*o.B + t.B*o.D,
		C: t.C*o.A + t.D*o.C, D: t.C*o.B + t.D*o.D,
		Tx: t.A*o.Tx + t.B*o.Ty + t.Tx,
		Ty: t.C*o.Tx + t.D*o.Ty + t.Ty,
	}
}

// Apply transforms a point.
func (t Affine) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.B*y + t.Tx, t.C*x + t.D*y + t.Ty
}

// Bounds is an axis-aligned bounding box; an empty Bounds has Left > Right.
type Bounds struct {
	Left, Bottom, Right, Top float64
}

func EmptyBounds() Bounds { return Bounds{Left: 1, Right: 0} }

func (b Bounds) IsEmpty() bool { return b.Left > b.Right }

func (b Bounds) Width() float64  { return b.Right - b.Left }
func (b Bounds) Height() float64 { return b.Top - b.Bottom }

// Union returns the smallest Bounds containing both operands.
func (b Bounds) Union(o Bounds) Bounds {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return Bounds{
		Left:   min(b.Left, o.Left),
		Bottom: min(b.Bottom, o.Bottom),
		Right:  max(b.Right, o.Right),
		Top:    max(b.Top, o.Top),
	}
}

// Shift translates a Bounds by (dx, dy).
func (b Bounds) Shift(dx, dy float64) Bounds {
	if b.IsEmpty() {
		return b
	}
	return Bounds{Left: b.Left + dx, Bottom: b.Bottom + dy, Right: b.Right + dx, Top: b.Top + dy}
}

// Transform applies an affine transform to a Bounds' four corners and
// returns their bounding box (§3.4 "Bounds are obtained by transforming
// the path bounds").
func (b Bounds) Transform(t Affine) Bounds {
	if b.IsEmpty() {
		return b
	}
	xs := [4]float64{}
	ys := [4]float64{}
	corners := [4][2]float64{{b.Left, b.Bottom}, {b.Left, b.Top}, {b.Right, b.Bottom}, {b.Right, b.Top}}
	for i, c := range corners {
		xs[i], ys[i] = t.Apply(c[0], c[1])
	}
	out := Bounds{Left: xs[0], Right: xs[0], Bottom: ys[0], Top: ys[0]}
	for i := 1; i < 4; i++ {
		out.Left = min(out.Left, xs[i])
		out.Right = max(out.Right, xs[i])
		out.Bottom = min(out.Bottom, ys[i])
		out.Top = max(out.Top, ys[i])
	}
	return out
}

// PathRef is an opaque reference to a vector-graphics path, glyph, or text
// layout owned by an out-of-scope collaborator (§1 "vector-graphics
// primitives ... are external collaborators"). The engraving core never
// inspects path geometry directly, only its bounds.
type PathRef struct {
	Glyph    string // SMuFL glyph name, when this graphic is a single glyph
	Text     string // formatted text, when this graphic is a text layout
	Shared   bool   // true if Glyph/Text references a shared, not owned, resource
	RawBounds Bounds // untransformed path bounds
}

// Graphic is one positioned entry in a stamp (§3.4 StampGraphic): an owned
// or shared path/text, a fill color, a stroke width (0 = fill), an affine
// transform, a back-pointer to the originating node for selection, and a
// cached painted bounds.
type Graphic struct {
	Path        PathRef
	Fill        colorful.Color
	StrokeWidth float64
	Transform   Affine
	Context     int // graph.NodeIndex of the originating node, for selection

	boundsCache   Bounds
	boundsCached  bool
}

// Bounds returns the transformed, painted bounds, computed once and cached.
func (g *Graphic) Bounds() Bounds {
	if !g.boundsCached {
		g.boundsCache = g.Path.RawBounds.Transform(g.Transform)
		g.boundsCached = true
	}
	return g.boundsCache
}

// alarmColor is the §7 "red-colored element" degradation color.
var alarmColor = colorful.Color{R: 1, G: 0, B: 0}

// AlarmColor returns the fixed color used for degraded/placeholder content.
func AlarmColor() colorful.Color { return alarmColor }

// Stamp is the ordered sequence of graphics one island emits (§3.4), plus
// the context transform that places the island on the page.
type Stamp struct {
	Context   Affine
	Graphics  []*Graphic
}

func New() *Stamp { return &Stamp{Context: stampIdentity()} }

func stampIdentity() Affine { return Identity() }

// Add appends a graphic and returns it for further configuration.
func (s *Stamp) Add(g *Graphic) *Graphic {
	s.Graphics = append(s.Graphics, g)
	return g
}

// Bounds returns the union of every graphic's bounds, in the stamp's own
// (pre-Context) coordinate space.
func (s *Stamp) Bounds() Bounds {
	b := EmptyBounds()
	for _, g := range s.Graphics {
		b = b.Union(g.Bounds())
	}
	return b
}

// Shift translates every graphic in the stamp by (dx, dy).
func (s *Stamp) Shift(dx, dy float64) {
	for _, g := range s.Graphics {
		g.Transform = Translate(dx, dy).Multiply(g.Transform)
		g.boundsCached = false
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
