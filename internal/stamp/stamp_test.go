package stamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundsUnion(t *testing.T) {
	a := Bounds{Left: 0, Bottom: 0, Right: 1, Top: 1}
	b := Bounds{Left: 2, Bottom: -1, Right: 3, Top: 0.5}
	u := a.Union(b)
	assert.Equal(t, Bounds{Left: 0, Bottom: -1, Right: 3, Top: 1}, u)
}

func TestBoundsUnionWithEmpty(t *testing.T) {
	a := EmptyBounds()
	b := Bounds{Left: 1, Bottom: 1, Right: 2, Top: 2}
	assert.Equal(t, b, a.Union(b))
	assert.Equal(t, b, b.Union(a))
}

func TestGraphicBoundsTransformed(t *testing.T) {
	g := &Graphic{
		Path:      PathRef{RawBounds: Bounds{Left: 0, Bottom: 0, Right: 1, Top: 2}},
		Transform: Translate(5, 1),
	}
	b := g.Bounds()
	assert.Equal(t, Bounds{Left: 5, Bottom: 1, Right: 6, Top: 3}, b)
}

func TestStampBoundsAndShift(t *testing.T) {
	s := New()
	s.Add(&Graphic{Path: PathRef{RawBounds: Bounds{Left: 0, Bottom: 0, Right: 1, Top: 1}}})
	s.Add(&Graphic{Path: PathRef{RawBounds: Bounds{Left: 2, Bottom: 2, Right: 3, Top: 3}}})

	b := s.Bounds()
	assert.Equal(t, Bounds{Left: 0, Bottom: 0, Right: 3, Top: 3}, b)

	s.Shift(10, 0)
	b2 := s.Bounds()
	assert.Equal(t, Bounds{Left: 10, Bottom: 0, Right: 13, Top: 3}, b2)
}
