package broadcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	indices    []int
	rightEdges []float64
}

func (r *recordingSink) SystemComplete(index int, rightEdge float64) {
	r.indices = append(r.indices, index)
	r.rightEdges = append(r.rightEdges, rightEdge)
}

func TestEmitCallsSink(t *testing.T) {
	var r recordingSink
	Emit(&r, 2, 12.5)
	assert.Equal(t, []int{2}, r.indices)
	assert.Equal(t, []float64{12.5}, r.rightEdges)
}

func TestEmitNilSinkIsNoop(t *testing.T) {
	assert.NotPanics(t, func() { Emit(nil, 0, 1) })
}

func TestOSCSinkNilClientIsNoop(t *testing.T) {
	var s *OSCSink
	assert.NotPanics(t, func() { s.SystemComplete(0, 1) })
}

func TestNewOSCSinkConstructsNonNilClient(t *testing.T) {
	s := NewOSCSink("localhost", 9999)
	assert.NotNil(t, s)
	assert.NotPanics(t, func() { s.SystemComplete(0, 1) })
}
