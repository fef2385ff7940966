package housestyle

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/schollz/engrave/internal/concept"
	"github.com/schollz/engrave/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAndOverride(t *testing.T) {
	h := Default()
	assert.Equal(t, 1.0, h.Get(SpaceHeight))

	h2 := h.Override(map[string]float64{SpaceHeight: 2.0})
	assert.Equal(t, 2.0, h2.Get(SpaceHeight))
	assert.Equal(t, 1.0, h.Get(SpaceHeight), "override must not mutate the receiver")
}

func TestResolveIslandOverride(t *testing.T) {
	h := Default()
	g := graph.New()
	island := g.AddNode(graph.KindIsland)
	g.Node(island).Label.Set("Property."+StemWidth, concept.OfRational(big.NewRat(1, 2)))

	assert.Equal(t, 0.5, h.Resolve(g.Node(island), StemWidth))
	assert.Equal(t, h.Get(LedgerLineExtension), h.Resolve(g.Node(island), LedgerLineExtension))
}

func TestLoadSaveRoundTrip(t *testing.T) {
	h := Default().Override(map[string]float64{SpaceHeight: 1.5})
	path := filepath.Join(t.TempDir(), "house.json")
	require.NoError(t, Save(path, h))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, loaded.Get(SpaceHeight))
	assert.Equal(t, h.Get(StemWidth), loaded.Get(StemWidth))
}
