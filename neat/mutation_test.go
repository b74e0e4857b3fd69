package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutationTablePicksOnlyPositiveWeightKinds(t *testing.T) {
	weights := map[MutationKind]float64{
		MutateAddNode: 1,
		MutateWeight:  0, // excluded
	}
	table := NewMutationTable(weights)
	rng := newTestRNG()
	for i := 0; i < 100; i++ {
		k := table.Pick(rng)
		assert.Equal(t, MutateAddNode, k)
	}
}

func TestMutateNeverBreaksDAGInvariant(t *testing.T) {
	rng := newTestRNG()
	table := NewMutationTable(defaultMutationKinds())
	for trial := 0; trial < 20; trial++ {
		g := NewGenome(3, 2, rng)
		for i := 0; i < 100; i++ {
			Mutate(g, table, rng)
			_, ok := g.NodeOrder()
			require.True(t, ok, "genome became cyclic after a mutation")
		}
	}
}

func TestMutateAddNodeSplitsConnection(t *testing.T) {
	g := NewGenome(1, 1, newTestRNG())
	rng := newTestRNG()
	before := len(g.Nodes)
	mutateAddNode(g, rng)
	assert.Equal(t, before+1, len(g.Nodes))
	assert.True(t, g.Conns[0].Disabled, "original connection split by add-node must be disabled")
}

func TestMutateWeightClampsToRange(t *testing.T) {
	g := NewGenome(1, 1, newTestRNG())
	rng := newTestRNG()
	for i := 0; i < 200; i++ {
		mutateWeight(g, rng)
		assert.GreaterOrEqual(t, g.Conns[0].Weight, -1.0)
		assert.LessOrEqual(t, g.Conns[0].Weight, 1.0)
	}
}
