package neat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestNewGenomeIsMinimalAndDAG(t *testing.T) {
	g := NewGenome(2, 1, newTestRNG())

	assert.Len(t, g.Nodes, 3)
	assert.Len(t, g.Conns, 2)

	order, ok := g.NodeOrder()
	require.True(t, ok)
	assert.Len(t, order, 3)

	for i := 0; i < g.Inputs; i++ {
		assert.Equal(t, Input, g.NodeKind(i))
		assert.Equal(t, ActivationInput, g.Nodes[i].Activation)
	}
}

func TestNoConnectionIntoInputOrOutOfOutput(t *testing.T) {
	g := NewGenome(3, 2, newTestRNG())
	rng := newTestRNG()
	for i := 0; i < 50; i++ {
		Mutate(g, NewMutationTable(defaultMutationKinds()), rng)
	}
	for _, c := range g.Conns {
		if c.Disabled {
			continue
		}
		assert.NotEqual(t, Input, g.NodeKind(c.To), "no enabled edge may end at an input")
		assert.NotEqual(t, Output, g.NodeKind(c.From), "no enabled edge may start at an output")
	}
}

func TestAtMostOneConnectionPerOrderedPair(t *testing.T) {
	g := NewGenome(2, 1, newTestRNG())
	rng := newTestRNG()
	for i := 0; i < 50; i++ {
		mutateAddConnection(g, rng)
	}
	seen := map[[2]int]bool{}
	for _, c := range g.Conns {
		key := [2]int{c.From, c.To}
		assert.False(t, seen[key], "duplicate connection for pair %v", key)
		seen[key] = true
	}
}

func TestCanConnectRejectsCycles(t *testing.T) {
	g := NewGenome(1, 1, newTestRNG())
	rng := newTestRNG()
	h := g.AddNode(rng)
	require.True(t, g.AddConnection(0, h, rng))
	require.True(t, g.AddConnection(h, 1, rng))

	assert.False(t, g.CanConnect(1, h), "would close a cycle through the output")
	assert.False(t, g.CanConnect(h, h), "self-loops are never allowed")
}

func TestDisableAndReenablePreservesWeight(t *testing.T) {
	g := NewGenome(2, 1, newTestRNG())
	rng := newTestRNG()
	originalWeight := g.Conns[0].Weight
	g.DisableConnection(0)
	assert.True(t, g.Conns[0].Disabled)

	from, to := g.Conns[0].From, g.Conns[0].To
	ok := g.AddConnection(from, to, rng)
	require.True(t, ok)
	assert.False(t, g.Conns[0].Disabled)
	assert.Equal(t, originalWeight, g.Conns[0].Weight)
}

func TestInnovationNumberIsBijective(t *testing.T) {
	seen := map[int64][2]int{}
	for from := 0; from < 20; from++ {
		for to := 0; to < 20; to++ {
			n := InnovationNumber(from, to)
			if prior, ok := seen[n]; ok {
				assert.Equal(t, [2]int{from, to}, prior, "innovation collision")
			}
			seen[n] = [2]int{from, to}
		}
	}
}
