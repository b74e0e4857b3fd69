package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceIsZeroForIdenticalGenomes(t *testing.T) {
	g := NewGenome(2, 1, newTestRNG())
	coeffs := DistanceCoefficients{ConnectionDisjoint: 1, ConnectionWeight: 1, ConnectionDisabled: 1, NodeBias: 1, NodeActivation: 1, NodeAggregation: 1}
	assert.Zero(t, Distance(g, g, coeffs))
}

func TestDistanceGrowsWithDisjointGenes(t *testing.T) {
	rng := newTestRNG()
	a := NewGenome(2, 1, rng)
	b := a.Clone()
	coeffs := DistanceCoefficients{ConnectionDisjoint: 1, ConnectionWeight: 0.5, ConnectionDisabled: 1, NodeBias: 0.5, NodeActivation: 1, NodeAggregation: 1}

	before := Distance(a, b, coeffs)
	mutateAddNode(b, rng)
	after := Distance(a, b, coeffs)
	assert.Greater(t, after, before)
}

func TestDistanceCacheMemoizes(t *testing.T) {
	rng := newTestRNG()
	a := NewGenome(2, 1, rng)
	b := NewGenome(2, 1, rng)
	cache := NewDistanceCache(DistanceCoefficients{ConnectionDisjoint: 1, ConnectionWeight: 1})

	d1 := cache.Distance(a, b)
	d2 := cache.Distance(a, b)
	assert.Equal(t, d1, d2)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, 1, cache.misses)
}
