package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeciateAssignsEveryGenomeToExactlyOneSpecies(t *testing.T) {
	rng := newTestRNG()
	genomes := map[GenomeID]*Genome{}
	var ids []GenomeID
	fitness := map[GenomeID]float64{}
	for i := 0; i < 10; i++ {
		g := NewGenome(3, 2, rng)
		for j := 0; j < i; j++ {
			Mutate(g, NewMutationTable(defaultMutationKinds()), rng)
		}
		g.Fitness = float64(i)
		genomes[g.ID] = g
		ids = append(ids, g.ID)
		fitness[g.ID] = g.Fitness
	}

	ss := NewSpeciesSet()
	coeffs := DistanceCoefficients{ConnectionDisjoint: 1, ConnectionWeight: 0.5, NodeBias: 0.5, NodeActivation: 1, NodeAggregation: 1, ConnectionDisabled: 1}
	cache := NewDistanceCache(coeffs)
	ss.Speciate(ids, genomes, fitness, cache, 3.0, 1)

	assigned := map[GenomeID]bool{}
	for _, s := range ss.Species {
		require.Contains(t, s.Members, s.Representative.ID, "representative must be a member of its own species")
		for _, m := range s.Members {
			assert.False(t, assigned[m], "genome assigned to more than one species")
			assigned[m] = true
		}
	}
	assert.Len(t, assigned, len(ids))
}

func TestSpeciateReSeatsAcrossGenerationsWithoutPriorGenomeMap(t *testing.T) {
	rng := newTestRNG()
	coeffs := DistanceCoefficients{ConnectionDisjoint: 1, ConnectionWeight: 0.5, NodeBias: 0.5, NodeActivation: 1, NodeAggregation: 1, ConnectionDisabled: 1}
	ss := NewSpeciesSet()

	buildGeneration := func() ([]GenomeID, map[GenomeID]*Genome, map[GenomeID]float64) {
		genomes := map[GenomeID]*Genome{}
		var ids []GenomeID
		fitness := map[GenomeID]float64{}
		for i := 0; i < 8; i++ {
			g := NewGenome(3, 2, rng)
			g.Fitness = float64(i)
			genomes[g.ID] = g
			ids = append(ids, g.ID)
			fitness[g.ID] = g.Fitness
		}
		return ids, genomes, fitness
	}

	ids1, genomes1, fitness1 := buildGeneration()
	ss.Speciate(ids1, genomes1, fitness1, NewDistanceCache(coeffs), 3.0, 1)
	require.NotEmpty(t, ss.Species)

	// Simulate a wholesale population replacement: the prior generation's
	// genome map is discarded entirely, as the driver does between
	// generations.
	ids2, genomes2, fitness2 := buildGeneration()
	assert.NotPanics(t, func() {
		ss.Speciate(ids2, genomes2, fitness2, NewDistanceCache(coeffs), 3.0, 2)
	})

	assigned := map[GenomeID]bool{}
	for _, s := range ss.Species {
		for _, m := range s.Members {
			assigned[m] = true
		}
	}
	assert.Len(t, assigned, len(ids2))
}

func TestAdjustedFitnessIsSoftmaxOverSpeciesMeans(t *testing.T) {
	ss := NewSpeciesSet()
	ss.Species[1] = &Species{ID: 1, MeanFitness: 1.0}
	ss.Species[2] = &Species{ID: 2, MeanFitness: 2.0}
	ss.computeAdjustedFitness()

	sum := ss.Species[1].AdjustedFitness + ss.Species[2].AdjustedFitness
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Greater(t, ss.Species[2].AdjustedFitness, ss.Species[1].AdjustedFitness)
}

func TestRetireStagnantKeepsAtLeastElitismSpecies(t *testing.T) {
	ss := NewSpeciesSet()
	for i := 1; i <= 5; i++ {
		ss.Species[SpeciesID(i)] = &Species{ID: SpeciesID(i), LastImproved: 0, AdjustedFitness: float64(i)}
	}
	ss.RetireStagnant(20, 10, 2)
	assert.Len(t, ss.Species, 2)
	assert.Contains(t, ss.Species, SpeciesID(5))
	assert.Contains(t, ss.Species, SpeciesID(4))
}
