package neat

import (
	"math"
	"math/rand"
	"sort"
)

// Reproduction turns a species set and its adjusted fitnesses into the next
// generation's population of genomes.
type Reproduction struct {
	Elitism        float64
	SurvivalRatio  float64
	MutationRate   float64
	MutationTable  *MutationTable
}

// NewReproduction builds a scheduler from the relevant configuration
// fields.
func NewReproduction(elitism, survivalRatio, mutationRate float64, table *MutationTable) *Reproduction {
	return &Reproduction{
		Elitism:       elitism,
		SurvivalRatio: survivalRatio,
		MutationRate:  mutationRate,
		MutationTable: table,
	}
}

// Reproduce allocates offspring budgets across species, selects parents,
// applies crossover and mutation, and returns the pooled next-generation
// population. The result may fall slightly short of populationSize when
// crossovers fail (intentional, per §4.6).
func (r *Reproduction) Reproduce(ss *SpeciesSet, genomes map[GenomeID]*Genome, populationSize int, rng *rand.Rand) []*Genome {
	var next []*Genome

	for _, s := range ss.Species {
		offspringCount := int(math.Floor(s.AdjustedFitness * float64(populationSize)))
		if offspringCount <= 0 {
			continue
		}
		eliteCount := int(math.Floor(float64(offspringCount) * r.Elitism))
		nonElite := offspringCount - eliteCount

		members := make([]*Genome, 0, len(s.Members))
		for _, gid := range s.Members {
			members = append(members, genomes[gid])
		}
		sort.Slice(members, func(i, j int) bool { return members[i].Fitness > members[j].Fitness })

		cutoff := int(math.Ceil(r.SurvivalRatio * float64(len(members))))
		if cutoff < 1 {
			cutoff = 1
		}
		if cutoff > len(members) {
			cutoff = len(members)
		}
		survivors := members[:cutoff]

		for i := 0; i < eliteCount && i < len(survivors); i++ {
			next = append(next, survivors[i].Clone())
		}

		for i := 0; i < nonElite; i++ {
			p1 := survivors[rng.Intn(len(survivors))]
			p2 := survivors[rng.Intn(len(survivors))]
			child := Crossover(p1, p2, p1.Fitness, p2.Fitness, rng)
			if child == nil {
				continue
			}
			if rng.Float64() < r.MutationRate {
				Mutate(child, r.MutationTable, rng)
			}
			next = append(next, child)
		}
	}

	return next
}
