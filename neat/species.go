package neat

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SpeciesID is a monotonically increasing identifier assigned at species
// creation.
type SpeciesID int

// Species tracks one cluster of genomes across generations: its
// representative, current members, and fitness history used to detect
// stagnation.
type Species struct {
	ID              SpeciesID
	Created         int
	LastImproved    int
	Representative  *Genome
	Members         []GenomeID
	MeanFitness     float64
	HasMeanFitness  bool
	AdjustedFitness float64
	FitnessHistory  []float64
}

// SpeciesSet owns the full collection of species for the current
// generation plus the id-to-species-identity assignment.
type SpeciesSet struct {
	Species map[SpeciesID]*Species
	nextID  SpeciesID
}

// NewSpeciesSet builds an empty species set.
func NewSpeciesSet() *SpeciesSet {
	return &SpeciesSet{Species: make(map[SpeciesID]*Species)}
}

func (ss *SpeciesSet) newSpecies(generation int, rep *Genome) *Species {
	ss.nextID++
	s := &Species{ID: ss.nextID, Created: generation, LastImproved: generation, Representative: rep, Members: []GenomeID{rep.ID}}
	ss.Species[s.ID] = s
	return s
}

// Speciate partitions generation's genomes into species following the
// re-seat / assign / track / adjust protocol; it does not retire stagnant
// species, which is RetireStagnant's job. genomes must resolve every
// id in population; existing species representatives are carried as live
// genome pointers and need no lookup against a prior generation's store.
func (ss *SpeciesSet) Speciate(population []GenomeID, genomes map[GenomeID]*Genome, fitness map[GenomeID]float64, cache *DistanceCache, threshold float64, generationNumber int) {
	unassigned := make(map[GenomeID]bool, len(population))
	for _, id := range population {
		unassigned[id] = true
	}

	// Phase 1: re-seat existing species against the new population. The
	// representative is a live genome pointer from the prior generation,
	// kept alive by the Species struct itself even though the population
	// store only holds the current generation's genomes.
	for id, s := range ss.Species {
		best := GenomeID(-1)
		bestDist := math.Inf(1)
		for gid := range unassigned {
			d := cache.Distance(s.Representative, genomes[gid])
			if d < bestDist {
				bestDist = d
				best = gid
			}
		}
		if best == -1 || bestDist > threshold {
			delete(ss.Species, id)
			continue
		}
		s.Representative = genomes[best]
		s.Members = []GenomeID{best}
		delete(unassigned, best)
	}

	// Phase 2: assign remaining genomes to the closest compatible species,
	// or spawn a fresh one.
	remaining := make([]GenomeID, 0, len(unassigned))
	for gid := range unassigned {
		remaining = append(remaining, gid)
	}
	sort.Slice(remaining, func(i, j int) bool { return remaining[i] < remaining[j] })

	for _, gid := range remaining {
		var best *Species
		bestDist := math.Inf(1)
		for _, s := range ss.Species {
			d := cache.Distance(s.Representative, genomes[gid])
			if d < bestDist {
				bestDist = d
				best = s
			}
		}
		if best != nil && bestDist <= threshold {
			best.Members = append(best.Members, gid)
		} else {
			ss.newSpecies(generationNumber, genomes[gid])
		}
	}

	// Phase 3: update fitness tracking. "Improved" means the new mean beats
	// the species' historical best, not merely last generation's mean, so
	// an oscillating species cannot repeatedly reset its stagnation clock.
	for _, s := range ss.Species {
		vals := make([]float64, len(s.Members))
		for i, gid := range s.Members {
			vals[i] = fitness[gid]
		}
		mean := stat.Mean(vals, nil)
		previousBest := math.Inf(-1)
		if len(s.FitnessHistory) > 0 {
			previousBest = floats.Max(s.FitnessHistory)
		}
		if mean > previousBest {
			s.LastImproved = generationNumber
		}
		s.MeanFitness = mean
		s.HasMeanFitness = true
		s.FitnessHistory = append(s.FitnessHistory, mean)
	}

	// Phase 4: softmax adjusted fitness over species means.
	ss.computeAdjustedFitness()
}

func (ss *SpeciesSet) computeAdjustedFitness() {
	if len(ss.Species) == 0 {
		return
	}
	maxMean := math.Inf(-1)
	for _, s := range ss.Species {
		if s.MeanFitness > maxMean {
			maxMean = s.MeanFitness
		}
	}
	denom := 0.0
	exps := make(map[SpeciesID]float64, len(ss.Species))
	for id, s := range ss.Species {
		e := math.Exp(s.MeanFitness - maxMean)
		exps[id] = e
		denom += e
	}
	for id, s := range ss.Species {
		s.AdjustedFitness = exps[id] / denom
	}
}

// RetireStagnant sorts stagnant species by adjusted fitness descending and
// removes all but the top elitismSpecies among them.
func (ss *SpeciesSet) RetireStagnant(generationNumber, stagnationAfter, elitismSpecies int) {
	var stagnant []*Species
	for _, s := range ss.Species {
		if generationNumber-s.LastImproved >= stagnationAfter {
			stagnant = append(stagnant, s)
		}
	}
	if len(stagnant) <= elitismSpecies {
		return
	}
	sort.Slice(stagnant, func(i, j int) bool { return stagnant[i].AdjustedFitness > stagnant[j].AdjustedFitness })
	for _, s := range stagnant[elitismSpecies:] {
		delete(ss.Species, s.ID)
	}
}
