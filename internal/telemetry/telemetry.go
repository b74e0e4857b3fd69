// Package telemetry provides structured progress reporting for the
// generational driver, replacing scattered fmt.Printf call sites with a
// single reporter type.
package telemetry

import (
	"log"
	"os"
)

// Reporter logs per-generation progress. The zero value is not usable;
// construct with New.
type Reporter struct {
	log *log.Logger
}

// New builds a Reporter writing to stderr with a "neat: " prefix, matching
// the teacher's inline logging style.
func New() *Reporter {
	return &Reporter{log: log.New(os.Stderr, "neat: ", log.LstdFlags)}
}

// Generation reports the outcome of one completed generation.
func (r *Reporter) Generation(generation int, bestFitness, meanFitness, stdDevFitness float64, numSpecies int) {
	r.log.Printf("generation %d: best_fitness=%.4f mean_fitness=%.4f stdev_fitness=%.4f species=%d",
		generation, bestFitness, meanFitness, stdDevFitness, numSpecies)
}

// SpeciesRetired reports that a species was retired for stagnation.
func (r *Reporter) SpeciesRetired(speciesID int, gensStagnant int) {
	r.log.Printf("species %d retired: stagnant for %d generations", speciesID, gensStagnant)
}

// Extinction reports that every species went extinct in a generation.
func (r *Reporter) Extinction(generation int) {
	r.log.Printf("generation %d: total extinction, no species survived", generation)
}
