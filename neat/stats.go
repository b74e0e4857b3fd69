package neat

import "gonum.org/v1/gonum/stat"

// FitnessSummary reports the mean and standard deviation of a generation's
// bloat-penalized fitness values (Genome.Fitness), used by telemetry to show
// spread alongside the best genome.
type FitnessSummary struct {
	Mean   float64
	StdDev float64
}

// summarizeFitness computes mean/stddev over the Genome.Fitness values of
// the genomes named by ids.
func summarizeFitness(genomes map[GenomeID]*Genome, ids []GenomeID) FitnessSummary {
	if len(ids) == 0 {
		return FitnessSummary{}
	}
	values := make([]float64, len(ids))
	for i, id := range ids {
		values[i] = genomes[id].Fitness
	}
	mean := stat.Mean(values, nil)
	return FitnessSummary{Mean: mean, StdDev: stat.StdDev(values, nil)}
}
