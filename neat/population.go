package neat

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quillfeather/goneat/internal/telemetry"
)

// FitnessFunc scores a compiled network. The driver guarantees each call
// receives a freshly compiled network never entered concurrently with
// shared state. A NaN return is a ContractViolation.
type FitnessFunc func(*Network) float64

// Hook is invoked after step 5 of every generation that is a multiple of
// its registered interval.
type Hook func(generation int, p *Population)

type hookEntry struct {
	everyK int
	fn     Hook
}

// Population drives the generational loop: fitness evaluation, speciation,
// offspring scheduling, and replacement.
type Population struct {
	Config      *Config
	fitnessFunc FitnessFunc

	genomes    map[GenomeID]*Genome
	population []GenomeID

	speciesSet *SpeciesSet
	repro      *Reproduction

	Generation     int
	Best           *Genome
	BestFitness    float64 // bloat-penalized, used for selection pressure
	BestRawFitness float64 // unpenalized, compared against fitness_goal

	rawFitness []float64 // per-generation raw fitness, indexed like population

	rng      *rand.Rand
	reporter *telemetry.Reporter
	hooks    []hookEntry
}

// NewPopulation builds the initial generation and wires up the
// reproduction scheduler from config.
func NewPopulation(config *Config, fitnessFunc FitnessFunc) (*Population, error) {
	if fitnessFunc == nil {
		return nil, fmt.Errorf("%w: fitness function must not be nil", ErrConfigurationError)
	}

	seed := config.NEAT.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	table := NewMutationTable(config.MutationKinds)

	p := &Population{
		Config:      config,
		fitnessFunc: fitnessFunc,
		genomes:     make(map[GenomeID]*Genome, config.NEAT.PopulationSize),
		speciesSet:  NewSpeciesSet(),
		repro:       NewReproduction(config.Reproduction.Elitism, config.Reproduction.SurvivalRatio, config.Reproduction.MutationRate, table),
		rng:         rng,
		reporter:    telemetry.New(),
	}

	for i := 0; i < config.NEAT.PopulationSize; i++ {
		g := NewGenome(config.Genome.NumInputs, config.Genome.NumOutputs, rng)
		p.genomes[g.ID] = g
		p.population = append(p.population, g.ID)
	}

	return p, nil
}

// AddHook registers fn to run every everyK generations (1 means every
// generation).
func (p *Population) AddHook(everyK int, fn Hook) {
	if everyK < 1 {
		everyK = 1
	}
	p.hooks = append(p.hooks, hookEntry{everyK: everyK, fn: fn})
}

// Run executes the generational loop until max_generations, a met
// fitness_goal, or context cancellation, and returns the best network
// found, its fitness, and an error if the run was cut short by a fatal
// condition.
func (p *Population) Run(ctx context.Context) (*Network, float64, error) {
	workers := p.Config.NEAT.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	for gen := 1; gen <= p.Config.NEAT.MaxGenerations; gen++ {
		select {
		case <-ctx.Done():
			return p.bestNetworkOrNil()
		default:
		}

		p.Generation = gen

		if err := p.evaluateFitness(ctx, workers); err != nil {
			return nil, 0, err
		}

		p.trackBest()

		if p.Config.NEAT.HasFitnessGoal && p.Best != nil && p.BestRawFitness >= p.Config.NEAT.FitnessGoal {
			net, err := Compile(p.Best)
			return net, p.BestRawFitness, err
		}

		if len(p.population) == 0 {
			p.reporter.Extinction(gen)
			return p.bestNetworkOrNil()
		}

		p.speciate(gen)
		p.reportStagnation(gen)
		p.speciesSet.RetireStagnant(gen, p.Config.Stagnation.StagnationAfter, p.Config.Reproduction.ElitismSpecies)

		summary := summarizeFitness(p.genomes, p.population)

		next := p.repro.Reproduce(p.speciesSet, p.genomes, p.Config.NEAT.PopulationSize, p.rng)
		p.replacePopulation(next)

		p.reporter.Generation(gen, p.BestFitness, summary.Mean, summary.StdDev, len(p.speciesSet.Species))
		p.runHooks(gen)
	}

	return p.bestNetworkOrNil()
}

func (p *Population) bestNetworkOrNil() (*Network, float64, error) {
	if p.Best == nil {
		return nil, 0, nil
	}
	net, err := Compile(p.Best)
	return net, p.BestFitness, err
}

// evaluateFitness compiles and scores every genome in the current
// population, fanning out across a bounded worker pool coordinated by
// errgroup. It subtracts the configured node/connection bloat penalty.
func (p *Population) evaluateFitness(ctx context.Context, workers int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	p.rawFitness = make([]float64, len(p.population))

	for i, id := range p.population {
		i, id := i, id
		genome := p.genomes[id]
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: fitness worker panicked: %v", ErrContractViolation, r)
				}
			}()

			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			net, compileErr := Compile(genome)
			if compileErr != nil {
				return compileErr
			}
			raw := p.fitnessFunc(net)
			if math.IsNaN(raw) {
				return fmt.Errorf("%w: fitness function returned NaN for genome %d", ErrContractViolation, genome.ID)
			}
			p.rawFitness[i] = raw
			penalized := raw
			penalized -= p.Config.NEAT.NodeCost * float64(len(genome.Nodes))
			penalized -= p.Config.NEAT.ConnectionCost * float64(len(genome.Conns))
			genome.Fitness = penalized
			return nil
		})
	}

	return g.Wait()
}

func (p *Population) trackBest() {
	for i, id := range p.population {
		g := p.genomes[id]
		if p.Best == nil || g.Fitness > p.BestFitness {
			p.Best = g
			p.BestFitness = g.Fitness
			p.BestRawFitness = p.rawFitness[i]
		}
	}
}

func (p *Population) speciate(gen int) {
	fitness := make(map[GenomeID]float64, len(p.population))
	for _, id := range p.population {
		fitness[id] = p.genomes[id].Fitness
	}
	cache := NewDistanceCache(p.Config.DistanceCoefficients())
	p.speciesSet.Speciate(p.population, p.genomes, fitness, cache, p.Config.SpeciesSet.CompatibilityThreshold, gen)
}

func (p *Population) reportStagnation(gen int) {
	reports := ReportStagnation(p.speciesSet, gen, p.Config.Stagnation.StagnationAfter, p.Config.Reproduction.ElitismSpecies)
	for _, r := range reports {
		if r.Retired {
			p.reporter.SpeciesRetired(int(r.SpeciesID), r.GensStagnant)
		}
	}
}

func (p *Population) replacePopulation(next []*Genome) {
	p.genomes = make(map[GenomeID]*Genome, len(next))
	p.population = make([]GenomeID, len(next))
	for i, g := range next {
		p.genomes[g.ID] = g
		p.population[i] = g.ID
	}
}

func (p *Population) runHooks(gen int) {
	for _, h := range p.hooks {
		if gen%h.everyK == 0 {
			h.fn(gen, p)
		}
	}
}
