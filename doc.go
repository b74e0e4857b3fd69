// Package neat documents github.com/quillfeather/goneat, a Go
// implementation of NeuroEvolution of Augmenting Topologies (NEAT): an
// evolutionary algorithm that jointly searches the structure and weights
// of directed acyclic neural networks.
//
// The engine itself lives in the neat subpackage
// (github.com/quillfeather/goneat/neat); this file documents the module as
// a whole.
//
// Basic usage:
//
//	config, err := neat.LoadConfig("path/to/config.ini")
//	if err != nil {
//		log.Fatalf("error loading config: %v", err)
//	}
//
//	pop, err := neat.NewPopulation(config, func(net *neat.Network) float64 {
//		// score net, e.g. by running forward passes against a task
//		return fitness
//	})
//	if err != nil {
//		log.Fatalf("error creating population: %v", err)
//	}
//
//	winner, fitness, err := pop.Run(context.Background())
//	if err != nil {
//		log.Fatalf("error running evolution: %v", err)
//	}
package neat
