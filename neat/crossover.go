package neat

import "math/rand"

// Crossover recombines two parent genomes along aligned innovation numbers,
// biased toward the fitter parent, and validates the result is still a DAG.
// Returns nil if the recombined graph is cyclic.
func Crossover(a, b *Genome, fitnessA, fitnessB float64, rng *rand.Rand) *Genome {
	if fitnessB > fitnessA {
		a, b = b, a
	}

	bIndex := make(map[int64]int, len(b.Conns))
	for i, c := range b.Conns {
		bIndex[InnovationNumber(c.From, c.To)] = i
	}

	child := &Genome{
		ID:      nextGenomeID(),
		Inputs:  a.Inputs,
		Outputs: a.Outputs,
	}

	maxNode := a.Inputs + a.Outputs - 1
	for _, ca := range a.Conns {
		chosen := ca
		if bi, ok := bIndex[InnovationNumber(ca.From, ca.To)]; ok && rng.Float64() < 0.5 {
			chosen = b.Conns[bi]
		}
		child.Conns = append(child.Conns, chosen)
		if chosen.From > maxNode {
			maxNode = chosen.From
		}
		if chosen.To > maxNode {
			maxNode = chosen.To
		}
	}

	child.Nodes = make([]NodeGene, maxNode+1)
	for i := range child.Nodes {
		aHas := i < len(a.Nodes)
		bHas := i < len(b.Nodes)
		switch {
		case aHas && bHas:
			if rng.Float64() < 0.5 {
				child.Nodes[i] = a.Nodes[i]
			} else {
				child.Nodes[i] = b.Nodes[i]
			}
		case aHas:
			child.Nodes[i] = a.Nodes[i]
		case bHas:
			child.Nodes[i] = b.Nodes[i]
		default:
			child.Nodes[i] = newRandomNodeGene(Hidden, rng)
		}
	}
	for i := 0; i < child.Inputs; i++ {
		child.Nodes[i] = newInputNodeGene()
	}

	if _, ok := child.NodeOrder(); !ok {
		return nil
	}
	return child
}
