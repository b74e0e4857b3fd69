package neat

import "math/rand"

// MutationKind is the closed set of structural and parametric mutation
// operators. Order matters: it is the iteration order of the configured
// weight table and thus the order genes appear in a cumulative-distribution
// draw.
type MutationKind int

const (
	MutateAddConnection MutationKind = iota
	MutateRemoveConnection
	MutateAddNode
	MutateRemoveNode
	MutateWeight
	MutateBias
	MutateActivation
	MutateAggregation
	numMutationKinds
)

var mutationKindNames = map[MutationKind]string{
	MutateAddConnection:    "add_connection",
	MutateRemoveConnection: "remove_connection",
	MutateAddNode:          "add_node",
	MutateRemoveNode:       "remove_node",
	MutateWeight:           "modify_weight",
	MutateBias:             "modify_bias",
	MutateActivation:       "modify_activation",
	MutateAggregation:      "modify_aggregation",
}

func (k MutationKind) String() string {
	if name, ok := mutationKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MutationTable is a precomputed cumulative-distribution table over
// MutationKind, built once from the configured weights (NewPopulation builds
// it for the whole run) so that operator selection is O(log n) per draw
// rather than re-sorting a weight list on every mutation.
type MutationTable struct {
	kinds []MutationKind
	cum   []float64 // cumulative weight, last entry == total
}

// NewMutationTable builds a table from a weight map. Kinds absent from
// weights or with non-positive weight are excluded from the draw.
func NewMutationTable(weights map[MutationKind]float64) *MutationTable {
	t := &MutationTable{}
	running := 0.0
	for k := MutationKind(0); k < numMutationKinds; k++ {
		w := weights[k]
		if w <= 0 {
			continue
		}
		running += w
		t.kinds = append(t.kinds, k)
		t.cum = append(t.cum, running)
	}
	return t
}

// Pick draws a mutation kind proportional to its configured weight.
func (t *MutationTable) Pick(rng *rand.Rand) MutationKind {
	if len(t.kinds) == 0 {
		return numMutationKinds
	}
	total := t.cum[len(t.cum)-1]
	target := rng.Float64() * total
	lo, hi := 0, len(t.cum)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if t.cum[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return t.kinds[lo]
}

// Mutate draws one operator from table and applies it to g in place. A
// failed precondition inside an operator is a no-op, never an error: the
// draw is simply "spent" without changing the genome.
func Mutate(g *Genome, table *MutationTable, rng *rand.Rand) {
	switch table.Pick(rng) {
	case MutateAddConnection:
		mutateAddConnection(g, rng)
	case MutateRemoveConnection:
		mutateRemoveConnection(g, rng)
	case MutateAddNode:
		mutateAddNode(g, rng)
	case MutateRemoveNode:
		mutateRemoveNode(g, rng)
	case MutateWeight:
		mutateWeight(g, rng)
	case MutateBias:
		mutateBias(g, rng)
	case MutateActivation:
		mutateActivation(g, rng)
	case MutateAggregation:
		mutateAggregation(g, rng)
	}
}

func mutateAddConnection(g *Genome, rng *rand.Rand) {
	type pair struct{ from, to int }
	var candidates []pair
	n := len(g.Nodes)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if g.connectionIndex(i, j) >= 0 {
				if !g.Conns[g.connectionIndex(i, j)].Disabled {
					continue
				}
			}
			if g.CanConnect(i, j) {
				candidates = append(candidates, pair{i, j})
			}
		}
	}
	if len(candidates) == 0 {
		return
	}
	p := candidates[rng.Intn(len(candidates))]
	g.AddConnection(p.from, p.to, rng)
}

func mutateRemoveConnection(g *Genome, rng *rand.Rand) {
	outDegree := make([]int, len(g.Nodes))
	inDegree := make([]int, len(g.Nodes))
	for _, c := range g.Conns {
		if c.Disabled {
			continue
		}
		outDegree[c.From]++
		inDegree[c.To]++
	}
	var eligible []int
	for i, c := range g.Conns {
		if c.Disabled {
			continue
		}
		if outDegree[c.From] > 1 && inDegree[c.To] > 1 {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return
	}
	g.DisableConnection(eligible[rng.Intn(len(eligible))])
}

func mutateAddNode(g *Genome, rng *rand.Rand) {
	var enabled []int
	for i, c := range g.Conns {
		if !c.Disabled {
			enabled = append(enabled, i)
		}
	}
	if len(enabled) == 0 {
		return
	}
	ci := enabled[rng.Intn(len(enabled))]
	u, v, w := g.Conns[ci].From, g.Conns[ci].To, g.Conns[ci].Weight
	g.DisableConnection(ci)
	h := g.AddNode(rng)
	g.Conns = append(g.Conns, ConnectionGene{From: u, To: h, Weight: w})
	g.Conns = append(g.Conns, newRandomConnectionGene(h, v, rng))
}

func mutateRemoveNode(g *Genome, rng *rand.Rand) {
	var candidates []int
	for i := g.Inputs + g.Outputs; i < len(g.Nodes); i++ {
		hasIn, hasOut := false, false
		for _, c := range g.Conns {
			if c.Disabled {
				continue
			}
			if c.To == i {
				hasIn = true
			}
			if c.From == i {
				hasOut = true
			}
		}
		if hasIn && hasOut {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return
	}
	node := candidates[rng.Intn(len(candidates))]

	var preds, succs []int
	for i, c := range g.Conns {
		if c.Disabled {
			continue
		}
		if c.To == node {
			preds = append(preds, c.From)
		}
		if c.From == node {
			succs = append(succs, c.To)
		}
		if c.To == node || c.From == node {
			g.DisableConnection(i)
		}
	}
	for _, p := range preds {
		for _, s := range succs {
			if ci := g.connectionIndex(p, s); ci >= 0 && !g.Conns[ci].Disabled {
				continue
			}
			g.AddConnection(p, s, rng)
		}
	}
}

func mutateWeight(g *Genome, rng *rand.Rand) {
	if len(g.Conns) == 0 {
		return
	}
	i := rng.Intn(len(g.Conns))
	g.Conns[i].Weight = perturbOrResample(g.Conns[i].Weight, rng)
}

func mutateBias(g *Genome, rng *rand.Rand) {
	candidates := nonInputIndices(g)
	if len(candidates) == 0 {
		return
	}
	i := candidates[rng.Intn(len(candidates))]
	g.Nodes[i].Bias = perturbOrResample(g.Nodes[i].Bias, rng)
}

func mutateActivation(g *Genome, rng *rand.Rand) {
	candidates := nonInputIndices(g)
	if len(candidates) == 0 {
		return
	}
	i := candidates[rng.Intn(len(candidates))]
	g.Nodes[i].Activation = randomActivationKind(rng)
}

func mutateAggregation(g *Genome, rng *rand.Rand) {
	candidates := nonInputIndices(g)
	if len(candidates) == 0 {
		return
	}
	i := candidates[rng.Intn(len(candidates))]
	g.Nodes[i].Aggregation = randomAggregation(rng)
}

func nonInputIndices(g *Genome) []int {
	out := make([]int, 0, len(g.Nodes)-g.Inputs)
	for i := g.Inputs; i < len(g.Nodes); i++ {
		out = append(out, i)
	}
	return out
}

// perturbOrResample implements the shared weight/bias mutation rule: 10% of
// the time perturb by a standard-normal draw, otherwise resample uniformly
// in [-1, 1]; result is clamped to [-1, 1].
func perturbOrResample(current float64, rng *rand.Rand) float64 {
	if rng.Float64() < 0.1 {
		return clamp(current+rng.NormFloat64(), -1, 1)
	}
	return uniform(rng, -1, 1)
}
