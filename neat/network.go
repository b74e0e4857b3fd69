package neat

import "fmt"

// Connection is a compiled, enabled edge between two node indices.
type Connection struct {
	From, To int
	Weight   float64
}

// Node is a compiled node: its gene data plus the edges that feed it.
type Node struct {
	Activation  ActivationKind
	Aggregation Aggregation
	Bias        float64
	Incoming    []Connection
}

// Network is a genome compiled into an evaluator: every node gene plus a
// topological evaluation order. It is what a fitness function receives and
// drives via Activate.
type Network struct {
	InputCount  int
	OutputCount int
	Nodes       []Node
	Order       []int
}

// Compile projects a genome into a Network: every node gene is carried
// over, connection genes are filtered to the enabled ones, and node_order
// supplies the forward linearization. It fails only if the genome is not a
// DAG, which never happens for genomes produced by this engine.
func Compile(g *Genome) (*Network, error) {
	order, ok := g.NodeOrder()
	if !ok {
		return nil, fmt.Errorf("%w: genome is not a DAG", ErrContractViolation)
	}

	nodes := make([]Node, len(g.Nodes))
	for i, ng := range g.Nodes {
		nodes[i] = Node{Activation: ng.Activation, Aggregation: ng.Aggregation, Bias: ng.Bias}
	}
	for _, c := range g.Conns {
		if c.Disabled {
			continue
		}
		nodes[c.To].Incoming = append(nodes[c.To].Incoming, Connection{From: c.From, To: c.To, Weight: c.Weight})
	}

	return &Network{
		InputCount:  g.Inputs,
		OutputCount: g.Outputs,
		Nodes:       nodes,
		Order:       order,
	}, nil
}

// Activate runs one forward pass. len(inputs) must equal InputCount; the
// returned slice has length OutputCount, in declaration order.
func (n *Network) Activate(inputs []float64) ([]float64, error) {
	if len(inputs) != n.InputCount {
		return nil, fmt.Errorf("%w: expected %d inputs, got %d", ErrContractViolation, n.InputCount, len(inputs))
	}

	values := make([]float64, len(n.Nodes))
	var contributions []float64

	for _, idx := range n.Order {
		if idx < n.InputCount {
			values[idx] = inputs[idx]
			continue
		}
		node := n.Nodes[idx]
		contributions = contributions[:0]
		for _, c := range node.Incoming {
			contributions = append(contributions, values[c.From]*c.Weight)
		}
		agg := Aggregate(node.Aggregation, contributions)
		values[idx] = Activate(node.Activation, agg+node.Bias)
	}

	outputs := make([]float64, n.OutputCount)
	for i := 0; i < n.OutputCount; i++ {
		outputs[i] = values[n.InputCount+i]
	}
	return outputs, nil
}
