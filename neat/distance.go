package neat

import "math"

// DistanceCoefficients weights the terms of the genomic distance formula.
// Field names mirror the configuration option names in the INI loader.
type DistanceCoefficients struct {
	ConnectionDisjoint  float64
	ConnectionWeight    float64
	ConnectionDisabled  float64
	NodeBias            float64
	NodeActivation      float64
	NodeAggregation     float64
}

// Distance computes the genomic distance between a and b:
//
//	D = nodewise_term + (common_edge_term + disjoint_term) / max(|E_a|, |E_b|)
func Distance(a, b *Genome, c DistanceCoefficients) float64 {
	aIndex := make(map[int64]ConnectionGene, len(a.Conns))
	for _, conn := range a.Conns {
		aIndex[InnovationNumber(conn.From, conn.To)] = conn
	}
	bIndex := make(map[int64]ConnectionGene, len(b.Conns))
	for _, conn := range b.Conns {
		bIndex[InnovationNumber(conn.From, conn.To)] = conn
	}

	var commonEdgeTerm, disjointTerm float64
	seen := make(map[int64]bool, len(aIndex)+len(bIndex))
	for innov, ca := range aIndex {
		seen[innov] = true
		if cb, ok := bIndex[innov]; ok {
			if ca.Disabled != cb.Disabled {
				commonEdgeTerm += c.ConnectionDisabled
			}
			commonEdgeTerm += c.ConnectionWeight * math.Abs(ca.Weight-cb.Weight)
		} else {
			disjointTerm += c.ConnectionDisjoint
		}
	}
	for innov := range bIndex {
		if seen[innov] {
			continue
		}
		disjointTerm += c.ConnectionDisjoint
	}

	var nodewiseTerm float64
	n := len(a.Nodes)
	if len(b.Nodes) < n {
		n = len(b.Nodes)
	}
	for i := 0; i < n; i++ {
		na, nb := a.Nodes[i], b.Nodes[i]
		if na.Activation != nb.Activation {
			nodewiseTerm += c.NodeActivation
		}
		if na.Aggregation != nb.Aggregation {
			nodewiseTerm += c.NodeAggregation
		}
		nodewiseTerm += c.NodeBias * math.Abs(na.Bias-nb.Bias)
	}

	maxEdges := len(a.Conns)
	if len(b.Conns) > maxEdges {
		maxEdges = len(b.Conns)
	}
	if maxEdges == 0 {
		return nodewiseTerm
	}
	return nodewiseTerm + (commonEdgeTerm+disjointTerm)/float64(maxEdges)
}

// pairKey identifies an unordered pair of genome identities for cache
// lookups.
type pairKey struct{ lo, hi GenomeID }

func newPairKey(a, b GenomeID) pairKey {
	if a <= b {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

// DistanceCache memoizes Distance within a single generation, keyed by the
// unordered pair of genome identities. Rebuilt fresh every generation by the
// driver.
type DistanceCache struct {
	coeffs DistanceCoefficients
	values map[pairKey]float64
	hits   int
	misses int
}

// NewDistanceCache builds an empty cache for one generation's speciation
// pass.
func NewDistanceCache(coeffs DistanceCoefficients) *DistanceCache {
	return &DistanceCache{coeffs: coeffs, values: make(map[pairKey]float64)}
}

// Distance returns the memoized genomic distance between a and b, computing
// and storing it on first request.
func (dc *DistanceCache) Distance(a, b *Genome) float64 {
	if a.ID == b.ID {
		return 0
	}
	key := newPairKey(a.ID, b.ID)
	if v, ok := dc.values[key]; ok {
		dc.hits++
		return v
	}
	dc.misses++
	v := Distance(a, b, dc.coeffs)
	dc.values[key] = v
	return v
}
