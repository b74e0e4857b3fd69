package neat

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Aggregation is the closed set of functions that combine a node's weighted
// incoming contributions into a single scalar before activation.
type Aggregation int

const (
	AggregationSum Aggregation = iota
	AggregationProduct
	AggregationMax
	AggregationMin
	AggregationMaxAbs
	AggregationMedian
	AggregationMean
	numAggregationKinds
)

var aggregationNames = map[Aggregation]string{
	AggregationSum:     "sum",
	AggregationProduct: "product",
	AggregationMax:     "max",
	AggregationMin:     "min",
	AggregationMaxAbs:  "max_abs",
	AggregationMedian:  "median",
	AggregationMean:    "mean",
}

// String returns the canonical lowercase name of the aggregation kind.
func (a Aggregation) String() string {
	if name, ok := aggregationNames[a]; ok {
		return name
	}
	return "unknown"
}

// randomAggregation draws uniformly over every aggregation kind.
func randomAggregation(rng *rand.Rand) Aggregation {
	return Aggregation(rng.Intn(int(numAggregationKinds)))
}

// Aggregate combines contributions (already source_value * edge_weight)
// according to kind. An empty contribution set aggregates to zero.
func Aggregate(kind Aggregation, contributions []float64) float64 {
	if len(contributions) == 0 {
		return 0.0
	}
	switch kind {
	case AggregationSum:
		return floats.Sum(contributions)
	case AggregationProduct:
		product := 1.0
		for _, v := range contributions {
			product *= v
		}
		return product
	case AggregationMax:
		max := contributions[0]
		for _, v := range contributions[1:] {
			if v > max {
				max = v
			}
		}
		return max
	case AggregationMin:
		min := contributions[0]
		for _, v := range contributions[1:] {
			if v < min {
				min = v
			}
		}
		return min
	case AggregationMaxAbs:
		maxAbs := math.Abs(contributions[0])
		for _, v := range contributions[1:] {
			if math.Abs(v) > maxAbs {
				maxAbs = math.Abs(v)
			}
		}
		return maxAbs
	case AggregationMedian:
		sorted := append([]float64(nil), contributions...)
		sort.Float64s(sorted)
		return stat.Quantile(0.5, stat.Empirical, sorted, nil)
	case AggregationMean:
		return stat.Mean(contributions, nil)
	default:
		return stat.Mean(contributions, nil)
	}
}
