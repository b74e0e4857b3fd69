package neat

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Config is the fully-resolved set of parameters controlling one
// evolutionary run, loaded from an INI file via LoadConfig.
type Config struct {
	NEAT         NEATConfig
	Genome       GenomeSectionConfig
	Reproduction ReproductionSectionConfig
	SpeciesSet   SpeciesSetSectionConfig
	Stagnation   StagnationSectionConfig

	MutationKinds map[MutationKind]float64
}

// NEATConfig holds parameters that govern the generational driver itself.
type NEATConfig struct {
	PopulationSize  int     `ini:"population_size"`
	MaxGenerations  int     `ini:"max_generations"`
	FitnessGoal     float64 `ini:"fitness_goal"`
	HasFitnessGoal  bool    `ini:"-"`
	NodeCost        float64 `ini:"node_cost"`
	ConnectionCost  float64 `ini:"connection_cost"`
	Workers         int     `ini:"workers"`
	RandomSeed      int64   `ini:"random_seed"`
}

// GenomeSectionConfig holds the genome's input/output layout.
type GenomeSectionConfig struct {
	NumInputs  int `ini:"num_inputs"`
	NumOutputs int `ini:"num_outputs"`
}

// ReproductionSectionConfig holds offspring-scheduling parameters.
type ReproductionSectionConfig struct {
	Elitism       float64 `ini:"elitism"`
	ElitismSpecies int    `ini:"elitism_species"`
	SurvivalRatio float64 `ini:"survival_ratio"`
	MutationRate  float64 `ini:"mutation_rate"`

	DistanceConnectionDisjointCoefficient float64 `ini:"distance_connection_disjoint_coefficient"`
	DistanceConnectionWeightCoefficient   float64 `ini:"distance_connection_weight_coeficcient"`
	DistanceConnectionDisabledCoefficient float64 `ini:"distance_connection_disabled_coefficient"`
	DistanceNodeBiasCoefficient           float64 `ini:"distance_node_bias_coefficient"`
	DistanceNodeActivationCoefficient     float64 `ini:"distance_node_activation_coefficient"`
	DistanceNodeAggregationCoefficient    float64 `ini:"distance_node_aggregation_coefficient"`

	MutationKindsFile string `ini:"mutation_kinds"`
}

// SpeciesSetSectionConfig holds speciation parameters.
type SpeciesSetSectionConfig struct {
	CompatibilityThreshold float64 `ini:"compatibility_threshold"`
}

// StagnationSectionConfig holds stagnation-detection parameters.
type StagnationSectionConfig struct {
	StagnationAfter int `ini:"stagnation_after"`
}

// LoadConfig loads and validates a Config from an INI file. mutation_kinds
// names a sidecar YAML file (relative to the INI file's own directory is
// the caller's responsibility; this loader accepts whatever path it is
// given) holding the weighted mutation-operator table.
func LoadConfig(filePath string) (*Config, error) {
	src, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load config file %q: %v", ErrConfigurationError, filePath, err)
	}

	config := &Config{}
	if err := src.Section("NEAT").MapTo(&config.NEAT); err != nil {
		return nil, fmt.Errorf("%w: failed to map [NEAT] section: %v", ErrConfigurationError, err)
	}
	if err := src.Section("Genome").MapTo(&config.Genome); err != nil {
		return nil, fmt.Errorf("%w: failed to map [Genome] section: %v", ErrConfigurationError, err)
	}
	if err := src.Section("Reproduction").MapTo(&config.Reproduction); err != nil {
		return nil, fmt.Errorf("%w: failed to map [Reproduction] section: %v", ErrConfigurationError, err)
	}
	if err := src.Section("SpeciesSet").MapTo(&config.SpeciesSet); err != nil {
		return nil, fmt.Errorf("%w: failed to map [SpeciesSet] section: %v", ErrConfigurationError, err)
	}
	if err := src.Section("Stagnation").MapTo(&config.Stagnation); err != nil {
		return nil, fmt.Errorf("%w: failed to map [Stagnation] section: %v", ErrConfigurationError, err)
	}

	if key, err := src.Section("NEAT").GetKey("fitness_goal"); err == nil && key.String() != "" {
		if v, err := key.Float64(); err == nil {
			config.NEAT.FitnessGoal = v
			config.NEAT.HasFitnessGoal = true
		}
	}

	if config.Reproduction.MutationKindsFile != "" {
		weights, err := loadMutationKinds(config.Reproduction.MutationKindsFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigurationError, err)
		}
		config.MutationKinds = weights
	} else {
		config.MutationKinds = defaultMutationKinds()
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func defaultMutationKinds() map[MutationKind]float64 {
	return map[MutationKind]float64{
		MutateAddConnection:    1,
		MutateRemoveConnection: 1,
		MutateAddNode:          1,
		MutateRemoveNode:       1,
		MutateWeight:           3,
		MutateBias:             2,
		MutateActivation:       1,
		MutateAggregation:      1,
	}
}

// loadMutationKinds reads the sidecar file, a flat map of operator name to
// weight, e.g. `add_node: 1`.
func loadMutationKinds(path string) (map[MutationKind]float64, error) {
	raw, err := loadYAMLFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mutation_kinds file %q: %w", path, err)
	}
	names := map[string]MutationKind{}
	for k := MutationKind(0); k < numMutationKinds; k++ {
		names[k.String()] = k
	}
	weights := make(map[MutationKind]float64, len(raw))
	for name, w := range raw {
		kind, ok := names[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown mutation kind %q", name)
		}
		weights[kind] = w
	}
	return weights, nil
}

func loadYAMLFile(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]float64
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return raw, nil
}

// DistanceCoefficients extracts the genomic-distance weighting from the
// loaded reproduction section.
func (c *Config) DistanceCoefficients() DistanceCoefficients {
	return DistanceCoefficients{
		ConnectionDisjoint: c.Reproduction.DistanceConnectionDisjointCoefficient,
		ConnectionWeight:   c.Reproduction.DistanceConnectionWeightCoefficient,
		ConnectionDisabled: c.Reproduction.DistanceConnectionDisabledCoefficient,
		NodeBias:           c.Reproduction.DistanceNodeBiasCoefficient,
		NodeActivation:     c.Reproduction.DistanceNodeActivationCoefficient,
		NodeAggregation:    c.Reproduction.DistanceNodeAggregationCoefficient,
	}
}

func (c *Config) validate() error {
	if c.NEAT.PopulationSize <= 0 {
		return fmt.Errorf("%w: population_size must be positive", ErrConfigurationError)
	}
	if c.NEAT.MaxGenerations <= 0 {
		return fmt.Errorf("%w: max_generations must be positive", ErrConfigurationError)
	}
	if c.Genome.NumInputs <= 0 {
		return fmt.Errorf("%w: num_inputs must be positive", ErrConfigurationError)
	}
	if c.Genome.NumOutputs <= 0 {
		return fmt.Errorf("%w: num_outputs must be positive", ErrConfigurationError)
	}
	if c.Reproduction.Elitism < 0 || c.Reproduction.Elitism > 1 {
		return fmt.Errorf("%w: elitism must be in [0, 1]", ErrConfigurationError)
	}
	if c.Reproduction.SurvivalRatio <= 0 || c.Reproduction.SurvivalRatio > 1 {
		return fmt.Errorf("%w: survival_ratio must be in (0, 1]", ErrConfigurationError)
	}
	if c.Reproduction.MutationRate < 0 || c.Reproduction.MutationRate > 1 {
		return fmt.Errorf("%w: mutation_rate must be in [0, 1]", ErrConfigurationError)
	}
	if c.SpeciesSet.CompatibilityThreshold < 0 {
		return fmt.Errorf("%w: compatibility_threshold cannot be negative", ErrConfigurationError)
	}
	if c.Stagnation.StagnationAfter <= 0 {
		return fmt.Errorf("%w: stagnation_after must be positive", ErrConfigurationError)
	}
	if c.Reproduction.ElitismSpecies < 0 {
		return fmt.Errorf("%w: elitism_species cannot be negative", ErrConfigurationError)
	}
	if len(c.MutationKinds) == 0 {
		return fmt.Errorf("%w: mutation_kinds table must not be empty", ErrConfigurationError)
	}
	return nil
}
