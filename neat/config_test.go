package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidateRejectsNonPositivePopulationSize(t *testing.T) {
	c := testConfig()
	c.NEAT.PopulationSize = 0
	assert.ErrorIs(t, c.validate(), ErrConfigurationError)
}

func TestConfigValidateRejectsOutOfRangeElitism(t *testing.T) {
	c := testConfig()
	c.Reproduction.Elitism = 1.5
	assert.ErrorIs(t, c.validate(), ErrConfigurationError)
}

func TestConfigValidateRejectsZeroSurvivalRatio(t *testing.T) {
	c := testConfig()
	c.Reproduction.SurvivalRatio = 0
	assert.ErrorIs(t, c.validate(), ErrConfigurationError)
}

func TestConfigValidateRejectsEmptyMutationKinds(t *testing.T) {
	c := testConfig()
	c.MutationKinds = nil
	assert.ErrorIs(t, c.validate(), ErrConfigurationError)
}

func TestConfigValidateAcceptsWellFormedConfig(t *testing.T) {
	c := testConfig()
	assert.NoError(t, c.validate())
}

func TestDefaultMutationKindsCoversEveryKind(t *testing.T) {
	weights := defaultMutationKinds()
	assert.Len(t, weights, int(numMutationKinds))
}
